package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/cardsmith/internal/httpserver/deps"
)

type componentStatus struct {
	OK     bool   `json:"ok"`
	Mode   string `json:"mode,omitempty"`
	Detail string `json:"detail,omitempty"`
	Impact string `json:"impact,omitempty"`
	Error  string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of the store, the page host and the settings file.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"store":     checkStore(r.Context(), d),
			"page_host": checkPageHost(d),
			"settings":  checkSettings(d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	// History and settings unavailable = degraded
	if s, ok := components["store"]; ok && !s.OK {
		return "degraded"
	}
	// Nothing to scrape yet = idle
	if p, ok := components["page_host"]; ok && !p.OK {
		return "idle"
	}
	return "ready"
}

func checkStore(parent context.Context, d deps.Deps) componentStatus {
	if d.StorePinger == nil {
		return componentStatus{
			OK:     true,
			Mode:   d.StoreBackend,
			Impact: "history-not-persisted",
		}
	}

	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	if err := d.StorePinger.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   d.StoreBackend,
			Impact: "settings-and-history-unavailable",
			Error:  err.Error(),
		}
	}
	return componentStatus{OK: true, Mode: d.StoreBackend}
}

func checkPageHost(d deps.Deps) componentStatus {
	if d.PageHost == nil {
		return componentStatus{OK: true, Mode: "remote", Detail: d.PageHostURL}
	}
	page, ok := d.PageHost.Current()
	if !ok {
		return componentStatus{OK: false, Mode: "local", Impact: "refresh-unavailable", Detail: "no page loaded"}
	}
	return componentStatus{OK: true, Mode: "local", Detail: page.URL}
}

func checkSettings(d deps.Deps) componentStatus {
	if d.SettingsFile == "" {
		return componentStatus{OK: true, Mode: "defaults"}
	}
	return componentStatus{OK: true, Mode: "file", Detail: d.SettingsFile}
}
