package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/cardsmith/internal/bridge"
	"github.com/MrSnakeDoc/cardsmith/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cardsmith/internal/logger"
)

type pageResponse struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	LoadedAt string `json:"loaded_at"`
}

// PutPage loads the request body as the current document. The page URL is
// given by the "url" query parameter.
func PutPage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageURL := r.URL.Query().Get("url")
		body := http.MaxBytesReader(w, r.Body, d.MaxPageBytes)

		page, err := d.PageHost.Load(r.Context(), pageURL, body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "page exceeds the size limit")
				return
			}
			fail(w, d.Logger, err)
			return
		}

		writeJSON(w, http.StatusOK, pageResponse{
			URL:      page.URL,
			Title:    page.Doc.Title(),
			LoadedAt: page.LoadedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
}

// DeletePage unloads the current document.
func DeletePage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.PageHost.Unload()
		w.WriteHeader(http.StatusNoContent)
	}
}

// Messages is the bridge receiver endpoint. A missing page answers 503 so
// remote callers see it as "no receiver".
func Messages(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bridge.Request
		if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid message: "+err.Error())
			return
		}

		resp, err := d.PageHost.Receive(r.Context(), req)
		if err != nil {
			if errors.Is(err, bridge.ErrNoReceiver) {
				writeError(w, http.StatusServiceUnavailable, err.Error())
				return
			}
			d.Logger.Warn("message handling failed",
				logger.String("type", req.Type),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
