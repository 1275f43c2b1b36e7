package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/cardsmith/internal/domain"
	"github.com/MrSnakeDoc/cardsmith/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cardsmith/internal/logger"
)

func GetConfig(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := d.ConfigStore.LoadSettings(r.Context())
		if err != nil {
			// Defaults are still usable, report them with a warning
			d.Logger.Warn("failed to load settings", logger.Error(err))
		}
		writeJSON(w, http.StatusOK, settings)
	}
}

// PatchConfig merges the given fields into the stored settings.
func PatchConfig(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch domain.SettingsPatch
		if err := decodeBody(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid settings patch: "+err.Error())
			return
		}
		settings, err := d.ConfigStore.UpdateSettings(r.Context(), patch)
		if err != nil {
			fail(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, settings)
	}
}
