package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/cardsmith/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cardsmith/internal/session"
)

type shopURLRequest struct {
	URL string `json:"url"`
}

func GetCard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Session.State())
	}
}

func PatchCard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p session.Patch
		if err := decodeBody(r, &p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid card patch: "+err.Error())
			return
		}
		writeJSON(w, http.StatusOK, d.Session.Update(p))
	}
}

// RefreshCard scrapes the current page into the card.
func RefreshCard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, err := d.Session.Refresh(r.Context())
		if err != nil {
			fail(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, draft)
	}
}

func ResetCard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Session.Reset())
	}
}

func PutShop(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req shopURLRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid shop update: "+err.Error())
			return
		}
		draft, err := d.Session.SetShopURL(chi.URLParam(r, "id"), req.URL)
		if err != nil {
			fail(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, draft)
	}
}

func DeleteShop(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, err := d.Session.ClearShop(chi.URLParam(r, "id"))
		if err != nil {
			fail(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, draft)
	}
}

func CardValidation(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Session.Validate())
	}
}

// ExportCard renders the card and records it in the history.
func ExportCard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := d.Session.Export(r.Context())
		if err != nil {
			fail(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// BlogCSS serves the stylesheet matching the current palette.
func BlogCSS(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		css, err := d.Session.CSS()
		if err != nil {
			fail(w, d.Logger, err)
			return
		}
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write([]byte(css))
	}
}
