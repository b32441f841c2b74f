package handlers

import (
	"io"
	"net/http"

	"github.com/cloudnav/cloudnav/internal/httpserver/deps"
	"github.com/cloudnav/cloudnav/internal/logger"
)

// emptyEnvelope is what a fetch returns when nothing is stored yet.
// Settings are deliberately absent: callers treat that as "use defaults".
const emptyEnvelope = `{"links":[],"categories":[]}`

// FetchStorage returns the stored envelope verbatim. No auth: the dataset
// is readable by anyone who can reach the API.
func FetchStorage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := d.Store.LoadRaw(r.Context())
		if err != nil {
			d.Logger.Error("failed to fetch envelope", logger.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Failed to fetch data", Details: err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if raw == "" {
			_, _ = w.Write([]byte(emptyEnvelope))
			return
		}
		_, _ = w.Write([]byte(raw))
	}
}

// ReplaceStorage persists the request body verbatim as the new envelope.
// No merge, no shape validation: last writer wins. Auth is enforced by
// mw.RequireSecret on the route.
func ReplaceStorage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Failed to save data", Details: err.Error()})
			return
		}

		if err := d.Store.SaveRaw(r.Context(), string(body)); err != nil {
			d.Logger.Error("failed to save envelope", logger.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Failed to save data", Details: err.Error()})
			return
		}

		d.Logger.Info("envelope replaced",
			logger.Int("bytes", len(body)),
			logger.String("remote_ip", r.RemoteAddr))
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
