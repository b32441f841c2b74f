package handlers

import (
	"net/http"

	"github.com/cloudnav/cloudnav/internal/httpserver/deps"
	"github.com/cloudnav/cloudnav/internal/logger"
)

// Snapshot triggers an immediate envelope snapshot, ahead of the periodic
// schedule. Useful before risky bulk edits.
func Snapshot(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.SnapshotTrigger <- struct{}{}:
			d.Logger.Info("manual snapshot triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, map[string]bool{"success": true})
		default:
			d.Logger.Warn("snapshot already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "Snapshot already in progress"})
		}
	}
}
