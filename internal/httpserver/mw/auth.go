package mw

import (
	"encoding/json"
	"net/http"

	"github.com/cloudnav/cloudnav/internal/logger"
)

// HeaderAuthPassword carries the shared secret on write requests.
const HeaderAuthPassword = "x-auth-password"

// RequireSecret gates a route behind the server's shared secret.
// An unset server secret is a misconfiguration (500), a mismatched header
// is a bad credential (401); both reject the request before the handler.
func RequireSecret(serverSecret string, loggerClient logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if serverSecret == "" {
				loggerClient.Error("write request rejected: server password not configured")
				writeAuthError(w, http.StatusInternalServerError, "Server misconfigured: password not set")
				return
			}

			provided := r.Header.Get(HeaderAuthPassword)
			if provided != serverSecret {
				loggerClient.Warn("write request rejected: bad credential",
					logger.String("remote_ip", r.RemoteAddr),
					logger.Bool("header_present", provided != ""))
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
