package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/api/response"
)

// APIKeyMiddleware guards staff-only endpoints (imports, approvals, feed
// configuration). Requests must carry the configured key in the X-API-Key
// header; comparison is constant-time. With no INTERNAL_API_KEY set, all
// requests are rejected rather than silently allowed.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv("INTERNAL_API_KEY")
		if expected == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "API key not configured")
			return
		}

		provided := r.Header.Get("X-API-Key")
		if provided == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}
