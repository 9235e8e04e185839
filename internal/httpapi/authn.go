package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"dps.dev/internal/auth"
	"dps.dev/internal/obs"
)

const authHeader = "Authorization"

// Paths reachable without a session. Everything else requires a verified
// token bound to an ACTIVE session.
var publicPaths = []string{
	"/v1/sessions/login",
	"/v1/healthcheck",
	"/metrics",
}

// withAuth authenticates every non-public request and attaches the resolved
// identity to the request context. Failures are always 401; the message
// distinguishes a cryptographically dead token from a terminated session,
// and everything unexpected collapses into Unauthorized.
func (a *API) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		raw := strings.TrimSpace(r.Header.Get(authHeader))
		if raw == "" {
			writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		identity, err := a.auth.Authenticate(r.Context(), raw)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotProvided):
				writeMessage(w, http.StatusUnauthorized, msgTokenExpired)
			case errors.Is(err, auth.ErrSessionInvalid):
				writeMessage(w, http.StatusUnauthorized, msgSessionTerminated)
			default:
				obs.LogError("authentication failed", map[string]any{"error": err.Error()})
				writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
			}
			return
		}

		ctx := auth.ContextWithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}
