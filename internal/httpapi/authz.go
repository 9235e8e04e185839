package httpapi

import (
	"net/http"

	"dps.dev/internal/auth"
)

// RequireRole gates a handler behind a role allowlist. The identity must
// already be on the context (the authenticator puts it there); a request
// that somehow reaches a gated handler without one is rejected 401.
func RequireRole(roles ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := auth.IdentityFromContext(r.Context())
			if !ok {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}
			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeMessage(w, http.StatusForbidden, msgForbidden)
		})
	}
}

// authorize is the in-handler form of RequireRole for routes that switch on
// method before deciding the role requirement. It writes the response on
// failure and reports whether the request may proceed.
func (a *API) authorize(w http.ResponseWriter, r *http.Request, roles ...auth.Role) bool {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
		return false
	}
	for _, role := range roles {
		if identity.Role == role {
			return true
		}
	}
	writeMessage(w, http.StatusForbidden, msgForbidden)
	return false
}
