package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"dps.dev/internal/audit"
	"dps.dev/internal/auth"
	"dps.dev/internal/obs"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, http.StatusBadRequest, []fieldError{{FieldName: "body", Message: "malformed JSON"}})
		return
	}
	if errs := validateLoginRequest(req); len(errs) > 0 {
		writeBadRequest(w, http.StatusBadRequest, errs)
		return
	}

	details, err := a.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeBadRequest(w, http.StatusUnauthorized, map[string]string{"message": "Invalid Credentials"})
			return
		}
		obs.LogError("login failed", map[string]any{"error": err.Error()})
		writeMessage(w, http.StatusInternalServerError, msgUnexpectedError)
		return
	}

	_ = audit.LogEvent(r.Context(), "session.login", map[string]any{"username": req.Username})
	writeSuccess(w, http.StatusOK, details)
}

func validateLoginRequest(req loginRequest) []fieldError {
	var errs []fieldError
	if strings.TrimSpace(req.Username) == "" {
		errs = append(errs, fieldError{FieldName: "username", Message: "must not be empty"})
	}
	if req.Password == "" {
		errs = append(errs, fieldError{FieldName: "password", Message: "must not be empty"})
	}
	return errs
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	if err := a.auth.Logout(r.Context(), identity); err != nil {
		obs.LogError("logout failed", map[string]any{"error": err.Error()})
		writeMessage(w, http.StatusInternalServerError, msgUnexpectedError)
		return
	}

	_ = audit.LogEvent(r.Context(), "session.logout", nil)
	writeSuccess(w, http.StatusOK, nil)
}
