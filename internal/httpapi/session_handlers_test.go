package httpapi

import (
	"net/http"
	"testing"
)

func TestLoginReturnsTokenEnvelope(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/v1/sessions/login", "", map[string]string{
		"username": "admin",
		"password": "strongpassword",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}
	e := decodeEnvelope(t, rr)
	if e.Message != msgSuccess {
		t.Fatalf("expected Success, got %q", e.Message)
	}
	resp, ok := e.Response.(map[string]any)
	if !ok {
		t.Fatalf("unexpected response payload: %v", e.Response)
	}
	if resp["token"] == "" || resp["expiration"] == "" {
		t.Fatalf("expected token and expiration, got %v", resp)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	for _, creds := range []map[string]string{
		{"username": "admin", "password": "wrong"},
		{"username": "nobody", "password": "strongpassword"},
	} {
		rr := env.do(t, http.MethodPost, "/v1/sessions/login", "", creds)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("creds %v: expected 401, got %d", creds, rr.Code)
		}
		e := decodeEnvelope(t, rr)
		resp, _ := e.Response.(map[string]any)
		if resp["message"] != "Invalid Credentials" {
			t.Fatalf("creds %v: unexpected payload %v", creds, e.Response)
		}
	}
}

func TestLoginValidatesFields(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/v1/sessions/login", "", map[string]string{
		"username": "",
		"password": "",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	e := decodeEnvelope(t, rr)
	if e.Message != msgBadRequest {
		t.Fatalf("expected Bad Request, got %q", e.Message)
	}
	fields, ok := e.Response.([]any)
	if !ok || len(fields) != 2 {
		t.Fatalf("expected two field errors, got %v", e.Response)
	}
}

func TestLogoutTerminatesSession(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin", "strongpassword")

	rr := env.do(t, http.MethodPost, "/v1/sessions/logout", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}

	rr = env.do(t, http.MethodGet, "/v1/services", token, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rr.Code)
	}
	if e := decodeEnvelope(t, rr); e.Message != msgSessionTerminated {
		t.Fatalf("expected Session Terminated, got %q", e.Message)
	}
}

func TestLogoutRequiresAuthentication(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/v1/sessions/logout", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if e := decodeEnvelope(t, rr); e.Message != msgUnauthorized {
		t.Fatalf("expected Unauthorized, got %q", e.Message)
	}
}

func TestLoginRejectsWrongMethod(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/v1/sessions/login", "", nil)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
	if allow := rr.Header().Get("Allow"); allow != http.MethodPost {
		t.Fatalf("expected Allow: POST, got %q", allow)
	}
}
