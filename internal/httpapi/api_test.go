package httpapi

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dps.dev/internal/auth"
	"dps.dev/internal/deploy"
	"dps.dev/internal/registry"
)

type testEnv struct {
	api     *API
	handler http.Handler
	users   *auth.MemStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	codec, err := auth.NewCodec(key)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	store := auth.NewMemStore()
	store.SeedUser(auth.User{
		ID:             "u-admin",
		Username:       "admin",
		PasswordDigest: auth.HashPassword("strongpassword"),
		Role:           auth.RoleAdmin,
		Status:         auth.UserStatusActive,
	})
	store.SeedUser(auth.User{
		ID:             "u-contrib",
		Username:       "contributor",
		PasswordDigest: auth.HashPassword("evenstrongerpassword"),
		Role:           auth.RoleContributor,
		Status:         auth.UserStatusActive,
	})
	store.SeedUser(auth.User{
		ID:             "u-guest",
		Username:       "guest",
		PasswordDigest: auth.HashPassword("password"),
		Role:           auth.RoleGuest,
		Status:         auth.UserStatusActive,
	})

	authSvc, err := auth.NewService(store, codec)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	sim := deploy.NewSimulator(deploy.WithStartupDelay(10 * time.Millisecond))
	reg, err := registry.NewManager(registry.NewMemStore(), sim)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	api := New(authSvc, reg, ReadyProbe{}, "test")
	return &testEnv{api: api, handler: api.Handler(), users: store}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()

	rr := e.do(t, http.MethodPost, "/v1/sessions/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d (%s)", username, rr.Code, rr.Body.String())
	}
	env := decodeEnvelope(t, rr)
	resp, ok := env.Response.(map[string]any)
	if !ok {
		t.Fatalf("login %s: unexpected response payload %v", username, env.Response)
	}
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatalf("login %s: empty token", username)
	}
	return token
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) apiResponse {
	t.Helper()

	var env apiResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v (%s)", err, rr.Body.String())
	}
	if env.Timestamp == "" || env.TransactionID == "" {
		t.Fatalf("envelope missing timestamp or transactionId: %s", rr.Body.String())
	}
	return env
}

func TestHealthcheckIsPublic(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/v1/healthcheck", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	e := decodeEnvelope(t, rr)
	if e.Message != msgSuccess {
		t.Fatalf("expected Success, got %q", e.Message)
	}
	resp, _ := e.Response.(map[string]any)
	if resp["message"] != "Service running" {
		t.Fatalf("unexpected healthcheck payload: %v", e.Response)
	}
}

func TestUnknownRouteReturnsEnvelopedNotFound(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin", "strongpassword")

	rr := env.do(t, http.MethodGet, "/v1/nope", token, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if e := decodeEnvelope(t, rr); e.Message != msgNotFound {
		t.Fatalf("expected Not Found, got %q", e.Message)
	}
}

func TestResponsesCarryRequestID(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/v1/healthcheck", "", nil)
	if rr.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected X-Request-Id header")
	}
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("expected security headers")
	}
}
