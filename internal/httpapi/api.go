// Package httpapi is the HTTP layer: routing, the response envelope, the
// authentication and authorization middleware, and the session, service, and
// healthcheck handlers.
package httpapi

import (
	"context"
	"database/sql"
	"net/http"

	"dps.dev/internal/auth"
	"dps.dev/internal/obs"
	"dps.dev/internal/registry"
)

const maxBodyBytes = 1 << 20

// ReadyProbe checks backing-store health for the healthcheck endpoint. A nil
// DB (development mode with in-memory stores) always reports healthy.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API wires handlers to their routes.
type API struct {
	mux        *http.ServeMux
	auth       *auth.Service
	registry   *registry.Manager
	readyProbe ReadyProbe
	version    string
}

func New(authSvc *auth.Service, reg *registry.Manager, rp ReadyProbe, version string) *API {
	a := &API{
		mux:        http.NewServeMux(),
		auth:       authSvc,
		registry:   reg,
		readyProbe: rp,
		version:    version,
	}

	a.mux.HandleFunc("/v1/sessions/login", a.handleLogin)
	a.mux.HandleFunc("/v1/sessions/logout", a.handleLogout)
	a.mux.HandleFunc("/v1/healthcheck", a.handleHealthcheck)

	a.mux.HandleFunc("/v1/services", a.handleServices)
	a.mux.HandleFunc("/v1/services/", a.handleServiceByID)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, msgNotFound)
	})

	return a
}

// Handler returns the fully wrapped http.Handler. Ordering matters: metrics
// observe everything, request ids exist before logging, and authentication
// runs last so rejected requests still produce a log line.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = a.withAuth(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	h = SecurityHeaders(h)
	h = MaxBodyBytes(h, maxBodyBytes)
	return obs.Instrument(h)
}

func (a *API) handleHealthcheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if err := a.readyProbe.Check(r.Context()); err != nil {
		obs.LogError("healthcheck failed", map[string]any{"error": err.Error()})
		writeMessage(w, http.StatusInternalServerError, msgUnexpectedError)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"message": "Service running"})
}
