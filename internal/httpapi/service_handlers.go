package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"dps.dev/internal/audit"
	"dps.dev/internal/auth"
	"dps.dev/internal/obs"
	"dps.dev/internal/registry"
)

func (a *API) handleServices(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listServices(w, r)
	case http.MethodPost:
		if !a.authorize(w, r, auth.RoleAdmin, auth.RoleContributor) {
			return
		}
		a.createService(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (a *API) handleServiceByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/services/")
	parts := strings.Split(rest, "/")

	switch {
	case len(parts) == 1 && parts[0] != "":
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		a.getService(w, r, parts[0])
	case len(parts) == 2 && parts[0] != "" && parts[1] == "deploy":
		if r.Method != http.MethodPost {
			methodNotAllowed(w, http.MethodPost)
			return
		}
		if !a.authorize(w, r, auth.RoleAdmin) {
			return
		}
		a.deployService(w, r, parts[0])
	default:
		writeMessage(w, http.StatusNotFound, msgNotFound)
	}
}

func (a *API) listServices(w http.ResponseWriter, r *http.Request) {
	order := registry.SortByCreated
	if r.URL.Query().Get("sortBy") == "image" {
		order = registry.SortByImage
	}

	services, err := a.registry.List(r.Context(), order)
	if err != nil {
		obs.LogError("list services failed", map[string]any{"error": err.Error()})
		writeMessage(w, http.StatusInternalServerError, msgUnexpectedError)
		return
	}
	if services == nil {
		services = []registry.Service{}
	}
	writeJSON(w, http.StatusOK, services)
}

type createServiceRequest struct {
	ID     string  `json:"id"`
	Image  string  `json:"image"`
	Type   string  `json:"type"`
	CPU    float64 `json:"cpu"`
	Memory int64   `json:"memory"`
}

func (a *API) createService(w http.ResponseWriter, r *http.Request) {
	var req createServiceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, http.StatusBadRequest, []fieldError{{FieldName: "body", Message: "malformed JSON"}})
		return
	}
	if errs := validateCreateServiceRequest(req); len(errs) > 0 {
		writeBadRequest(w, http.StatusBadRequest, errs)
		return
	}

	id, err := a.registry.Create(r.Context(), registry.Service{
		ID:     req.ID,
		Image:  req.Image,
		Type:   registry.ServiceType(req.Type),
		CPU:    req.CPU,
		Memory: req.Memory,
	})
	if err != nil {
		if errors.Is(err, registry.ErrIDInUse) {
			writeBadRequest(w, http.StatusBadRequest, []fieldError{{FieldName: "id", Message: "already in use"}})
			return
		}
		obs.LogError("create service failed", map[string]any{"error": err.Error()})
		writeMessage(w, http.StatusInternalServerError, msgUnexpectedError)
		return
	}

	_ = audit.LogEvent(r.Context(), "registry.service.create", map[string]any{"service_id": id})
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func validateCreateServiceRequest(req createServiceRequest) []fieldError {
	var errs []fieldError
	if strings.TrimSpace(req.Image) == "" {
		errs = append(errs, fieldError{FieldName: "image", Message: "must not be empty"})
	}
	switch registry.ServiceType(req.Type) {
	case registry.TypeDeployment, registry.TypeStatefulSet:
	default:
		errs = append(errs, fieldError{FieldName: "type", Message: "must be one of Deployment, StatefulSet"})
	}
	if req.CPU < 0 {
		errs = append(errs, fieldError{FieldName: "cpu", Message: "must not be negative"})
	}
	if req.Memory < 0 {
		errs = append(errs, fieldError{FieldName: "memory", Message: "must not be negative"})
	}
	return errs
}

func (a *API) getService(w http.ResponseWriter, r *http.Request, id string) {
	service, err := a.registry.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, msgNotFound)
			return
		}
		obs.LogError("get service failed", map[string]any{"error": err.Error()})
		writeMessage(w, http.StatusInternalServerError, msgUnexpectedError)
		return
	}
	writeJSON(w, http.StatusOK, service)
}

func (a *API) deployService(w http.ResponseWriter, r *http.Request, id string) {
	if err := a.registry.Deploy(r.Context(), id); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, msgNotFound)
			return
		}
		obs.LogError("deploy service failed", map[string]any{"error": err.Error()})
		writeMessage(w, http.StatusInternalServerError, msgUnexpectedError)
		return
	}

	_ = audit.LogEvent(r.Context(), "registry.service.deploy", map[string]any{"service_id": id})
	writeJSON(w, http.StatusOK, map[string]string{"status": "Deployment scheduled"})
}
