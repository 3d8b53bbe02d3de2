package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dlynq/dlynq/internal/api/middleware"
	"github.com/dlynq/dlynq/internal/domain"
	"github.com/dlynq/dlynq/internal/service"
)

type OrgHandler struct {
	svc *service.OrgService
}

func NewOrgHandler(svc *service.OrgService) *OrgHandler {
	return &OrgHandler{svc: svc}
}

type createOrgRequest struct {
	Name       string         `json:"name"`
	Slug       string         `json:"slug"`
	ResellerID *string        `json:"reseller_id,omitempty"`
	Brand      map[string]any `json:"brand,omitempty"`
}

type createOrgResponse struct {
	OrgID string `json:"org_id"`
}

func (h *OrgHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.TenantFromContext(r.Context())

	var req createOrgRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	org := &domain.Organization{
		TenantID:   tenantID,
		Name:       req.Name,
		Slug:       req.Slug,
		ResellerID: req.ResellerID,
		Brand:      req.Brand,
	}

	if err := h.svc.CreateOrganization(r.Context(), org); err != nil {
		switch {
		case errors.Is(err, service.ErrOrgNameRequired), errors.Is(err, service.ErrSlugRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrOrgSlugTaken):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to create organization")
		}
		return
	}

	writeJSON(w, http.StatusCreated, createOrgResponse{OrgID: org.ID.String()})
}
