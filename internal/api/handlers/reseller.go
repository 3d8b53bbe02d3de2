package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dlynq/dlynq/internal/api/middleware"
	"github.com/dlynq/dlynq/internal/domain"
	"github.com/dlynq/dlynq/internal/service"
)

type ResellerHandler struct {
	svc *service.OrgService
}

func NewResellerHandler(svc *service.OrgService) *ResellerHandler {
	return &ResellerHandler{svc: svc}
}

type createResellerRequest struct {
	Name     string         `json:"name"`
	Slug     string         `json:"slug"`
	Domain   *string        `json:"domain,omitempty"`
	Branding map[string]any `json:"branding,omitempty"`
}

type createResellerResponse struct {
	ResellerID string `json:"reseller_id"`
}

func (h *ResellerHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.TenantFromContext(r.Context())

	var req createResellerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reseller := &domain.Reseller{
		TenantID: tenantID,
		Name:     req.Name,
		Slug:     req.Slug,
		Domain:   req.Domain,
		Branding: req.Branding,
	}

	if err := h.svc.CreateReseller(r.Context(), reseller); err != nil {
		if errors.Is(err, service.ErrOrgNameRequired) || errors.Is(err, service.ErrSlugRequired) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create reseller")
		return
	}

	writeJSON(w, http.StatusCreated, createResellerResponse{ResellerID: reseller.ID.String()})
}
