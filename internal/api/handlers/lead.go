package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dlynq/dlynq/internal/api/middleware"
	"github.com/dlynq/dlynq/internal/domain"
	"github.com/dlynq/dlynq/internal/service"
)

type LeadHandler struct {
	svc *service.LeadService
}

func NewLeadHandler(svc *service.LeadService) *LeadHandler {
	return &LeadHandler{svc: svc}
}

type createLeadRequest struct {
	SourceCardID string   `json:"source_card_id"`
	Name         *string  `json:"name,omitempty"`
	Email        *string  `json:"email,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	Company      *string  `json:"company,omitempty"`
	Message      *string  `json:"message,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Status       string   `json:"status,omitempty"`
}

type createLeadResponse struct {
	LeadID string `json:"lead_id"`
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.TenantFromContext(r.Context())

	var req createLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lead := &domain.Lead{
		TenantID:     tenantID,
		SourceCardID: req.SourceCardID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Company:      req.Company,
		Message:      req.Message,
		Tags:         req.Tags,
		Status:       domain.LeadStatus(req.Status),
	}

	if err := h.svc.Create(r.Context(), lead); err != nil {
		if errors.Is(err, service.ErrLeadCardRequired) || errors.Is(err, service.ErrInvalidStatus) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create lead")
		return
	}

	writeJSON(w, http.StatusCreated, createLeadResponse{LeadID: lead.ID.String()})
}

type listLeadsResponse struct {
	Items []domain.Lead `json:"items"`
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.TenantFromContext(r.Context())

	leads, err := h.svc.List(r.Context(), tenantID, r.URL.Query().Get("card_id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list leads")
		return
	}
	if leads == nil {
		leads = []domain.Lead{}
	}

	writeJSON(w, http.StatusOK, listLeadsResponse{Items: leads})
}
