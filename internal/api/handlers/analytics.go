package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dlynq/dlynq/internal/api/middleware"
	"github.com/dlynq/dlynq/internal/domain"
	"github.com/dlynq/dlynq/internal/service"
)

type AnalyticsHandler struct {
	svc *service.AnalyticsService
}

func NewAnalyticsHandler(svc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

type trackEventRequest struct {
	CardID    *string        `json:"card_id,omitempty"`
	UserID    *string        `json:"user_id,omitempty"`
	OrgID     *string        `json:"org_id,omitempty"`
	EventType string         `json:"event_type"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type trackEventResponse struct {
	EventID string `json:"event_id"`
}

func (h *AnalyticsHandler) TrackEvent(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.TenantFromContext(r.Context())

	var req trackEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event := &domain.Event{
		TenantID:  tenantID,
		CardID:    req.CardID,
		UserID:    req.UserID,
		OrgID:     req.OrgID,
		EventType: domain.EventType(req.EventType),
		Metadata:  req.Metadata,
	}

	if err := h.svc.Track(r.Context(), event); err != nil {
		if errors.Is(err, service.ErrInvalidEventType) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to track event")
		return
	}

	writeJSON(w, http.StatusCreated, trackEventResponse{EventID: event.ID.String()})
}

func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.TenantFromContext(r.Context())

	summary, err := h.svc.Summary(r.Context(), tenantID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build summary")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
