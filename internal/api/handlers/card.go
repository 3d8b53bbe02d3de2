package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dlynq/dlynq/internal/api/middleware"
	"github.com/dlynq/dlynq/internal/domain"
	"github.com/dlynq/dlynq/internal/service"
	"github.com/go-chi/chi/v5"
)

type CardHandler struct {
	svc *service.CardService
}

func NewCardHandler(svc *service.CardService) *CardHandler {
	return &CardHandler{svc: svc}
}

type createCardRequest struct {
	UserID     string         `json:"user_id"`
	OrgID      *string        `json:"org_id,omitempty"`
	Slug       string         `json:"slug"`
	Status     string         `json:"status,omitempty"`
	Profile    map[string]any `json:"profile,omitempty"`
	Contact    map[string]any `json:"contact,omitempty"`
	Social     map[string]any `json:"social,omitempty"`
	About      *string        `json:"about,omitempty"`
	Design     map[string]any `json:"design,omitempty"`
	SEO        map[string]any `json:"seo,omitempty"`
	TemplateID *string        `json:"template_id,omitempty"`
}

type createCardResponse struct {
	CardID string `json:"card_id"`
}

func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.TenantFromContext(r.Context())

	var req createCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	card := &domain.Card{
		TenantID:   tenantID,
		UserID:     req.UserID,
		OrgID:      req.OrgID,
		Slug:       req.Slug,
		Status:     domain.CardStatus(req.Status),
		Profile:    req.Profile,
		Contact:    req.Contact,
		Social:     req.Social,
		About:      req.About,
		Design:     req.Design,
		SEO:        req.SEO,
		TemplateID: req.TemplateID,
	}

	if err := h.svc.Create(r.Context(), card); err != nil {
		switch {
		case errors.Is(err, service.ErrCardUserRequired),
			errors.Is(err, service.ErrSlugRequired),
			errors.Is(err, service.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrCardSlugTaken):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to create card")
		}
		return
	}

	writeJSON(w, http.StatusCreated, createCardResponse{CardID: card.ID.String()})
}

type listCardsResponse struct {
	Items []domain.Card `json:"items"`
}

func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.TenantFromContext(r.Context())

	cards, err := h.svc.List(r.Context(), tenantID, r.URL.Query().Get("user_id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list cards")
		return
	}
	if cards == nil {
		cards = []domain.Card{}
	}

	writeJSON(w, http.StatusOK, listCardsResponse{Items: cards})
}

type publicCardResponse struct {
	Card *domain.Card `json:"card"`
}

func (h *CardHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.TenantFromContext(r.Context())
	slug := chi.URLParam(r, "slug")

	card, err := h.svc.GetPublic(r.Context(), tenantID, slug)
	if err != nil {
		if errors.Is(err, service.ErrCardNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get card")
		return
	}

	writeJSON(w, http.StatusOK, publicCardResponse{Card: card})
}
