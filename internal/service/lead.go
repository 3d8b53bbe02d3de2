package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dlynq/dlynq/internal/domain"
)

var ErrLeadCardRequired = errors.New("source_card_id is required")

const maxLeadPage = 200

type LeadService struct {
	leads domain.LeadStore
}

func NewLeadService(leads domain.LeadStore) *LeadService {
	return &LeadService{leads: leads}
}

func (s *LeadService) Create(ctx context.Context, l *domain.Lead) error {
	if strings.TrimSpace(l.SourceCardID) == "" {
		return ErrLeadCardRequired
	}
	if l.Status != "" && !domain.ValidLeadStatus(string(l.Status)) {
		return ErrInvalidStatus
	}

	return s.leads.Create(ctx, l)
}

func (s *LeadService) List(ctx context.Context, tenantID, cardID string) ([]domain.Lead, error) {
	return s.leads.List(ctx, tenantID, domain.LeadFilter{
		SourceCardID: cardID,
		Limit:        maxLeadPage,
	})
}
