package service

import (
	"context"
	"errors"

	"github.com/dlynq/dlynq/internal/domain"
)

var ErrInvalidEventType = errors.New("invalid event_type")

const recentEventsLimit = 20

type AnalyticsService struct {
	cards  domain.CardStore
	leads  domain.LeadStore
	events domain.EventStore
}

func NewAnalyticsService(cards domain.CardStore, leads domain.LeadStore, events domain.EventStore) *AnalyticsService {
	return &AnalyticsService{cards: cards, leads: leads, events: events}
}

func (s *AnalyticsService) Track(ctx context.Context, e *domain.Event) error {
	if !domain.ValidEventType(string(e.EventType)) {
		return ErrInvalidEventType
	}

	return s.events.Create(ctx, e)
}

type Summary struct {
	Cards        int64          `json:"cards"`
	Leads        int64          `json:"leads"`
	Events       int64          `json:"events"`
	RecentEvents []domain.Event `json:"recent_events"`
}

func (s *AnalyticsService) Summary(ctx context.Context, tenantID string) (*Summary, error) {
	cards, err := s.cards.Count(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	leads, err := s.leads.Count(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	events, err := s.events.Count(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	recent, err := s.events.ListRecent(ctx, tenantID, recentEventsLimit)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []domain.Event{}
	}

	return &Summary{
		Cards:        cards,
		Leads:        leads,
		Events:       events,
		RecentEvents: recent,
	}, nil
}
