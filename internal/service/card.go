package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dlynq/dlynq/internal/domain"
	"github.com/dlynq/dlynq/internal/store"
)

var (
	ErrCardUserRequired = errors.New("user_id is required")
	ErrCardSlugTaken    = errors.New("slug already in use")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrCardNotFound     = errors.New("card not found")
)

// maxCardPage bounds tenant card listings. The cap is a fixed limit, not a
// page size.
const maxCardPage = 100

type CardService struct {
	cards domain.CardStore
}

func NewCardService(cards domain.CardStore) *CardService {
	return &CardService{cards: cards}
}

func (s *CardService) Create(ctx context.Context, c *domain.Card) error {
	if strings.TrimSpace(c.UserID) == "" {
		return ErrCardUserRequired
	}
	if strings.TrimSpace(c.Slug) == "" {
		return ErrSlugRequired
	}
	if c.Status != "" && !domain.ValidCardStatus(string(c.Status)) {
		return ErrInvalidStatus
	}

	if err := s.cards.Create(ctx, c); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return ErrCardSlugTaken
		}
		return err
	}
	return nil
}

func (s *CardService) List(ctx context.Context, tenantID, userID string) ([]domain.Card, error) {
	return s.cards.List(ctx, tenantID, domain.CardFilter{
		UserID: userID,
		Limit:  maxCardPage,
	})
}

func (s *CardService) GetPublic(ctx context.Context, tenantID, slug string) (*domain.Card, error) {
	card, err := s.cards.GetPublicBySlug(ctx, tenantID, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}
