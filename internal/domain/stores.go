package domain

import (
	"context"

	"github.com/google/uuid"
)

type UserStore interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, tenantID, email string) (*User, error)
}

type OrganizationStore interface {
	Create(ctx context.Context, o *Organization) error
}

type ResellerStore interface {
	Create(ctx context.Context, r *Reseller) error
}

// CardFilter narrows tenant-scoped card listings.
type CardFilter struct {
	UserID string
	Limit  int
}

type CardStore interface {
	Create(ctx context.Context, c *Card) error
	GetPublicBySlug(ctx context.Context, tenantID, slug string) (*Card, error)
	List(ctx context.Context, tenantID string, f CardFilter) ([]Card, error)
	Count(ctx context.Context, tenantID string) (int64, error)
}

// LeadFilter narrows tenant-scoped lead listings.
type LeadFilter struct {
	SourceCardID string
	Limit        int
}

type LeadStore interface {
	Create(ctx context.Context, l *Lead) error
	List(ctx context.Context, tenantID string, f LeadFilter) ([]Lead, error)
	Count(ctx context.Context, tenantID string) (int64, error)
}

type EventStore interface {
	Create(ctx context.Context, e *Event) error
	ListRecent(ctx context.Context, tenantID string, limit int) ([]Event, error)
	Count(ctx context.Context, tenantID string) (int64, error)
}

// TokenIssuer mints an opaque session token for an authenticated user.
type TokenIssuer interface {
	Issue(userID uuid.UUID, tenantID, email string) (string, error)
}
