package store

import (
	"context"

	"github.com/dlynq/dlynq/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ResellerStore struct {
	db *pgxpool.Pool
}

func NewResellerStore(db *pgxpool.Pool) *ResellerStore {
	return &ResellerStore{db: db}
}

func (s *ResellerStore) Create(ctx context.Context, r *domain.Reseller) error {
	if r.Branding == nil {
		r.Branding = map[string]any{}
	}

	return s.db.QueryRow(ctx,
		`INSERT INTO resellers (tenant_id, name, slug, domain, branding)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		r.TenantID, r.Name, r.Slug, r.Domain, r.Branding,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
}
