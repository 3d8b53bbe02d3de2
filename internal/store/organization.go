package store

import (
	"context"

	"github.com/dlynq/dlynq/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrganizationStore struct {
	db *pgxpool.Pool
}

func NewOrganizationStore(db *pgxpool.Pool) *OrganizationStore {
	return &OrganizationStore{db: db}
}

func (s *OrganizationStore) Create(ctx context.Context, o *domain.Organization) error {
	if o.Brand == nil {
		o.Brand = map[string]any{}
	}

	err := s.db.QueryRow(ctx,
		`INSERT INTO organizations (tenant_id, name, slug, reseller_id, brand)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		o.TenantID, o.Name, o.Slug, o.ResellerID, o.Brand,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}
