package store

import (
	"context"
	"fmt"

	"github.com/dlynq/dlynq/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LeadStore struct {
	db *pgxpool.Pool
}

func NewLeadStore(db *pgxpool.Pool) *LeadStore {
	return &LeadStore{db: db}
}

func (s *LeadStore) Create(ctx context.Context, l *domain.Lead) error {
	if l.Status == "" {
		l.Status = domain.LeadStatusNew
	}
	if l.Tags == nil {
		l.Tags = []string{}
	}

	return s.db.QueryRow(ctx,
		`INSERT INTO leads (tenant_id, source_card_id, name, email, phone, company, message, tags, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		l.TenantID, l.SourceCardID, l.Name, l.Email, l.Phone, l.Company, l.Message, l.Tags, l.Status,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

func (s *LeadStore) List(ctx context.Context, tenantID string, f domain.LeadFilter) ([]domain.Lead, error) {
	query := `SELECT id, tenant_id, source_card_id, name, email, phone, company, message, tags, status, created_at, updated_at
		 FROM leads WHERE tenant_id = $1`
	args := []any{tenantID}

	if f.SourceCardID != "" {
		args = append(args, f.SourceCardID)
		query += fmt.Sprintf(" AND source_card_id = $%d", len(args))
	}

	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []domain.Lead
	for rows.Next() {
		var l domain.Lead
		if err := rows.Scan(&l.ID, &l.TenantID, &l.SourceCardID, &l.Name, &l.Email, &l.Phone, &l.Company, &l.Message, &l.Tags, &l.Status, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func (s *LeadStore) Count(ctx context.Context, tenantID string) (int64, error) {
	var n int64
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM leads WHERE tenant_id = $1`, tenantID,
	).Scan(&n)
	return n, err
}
