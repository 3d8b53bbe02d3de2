package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dlynq/dlynq/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CardStore struct {
	db *pgxpool.Pool
}

func NewCardStore(db *pgxpool.Pool) *CardStore {
	return &CardStore{db: db}
}

const cardColumns = `id, tenant_id, user_id, org_id, slug, status, profile, contact, social, about,
	services, portfolio, attachments, experience, testimonials, custom_sections,
	design, seo, template_id, created_at, updated_at`

func (s *CardStore) Create(ctx context.Context, c *domain.Card) error {
	if c.Status == "" {
		c.Status = domain.CardStatusActive
	}
	normalizeCardSections(c)

	err := s.db.QueryRow(ctx,
		`INSERT INTO cards (tenant_id, user_id, org_id, slug, status, profile, contact, social, about,
		                    services, portfolio, attachments, experience, testimonials, custom_sections,
		                    design, seo, template_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		 RETURNING id, created_at, updated_at`,
		c.TenantID, c.UserID, c.OrgID, c.Slug, c.Status, c.Profile, c.Contact, c.Social, c.About,
		c.Services, c.Portfolio, c.Attachments, c.Experience, c.Testimonials, c.CustomSections,
		c.Design, c.SEO, c.TemplateID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// GetPublicBySlug returns the tenant's card for the public page. Archived
// cards are never served, even on an exact slug match.
func (s *CardStore) GetPublicBySlug(ctx context.Context, tenantID, slug string) (*domain.Card, error) {
	c := &domain.Card{}
	err := s.db.QueryRow(ctx,
		`SELECT `+cardColumns+`
		 FROM cards WHERE tenant_id = $1 AND slug = $2 AND status <> $3`,
		tenantID, slug, domain.CardStatusArchived,
	).Scan(cardFields(c)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CardStore) List(ctx context.Context, tenantID string, f domain.CardFilter) ([]domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE tenant_id = $1`
	args := []any{tenantID}

	if f.UserID != "" {
		args = append(args, f.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}

	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		var c domain.Card
		if err := rows.Scan(cardFields(&c)...); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (s *CardStore) Count(ctx context.Context, tenantID string) (int64, error) {
	var n int64
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM cards WHERE tenant_id = $1`, tenantID,
	).Scan(&n)
	return n, err
}

func cardFields(c *domain.Card) []any {
	return []any{
		&c.ID, &c.TenantID, &c.UserID, &c.OrgID, &c.Slug, &c.Status,
		&c.Profile, &c.Contact, &c.Social, &c.About,
		&c.Services, &c.Portfolio, &c.Attachments, &c.Experience, &c.Testimonials, &c.CustomSections,
		&c.Design, &c.SEO, &c.TemplateID, &c.CreatedAt, &c.UpdatedAt,
	}
}

func normalizeCardSections(c *domain.Card) {
	if c.Profile == nil {
		c.Profile = map[string]any{}
	}
	if c.Contact == nil {
		c.Contact = map[string]any{}
	}
	if c.Social == nil {
		c.Social = map[string]any{}
	}
	if c.Design == nil {
		c.Design = map[string]any{}
	}
	if c.SEO == nil {
		c.SEO = map[string]any{}
	}
	if c.Services == nil {
		c.Services = []map[string]any{}
	}
	if c.Portfolio == nil {
		c.Portfolio = []map[string]any{}
	}
	if c.Attachments == nil {
		c.Attachments = []map[string]any{}
	}
	if c.Experience == nil {
		c.Experience = []map[string]any{}
	}
	if c.Testimonials == nil {
		c.Testimonials = []map[string]any{}
	}
	if c.CustomSections == nil {
		c.CustomSections = []map[string]any{}
	}
}
