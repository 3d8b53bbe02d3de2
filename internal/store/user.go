package store

import (
	"context"
	"errors"

	"github.com/dlynq/dlynq/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserStore struct {
	db *pgxpool.Pool
}

func NewUserStore(db *pgxpool.Pool) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	if u.Provider == "" {
		u.Provider = domain.ProviderEmail
	}
	if len(u.Roles) == 0 {
		u.Roles = []string{string(domain.RoleUser)}
	}
	if u.TeamIDs == nil {
		u.TeamIDs = []string{}
	}

	err := s.db.QueryRow(ctx,
		`INSERT INTO users (tenant_id, email, name, password_hash, provider, roles, org_id, team_ids, is_active, avatar_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		u.TenantID, u.Email, u.Name, u.PasswordHash, u.Provider, u.Roles, u.OrgID, u.TeamIDs, u.IsActive, u.AvatarURL,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *UserStore) GetByEmail(ctx context.Context, tenantID, email string) (*domain.User, error) {
	u := &domain.User{}
	err := s.db.QueryRow(ctx,
		`SELECT id, tenant_id, email, name, password_hash, provider, roles, org_id, team_ids, is_active, avatar_url, created_at, updated_at
		 FROM users WHERE tenant_id = $1 AND email = $2`,
		tenantID, email,
	).Scan(&u.ID, &u.TenantID, &u.Email, &u.Name, &u.PasswordHash, &u.Provider, &u.Roles, &u.OrgID, &u.TeamIDs, &u.IsActive, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}
