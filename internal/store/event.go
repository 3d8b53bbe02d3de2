package store

import (
	"context"

	"github.com/dlynq/dlynq/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventStore struct {
	db *pgxpool.Pool
}

func NewEventStore(db *pgxpool.Pool) *EventStore {
	return &EventStore{db: db}
}

func (s *EventStore) Create(ctx context.Context, e *domain.Event) error {
	if e.Metadata == nil {
		e.Metadata = map[string]any{}
	}

	return s.db.QueryRow(ctx,
		`INSERT INTO events (tenant_id, card_id, user_id, org_id, event_type, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		e.TenantID, e.CardID, e.UserID, e.OrgID, e.EventType, e.Metadata,
	).Scan(&e.ID, &e.CreatedAt)
}

func (s *EventStore) ListRecent(ctx context.Context, tenantID string, limit int) ([]domain.Event, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, tenant_id, card_id, user_id, org_id, event_type, metadata, created_at
		 FROM events WHERE tenant_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		tenantID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.TenantID, &e.CardID, &e.UserID, &e.OrgID, &e.EventType, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *EventStore) Count(ctx context.Context, tenantID string) (int64, error) {
	var n int64
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM events WHERE tenant_id = $1`, tenantID,
	).Scan(&n)
	return n, err
}
