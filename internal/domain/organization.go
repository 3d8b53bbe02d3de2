package domain

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	ID         uuid.UUID      `json:"id"`
	TenantID   string         `json:"tenant_id"`
	Name       string         `json:"name"`
	Slug       string         `json:"slug"`
	ResellerID *string        `json:"reseller_id,omitempty"`
	Brand      map[string]any `json:"brand"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
