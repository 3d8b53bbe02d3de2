package domain

import (
	"time"

	"github.com/google/uuid"
)

type Reseller struct {
	ID        uuid.UUID      `json:"id"`
	TenantID  string         `json:"tenant_id"`
	Name      string         `json:"name"`
	Slug      string         `json:"slug"`
	Domain    *string        `json:"domain,omitempty"`
	Branding  map[string]any `json:"branding"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
