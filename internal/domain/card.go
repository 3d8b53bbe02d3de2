package domain

import (
	"time"

	"github.com/google/uuid"
)

type CardStatus string

const (
	CardStatusActive   CardStatus = "active"
	CardStatusDraft    CardStatus = "draft"
	CardStatusArchived CardStatus = "archived"
)

func ValidCardStatus(s string) bool {
	switch CardStatus(s) {
	case CardStatusActive, CardStatusDraft, CardStatusArchived:
		return true
	}
	return false
}

// Card is the digital business card, the product's primary entity.
// The profile/contact/social/design/seo blobs and the section lists are
// schema-free by design; tenants shape them per their own templates.
type Card struct {
	ID             uuid.UUID        `json:"id"`
	TenantID       string           `json:"tenant_id"`
	UserID         string           `json:"user_id"`
	OrgID          *string          `json:"org_id,omitempty"`
	Slug           string           `json:"slug"`
	Status         CardStatus       `json:"status"`
	Profile        map[string]any   `json:"profile"`
	Contact        map[string]any   `json:"contact"`
	Social         map[string]any   `json:"social"`
	About          *string          `json:"about,omitempty"`
	Services       []map[string]any `json:"services"`
	Portfolio      []map[string]any `json:"portfolio"`
	Attachments    []map[string]any `json:"attachments"`
	Experience     []map[string]any `json:"experience"`
	Testimonials   []map[string]any `json:"testimonials"`
	CustomSections []map[string]any `json:"custom_sections"`
	Design         map[string]any   `json:"design"`
	SEO            map[string]any   `json:"seo"`
	TemplateID     *string          `json:"template_id,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
