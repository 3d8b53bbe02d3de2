package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventView            EventType = "view"
	EventUniqueView      EventType = "unique_view"
	EventQRScan          EventType = "qr_scan"
	EventClickCall       EventType = "click_call"
	EventClickEmail      EventType = "click_email"
	EventClickWhatsApp   EventType = "click_whatsapp"
	EventClickWebsite    EventType = "click_website"
	EventContactSave     EventType = "contact_save"
	EventFormSubmit      EventType = "form_submit"
	EventAttachmentClick EventType = "attachment_click"
	EventWalletOpen      EventType = "wallet_open"
)

func ValidEventType(t string) bool {
	switch EventType(t) {
	case EventView, EventUniqueView, EventQRScan, EventClickCall, EventClickEmail,
		EventClickWhatsApp, EventClickWebsite, EventContactSave, EventFormSubmit,
		EventAttachmentClick, EventWalletOpen:
		return true
	}
	return false
}

// Event is a single analytics occurrence attributed to a card, user or org.
type Event struct {
	ID        uuid.UUID      `json:"id"`
	TenantID  string         `json:"tenant_id"`
	CardID    *string        `json:"card_id,omitempty"`
	UserID    *string        `json:"user_id,omitempty"`
	OrgID     *string        `json:"org_id,omitempty"`
	EventType EventType      `json:"event_type"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
}
