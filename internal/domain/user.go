package domain

import (
	"time"

	"github.com/google/uuid"
)

type Provider string

const (
	ProviderEmail     Provider = "email"
	ProviderGoogle    Provider = "google"
	ProviderMicrosoft Provider = "microsoft"
	ProviderSSO       Provider = "sso"
)

type Role string

const (
	RoleSuperAdmin    Role = "super_admin"
	RoleOrgOwner      Role = "org_owner"
	RoleTeamAdmin     Role = "team_admin"
	RoleUser          Role = "user"
	RoleResellerAdmin Role = "reseller_admin"
)

func ValidRole(r string) bool {
	switch Role(r) {
	case RoleSuperAdmin, RoleOrgOwner, RoleTeamAdmin, RoleUser, RoleResellerAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `json:"id"`
	TenantID     string    `json:"tenant_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Provider     Provider  `json:"provider"`
	Roles        []string  `json:"roles"`
	OrgID        *string   `json:"org_id,omitempty"`
	TeamIDs      []string  `json:"team_ids"`
	IsActive     bool      `json:"is_active"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
