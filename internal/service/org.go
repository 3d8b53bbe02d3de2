package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dlynq/dlynq/internal/domain"
	"github.com/dlynq/dlynq/internal/store"
)

var (
	ErrOrgNameRequired = errors.New("name is required")
	ErrSlugRequired    = errors.New("slug is required")
	ErrOrgSlugTaken    = errors.New("slug already in use for this tenant")
)

type OrgService struct {
	orgs      domain.OrganizationStore
	resellers domain.ResellerStore
}

func NewOrgService(orgs domain.OrganizationStore, resellers domain.ResellerStore) *OrgService {
	return &OrgService{orgs: orgs, resellers: resellers}
}

func (s *OrgService) CreateOrganization(ctx context.Context, o *domain.Organization) error {
	if strings.TrimSpace(o.Name) == "" {
		return ErrOrgNameRequired
	}
	if strings.TrimSpace(o.Slug) == "" {
		return ErrSlugRequired
	}

	if err := s.orgs.Create(ctx, o); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return ErrOrgSlugTaken
		}
		return err
	}
	return nil
}

func (s *OrgService) CreateReseller(ctx context.Context, r *domain.Reseller) error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrOrgNameRequired
	}
	if strings.TrimSpace(r.Slug) == "" {
		return ErrSlugRequired
	}

	return s.resellers.Create(ctx, r)
}
