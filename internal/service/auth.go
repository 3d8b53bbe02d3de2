package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dlynq/dlynq/internal/domain"
	"github.com/dlynq/dlynq/internal/store"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrNameRequired     = errors.New("name is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrEmailTaken       = errors.New("email already in use for this tenant")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login responses cannot be used to probe which emails exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService struct {
	users  domain.UserStore
	tokens domain.TokenIssuer
}

func NewAuthService(users domain.UserStore, tokens domain.TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

type SignupResult struct {
	User  *domain.User
	Token string
}

func (s *AuthService) Signup(ctx context.Context, tenantID, email, name, password string) (*SignupResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrEmailRequired
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		TenantID:     tenantID,
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Roles:        []string{string(domain.RoleUser)},
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, tenantID, user.Email)
	if err != nil {
		return nil, err
	}

	return &SignupResult{User: user, Token: token}, nil
}

type LoginResult struct {
	User  *domain.User
	Token string
}

func (s *AuthService) Login(ctx context.Context, tenantID, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, tenantID, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, tenantID, user.Email)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Token: token}, nil
}
