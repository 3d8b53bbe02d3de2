package service

import (
	"context"
	"testing"

	"github.com/dlynq/dlynq/internal/domain"
	"github.com/dlynq/dlynq/internal/store"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// mockUserStore implements domain.UserStore for testing, enforcing the
// per-tenant email uniqueness the real store gets from its unique index.
type mockUserStore struct {
	users map[uuid.UUID]*domain.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (m *mockUserStore) Create(ctx context.Context, u *domain.User) error {
	for _, existing := range m.users {
		if existing.TenantID == u.TenantID && existing.Email == u.Email {
			return store.ErrConflict
		}
	}
	u.ID = uuid.New()
	m.users[u.ID] = u
	return nil
}

func (m *mockUserStore) GetByEmail(ctx context.Context, tenantID, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.TenantID == tenantID && u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

// staticTokens issues a fixed token string.
type staticTokens struct{}

func (staticTokens) Issue(userID uuid.UUID, tenantID, email string) (string, error) {
	return "token-" + userID.String(), nil
}

func TestAuthService_Signup(t *testing.T) {
	s := NewAuthService(newMockUserStore(), staticTokens{})
	ctx := context.Background()

	result, err := s.Signup(ctx, "t1", "jane@example.com", "Jane", "s3cret")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.User.ID == uuid.Nil {
		t.Fatal("expected user ID to be set")
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}
	if result.User.PasswordHash == "s3cret" {
		t.Fatal("password must not be stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(result.User.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
	if len(result.User.Roles) != 1 || result.User.Roles[0] != "user" {
		t.Fatalf("expected default roles [user], got %v", result.User.Roles)
	}
}

func TestAuthService_Signup_DuplicateEmailSameTenant(t *testing.T) {
	s := NewAuthService(newMockUserStore(), staticTokens{})
	ctx := context.Background()

	if _, err := s.Signup(ctx, "t1", "jane@example.com", "Jane", "pw"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err := s.Signup(ctx, "t1", "jane@example.com", "Other Jane", "pw2")
	if err != ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Signup_SameEmailDifferentTenant(t *testing.T) {
	s := NewAuthService(newMockUserStore(), staticTokens{})
	ctx := context.Background()

	if _, err := s.Signup(ctx, "t1", "jane@example.com", "Jane", "pw"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := s.Signup(ctx, "t2", "jane@example.com", "Jane", "pw"); err != nil {
		t.Fatalf("expected no error in second tenant, got %v", err)
	}
}

func TestAuthService_Signup_Validation(t *testing.T) {
	s := NewAuthService(newMockUserStore(), staticTokens{})
	ctx := context.Background()

	if _, err := s.Signup(ctx, "t1", "", "Jane", "pw"); err != ErrEmailRequired {
		t.Fatalf("expected ErrEmailRequired, got %v", err)
	}
	if _, err := s.Signup(ctx, "t1", "not-an-email", "Jane", "pw"); err != ErrEmailRequired {
		t.Fatalf("expected ErrEmailRequired for malformed email, got %v", err)
	}
	if _, err := s.Signup(ctx, "t1", "jane@example.com", "", "pw"); err != ErrNameRequired {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if _, err := s.Signup(ctx, "t1", "jane@example.com", "Jane", ""); err != ErrPasswordRequired {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	s := NewAuthService(newMockUserStore(), staticTokens{})
	ctx := context.Background()

	if _, err := s.Signup(ctx, "t1", "jane@example.com", "Jane", "s3cret"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	result, err := s.Login(ctx, "t1", "jane@example.com", "s3cret")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}
	if result.User.Email != "jane@example.com" {
		t.Fatalf("unexpected user: %v", result.User.Email)
	}
}

func TestAuthService_Login_WrongPasswordAndUnknownEmailIndistinguishable(t *testing.T) {
	s := NewAuthService(newMockUserStore(), staticTokens{})
	ctx := context.Background()

	if _, err := s.Signup(ctx, "t1", "jane@example.com", "Jane", "s3cret"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	_, errWrongPw := s.Login(ctx, "t1", "jane@example.com", "nope")
	_, errNoUser := s.Login(ctx, "t1", "ghost@example.com", "s3cret")

	if errWrongPw != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", errWrongPw)
	}
	if errNoUser != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", errNoUser)
	}
}

func TestAuthService_Login_WrongTenant(t *testing.T) {
	s := NewAuthService(newMockUserStore(), staticTokens{})
	ctx := context.Background()

	if _, err := s.Signup(ctx, "t1", "jane@example.com", "Jane", "s3cret"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if _, err := s.Login(ctx, "t2", "jane@example.com", "s3cret"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials across tenants, got %v", err)
	}
}
