package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mw "github.com/dlynq/dlynq/internal/api/middleware"
	"github.com/dlynq/dlynq/internal/domain"
	"github.com/dlynq/dlynq/internal/service"
	"github.com/dlynq/dlynq/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStores is an in-memory stand-in for the Postgres stores, enforcing the
// same per-tenant uniqueness the real unique indexes provide. calls counts
// every store access so tests can assert that rejected requests never reach
// the store.
type memStores struct {
	calls  int
	users  []*domain.User
	orgs   []*domain.Organization
	cards  []*domain.Card
	leads  []*domain.Lead
	events []*domain.Event
}

func (m *memStores) Create(ctx context.Context, u *domain.User) error {
	m.calls++
	for _, existing := range m.users {
		if existing.TenantID == u.TenantID && existing.Email == u.Email {
			return store.ErrConflict
		}
	}
	u.ID = uuid.New()
	m.users = append(m.users, u)
	return nil
}

func (m *memStores) GetByEmail(ctx context.Context, tenantID, email string) (*domain.User, error) {
	m.calls++
	for _, u := range m.users {
		if u.TenantID == tenantID && u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

type memOrgStore struct{ m *memStores }

func (s memOrgStore) Create(ctx context.Context, o *domain.Organization) error {
	s.m.calls++
	for _, existing := range s.m.orgs {
		if existing.TenantID == o.TenantID && existing.Slug == o.Slug {
			return store.ErrConflict
		}
	}
	o.ID = uuid.New()
	s.m.orgs = append(s.m.orgs, o)
	return nil
}

type memResellerStore struct{ m *memStores }

func (s memResellerStore) Create(ctx context.Context, r *domain.Reseller) error {
	s.m.calls++
	r.ID = uuid.New()
	return nil
}

type memCardStore struct{ m *memStores }

func (s memCardStore) Create(ctx context.Context, c *domain.Card) error {
	s.m.calls++
	for _, existing := range s.m.cards {
		if existing.TenantID == c.TenantID && existing.Slug == c.Slug {
			return store.ErrConflict
		}
	}
	if c.Status == "" {
		c.Status = domain.CardStatusActive
	}
	c.ID = uuid.New()
	s.m.cards = append(s.m.cards, c)
	return nil
}

func (s memCardStore) GetPublicBySlug(ctx context.Context, tenantID, slug string) (*domain.Card, error) {
	s.m.calls++
	for _, c := range s.m.cards {
		if c.TenantID == tenantID && c.Slug == slug && c.Status != domain.CardStatusArchived {
			return c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s memCardStore) List(ctx context.Context, tenantID string, f domain.CardFilter) ([]domain.Card, error) {
	s.m.calls++
	var out []domain.Card
	for _, c := range s.m.cards {
		if c.TenantID != tenantID {
			continue
		}
		if f.UserID != "" && c.UserID != f.UserID {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (s memCardStore) Count(ctx context.Context, tenantID string) (int64, error) {
	s.m.calls++
	var n int64
	for _, c := range s.m.cards {
		if c.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

type memLeadStore struct{ m *memStores }

func (s memLeadStore) Create(ctx context.Context, l *domain.Lead) error {
	s.m.calls++
	if l.Status == "" {
		l.Status = domain.LeadStatusNew
	}
	l.ID = uuid.New()
	s.m.leads = append(s.m.leads, l)
	return nil
}

func (s memLeadStore) List(ctx context.Context, tenantID string, f domain.LeadFilter) ([]domain.Lead, error) {
	s.m.calls++
	var out []domain.Lead
	for _, l := range s.m.leads {
		if l.TenantID != tenantID {
			continue
		}
		if f.SourceCardID != "" && l.SourceCardID != f.SourceCardID {
			continue
		}
		out = append(out, *l)
	}
	return out, nil
}

func (s memLeadStore) Count(ctx context.Context, tenantID string) (int64, error) {
	s.m.calls++
	var n int64
	for _, l := range s.m.leads {
		if l.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

type memEventStore struct{ m *memStores }

func (s memEventStore) Create(ctx context.Context, e *domain.Event) error {
	s.m.calls++
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	s.m.events = append(s.m.events, e)
	return nil
}

func (s memEventStore) ListRecent(ctx context.Context, tenantID string, limit int) ([]domain.Event, error) {
	s.m.calls++
	var out []domain.Event
	for i := len(s.m.events) - 1; i >= 0 && len(out) < limit; i-- {
		if s.m.events[i].TenantID == tenantID {
			out = append(out, *s.m.events[i])
		}
	}
	return out, nil
}

func (s memEventStore) Count(ctx context.Context, tenantID string) (int64, error) {
	s.m.calls++
	var n int64
	for _, e := range s.m.events {
		if e.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

// newTestRouter mirrors the /api route tree over in-memory stores.
func newTestRouter(m *memStores) *chi.Mux {
	tokens := service.NewTokenService("test-secret", time.Hour)
	authSvc := service.NewAuthService(m, tokens)
	orgSvc := service.NewOrgService(memOrgStore{m}, memResellerStore{m})
	cardSvc := service.NewCardService(memCardStore{m})
	leadSvc := service.NewLeadService(memLeadStore{m})
	analyticsSvc := service.NewAnalyticsService(memCardStore{m}, memLeadStore{m}, memEventStore{m})

	authHandler := NewAuthHandler(authSvc)
	orgHandler := NewOrgHandler(orgSvc)
	resellerHandler := NewResellerHandler(orgSvc)
	cardHandler := NewCardHandler(cardSvc)
	leadHandler := NewLeadHandler(leadSvc)
	analyticsHandler := NewAnalyticsHandler(analyticsSvc)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(mw.ResolveTenant)
		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/orgs", orgHandler.Create)
		r.Post("/resellers", resellerHandler.Create)
		r.Post("/cards", cardHandler.Create)
		r.Get("/cards", cardHandler.List)
		r.Get("/public/cards/{slug}", cardHandler.GetPublic)
		r.Post("/leads", leadHandler.Create)
		r.Get("/leads", leadHandler.List)
		r.Post("/events", analyticsHandler.TrackEvent)
		r.Get("/analytics/summary", analyticsHandler.Summary)
	})
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, tenant string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if tenant != "" {
		req.Header.Set(mw.TenantHeader, tenant)
	}
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestMissingTenantRejectedEverywhere(t *testing.T) {
	endpoints := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/auth/signup"},
		{http.MethodPost, "/api/auth/login"},
		{http.MethodPost, "/api/orgs"},
		{http.MethodPost, "/api/resellers"},
		{http.MethodPost, "/api/cards"},
		{http.MethodGet, "/api/cards"},
		{http.MethodGet, "/api/public/cards/jane-doe"},
		{http.MethodPost, "/api/leads"},
		{http.MethodGet, "/api/leads"},
		{http.MethodPost, "/api/events"},
		{http.MethodGet, "/api/analytics/summary"},
	}

	for _, ep := range endpoints {
		t.Run(ep.method+" "+ep.path, func(t *testing.T) {
			m := &memStores{}
			r := newTestRouter(m)

			rec := doJSON(t, r, ep.method, ep.path, "", map[string]any{})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, 0, m.calls, "store must not be touched without a tenant")

			body := decodeBody(t, rec)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestSignupConflictWithinTenantOnly(t *testing.T) {
	r := newTestRouter(&memStores{})
	signup := map[string]any{"email": "jane@example.com", "name": "Jane", "password": "s3cret"}

	rec := doJSON(t, r, http.MethodPost, "/api/auth/signup", "t1", signup)
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["user_id"])
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "t1", body["tenant_id"])

	rec = doJSON(t, r, http.MethodPost, "/api/auth/signup", "t1", signup)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/auth/signup", "t2", signup)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestSignupValidation(t *testing.T) {
	r := newTestRouter(&memStores{})

	rec := doJSON(t, r, http.MethodPost, "/api/auth/signup", "t1", map[string]any{"name": "Jane", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/auth/signup", "t1", map[string]any{"email": "jane@example.com", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginIndistinguishableFailures(t *testing.T) {
	r := newTestRouter(&memStores{})

	rec := doJSON(t, r, http.MethodPost, "/api/auth/signup", "t1",
		map[string]any{"email": "jane@example.com", "name": "Jane", "password": "s3cret"})
	require.Equal(t, http.StatusCreated, rec.Code)

	wrongPw := doJSON(t, r, http.MethodPost, "/api/auth/login", "t1",
		map[string]any{"email": "jane@example.com", "password": "nope"})
	noUser := doJSON(t, r, http.MethodPost, "/api/auth/login", "t1",
		map[string]any{"email": "ghost@example.com", "password": "s3cret"})

	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, http.StatusUnauthorized, noUser.Code)
	assert.Equal(t, wrongPw.Body.String(), noUser.Body.String())
}

func TestLoginSuccess(t *testing.T) {
	r := newTestRouter(&memStores{})

	rec := doJSON(t, r, http.MethodPost, "/api/auth/signup", "t1",
		map[string]any{"email": "jane@example.com", "name": "Jane", "password": "s3cret"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/auth/login", "t1",
		map[string]any{"email": "jane@example.com", "password": "s3cret"})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["token"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "jane@example.com", user["email"])
	assert.Equal(t, "Jane", user["name"])
}

func TestCardCreateConflictWithinTenantOnly(t *testing.T) {
	r := newTestRouter(&memStores{})
	card := map[string]any{"user_id": "u1", "slug": "jane-doe"}

	rec := doJSON(t, r, http.MethodPost, "/api/cards", "t1", card)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["card_id"])

	rec = doJSON(t, r, http.MethodPost, "/api/cards", "t1", card)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/cards", "t2", card)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestListCardsScopedToTenant(t *testing.T) {
	r := newTestRouter(&memStores{})

	doJSON(t, r, http.MethodPost, "/api/cards", "t1", map[string]any{"user_id": "u1", "slug": "a"})
	doJSON(t, r, http.MethodPost, "/api/cards", "t1", map[string]any{"user_id": "u2", "slug": "b"})
	doJSON(t, r, http.MethodPost, "/api/cards", "t2", map[string]any{"user_id": "u1", "slug": "c"})

	rec := doJSON(t, r, http.MethodGet, "/api/cards", "t1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decodeBody(t, rec)["items"].([]any)
	assert.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, "t1", item.(map[string]any)["tenant_id"])
	}

	rec = doJSON(t, r, http.MethodGet, "/api/cards?user_id=u1", "t1", nil)
	items = decodeBody(t, rec)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "u1", items[0].(map[string]any)["user_id"])
}

func TestPublicCardLookup(t *testing.T) {
	r := newTestRouter(&memStores{})

	doJSON(t, r, http.MethodPost, "/api/cards", "t1", map[string]any{"user_id": "u1", "slug": "jane-doe"})
	doJSON(t, r, http.MethodPost, "/api/cards", "t1", map[string]any{"user_id": "u1", "slug": "old-card", "status": "archived"})

	rec := doJSON(t, r, http.MethodGet, "/api/public/cards/jane-doe", "t1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	card := decodeBody(t, rec)["card"].(map[string]any)
	assert.Equal(t, "jane-doe", card["slug"])

	// archived cards are never served
	rec = doJSON(t, r, http.MethodGet, "/api/public/cards/old-card", "t1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// and neither are other tenants' cards
	rec = doJSON(t, r, http.MethodGet, "/api/public/cards/jane-doe", "t2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeadCreateAndList(t *testing.T) {
	r := newTestRouter(&memStores{})

	rec := doJSON(t, r, http.MethodPost, "/api/leads", "t1",
		map[string]any{"source_card_id": "c1", "name": "Visitor", "email": "v@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["lead_id"])

	doJSON(t, r, http.MethodPost, "/api/leads", "t1", map[string]any{"source_card_id": "c2"})
	doJSON(t, r, http.MethodPost, "/api/leads", "t2", map[string]any{"source_card_id": "c1"})

	rec = doJSON(t, r, http.MethodGet, "/api/leads?card_id=c1", "t1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decodeBody(t, rec)["items"].([]any)
	require.Len(t, items, 1)
	lead := items[0].(map[string]any)
	assert.Equal(t, "t1", lead["tenant_id"])
	assert.Equal(t, "c1", lead["source_card_id"])
	assert.Equal(t, "new", lead["status"])

	rec = doJSON(t, r, http.MethodPost, "/api/leads", "t1", map[string]any{"name": "No Card"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventTrackingAndSummary(t *testing.T) {
	r := newTestRouter(&memStores{})

	rec := doJSON(t, r, http.MethodPost, "/api/events", "t1", map[string]any{"event_type": "qr_scan"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["event_id"])

	doJSON(t, r, http.MethodPost, "/api/events", "t2", map[string]any{"event_type": "view"})
	doJSON(t, r, http.MethodPost, "/api/cards", "t1", map[string]any{"user_id": "u1", "slug": "a"})
	doJSON(t, r, http.MethodPost, "/api/leads", "t1", map[string]any{"source_card_id": "c1"})

	rec = doJSON(t, r, http.MethodGet, "/api/analytics/summary", "t1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decodeBody(t, rec)
	assert.Equal(t, float64(1), summary["cards"])
	assert.Equal(t, float64(1), summary["leads"])
	assert.GreaterOrEqual(t, summary["events"].(float64), float64(1))

	recent := summary["recent_events"].([]any)
	require.NotEmpty(t, recent)
	found := false
	for _, e := range recent {
		ev := e.(map[string]any)
		assert.Equal(t, "t1", ev["tenant_id"])
		if ev["event_type"] == "qr_scan" {
			found = true
		}
	}
	assert.True(t, found, "tracked event missing from recent_events")
}

func TestEventInvalidType(t *testing.T) {
	r := newTestRouter(&memStores{})

	rec := doJSON(t, r, http.MethodPost, "/api/events", "t1", map[string]any{"event_type": "scanned"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrgAndResellerCreate(t *testing.T) {
	r := newTestRouter(&memStores{})

	rec := doJSON(t, r, http.MethodPost, "/api/orgs", "t1", map[string]any{"name": "Acme", "slug": "acme"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["org_id"])

	rec = doJSON(t, r, http.MethodPost, "/api/orgs", "t1", map[string]any{"name": "Acme Again", "slug": "acme"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/resellers", "t1", map[string]any{"name": "Partner", "slug": "partner"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["reseller_id"])

	rec = doJSON(t, r, http.MethodPost, "/api/orgs", "t1", map[string]any{"slug": "no-name"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
