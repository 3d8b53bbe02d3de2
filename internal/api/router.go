package api

import (
	"net/http"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/dlynq/dlynq/internal/api/handlers"
	mw "github.com/dlynq/dlynq/internal/api/middleware"
	"github.com/dlynq/dlynq/internal/config"
	"github.com/dlynq/dlynq/internal/domain"
	"github.com/dlynq/dlynq/internal/service"
	"github.com/dlynq/dlynq/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// App holds the router and request counters.
type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(db *pgxpool.Pool, logger *zap.Logger) *App {
	// Stores
	userStore := store.NewUserStore(db)
	orgStore := store.NewOrganizationStore(db)
	resellerStore := store.NewResellerStore(db)
	cardStore := store.NewCardStore(db)
	leadStore := store.NewLeadStore(db)
	eventStore := store.NewEventStore(db)

	// Services
	tokenSvc := service.NewTokenService(config.JWTSecret(), config.TokenTTL())
	authSvc := service.NewAuthService(userStore, tokenSvc)
	orgSvc := service.NewOrgService(orgStore, resellerStore)
	cardSvc := service.NewCardService(cardStore)
	leadSvc := service.NewLeadService(leadStore)
	analyticsSvc := service.NewAnalyticsService(cardStore, leadStore, eventStore)

	// Handlers
	authHandler := handlers.NewAuthHandler(authSvc)
	orgHandler := handlers.NewOrgHandler(orgSvc)
	resellerHandler := handlers.NewResellerHandler(orgSvc)
	cardHandler := handlers.NewCardHandler(cardSvc)
	leadHandler := handlers.NewLeadHandler(leadSvc)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsSvc)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.CORS)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	// Liveness and diagnostics (no tenant required)
	r.Get("/", livenessHandler())
	r.Get("/test", storeDiagnosticHandler(db))
	r.Get("/metrics", app.metricsHandler())

	// Tenant-scoped routes
	r.Route("/api", func(r chi.Router) {
		r.Use(mw.ResolveTenant)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
		})

		r.Post("/orgs", orgHandler.Create)
		r.Post("/resellers", resellerHandler.Create)

		r.Route("/cards", func(r chi.Router) {
			r.Post("/", cardHandler.Create)
			r.Get("/", cardHandler.List)
		})
		r.Get("/public/cards/{slug}", cardHandler.GetPublic)

		r.Route("/leads", func(r chi.Router) {
			r.Post("/", leadHandler.Create)
			r.Get("/", leadHandler.List)
		})

		r.Post("/events", analyticsHandler.TrackEvent)
		r.Get("/analytics/summary", analyticsHandler.Summary)
	})

	return app
}

// NewRouter returns just the chi.Mux.
func NewRouter(db *pgxpool.Pool, logger *zap.Logger) *chi.Mux {
	return NewApp(db, logger).Router
}

func livenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"name":   "dlynq-api",
			"status": "ok",
		})
	}
}

// storeDiagnosticHandler reports store connectivity. Failures are reported
// as descriptive strings in the body, never as an error status.
func storeDiagnosticHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"backend":           "running",
			"database":          "not available",
			"database_url":      "not set",
			"database_name":     "",
			"connection_status": "not connected",
			"tables":            []string{},
		}
		if config.DatabaseURL() != "" {
			resp["database_url"] = "set"
		}

		if db == nil {
			writeJSON(w, http.StatusOK, resp)
			return
		}

		resp["database"] = "available"
		resp["database_name"] = db.Config().ConnConfig.Database

		if err := db.Ping(r.Context()); err != nil {
			resp["database"] = "connect error: " + truncate(err.Error(), 80)
			writeJSON(w, http.StatusOK, resp)
			return
		}
		resp["connection_status"] = "connected"

		tables, err := store.ListTables(r.Context(), db)
		if err != nil {
			resp["database"] = "connected but query error: " + truncate(err.Error(), 80)
			writeJSON(w, http.StatusOK, resp)
			return
		}
		resp["database"] = "connected and working"
		resp["tables"] = tables

		writeJSON(w, http.StatusOK, resp)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		writeJSON(w, http.StatusOK, map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
			"pid":        os.Getpid(),
		})
	}
}

// Ensure stores satisfy the domain interfaces at compile time.
var (
	_ domain.UserStore         = (*store.UserStore)(nil)
	_ domain.OrganizationStore = (*store.OrganizationStore)(nil)
	_ domain.ResellerStore     = (*store.ResellerStore)(nil)
	_ domain.CardStore         = (*store.CardStore)(nil)
	_ domain.LeadStore         = (*store.LeadStore)(nil)
	_ domain.EventStore        = (*store.EventStore)(nil)
	_ domain.TokenIssuer       = (*service.TokenService)(nil)
)
