package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/capturedesk/capturedesk/internal/api/handlers"
	mw "github.com/capturedesk/capturedesk/internal/api/middleware"
	"github.com/capturedesk/capturedesk/internal/auth"
	"github.com/capturedesk/capturedesk/internal/config"
	"github.com/capturedesk/capturedesk/internal/domain"
	"github.com/capturedesk/capturedesk/internal/service"
	"github.com/capturedesk/capturedesk/internal/store"
)

// App holds the router and the wired components.
type App struct {
	Router *chi.Mux
}

func NewApp(db *pgxpool.Pool, cfg *config.Config, logger *zap.Logger) *App {
	// Stores
	tenantStore := store.NewTenantStore(db)
	userStore := store.NewUserStore(db)
	companyStore := store.NewCompanyStore(db)
	contactStore := store.NewContactStore(db)
	opportunityStore := store.NewOpportunityStore(db)
	captureStore := store.NewCaptureStore(db)
	activityStore := store.NewActivityStore(db)
	dashboardStore := store.NewDashboardStore(db)
	rateLimitStore := store.NewRateLimitStore(db)

	// Services
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := service.NewAuthService(tenantStore, userStore, issuer, cfg.BcryptCost, logger)
	limiter := service.NewRateLimiter(rateLimitStore, logger)
	companySvc := service.NewCompanyService(companyStore)
	contactSvc := service.NewContactService(contactStore)
	opportunitySvc := service.NewOpportunityService(opportunityStore)
	captureSvc := service.NewCaptureService(captureStore)
	activitySvc := service.NewActivityService(activityStore)
	dashboardSvc := service.NewDashboardService(dashboardStore)

	// Handlers
	authHandler := handlers.NewAuthHandler(authSvc, limiter, cfg.LoginLimitPerMinute)
	companyHandler := handlers.NewCompanyHandler(companySvc)
	contactHandler := handlers.NewContactHandler(contactSvc)
	opportunityHandler := handlers.NewOpportunityHandler(opportunitySvc)
	captureHandler := handlers.NewCaptureHandler(captureSvc)
	activityHandler := handlers.NewActivityHandler(activitySvc)
	dashboardHandler := handlers.NewDashboardHandler(dashboardSvc)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := mw.NewHTTPMetrics(registry)

	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpMetrics.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(cfg.RateLimitPerMinute, cfg.RateLimitBurst))

	// Health and metrics (no auth)
	r.Get("/health", healthHandler(db))
	r.Get("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}).ServeHTTP)

	// Auth endpoints carry their own durable per-IP limits on top of the
	// general limiter.
	r.Route("/api/auth", func(r chi.Router) {
		r.With(mw.AuthRateLimit(limiter, "register", cfg.RegisterLimitPerMinute)).
			Post("/register", authHandler.Register)
		r.With(mw.AuthRateLimit(limiter, "login", cfg.LoginLimitPerMinute)).
			Post("/login", authHandler.Login)
	})

	// Authenticated routes
	r.Route("/api", func(r chi.Router) {
		r.Use(mw.Authenticate(issuer))

		r.Route("/opportunities", func(r chi.Router) {
			r.Get("/", opportunityHandler.List)
			r.Post("/", opportunityHandler.Create)
			r.Get("/{id}", opportunityHandler.Get)
			r.Put("/{id}", opportunityHandler.Update)
		})

		r.Route("/companies", func(r chi.Router) {
			r.Get("/", companyHandler.List)
			r.Post("/", companyHandler.Create)
			r.Get("/{id}", companyHandler.Get)
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", contactHandler.List)
			r.Post("/", contactHandler.Create)
			r.Get("/{id}", contactHandler.Get)
		})

		r.Route("/captures", func(r chi.Router) {
			r.Get("/", captureHandler.List)
			r.Post("/", captureHandler.Create)
			r.Get("/{id}", captureHandler.Get)
			r.Put("/{id}", captureHandler.Update)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/kpis", dashboardHandler.KPIs)
			r.Get("/pipeline-by-stage", dashboardHandler.PipelineByStage)
		})

		r.Get("/activities", activityHandler.ListRecent)
	})

	return &App{Router: r}
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if err := db.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"status": "error",
				"error":  err.Error(),
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// Ensure stores satisfy their interfaces at compile time.
var (
	_ domain.TenantStore      = (*store.TenantStore)(nil)
	_ domain.UserStore        = (*store.UserStore)(nil)
	_ domain.CompanyStore     = (*store.CompanyStore)(nil)
	_ domain.ContactStore     = (*store.ContactStore)(nil)
	_ domain.OpportunityStore = (*store.OpportunityStore)(nil)
	_ domain.CaptureStore     = (*store.CaptureStore)(nil)
	_ domain.ActivityStore    = (*store.ActivityStore)(nil)
	_ domain.DashboardStore   = (*store.DashboardStore)(nil)
	_ domain.RateLimitStore   = (*store.RateLimitStore)(nil)
	_ mw.TokenVerifier        = (*auth.TokenIssuer)(nil)
	_ mw.RequestLimiter       = (*service.RateLimiter)(nil)
)
