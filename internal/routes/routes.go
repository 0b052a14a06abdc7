package routes

import (
	"net/http"

	"github.com/habitboard/habitboard/internal/app"
	"github.com/habitboard/habitboard/internal/handler"
	"github.com/habitboard/habitboard/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	auth := handler.NewAuthHandler(app.AuthService, app.UserService)
	domain := handler.NewDomainHandler(app.DomainService)
	completion := handler.NewCompletionHandler(app.CompletionService)
	goal := handler.NewGoalHandler(app.GoalService)
	streak := handler.NewStreakHandler(app.StreakService)
	analytics := handler.NewAnalyticsHandler(app.AnalyticsService)
	export := handler.NewExportHandler(app.ExportService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /health", health.Health)

	// Auth (rate limited)
	rateLimiter := middleware.RateLimit(middleware.NewRateLimiter(app.Cfg.AuthRateLimit, app.Cfg.AuthRateWindow))

	mux.HandleFunc("POST /api/auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/auth/login", rateLimiter(auth.Login))

	// ============================================================================
	// PROTECTED ROUTES (/api/*)
	// ============================================================================

	// Account
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(auth.Me))
	mux.HandleFunc("DELETE /api/account", middleware.RequireAuth(auth.DeleteAccount))

	// Domains
	mux.HandleFunc("GET /api/domains", middleware.RequireAuth(domain.List))
	mux.HandleFunc("POST /api/domains", middleware.RequireAuth(domain.Create))
	mux.HandleFunc("GET /api/domains/templates", middleware.RequireAuth(domain.Templates))
	mux.HandleFunc("POST /api/domains/templates", middleware.RequireAuth(domain.CreateFromTemplates))
	mux.HandleFunc("GET /api/domains/{id}", middleware.RequireAuth(domain.Get))
	mux.HandleFunc("PATCH /api/domains/{id}", middleware.RequireAuth(domain.Update))
	mux.HandleFunc("DELETE /api/domains/{id}", middleware.RequireAuth(domain.Delete))

	// Completions
	mux.HandleFunc("GET /api/completions", middleware.RequireAuth(completion.List))
	mux.HandleFunc("POST /api/completions", middleware.RequireAuth(completion.Create))
	mux.HandleFunc("POST /api/completions/toggle", middleware.RequireAuth(completion.Toggle))
	mux.HandleFunc("DELETE /api/completions/{id}", middleware.RequireAuth(completion.Delete))

	// Goals & streaks
	mux.HandleFunc("GET /api/goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(goal.Upsert))
	mux.HandleFunc("DELETE /api/goals/{domainId}", middleware.RequireAuth(goal.Delete))
	mux.HandleFunc("GET /api/goals-and-streaks", middleware.RequireAuth(goal.Overview))
	mux.HandleFunc("GET /api/streaks", middleware.RequireAuth(streak.List))
	mux.HandleFunc("POST /api/streaks/recalculate", middleware.RequireAuth(streak.Recalculate))

	// Analytics
	mux.HandleFunc("GET /api/analytics", middleware.RequireAuth(analytics.Dashboard))

	// Export
	mux.HandleFunc("GET /api/export", middleware.RequireAuth(export.Download))
	mux.HandleFunc("POST /api/export/archive", middleware.RequireAuth(export.Archive))

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Recover,
		middleware.RequestLogging,
		middleware.CORS(app.Cfg.CORSAllowedOrigins),
		middleware.AuthMiddleware(app.AuthService, app.UserService),
	)

	return handler
}
