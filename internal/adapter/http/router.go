package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iho/finplan/internal/adapter/http/handler"
	"github.com/iho/finplan/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransactionHandler  *handler.TransactionHandler
	BudgetHandler       *handler.BudgetHandler
	GoalHandler         *handler.GoalHandler
	RecurringHandler    *handler.RecurringHandler
	ForecastHandler     *handler.ForecastHandler
	NotificationHandler *handler.NotificationHandler
	CurrencyHandler     *handler.CurrencyHandler
	SettingsHandler     *handler.SettingsHandler
	HealthHandler       *handler.HealthHandler

	Logging     *middleware.LoggingMiddleware
	Metrics     *middleware.MetricsMiddleware
	RateLimiter *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	}
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/", cfg.TransactionHandler.List)
			r.Put("/{id}", cfg.TransactionHandler.Update)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
		})
		r.Get("/totals", cfg.TransactionHandler.Totals)
		r.Get("/categories", cfg.TransactionHandler.Categories)

		// Budgets
		r.Route("/budgets", func(r chi.Router) {
			r.Post("/", cfg.BudgetHandler.Create)
			r.Get("/", cfg.BudgetHandler.List)
			r.Put("/{id}", cfg.BudgetHandler.Update)
			r.Delete("/{id}", cfg.BudgetHandler.Delete)
			r.Get("/spending", cfg.BudgetHandler.Spending)
		})

		// Goals
		r.Route("/goals", func(r chi.Router) {
			r.Post("/", cfg.GoalHandler.Create)
			r.Get("/", cfg.GoalHandler.List)
			r.Put("/{id}", cfg.GoalHandler.Update)
			r.Delete("/{id}", cfg.GoalHandler.Delete)
			r.Post("/{id}/add", cfg.GoalHandler.AddMoney)
			r.Post("/allocate", cfg.GoalHandler.Allocate)
			r.Put("/priority", cfg.GoalHandler.SetPriority)
			r.Get("/auto-allocation", cfg.GoalHandler.GetAutoAllocation)
			r.Put("/auto-allocation", cfg.GoalHandler.UpdateAutoAllocation)
		})
		r.Get("/achievements", cfg.GoalHandler.Achievements)

		// Recurring obligations
		r.Route("/recurring", func(r chi.Router) {
			r.Post("/", cfg.RecurringHandler.Create)
			r.Get("/", cfg.RecurringHandler.List)
			r.Put("/{id}", cfg.RecurringHandler.Update)
			r.Delete("/{id}", cfg.RecurringHandler.Delete)
			r.Post("/process", cfg.RecurringHandler.Process)
			r.Get("/upcoming", cfg.RecurringHandler.Upcoming)
			r.Get("/overdue", cfg.RecurringHandler.Overdue)
		})

		// Forecast and reports
		r.Route("/forecast", func(r chi.Router) {
			r.Post("/", cfg.ForecastHandler.Project)
			r.Get("/", cfg.ForecastHandler.Project)
			r.Get("/historical-average", cfg.ForecastHandler.HistoricalAverage)
		})
		r.Route("/reports", func(r chi.Router) {
			r.Get("/monthly", cfg.ForecastHandler.MonthlyReport)
			r.Get("/yearly", cfg.ForecastHandler.YearlyReport)
			r.Get("/net-worth", cfg.ForecastHandler.NetWorthHistory)
			r.Get("/trends", cfg.ForecastHandler.Trends)
			r.Get("/categories", cfg.ForecastHandler.Categories)
		})

		// Notifications
		r.Route("/notifications", func(r chi.Router) {
			r.Post("/generate", cfg.NotificationHandler.Generate)
			r.Get("/", cfg.NotificationHandler.List)
			r.Get("/unread", cfg.NotificationHandler.Unread)
			r.Get("/high-priority", cfg.NotificationHandler.HighPriority)
			r.Put("/{id}/read", cfg.NotificationHandler.MarkRead)
			r.Put("/read-all", cfg.NotificationHandler.MarkAllRead)
			r.Delete("/{id}", cfg.NotificationHandler.Delete)
			r.Delete("/", cfg.NotificationHandler.Clear)
			r.Get("/settings", cfg.NotificationHandler.GetSettings)
			r.Put("/settings", cfg.NotificationHandler.UpdateSettings)
		})

		// Currencies
		r.Route("/currencies", func(r chi.Router) {
			r.Get("/", cfg.CurrencyHandler.List)
			r.Post("/", cfg.CurrencyHandler.Add)
			r.Delete("/{code}", cfg.CurrencyHandler.Remove)
			r.Post("/refresh", cfg.CurrencyHandler.Refresh)
			r.Get("/convert", cfg.CurrencyHandler.Convert)
			r.Put("/user/{code}", cfg.CurrencyHandler.SetUserCurrency)
		})

		// Settings
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", cfg.SettingsHandler.Get)
			r.Put("/", cfg.SettingsHandler.Update)
		})
		r.Post("/clear-all", cfg.SettingsHandler.ClearAll)
	})

	return r
}
