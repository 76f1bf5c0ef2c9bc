package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/compta/internal/adapter/http/handler"
	"github.com/iho/compta/internal/adapter/http/middleware"
	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AssetHandler        *handler.AssetHandler
	BankHandler         *handler.BankHandler
	LedgerHandler       *handler.LedgerHandler
	ReportHandler       *handler.ReportHandler
	InvoiceHandler      *handler.InvoiceHandler
	ClientHandler       *handler.ClientHandler
	CompanyHandler      *handler.CompanyHandler
	RevenueHandler      *handler.RevenueHandler
	VATHandler          *handler.VATHandler
	JustificatifHandler *handler.JustificatifHandler
	AuthHandler         *handler.AuthHandler
	AuditHandler        *handler.AuditHandler
	HealthHandler       *handler.HealthHandler

	Logger zerolog.Logger

	// Optional; a nil value disables the corresponding middleware.
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	HTTPMetrics      *middleware.HTTPMetrics
	MetricsHandler   http.Handler
	TokenVerifier    middleware.TokenVerifier
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.HTTPMetrics != nil {
		r.Use(cfg.HTTPMetrics.Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
		}
		r.Use(middleware.AuditContext)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", cfg.AuthHandler.Login)
			r.Post("/verify", cfg.AuthHandler.Verify)
		})

		r.Group(func(r chi.Router) {
			authEnabled := cfg.TokenVerifier != nil
			if authEnabled {
				r.Use(middleware.AuthMiddleware(cfg.TokenVerifier))
				r.Use(middleware.AuditContext)
				r.Use(middleware.RequirePermission)
			}

			r.Route("/assets", func(r chi.Router) {
				r.Post("/", cfg.AssetHandler.Create)
				r.Get("/", cfg.AssetHandler.List)
				r.Get("/{id}", cfg.AssetHandler.Get)
				r.Get("/{id}/depreciation", cfg.AssetHandler.ComputeDepreciation)
				r.Post("/{id}/depreciation", cfg.AssetHandler.PostDepreciation)
				r.Get("/{id}/depreciation/entries", cfg.AssetHandler.Entries)
				r.Get("/{id}/depreciation/schedule", cfg.AssetHandler.Schedule)
				r.Post("/{id}/dispose", cfg.AssetHandler.Dispose)
			})

			r.Route("/bank", func(r chi.Router) {
				r.Get("/stats", cfg.BankHandler.GlobalStats)
				r.Get("/verify", cfg.BankHandler.VerifyAll)

				r.Route("/accounts", func(r chi.Router) {
					if authEnabled {
						r.Use(middleware.RequireRole(domain.RoleAdmin))
					}
					r.Post("/", cfg.BankHandler.CreateAccount)
					r.Get("/", cfg.BankHandler.ListAccounts)
					r.Get("/{id}", cfg.BankHandler.GetAccount)
					r.Put("/{id}", cfg.BankHandler.UpdateAccount)
					r.Delete("/{id}", cfg.BankHandler.DeleteAccount)
					r.Get("/{id}/transactions", cfg.BankHandler.AccountTransactions)
					r.Get("/{id}/unreconciled", cfg.BankHandler.Unreconciled)
					r.Get("/{id}/stats", cfg.BankHandler.AccountStats)
					r.Get("/{id}/verify", cfg.BankHandler.VerifyAccount)
				})

				r.Route("/transactions", func(r chi.Router) {
					r.Post("/", cfg.BankHandler.CreateTransaction)
					r.Get("/", cfg.BankHandler.ListTransactions)
					r.Put("/{id}", cfg.BankHandler.UpdateTransaction)
					r.Delete("/{id}", cfg.BankHandler.DeleteTransaction)
					r.Patch("/{id}/reconcile", cfg.BankHandler.Reconcile)
				})
			})

			r.Route("/ledger", func(r chi.Router) {
				r.Post("/entries", cfg.LedgerHandler.CreateEntry)
				r.Post("/entries/batch", cfg.LedgerHandler.CreateEntries)
				r.Get("/entries", cfg.LedgerHandler.ListEntries)
				r.Post("/entries/letter", cfg.LedgerHandler.Letter)
				r.Post("/entries/unletter", cfg.LedgerHandler.Unletter)
				r.Get("/accounts", cfg.LedgerHandler.ListAccounts)
				r.Post("/accounts", cfg.LedgerHandler.CreateAccount)
				r.Get("/consistency", cfg.LedgerHandler.Consistency)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/journal", cfg.ReportHandler.Journal)
				r.Get("/grand-livre", cfg.ReportHandler.GeneralLedger)
				r.Get("/balance", cfg.ReportHandler.TrialBalance)
				r.Get("/bilan", cfg.ReportHandler.BalanceSheet)
				r.Get("/compte-resultat", cfg.ReportHandler.IncomeStatement)
				r.Get("/export/{type}", cfg.ReportHandler.Export)
			})

			r.Route("/invoices", func(r chi.Router) {
				r.Post("/", cfg.InvoiceHandler.Create)
				r.Get("/", cfg.InvoiceHandler.List)
				r.Get("/overdue", cfg.InvoiceHandler.Overdue)
				r.Get("/stats", cfg.InvoiceHandler.Stats)
				r.Post("/next-number", cfg.InvoiceHandler.NextNumber)
				r.Get("/{id}", cfg.InvoiceHandler.Get)
				r.Put("/{id}", cfg.InvoiceHandler.Update)
				r.Delete("/{id}", cfg.InvoiceHandler.Delete)
				r.Patch("/{id}/payment", cfg.InvoiceHandler.RecordPayment)
			})

			r.Route("/clients", func(r chi.Router) {
				r.Post("/", cfg.ClientHandler.Create)
				r.Get("/", cfg.ClientHandler.List)
				r.Get("/active", cfg.ClientHandler.ListActive)
				r.Get("/{id}", cfg.ClientHandler.Get)
				r.Put("/{id}", cfg.ClientHandler.Update)
				r.Delete("/{id}", cfg.ClientHandler.Delete)
				r.Patch("/{id}/toggle-active", cfg.ClientHandler.ToggleActive)
				r.Get("/{id}/invoices", cfg.ClientHandler.Invoices)
				r.Get("/{id}/stats", cfg.ClientHandler.Stats)
			})

			r.Route("/company", func(r chi.Router) {
				if authEnabled {
					r.Use(middleware.RequireRole(domain.RoleAdmin))
				}
				r.Get("/", cfg.CompanyHandler.Get)
				r.Put("/", cfg.CompanyHandler.Save)
			})

			r.Route("/revenue", func(r chi.Router) {
				r.Get("/monthly", cfg.RevenueHandler.Monthly)
				r.Get("/stats", cfg.RevenueHandler.Stats)
				r.Get("/years", cfg.RevenueHandler.Years)
				r.Get("/by-client", cfg.RevenueHandler.ByClient)
			})

			r.Route("/vat", func(r chi.Router) {
				r.Get("/compute", cfg.VATHandler.Compute)
				r.Post("/declarations", cfg.VATHandler.CreateDeclaration)
				r.Get("/declarations", cfg.VATHandler.ListDeclarations)
			})

			r.Route("/audit", func(r chi.Router) {
				if authEnabled {
					r.Use(middleware.RestrictToRole(domain.RoleAdmin))
				}
				r.Get("/", cfg.AuditHandler.List)
			})

			r.Route("/justificatifs", func(r chi.Router) {
				r.Post("/", cfg.JustificatifHandler.Upload)
				r.Get("/", cfg.JustificatifHandler.List)
				r.Get("/{id}", cfg.JustificatifHandler.Get)
				r.Get("/{id}/download", cfg.JustificatifHandler.Download)
				r.Post("/{id}/archive", cfg.JustificatifHandler.Archive)
				r.Delete("/{id}", cfg.JustificatifHandler.Delete)
			})
		})
	})

	return r
}
