package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Fixed asset metrics
	AssetsCreated      prometheus.Counter
	AssetsDisposed     prometheus.Counter
	DepreciationPosted prometheus.Counter
	DepreciationAmount prometheus.Histogram

	// Bank metrics
	BankTransactions      *prometheus.CounterVec
	BalanceUpdateDuration prometheus.Histogram
	BalanceConflicts      prometheus.Counter
	BalanceDiscrepancies  prometheus.Gauge

	// Ledger metrics
	LedgerEntriesCreated *prometheus.CounterVec
	UnbalancedPieces     prometheus.Gauge

	// Invoice metrics
	InvoicesCreated *prometheus.CounterVec
	PaymentsApplied prometheus.Counter

	// Report metrics
	ReportsGenerated *prometheus.CounterVec

	// Justificatif metrics
	JustificatifsUploaded prometheus.Counter
	UploadedBytes         prometheus.Counter

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics on the default registerer
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates and registers all Prometheus metrics on reg
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Fixed asset metrics
		AssetsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "compta_assets_created_total",
			Help: "Total number of fixed assets recorded",
		}),
		AssetsDisposed: factory.NewCounter(prometheus.CounterOpts{
			Name: "compta_assets_disposed_total",
			Help: "Total number of fixed asset disposals",
		}),
		DepreciationPosted: factory.NewCounter(prometheus.CounterOpts{
			Name: "compta_depreciation_posted_total",
			Help: "Total number of yearly depreciations posted",
		}),
		DepreciationAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "compta_depreciation_amount",
			Help:    "Posted depreciation amounts",
			Buckets: []float64{10, 100, 1000, 10000, 100000, 1000000},
		}),

		// Bank metrics
		BankTransactions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compta_bank_transactions_total",
				Help: "Bank transaction mutations by operation",
			},
			[]string{"operation"},
		),
		BalanceUpdateDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "compta_balance_update_duration_seconds",
			Help:    "Duration of bank balance updates including retries",
			Buckets: prometheus.DefBuckets,
		}),
		BalanceConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "compta_balance_conflicts_total",
			Help: "Balance updates that lost a concurrent race",
		}),
		BalanceDiscrepancies: factory.NewGauge(prometheus.GaugeOpts{
			Name: "compta_balance_discrepancies",
			Help: "Bank accounts whose stored balance differs from their history at last verification",
		}),

		// Ledger metrics
		LedgerEntriesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compta_ledger_entries_created_total",
				Help: "Ledger entries created by journal",
			},
			[]string{"journal"},
		),
		UnbalancedPieces: factory.NewGauge(prometheus.GaugeOpts{
			Name: "compta_unbalanced_pieces",
			Help: "Pieces whose debits differ from their credits at last consistency check",
		}),

		// Invoice metrics
		InvoicesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compta_invoices_created_total",
				Help: "Invoices created by type",
			},
			[]string{"type"},
		),
		PaymentsApplied: factory.NewCounter(prometheus.CounterOpts{
			Name: "compta_invoice_payments_total",
			Help: "Invoice payments recorded",
		}),

		// Report metrics
		ReportsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compta_reports_generated_total",
				Help: "Reports served by type and cache outcome",
			},
			[]string{"type", "cache"},
		),

		// Justificatif metrics
		JustificatifsUploaded: factory.NewCounter(prometheus.CounterOpts{
			Name: "compta_justificatifs_uploaded_total",
			Help: "Total number of justificatifs uploaded",
		}),
		UploadedBytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "compta_justificatif_bytes_total",
			Help: "Total bytes of justificatifs uploaded",
		}),

		// Authentication metrics
		AuthAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compta_auth_attempts_total",
				Help: "Login attempts by result",
			},
			[]string{"result"},
		),

		// Audit metrics
		AuditLogsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compta_audit_logs_total",
				Help: "Audit log entries written by action",
			},
			[]string{"action"},
		),

		// Rate limiting metrics
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compta_rate_limit_hits_total",
				Help: "Requests rejected by the rate limiter",
			},
			[]string{"path"},
		),
	}
}
