package usecase

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/domain"
)

// AssetRepository defines data access for fixed assets.
type AssetRepository interface {
	Create(ctx context.Context, asset *domain.FixedAsset) error
	GetByID(ctx context.Context, id string) (*domain.FixedAsset, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.FixedAsset, error)
	List(ctx context.Context, limit, offset int) ([]*domain.FixedAsset, error)
	// UpdateNetBookValue fails with domain.ErrConcurrencyConflict when version moved.
	UpdateNetBookValue(ctx context.Context, tx Transaction, id string, nbv decimal.Decimal, version int64, updatedAt time.Time) error
	RecordDisposal(ctx context.Context, tx Transaction, id string, disposedAt time.Time, price decimal.Decimal, version int64, updatedAt time.Time) error
}

// DepreciationRepository defines data access for posted depreciation entries.
type DepreciationRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.DepreciationEntry) error
	ListByAsset(ctx context.Context, assetID string) ([]*domain.DepreciationEntry, error)
	ListByAssetTx(ctx context.Context, tx Transaction, assetID string) ([]*domain.DepreciationEntry, error)
}

// BankAccountRepository defines data access for bank accounts.
type BankAccountRepository interface {
	Create(ctx context.Context, account *domain.BankAccount) error
	GetByID(ctx context.Context, id string) (*domain.BankAccount, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.BankAccount, error)
	List(ctx context.Context, limit, offset int) ([]*domain.BankAccount, error)
	Update(ctx context.Context, account *domain.BankAccount) error
	Delete(ctx context.Context, id string) error
	// UpdateBalance is a compare-and-swap on version; it fails with
	// domain.ErrConcurrencyConflict when the row changed since it was read.
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, version int64, updatedAt time.Time) error
	GlobalStats(ctx context.Context) (*domain.BankStats, error)
}

// BankTransactionRepository defines data access for bank transactions.
type BankTransactionRepository interface {
	Create(ctx context.Context, tx Transaction, t *domain.BankTransaction) error
	GetByID(ctx context.Context, id string) (*domain.BankTransaction, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.BankTransaction, error)
	Update(ctx context.Context, tx Transaction, t *domain.BankTransaction) error
	Delete(ctx context.Context, tx Transaction, id string) error
	List(ctx context.Context, filter domain.BankTransactionFilter) ([]*domain.BankTransaction, error)
	SetReconciled(ctx context.Context, id string, reconciled bool, at *time.Time) error
	Stats(ctx context.Context, accountID string) (*domain.BankAccountStats, error)
}

// LedgerRepository defines data access for ledger entries.
type LedgerRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	GetByIDs(ctx context.Context, ids []string) ([]*domain.LedgerEntry, error)
	List(ctx context.Context, filter domain.LedgerFilter) ([]*domain.LedgerEntry, error)
	SetLettering(ctx context.Context, ids []string, code *string) (int64, error)
	PieceTotals(ctx context.Context) ([]domain.PieceImbalance, error)
	// AccountBalances sums entries per account; a nil from means since the beginning.
	AccountBalances(ctx context.Context, from *time.Time, to time.Time) ([]domain.AccountBalance, error)
}

// ChartRepository defines data access for the chart of accounts.
type ChartRepository interface {
	Create(ctx context.Context, account *domain.ChartAccount) error
	GetByCode(ctx context.Context, code string) (*domain.ChartAccount, error)
	List(ctx context.Context) ([]*domain.ChartAccount, error)
}

// InvoiceRepository defines data access for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, tx Transaction, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Invoice, error)
	Update(ctx context.Context, tx Transaction, invoice *domain.Invoice) error
	UpdatePayment(ctx context.Context, tx Transaction, invoice *domain.Invoice) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]*domain.Invoice, error)
	Stats(ctx context.Context, asOf time.Time) (*domain.InvoiceStats, error)
	// MaxSequence returns the highest numeric suffix among numbers starting with prefix.
	MaxSequence(ctx context.Context, prefix string) (int, error)
	VATTotals(ctx context.Context, period domain.Period) (collected, deductible decimal.Decimal, err error)
	CreatePayment(ctx context.Context, tx Transaction, payment *domain.InvoicePayment) error
	// ListSalePayments returns payments on sales invoices, oldest first; year 0 means every year.
	ListSalePayments(ctx context.Context, year int) ([]domain.SalePayment, error)
}

// ClientRepository defines data access for clients.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, filter domain.ClientFilter) ([]*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	ToggleActive(ctx context.Context, id string, at time.Time) (bool, error)
	Delete(ctx context.Context, id string) error
	CountInvoices(ctx context.Context, id string) (int64, error)
}

// CompanyRepository defines data access for the company profile.
type CompanyRepository interface {
	Get(ctx context.Context) (*domain.Company, error)
	Save(ctx context.Context, company *domain.Company) error
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// VATRepository defines data access for VAT declarations.
type VATRepository interface {
	Create(ctx context.Context, declaration *domain.VATDeclaration) error
	List(ctx context.Context, limit, offset int) ([]*domain.VATDeclaration, error)
}

// JustificatifRepository defines data access for justificatif metadata.
type JustificatifRepository interface {
	Create(ctx context.Context, j *domain.Justificatif) error
	GetByID(ctx context.Context, id string) (*domain.Justificatif, error)
	List(ctx context.Context, filter domain.JustificatifFilter) ([]*domain.Justificatif, error)
	Archive(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

// ObjectStore stores justificatif bytes.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Provider() domain.StorageProvider
}

// ReportExporter renders tabular reports into a downloadable document.
type ReportExporter interface {
	Write(w io.Writer, sheets ...Sheet) error
	ContentType() string
	Extension() string
}

// TokenIssuer issues and verifies access tokens.
type TokenIssuer interface {
	Generate(user *domain.User) (string, time.Time, error)
	Verify(token string) (*domain.User, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a pending key so the request can be retried.
	Release(ctx context.Context, key string) error
}
