package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type AuditLog struct {
	ID           pgtype.UUID        `json:"id"`
	UserID       string             `json:"user_id"`
	Action       string             `json:"action"`
	ResourceType string             `json:"resource_type"`
	ResourceID   string             `json:"resource_id"`
	IpAddress    string             `json:"ip_address"`
	UserAgent    string             `json:"user_agent"`
	RequestID    string             `json:"request_id"`
	BeforeState  []byte             `json:"before_state"`
	AfterState   []byte             `json:"after_state"`
	Status       string             `json:"status"`
	ErrorMessage string             `json:"error_message"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}

type BankAccount struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Bank           string             `json:"bank"`
	AccountNumber  string             `json:"account_number"`
	Iban           string             `json:"iban"`
	InitialBalance pgtype.Numeric     `json:"initial_balance"`
	CurrentBalance pgtype.Numeric     `json:"current_balance"`
	Active         bool               `json:"active"`
	Version        int64              `json:"version"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

type BankTransaction struct {
	ID           string             `json:"id"`
	AccountID    string             `json:"account_id"`
	Date         pgtype.Date        `json:"date"`
	Debit        pgtype.Numeric     `json:"debit"`
	Credit       pgtype.Numeric     `json:"credit"`
	Category     string             `json:"category"`
	Description  string             `json:"description"`
	Reference    string             `json:"reference"`
	Reconciled   bool               `json:"reconciled"`
	ReconciledAt pgtype.Timestamptz `json:"reconciled_at"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

type ChartAccount struct {
	Code      string             `json:"code"`
	Label     string             `json:"label"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type Client struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Siret        pgtype.Text        `json:"siret"`
	Address      string             `json:"address"`
	PostalCode   string             `json:"postal_code"`
	City         string             `json:"city"`
	Country      string             `json:"country"`
	Email        string             `json:"email"`
	Phone        string             `json:"phone"`
	MainContact  string             `json:"main_contact"`
	VatNumber    string             `json:"vat_number"`
	PaymentTerms string             `json:"payment_terms"`
	Notes        string             `json:"notes"`
	Active       bool               `json:"active"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

type Company struct {
	ID              int16              `json:"id"`
	Name            string             `json:"name"`
	LegalForm       string             `json:"legal_form"`
	Siret           string             `json:"siret"`
	Address         string             `json:"address"`
	PostalCode      string             `json:"postal_code"`
	City            string             `json:"city"`
	Phone           string             `json:"phone"`
	Email           string             `json:"email"`
	VatRegime       string             `json:"vat_regime"`
	FiscalYearStart pgtype.Date        `json:"fiscal_year_start"`
	FiscalYearEnd   pgtype.Date        `json:"fiscal_year_end"`
	UpdatedAt       pgtype.Timestamptz `json:"updated_at"`
}

type DepreciationEntry struct {
	ID                     string             `json:"id"`
	AssetID                string             `json:"asset_id"`
	FiscalYear             int32              `json:"fiscal_year"`
	YearIndex              int32              `json:"year_index"`
	Amount                 pgtype.Numeric     `json:"amount"`
	CumulativeDepreciation pgtype.Numeric     `json:"cumulative_depreciation"`
	NetBookValue           pgtype.Numeric     `json:"net_book_value"`
	PostedAt               pgtype.Timestamptz `json:"posted_at"`
}

type FixedAsset struct {
	ID               string             `json:"id"`
	Designation      string             `json:"designation"`
	Category         string             `json:"category"`
	AccountCode      string             `json:"account_code"`
	AcquisitionDate  pgtype.Date        `json:"acquisition_date"`
	AcquisitionValue pgtype.Numeric     `json:"acquisition_value"`
	ResidualValue    pgtype.Numeric     `json:"residual_value"`
	UsefulLifeYears  int32              `json:"useful_life_years"`
	Method           string             `json:"method"`
	DecliningRate    pgtype.Numeric     `json:"declining_rate"`
	NetBookValue     pgtype.Numeric     `json:"net_book_value"`
	DisposalDate     pgtype.Date        `json:"disposal_date"`
	DisposalPrice    pgtype.Numeric     `json:"disposal_price"`
	Version          int64              `json:"version"`
	CreatedAt        pgtype.Timestamptz `json:"created_at"`
	UpdatedAt        pgtype.Timestamptz `json:"updated_at"`
}

type Invoice struct {
	ID                string             `json:"id"`
	Number            string             `json:"number"`
	Type              string             `json:"type"`
	IssueDate         pgtype.Date        `json:"issue_date"`
	DueDate           pgtype.Date        `json:"due_date"`
	Counterparty      string             `json:"counterparty"`
	CounterpartySiret string             `json:"counterparty_siret"`
	AmountExclTax     pgtype.Numeric     `json:"amount_excl_tax"`
	VatAmount         pgtype.Numeric     `json:"vat_amount"`
	AmountInclTax     pgtype.Numeric     `json:"amount_incl_tax"`
	PaidAmount        pgtype.Numeric     `json:"paid_amount"`
	RemainingAmount   pgtype.Numeric     `json:"remaining_amount"`
	Status            string             `json:"status"`
	Category          string             `json:"category"`
	Notes             string             `json:"notes"`
	CreatedAt         pgtype.Timestamptz `json:"created_at"`
	UpdatedAt         pgtype.Timestamptz `json:"updated_at"`
	ClientID          pgtype.Text        `json:"client_id"`
}

type InvoicePayment struct {
	ID        string             `json:"id"`
	InvoiceID string             `json:"invoice_id"`
	Date      pgtype.Date        `json:"date"`
	Amount    pgtype.Numeric     `json:"amount"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type Justificatif struct {
	ID            string             `json:"id"`
	OriginalName  string             `json:"original_name"`
	StoredName    string             `json:"stored_name"`
	MimeType      string             `json:"mime_type"`
	Size          int64              `json:"size"`
	Checksum      string             `json:"checksum"`
	Provider      string             `json:"provider"`
	StorageKey    string             `json:"storage_key"`
	Description   string             `json:"description"`
	DocumentType  string             `json:"document_type"`
	DocumentDate  pgtype.Date        `json:"document_date"`
	InvoiceID     pgtype.Text        `json:"invoice_id"`
	TransactionID pgtype.Text        `json:"transaction_id"`
	LedgerEntryID pgtype.Text        `json:"ledger_entry_id"`
	Archived      bool               `json:"archived"`
	ArchivedAt    pgtype.Timestamptz `json:"archived_at"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

type LedgerEntry struct {
	ID          string             `json:"id"`
	Date        pgtype.Date        `json:"date"`
	AccountCode string             `json:"account_code"`
	Label       string             `json:"label"`
	Debit       pgtype.Numeric     `json:"debit"`
	Credit      pgtype.Numeric     `json:"credit"`
	Journal     string             `json:"journal"`
	PieceNumber string             `json:"piece_number"`
	Lettering   pgtype.Text        `json:"lettering"`
	InvoiceID   pgtype.Text        `json:"invoice_id"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}

type VatDeclaration struct {
	ID         string             `json:"id"`
	PeriodFrom pgtype.Date        `json:"period_from"`
	PeriodTo   pgtype.Date        `json:"period_to"`
	Collected  pgtype.Numeric     `json:"collected"`
	Deductible pgtype.Numeric     `json:"deductible"`
	Due        pgtype.Numeric     `json:"due"`
	Status     string             `json:"status"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
}
