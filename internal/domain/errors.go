package domain

import "errors"

var (
	// Not found errors
	ErrAssetNotFound         = errors.New("fixed asset not found")
	ErrBankAccountNotFound   = errors.New("bank account not found")
	ErrTransactionNotFound   = errors.New("bank transaction not found")
	ErrLedgerEntryNotFound   = errors.New("ledger entry not found")
	ErrChartAccountNotFound  = errors.New("chart account not found")
	ErrInvoiceNotFound       = errors.New("invoice not found")
	ErrJustificatifNotFound  = errors.New("justificatif not found")
	ErrDeclarationNotFound   = errors.New("vat declaration not found")
	ErrDepreciationNotPosted = errors.New("depreciation entry not found")
	ErrClientNotFound        = errors.New("client not found")
	ErrCompanyNotFound       = errors.New("company profile not found")

	// Depreciation errors
	ErrOutOfPeriod               = errors.New("fiscal year is outside the asset depreciation period")
	ErrAssetDisposed             = errors.New("asset was disposed before the requested fiscal year")
	ErrDepreciationSequence      = errors.New("depreciation must be posted for consecutive fiscal years")
	ErrDepreciationAlreadyPosted = errors.New("depreciation already posted for this fiscal year")
	ErrInvalidAsset              = errors.New("invalid fixed asset")
	ErrInvalidDisposal           = errors.New("invalid asset disposal")

	// Ledger errors
	ErrInvalidLedgerEntry = errors.New("ledger entry must carry either a debit or a credit")
	ErrInvalidJournal     = errors.New("invalid journal code")
	ErrInvalidAccountCode = errors.New("invalid chart account code")
	ErrChartAccountExists = errors.New("chart account already exists")

	// Bank errors
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidTransaction  = errors.New("bank transaction must carry either a debit or a credit")
	ErrConcurrencyConflict = errors.New("concurrent modification detected")

	// Invoice and VAT errors
	ErrInvalidInvoice     = errors.New("invalid invoice")
	ErrInvoiceNumberTaken = errors.New("invoice number already used")
	ErrInvalidPeriod      = errors.New("invalid period")
	ErrInvalidDeclaration = errors.New("invalid vat declaration")

	// Client and company errors
	ErrInvalidClient     = errors.New("invalid client")
	ErrClientSIRETTaken  = errors.New("a client with this SIRET already exists")
	ErrClientHasInvoices = errors.New("client has invoices; deactivate it instead")
	ErrInvalidCompany    = errors.New("invalid company profile")

	// Report errors
	ErrInvalidReportType = errors.New("unknown report type")

	// Justificatif errors
	ErrFileTooLarge        = errors.New("file exceeds maximum upload size")
	ErrEmptyFile           = errors.New("file is empty")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
