package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/usecase"
)

// CreateBankAccountRequest represents a request to open a bank account.
type CreateBankAccountRequest struct {
	Name           string          `json:"name"`
	Bank           string          `json:"bank"`
	AccountNumber  string          `json:"account_number"`
	IBAN           string          `json:"iban"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBankAccountRequest) ToUseCaseInput() usecase.CreateBankAccountInput {
	return usecase.CreateBankAccountInput{
		Name:           r.Name,
		Bank:           r.Bank,
		AccountNumber:  r.AccountNumber,
		IBAN:           r.IBAN,
		InitialBalance: r.InitialBalance,
	}
}

// UpdateBankAccountRequest changes descriptive fields of an account.
type UpdateBankAccountRequest struct {
	Name          string `json:"name"`
	Bank          string `json:"bank"`
	AccountNumber string `json:"account_number"`
	IBAN          string `json:"iban"`
	Active        *bool  `json:"active,omitempty"`
}

// ToUseCaseInput converts to use case input. Accounts stay active unless
// the request says otherwise.
func (r *UpdateBankAccountRequest) ToUseCaseInput(id string) usecase.UpdateBankAccountInput {
	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return usecase.UpdateBankAccountInput{
		ID:            id,
		Name:          r.Name,
		Bank:          r.Bank,
		AccountNumber: r.AccountNumber,
		IBAN:          r.IBAN,
		Active:        active,
	}
}

// BankTransactionRequest creates or replaces a bank transaction.
type BankTransactionRequest struct {
	AccountID   string          `json:"account_id"`
	Date        Date            `json:"date"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
}

// ToCreateInput converts to use case input.
func (r *BankTransactionRequest) ToCreateInput() usecase.CreateTransactionInput {
	return usecase.CreateTransactionInput{
		AccountID:   r.AccountID,
		Date:        r.Date.Time,
		Debit:       r.Debit,
		Credit:      r.Credit,
		Category:    r.Category,
		Description: r.Description,
		Reference:   r.Reference,
	}
}

// ToUpdateInput converts to use case input.
func (r *BankTransactionRequest) ToUpdateInput(id string) usecase.UpdateTransactionInput {
	return usecase.UpdateTransactionInput{
		ID:          id,
		AccountID:   r.AccountID,
		Date:        r.Date.Time,
		Debit:       r.Debit,
		Credit:      r.Credit,
		Category:    r.Category,
		Description: r.Description,
		Reference:   r.Reference,
	}
}

// ReconcileRequest toggles the reconciled flag.
type ReconcileRequest struct {
	Reconciled bool `json:"reconciled"`
}

// BankAccountResponse represents a bank account in API responses.
type BankAccountResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Bank           string          `json:"bank"`
	AccountNumber  string          `json:"account_number"`
	IBAN           string          `json:"iban"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	Active         bool            `json:"active"`
	Version        int64           `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// BankAccountFromDomain converts a domain account to a response.
func BankAccountFromDomain(a *domain.BankAccount) *BankAccountResponse {
	return &BankAccountResponse{
		ID:             a.ID,
		Name:           a.Name,
		Bank:           a.Bank,
		AccountNumber:  a.AccountNumber,
		IBAN:           a.IBAN,
		InitialBalance: a.InitialBalance,
		CurrentBalance: a.CurrentBalance,
		Active:         a.Active,
		Version:        a.Version,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// BankAccountsFromDomain converts domain accounts to responses.
func BankAccountsFromDomain(accounts []*domain.BankAccount) []*BankAccountResponse {
	out := make([]*BankAccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = BankAccountFromDomain(a)
	}
	return out
}

// BankTransactionResponse represents a bank transaction in API responses.
type BankTransactionResponse struct {
	ID           string          `json:"id"`
	AccountID    string          `json:"account_id"`
	Date         Date            `json:"date"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Reference    string          `json:"reference"`
	Reconciled   bool            `json:"reconciled"`
	ReconciledAt *time.Time      `json:"reconciled_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BankTransactionFromDomain converts a domain transaction to a response.
func BankTransactionFromDomain(t *domain.BankTransaction) *BankTransactionResponse {
	return &BankTransactionResponse{
		ID:           t.ID,
		AccountID:    t.AccountID,
		Date:         NewDate(t.Date),
		Debit:        t.Debit,
		Credit:       t.Credit,
		Category:     t.Category,
		Description:  t.Description,
		Reference:    t.Reference,
		Reconciled:   t.Reconciled,
		ReconciledAt: t.ReconciledAt,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// BankTransactionsFromDomain converts domain transactions to responses.
func BankTransactionsFromDomain(txs []*domain.BankTransaction) []*BankTransactionResponse {
	out := make([]*BankTransactionResponse, len(txs))
	for i, t := range txs {
		out[i] = BankTransactionFromDomain(t)
	}
	return out
}

// BankAccountStatsResponse summarizes one account's transactions.
type BankAccountStatsResponse struct {
	AccountID          string          `json:"account_id"`
	TotalCredits       decimal.Decimal `json:"total_credits"`
	TotalDebits        decimal.Decimal `json:"total_debits"`
	TransactionCount   int64           `json:"transaction_count"`
	ReconciledCount    int64           `json:"reconciled_count"`
	UnreconciledAmount decimal.Decimal `json:"unreconciled_amount"`
}

// BankAccountStatsFromDomain converts account stats.
func BankAccountStatsFromDomain(s *domain.BankAccountStats) *BankAccountStatsResponse {
	return &BankAccountStatsResponse{
		AccountID:          s.AccountID,
		TotalCredits:       s.TotalCredits,
		TotalDebits:        s.TotalDebits,
		TransactionCount:   s.TransactionCount,
		ReconciledCount:    s.ReconciledCount,
		UnreconciledAmount: s.UnreconciledAmount,
	}
}

// BankStatsResponse summarizes all accounts.
type BankStatsResponse struct {
	AccountCount     int64           `json:"account_count"`
	TotalBalance     decimal.Decimal `json:"total_balance"`
	TransactionCount int64           `json:"transaction_count"`
	TotalCredits     decimal.Decimal `json:"total_credits"`
	TotalDebits      decimal.Decimal `json:"total_debits"`
}

// BankStatsFromDomain converts global stats.
func BankStatsFromDomain(s *domain.BankStats) *BankStatsResponse {
	return &BankStatsResponse{
		AccountCount:     s.AccountCount,
		TotalBalance:     s.TotalBalance,
		TransactionCount: s.TransactionCount,
		TotalCredits:     s.TotalCredits,
		TotalDebits:      s.TotalDebits,
	}
}

// BalanceCheckResponse reports stored vs recomputed balance.
type BalanceCheckResponse struct {
	AccountID       string          `json:"account_id"`
	StoredBalance   decimal.Decimal `json:"stored_balance"`
	ExpectedBalance decimal.Decimal `json:"expected_balance"`
	Difference      decimal.Decimal `json:"difference"`
	Consistent      bool            `json:"consistent"`
	CheckedAt       time.Time       `json:"checked_at"`
}

// BalanceCheckFromDomain converts a balance check.
func BalanceCheckFromDomain(c *domain.BalanceCheck) *BalanceCheckResponse {
	return &BalanceCheckResponse{
		AccountID:       c.AccountID,
		StoredBalance:   c.StoredBalance,
		ExpectedBalance: c.ExpectedBalance,
		Difference:      c.Difference,
		Consistent:      c.Consistent,
		CheckedAt:       c.CheckedAt,
	}
}

// BalanceChecksFromDomain converts balance checks.
func BalanceChecksFromDomain(checks []*domain.BalanceCheck) []*BalanceCheckResponse {
	out := make([]*BalanceCheckResponse, len(checks))
	for i, c := range checks {
		out[i] = BalanceCheckFromDomain(c)
	}
	return out
}

// ReconciliationReportResponse summarises every balance check and the ledger check.
type ReconciliationReportResponse struct {
	TotalAccounts      int                     `json:"total_accounts"`
	ReconciledAccounts int                     `json:"reconciled_accounts"`
	Discrepancies      []*BalanceCheckResponse `json:"discrepancies"`
	Ledger             *ConsistencyResponse    `json:"ledger,omitempty"`
	CheckedAt          time.Time               `json:"checked_at"`
}

// ReconciliationReportFromDomain converts a reconciliation report.
func ReconciliationReportFromDomain(r *usecase.ReconciliationReport) *ReconciliationReportResponse {
	resp := &ReconciliationReportResponse{
		TotalAccounts:      r.TotalAccounts,
		ReconciledAccounts: r.ReconciledAccounts,
		Discrepancies:      BalanceChecksFromDomain(r.Discrepancies),
		CheckedAt:          r.CheckedAt,
	}
	if r.Ledger != nil {
		resp.Ledger = ConsistencyFromDomain(r.Ledger)
	}
	return resp
}
