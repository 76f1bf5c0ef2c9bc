package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/usecase"
)

// CreateEntryRequest represents one ledger line.
type CreateEntryRequest struct {
	Date        Date            `json:"date"`
	AccountCode string          `json:"account_code"`
	Label       string          `json:"label"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Journal     string          `json:"journal"`
	PieceNumber string          `json:"piece_number"`
	InvoiceID   *string         `json:"invoice_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEntryRequest) ToUseCaseInput() usecase.CreateEntryInput {
	return usecase.CreateEntryInput{
		Date:        r.Date.Time,
		AccountCode: r.AccountCode,
		Label:       r.Label,
		Debit:       r.Debit,
		Credit:      r.Credit,
		Journal:     domain.Journal(r.Journal),
		PieceNumber: r.PieceNumber,
		InvoiceID:   r.InvoiceID,
	}
}

// CreateEntriesRequest books several lines atomically.
type CreateEntriesRequest struct {
	Entries []CreateEntryRequest `json:"entries"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEntriesRequest) ToUseCaseInput() []usecase.CreateEntryInput {
	inputs := make([]usecase.CreateEntryInput, len(r.Entries))
	for i := range r.Entries {
		inputs[i] = r.Entries[i].ToUseCaseInput()
	}
	return inputs
}

// LetterRequest tags (or untags) entries with a lettering code.
type LetterRequest struct {
	IDs  []string `json:"ids"`
	Code string   `json:"code,omitempty"`
}

// CreateChartAccountRequest adds an account to the chart.
type CreateChartAccountRequest struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// LedgerEntryResponse represents a ledger line in API responses.
type LedgerEntryResponse struct {
	ID          string          `json:"id"`
	Date        Date            `json:"date"`
	AccountCode string          `json:"account_code"`
	Label       string          `json:"label"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Journal     string          `json:"journal"`
	PieceNumber string          `json:"piece_number"`
	Lettering   *string         `json:"lettering,omitempty"`
	InvoiceID   *string         `json:"invoice_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// LedgerEntryFromDomain converts a domain entry to a response.
func LedgerEntryFromDomain(e *domain.LedgerEntry) *LedgerEntryResponse {
	return &LedgerEntryResponse{
		ID:          e.ID,
		Date:        NewDate(e.Date),
		AccountCode: e.AccountCode,
		Label:       e.Label,
		Debit:       e.Debit,
		Credit:      e.Credit,
		Journal:     string(e.Journal),
		PieceNumber: e.PieceNumber,
		Lettering:   e.Lettering,
		InvoiceID:   e.InvoiceID,
		CreatedAt:   e.CreatedAt,
	}
}

// LedgerEntriesFromDomain converts domain entries to responses.
func LedgerEntriesFromDomain(entries []*domain.LedgerEntry) []*LedgerEntryResponse {
	out := make([]*LedgerEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = LedgerEntryFromDomain(e)
	}
	return out
}

// ChartAccountResponse represents an account of the chart.
type ChartAccountResponse struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Class int    `json:"class"`
	Kind  string `json:"kind"`
}

// ChartAccountsFromDomain converts chart accounts to responses.
func ChartAccountsFromDomain(accounts []*domain.ChartAccount) []*ChartAccountResponse {
	out := make([]*ChartAccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = ChartAccountFromDomain(a)
	}
	return out
}

// ChartAccountFromDomain converts a chart account to a response.
func ChartAccountFromDomain(a *domain.ChartAccount) *ChartAccountResponse {
	return &ChartAccountResponse{
		Code:  a.Code,
		Label: a.Label,
		Class: a.Class(),
		Kind:  string(a.Kind()),
	}
}

// PieceImbalanceResponse is one unbalanced piece.
type PieceImbalanceResponse struct {
	PieceNumber string          `json:"piece_number"`
	Journal     string          `json:"journal"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Difference  decimal.Decimal `json:"difference"`
}

// ConsistencyResponse is the informational ledger consistency report.
type ConsistencyResponse struct {
	TotalDebit  decimal.Decimal           `json:"total_debit"`
	TotalCredit decimal.Decimal           `json:"total_credit"`
	Balanced    bool                      `json:"balanced"`
	Imbalances  []*PieceImbalanceResponse `json:"imbalances"`
}

// ConsistencyFromDomain converts a consistency report.
func ConsistencyFromDomain(r *domain.ConsistencyReport) *ConsistencyResponse {
	resp := &ConsistencyResponse{
		TotalDebit:  r.TotalDebit,
		TotalCredit: r.TotalCredit,
		Balanced:    r.Balanced,
		Imbalances:  make([]*PieceImbalanceResponse, len(r.Imbalances)),
	}
	for i, p := range r.Imbalances {
		resp.Imbalances[i] = &PieceImbalanceResponse{
			PieceNumber: p.PieceNumber,
			Journal:     string(p.Journal),
			TotalDebit:  p.TotalDebit,
			TotalCredit: p.TotalCredit,
			Difference:  p.Difference,
		}
	}

	return resp
}
