package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/usecase"
)

// InvoiceRequest creates or replaces an invoice.
type InvoiceRequest struct {
	Number            string          `json:"number"`
	Type              string          `json:"type"`
	IssueDate         Date            `json:"issue_date"`
	DueDate           *Date           `json:"due_date,omitempty"`
	Counterparty      string          `json:"counterparty"`
	CounterpartySIRET string          `json:"counterparty_siret,omitempty"`
	AmountExclTax     decimal.Decimal `json:"amount_excl_tax"`
	VATAmount         decimal.Decimal `json:"vat_amount"`
	AmountInclTax     decimal.Decimal `json:"amount_incl_tax"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	Category          string          `json:"category,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	ClientID          *string         `json:"client_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *InvoiceRequest) ToUseCaseInput() usecase.InvoiceInput {
	return usecase.InvoiceInput{
		Number:            r.Number,
		Type:              domain.InvoiceType(r.Type),
		IssueDate:         r.IssueDate.Time,
		DueDate:           datePtr(r.DueDate),
		Counterparty:      r.Counterparty,
		CounterpartySIRET: r.CounterpartySIRET,
		AmountExclTax:     r.AmountExclTax,
		VATAmount:         r.VATAmount,
		AmountInclTax:     r.AmountInclTax,
		PaidAmount:        r.PaidAmount,
		Category:          r.Category,
		Notes:             r.Notes,
		ClientID:          r.ClientID,
	}
}

// PaymentRequest sets the amount paid so far. PaidOn defaults to today.
type PaymentRequest struct {
	PaidAmount decimal.Decimal `json:"paid_amount"`
	PaidOn     *Date           `json:"paid_on,omitempty"`
}

// NextNumberRequest asks for the next free invoice number.
type NextNumberRequest struct {
	Type string `json:"type"`
	Year int    `json:"year,omitempty"`
}

// NextNumberResponse carries the proposed number.
type NextNumberResponse struct {
	Number string `json:"number"`
}

// InvoiceResponse represents an invoice in API responses.
type InvoiceResponse struct {
	ID                string          `json:"id"`
	Number            string          `json:"number"`
	Type              string          `json:"type"`
	IssueDate         Date            `json:"issue_date"`
	DueDate           *Date           `json:"due_date,omitempty"`
	Counterparty      string          `json:"counterparty"`
	CounterpartySIRET string          `json:"counterparty_siret,omitempty"`
	AmountExclTax     decimal.Decimal `json:"amount_excl_tax"`
	VATAmount         decimal.Decimal `json:"vat_amount"`
	AmountInclTax     decimal.Decimal `json:"amount_incl_tax"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	RemainingAmount   decimal.Decimal `json:"remaining_amount"`
	Status            string          `json:"status"`
	Category          string          `json:"category,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	ClientID          *string         `json:"client_id,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// InvoiceFromDomain converts a domain invoice to a response.
func InvoiceFromDomain(i *domain.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:                i.ID,
		Number:            i.Number,
		Type:              string(i.Type),
		IssueDate:         NewDate(i.IssueDate),
		DueDate:           fromTimePtr(i.DueDate),
		Counterparty:      i.Counterparty,
		CounterpartySIRET: i.CounterpartySIRET,
		AmountExclTax:     i.AmountExclTax,
		VATAmount:         i.VATAmount,
		AmountInclTax:     i.AmountInclTax,
		PaidAmount:        i.PaidAmount,
		RemainingAmount:   i.RemainingAmount,
		Status:            string(i.Status),
		Category:          i.Category,
		Notes:             i.Notes,
		ClientID:          i.ClientID,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

// InvoicesFromDomain converts domain invoices to responses.
func InvoicesFromDomain(invoices []*domain.Invoice) []*InvoiceResponse {
	out := make([]*InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		out[i] = InvoiceFromDomain(inv)
	}
	return out
}

// InvoiceStatsResponse summarizes invoices.
type InvoiceStatsResponse struct {
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	TotalUnpaid    decimal.Decimal `json:"total_unpaid"`
	UnpaidCount    int64           `json:"unpaid_count"`
	OverdueCount   int64           `json:"overdue_count"`
	SalesCount     int64           `json:"sales_count"`
}

// InvoiceStatsFromDomain converts invoice stats.
func InvoiceStatsFromDomain(s *domain.InvoiceStats) *InvoiceStatsResponse {
	return &InvoiceStatsResponse{
		TotalSales:     s.TotalSales,
		TotalPurchases: s.TotalPurchases,
		TotalUnpaid:    s.TotalUnpaid,
		UnpaidCount:    s.UnpaidCount,
		OverdueCount:   s.OverdueCount,
		SalesCount:     s.SalesCount,
	}
}

// PaidOnTime returns the payment date, nil when omitted.
func (r *PaymentRequest) PaidOnTime() *time.Time {
	return datePtr(r.PaidOn)
}
