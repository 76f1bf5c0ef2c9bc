package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType distinguishes sales from purchases.
type InvoiceType string

const (
	InvoiceSale     InvoiceType = "vente"
	InvoicePurchase InvoiceType = "achat"
)

// IsValid reports whether the type is known.
func (t InvoiceType) IsValid() bool {
	return t == InvoiceSale || t == InvoicePurchase
}

// NumberPrefix is the prefix used when numbering invoices of this type.
func (t InvoiceType) NumberPrefix() string {
	if t == InvoicePurchase {
		return "ACH"
	}

	return "FAC"
}

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	StatusPending       InvoiceStatus = "en_attente"
	StatusPartiallyPaid InvoiceStatus = "partiellement_payee"
	StatusPaid          InvoiceStatus = "payee"
	StatusOverdue       InvoiceStatus = "en_retard"
)

// IsValid reports whether the status is known.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPartiallyPaid, StatusPaid, StatusOverdue:
		return true
	}

	return false
}

// Invoice is a sales or purchase invoice (facture).
type Invoice struct {
	ID                string
	Number            string
	Type              InvoiceType
	IssueDate         time.Time
	DueDate           *time.Time
	ClientID          *string
	Counterparty      string
	CounterpartySIRET string
	AmountExclTax     decimal.Decimal
	VATAmount         decimal.Decimal
	AmountInclTax     decimal.Decimal
	PaidAmount        decimal.Decimal
	RemainingAmount   decimal.Decimal
	Status            InvoiceStatus
	Category          string
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate checks required fields and that TTC equals HT plus TVA.
func (i *Invoice) Validate() error {
	if strings.TrimSpace(i.Number) == "" {
		return fmt.Errorf("%w: number is required", ErrInvalidInvoice)
	}
	if !i.Type.IsValid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidInvoice, i.Type)
	}
	if strings.TrimSpace(i.Counterparty) == "" {
		return fmt.Errorf("%w: counterparty is required", ErrInvalidInvoice)
	}
	if i.IssueDate.IsZero() {
		return fmt.Errorf("%w: issue date is required", ErrInvalidInvoice)
	}
	if i.AmountExclTax.IsNegative() || i.VATAmount.IsNegative() || i.AmountInclTax.IsNegative() || i.PaidAmount.IsNegative() {
		return fmt.Errorf("%w: amounts must not be negative", ErrInvalidInvoice)
	}
	for _, amount := range []decimal.Decimal{i.AmountExclTax, i.VATAmount, i.AmountInclTax, i.PaidAmount} {
		if err := ValidateMoney(amount); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInvoice, err)
		}
	}
	if !i.AmountExclTax.Add(i.VATAmount).Equal(i.AmountInclTax) {
		return fmt.Errorf("%w: amount TTC must equal HT + TVA", ErrInvalidInvoice)
	}
	if i.DueDate != nil && i.DueDate.Before(i.IssueDate) {
		return fmt.Errorf("%w: due date precedes issue date", ErrInvalidInvoice)
	}

	return nil
}

// Refresh recomputes the remaining amount and the status as of now.
func (i *Invoice) Refresh(now time.Time) {
	i.RemainingAmount = i.AmountInclTax.Sub(i.PaidAmount)
	i.Status = ComputeInvoiceStatus(i.RemainingAmount, i.PaidAmount, i.DueDate, now)
}

// ComputeInvoiceStatus derives the status from the payment state.
func ComputeInvoiceStatus(remaining, paid decimal.Decimal, due *time.Time, now time.Time) InvoiceStatus {
	switch {
	case !remaining.IsPositive():
		return StatusPaid
	case paid.IsPositive():
		return StatusPartiallyPaid
	case due != nil && truncateDay(*due).Before(truncateDay(now)):
		return StatusOverdue
	default:
		return StatusPending
	}
}

// FormatInvoiceNumber renders the sequential number of an invoice, e.g. FAC-2024-0007.
func FormatInvoiceNumber(t InvoiceType, year, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", t.NumberPrefix(), year, seq)
}

// InvoiceFilter restricts invoice listings.
type InvoiceFilter struct {
	Type     *InvoiceType
	Status   *InvoiceStatus
	ClientID string
	From     *time.Time
	To       *time.Time
	Search   string
	Limit    int
	Offset   int
}

// InvoiceStats summarises invoices.
type InvoiceStats struct {
	TotalSales     decimal.Decimal
	TotalPurchases decimal.Decimal
	TotalUnpaid    decimal.Decimal
	UnpaidCount    int64
	OverdueCount   int64
	SalesCount     int64
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
