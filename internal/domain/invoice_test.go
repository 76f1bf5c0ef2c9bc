package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func validInvoice() *Invoice {
	return &Invoice{
		Number:        "FAC-2024-0001",
		Type:          InvoiceSale,
		IssueDate:     date(2024, time.February, 1),
		Counterparty:  "ACME",
		AmountExclTax: dec("100"),
		VATAmount:     dec("20"),
		AmountInclTax: dec("120"),
	}
}

func TestInvoice_Validate(t *testing.T) {
	if err := validInvoice().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(i *Invoice)
	}{
		{"missing number", func(i *Invoice) { i.Number = "" }},
		{"bad type", func(i *Invoice) { i.Type = "avoir" }},
		{"missing counterparty", func(i *Invoice) { i.Counterparty = "" }},
		{"ttc mismatch", func(i *Invoice) { i.AmountInclTax = dec("121") }},
		{"negative tva", func(i *Invoice) { i.VATAmount = dec("-20"); i.AmountInclTax = dec("80") }},
		{"sub-cent tva", func(i *Invoice) { i.VATAmount = dec("20.005"); i.AmountInclTax = dec("120.005") }},
		{"overflowing ht", func(i *Invoice) {
			i.AmountExclTax = dec("1000000000000")
			i.AmountInclTax = dec("1000000000020")
		}},
		{"due before issue", func(i *Invoice) { d := date(2024, time.January, 1); i.DueDate = &d }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := validInvoice()
			tt.mutate(inv)
			if err := inv.Validate(); !errors.Is(err, ErrInvalidInvoice) {
				t.Fatalf("expected ErrInvalidInvoice, got %v", err)
			}
		})
	}
}

func TestComputeInvoiceStatus(t *testing.T) {
	now := date(2024, time.June, 15)
	past := date(2024, time.June, 1)
	future := date(2024, time.July, 1)

	tests := []struct {
		name      string
		remaining decimal.Decimal
		paid      decimal.Decimal
		due       *time.Time
		want      InvoiceStatus
	}{
		{"fully paid", decimal.Zero, dec("120"), &past, StatusPaid},
		{"overpaid", dec("-1"), dec("121"), nil, StatusPaid},
		{"partial", dec("20"), dec("100"), &past, StatusPartiallyPaid},
		{"overdue", dec("120"), decimal.Zero, &past, StatusOverdue},
		{"due today is not overdue", dec("120"), decimal.Zero, &now, StatusPending},
		{"pending", dec("120"), decimal.Zero, &future, StatusPending},
		{"no due date", dec("120"), decimal.Zero, nil, StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeInvoiceStatus(tt.remaining, tt.paid, tt.due, now); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestInvoice_Refresh(t *testing.T) {
	inv := validInvoice()
	inv.PaidAmount = dec("50")
	inv.Refresh(date(2024, time.February, 2))

	if !inv.RemainingAmount.Equal(dec("70")) {
		t.Fatalf("expected remaining 70, got %s", inv.RemainingAmount)
	}
	if inv.Status != StatusPartiallyPaid {
		t.Fatalf("expected partially paid, got %s", inv.Status)
	}
}

func TestFormatInvoiceNumber(t *testing.T) {
	if got := FormatInvoiceNumber(InvoiceSale, 2024, 7); got != "FAC-2024-0007" {
		t.Fatalf("unexpected number %s", got)
	}
	if got := FormatInvoiceNumber(InvoicePurchase, 2025, 12345); got != "ACH-2025-12345" {
		t.Fatalf("unexpected number %s", got)
	}
}

func TestNewVATSummary(t *testing.T) {
	p := Period{From: date(2024, time.January, 1), To: date(2024, time.March, 31)}
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := NewVATSummary(p, dec("2000"), dec("750.50"))
	if !s.Due.Equal(dec("1249.50")) {
		t.Fatalf("expected 1249.50, got %s", s.Due)
	}

	bad := Period{From: p.To, To: p.From}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}
