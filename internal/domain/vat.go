package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DeclarationStatus is the filing state of a VAT declaration.
type DeclarationStatus string

const (
	DeclarationInProgress DeclarationStatus = "en_cours"
	DeclarationFiled      DeclarationStatus = "deposee"
	DeclarationPaid       DeclarationStatus = "payee"
)

// IsValid reports whether the status is known.
func (s DeclarationStatus) IsValid() bool {
	return s == DeclarationInProgress || s == DeclarationFiled || s == DeclarationPaid
}

// Period is an inclusive date range.
type Period struct {
	From time.Time
	To   time.Time
}

// Validate checks that the period is well formed.
func (p Period) Validate() error {
	if p.From.IsZero() || p.To.IsZero() {
		return fmt.Errorf("%w: both bounds are required", ErrInvalidPeriod)
	}
	if p.To.Before(p.From) {
		return fmt.Errorf("%w: end precedes start", ErrInvalidPeriod)
	}

	return nil
}

// Closed reports whether the period ended before now.
func (p Period) Closed(now time.Time) bool {
	return truncateDay(p.To).Before(truncateDay(now))
}

// VATSummary is the VAT position for a period.
type VATSummary struct {
	Period     Period
	Collected  decimal.Decimal
	Deductible decimal.Decimal
	Due        decimal.Decimal
}

// NewVATSummary computes the VAT due from collected and deductible totals.
func NewVATSummary(period Period, collected, deductible decimal.Decimal) *VATSummary {
	return &VATSummary{
		Period:     period,
		Collected:  collected,
		Deductible: deductible,
		Due:        collected.Sub(deductible),
	}
}

// VATDeclaration is a filed or pending VAT return.
type VATDeclaration struct {
	ID         string
	Period     Period
	Collected  decimal.Decimal
	Deductible decimal.Decimal
	Due        decimal.Decimal
	Status     DeclarationStatus
	CreatedAt  time.Time
}
