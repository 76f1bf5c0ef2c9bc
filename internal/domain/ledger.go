package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Journal identifies the book an entry is recorded in.
type Journal string

const (
	JournalSales     Journal = "VT"
	JournalPurchases Journal = "AC"
	JournalBank      Journal = "BQ"
	JournalMisc      Journal = "OD"
	JournalOpening   Journal = "AN"
)

var validJournals = map[Journal]bool{
	JournalSales:     true,
	JournalPurchases: true,
	JournalBank:      true,
	JournalMisc:      true,
	JournalOpening:   true,
}

// IsValid reports whether the journal code is known.
func (j Journal) IsValid() bool {
	return validJournals[j]
}

// LedgerEntry is a single double-entry booking line (écriture).
type LedgerEntry struct {
	ID          string
	Date        time.Time
	AccountCode string
	Label       string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Journal     Journal
	PieceNumber string
	Lettering   *string
	InvoiceID   *string
	CreatedAt   time.Time
}

// Validate enforces that exactly one side of the entry carries a positive amount.
func (e *LedgerEntry) Validate() error {
	if !exactlyOnePositive(e.Debit, e.Credit) {
		return ErrInvalidLedgerEntry
	}
	if err := ValidateAmount(e.Amount()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLedgerEntry, err)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidLedgerEntry)
	}
	if strings.TrimSpace(e.Label) == "" {
		return fmt.Errorf("%w: label is required", ErrInvalidLedgerEntry)
	}
	if !e.Journal.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidJournal, e.Journal)
	}

	return ValidateAccountCode(e.AccountCode)
}

// Amount returns the non-zero side of the entry.
func (e *LedgerEntry) Amount() decimal.Decimal {
	if e.Debit.IsPositive() {
		return e.Debit
	}

	return e.Credit
}

// IsLettered reports whether the entry has been matched.
func (e *LedgerEntry) IsLettered() bool {
	return e.Lettering != nil && *e.Lettering != ""
}

// LedgerFilter restricts entry listings.
type LedgerFilter struct {
	From        *time.Time
	To          *time.Time
	Journal     *Journal
	AccountCode string
	Limit       int
	Offset      int
}

// PieceImbalance reports a piece whose lines do not balance.
type PieceImbalance struct {
	PieceNumber string
	Journal     Journal
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Difference  decimal.Decimal
}

// ConsistencyReport lists unbalanced pieces. It is informational only.
type ConsistencyReport struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Balanced    bool
	Imbalances  []PieceImbalance
}

// NewConsistencyReport builds a report from per-piece totals.
func NewConsistencyReport(pieces []PieceImbalance) *ConsistencyReport {
	report := &ConsistencyReport{
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		Imbalances:  []PieceImbalance{},
	}

	for _, p := range pieces {
		report.TotalDebit = report.TotalDebit.Add(p.TotalDebit)
		report.TotalCredit = report.TotalCredit.Add(p.TotalCredit)

		p.Difference = p.TotalDebit.Sub(p.TotalCredit)
		if !p.Difference.IsZero() {
			report.Imbalances = append(report.Imbalances, p)
		}
	}

	report.Balanced = len(report.Imbalances) == 0 && report.TotalDebit.Equal(report.TotalCredit)

	return report
}

// ValidateLetteringCode checks a lettering tag (1-10 characters, letters or digits).
func ValidateLetteringCode(code string) error {
	if code == "" || len(code) > 10 {
		return fmt.Errorf("%w: lettering code must be 1-10 characters", ErrInvalidLedgerEntry)
	}
	for _, r := range code {
		isAlnum := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			return fmt.Errorf("%w: lettering code must be alphanumeric", ErrInvalidLedgerEntry)
		}
	}

	return nil
}
