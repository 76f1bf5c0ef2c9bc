package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount represents a bank account whose running balance is derived from
// its transactions.
type BankAccount struct {
	ID             string
	Name           string
	Bank           string
	AccountNumber  string
	IBAN           string
	InitialBalance decimal.Decimal
	CurrentBalance decimal.Decimal
	Active         bool
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ApplyImpact returns the balance after replacing oldImpact with newImpact.
func (a *BankAccount) ApplyImpact(oldImpact, newImpact decimal.Decimal) decimal.Decimal {
	return a.CurrentBalance.Add(newImpact.Sub(oldImpact))
}

// ExpectedBalance recomputes the balance from totals over the transaction set.
func (a *BankAccount) ExpectedBalance(totalCredits, totalDebits decimal.Decimal) decimal.Decimal {
	return a.InitialBalance.Add(totalCredits).Sub(totalDebits)
}

// Validate checks bank account fields.
func (a *BankAccount) Validate() error {
	return ValidateName(a.Name)
}

// BankTransaction is a movement on a bank account; exactly one of Debit and
// Credit is positive.
type BankTransaction struct {
	ID           string
	AccountID    string
	Date         time.Time
	Debit        decimal.Decimal
	Credit       decimal.Decimal
	Category     string
	Description  string
	Reference    string
	Reconciled   bool
	ReconciledAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Impact is the signed effect of the transaction on its account balance.
func (t *BankTransaction) Impact() decimal.Decimal {
	return t.Credit.Sub(t.Debit)
}

// Validate checks the debit/credit exclusivity rule.
func (t *BankTransaction) Validate() error {
	if strings.TrimSpace(t.AccountID) == "" {
		return fmt.Errorf("%w: account is required", ErrInvalidTransaction)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidTransaction)
	}
	if !exactlyOnePositive(t.Debit, t.Credit) {
		return ErrInvalidTransaction
	}
	if err := ValidateAmount(t.Debit.Add(t.Credit)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTransaction, err)
	}

	return nil
}

// BankAccountStats summarises the transactions of one account.
type BankAccountStats struct {
	AccountID          string
	TotalCredits       decimal.Decimal
	TotalDebits        decimal.Decimal
	TransactionCount   int64
	ReconciledCount    int64
	UnreconciledAmount decimal.Decimal
}

// BankStats summarises all bank accounts.
type BankStats struct {
	AccountCount     int64
	TotalBalance     decimal.Decimal
	TransactionCount int64
	TotalCredits     decimal.Decimal
	TotalDebits      decimal.Decimal
}

// BalanceCheck compares a stored balance with the one recomputed from history.
type BalanceCheck struct {
	AccountID       string
	StoredBalance   decimal.Decimal
	ExpectedBalance decimal.Decimal
	Difference      decimal.Decimal
	Consistent      bool
	CheckedAt       time.Time
}

// NewBalanceCheck builds a BalanceCheck for account from its transaction totals.
func NewBalanceCheck(account *BankAccount, totalCredits, totalDebits decimal.Decimal, at time.Time) *BalanceCheck {
	expected := account.ExpectedBalance(totalCredits, totalDebits)
	diff := account.CurrentBalance.Sub(expected)

	return &BalanceCheck{
		AccountID:       account.ID,
		StoredBalance:   account.CurrentBalance,
		ExpectedBalance: expected,
		Difference:      diff,
		Consistent:      diff.IsZero(),
		CheckedAt:       at,
	}
}

func exactlyOnePositive(a, b decimal.Decimal) bool {
	if a.IsNegative() || b.IsNegative() {
		return false
	}

	return a.IsPositive() != b.IsPositive()
}

// BankTransactionFilter restricts transaction listings.
type BankTransactionFilter struct {
	AccountID        string
	UnreconciledOnly bool
	From             *time.Time
	To               *time.Time
	Limit            int
	Offset           int
}
