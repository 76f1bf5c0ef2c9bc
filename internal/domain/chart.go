package domain

import (
	"fmt"
	"strings"
)

// AccountKind separates balance sheet accounts from income statement accounts.
type AccountKind string

const (
	KindBilan   AccountKind = "bilan"
	KindGestion AccountKind = "gestion"
)

const maxAccountCodeLength = 10

// Accounts used by automatic postings.
const (
	AccountDepreciationExpense = "6811"
	AccountBank                = "512"
	AccountCustomers           = "411"
	AccountSuppliers           = "401"
	AccountVATCollected        = "44571"
	AccountVATDeductible       = "44566"
)

// ChartAccount is an account of the plan comptable.
type ChartAccount struct {
	Code  string
	Label string
}

// Class returns the PCG class digit (1-7).
func (c *ChartAccount) Class() int {
	return AccountClass(c.Code)
}

// Kind returns whether the account belongs to the balance sheet or the income statement.
func (c *ChartAccount) Kind() AccountKind {
	if c.Class() >= 6 {
		return KindGestion
	}

	return KindBilan
}

// Validate checks the code and label.
func (c *ChartAccount) Validate() error {
	if err := ValidateAccountCode(c.Code); err != nil {
		return err
	}
	if strings.TrimSpace(c.Label) == "" {
		return fmt.Errorf("%w: label is required", ErrInvalidAccountCode)
	}

	return nil
}

// ValidateAccountCode checks that code is a PCG account number: digits only,
// starting with a class between 1 and 7.
func ValidateAccountCode(code string) error {
	if code == "" || len(code) > maxAccountCodeLength {
		return fmt.Errorf("%w: %q", ErrInvalidAccountCode, code)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: %q", ErrInvalidAccountCode, code)
		}
	}
	if class := AccountClass(code); class < 1 || class > 7 {
		return fmt.Errorf("%w: unknown class in %q", ErrInvalidAccountCode, code)
	}

	return nil
}

// AccountClass returns the first digit of code, or 0 when code is empty.
func AccountClass(code string) int {
	if code == "" || code[0] < '0' || code[0] > '9' {
		return 0
	}

	return int(code[0] - '0')
}
