package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidName    = errors.New("invalid name")
	ErrAmountTooLarge = errors.New("amount exceeds maximum allowed")
	ErrAmountTooSmall = errors.New("amount below minimum allowed")
	ErrInvalidIBAN    = errors.New("invalid IBAN")
	ErrInvalidSIRET   = errors.New("invalid SIRET")
)

// Validation constants
const (
	MaxNameLength = 255
	MinNameLength = 1
	MaxAmount     = "1000000000000" // NUMERIC(15,2)
	MinAmount     = "0.01"
)

var (
	ibanRegex  = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}$`)
	siretRegex = regexp.MustCompile(`^[0-9]{14}$`)
)

// ValidateName validates a display name
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}

	return nil
}

// ValidateAmount validates a strictly positive monetary amount
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	minAmount := decimal.RequireFromString(MinAmount)
	if amount.LessThan(minAmount) {
		return fmt.Errorf("%w: %w: minimum amount is %s", ErrInvalidAmount, ErrAmountTooSmall, MinAmount)
	}

	maxAmount := decimal.RequireFromString(MaxAmount)
	if amount.GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("%w: %w: maximum amount is %s", ErrInvalidAmount, ErrAmountTooLarge, MaxAmount)
	}

	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: at most two decimal places", ErrInvalidAmount)
	}

	return nil
}

// ValidateMoney validates an amount that may be zero, such as a VAT total or a
// residual value.
func ValidateMoney(amount decimal.Decimal) error {
	if amount.IsZero() {
		return nil
	}

	return ValidateAmount(amount)
}

// ValidateIBAN checks the IBAN shape and its mod-97 checksum. Spaces are ignored.
func ValidateIBAN(iban string) error {
	iban = strings.ToUpper(strings.ReplaceAll(iban, " ", ""))
	if iban == "" {
		return nil
	}

	if !ibanRegex.MatchString(iban) {
		return ErrInvalidIBAN
	}

	rearranged := iban[4:] + iban[:4]
	remainder := 0
	for _, r := range rearranged {
		var v int
		if r >= 'A' && r <= 'Z' {
			v = int(r-'A') + 10
			remainder = (remainder*100 + v) % 97
			continue
		}
		v = int(r - '0')
		remainder = (remainder*10 + v) % 97
	}

	if remainder != 1 {
		return ErrInvalidIBAN
	}

	return nil
}

// ValidateSIRET checks a French establishment number (14 digits, Luhn checksum).
func ValidateSIRET(siret string) error {
	siret = strings.ReplaceAll(siret, " ", "")
	if siret == "" {
		return nil
	}

	if !siretRegex.MatchString(siret) {
		return ErrInvalidSIRET
	}

	sum := 0
	for i := 0; i < len(siret); i++ {
		d := int(siret[len(siret)-1-i] - '0')
		if i%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}

	if sum%10 != 0 {
		return ErrInvalidSIRET
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int, error) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset, nil
}
