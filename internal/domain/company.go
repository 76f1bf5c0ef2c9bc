package domain

import (
	"fmt"
	"net/mail"
	"time"
)

// Company is the profile of the bookkeeping entity, printed on invoices.
type Company struct {
	Name            string
	LegalForm       string
	SIRET           string
	Address         string
	PostalCode      string
	City            string
	Phone           string
	Email           string
	VATRegime       string
	FiscalYearStart *time.Time
	FiscalYearEnd   *time.Time
	UpdatedAt       time.Time
}

// Validate checks the name, SIRET, email and fiscal year bounds.
func (c *Company) Validate() error {
	if err := ValidateName(c.Name); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCompany, err)
	}
	if err := ValidateSIRET(c.SIRET); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCompany, err)
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return fmt.Errorf("%w: invalid email %q", ErrInvalidCompany, c.Email)
		}
	}
	if c.FiscalYearStart != nil && c.FiscalYearEnd != nil && !c.FiscalYearEnd.After(*c.FiscalYearStart) {
		return fmt.Errorf("%w: fiscal year must end after it starts", ErrInvalidCompany)
	}

	return nil
}

// FiscalPeriod returns the configured fiscal year, if both bounds are set.
func (c *Company) FiscalPeriod() (Period, bool) {
	if c.FiscalYearStart == nil || c.FiscalYearEnd == nil {
		return Period{}, false
	}

	return Period{From: *c.FiscalYearStart, To: *c.FiscalYearEnd}, true
}
