package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultClientCountry is used when a client is created without a country.
const DefaultClientCountry = "France"

// Client is a customer invoiced by the company.
type Client struct {
	ID           string
	Name         string
	SIRET        string
	Address      string
	PostalCode   string
	City         string
	Country      string
	Email        string
	Phone        string
	MainContact  string
	VATNumber    string
	PaymentTerms string
	Notes        string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the name, the email shape and the SIRET checksum.
func (c *Client) Validate() error {
	if err := ValidateName(c.Name); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidClient, err)
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return fmt.Errorf("%w: invalid email %q", ErrInvalidClient, c.Email)
		}
	}
	if err := ValidateSIRET(c.SIRET); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidClient, err)
	}

	return nil
}

// Normalize trims the identity fields and applies defaults.
func (c *Client) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.SIRET = strings.ReplaceAll(c.SIRET, " ", "")
	c.Email = strings.TrimSpace(c.Email)
	if strings.TrimSpace(c.Country) == "" {
		c.Country = DefaultClientCountry
	}
}

// ClientFilter restricts client listings.
type ClientFilter struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ClientStats summarises the sales invoices of one client.
type ClientStats struct {
	ClientID       string
	InvoiceCount   int64
	TotalInclTax   decimal.Decimal
	TotalRemaining decimal.Decimal
	TotalPaid      decimal.Decimal
}

// NewClientStats aggregates the sales invoices of a client. Purchases are ignored.
func NewClientStats(clientID string, invoices []*Invoice) *ClientStats {
	stats := &ClientStats{
		ClientID:       clientID,
		TotalInclTax:   decimal.Zero,
		TotalRemaining: decimal.Zero,
		TotalPaid:      decimal.Zero,
	}

	for _, inv := range invoices {
		if inv.Type != InvoiceSale {
			continue
		}
		stats.InvoiceCount++
		stats.TotalInclTax = stats.TotalInclTax.Add(inv.AmountInclTax)
		stats.TotalRemaining = stats.TotalRemaining.Add(inv.RemainingAmount)
		if inv.Status == StatusPaid {
			stats.TotalPaid = stats.TotalPaid.Add(inv.AmountInclTax)
		}
	}

	return stats
}
