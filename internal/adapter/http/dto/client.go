package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/domain"
)

// ClientRequest creates or replaces a client.
type ClientRequest struct {
	Name         string `json:"name"`
	SIRET        string `json:"siret,omitempty"`
	Address      string `json:"address,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	City         string `json:"city,omitempty"`
	Country      string `json:"country,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	MainContact  string `json:"main_contact,omitempty"`
	VATNumber    string `json:"vat_number,omitempty"`
	PaymentTerms string `json:"payment_terms,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// ToDomain converts the request to a client.
func (r *ClientRequest) ToDomain() *domain.Client {
	return &domain.Client{
		Name:         r.Name,
		SIRET:        r.SIRET,
		Address:      r.Address,
		PostalCode:   r.PostalCode,
		City:         r.City,
		Country:      r.Country,
		Email:        r.Email,
		Phone:        r.Phone,
		MainContact:  r.MainContact,
		VATNumber:    r.VATNumber,
		PaymentTerms: r.PaymentTerms,
		Notes:        r.Notes,
	}
}

// ClientResponse represents a client in API responses.
type ClientResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SIRET        string    `json:"siret,omitempty"`
	Address      string    `json:"address,omitempty"`
	PostalCode   string    `json:"postal_code,omitempty"`
	City         string    `json:"city,omitempty"`
	Country      string    `json:"country"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	MainContact  string    `json:"main_contact,omitempty"`
	VATNumber    string    `json:"vat_number,omitempty"`
	PaymentTerms string    `json:"payment_terms,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ClientFromDomain converts a domain client to a response.
func ClientFromDomain(c *domain.Client) *ClientResponse {
	return &ClientResponse{
		ID:           c.ID,
		Name:         c.Name,
		SIRET:        c.SIRET,
		Address:      c.Address,
		PostalCode:   c.PostalCode,
		City:         c.City,
		Country:      c.Country,
		Email:        c.Email,
		Phone:        c.Phone,
		MainContact:  c.MainContact,
		VATNumber:    c.VATNumber,
		PaymentTerms: c.PaymentTerms,
		Notes:        c.Notes,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ClientsFromDomain converts domain clients to responses.
func ClientsFromDomain(clients []*domain.Client) []*ClientResponse {
	out := make([]*ClientResponse, len(clients))
	for i, c := range clients {
		out[i] = ClientFromDomain(c)
	}
	return out
}

// ClientStatsResponse summarises the sales invoices of a client.
type ClientStatsResponse struct {
	ClientID       string          `json:"client_id"`
	InvoiceCount   int64           `json:"invoice_count"`
	TotalInclTax   decimal.Decimal `json:"total_incl_tax"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
}

// ClientStatsFromDomain converts client stats to a response.
func ClientStatsFromDomain(s *domain.ClientStats) *ClientStatsResponse {
	return &ClientStatsResponse{
		ClientID:       s.ClientID,
		InvoiceCount:   s.InvoiceCount,
		TotalInclTax:   s.TotalInclTax,
		TotalRemaining: s.TotalRemaining,
		TotalPaid:      s.TotalPaid,
	}
}
