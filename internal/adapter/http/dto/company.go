package dto

import (
	"time"

	"github.com/iho/compta/internal/domain"
)

// CompanyRequest replaces the company profile.
type CompanyRequest struct {
	Name            string `json:"name"`
	LegalForm       string `json:"legal_form,omitempty"`
	SIRET           string `json:"siret,omitempty"`
	Address         string `json:"address,omitempty"`
	PostalCode      string `json:"postal_code,omitempty"`
	City            string `json:"city,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Email           string `json:"email,omitempty"`
	VATRegime       string `json:"vat_regime,omitempty"`
	FiscalYearStart *Date  `json:"fiscal_year_start,omitempty"`
	FiscalYearEnd   *Date  `json:"fiscal_year_end,omitempty"`
}

// ToDomain converts the request to a company profile.
func (r *CompanyRequest) ToDomain() *domain.Company {
	return &domain.Company{
		Name:            r.Name,
		LegalForm:       r.LegalForm,
		SIRET:           r.SIRET,
		Address:         r.Address,
		PostalCode:      r.PostalCode,
		City:            r.City,
		Phone:           r.Phone,
		Email:           r.Email,
		VATRegime:       r.VATRegime,
		FiscalYearStart: datePtr(r.FiscalYearStart),
		FiscalYearEnd:   datePtr(r.FiscalYearEnd),
	}
}

// CompanyResponse represents the company profile.
type CompanyResponse struct {
	Name            string    `json:"name"`
	LegalForm       string    `json:"legal_form,omitempty"`
	SIRET           string    `json:"siret,omitempty"`
	Address         string    `json:"address,omitempty"`
	PostalCode      string    `json:"postal_code,omitempty"`
	City            string    `json:"city,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Email           string    `json:"email,omitempty"`
	VATRegime       string    `json:"vat_regime,omitempty"`
	FiscalYearStart *Date     `json:"fiscal_year_start,omitempty"`
	FiscalYearEnd   *Date     `json:"fiscal_year_end,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CompanyFromDomain converts the company profile to a response.
func CompanyFromDomain(c *domain.Company) *CompanyResponse {
	return &CompanyResponse{
		Name:            c.Name,
		LegalForm:       c.LegalForm,
		SIRET:           c.SIRET,
		Address:         c.Address,
		PostalCode:      c.PostalCode,
		City:            c.City,
		Phone:           c.Phone,
		Email:           c.Email,
		VATRegime:       c.VATRegime,
		FiscalYearStart: fromTimePtr(c.FiscalYearStart),
		FiscalYearEnd:   fromTimePtr(c.FiscalYearEnd),
		UpdatedAt:       c.UpdatedAt,
	}
}
