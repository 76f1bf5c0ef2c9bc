package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/domain"
)

// MonthlyRevenueResponse is the revenue cashed in one month.
type MonthlyRevenueResponse struct {
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	Period         string          `json:"period"`
	InvoiceCount   int             `json:"invoice_count"`
	Revenue        decimal.Decimal `json:"revenue"`
	RevenueExclTax decimal.Decimal `json:"revenue_excl_tax"`
	VAT            decimal.Decimal `json:"vat"`
}

// MonthlyRevenueFromDomain converts monthly revenue to responses.
func MonthlyRevenueFromDomain(months []domain.MonthlyRevenue) []MonthlyRevenueResponse {
	out := make([]MonthlyRevenueResponse, len(months))
	for i, m := range months {
		out[i] = MonthlyRevenueResponse{
			Year:           m.Year,
			Month:          int(m.Month),
			Period:         m.Period(),
			InvoiceCount:   m.InvoiceCount,
			Revenue:        m.Revenue,
			RevenueExclTax: m.RevenueExclTax,
			VAT:            m.VAT,
		}
	}
	return out
}

// RevenueStatsResponse summarises cashed revenue.
type RevenueStatsResponse struct {
	InvoiceCount        int             `json:"invoice_count"`
	PaymentCount        int             `json:"payment_count"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TotalRevenueExclTax decimal.Decimal `json:"total_revenue_excl_tax"`
	TotalVAT            decimal.Decimal `json:"total_vat"`
	AveragePayment      decimal.Decimal `json:"average_payment"`
	MaxPayment          decimal.Decimal `json:"max_payment"`
	MinPayment          decimal.Decimal `json:"min_payment"`
}

// RevenueStatsFromDomain converts revenue stats to a response.
func RevenueStatsFromDomain(s *domain.RevenueStats) *RevenueStatsResponse {
	return &RevenueStatsResponse{
		InvoiceCount:        s.InvoiceCount,
		PaymentCount:        s.PaymentCount,
		TotalRevenue:        s.TotalRevenue,
		TotalRevenueExclTax: s.TotalRevenueExclTax,
		TotalVAT:            s.TotalVAT,
		AveragePayment:      s.AveragePayment,
		MaxPayment:          s.MaxPayment,
		MinPayment:          s.MinPayment,
	}
}

// ClientRevenueResponse is the revenue cashed from one counterparty.
type ClientRevenueResponse struct {
	Name           string          `json:"name"`
	InvoiceCount   int             `json:"invoice_count"`
	Revenue        decimal.Decimal `json:"revenue"`
	RevenueExclTax decimal.Decimal `json:"revenue_excl_tax"`
}

// ClientRevenueFromDomain converts a revenue ranking to responses.
func ClientRevenueFromDomain(ranking []domain.ClientRevenue) []ClientRevenueResponse {
	out := make([]ClientRevenueResponse, len(ranking))
	for i, c := range ranking {
		out[i] = ClientRevenueResponse{
			Name:           c.Name,
			InvoiceCount:   c.InvoiceCount,
			Revenue:        c.Revenue,
			RevenueExclTax: c.RevenueExclTax,
		}
	}
	return out
}
