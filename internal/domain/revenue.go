package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// InvoicePayment is a change of the amount paid on an invoice. Corrections
// that lower the paid amount are recorded as negative payments.
type InvoicePayment struct {
	ID        string
	InvoiceID string
	Date      time.Time
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// SalePayment is a payment received on a sales invoice together with the
// invoice amounts needed to split it into HT and TVA.
type SalePayment struct {
	InvoiceID     string
	Counterparty  string
	Date          time.Time
	Amount        decimal.Decimal
	AmountExclTax decimal.Decimal
	VATAmount     decimal.Decimal
	AmountInclTax decimal.Decimal
}

// exclTaxShare is the HT part of the payment, proportional to the invoice split.
func (p SalePayment) exclTaxShare() decimal.Decimal {
	if !p.AmountInclTax.IsPositive() {
		return p.Amount
	}

	return p.AmountExclTax.Mul(p.Amount).Div(p.AmountInclTax)
}

func (p SalePayment) vatShare() decimal.Decimal {
	if !p.AmountInclTax.IsPositive() {
		return decimal.Zero
	}

	return p.VATAmount.Mul(p.Amount).Div(p.AmountInclTax)
}

// MonthlyRevenue is the chiffre d'affaires cashed in one calendar month.
type MonthlyRevenue struct {
	Year           int
	Month          time.Month
	InvoiceCount   int
	Revenue        decimal.Decimal
	RevenueExclTax decimal.Decimal
	VAT            decimal.Decimal
}

// Period renders the month as YYYY-MM.
func (m MonthlyRevenue) Period() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// RevenueStats summarises the payments of a fiscal year, or of all years.
type RevenueStats struct {
	InvoiceCount        int
	PaymentCount        int
	TotalRevenue        decimal.Decimal
	TotalRevenueExclTax decimal.Decimal
	TotalVAT            decimal.Decimal
	AveragePayment      decimal.Decimal
	MaxPayment          decimal.Decimal
	MinPayment          decimal.Decimal
}

// ClientRevenue is the revenue cashed from one counterparty.
type ClientRevenue struct {
	Name           string
	InvoiceCount   int
	Revenue        decimal.Decimal
	RevenueExclTax decimal.Decimal
}

// NewMonthlyRevenue groups payments by calendar month, oldest first.
func NewMonthlyRevenue(payments []SalePayment) []MonthlyRevenue {
	type monthKey struct {
		year  int
		month time.Month
	}

	byMonth := make(map[monthKey]*MonthlyRevenue)
	invoices := make(map[monthKey]map[string]struct{})
	for _, p := range payments {
		k := monthKey{p.Date.Year(), p.Date.Month()}
		m, ok := byMonth[k]
		if !ok {
			m = &MonthlyRevenue{Year: k.year, Month: k.month, Revenue: decimal.Zero, RevenueExclTax: decimal.Zero, VAT: decimal.Zero}
			byMonth[k] = m
			invoices[k] = make(map[string]struct{})
		}
		m.Revenue = m.Revenue.Add(p.Amount)
		m.RevenueExclTax = m.RevenueExclTax.Add(p.exclTaxShare())
		m.VAT = m.VAT.Add(p.vatShare())
		invoices[k][p.InvoiceID] = struct{}{}
	}

	months := make([]MonthlyRevenue, 0, len(byMonth))
	for k, m := range byMonth {
		m.InvoiceCount = len(invoices[k])
		m.RevenueExclTax = m.RevenueExclTax.Round(moneyPlaces)
		m.VAT = m.VAT.Round(moneyPlaces)
		months = append(months, *m)
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year < months[j].Year
		}
		return months[i].Month < months[j].Month
	})

	return months
}

// NewRevenueStats summarises payments.
func NewRevenueStats(payments []SalePayment) *RevenueStats {
	stats := &RevenueStats{
		PaymentCount:        len(payments),
		TotalRevenue:        decimal.Zero,
		TotalRevenueExclTax: decimal.Zero,
		TotalVAT:            decimal.Zero,
		AveragePayment:      decimal.Zero,
		MaxPayment:          decimal.Zero,
		MinPayment:          decimal.Zero,
	}
	if len(payments) == 0 {
		return stats
	}

	invoices := make(map[string]struct{})
	stats.MaxPayment, stats.MinPayment = payments[0].Amount, payments[0].Amount
	for _, p := range payments {
		invoices[p.InvoiceID] = struct{}{}
		stats.TotalRevenue = stats.TotalRevenue.Add(p.Amount)
		stats.TotalRevenueExclTax = stats.TotalRevenueExclTax.Add(p.exclTaxShare())
		stats.TotalVAT = stats.TotalVAT.Add(p.vatShare())
		stats.MaxPayment = decimal.Max(stats.MaxPayment, p.Amount)
		stats.MinPayment = decimal.Min(stats.MinPayment, p.Amount)
	}

	stats.InvoiceCount = len(invoices)
	stats.TotalRevenueExclTax = stats.TotalRevenueExclTax.Round(moneyPlaces)
	stats.TotalVAT = stats.TotalVAT.Round(moneyPlaces)
	stats.AveragePayment = stats.TotalRevenue.Div(decimal.NewFromInt(int64(len(payments)))).Round(moneyPlaces)

	return stats
}

// NewClientRevenue ranks counterparties by cashed revenue, keeping the top limit.
// A limit of zero keeps every counterparty.
func NewClientRevenue(payments []SalePayment, limit int) []ClientRevenue {
	byName := make(map[string]*ClientRevenue)
	invoices := make(map[string]map[string]struct{})
	for _, p := range payments {
		c, ok := byName[p.Counterparty]
		if !ok {
			c = &ClientRevenue{Name: p.Counterparty, Revenue: decimal.Zero, RevenueExclTax: decimal.Zero}
			byName[p.Counterparty] = c
			invoices[p.Counterparty] = make(map[string]struct{})
		}
		c.Revenue = c.Revenue.Add(p.Amount)
		c.RevenueExclTax = c.RevenueExclTax.Add(p.exclTaxShare())
		invoices[p.Counterparty][p.InvoiceID] = struct{}{}
	}

	ranking := make([]ClientRevenue, 0, len(byName))
	for name, c := range byName {
		c.InvoiceCount = len(invoices[name])
		c.RevenueExclTax = c.RevenueExclTax.Round(moneyPlaces)
		ranking = append(ranking, *c)
	}
	sort.Slice(ranking, func(i, j int) bool {
		if !ranking[i].Revenue.Equal(ranking[j].Revenue) {
			return ranking[i].Revenue.GreaterThan(ranking[j].Revenue)
		}
		return ranking[i].Name < ranking[j].Name
	})

	if limit > 0 && len(ranking) > limit {
		ranking = ranking[:limit]
	}

	return ranking
}

// RevenueYears lists the years that carry payments, latest first.
func RevenueYears(payments []SalePayment) []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, p := range payments {
		y := p.Date.Year()
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	return years
}
