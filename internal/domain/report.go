package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ReportType names an exportable report.
type ReportType string

const (
	ReportJournal         ReportType = "journal"
	ReportGeneralLedger   ReportType = "grand-livre"
	ReportTrialBalance    ReportType = "balance"
	ReportBalanceSheet    ReportType = "bilan"
	ReportIncomeStatement ReportType = "compte-resultat"
)

// IsValid reports whether the report type is known.
func (r ReportType) IsValid() bool {
	switch r {
	case ReportJournal, ReportGeneralLedger, ReportTrialBalance, ReportBalanceSheet, ReportIncomeStatement:
		return true
	}

	return false
}

// AccountBalance holds the totals of one account over a period.
type AccountBalance struct {
	AccountCode string
	Label       string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// Balance is the debit-minus-credit solde.
func (b AccountBalance) Balance() decimal.Decimal {
	return b.TotalDebit.Sub(b.TotalCredit)
}

// TrialBalance is the balance des comptes for a period.
type TrialBalance struct {
	Period      Period
	Accounts    []AccountBalance
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// NewTrialBalance totals per-account balances, skipping empty accounts.
func NewTrialBalance(period Period, balances []AccountBalance) *TrialBalance {
	tb := &TrialBalance{Period: period, Accounts: []AccountBalance{}}
	for _, b := range balances {
		if b.TotalDebit.IsZero() && b.TotalCredit.IsZero() {
			continue
		}
		tb.Accounts = append(tb.Accounts, b)
		tb.TotalDebit = tb.TotalDebit.Add(b.TotalDebit)
		tb.TotalCredit = tb.TotalCredit.Add(b.TotalCredit)
	}
	sort.Slice(tb.Accounts, func(i, j int) bool { return tb.Accounts[i].AccountCode < tb.Accounts[j].AccountCode })

	return tb
}

// GeneralLedgerAccount groups the entries booked on one account.
type GeneralLedgerAccount struct {
	AccountBalance
	Entries []*LedgerEntry
}

// GeneralLedger is the grand livre for a period.
type GeneralLedger struct {
	Period   Period
	Accounts []*GeneralLedgerAccount
}

// NewGeneralLedger groups entries by account, ordered by account code then date.
func NewGeneralLedger(period Period, entries []*LedgerEntry, labels map[string]string) *GeneralLedger {
	byCode := make(map[string]*GeneralLedgerAccount)
	for _, e := range entries {
		acc, ok := byCode[e.AccountCode]
		if !ok {
			acc = &GeneralLedgerAccount{
				AccountBalance: AccountBalance{AccountCode: e.AccountCode, Label: labels[e.AccountCode]},
			}
			byCode[e.AccountCode] = acc
		}
		acc.TotalDebit = acc.TotalDebit.Add(e.Debit)
		acc.TotalCredit = acc.TotalCredit.Add(e.Credit)
		acc.Entries = append(acc.Entries, e)
	}

	gl := &GeneralLedger{Period: period, Accounts: make([]*GeneralLedgerAccount, 0, len(byCode))}
	for _, acc := range byCode {
		sort.SliceStable(acc.Entries, func(i, j int) bool { return acc.Entries[i].Date.Before(acc.Entries[j].Date) })
		gl.Accounts = append(gl.Accounts, acc)
	}
	sort.Slice(gl.Accounts, func(i, j int) bool { return gl.Accounts[i].AccountCode < gl.Accounts[j].AccountCode })

	return gl
}

// ReportLine is one category of a financial statement.
type ReportLine struct {
	Category string
	Amount   decimal.Decimal
}

// Balance sheet categories.
const (
	CategoryEquity       = "Capitaux propres"
	CategoryFixedAssets  = "Immobilisations"
	CategoryInventory    = "Stocks"
	CategoryReceivables  = "Créances"
	CategoryPayables     = "Dettes"
	CategoryCash         = "Trésorerie"
	CategoryUnclassified = "Autres"
)

// BalanceSheet is the bilan at a closing date.
type BalanceSheet struct {
	Date             time.Time
	Assets           []ReportLine
	Liabilities      []ReportLine
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	Result           decimal.Decimal
}

// NewBalanceSheet categorises class 1-5 balances. Third-party accounts (class 4)
// are receivables when their balance is on the debit side and payables otherwise.
func NewBalanceSheet(date time.Time, balances []AccountBalance) *BalanceSheet {
	assets := newCategoryTotals(CategoryFixedAssets, CategoryInventory, CategoryReceivables, CategoryCash)
	liabilities := newCategoryTotals(CategoryEquity, CategoryPayables, CategoryUnclassified)

	for _, b := range balances {
		solde := b.Balance()
		switch AccountClass(b.AccountCode) {
		case 1:
			liabilities.add(CategoryEquity, solde.Neg())
		case 2:
			assets.add(CategoryFixedAssets, solde)
		case 3:
			assets.add(CategoryInventory, solde)
		case 4:
			if solde.IsPositive() {
				assets.add(CategoryReceivables, solde)
			} else {
				liabilities.add(CategoryPayables, solde.Neg())
			}
		case 5:
			assets.add(CategoryCash, solde)
		case 6, 7:
		default:
			liabilities.add(CategoryUnclassified, solde.Neg())
		}
	}

	bs := &BalanceSheet{
		Date:             date,
		Assets:           assets.lines(),
		Liabilities:      liabilities.lines(),
		TotalAssets:      assets.total(),
		TotalLiabilities: liabilities.total(),
	}
	bs.Result = bs.TotalAssets.Sub(bs.TotalLiabilities)

	return bs
}

// IncomeStatement is the compte de résultat for a period.
type IncomeStatement struct {
	Period        Period
	Charges       []ReportLine
	Products      []ReportLine
	TotalCharges  decimal.Decimal
	TotalProducts decimal.Decimal
	NetResult     decimal.Decimal
}

var chargeCategories = map[string]string{
	"60": "Achats",
	"61": "Services extérieurs",
	"62": "Autres services extérieurs",
	"63": "Impôts et taxes",
	"64": "Charges de personnel",
	"65": "Autres charges",
	"66": "Charges financières",
	"67": "Charges exceptionnelles",
	"68": "Dotations aux amortissements",
}

var productCategories = map[string]string{
	"70": "Ventes de marchandises",
	"71": "Production vendue",
	"72": "Production stockée",
	"74": "Subventions d'exploitation",
	"75": "Autres produits",
	"76": "Produits financiers",
	"77": "Produits exceptionnels",
	"78": "Reprises sur amortissements",
}

// NewIncomeStatement categorises class 6 and 7 balances by their two-digit prefix.
func NewIncomeStatement(period Period, balances []AccountBalance) *IncomeStatement {
	charges := newCategoryTotals()
	products := newCategoryTotals()

	for _, b := range balances {
		switch AccountClass(b.AccountCode) {
		case 6:
			charges.add(categoryFor(b.AccountCode, chargeCategories, "Autres charges"), b.Balance())
		case 7:
			products.add(categoryFor(b.AccountCode, productCategories, "Autres produits"), b.Balance().Neg())
		}
	}

	is := &IncomeStatement{
		Period:        period,
		Charges:       charges.lines(),
		Products:      products.lines(),
		TotalCharges:  charges.total(),
		TotalProducts: products.total(),
	}
	is.NetResult = is.TotalProducts.Sub(is.TotalCharges)

	return is
}

func categoryFor(code string, categories map[string]string, fallback string) string {
	if len(code) >= 2 {
		if c, ok := categories[code[:2]]; ok {
			return c
		}
	}

	return fallback
}

// categoryTotals accumulates amounts per category while remembering insertion order.
type categoryTotals struct {
	order  []string
	values map[string]decimal.Decimal
}

func newCategoryTotals(order ...string) *categoryTotals {
	return &categoryTotals{order: order, values: make(map[string]decimal.Decimal)}
}

func (c *categoryTotals) add(category string, amount decimal.Decimal) {
	if _, ok := c.values[category]; !ok && !containsString(c.order, category) {
		c.order = append(c.order, category)
	}
	c.values[category] = c.values[category].Add(amount)
}

func (c *categoryTotals) lines() []ReportLine {
	lines := make([]ReportLine, 0, len(c.values))
	for _, category := range c.order {
		v, ok := c.values[category]
		if !ok || v.IsZero() {
			continue
		}
		lines = append(lines, ReportLine{Category: category, Amount: v})
	}

	return lines
}

func (c *categoryTotals) total() decimal.Decimal {
	sum := decimal.Zero
	for _, v := range c.values {
		sum = sum.Add(v)
	}

	return sum
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}

	return false
}
