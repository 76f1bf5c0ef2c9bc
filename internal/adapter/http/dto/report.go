package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/domain"
)

// AccountBalanceResponse is one line of the trial balance.
type AccountBalanceResponse struct {
	AccountCode string          `json:"account_code"`
	Label       string          `json:"label"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Balance     decimal.Decimal `json:"balance"`
}

func accountBalanceFromDomain(b domain.AccountBalance) *AccountBalanceResponse {
	return &AccountBalanceResponse{
		AccountCode: b.AccountCode,
		Label:       b.Label,
		TotalDebit:  b.TotalDebit,
		TotalCredit: b.TotalCredit,
		Balance:     b.Balance(),
	}
}

// TrialBalanceResponse is the balance générale of a period.
type TrialBalanceResponse struct {
	From        Date                      `json:"from"`
	To          Date                      `json:"to"`
	Accounts    []*AccountBalanceResponse `json:"accounts"`
	TotalDebit  decimal.Decimal           `json:"total_debit"`
	TotalCredit decimal.Decimal           `json:"total_credit"`
}

// TrialBalanceFromDomain converts a trial balance.
func TrialBalanceFromDomain(tb *domain.TrialBalance) *TrialBalanceResponse {
	resp := &TrialBalanceResponse{
		From:        NewDate(tb.Period.From),
		To:          NewDate(tb.Period.To),
		Accounts:    make([]*AccountBalanceResponse, len(tb.Accounts)),
		TotalDebit:  tb.TotalDebit,
		TotalCredit: tb.TotalCredit,
	}
	for i, b := range tb.Accounts {
		resp.Accounts[i] = accountBalanceFromDomain(b)
	}
	return resp
}

// GeneralLedgerAccountResponse is one account of the grand livre.
type GeneralLedgerAccountResponse struct {
	AccountBalanceResponse
	Entries []*LedgerEntryResponse `json:"entries"`
}

// GeneralLedgerResponse is the grand livre of a period.
type GeneralLedgerResponse struct {
	From     Date                            `json:"from"`
	To       Date                            `json:"to"`
	Accounts []*GeneralLedgerAccountResponse `json:"accounts"`
}

// GeneralLedgerFromDomain converts a grand livre.
func GeneralLedgerFromDomain(gl *domain.GeneralLedger) *GeneralLedgerResponse {
	resp := &GeneralLedgerResponse{
		From:     NewDate(gl.Period.From),
		To:       NewDate(gl.Period.To),
		Accounts: make([]*GeneralLedgerAccountResponse, len(gl.Accounts)),
	}
	for i, a := range gl.Accounts {
		resp.Accounts[i] = &GeneralLedgerAccountResponse{
			AccountBalanceResponse: *accountBalanceFromDomain(a.AccountBalance),
			Entries:                LedgerEntriesFromDomain(a.Entries),
		}
	}
	return resp
}

// ReportLineResponse is one category of the bilan or compte de résultat.
type ReportLineResponse struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

func reportLines(lines []domain.ReportLine) []*ReportLineResponse {
	out := make([]*ReportLineResponse, len(lines))
	for i, l := range lines {
		out[i] = &ReportLineResponse{Category: l.Category, Amount: l.Amount}
	}
	return out
}

// BalanceSheetResponse is the bilan at a date.
type BalanceSheetResponse struct {
	Date             Date                  `json:"date"`
	Assets           []*ReportLineResponse `json:"actif"`
	Liabilities      []*ReportLineResponse `json:"passif"`
	TotalAssets      decimal.Decimal       `json:"total_actif"`
	TotalLiabilities decimal.Decimal       `json:"total_passif"`
	Result           decimal.Decimal       `json:"resultat"`
}

// BalanceSheetFromDomain converts a bilan.
func BalanceSheetFromDomain(bs *domain.BalanceSheet) *BalanceSheetResponse {
	return &BalanceSheetResponse{
		Date:             NewDate(bs.Date),
		Assets:           reportLines(bs.Assets),
		Liabilities:      reportLines(bs.Liabilities),
		TotalAssets:      bs.TotalAssets,
		TotalLiabilities: bs.TotalLiabilities,
		Result:           bs.Result,
	}
}

// IncomeStatementResponse is the compte de résultat of a period.
type IncomeStatementResponse struct {
	From          Date                  `json:"from"`
	To            Date                  `json:"to"`
	Charges       []*ReportLineResponse `json:"charges"`
	Products      []*ReportLineResponse `json:"produits"`
	TotalCharges  decimal.Decimal       `json:"total_charges"`
	TotalProducts decimal.Decimal       `json:"total_produits"`
	NetResult     decimal.Decimal       `json:"resultat_net"`
}

// IncomeStatementFromDomain converts a compte de résultat.
func IncomeStatementFromDomain(is *domain.IncomeStatement) *IncomeStatementResponse {
	return &IncomeStatementResponse{
		From:          NewDate(is.Period.From),
		To:            NewDate(is.Period.To),
		Charges:       reportLines(is.Charges),
		Products:      reportLines(is.Products),
		TotalCharges:  is.TotalCharges,
		TotalProducts: is.TotalProducts,
		NetResult:     is.NetResult,
	}
}
