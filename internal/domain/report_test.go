package domain

import (
	"testing"
	"time"
)

func findLine(lines []ReportLine, category string) (ReportLine, bool) {
	for _, l := range lines {
		if l.Category == category {
			return l, true
		}
	}
	return ReportLine{}, false
}

func TestNewBalanceSheet(t *testing.T) {
	balances := []AccountBalance{
		{AccountCode: "101", TotalCredit: dec("10000")},
		{AccountCode: "2182", TotalDebit: dec("12000")},
		{AccountCode: "28182", TotalCredit: dec("1200")},
		{AccountCode: "411", TotalDebit: dec("600")},
		{AccountCode: "401", TotalCredit: dec("400")},
		{AccountCode: "512", TotalDebit: dec("3000"), TotalCredit: dec("2500")},
		{AccountCode: "6811", TotalDebit: dec("1200")},
	}

	bs := NewBalanceSheet(date(2023, time.December, 31), balances)

	fixed, ok := findLine(bs.Assets, CategoryFixedAssets)
	if !ok || !fixed.Amount.Equal(dec("10800")) {
		t.Fatalf("expected net fixed assets 10800, got %+v", fixed)
	}
	if l, _ := findLine(bs.Assets, CategoryReceivables); !l.Amount.Equal(dec("600")) {
		t.Fatalf("expected receivables 600, got %s", l.Amount)
	}
	if l, _ := findLine(bs.Liabilities, CategoryPayables); !l.Amount.Equal(dec("400")) {
		t.Fatalf("expected payables 400, got %s", l.Amount)
	}
	if !bs.TotalAssets.Equal(dec("11900")) {
		t.Fatalf("expected total assets 11900, got %s", bs.TotalAssets)
	}
	if !bs.TotalLiabilities.Equal(dec("10400")) {
		t.Fatalf("expected total liabilities 10400, got %s", bs.TotalLiabilities)
	}
	if !bs.Result.Equal(dec("1500")) {
		t.Fatalf("expected result 1500, got %s", bs.Result)
	}
}

func TestNewIncomeStatement(t *testing.T) {
	balances := []AccountBalance{
		{AccountCode: "607", TotalDebit: dec("300")},
		{AccountCode: "6811", TotalDebit: dec("1200")},
		{AccountCode: "706", TotalCredit: dec("2000")},
		{AccountCode: "791", TotalCredit: dec("50")},
		{AccountCode: "512", TotalDebit: dec("999")},
	}

	is := NewIncomeStatement(Period{From: date(2023, time.January, 1), To: date(2023, time.December, 31)}, balances)

	if l, ok := findLine(is.Charges, "Dotations aux amortissements"); !ok || !l.Amount.Equal(dec("1200")) {
		t.Fatalf("expected dotations 1200, got %+v", l)
	}
	if _, ok := findLine(is.Products, "Autres produits"); !ok {
		t.Fatal("expected unmatched class 7 prefix in Autres produits")
	}
	if !is.TotalCharges.Equal(dec("1500")) || !is.TotalProducts.Equal(dec("2050")) {
		t.Fatalf("unexpected totals %s / %s", is.TotalCharges, is.TotalProducts)
	}
	if !is.NetResult.Equal(dec("550")) {
		t.Fatalf("expected net result 550, got %s", is.NetResult)
	}
}

func TestNewTrialBalanceAndGeneralLedger(t *testing.T) {
	period := Period{From: date(2024, time.January, 1), To: date(2024, time.December, 31)}

	tb := NewTrialBalance(period, []AccountBalance{
		{AccountCode: "706", TotalCredit: dec("100")},
		{AccountCode: "411", TotalDebit: dec("100")},
		{AccountCode: "512"},
	})
	if len(tb.Accounts) != 2 || tb.Accounts[0].AccountCode != "411" {
		t.Fatalf("unexpected accounts %+v", tb.Accounts)
	}
	if !tb.TotalDebit.Equal(tb.TotalCredit) {
		t.Fatal("expected balanced trial balance")
	}

	entries := []*LedgerEntry{
		{ID: "2", AccountCode: "512", Date: date(2024, time.March, 2), Debit: dec("50")},
		{ID: "1", AccountCode: "512", Date: date(2024, time.March, 1), Credit: dec("20")},
		{ID: "3", AccountCode: "411", Date: date(2024, time.March, 1), Credit: dec("50")},
	}
	gl := NewGeneralLedger(period, entries, map[string]string{"512": "Banque"})

	if len(gl.Accounts) != 2 || gl.Accounts[1].AccountCode != "512" {
		t.Fatalf("unexpected accounts %+v", gl.Accounts)
	}
	bank := gl.Accounts[1]
	if bank.Label != "Banque" || bank.Entries[0].ID != "1" {
		t.Fatalf("expected entries sorted by date with label, got %+v", bank)
	}
	if !bank.Balance().Equal(dec("30")) {
		t.Fatalf("expected solde 30, got %s", bank.Balance())
	}
}
