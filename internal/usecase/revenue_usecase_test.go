package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/usecase"
	"github.com/iho/compta/internal/usecase/mocks"
)

func seedRevenue(t *testing.T) *usecase.RevenueUseCase {
	t.Helper()
	ctx := context.Background()
	repo := mocks.NewMockInvoiceRepository()
	invoices := usecase.NewInvoiceUseCase(mocks.NewMockTransactionManager(), repo, nil, mocks.NewMockIDGenerator(), nil)

	pay := func(counterparty string, issued time.Time, ttc int64, payments map[time.Time]int64) {
		input := saleInput()
		input.Counterparty = counterparty
		input.IssueDate = issued
		input.AmountExclTax = decimal.NewFromInt(ttc).Mul(decimal.NewFromInt(5)).Div(decimal.NewFromInt(6))
		input.VATAmount = decimal.NewFromInt(ttc).Sub(input.AmountExclTax)
		input.AmountInclTax = decimal.NewFromInt(ttc)
		inv, err := invoices.CreateInvoice(ctx, input)
		if err != nil {
			t.Fatalf("create invoice: %v", err)
		}
		paid := decimal.Zero
		for _, on := range sortedDates(payments) {
			on := on
			paid = paid.Add(decimal.NewFromInt(payments[on]))
			if _, err := invoices.RecordPayment(ctx, inv.ID, paid, &on); err != nil {
				t.Fatalf("record payment: %v", err)
			}
		}
	}

	pay("ACME", time.Date(2023, time.November, 20, 0, 0, 0, 0, time.UTC), 240, map[time.Time]int64{
		time.Date(2023, time.December, 5, 0, 0, 0, 0, time.UTC): 240,
	})
	pay("Globex", time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC), 600, map[time.Time]int64{
		time.Date(2024, time.January, 25, 0, 0, 0, 0, time.UTC): 60,
		time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC):    540,
	})
	pay("ACME", time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC), 120, map[time.Time]int64{
		time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC): 120,
	})

	purchase := saleInput()
	purchase.Type = domain.InvoicePurchase
	purchase.PaidAmount = purchase.AmountInclTax
	if _, err := invoices.CreateInvoice(ctx, purchase); err != nil {
		t.Fatalf("create purchase: %v", err)
	}

	return usecase.NewRevenueUseCase(repo)
}

func sortedDates(m map[time.Time]int64) []time.Time {
	dates := make([]time.Time, 0, len(m))
	for d := range m {
		dates = append(dates, d)
	}
	for i := 1; i < len(dates); i++ {
		for j := i; j > 0 && dates[j].Before(dates[j-1]); j-- {
			dates[j], dates[j-1] = dates[j-1], dates[j]
		}
	}
	return dates
}

func TestRevenueUseCase_Monthly(t *testing.T) {
	uc := seedRevenue(t)

	months, err := uc.Monthly(context.Background(), 2024)
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if len(months) != 2 || months[0].Period() != "2024-01" || months[1].Period() != "2024-03" {
		t.Fatalf("unexpected months %+v", months)
	}
	if !months[0].Revenue.Equal(decimal.NewFromInt(180)) || months[0].InvoiceCount != 2 {
		t.Fatalf("unexpected january %+v", months[0])
	}

	all, err := uc.Monthly(context.Background(), 0)
	if err != nil {
		t.Fatalf("monthly all: %v", err)
	}
	if len(all) != 3 || all[0].Period() != "2023-12" {
		t.Fatalf("expected 3 months starting 2023-12, got %+v", all)
	}
}

func TestRevenueUseCase_StatsYearsAndRanking(t *testing.T) {
	ctx := context.Background()
	uc := seedRevenue(t)

	stats, err := uc.Stats(ctx, 0)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.PaymentCount != 4 || stats.InvoiceCount != 3 || !stats.TotalRevenue.Equal(decimal.NewFromInt(960)) {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if !stats.TotalRevenueExclTax.Equal(decimal.NewFromInt(800)) || !stats.TotalVAT.Equal(decimal.NewFromInt(160)) {
		t.Fatalf("unexpected HT/TVA split %s / %s", stats.TotalRevenueExclTax, stats.TotalVAT)
	}

	years, err := uc.Years(ctx)
	if err != nil {
		t.Fatalf("years: %v", err)
	}
	if len(years) != 2 || years[0] != 2024 || years[1] != 2023 {
		t.Fatalf("expected [2024 2023], got %v", years)
	}

	ranking, err := uc.ByClient(ctx, 0, 0)
	if err != nil {
		t.Fatalf("by client: %v", err)
	}
	if len(ranking) != 2 || ranking[0].Name != "Globex" || !ranking[1].Revenue.Equal(decimal.NewFromInt(360)) {
		t.Fatalf("unexpected ranking %+v", ranking)
	}

	top, err := uc.ByClient(ctx, 2023, 1)
	if err != nil {
		t.Fatalf("by client 2023: %v", err)
	}
	if len(top) != 1 || top[0].Name != "ACME" {
		t.Fatalf("unexpected 2023 ranking %+v", top)
	}

	if _, err := uc.Stats(ctx, -1); !errors.Is(err, domain.ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}
