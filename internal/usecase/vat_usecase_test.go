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

var q1 = domain.Period{
	From: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	To:   time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
}

func seedVATInvoices(t *testing.T, repo *mocks.MockInvoiceRepository) {
	t.Helper()
	invoices := []*domain.Invoice{
		{ID: "i-1", Number: "FAC-2024-0001", Type: domain.InvoiceSale, IssueDate: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), VATAmount: decimal.NewFromInt(200)},
		{ID: "i-2", Number: "FAC-2024-0002", Type: domain.InvoiceSale, IssueDate: time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), VATAmount: decimal.RequireFromString("19.60")},
		{ID: "i-3", Number: "ACH-2024-0001", Type: domain.InvoicePurchase, IssueDate: time.Date(2024, time.February, 2, 0, 0, 0, 0, time.UTC), VATAmount: decimal.NewFromInt(50)},
		{ID: "i-4", Number: "FAC-2024-0003", Type: domain.InvoiceSale, IssueDate: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), VATAmount: decimal.NewFromInt(100)},
		{ID: "i-5", Number: "ACH-2024-0002", Type: domain.InvoicePurchase, IssueDate: time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC), VATAmount: decimal.NewFromInt(400)},
	}
	for _, inv := range invoices {
		if err := repo.Create(context.Background(), nil, inv); err != nil {
			t.Fatalf("seed invoice: %v", err)
		}
	}
}

func TestVATUseCase_Compute(t *testing.T) {
	q2 := domain.Period{
		From: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name       string
		period     domain.Period
		collected  string
		deductible string
		due        string
	}{
		{name: "first quarter", period: q1, collected: "219.60", deductible: "50", due: "169.60"},
		{name: "vat credit", period: q2, collected: "100", deductible: "400", due: "-300"},
		{name: "empty period", period: domain.Period{From: q1.From, To: q1.From}, collected: "0", deductible: "0", due: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockInvoiceRepository()
			seedVATInvoices(t, repo)
			uc := usecase.NewVATUseCase(repo, mocks.NewMockVATRepository(), mocks.NewMockIDGenerator())

			summary, err := uc.Compute(context.Background(), tt.period)
			if err != nil {
				t.Fatalf("compute: %v", err)
			}
			if !summary.Collected.Equal(decimal.RequireFromString(tt.collected)) {
				t.Errorf("collected: expected %s, got %s", tt.collected, summary.Collected)
			}
			if !summary.Deductible.Equal(decimal.RequireFromString(tt.deductible)) {
				t.Errorf("deductible: expected %s, got %s", tt.deductible, summary.Deductible)
			}
			if !summary.Due.Equal(decimal.RequireFromString(tt.due)) {
				t.Errorf("due: expected %s, got %s", tt.due, summary.Due)
			}
		})
	}
}

func TestVATUseCase_ComputeRejectsInvertedPeriod(t *testing.T) {
	uc := usecase.NewVATUseCase(mocks.NewMockInvoiceRepository(), mocks.NewMockVATRepository(), mocks.NewMockIDGenerator())

	_, err := uc.Compute(context.Background(), domain.Period{From: q1.To, To: q1.From})
	if !errors.Is(err, domain.ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestVATUseCase_Declarations(t *testing.T) {
	ctx := context.Background()
	invoiceRepo := mocks.NewMockInvoiceRepository()
	seedVATInvoices(t, invoiceRepo)
	vatRepo := mocks.NewMockVATRepository()
	uc := usecase.NewVATUseCase(invoiceRepo, vatRepo, mocks.NewMockIDGenerator())

	declaration, err := uc.CreateDeclaration(ctx, q1, "")
	if err != nil {
		t.Fatalf("declare q1: %v", err)
	}
	if declaration.Status != domain.DeclarationInProgress {
		t.Fatalf("expected default status en_cours, got %s", declaration.Status)
	}
	if !declaration.Due.Equal(decimal.RequireFromString("169.60")) {
		t.Fatalf("expected due 169.60, got %s", declaration.Due)
	}

	q2 := domain.Period{From: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)}
	if _, err := uc.CreateDeclaration(ctx, q2, domain.DeclarationFiled); err != nil {
		t.Fatalf("declare q2: %v", err)
	}

	if _, err := uc.CreateDeclaration(ctx, q1, "brouillon"); !errors.Is(err, domain.ErrInvalidDeclaration) {
		t.Fatalf("expected ErrInvalidDeclaration, got %v", err)
	}

	repoErr := errors.New("insert failed")
	vatRepo.CreateFunc = func(context.Context, *domain.VATDeclaration) error { return repoErr }
	if _, err := uc.CreateDeclaration(ctx, q1, domain.DeclarationPaid); !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
	vatRepo.CreateFunc = nil

	list, err := uc.ListDeclarations(ctx, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || !list[0].Period.From.Equal(q2.From) || list[1].ID != declaration.ID {
		t.Fatalf("expected q2 then q1, got %v", list)
	}

	page, err := uc.ListDeclarations(ctx, 1, 1)
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page) != 1 || page[0].ID != declaration.ID {
		t.Fatalf("unexpected second page %v", page)
	}
}
