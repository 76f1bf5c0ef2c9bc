package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/usecase"
	"github.com/iho/compta/internal/usecase/mocks"
)

type clientFixture struct {
	clients  *usecase.ClientUseCase
	invoices *usecase.InvoiceUseCase
	repo     *mocks.MockClientRepository
	audit    *mocks.MockAuditRepository
}

func newClientFixture() clientFixture {
	invoiceRepo := mocks.NewMockInvoiceRepository()
	clientRepo := mocks.NewMockClientRepository(invoiceRepo)
	idGen := mocks.NewMockIDGenerator()
	auditRepo := mocks.NewMockAuditRepository()
	return clientFixture{
		clients:  usecase.NewClientUseCase(clientRepo, invoiceRepo, idGen, auditRepo),
		invoices: usecase.NewInvoiceUseCase(mocks.NewMockTransactionManager(), invoiceRepo, clientRepo, idGen, nil),
		repo:     clientRepo,
		audit:    auditRepo,
	}
}

func TestClientUseCase_CreateClient(t *testing.T) {
	ctx := context.Background()
	f := newClientFixture()

	client, err := f.clients.CreateClient(ctx, &domain.Client{Name: " ACME ", SIRET: "732 829 320 00074"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !client.Active || client.Country != domain.DefaultClientCountry || client.SIRET != "73282932000074" {
		t.Fatalf("unexpected client %+v", client)
	}

	tests := []struct {
		name  string
		input *domain.Client
		want  error
	}{
		{"duplicate siret", &domain.Client{Name: "ACME bis", SIRET: "73282932000074"}, domain.ErrClientSIRETTaken},
		{"missing name", &domain.Client{}, domain.ErrInvalidClient},
		{"bad siret", &domain.Client{Name: "Globex", SIRET: "73282932000075"}, domain.ErrInvalidClient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.clients.CreateClient(ctx, tt.input); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestClientUseCase_UpdateKeepsActiveFlag(t *testing.T) {
	ctx := context.Background()
	f := newClientFixture()

	client, err := f.clients.CreateClient(ctx, &domain.Client{Name: "ACME"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	toggled, err := f.clients.ToggleActive(ctx, client.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggled.Active {
		t.Fatalf("expected client to be inactive after toggle")
	}

	updated, err := f.clients.UpdateClient(ctx, client.ID, &domain.Client{Name: "ACME France", City: "Lyon", Active: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Active || updated.City != "Lyon" || !updated.CreatedAt.Equal(client.CreatedAt) {
		t.Fatalf("unexpected update %+v", updated)
	}

	active, err := f.clients.ListClients(ctx, domain.ClientFilter{ActiveOnly: true})
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active client, got %d", len(active))
	}

	if _, err := f.clients.UpdateClient(ctx, "missing", &domain.Client{Name: "x"}); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
	if _, err := f.clients.ToggleActive(ctx, "missing"); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestClientUseCase_InvoicesStatsAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newClientFixture()

	client, err := f.clients.CreateClient(ctx, &domain.Client{Name: "Globex"})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	other, err := f.clients.CreateClient(ctx, &domain.Client{Name: "Initech"})
	if err != nil {
		t.Fatalf("create other client: %v", err)
	}

	for i, paid := range []int64{1200, 0} {
		input := saleInput()
		input.ClientID = &client.ID
		input.PaidAmount = decimal.NewFromInt(paid)
		if _, err := f.invoices.CreateInvoice(ctx, input); err != nil {
			t.Fatalf("create invoice %d: %v", i, err)
		}
	}

	invoices, err := f.clients.ListInvoices(ctx, client.ID, 0, 0)
	if err != nil {
		t.Fatalf("list invoices: %v", err)
	}
	if len(invoices) != 2 {
		t.Fatalf("expected 2 invoices, got %d", len(invoices))
	}

	stats, err := f.clients.Stats(ctx, client.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.InvoiceCount != 2 || !stats.TotalInclTax.Equal(decimal.NewFromInt(2400)) ||
		!stats.TotalPaid.Equal(decimal.NewFromInt(1200)) || !stats.TotalRemaining.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("unexpected stats %+v", stats)
	}

	if err := f.clients.DeleteClient(ctx, client.ID); !errors.Is(err, domain.ErrClientHasInvoices) {
		t.Fatalf("expected ErrClientHasInvoices, got %v", err)
	}
	if err := f.clients.DeleteClient(ctx, other.ID); err != nil {
		t.Fatalf("delete client without invoices: %v", err)
	}
	logs := f.audit.Logs()
	if len(logs) != 1 || logs[0].Action != domain.AuditActionClientDelete || logs[0].ResourceID != other.ID {
		t.Fatalf("expected one client.delete audit entry, got %+v", logs)
	}
	if logs[0].BeforeState["Name"] != "Initech" {
		t.Fatalf("expected deleted client snapshot, got %v", logs[0].BeforeState)
	}
	if _, err := f.clients.GetClient(ctx, other.ID); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
	if _, err := f.clients.Stats(ctx, other.ID); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound for stats, got %v", err)
	}
}

func TestCompanyUseCase_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	auditRepo := mocks.NewMockAuditRepository()
	uc := usecase.NewCompanyUseCase(mocks.NewMockCompanyRepository(), auditRepo)

	if _, err := uc.GetCompany(ctx); !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
	if _, err := uc.SaveCompany(ctx, &domain.Company{Name: " "}); !errors.Is(err, domain.ErrInvalidCompany) {
		t.Fatalf("expected ErrInvalidCompany, got %v", err)
	}

	saved, err := uc.SaveCompany(ctx, &domain.Company{Name: " Compta SAS ", SIRET: "732 829 320 00074", VATRegime: "reel_normal"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.UpdatedAt.IsZero() || saved.SIRET != "73282932000074" {
		t.Fatalf("unexpected saved company %+v", saved)
	}

	got, err := uc.GetCompany(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Compta SAS" || got.VATRegime != "reel_normal" {
		t.Fatalf("unexpected company %+v", got)
	}

	if _, err := uc.SaveCompany(ctx, &domain.Company{Name: "Compta SARL"}); err != nil {
		t.Fatalf("second save: %v", err)
	}
	logs := auditRepo.Logs()
	if len(logs) != 2 {
		t.Fatalf("expected 2 company.update entries, got %d", len(logs))
	}
	if logs[0].BeforeState != nil || logs[1].BeforeState["Name"] != "Compta SAS" || logs[1].AfterState["Name"] != "Compta SARL" {
		t.Fatalf("unexpected company audit states: %+v %+v", logs[0], logs[1])
	}
}
