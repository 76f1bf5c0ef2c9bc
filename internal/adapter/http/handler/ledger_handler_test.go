package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/adapter/http/dto"
	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/usecase"
)

type ledgerServiceStub struct {
	createFn      func(ctx context.Context, input usecase.CreateEntryInput) (*domain.LedgerEntry, error)
	createManyFn  func(ctx context.Context, inputs []usecase.CreateEntryInput) ([]*domain.LedgerEntry, error)
	listFn        func(ctx context.Context, filter domain.LedgerFilter) ([]*domain.LedgerEntry, error)
	letterFn      func(ctx context.Context, ids []string, code string) (int64, error)
	unletterFn    func(ctx context.Context, ids []string) (int64, error)
	listChartFn   func(ctx context.Context) ([]*domain.ChartAccount, error)
	createChartFn func(ctx context.Context, code, label string) (*domain.ChartAccount, error)
	consistencyFn func(ctx context.Context) (*domain.ConsistencyReport, error)
}

func (s *ledgerServiceStub) CreateEntry(ctx context.Context, input usecase.CreateEntryInput) (*domain.LedgerEntry, error) {
	return s.createFn(ctx, input)
}

func (s *ledgerServiceStub) CreateEntries(ctx context.Context, inputs []usecase.CreateEntryInput) ([]*domain.LedgerEntry, error) {
	return s.createManyFn(ctx, inputs)
}

func (s *ledgerServiceStub) ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]*domain.LedgerEntry, error) {
	return s.listFn(ctx, filter)
}

func (s *ledgerServiceStub) LetterEntries(ctx context.Context, ids []string, code string) (int64, error) {
	return s.letterFn(ctx, ids, code)
}

func (s *ledgerServiceStub) UnletterEntries(ctx context.Context, ids []string) (int64, error) {
	return s.unletterFn(ctx, ids)
}

func (s *ledgerServiceStub) ListChartAccounts(ctx context.Context) ([]*domain.ChartAccount, error) {
	return s.listChartFn(ctx)
}

func (s *ledgerServiceStub) CreateChartAccount(ctx context.Context, code, label string) (*domain.ChartAccount, error) {
	return s.createChartFn(ctx, code, label)
}

func (s *ledgerServiceStub) CheckConsistency(ctx context.Context) (*domain.ConsistencyReport, error) {
	return s.consistencyFn(ctx)
}

func TestLedgerHandler_CreateEntryRejectsBothSides(t *testing.T) {
	h := NewLedgerHandler(&ledgerServiceStub{
		createFn: func(_ context.Context, input usecase.CreateEntryInput) (*domain.LedgerEntry, error) {
			if input.Journal != domain.JournalSales {
				t.Fatalf("unexpected journal %s", input.Journal)
			}
			return nil, domain.ErrInvalidLedgerEntry
		},
	})

	rec := httptest.NewRecorder()
	h.CreateEntry(rec, newRequest(http.MethodPost, "/ledger/entries", jsonBody(`{
		"date": "2024-01-15",
		"account_code": "411000",
		"label": "Client",
		"debit": "100",
		"credit": "100",
		"journal": "VT",
		"piece_number": "FAC-2024-0001"
	}`), nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLedgerHandler_CreateEntriesBatch(t *testing.T) {
	h := NewLedgerHandler(&ledgerServiceStub{
		createManyFn: func(_ context.Context, inputs []usecase.CreateEntryInput) ([]*domain.LedgerEntry, error) {
			if len(inputs) != 2 {
				t.Fatalf("expected 2 inputs, got %d", len(inputs))
			}
			out := make([]*domain.LedgerEntry, len(inputs))
			for i, in := range inputs {
				out[i] = &domain.LedgerEntry{ID: in.AccountCode, AccountCode: in.AccountCode, Debit: in.Debit, Credit: in.Credit}
			}
			return out, nil
		},
	})

	rec := httptest.NewRecorder()
	h.CreateEntries(rec, newRequest(http.MethodPost, "/ledger/entries/batch", jsonBody(`{"entries":[
		{"date":"2024-01-15","account_code":"411000","label":"Client","debit":"120","credit":"0","journal":"VT","piece_number":"P1"},
		{"date":"2024-01-15","account_code":"706000","label":"Vente","debit":"0","credit":"120","journal":"VT","piece_number":"P1"}
	]}`), nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp []dto.LedgerEntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp) != 2 || !resp[1].Credit.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("unexpected entries %+v", resp)
	}
}

func TestLedgerHandler_CreateEntriesEmpty(t *testing.T) {
	h := NewLedgerHandler(&ledgerServiceStub{})

	rec := httptest.NewRecorder()
	h.CreateEntries(rec, newRequest(http.MethodPost, "/ledger/entries/batch", jsonBody(`{"entries":[]}`), nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLedgerHandler_ListEntriesFilter(t *testing.T) {
	h := NewLedgerHandler(&ledgerServiceStub{
		listFn: func(_ context.Context, filter domain.LedgerFilter) ([]*domain.LedgerEntry, error) {
			if filter.Journal == nil || *filter.Journal != domain.JournalBank {
				t.Fatalf("expected BQ journal, got %v", filter.Journal)
			}
			if filter.AccountCode != "512000" || filter.From == nil || filter.To != nil {
				t.Fatalf("unexpected filter %+v", filter)
			}
			return nil, nil
		},
	})

	rec := httptest.NewRecorder()
	h.ListEntries(rec, newRequest(http.MethodGet, "/ledger/entries?journal=BQ&account=512000&from=2024-01-01", nil, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLedgerHandler_ListEntriesUnknownJournal(t *testing.T) {
	h := NewLedgerHandler(&ledgerServiceStub{})

	rec := httptest.NewRecorder()
	h.ListEntries(rec, newRequest(http.MethodGet, "/ledger/entries?journal=XX", nil, nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLedgerHandler_Letter(t *testing.T) {
	h := NewLedgerHandler(&ledgerServiceStub{
		letterFn: func(_ context.Context, ids []string, code string) (int64, error) {
			if len(ids) != 2 || code != "AA" {
				t.Fatalf("unexpected args %v %s", ids, code)
			}
			return 2, nil
		},
	})

	rec := httptest.NewRecorder()
	h.Letter(rec, newRequest(http.MethodPost, "/ledger/entries/letter", jsonBody(`{"ids":["e1","e2"],"code":"AA"}`), nil))

	var resp dto.CountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Updated != 2 {
		t.Fatalf("expected 2 updated, got %d", resp.Updated)
	}
}

func TestLedgerHandler_CreateChartAccountConflict(t *testing.T) {
	h := NewLedgerHandler(&ledgerServiceStub{
		createChartFn: func(context.Context, string, string) (*domain.ChartAccount, error) {
			return nil, domain.ErrChartAccountExists
		},
	})

	rec := httptest.NewRecorder()
	h.CreateAccount(rec, newRequest(http.MethodPost, "/ledger/accounts", jsonBody(`{"code":"512000","label":"Banque"}`), nil))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
