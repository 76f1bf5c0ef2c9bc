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

type assetFixture struct {
	assetRepo  *mocks.MockAssetRepository
	deprRepo   *mocks.MockDepreciationRepository
	ledgerRepo *mocks.MockLedgerRepository
	cache      *mocks.MockCache
	auditRepo  *mocks.MockAuditRepository
	uc         *usecase.AssetUseCase
}

func newAssetFixture() *assetFixture {
	f := &assetFixture{
		assetRepo:  mocks.NewMockAssetRepository(),
		deprRepo:   mocks.NewMockDepreciationRepository(),
		ledgerRepo: mocks.NewMockLedgerRepository(),
		cache:      mocks.NewMockCache(),
		auditRepo:  mocks.NewMockAuditRepository(),
	}
	idGen := mocks.NewMockIDGenerator()
	reportCache := usecase.NewReportCache(f.cache, idGen, time.Minute)
	f.uc = usecase.NewAssetUseCase(
		mocks.NewMockTransactionManager(),
		f.assetRepo,
		f.deprRepo,
		f.ledgerRepo,
		idGen,
		mocks.NewMockRetrier(),
		reportCache,
		f.auditRepo,
		nil,
	)
	return f
}

func vehicleInput() usecase.CreateAssetInput {
	return usecase.CreateAssetInput{
		Designation:      "Utilitaire",
		Category:         "Matériel de transport",
		AccountCode:      "2182",
		AcquisitionDate:  time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC),
		AcquisitionValue: decimal.NewFromInt(12000),
		UsefulLifeYears:  5,
		Method:           domain.MethodStraightLine,
	}
}

func TestAssetUseCase_CreateAsset(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*usecase.CreateAssetInput)
		errorType error
	}{
		{name: "valid asset", mutate: func(*usecase.CreateAssetInput) {}},
		{
			name:      "missing designation",
			mutate:    func(in *usecase.CreateAssetInput) { in.Designation = "" },
			errorType: domain.ErrInvalidAsset,
		},
		{
			name:      "residual above acquisition value",
			mutate:    func(in *usecase.CreateAssetInput) { in.ResidualValue = decimal.NewFromInt(20000) },
			errorType: domain.ErrInvalidAsset,
		},
		{
			name:      "non class 2 account",
			mutate:    func(in *usecase.CreateAssetInput) { in.AccountCode = "6063" },
			errorType: domain.ErrInvalidAccountCode,
		},
		{
			name:      "unknown method",
			mutate:    func(in *usecase.CreateAssetInput) { in.Method = "sum_of_years" },
			errorType: domain.ErrInvalidAsset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAssetFixture()
			input := vehicleInput()
			tt.mutate(&input)

			asset, err := f.uc.CreateAsset(context.Background(), input)
			if tt.errorType != nil {
				if !errors.Is(err, tt.errorType) {
					t.Fatalf("expected %v, got %v", tt.errorType, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !asset.NetBookValue.Equal(input.AcquisitionValue) {
				t.Errorf("expected NBV %s, got %s", input.AcquisitionValue, asset.NetBookValue)
			}
			if asset.Version != 1 {
				t.Errorf("expected version 1, got %d", asset.Version)
			}
		})
	}
}

func TestAssetUseCase_PostDepreciationFullPlan(t *testing.T) {
	ctx := context.Background()
	f := newAssetFixture()

	asset, err := f.uc.CreateAsset(ctx, vehicleInput())
	if err != nil {
		t.Fatalf("create asset: %v", err)
	}

	expected := []string{"1200", "2400", "2400", "2400", "2400", "1200"}
	for i, want := range expected {
		year := 2023 + i
		entry, err := f.uc.PostDepreciation(ctx, asset.ID, year)
		if err != nil {
			t.Fatalf("post %d: %v", year, err)
		}
		if !entry.Amount.Equal(decimal.RequireFromString(want)) {
			t.Errorf("year %d: expected %s, got %s", year, want, entry.Amount)
		}
	}

	stored, err := f.uc.GetAsset(ctx, asset.ID)
	if err != nil {
		t.Fatalf("get asset: %v", err)
	}
	if !stored.NetBookValue.IsZero() {
		t.Errorf("expected fully depreciated asset, NBV %s", stored.NetBookValue)
	}
	if stored.Version != int64(1+len(expected)) {
		t.Errorf("expected version %d, got %d", 1+len(expected), stored.Version)
	}

	entries := f.ledgerRepo.Entries()
	if len(entries) != 2*len(expected) {
		t.Fatalf("expected %d ledger lines, got %d", 2*len(expected), len(entries))
	}

	debit, credit := decimal.Zero, decimal.Zero
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			t.Errorf("invalid ledger line %+v: %v", e, err)
		}
		switch e.AccountCode {
		case domain.AccountDepreciationExpense:
			debit = debit.Add(e.Debit)
		case "28182":
			credit = credit.Add(e.Credit)
		default:
			t.Errorf("unexpected account %s", e.AccountCode)
		}
		if e.Journal != domain.JournalMisc {
			t.Errorf("expected OD journal, got %s", e.Journal)
		}
	}
	if !debit.Equal(decimal.NewFromInt(12000)) || !credit.Equal(decimal.NewFromInt(12000)) {
		t.Errorf("expected 12000 booked on both sides, got debit %s credit %s", debit, credit)
	}

	if _, err := f.uc.PostDepreciation(ctx, asset.ID, 2029); !errors.Is(err, domain.ErrOutOfPeriod) {
		t.Errorf("expected ErrOutOfPeriod after plan end, got %v", err)
	}
}

func TestAssetUseCase_PostDepreciationOrdering(t *testing.T) {
	ctx := context.Background()
	f := newAssetFixture()

	asset, err := f.uc.CreateAsset(ctx, vehicleInput())
	if err != nil {
		t.Fatalf("create asset: %v", err)
	}

	if _, err := f.uc.PostDepreciation(ctx, asset.ID, 2024); !errors.Is(err, domain.ErrDepreciationSequence) {
		t.Fatalf("expected ErrDepreciationSequence, got %v", err)
	}

	if _, err := f.uc.PostDepreciation(ctx, asset.ID, 2023); err != nil {
		t.Fatalf("post 2023: %v", err)
	}

	if _, err := f.uc.PostDepreciation(ctx, asset.ID, 2023); !errors.Is(err, domain.ErrDepreciationAlreadyPosted) {
		t.Fatalf("expected ErrDepreciationAlreadyPosted, got %v", err)
	}

	if _, err := f.uc.PostDepreciation(ctx, asset.ID, 2022); !errors.Is(err, domain.ErrOutOfPeriod) {
		t.Fatalf("expected ErrOutOfPeriod, got %v", err)
	}

	if _, err := f.uc.PostDepreciation(ctx, "missing", 2023); !errors.Is(err, domain.ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestAssetUseCase_PostDepreciationConflict(t *testing.T) {
	ctx := context.Background()
	f := newAssetFixture()

	asset, err := f.uc.CreateAsset(ctx, vehicleInput())
	if err != nil {
		t.Fatalf("create asset: %v", err)
	}

	f.assetRepo.UpdateNetBookValueFunc = func(context.Context, usecase.Transaction, string, decimal.Decimal, int64, time.Time) error {
		return domain.ErrConcurrencyConflict
	}

	committed := false
	txMgr := mocks.NewMockTransactionManager()
	txMgr.BeginFunc = func(context.Context) (usecase.Transaction, error) {
		return &mocks.MockTransaction{
			CommitFunc: func(context.Context) error {
				committed = true
				return nil
			},
		}, nil
	}

	uc := usecase.NewAssetUseCase(txMgr, f.assetRepo, f.deprRepo, f.ledgerRepo, mocks.NewMockIDGenerator(), mocks.NewMockRetrier(), nil, nil, nil)

	if _, err := uc.PostDepreciation(ctx, asset.ID, 2023); !errors.Is(err, domain.ErrConcurrencyConflict) {
		t.Fatalf("expected ErrConcurrencyConflict, got %v", err)
	}
	if committed {
		t.Fatal("transaction must not be committed after a conflict")
	}
}

func TestAssetUseCase_ComputeDepreciationReturnsPostedYear(t *testing.T) {
	ctx := context.Background()
	f := newAssetFixture()

	asset, err := f.uc.CreateAsset(ctx, vehicleInput())
	if err != nil {
		t.Fatalf("create asset: %v", err)
	}

	preview, err := f.uc.ComputeDepreciation(ctx, asset.ID, 2024)
	if err != nil {
		t.Fatalf("compute 2024: %v", err)
	}
	if !preview.Amount.Equal(decimal.NewFromInt(2400)) || preview.Posted {
		t.Fatalf("unexpected preview %+v", preview)
	}

	if _, err := f.uc.PostDepreciation(ctx, asset.ID, 2023); err != nil {
		t.Fatalf("post 2023: %v", err)
	}

	posted, err := f.uc.ComputeDepreciation(ctx, asset.ID, 2023)
	if err != nil {
		t.Fatalf("compute 2023: %v", err)
	}
	if !posted.Posted || !posted.NetBookValue.Equal(decimal.NewFromInt(10800)) {
		t.Fatalf("expected posted 2023 with NBV 10800, got %+v", posted)
	}

	schedule, err := f.uc.DepreciationSchedule(ctx, asset.ID)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if len(schedule) != 6 {
		t.Fatalf("expected 6 years, got %d", len(schedule))
	}

	entries, err := f.uc.ListDepreciationEntries(ctx, asset.ID)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one posted entry, got %d (%v)", len(entries), err)
	}
}

func TestAssetUseCase_DisposeAsset(t *testing.T) {
	ctx := context.Background()
	f := newAssetFixture()

	asset, err := f.uc.CreateAsset(ctx, vehicleInput())
	if err != nil {
		t.Fatalf("create asset: %v", err)
	}
	for year := 2023; year <= 2024; year++ {
		if _, err := f.uc.PostDepreciation(ctx, asset.ID, year); err != nil {
			t.Fatalf("post %d: %v", year, err)
		}
	}

	if _, err := f.uc.DisposeAsset(ctx, usecase.DisposeAssetInput{
		AssetID: asset.ID,
		Date:    time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC),
		Price:   decimal.NewFromInt(5000),
	}); !errors.Is(err, domain.ErrInvalidDisposal) {
		t.Fatalf("expected ErrInvalidDisposal before posted years, got %v", err)
	}

	if _, err := f.uc.DisposeAsset(ctx, usecase.DisposeAssetInput{
		AssetID: asset.ID,
		Date:    time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		Price:   decimal.NewFromInt(-1),
	}); !errors.Is(err, domain.ErrInvalidDisposal) {
		t.Fatalf("expected ErrInvalidDisposal for negative price, got %v", err)
	}

	disposed, err := f.uc.DisposeAsset(ctx, usecase.DisposeAssetInput{
		AssetID: asset.ID,
		Date:    time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		Price:   decimal.NewFromInt(8000),
	})
	if err != nil {
		t.Fatalf("dispose: %v", err)
	}
	if !disposed.IsDisposed() {
		t.Fatal("expected asset to be disposed")
	}
	// NBV 8400 after 2023 and 2024.
	if gain := disposed.DisposalGain(); !gain.Equal(decimal.NewFromInt(-400)) {
		t.Errorf("expected loss of 400, got %s", gain)
	}

	entry, err := f.uc.PostDepreciation(ctx, asset.ID, 2025)
	if err != nil {
		t.Fatalf("post disposal year: %v", err)
	}
	if !entry.Amount.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("expected six months of depreciation (1200), got %s", entry.Amount)
	}

	if _, err := f.uc.PostDepreciation(ctx, asset.ID, 2026); !errors.Is(err, domain.ErrAssetDisposed) {
		t.Fatalf("expected ErrAssetDisposed, got %v", err)
	}

	if _, err := f.uc.DisposeAsset(ctx, usecase.DisposeAssetInput{
		AssetID: asset.ID,
		Date:    time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		Price:   decimal.NewFromInt(1),
	}); !errors.Is(err, domain.ErrInvalidDisposal) {
		t.Fatalf("expected ErrInvalidDisposal for second disposal, got %v", err)
	}
}

func TestAssetUseCase_PostDepreciationInvalidatesReports(t *testing.T) {
	ctx := context.Background()
	f := newAssetFixture()

	asset, err := f.uc.CreateAsset(ctx, vehicleInput())
	if err != nil {
		t.Fatalf("create asset: %v", err)
	}

	if f.cache.Len() != 0 {
		t.Fatalf("expected empty cache, got %d keys", f.cache.Len())
	}

	if _, err := f.uc.PostDepreciation(ctx, asset.ID, 2023); err != nil {
		t.Fatalf("post: %v", err)
	}

	if _, err := f.cache.Get(ctx, "reports:generation"); err != nil {
		t.Fatalf("expected a report generation to be set, got %v", err)
	}
}

func TestAssetUseCase_DisposeRejectsPostedDisposalYear(t *testing.T) {
	ctx := context.Background()
	f := newAssetFixture()

	asset, err := f.uc.CreateAsset(ctx, vehicleInput())
	if err != nil {
		t.Fatalf("create asset: %v", err)
	}
	for year := 2023; year <= 2024; year++ {
		if _, err := f.uc.PostDepreciation(ctx, asset.ID, year); err != nil {
			t.Fatalf("post %d: %v", year, err)
		}
	}

	// 2024 was posted for a full year; a disposal within it would over-depreciate.
	if _, err := f.uc.DisposeAsset(ctx, usecase.DisposeAssetInput{
		AssetID: asset.ID,
		Date:    time.Date(2024, time.September, 30, 0, 0, 0, 0, time.UTC),
		Price:   decimal.NewFromInt(9000),
	}); !errors.Is(err, domain.ErrInvalidDisposal) {
		t.Fatalf("expected ErrInvalidDisposal for a posted disposal year, got %v", err)
	}

	stored, err := f.uc.GetAsset(ctx, asset.ID)
	if err != nil {
		t.Fatalf("get asset: %v", err)
	}
	if stored.IsDisposed() {
		t.Fatal("rejected disposal must not be recorded")
	}
}

func TestAssetUseCase_MutationsAreAudited(t *testing.T) {
	f := newAssetFixture()
	ctx := domain.ContextWithAuditActor(context.Background(), domain.AuditActor{UserID: "admin", IPAddress: "192.0.2.10"})

	asset, err := f.uc.CreateAsset(ctx, vehicleInput())
	if err != nil {
		t.Fatalf("create asset: %v", err)
	}
	if _, err := f.uc.PostDepreciation(ctx, asset.ID, 2023); err != nil {
		t.Fatalf("post 2023: %v", err)
	}
	if _, err := f.uc.DisposeAsset(ctx, usecase.DisposeAssetInput{
		AssetID: asset.ID,
		Date:    time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		Price:   decimal.NewFromInt(8000),
	}); err != nil {
		t.Fatalf("dispose: %v", err)
	}

	logs := f.auditRepo.Logs()
	if len(logs) != 3 {
		t.Fatalf("expected 3 audit logs, got %d", len(logs))
	}

	want := []domain.AuditAction{domain.AuditActionAssetCreate, domain.AuditActionDepreciationPost, domain.AuditActionAssetDispose}
	for i, log := range logs {
		if log.Action != want[i] {
			t.Fatalf("log %d: expected %s, got %s", i, want[i], log.Action)
		}
		if log.ResourceType != domain.AuditResourceAsset || log.ResourceID != asset.ID {
			t.Fatalf("log %d: unexpected resource %s/%s", i, log.ResourceType, log.ResourceID)
		}
		if log.UserID != "admin" || log.IPAddress != "192.0.2.10" {
			t.Fatalf("log %d: actor not recorded: %+v", i, log)
		}
	}

	if logs[1].AfterState["Amount"] != "1200" {
		t.Fatalf("expected posted amount in after state, got %v", logs[1].AfterState)
	}
	if logs[2].BeforeState["DisposalDate"] != nil || logs[2].AfterState["DisposalDate"] == nil {
		t.Fatalf("unexpected disposal states: before=%v after=%v", logs[2].BeforeState, logs[2].AfterState)
	}
}

func TestAssetUseCase_DepreciationAuditFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	f := newAssetFixture()

	asset, err := f.uc.CreateAsset(ctx, vehicleInput())
	if err != nil {
		t.Fatalf("create asset: %v", err)
	}

	auditErr := errors.New("audit store down")
	f.auditRepo.CreateTxFunc = func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
		return auditErr
	}

	if _, err := f.uc.PostDepreciation(ctx, asset.ID, 2023); !errors.Is(err, auditErr) {
		t.Fatalf("expected audit error, got %v", err)
	}
}
