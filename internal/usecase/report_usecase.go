package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/infrastructure/metrics"
)

const dateLayout = "2006-01-02"

// Sheet is one tab of an exported report.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// ReportParams selects the data of a report.
type ReportParams struct {
	Period      domain.Period
	Journal     *domain.Journal
	AccountCode string
}

// ReportUseCase builds accounting reports from the ledger.
type ReportUseCase struct {
	ledgerRepo LedgerRepository
	chartRepo  ChartRepository
	exporter   ReportExporter
	cache      *ReportCache
	metrics    *metrics.Metrics
	now        func() time.Time
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(
	ledgerRepo LedgerRepository,
	chartRepo ChartRepository,
	exporter ReportExporter,
	cache *ReportCache,
	metrics *metrics.Metrics,
) *ReportUseCase {
	return &ReportUseCase{
		ledgerRepo: ledgerRepo,
		chartRepo:  chartRepo,
		exporter:   exporter,
		cache:      cache,
		metrics:    metrics,
		now:        time.Now,
	}
}

// cached serves name from the cache when the period is closed, otherwise
// builds it with fn. Reports over open periods are never cached.
func cached[T any](ctx context.Context, uc *ReportUseCase, reportType domain.ReportType, name string, closed bool, fn func() (T, error)) (T, error) {
	var (
		v   T
		key string
		hit bool
	)
	if closed {
		key, hit = uc.cache.load(ctx, name, &v)
	}
	if hit {
		uc.recordReport(reportType, "hit")
		return v, nil
	}

	v, err := fn()
	if err != nil {
		return v, err
	}

	if closed {
		uc.cache.store(ctx, key, v)
		uc.recordReport(reportType, "miss")
	} else {
		uc.recordReport(reportType, "bypass")
	}

	return v, nil
}

func (uc *ReportUseCase) recordReport(reportType domain.ReportType, outcome string) {
	if uc.metrics != nil {
		uc.metrics.ReportsGenerated.WithLabelValues(string(reportType), outcome).Inc()
	}
}

// Journal returns the entries of a period in booking order, optionally
// restricted to one journal.
func (uc *ReportUseCase) Journal(ctx context.Context, period domain.Period, journal *domain.Journal) ([]*domain.LedgerEntry, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	if journal != nil && !journal.IsValid() {
		return nil, domain.ErrInvalidJournal
	}

	name := fmt.Sprintf("journal:%s:%s", periodKey(period), journalKey(journal))

	return cached(ctx, uc, domain.ReportJournal, name, period.Closed(uc.now()), func() ([]*domain.LedgerEntry, error) {
		return uc.listAll(ctx, domain.LedgerFilter{From: &period.From, To: &period.To, Journal: journal})
	})
}

// GeneralLedger returns the grand livre of a period, optionally for one account.
func (uc *ReportUseCase) GeneralLedger(ctx context.Context, period domain.Period, accountCode string) (*domain.GeneralLedger, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("grand-livre:%s:%s", periodKey(period), accountCode)

	return cached(ctx, uc, domain.ReportGeneralLedger, name, period.Closed(uc.now()), func() (*domain.GeneralLedger, error) {
		entries, err := uc.listAll(ctx, domain.LedgerFilter{From: &period.From, To: &period.To, AccountCode: accountCode})
		if err != nil {
			return nil, err
		}

		labels, err := uc.labels(ctx)
		if err != nil {
			return nil, err
		}

		return domain.NewGeneralLedger(period, entries, labels), nil
	})
}

// TrialBalance returns per-account debit, credit and solde over a period.
func (uc *ReportUseCase) TrialBalance(ctx context.Context, period domain.Period) (*domain.TrialBalance, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	name := "balance:" + periodKey(period)

	return cached(ctx, uc, domain.ReportTrialBalance, name, period.Closed(uc.now()), func() (*domain.TrialBalance, error) {
		balances, err := uc.balances(ctx, &period.From, period.To)
		if err != nil {
			return nil, err
		}

		return domain.NewTrialBalance(period, balances), nil
	})
}

// BalanceSheet returns the bilan at a closing date.
func (uc *ReportUseCase) BalanceSheet(ctx context.Context, date time.Time) (*domain.BalanceSheet, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", domain.ErrInvalidPeriod)
	}

	closed := domain.Period{From: date, To: date}.Closed(uc.now())
	name := "bilan:" + date.Format(dateLayout)

	return cached(ctx, uc, domain.ReportBalanceSheet, name, closed, func() (*domain.BalanceSheet, error) {
		balances, err := uc.balances(ctx, nil, date)
		if err != nil {
			return nil, err
		}

		return domain.NewBalanceSheet(date, balances), nil
	})
}

// IncomeStatement returns the compte de résultat of a period.
func (uc *ReportUseCase) IncomeStatement(ctx context.Context, period domain.Period) (*domain.IncomeStatement, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	name := "compte-resultat:" + periodKey(period)

	return cached(ctx, uc, domain.ReportIncomeStatement, name, period.Closed(uc.now()), func() (*domain.IncomeStatement, error) {
		balances, err := uc.balances(ctx, &period.From, period.To)
		if err != nil {
			return nil, err
		}

		return domain.NewIncomeStatement(period, balances), nil
	})
}

// Export renders a report into w and returns the suggested file name.
func (uc *ReportUseCase) Export(ctx context.Context, w io.Writer, reportType domain.ReportType, params ReportParams) (string, error) {
	sheets, err := uc.sheets(ctx, reportType, params)
	if err != nil {
		return "", err
	}

	if err := uc.exporter.Write(w, sheets...); err != nil {
		return "", fmt.Errorf("failed to export %s: %w", reportType, err)
	}

	name := fmt.Sprintf("%s_%s%s", reportType, periodKey(params.Period), uc.exporter.Extension())

	return name, nil
}

// ExportContentType is the MIME type of exported documents.
func (uc *ReportUseCase) ExportContentType() string {
	return uc.exporter.ContentType()
}

func (uc *ReportUseCase) sheets(ctx context.Context, reportType domain.ReportType, params ReportParams) ([]Sheet, error) {
	switch reportType {
	case domain.ReportJournal:
		entries, err := uc.Journal(ctx, params.Period, params.Journal)
		if err != nil {
			return nil, err
		}
		return []Sheet{journalSheet(entries)}, nil

	case domain.ReportGeneralLedger:
		gl, err := uc.GeneralLedger(ctx, params.Period, params.AccountCode)
		if err != nil {
			return nil, err
		}
		return []Sheet{generalLedgerSheet(gl)}, nil

	case domain.ReportTrialBalance:
		tb, err := uc.TrialBalance(ctx, params.Period)
		if err != nil {
			return nil, err
		}
		return []Sheet{trialBalanceSheet(tb)}, nil

	case domain.ReportBalanceSheet:
		bs, err := uc.BalanceSheet(ctx, params.Period.To)
		if err != nil {
			return nil, err
		}
		return balanceSheetSheets(bs), nil

	case domain.ReportIncomeStatement:
		is, err := uc.IncomeStatement(ctx, params.Period)
		if err != nil {
			return nil, err
		}
		return incomeStatementSheets(is), nil
	}

	return nil, fmt.Errorf("%w: %q", domain.ErrInvalidReportType, reportType)
}

func (uc *ReportUseCase) listAll(ctx context.Context, filter domain.LedgerFilter) ([]*domain.LedgerEntry, error) {
	entries := make([]*domain.LedgerEntry, 0)
	filter.Limit = verifyPageSize

	for filter.Offset = 0; ; filter.Offset += verifyPageSize {
		page, err := uc.ledgerRepo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		entries = append(entries, page...)

		if len(page) < verifyPageSize {
			return entries, nil
		}
	}
}

func (uc *ReportUseCase) balances(ctx context.Context, from *time.Time, to time.Time) ([]domain.AccountBalance, error) {
	balances, err := uc.ledgerRepo.AccountBalances(ctx, from, to)
	if err != nil {
		return nil, err
	}

	labels, err := uc.labels(ctx)
	if err != nil {
		return nil, err
	}

	for i := range balances {
		if balances[i].Label == "" {
			balances[i].Label = labels[balances[i].AccountCode]
		}
	}

	return balances, nil
}

func (uc *ReportUseCase) labels(ctx context.Context) (map[string]string, error) {
	accounts, err := uc.chartRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	labels := make(map[string]string, len(accounts))
	for _, a := range accounts {
		labels[a.Code] = a.Label
	}

	return labels, nil
}

func periodKey(p domain.Period) string {
	return p.From.Format(dateLayout) + "_" + p.To.Format(dateLayout)
}

func journalKey(j *domain.Journal) string {
	if j == nil {
		return "all"
	}

	return string(*j)
}

func journalSheet(entries []*domain.LedgerEntry) Sheet {
	sheet := Sheet{
		Name:   "Journal",
		Header: []string{"Date", "Journal", "Pièce", "Compte", "Libellé", "Débit", "Crédit", "Lettrage"},
	}

	for _, e := range entries {
		lettering := ""
		if e.Lettering != nil {
			lettering = *e.Lettering
		}
		sheet.Rows = append(sheet.Rows, []string{
			e.Date.Format(dateLayout),
			string(e.Journal),
			e.PieceNumber,
			e.AccountCode,
			e.Label,
			money(e.Debit),
			money(e.Credit),
			lettering,
		})
	}

	return sheet
}

func generalLedgerSheet(gl *domain.GeneralLedger) Sheet {
	sheet := Sheet{
		Name:   "Grand livre",
		Header: []string{"Compte", "Libellé", "Date", "Pièce", "Débit", "Crédit", "Solde"},
	}

	for _, acc := range gl.Accounts {
		running := decimal.Zero
		for _, e := range acc.Entries {
			running = running.Add(e.Debit).Sub(e.Credit)
			sheet.Rows = append(sheet.Rows, []string{
				acc.AccountCode,
				e.Label,
				e.Date.Format(dateLayout),
				e.PieceNumber,
				money(e.Debit),
				money(e.Credit),
				money(running),
			})
		}
		sheet.Rows = append(sheet.Rows, []string{
			acc.AccountCode,
			"Total " + acc.Label,
			"",
			"",
			money(acc.TotalDebit),
			money(acc.TotalCredit),
			money(acc.Balance()),
		})
	}

	return sheet
}

func trialBalanceSheet(tb *domain.TrialBalance) Sheet {
	sheet := Sheet{
		Name:   "Balance",
		Header: []string{"Compte", "Libellé", "Débit", "Crédit", "Solde"},
	}

	for _, b := range tb.Accounts {
		sheet.Rows = append(sheet.Rows, []string{
			b.AccountCode, b.Label, money(b.TotalDebit), money(b.TotalCredit), money(b.Balance()),
		})
	}
	sheet.Rows = append(sheet.Rows, []string{
		"", "Total", money(tb.TotalDebit), money(tb.TotalCredit), money(tb.TotalDebit.Sub(tb.TotalCredit)),
	})

	return sheet
}

func balanceSheetSheets(bs *domain.BalanceSheet) []Sheet {
	return []Sheet{
		linesSheet("Actif", bs.Assets, bs.TotalAssets),
		linesSheet("Passif", bs.Liabilities, bs.TotalLiabilities),
		{
			Name:   "Résultat",
			Header: []string{"Date", "Résultat"},
			Rows:   [][]string{{bs.Date.Format(dateLayout), money(bs.Result)}},
		},
	}
}

func incomeStatementSheets(is *domain.IncomeStatement) []Sheet {
	return []Sheet{
		linesSheet("Charges", is.Charges, is.TotalCharges),
		linesSheet("Produits", is.Products, is.TotalProducts),
		{
			Name:   "Résultat",
			Header: []string{"Période", "Résultat net"},
			Rows:   [][]string{{periodKey(is.Period), money(is.NetResult)}},
		},
	}
}

func linesSheet(name string, lines []domain.ReportLine, total decimal.Decimal) Sheet {
	sheet := Sheet{Name: name, Header: []string{"Poste", "Montant"}}
	for _, l := range lines {
		sheet.Rows = append(sheet.Rows, []string{l.Category, money(l.Amount)})
	}
	sheet.Rows = append(sheet.Rows, []string{"Total", money(total)})

	return sheet
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
