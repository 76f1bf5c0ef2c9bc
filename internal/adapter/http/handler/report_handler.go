package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/compta/internal/adapter/http/dto"
	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	Journal(ctx context.Context, period domain.Period, journal *domain.Journal) ([]*domain.LedgerEntry, error)
	GeneralLedger(ctx context.Context, period domain.Period, accountCode string) (*domain.GeneralLedger, error)
	TrialBalance(ctx context.Context, period domain.Period) (*domain.TrialBalance, error)
	BalanceSheet(ctx context.Context, date time.Time) (*domain.BalanceSheet, error)
	IncomeStatement(ctx context.Context, period domain.Period) (*domain.IncomeStatement, error)
	Export(ctx context.Context, w io.Writer, reportType domain.ReportType, params usecase.ReportParams) (string, error)
	ExportContentType() string
}

// ReportHandler serves accounting reports.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Journal lists the entries of a period, optionally for one journal.
func (h *ReportHandler) Journal(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriodQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period", err.Error())
		return
	}
	journal, err := journalQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid journal", err.Error())
		return
	}

	entries, err := h.reportUC.Journal(r.Context(), period, journal)
	if err != nil {
		writeDomainError(w, r, err, "failed to build journal")
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerEntriesFromDomain(entries))
}

// GeneralLedger returns the grand livre of a period.
func (h *ReportHandler) GeneralLedger(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriodQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period", err.Error())
		return
	}

	gl, err := h.reportUC.GeneralLedger(r.Context(), period, r.URL.Query().Get("account"))
	if err != nil {
		writeDomainError(w, r, err, "failed to build general ledger")
		return
	}

	writeJSON(w, http.StatusOK, dto.GeneralLedgerFromDomain(gl))
}

// TrialBalance returns the balance générale of a period.
func (h *ReportHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriodQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period", err.Error())
		return
	}

	tb, err := h.reportUC.TrialBalance(r.Context(), period)
	if err != nil {
		writeDomainError(w, r, err, "failed to build trial balance")
		return
	}

	writeJSON(w, http.StatusOK, dto.TrialBalanceFromDomain(tb))
}

// BalanceSheet returns the bilan at ?date=, defaulting to today.
func (h *ReportHandler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	date, err := closingDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	bs, err := h.reportUC.BalanceSheet(r.Context(), date)
	if err != nil {
		writeDomainError(w, r, err, "failed to build balance sheet")
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceSheetFromDomain(bs))
}

// IncomeStatement returns the compte de résultat of a period.
func (h *ReportHandler) IncomeStatement(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriodQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period", err.Error())
		return
	}

	is, err := h.reportUC.IncomeStatement(r.Context(), period)
	if err != nil {
		writeDomainError(w, r, err, "failed to build income statement")
		return
	}

	writeJSON(w, http.StatusOK, dto.IncomeStatementFromDomain(is))
}

// Export renders a report as a spreadsheet attachment.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	reportType := domain.ReportType(chi.URLParam(r, "type"))
	if !reportType.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid report type", fmt.Sprintf("unknown report %q", reportType))
		return
	}

	params, err := reportParams(r, reportType)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid report parameters", err.Error())
		return
	}

	// Headers are only sent once the whole workbook is rendered.
	var buf bytes.Buffer
	filename, err := h.reportUC.Export(r.Context(), &buf, reportType, params)
	if err != nil {
		writeDomainError(w, r, err, "failed to export report")
		return
	}

	w.Header().Set("Content-Type", h.reportUC.ExportContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func reportParams(r *http.Request, reportType domain.ReportType) (usecase.ReportParams, error) {
	if reportType == domain.ReportBalanceSheet {
		date, err := closingDate(r)
		if err != nil {
			return usecase.ReportParams{}, err
		}
		return usecase.ReportParams{Period: domain.Period{From: date, To: date}}, nil
	}

	period, err := parsePeriodQuery(r)
	if err != nil {
		return usecase.ReportParams{}, err
	}
	journal, err := journalQuery(r)
	if err != nil {
		return usecase.ReportParams{}, err
	}

	return usecase.ReportParams{
		Period:      period,
		Journal:     journal,
		AccountCode: r.URL.Query().Get("account"),
	}, nil
}

func closingDate(r *http.Request) (time.Time, error) {
	date, err := parseDateQuery(r, "date")
	if err != nil {
		return time.Time{}, err
	}
	if date == nil {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	return *date, nil
}
