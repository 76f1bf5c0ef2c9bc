package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/iho/compta/internal/adapter/http/dto"
	"github.com/iho/compta/internal/domain"
)

// RevenueService defines the behavior needed by RevenueHandler.
type RevenueService interface {
	Monthly(ctx context.Context, year int) ([]domain.MonthlyRevenue, error)
	Stats(ctx context.Context, year int) (*domain.RevenueStats, error)
	Years(ctx context.Context) ([]int, error)
	ByClient(ctx context.Context, year, limit int) ([]domain.ClientRevenue, error)
}

// RevenueHandler serves the chiffre d'affaires reports.
type RevenueHandler struct {
	revenueUC RevenueService
}

// NewRevenueHandler creates a new RevenueHandler.
func NewRevenueHandler(revenueUC RevenueService) *RevenueHandler {
	return &RevenueHandler{revenueUC: revenueUC}
}

// Monthly returns cashed revenue per month for ?year= (all years when omitted).
func (h *RevenueHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	year, ok := yearQuery(w, r)
	if !ok {
		return
	}

	months, err := h.revenueUC.Monthly(r.Context(), year)
	if err != nil {
		writeDomainError(w, r, err, "failed to compute monthly revenue")
		return
	}

	writeJSON(w, http.StatusOK, dto.MonthlyRevenueFromDomain(months))
}

// Stats summarises cashed revenue for ?year=.
func (h *RevenueHandler) Stats(w http.ResponseWriter, r *http.Request) {
	year, ok := yearQuery(w, r)
	if !ok {
		return
	}

	stats, err := h.revenueUC.Stats(r.Context(), year)
	if err != nil {
		writeDomainError(w, r, err, "failed to compute revenue stats")
		return
	}

	writeJSON(w, http.StatusOK, dto.RevenueStatsFromDomain(stats))
}

// Years lists the years with cashed revenue.
func (h *RevenueHandler) Years(w http.ResponseWriter, r *http.Request) {
	years, err := h.revenueUC.Years(r.Context())
	if err != nil {
		writeDomainError(w, r, err, "failed to list revenue years")
		return
	}

	writeJSON(w, http.StatusOK, years)
}

// ByClient ranks counterparties for ?year= and ?limit=.
func (h *RevenueHandler) ByClient(w http.ResponseWriter, r *http.Request) {
	year, ok := yearQuery(w, r)
	if !ok {
		return
	}

	ranking, err := h.revenueUC.ByClient(r.Context(), year, parseIntQuery(r, "limit", 0))
	if err != nil {
		writeDomainError(w, r, err, "failed to rank clients by revenue")
		return
	}

	writeJSON(w, http.StatusOK, dto.ClientRevenueFromDomain(ranking))
}

// yearQuery reads ?year=; empty or "all" selects every year.
func yearQuery(w http.ResponseWriter, r *http.Request) (int, bool) {
	val := r.URL.Query().Get("year")
	if val == "" || val == "all" {
		return 0, true
	}

	year, err := strconv.Atoi(val)
	if err != nil || year < 1900 || year > 9999 {
		writeError(w, http.StatusBadRequest, "invalid year", fmt.Sprintf("%q is not a year", val))
		return 0, false
	}

	return year, true
}
