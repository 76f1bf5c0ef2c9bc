package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iho/compta/internal/adapter/http/dto"
	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/usecase"
)

// AssetService defines the behavior needed by AssetHandler.
type AssetService interface {
	CreateAsset(ctx context.Context, input usecase.CreateAssetInput) (*domain.FixedAsset, error)
	GetAsset(ctx context.Context, id string) (*domain.FixedAsset, error)
	ListAssets(ctx context.Context, limit, offset int) ([]*domain.FixedAsset, error)
	ComputeDepreciation(ctx context.Context, assetID string, fiscalYear int) (*domain.DepreciationResult, error)
	PostDepreciation(ctx context.Context, assetID string, fiscalYear int) (*domain.DepreciationEntry, error)
	DepreciationSchedule(ctx context.Context, assetID string) ([]*domain.DepreciationResult, error)
	ListDepreciationEntries(ctx context.Context, assetID string) ([]*domain.DepreciationEntry, error)
	DisposeAsset(ctx context.Context, input usecase.DisposeAssetInput) (*domain.FixedAsset, error)
}

// AssetHandler handles fixed asset and depreciation requests.
type AssetHandler struct {
	assetUC AssetService
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetUC AssetService) *AssetHandler {
	return &AssetHandler{assetUC: assetUC}
}

// Create records a new fixed asset.
func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAssetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	asset, err := h.assetUC.CreateAsset(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, err, "failed to create asset")
		return
	}

	writeJSON(w, http.StatusCreated, dto.AssetFromDomain(asset))
}

// Get retrieves an asset by ID.
func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	asset, err := h.assetUC.GetAsset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "failed to get asset")
		return
	}

	writeJSON(w, http.StatusOK, dto.AssetFromDomain(asset))
}

// List lists assets.
func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	assets, err := h.assetUC.ListAssets(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, r, err, "failed to list assets")
		return
	}

	writeJSON(w, http.StatusOK, dto.AssetsFromDomain(assets))
}

// ComputeDepreciation returns the depreciation of one fiscal year without posting it.
func (h *AssetHandler) ComputeDepreciation(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year <= 0 {
		writeError(w, http.StatusBadRequest, "invalid year", "year query parameter is required")
		return
	}

	result, err := h.assetUC.ComputeDepreciation(r.Context(), chi.URLParam(r, "id"), year)
	if err != nil {
		writeDomainError(w, r, err, "failed to compute depreciation")
		return
	}

	writeJSON(w, http.StatusOK, dto.DepreciationFromDomain(result))
}

// PostDepreciation books the depreciation of one fiscal year.
func (h *AssetHandler) PostDepreciation(w http.ResponseWriter, r *http.Request) {
	var req dto.PostDepreciationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Year <= 0 {
		writeError(w, http.StatusBadRequest, "invalid year", "year is required")
		return
	}

	entry, err := h.assetUC.PostDepreciation(r.Context(), chi.URLParam(r, "id"), req.Year)
	if err != nil {
		writeDomainError(w, r, err, "failed to post depreciation")
		return
	}

	writeJSON(w, http.StatusCreated, dto.DepreciationEntryFromDomain(entry))
}

// Schedule returns the full depreciation plan of an asset.
func (h *AssetHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.assetUC.DepreciationSchedule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "failed to compute depreciation schedule")
		return
	}

	writeJSON(w, http.StatusOK, dto.ScheduleFromDomain(schedule))
}

// Entries lists the posted depreciation entries of an asset.
func (h *AssetHandler) Entries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.assetUC.ListDepreciationEntries(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "failed to list depreciation entries")
		return
	}

	writeJSON(w, http.StatusOK, dto.DepreciationEntriesFromDomain(entries))
}

// Dispose records the sale or scrapping of an asset.
func (h *AssetHandler) Dispose(w http.ResponseWriter, r *http.Request) {
	var req dto.DisposeAssetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	asset, err := h.assetUC.DisposeAsset(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, r, err, "failed to dispose asset")
		return
	}

	writeJSON(w, http.StatusOK, dto.AssetFromDomain(asset))
}
