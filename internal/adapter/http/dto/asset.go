package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/usecase"
)

// CreateAssetRequest represents a request to record a fixed asset.
type CreateAssetRequest struct {
	Designation      string           `json:"designation"`
	Category         string           `json:"category"`
	AccountCode      string           `json:"account_code"`
	AcquisitionDate  Date             `json:"acquisition_date"`
	AcquisitionValue decimal.Decimal  `json:"acquisition_value"`
	ResidualValue    decimal.Decimal  `json:"residual_value"`
	UsefulLifeYears  int              `json:"useful_life_years"`
	Method           string           `json:"method"`
	DecliningRate    *decimal.Decimal `json:"declining_rate,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAssetRequest) ToUseCaseInput() usecase.CreateAssetInput {
	return usecase.CreateAssetInput{
		Designation:      r.Designation,
		Category:         r.Category,
		AccountCode:      r.AccountCode,
		AcquisitionDate:  r.AcquisitionDate.Time,
		AcquisitionValue: r.AcquisitionValue,
		ResidualValue:    r.ResidualValue,
		UsefulLifeYears:  r.UsefulLifeYears,
		Method:           domain.DepreciationMethod(r.Method),
		DecliningRate:    r.DecliningRate,
	}
}

// PostDepreciationRequest selects the fiscal year to post.
type PostDepreciationRequest struct {
	Year int `json:"year"`
}

// DisposeAssetRequest represents a request to record an asset disposal.
type DisposeAssetRequest struct {
	Date  Date            `json:"date"`
	Price decimal.Decimal `json:"price"`
}

// ToUseCaseInput converts to use case input.
func (r *DisposeAssetRequest) ToUseCaseInput(assetID string) usecase.DisposeAssetInput {
	return usecase.DisposeAssetInput{
		AssetID: assetID,
		Date:    r.Date.Time,
		Price:   r.Price,
	}
}

// AssetResponse represents a fixed asset in API responses.
type AssetResponse struct {
	ID               string           `json:"id"`
	Designation      string           `json:"designation"`
	Category         string           `json:"category"`
	AccountCode      string           `json:"account_code"`
	AcquisitionDate  Date             `json:"acquisition_date"`
	AcquisitionValue decimal.Decimal  `json:"acquisition_value"`
	ResidualValue    decimal.Decimal  `json:"residual_value"`
	UsefulLifeYears  int              `json:"useful_life_years"`
	Method           string           `json:"method"`
	DecliningRate    *decimal.Decimal `json:"declining_rate,omitempty"`
	NetBookValue     decimal.Decimal  `json:"net_book_value"`
	DisposalDate     *Date            `json:"disposal_date,omitempty"`
	DisposalPrice    *decimal.Decimal `json:"disposal_price,omitempty"`
	DisposalGain     *decimal.Decimal `json:"disposal_gain,omitempty"`
	Version          int64            `json:"version"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// AssetFromDomain converts a domain asset to a response.
func AssetFromDomain(a *domain.FixedAsset) *AssetResponse {
	resp := &AssetResponse{
		ID:               a.ID,
		Designation:      a.Designation,
		Category:         a.Category,
		AccountCode:      a.AccountCode,
		AcquisitionDate:  NewDate(a.AcquisitionDate),
		AcquisitionValue: a.AcquisitionValue,
		ResidualValue:    a.ResidualValue,
		UsefulLifeYears:  a.UsefulLifeYears,
		Method:           string(a.Method),
		DecliningRate:    a.DecliningRate,
		NetBookValue:     a.NetBookValue,
		DisposalDate:     fromTimePtr(a.DisposalDate),
		DisposalPrice:    a.DisposalPrice,
		Version:          a.Version,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
	if a.IsDisposed() {
		gain := a.DisposalGain()
		resp.DisposalGain = &gain
	}

	return resp
}

// AssetsFromDomain converts domain assets to responses.
func AssetsFromDomain(assets []*domain.FixedAsset) []*AssetResponse {
	result := make([]*AssetResponse, len(assets))
	for i, a := range assets {
		result[i] = AssetFromDomain(a)
	}
	return result
}

// DepreciationResponse represents a computed yearly depreciation.
type DepreciationResponse struct {
	AssetID                string          `json:"asset_id"`
	FiscalYear             int             `json:"fiscal_year"`
	YearIndex              int             `json:"year_index"`
	Method                 string          `json:"method"`
	NetBookValueStart      decimal.Decimal `json:"net_book_value_start"`
	Amount                 decimal.Decimal `json:"amount"`
	CumulativeDepreciation decimal.Decimal `json:"cumulative_depreciation"`
	NetBookValue           decimal.Decimal `json:"net_book_value"`
	SwitchedToStraightLine bool            `json:"switched_to_straight_line"`
	Final                  bool            `json:"final"`
	Posted                 bool            `json:"posted"`
}

// DepreciationFromDomain converts a computed depreciation to a response.
func DepreciationFromDomain(r *domain.DepreciationResult) *DepreciationResponse {
	return &DepreciationResponse{
		AssetID:                r.AssetID,
		FiscalYear:             r.FiscalYear,
		YearIndex:              r.YearIndex,
		Method:                 string(r.Method),
		NetBookValueStart:      r.NetBookValueStart,
		Amount:                 r.Amount,
		CumulativeDepreciation: r.CumulativeDepreciation,
		NetBookValue:           r.NetBookValue,
		SwitchedToStraightLine: r.SwitchedToStraightLine,
		Final:                  r.Final,
		Posted:                 r.Posted,
	}
}

// ScheduleFromDomain converts a full depreciation plan.
func ScheduleFromDomain(results []*domain.DepreciationResult) []*DepreciationResponse {
	out := make([]*DepreciationResponse, len(results))
	for i, r := range results {
		out[i] = DepreciationFromDomain(r)
	}
	return out
}

// DepreciationEntryResponse represents a posted depreciation.
type DepreciationEntryResponse struct {
	ID                     string          `json:"id"`
	AssetID                string          `json:"asset_id"`
	FiscalYear             int             `json:"fiscal_year"`
	YearIndex              int             `json:"year_index"`
	Amount                 decimal.Decimal `json:"amount"`
	CumulativeDepreciation decimal.Decimal `json:"cumulative_depreciation"`
	NetBookValue           decimal.Decimal `json:"net_book_value"`
	PostedAt               time.Time       `json:"posted_at"`
}

// DepreciationEntryFromDomain converts a posted depreciation to a response.
func DepreciationEntryFromDomain(e *domain.DepreciationEntry) *DepreciationEntryResponse {
	return &DepreciationEntryResponse{
		ID:                     e.ID,
		AssetID:                e.AssetID,
		FiscalYear:             e.FiscalYear,
		YearIndex:              e.YearIndex,
		Amount:                 e.Amount,
		CumulativeDepreciation: e.CumulativeDepreciation,
		NetBookValue:           e.NetBookValue,
		PostedAt:               e.PostedAt,
	}
}

// DepreciationEntriesFromDomain converts posted depreciations.
func DepreciationEntriesFromDomain(entries []*domain.DepreciationEntry) []*DepreciationEntryResponse {
	out := make([]*DepreciationEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = DepreciationEntryFromDomain(e)
	}
	return out
}
