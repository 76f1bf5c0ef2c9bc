package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DepreciationMethod selects how an asset loses value over its useful life.
type DepreciationMethod string

const (
	MethodStraightLine     DepreciationMethod = "straight_line"
	MethodDecliningBalance DepreciationMethod = "declining_balance"
)

// IsValid reports whether the method is supported.
func (m DepreciationMethod) IsValid() bool {
	return m == MethodStraightLine || m == MethodDecliningBalance
}

// decliningCoefficient is applied to the straight-line rate when no declining
// rate is set on the asset.
var decliningCoefficient = decimal.RequireFromString("2.25")

var hundred = decimal.NewFromInt(100)

// FixedAsset represents a depreciable asset (immobilisation).
type FixedAsset struct {
	ID               string
	Designation      string
	Category         string
	AccountCode      string
	AcquisitionDate  time.Time
	AcquisitionValue decimal.Decimal
	ResidualValue    decimal.Decimal
	UsefulLifeYears  int
	Method           DepreciationMethod
	DecliningRate    *decimal.Decimal
	NetBookValue     decimal.Decimal
	DisposalDate     *time.Time
	DisposalPrice    *decimal.Decimal
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks the asset invariants required by the depreciation engine.
func (a *FixedAsset) Validate() error {
	if strings.TrimSpace(a.Designation) == "" {
		return fmt.Errorf("%w: designation is required", ErrInvalidAsset)
	}
	if a.AcquisitionDate.IsZero() {
		return fmt.Errorf("%w: acquisition date is required", ErrInvalidAsset)
	}
	if !a.AcquisitionValue.IsPositive() {
		return fmt.Errorf("%w: acquisition value must be positive", ErrInvalidAsset)
	}
	if a.ResidualValue.IsNegative() || a.ResidualValue.GreaterThanOrEqual(a.AcquisitionValue) {
		return fmt.Errorf("%w: residual value must be in [0, acquisition value)", ErrInvalidAsset)
	}
	if err := ValidateAmount(a.AcquisitionValue); err != nil {
		return fmt.Errorf("%w: acquisition value: %w", ErrInvalidAsset, err)
	}
	if err := ValidateMoney(a.ResidualValue); err != nil {
		return fmt.Errorf("%w: residual value: %w", ErrInvalidAsset, err)
	}
	if a.UsefulLifeYears < 1 {
		return fmt.Errorf("%w: useful life must be at least one year", ErrInvalidAsset)
	}
	if !a.Method.IsValid() {
		return fmt.Errorf("%w: unknown depreciation method %q", ErrInvalidAsset, a.Method)
	}
	if a.DecliningRate != nil && (!a.DecliningRate.IsPositive() || a.DecliningRate.GreaterThan(hundred)) {
		return fmt.Errorf("%w: declining rate must be in (0, 100]", ErrInvalidAsset)
	}
	if err := ValidateAccountCode(a.AccountCode); err != nil {
		return err
	}
	if a.AccountCode[0] != '2' {
		return fmt.Errorf("%w: asset account must belong to class 2", ErrInvalidAccountCode)
	}

	return nil
}

// IsDisposed reports whether a disposal has been recorded.
func (a *FixedAsset) IsDisposed() bool {
	return a.DisposalDate != nil
}

// DepreciableValue is the total amount that will be expensed over the asset life.
func (a *FixedAsset) DepreciableValue() decimal.Decimal {
	return a.AcquisitionValue.Sub(a.ResidualValue)
}

// EffectiveDecliningRate returns the declining rate in percent, defaulting to
// the straight-line rate multiplied by the declining coefficient.
func (a *FixedAsset) EffectiveDecliningRate() decimal.Decimal {
	if a.DecliningRate != nil {
		return *a.DecliningRate
	}

	return hundred.Div(decimal.NewFromInt(int64(a.UsefulLifeYears))).Mul(decliningCoefficient)
}

// DepreciationAccountCode derives the accumulated depreciation account from the
// asset account (2183 -> 28183).
func (a *FixedAsset) DepreciationAccountCode() string {
	if len(a.AccountCode) < 2 {
		return "28"
	}

	return "28" + a.AccountCode[1:]
}

// YearIndex returns the 1-based position of fiscalYear in the asset life.
func (a *FixedAsset) YearIndex(fiscalYear int) int {
	return fiscalYear - a.AcquisitionDate.Year() + 1
}

// firstYearMonths is the number of months depreciated in the acquisition year;
// the acquisition month counts as a full month.
func (a *FixedAsset) firstYearMonths() int {
	return 13 - int(a.AcquisitionDate.Month())
}

// IsProrated reports whether the first fiscal year covers less than twelve months.
func (a *FixedAsset) IsProrated() bool {
	return a.AcquisitionDate.Month() != time.January
}

// PeriodYears is the number of fiscal years that carry depreciation. A
// pro-rated straight-line plan needs a trailing partial year to amortize fully.
func (a *FixedAsset) PeriodYears() int {
	if a.Method == MethodStraightLine && a.IsProrated() {
		return a.UsefulLifeYears + 1
	}

	return a.UsefulLifeYears
}

// LastFiscalYear is the final fiscal year of the depreciation period.
func (a *FixedAsset) LastFiscalYear() int {
	return a.AcquisitionDate.Year() + a.PeriodYears() - 1
}

// DisposalGain returns price minus the net book value at disposal; negative
// values are losses.
func (a *FixedAsset) DisposalGain() decimal.Decimal {
	if a.DisposalPrice == nil {
		return decimal.Zero
	}

	return a.DisposalPrice.Sub(a.NetBookValue)
}

// DepreciationEntry is a posted yearly depreciation (dotation aux amortissements).
type DepreciationEntry struct {
	ID                     string
	AssetID                string
	FiscalYear             int
	YearIndex              int
	Amount                 decimal.Decimal
	CumulativeDepreciation decimal.Decimal
	NetBookValue           decimal.Decimal
	PostedAt               time.Time
}

// DepreciationResult is the outcome of computing one fiscal year.
type DepreciationResult struct {
	AssetID                string
	FiscalYear             int
	YearIndex              int
	Method                 DepreciationMethod
	NetBookValueStart      decimal.Decimal
	Amount                 decimal.Decimal
	CumulativeDepreciation decimal.Decimal
	NetBookValue           decimal.Decimal
	SwitchedToStraightLine bool
	Final                  bool
	Posted                 bool
}

// ToEntry converts a computed result into an entry ready to be posted.
func (r *DepreciationResult) ToEntry(id string, postedAt time.Time) *DepreciationEntry {
	return &DepreciationEntry{
		ID:                     id,
		AssetID:                r.AssetID,
		FiscalYear:             r.FiscalYear,
		YearIndex:              r.YearIndex,
		Amount:                 r.Amount,
		CumulativeDepreciation: r.CumulativeDepreciation,
		NetBookValue:           r.NetBookValue,
		PostedAt:               postedAt,
	}
}
