package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

const moneyPlaces = 2

var twelve = decimal.NewFromInt(12)

// ComputeDepreciation computes the depreciation of asset for fiscalYear given the
// entries already posted for it. It does not mutate its inputs.
func ComputeDepreciation(asset *FixedAsset, fiscalYear int, posted []*DepreciationEntry) (*DepreciationResult, error) {
	if asset.UsefulLifeYears < 1 || !asset.AcquisitionValue.IsPositive() {
		return nil, ErrInvalidAsset
	}

	idx := asset.YearIndex(fiscalYear)
	if idx < 1 || idx > asset.PeriodYears() {
		return nil, ErrOutOfPeriod
	}

	if asset.IsDisposed() && fiscalYear > asset.DisposalDate.Year() {
		return nil, ErrAssetDisposed
	}

	prior := decimal.Zero
	for _, e := range posted {
		if e.FiscalYear < fiscalYear {
			prior = prior.Add(e.Amount)
		}
	}

	nbvStart := asset.AcquisitionValue.Sub(prior)
	remaining := nbvStart.Sub(asset.ResidualValue)

	result := &DepreciationResult{
		AssetID:           asset.ID,
		FiscalYear:        fiscalYear,
		YearIndex:         idx,
		Method:            asset.Method,
		NetBookValueStart: nbvStart,
		Final:             idx == asset.PeriodYears(),
	}

	amount := decimal.Zero
	if remaining.IsPositive() {
		switch asset.Method {
		case MethodStraightLine:
			amount = straightLineAmount(asset, idx)
		case MethodDecliningBalance:
			amount, result.SwitchedToStraightLine = decliningAmount(asset, idx, nbvStart, remaining)
		}

		if result.Final {
			amount = remaining
		}

		if asset.IsDisposed() && fiscalYear == asset.DisposalDate.Year() {
			amount = disposalYearAmount(asset, idx, amount)
			result.Final = true
		}

		amount = amount.Round(moneyPlaces)
		if amount.GreaterThan(remaining) {
			amount = remaining
		}
		if amount.IsNegative() {
			amount = decimal.Zero
		}
	}

	result.Amount = amount
	result.CumulativeDepreciation = prior.Add(amount)
	result.NetBookValue = decimal.Max(asset.ResidualValue, nbvStart.Sub(amount))

	return result, nil
}

// straightLineAmount returns the linear annuity, pro-rated in the first year.
func straightLineAmount(asset *FixedAsset, idx int) decimal.Decimal {
	base := asset.DepreciableValue().Div(decimal.NewFromInt(int64(asset.UsefulLifeYears)))
	if idx == 1 {
		return prorate(base, asset.firstYearMonths())
	}

	return base
}

// decliningAmount applies the declining rate to the opening net book value and
// switches to the straight-line amount over the remaining years once that is larger.
// Only the declining side is pro-rated in the first year.
func decliningAmount(asset *FixedAsset, idx int, nbvStart, remaining decimal.Decimal) (decimal.Decimal, bool) {
	declining := nbvStart.Mul(asset.EffectiveDecliningRate()).Div(hundred)
	if idx == 1 {
		declining = prorate(declining, asset.firstYearMonths())
	}

	yearsLeft := asset.UsefulLifeYears - idx + 1
	linear := remaining.Div(decimal.NewFromInt(int64(yearsLeft)))

	if linear.GreaterThan(declining) {
		return linear, true
	}

	return declining, false
}

// disposalYearAmount restricts the year's amount to the months the asset was
// held before its disposal; the disposal month counts as held.
func disposalYearAmount(asset *FixedAsset, idx int, amount decimal.Decimal) decimal.Decimal {
	disposalMonth := int(asset.DisposalDate.Month())

	coverage, held := 12, disposalMonth
	switch {
	case idx == 1:
		coverage = asset.firstYearMonths()
		held = disposalMonth - int(asset.AcquisitionDate.Month()) + 1
	case idx > asset.UsefulLifeYears:
		coverage = int(asset.AcquisitionDate.Month()) - 1
	}

	if held >= coverage {
		return amount
	}
	if held <= 0 {
		return decimal.Zero
	}

	return amount.Mul(decimal.NewFromInt(int64(held))).Div(decimal.NewFromInt(int64(coverage)))
}

func prorate(amount decimal.Decimal, months int) decimal.Decimal {
	if months >= 12 {
		return amount
	}

	return amount.Mul(decimal.NewFromInt(int64(months))).Div(twelve)
}

// DepreciationSchedule returns the full plan for asset: posted years as recorded,
// remaining years projected as if each were posted in turn.
func DepreciationSchedule(asset *FixedAsset, posted []*DepreciationEntry) ([]*DepreciationResult, error) {
	history := make([]*DepreciationEntry, len(posted))
	copy(history, posted)
	sort.Slice(history, func(i, j int) bool { return history[i].FiscalYear < history[j].FiscalYear })

	byYear := make(map[int]*DepreciationEntry, len(history))
	for _, e := range history {
		byYear[e.FiscalYear] = e
	}

	first := asset.AcquisitionDate.Year()
	last := asset.LastFiscalYear()
	if asset.IsDisposed() && asset.DisposalDate.Year() < last {
		last = asset.DisposalDate.Year()
	}

	schedule := make([]*DepreciationResult, 0, last-first+1)
	for year := first; year <= last; year++ {
		if e, ok := byYear[year]; ok {
			schedule = append(schedule, &DepreciationResult{
				AssetID:                asset.ID,
				FiscalYear:             e.FiscalYear,
				YearIndex:              e.YearIndex,
				Method:                 asset.Method,
				NetBookValueStart:      e.NetBookValue.Add(e.Amount),
				Amount:                 e.Amount,
				CumulativeDepreciation: e.CumulativeDepreciation,
				NetBookValue:           e.NetBookValue,
				Final:                  year == last,
				Posted:                 true,
			})
			continue
		}

		result, err := ComputeDepreciation(asset, year, history)
		if err != nil {
			return nil, err
		}
		schedule = append(schedule, result)
		history = append(history, result.ToEntry("", asset.AcquisitionDate))
	}

	return schedule, nil
}

// ProjectedDisposalGain returns the disposal price minus the net book value the
// asset carries once every year up to its disposal year is posted. A non
// disposed asset has no gain.
func ProjectedDisposalGain(asset *FixedAsset, posted []*DepreciationEntry) (decimal.Decimal, error) {
	if !asset.IsDisposed() || asset.DisposalPrice == nil {
		return decimal.Zero, nil
	}

	schedule, err := DepreciationSchedule(asset, posted)
	if err != nil {
		return decimal.Zero, err
	}

	nbv := asset.AcquisitionValue
	if len(schedule) > 0 {
		nbv = schedule[len(schedule)-1].NetBookValue
	}

	return asset.DisposalPrice.Sub(nbv), nil
}

// NextFiscalYear returns the fiscal year that must be posted next for asset.
func NextFiscalYear(asset *FixedAsset, posted []*DepreciationEntry) int {
	next := asset.AcquisitionDate.Year()
	for _, e := range posted {
		if e.FiscalYear >= next {
			next = e.FiscalYear + 1
		}
	}

	return next
}
