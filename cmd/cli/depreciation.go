package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/compta/internal/adapter/http/dto"
	"github.com/iho/compta/internal/domain"
)

type scheduleFlags struct {
	designation string
	account     string
	acquired    string
	value       string
	residual    string
	years       int
	method      string
	rate        string
	asJSON      bool
}

func depreciationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "depreciation",
		Short: "Depreciation tools",
	}

	var f scheduleFlags
	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Compute a depreciation plan offline",
		Example: "  compta-cli depreciation schedule --value 12000 --years 5 --acquired 2024-04-15\n" +
			"  compta-cli depreciation schedule --value 12000 --years 5 --acquired 2024-01-01 --method declining_balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			asset, err := f.asset()
			if err != nil {
				return err
			}

			schedule, err := domain.DepreciationSchedule(asset, nil)
			if err != nil {
				return err
			}

			if f.asJSON {
				printJSON(dto.ScheduleFromDomain(schedule))
				return nil
			}
			printSchedule(asset, schedule)
			return nil
		},
	}

	scheduleCmd.Flags().StringVar(&f.designation, "designation", "asset", "Asset designation")
	scheduleCmd.Flags().StringVar(&f.account, "account", "2183", "Class 2 asset account")
	scheduleCmd.Flags().StringVar(&f.acquired, "acquired", "", "Acquisition date (YYYY-MM-DD)")
	scheduleCmd.Flags().StringVar(&f.value, "value", "", "Acquisition value")
	scheduleCmd.Flags().StringVar(&f.residual, "residual", "0", "Residual value")
	scheduleCmd.Flags().IntVar(&f.years, "years", 0, "Useful life in years")
	scheduleCmd.Flags().StringVar(&f.method, "method", string(domain.MethodStraightLine), "straight_line or declining_balance")
	scheduleCmd.Flags().StringVar(&f.rate, "rate", "", "Declining rate in percent (defaults to the fiscal coefficient)")
	scheduleCmd.Flags().BoolVar(&f.asJSON, "json", false, "Print JSON")
	_ = scheduleCmd.MarkFlagRequired("acquired")
	_ = scheduleCmd.MarkFlagRequired("value")
	_ = scheduleCmd.MarkFlagRequired("years")

	cmd.AddCommand(scheduleCmd)
	return cmd
}

func (f *scheduleFlags) asset() (*domain.FixedAsset, error) {
	acquired, err := dto.ParseDate(f.acquired)
	if err != nil {
		return nil, err
	}
	value, err := decimal.NewFromString(f.value)
	if err != nil {
		return nil, fmt.Errorf("invalid --value %q: %w", f.value, err)
	}
	residual, err := decimal.NewFromString(f.residual)
	if err != nil {
		return nil, fmt.Errorf("invalid --residual %q: %w", f.residual, err)
	}

	asset := &domain.FixedAsset{
		ID:               "offline",
		Designation:      f.designation,
		AccountCode:      f.account,
		AcquisitionDate:  acquired,
		AcquisitionValue: value,
		ResidualValue:    residual,
		UsefulLifeYears:  f.years,
		Method:           domain.DepreciationMethod(f.method),
		NetBookValue:     value,
		CreatedAt:        time.Now().UTC(),
	}
	if f.rate != "" {
		rate, err := decimal.NewFromString(f.rate)
		if err != nil {
			return nil, fmt.Errorf("invalid --rate %q: %w", f.rate, err)
		}
		asset.DecliningRate = &rate
	}

	if err := asset.Validate(); err != nil {
		return nil, err
	}
	return asset, nil
}

func printSchedule(asset *domain.FixedAsset, schedule []*domain.DepreciationResult) {
	fmt.Printf("%s: %s over %d years (%s), account %s / %s\n",
		asset.Designation, asset.AcquisitionValue.StringFixed(2), asset.UsefulLifeYears, asset.Method,
		asset.AccountCode, asset.DepreciationAccountCode())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Year\tStart NBV\tDotation\tCumul\tEnd NBV\t\t")
	for _, r := range schedule {
		note := ""
		if r.SwitchedToStraightLine {
			note = "linear"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
			r.FiscalYear,
			r.NetBookValueStart.StringFixed(2),
			r.Amount.StringFixed(2),
			r.CumulativeDepreciation.StringFixed(2),
			r.NetBookValue.StringFixed(2),
			note,
		)
	}
	w.Flush()
}
