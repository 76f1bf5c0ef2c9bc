package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/compta/internal/adapter/http/dto"
	"github.com/iho/compta/internal/infrastructure/config"
	"github.com/iho/compta/internal/infrastructure/logger"
	"github.com/iho/compta/internal/infrastructure/postgres"
)

var (
	baseURL string
	token   string
	timeout time.Duration
)

// bcryptGenerate is swapped in tests.
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "compta-cli",
		Short:         "Compta CLI tool",
		Long:          `A command line interface for the Compta accounting back office.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Compta API")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("COMPTA_TOKEN"), "Bearer token (defaults to $COMPTA_TOKEN)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(migrateCmd(), depreciationCmd(), bankCmd(), ledgerCmd(), hashPasswordCmd())

	return rootCmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema migrations (DATABASE_URL, MIGRATIONS_PATH)",
	}

	run := func(fn func(ctx context.Context, cfg *config.Config) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console", Output: os.Stderr})
			return fn(logger.WithContext(cmd.Context(), log), cfg)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: run(func(ctx context.Context, cfg *config.Config) error {
				return postgres.RunMigrations(ctx, cfg.DatabaseURL, cfg.MigrationsPath)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration",
			RunE: run(func(ctx context.Context, cfg *config.Config) error {
				return postgres.RunMigrationsDown(ctx, cfg.DatabaseURL, cfg.MigrationsPath)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			RunE: run(func(_ context.Context, cfg *config.Config) error {
				state, err := postgres.CurrentMigration(cfg.DatabaseURL, cfg.MigrationsPath)
				if err != nil {
					return err
				}
				fmt.Printf("version: %d dirty: %v\n", state.Version, state.Dirty)
				return nil
			}),
		},
	)

	return cmd
}

func bankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Bank operations",
	}

	var asJSON bool
	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify every stored bank balance against its transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			var report dto.ReconciliationReportResponse
			if err := getJSON(cmd.Context(), "/api/v1/bank/verify", &report); err != nil {
				return err
			}
			if asJSON {
				printJSON(report)
			} else {
				printReconciliation(&report)
			}
			if len(report.Discrepancies) > 0 {
				return fmt.Errorf("%d account(s) out of balance", len(report.Discrepancies))
			}
			return nil
		},
	}
	verifyCmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw JSON report")

	cmd.AddCommand(verifyCmd)
	return cmd
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result dto.ConsistencyResponse
			if err := getJSON(cmd.Context(), "/api/v1/ledger/consistency", &result); err != nil {
				return err
			}
			printConsistency(&result)
			if !result.Balanced {
				return fmt.Errorf("ledger is not balanced")
			}
			return nil
		},
	}

	cmd.AddCommand(consistencyCmd)
	return cmd
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func getJSON(ctx context.Context, path string, dst any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+path, nil)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr dto.ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s (status %d): %s", apiErr.Error, resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func printReconciliation(r *dto.ReconciliationReportResponse) {
	fmt.Printf("Accounts checked: %d, reconciled: %d\n", r.TotalAccounts, r.ReconciledAccounts)
	for _, d := range r.Discrepancies {
		fmt.Printf("  %-26s stored %12s expected %12s diff %s\n",
			truncate(d.AccountID, 26), d.StoredBalance.StringFixed(2), d.ExpectedBalance.StringFixed(2), d.Difference.StringFixed(2))
	}
	if r.Ledger != nil {
		printConsistency(r.Ledger)
	}
}

func printConsistency(c *dto.ConsistencyResponse) {
	status := "PASSED"
	if !c.Balanced {
		status = "FAILED"
	}
	fmt.Printf("Ledger consistency %s: debit %s credit %s\n", status, c.TotalDebit.StringFixed(2), c.TotalCredit.StringFixed(2))
	for _, p := range c.Imbalances {
		fmt.Printf("  piece %-20s %s diff %s\n", truncate(p.PieceNumber, 20), p.Journal, p.Difference.StringFixed(2))
	}
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode output: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
