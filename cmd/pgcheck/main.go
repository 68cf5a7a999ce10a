// Package main provides the pgcheck CLI, a validation harness for
// PostgreSQL databases. pgcheck verifies that an instance is reachable,
// correctly versioned, permission-capable, and schema-initialized, then
// executes an optional SQL test file whose assertions report results
// through server notices.
//
// Usage:
//
//	pgcheck                          # Built-in checks + SQL test file
//	pgcheck -d postgres://...        # Explicit connection URL
//	pgcheck --sql-file custom.sql    # Alternate SQL test file
//	pgcheck --json                   # Machine-readable report on stdout
//	pgcheck --watch                  # Re-run when watched files change
//
// Connection resolution order: --database-url flag, db_connection.txt,
// pgcheck.yaml, then POSTGRES_* environment variables.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tracklane/pgcheck/internal/cli"
)

// version is set via ldflags during build: -ldflags="-X main.version=v1.0.0"
var version = "dev"

// Root command flags
var (
	databaseURL string
	configFile  string
	sqlFile     string
	reportDir   string
	jsonOutput  bool
	watchMode   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pgcheck",
		Short: "PostgreSQL database validation test runner",
		Long: `pgcheck validates that a PostgreSQL database is reachable, correctly
versioned, permission-capable, and schema-initialized, then executes an
optional SQL test file and reports pass/fail/skip outcomes.

SQL test files report results through server notices: any notice
containing TEST PASSED:, TEST FAILED:, or TEST SKIPPED: becomes one
test outcome, named by the text after the marker. A run exits 0 when
no outcome failed; skipped tests never affect the verdict.`,
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput && watchMode {
				return fmt.Errorf("--json cannot be combined with --watch")
			}
			if jsonOutput {
				cli.SetDefault(cli.NewConfigWithMode(cli.ModeJSON))
			}

			if watchMode {
				return runWatch()
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			success, err := runOnce(cfg)
			if err != nil {
				if handleClientError(err) {
					os.Exit(1)
				}
				return err
			}
			if !success {
				os.Exit(1)
			}
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&databaseURL, "database-url", "d", "", "Database connection URL")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "pgcheck.yaml", "Path to config file")
	rootCmd.Flags().StringVar(&sqlFile, "sql-file", "", "Path to the SQL test file (default test_database_validation.sql)")
	rootCmd.Flags().StringVar(&reportDir, "report-dir", "", "Directory test reports are written into (default the working directory)")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	rootCmd.Flags().BoolVar(&watchMode, "watch", false, "Re-run when the SQL test file or config file changes")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
