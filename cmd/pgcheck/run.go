package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/lib/pq"

	"github.com/tracklane/pgcheck/internal/cli"
	"github.com/tracklane/pgcheck/pkg/pgcheck"
)

// runOnce performs one complete validation run: connect, built-in
// checks, SQL test file, report rendering and persistence. It reports
// whether the run passed overall; the error covers failures before any
// outcome exists (connection) and report persistence failures.
func runOnce(cfg *Config) (bool, error) {
	if cli.Default().IsJSON() {
		return runJSON(cfg)
	}

	if cfg.Source != "" {
		fmt.Printf("Using connection string from %s\n", cfg.Source)
	}

	client, err := newClient(cfg)
	if err != nil {
		return false, err
	}
	defer func() {
		if client.Close() == nil {
			fmt.Println(cli.OK("Database connection closed"))
		}
	}()
	fmt.Println(cli.OK("Database connection established"))

	ctx := context.Background()

	fmt.Println("Running built-in database checks...")
	outcomes := client.RunChecks(ctx)

	if _, err := os.Stat(cfg.SQLFile); err == nil {
		fmt.Printf("Running SQL test file: %s\n", cfg.SQLFile)
		spinner := NewOptionalSpinner("Executing SQL test file...", cli.Default().IsTTY())
		defer spinner.Stop()
		script := client.RunSQLFile(ctx)
		if script.Raised != nil {
			spinner.StopWithError("SQL test file aborted")
			printScriptDiagnostic(cfg.SQLFile, script.Raised)
		} else {
			spinner.StopWithSuccess("SQL test file executed")
		}
		outcomes = append(outcomes, script.Outcomes...)
	} else {
		fmt.Println(cli.Warn("SQL test file not found, running built-in checks only"))
	}

	result := pgcheck.NewRunResult(outcomes)

	fmt.Println()
	fmt.Println(result.Report())

	path, err := result.WriteReport(cfg.ReportDir)
	if err != nil {
		return result.Success(), err
	}
	fmt.Printf("\nTest report saved to: %s\n", path)

	return result.Success(), nil
}

// runJSON performs one run with console chatter suppressed, emitting
// the JSON report document on stdout. The report file is still written.
func runJSON(cfg *Config) (bool, error) {
	client, err := newClient(cfg)
	if err != nil {
		return false, err
	}
	defer client.Close()

	ctx := context.Background()
	outcomes := client.RunChecks(ctx)
	script := client.RunSQLFile(ctx)
	outcomes = append(outcomes, script.Outcomes...)

	result := pgcheck.NewRunResult(outcomes)

	data, err := result.ReportJSON()
	if err != nil {
		return result.Success(), err
	}
	fmt.Println(string(data))

	if _, err := result.WriteReport(cfg.ReportDir); err != nil {
		return result.Success(), err
	}
	return result.Success(), nil
}

// printScriptDiagnostic renders a compiler-style diagnostic on stderr
// for a script that aborted with a server error. The failure is already
// folded into the report; this recovers the position, detail, and hint
// the flattened outcome message loses. Errors without any of those
// render nothing.
func printScriptDiagnostic(path string, raised error) {
	var pqErr *pq.Error
	if !errors.As(raised, &pqErr) {
		return
	}

	pos, _ := strconv.Atoi(pqErr.Position)
	if pos <= 0 && pqErr.Detail == "" && pqErr.Hint == "" {
		return
	}

	d := &cli.Diagnostic{
		Message: pqErr.Message,
		File:    path,
	}
	if pqErr.Detail != "" {
		d.Notes = append(d.Notes, pqErr.Detail)
	}
	if pqErr.Hint != "" {
		d.Helps = append(d.Helps, pqErr.Hint)
	}

	if pos > 0 {
		if script, err := os.ReadFile(path); err == nil {
			d.Line, d.Column = locatePosition(string(script), pos)
			if source, ok := cli.SourceLine(path, d.Line); ok {
				d.Source = source
			}
		}
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprint(os.Stderr, d.Render())
}

// locatePosition maps a 1-based character offset, as reported in a
// server error's Position field, to a 1-based line and column.
func locatePosition(content string, pos int) (line, col int) {
	line, col = 1, 1
	n := 1
	for _, r := range content {
		if n >= pos {
			break
		}
		n++
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
