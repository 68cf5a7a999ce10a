// Package checks implements the built-in diagnostic checks the runner
// issues against a database before any user-supplied SQL tests: basic
// connectivity, schema presence, server version, temp-table permissions,
// and UUID generation.
package checks

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"

	"github.com/tracklane/pgcheck/internal/outcome"
)

// MinMajorVersion is the oldest PostgreSQL major version the version
// check accepts.
const MinMajorVersion = 12

var versionRe = regexp.MustCompile(`PostgreSQL (\d+)`)

// Run executes the built-in checks in a fixed order and returns one
// outcome per check. If connectivity fails there is no point probing
// further; Run returns that single failure and nothing else.
func Run(ctx context.Context, db *sql.DB) outcome.List {
	first := connectivity(ctx, db)
	if first.Status == outcome.StatusFailed {
		return outcome.List{first}
	}
	return outcome.List{
		first,
		schemaPopulated(ctx, db),
		serverVersion(ctx, db),
		tempTablePermissions(ctx, db),
		uuidSupport(ctx, db),
	}
}

func connectivity(ctx context.Context, db *sql.DB) outcome.Outcome {
	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return outcome.Failed("Database connectivity", fmt.Sprintf("Connection failed: %v", err))
	}
	return outcome.Passed("Database connectivity", "Connection successful")
}

// schemaPopulated fails on an empty public schema: a fresh database that
// has not had its schema applied yet is not ready for validation tests.
func schemaPopulated(ctx context.Context, db *sql.DB) outcome.Outcome {
	const query = `
		SELECT COUNT(*) FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
	`

	var count int
	if err := db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return outcome.Failed("Database schema check", fmt.Sprintf("Error checking schema: %v", err))
	}
	if count == 0 {
		return outcome.Failed("Database schema", "No tables found - schema needs to be created")
	}
	return outcome.Passed("Database schema", fmt.Sprintf("Found %d tables", count))
}

// serverVersion checks the server banner against MinMajorVersion. A
// banner the pattern does not recognize passes as-is rather than
// failing: non-mainline servers (forks, proxies) report unusual strings
// and are given the benefit of the doubt.
func serverVersion(ctx context.Context, db *sql.DB) outcome.Outcome {
	var banner string
	if err := db.QueryRowContext(ctx, "SELECT version()").Scan(&banner); err != nil {
		return outcome.Failed("PostgreSQL version", fmt.Sprintf("Error checking version: %v", err))
	}

	major, ok := parseMajor(banner)
	if !ok {
		return outcome.Passed("PostgreSQL version", "Version detected: "+banner)
	}
	if major < MinMajorVersion {
		return outcome.Failed("PostgreSQL version", "Version too old: "+banner)
	}
	return outcome.Passed("PostgreSQL version", "Compatible version: "+banner)
}

func parseMajor(banner string) (int, bool) {
	m := versionRe.FindStringSubmatch(banner)
	if m == nil {
		return 0, false
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return major, true
}

// tempTablePermissions verifies CREATE and DROP rights with a temp
// table. Temp tables are session-scoped, so this relies on the runner
// pinning the pool to a single connection: both statements must land on
// the same session.
func tempTablePermissions(ctx context.Context, db *sql.DB) outcome.Outcome {
	if _, err := db.ExecContext(ctx, "CREATE TEMP TABLE test_permissions (id INTEGER)"); err != nil {
		return outcome.Failed("Database permissions", fmt.Sprintf("Insufficient permissions: %v", err))
	}
	if _, err := db.ExecContext(ctx, "DROP TABLE test_permissions"); err != nil {
		return outcome.Failed("Database permissions", fmt.Sprintf("Insufficient permissions: %v", err))
	}
	return outcome.Passed("Database permissions", "CREATE/DROP permissions verified")
}

// uuidSupport probes gen_random_uuid first (built in since PostgreSQL 13,
// pgcrypto before that) and falls back to enabling uuid-ossp. Statements
// run in autocommit mode, so the failed first probe does not poison the
// session for the fallback.
func uuidSupport(ctx context.Context, db *sql.DB) outcome.Outcome {
	var id string
	if err := db.QueryRowContext(ctx, "SELECT gen_random_uuid()").Scan(&id); err == nil {
		return outcome.Passed("UUID support", "UUID generation available")
	}

	if _, err := db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`); err != nil {
		return outcome.Failed("UUID support", fmt.Sprintf("UUID support unavailable: %v", err))
	}
	if err := db.QueryRowContext(ctx, "SELECT uuid_generate_v4()").Scan(&id); err != nil {
		return outcome.Failed("UUID support", fmt.Sprintf("UUID support unavailable: %v", err))
	}
	return outcome.Passed("UUID support", "UUID extension enabled")
}
