//go:build integration

package testutil

import (
	"database/sql"
	"strings"
	"testing"
)

func TestPostgresURL(t *testing.T) {
	url := PostgresURL(t)
	if url == "" {
		t.Fatal("PostgresURL returned an empty URL")
	}
	if !strings.HasPrefix(url, "postgres://") {
		t.Errorf("URL %q does not look like a postgres URL", url)
	}
}

func TestSeedTable(t *testing.T) {
	url := PostgresURL(t)
	table := SeedTable(t, url)

	db, err := sql.Open("postgres", url)
	if err != nil {
		t.Fatalf("failed to open postgres connection: %v", err)
	}
	defer db.Close()

	// The seeded table is countable where the schema check looks.
	var count int
	err = db.QueryRow(`
		SELECT COUNT(*) FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name = $1
	`, table).Scan(&count)
	if err != nil {
		t.Fatalf("failed to count seed table: %v", err)
	}
	if count != 1 {
		t.Errorf("seed table %s not visible in information_schema", table)
	}

	ExecSQL(t, db, "INSERT INTO public."+table+" (id) VALUES ($1)", 42)

	var id int
	if err := db.QueryRow("SELECT id FROM public." + table).Scan(&id); err != nil {
		t.Fatalf("failed to read seeded row: %v", err)
	}
	if id != 42 {
		t.Errorf("got id %d, want 42", id)
	}
}
