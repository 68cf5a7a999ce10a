// Package testutil provides database helpers for tests: an in-memory
// scripted driver for unit tests, and connection setup for integration
// tests that need a running PostgreSQL (see docker-compose.test.yml).
package testutil

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

// Stub scripts the response for one statement. Statements are matched
// against Query after whitespace normalization, first match wins.
type Stub struct {
	Query string

	// Value is returned as a single-row, single-column result set.
	// Ignored when the statement runs through Exec.
	Value driver.Value

	// Err, when set, fails the statement instead of answering it.
	Err error
}

// OpenFake returns a *sql.DB backed by an in-memory driver that answers
// statements from the given stubs. The pool is pinned to one connection,
// matching how the runner configures a real database handle. A statement
// with no matching stub fails both the statement and the test.
func OpenFake(t *testing.T, stubs ...Stub) *sql.DB {
	t.Helper()

	db := sql.OpenDB(&fakeConnector{t: t, stubs: stubs})
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

type fakeConnector struct {
	t     *testing.T
	stubs []Stub
}

func (c *fakeConnector) Connect(context.Context) (driver.Conn, error) {
	return &fakeConn{t: c.t, stubs: c.stubs}, nil
}

func (c *fakeConnector) Driver() driver.Driver { return fakeDriver{} }

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("testutil: open fake databases with OpenFake")
}

type fakeConn struct {
	t     *testing.T
	stubs []Stub
}

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("testutil: prepared statements not supported")
}

func (c *fakeConn) Close() error              { return nil }
func (c *fakeConn) Begin() (driver.Tx, error) { return nil, errors.New("testutil: transactions not supported") }

func (c *fakeConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	stub, err := c.match(query)
	if err != nil {
		return nil, err
	}
	if stub.Err != nil {
		return nil, stub.Err
	}
	return &scalarRows{value: stub.Value}, nil
}

func (c *fakeConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	stub, err := c.match(query)
	if err != nil {
		return nil, err
	}
	if stub.Err != nil {
		return nil, stub.Err
	}
	return driver.RowsAffected(0), nil
}

func (c *fakeConn) match(query string) (Stub, error) {
	want := normalizeSQL(query)
	for _, stub := range c.stubs {
		if normalizeSQL(stub.Query) == want {
			return stub, nil
		}
	}
	// Errorf, not Fatalf: database/sql may run driver calls off the
	// test goroutine.
	c.t.Errorf("unexpected statement: %s", want)
	return Stub{}, fmt.Errorf("testutil: no stub for statement: %s", want)
}

func normalizeSQL(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

// scalarRows is a one-row, one-column result set.
type scalarRows struct {
	value driver.Value
	done  bool
}

func (r *scalarRows) Columns() []string { return []string{"value"} }
func (r *scalarRows) Close() error      { return nil }

func (r *scalarRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	dest[0] = r.value
	r.done = true
	return nil
}
