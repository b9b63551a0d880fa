package store

import (
	"database/sql"

	_ "github.com/duckdb/duckdb-go/v2"
)

// MemoryDB is the only DSN the agent opens: the gateway draft and the run
// history live for the lifetime of the process.
const MemoryDB = ":memory:"

// NewDB opens a DuckDB database at the given path.
func NewDB(path string) (*sql.DB, error) {
	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	// Each connection to an in-memory DuckDB sees its own database,
	// so the pool is pinned to a single connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}
