package store

import "database/sql"

// Store provides access to all storage repositories.
type Store struct {
	db      *sql.DB
	gateway *GatewayStore
	runs    *TestRunStore
}

func NewStore(db *sql.DB) *Store {
	qi := newQueryInterceptor(db)
	return &Store{
		db:      db,
		gateway: NewGatewayStore(qi),
		runs:    NewTestRunStore(qi),
	}
}

func (s *Store) Gateway() *GatewayStore {
	return s.gateway
}

func (s *Store) TestRuns() *TestRunStore {
	return s.runs
}

func (s *Store) Close() error {
	return s.db.Close()
}
