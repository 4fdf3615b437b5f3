package duckdb

import (
	"context"
	"database/sql"
	"log"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/tinytelemetry/sheepcount/internal/duckdb/migrate"
)

// DefaultQueryTimeout bounds every statement issued by the store.
const DefaultQueryTimeout = 30 * time.Second

// Store manages an in-memory DuckDB database used as an aggregation engine.
// Nothing is written to disk; the data lives for the lifetime of the Store.
type Store struct {
	db           *sql.DB
	mu           sync.RWMutex
	QueryTimeout time.Duration
}

// NewStore opens an in-memory DuckDB database and applies migrations.
// An optional queryTimeout can be passed; it defaults to 30s.
func NewStore(queryTimeout ...time.Duration) (*Store, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, err
	}

	runner := migrate.NewRunner(db)
	if err := runner.Run(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	version, pending, err := runner.Status(context.Background())
	if err != nil {
		db.Close()
		return nil, err
	}
	log.Printf("duckdb: in-memory store ready (schema v%d, %d pending)", version, pending)

	qt := DefaultQueryTimeout
	if len(queryTimeout) > 0 && queryTimeout[0] > 0 {
		qt = queryTimeout[0]
	}

	return &Store{
		db:           db,
		QueryTimeout: qt,
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// queryCtx returns a context bounded by the store's configured query timeout.
func (s *Store) queryCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, s.QueryTimeout)
}
