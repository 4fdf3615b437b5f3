package duckdb

import (
	"context"
	"fmt"

	"github.com/tinytelemetry/sheepcount/internal/model"
)

// InsertRecords appends records to the records table in a single transaction.
// Either every record is stored or none is.
func (s *Store) InsertRecords(ctx context.Context, records []model.Record) error {
	if len(records) == 0 {
		return nil
	}

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertTx(ctx, records)
}

func (s *Store) insertTx(ctx context.Context, records []model.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records (line, year, region, sheep_count, source_label) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, i+1, r.Year, r.Region, r.Count, r.SourceLabel); err != nil {
			return fmt.Errorf("insert record %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Reset removes every stored record.
func (s *Store) Reset(ctx context.Context) error {
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM records`)
	return err
}
