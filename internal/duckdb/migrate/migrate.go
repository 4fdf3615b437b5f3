// Package migrate applies the embedded schema to a DuckDB connection.
package migrate

import (
	"cmp"
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var embedded embed.FS

const table = "schema_migrations"

// Runner applies numbered SQL files ("001_name.sql") in version order.
type Runner struct {
	db   *sql.DB
	fsys fs.FS
	dir  string
}

// NewRunner creates a migration runner backed by the embedded schema.
func NewRunner(db *sql.DB) *Runner {
	return &Runner{db: db, fsys: embedded, dir: "migrations"}
}

type step struct {
	version int
	name    string
	body    string
}

func (r *Runner) steps() ([]step, error) {
	entries, err := fs.ReadDir(r.fsys, r.dir)
	if err != nil {
		return nil, fmt.Errorf("listing migrations: %w", err)
	}

	var out []step
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}
		prefix, _, ok := strings.Cut(e.Name(), "_")
		if !ok {
			continue
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("migration %s: bad version prefix: %w", e.Name(), err)
		}
		body, err := fs.ReadFile(r.fsys, path.Join(r.dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("migration %s: %w", e.Name(), err)
		}
		out = append(out, step{version: version, name: e.Name(), body: string(body)})
	}

	slices.SortFunc(out, func(a, b step) int { return cmp.Compare(a.version, b.version) })
	return out, nil
}

func (r *Runner) ensureTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+table+` (
		version    INTEGER PRIMARY KEY,
		name       VARCHAR NOT NULL,
		applied_at TIMESTAMP DEFAULT current_timestamp
	)`)
	if err != nil {
		return fmt.Errorf("creating %s: %w", table, err)
	}
	return nil
}

func (r *Runner) current(ctx context.Context) (int, error) {
	var v sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `SELECT MAX(version) FROM `+table).Scan(&v); err != nil {
		return 0, fmt.Errorf("reading applied version: %w", err)
	}
	return int(v.Int64), nil
}

// Run applies every pending migration, each in its own transaction.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.ensureTable(ctx); err != nil {
		return err
	}
	steps, err := r.steps()
	if err != nil {
		return err
	}
	current, err := r.current(ctx)
	if err != nil {
		return err
	}

	for _, s := range steps {
		if s.version <= current {
			continue
		}
		if err := r.apply(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) apply(ctx context.Context, s step) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s: %w", s.name, err)
	}
	if _, err := tx.ExecContext(ctx, s.body); err != nil {
		tx.Rollback()
		return fmt.Errorf("executing %s: %w", s.name, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO `+table+` (version, name) VALUES (?, ?)`, s.version, s.name); err != nil {
		tx.Rollback()
		return fmt.Errorf("recording %s: %w", s.name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", s.name, err)
	}
	return nil
}

// Status returns the applied version and the number of pending migrations.
func (r *Runner) Status(ctx context.Context) (current int, pending int, err error) {
	if err = r.ensureTable(ctx); err != nil {
		return 0, 0, err
	}
	if current, err = r.current(ctx); err != nil {
		return 0, 0, err
	}
	steps, err := r.steps()
	if err != nil {
		return 0, 0, err
	}
	for _, s := range steps {
		if s.version > current {
			pending++
		}
	}
	return current, pending, nil
}
