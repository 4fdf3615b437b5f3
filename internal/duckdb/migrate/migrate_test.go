package migrate

import (
	"context"
	"database/sql"
	"testing"
	"testing/fstest"

	_ "github.com/duckdb/duckdb-go/v2"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunCreatesRecordsTable(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := NewRunner(db).Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, name := range []string{"records", "schema_migrations"} {
		var got string
		err := db.QueryRowContext(ctx, "SELECT table_name FROM information_schema.tables WHERE table_name = ?", name).Scan(&got)
		if err != nil {
			t.Errorf("table %s not found: %v", name, err)
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	r := NewRunner(db)

	if err := r.Run(ctx); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if err := r.Run(ctx); err != nil {
		t.Fatalf("second Run: %v", err)
	}

	cur, pending, err := r.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if cur != 1 || pending != 0 {
		t.Errorf("expected version=1 pending=0, got version=%d pending=%d", cur, pending)
	}
}

func TestStatusBeforeAndAfterRun(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	r := NewRunner(db)

	cur, pending, err := r.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if cur != 0 || pending != 1 {
		t.Errorf("before run: expected version=0 pending=1, got version=%d pending=%d", cur, pending)
	}

	if err := r.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	cur, pending, err = r.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if cur != 1 || pending != 0 {
		t.Errorf("after run: expected version=1 pending=0, got version=%d pending=%d", cur, pending)
	}
}

func TestStepsSortedByNumericVersion(t *testing.T) {
	r := &Runner{
		fsys: fstest.MapFS{
			"m/9223372036854775807_last.sql": {Data: []byte("SELECT 3")},
			"m/10_third.sql":                 {Data: []byte("SELECT 2")},
			"m/2_second.sql":                 {Data: []byte("SELECT 1")},
			"m/001_first.sql":                {Data: []byte("SELECT 0")},
			"m/notes.txt":                    {Data: []byte("ignored")},
		},
		dir: "m",
	}

	steps, err := r.steps()
	if err != nil {
		t.Fatalf("steps: %v", err)
	}

	want := []string{"001_first.sql", "2_second.sql", "10_third.sql", "9223372036854775807_last.sql"}
	if len(steps) != len(want) {
		t.Fatalf("got %d steps, want %d", len(steps), len(want))
	}
	for i, name := range want {
		if steps[i].name != name {
			t.Errorf("steps[%d] = %s, want %s", i, steps[i].name, name)
		}
	}
}
