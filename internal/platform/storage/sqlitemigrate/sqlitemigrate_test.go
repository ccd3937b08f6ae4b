package sqlitemigrate

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "migrate.db")
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB
}

func TestApplyRequiresDB(t *testing.T) {
	t.Parallel()

	if err := Apply(nil, fstest.MapFS{}); err == nil {
		t.Fatal("expected nil db error")
	}
}

func TestApplyRunsMigrationsOnce(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"001_create.sql": &fstest.MapFile{Data: []byte(`
-- +migrate Up
CREATE TABLE things (id TEXT PRIMARY KEY);
-- +migrate Down
DROP TABLE things;
`)},
	}
	sqlDB := openTestDB(t)

	if err := Apply(sqlDB, fsys); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	// Re-applying must be a no-op, not a duplicate table error.
	if err := Apply(sqlDB, fsys); err != nil {
		t.Fatalf("second apply: %v", err)
	}

	if _, err := sqlDB.Exec("INSERT INTO things (id) VALUES ('a')"); err != nil {
		t.Fatalf("insert into migrated table: %v", err)
	}

	var count int
	row := sqlDB.QueryRow("SELECT COUNT(*) FROM schema_migrations")
	if err := row.Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 1 {
		t.Fatalf("recorded migrations = %d, want 1", count)
	}
}

func TestApplySkipsFilesWithoutUpSection(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"001_empty.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\n  \n-- +migrate Down\n")},
	}
	sqlDB := openTestDB(t)

	if err := Apply(sqlDB, fsys); err != nil {
		t.Fatalf("apply empty migration: %v", err)
	}
}

func TestExtractUpMigration(t *testing.T) {
	t.Parallel()

	content := "-- +migrate Up\nCREATE TABLE a (id TEXT);\n-- +migrate Down\nDROP TABLE a;\n"
	up := extractUpMigration(content)
	if up != "\nCREATE TABLE a (id TEXT);\n" {
		t.Fatalf("up section = %q", up)
	}

	// Files without markers run as-is.
	if got := extractUpMigration("SELECT 1;"); got != "SELECT 1;" {
		t.Fatalf("unmarked content = %q", got)
	}
}
