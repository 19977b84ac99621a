package dbmigrate

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func TestApply_SQLiteUpIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "m.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	for i := 0; i < 2; i++ {
		if err := Apply(ctx, db, DialectSQLite, "up"); err != nil {
			t.Fatalf("up #%d: %v", i+1, err)
		}
	}

	if _, err := db.ExecContext(ctx, `INSERT INTO app_blobs (key, value) VALUES ('k', x'00')`); err != nil {
		t.Fatalf("expected app_blobs to exist: %v", err)
	}
}

func TestApply_UnknownDialect(t *testing.T) {
	if err := Apply(context.Background(), nil, "mysql", "up"); err == nil {
		t.Fatal("expected error for unsupported dialect")
	}
}

func TestRun_EmptyURL(t *testing.T) {
	if err := Run(context.Background(), "up", ""); err == nil {
		t.Fatal("expected error for empty URL")
	}
}
