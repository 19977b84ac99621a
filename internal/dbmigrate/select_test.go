package dbmigrate

import (
	"errors"
	"testing"

	"github.com/fdg312/culinary-hub/internal/config"
)

func TestSelectTarget(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.Config
		wantDialect string
		wantDSN     string
		wantSource  string
		wantWarning bool
	}{
		{
			name:        "sqlite path",
			cfg:         config.Config{StorageMode: config.StorageModeSQLite, SQLitePath: "/tmp/c.db"},
			wantDialect: DialectSQLite,
			wantDSN:     "/tmp/c.db",
			wantSource:  "SQLITE_PATH",
		},
		{
			name: "postgres prefers direct",
			cfg: config.Config{
				StorageMode:       config.StorageModePostgres,
				DatabaseURLDirect: "postgres://direct",
				DatabaseURLRaw:    "postgres://url",
				DatabaseURLPooled: "postgres://pooled",
			},
			wantDialect: DialectPostgres,
			wantDSN:     "postgres://direct",
			wantSource:  "DATABASE_URL_DIRECT",
		},
		{
			name: "postgres falls back to DATABASE_URL",
			cfg: config.Config{
				StorageMode:       config.StorageModePostgres,
				DatabaseURLRaw:    "postgres://url",
				DatabaseURLPooled: "postgres://pooled",
			},
			wantDialect: DialectPostgres,
			wantDSN:     "postgres://url",
			wantSource:  "DATABASE_URL",
		},
		{
			name:        "postgres pooled warns",
			cfg:         config.Config{StorageMode: config.StorageModePostgres, DatabaseURLPooled: "postgres://pooled"},
			wantDialect: DialectPostgres,
			wantDSN:     "postgres://pooled",
			wantSource:  "DATABASE_URL_POOLED",
			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectTarget(&tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Dialect != tt.wantDialect || got.DSN != tt.wantDSN || got.Source != tt.wantSource {
				t.Fatalf("unexpected target %+v", got)
			}
			if (got.Warning != "") != tt.wantWarning {
				t.Fatalf("warning = %q, want warning %v", got.Warning, tt.wantWarning)
			}
		})
	}
}

func TestSelectTarget_Errors(t *testing.T) {
	if _, err := SelectTarget(&config.Config{StorageMode: config.StorageModeMemory}); !errors.Is(err, ErrNoSchema) {
		t.Fatalf("expected ErrNoSchema, got %v", err)
	}
	if _, err := SelectTarget(&config.Config{StorageMode: config.StorageModePostgres}); err == nil {
		t.Fatal("expected error without any database URL")
	}
	if _, err := SelectTarget(&config.Config{StorageMode: config.StorageModeSQLite}); err == nil {
		t.Fatal("expected error for empty sqlite path")
	}
	if _, err := SelectTarget(&config.Config{StorageMode: "mongo"}); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
