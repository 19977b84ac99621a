package dbmigrate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fdg312/culinary-hub/internal/config"
)

var ErrNoSchema = errors.New("storage mode has no schema to migrate")

// Target is where a migration command runs.
type Target struct {
	Dialect string
	// DSN is a Postgres URL or a SQLite file path.
	DSN string
	// Source names the setting DSN came from, for logs.
	Source  string
	Warning string
}

// SelectTarget picks the migration target for cfg.StorageMode. Postgres
// prefers DATABASE_URL_DIRECT, then DATABASE_URL, and only falls back to
// the pooled URL with a warning.
func SelectTarget(cfg *config.Config) (Target, error) {
	switch cfg.StorageMode {
	case config.StorageModeSQLite, "":
		path := strings.TrimSpace(cfg.SQLitePath)
		if path == "" {
			return Target{}, errors.New("SQLITE_PATH is empty")
		}
		return Target{Dialect: DialectSQLite, DSN: path, Source: "SQLITE_PATH"}, nil

	case config.StorageModePostgres:
		switch {
		case cfg.DatabaseURLDirect != "":
			return Target{Dialect: DialectPostgres, DSN: cfg.DatabaseURLDirect, Source: "DATABASE_URL_DIRECT"}, nil
		case cfg.DatabaseURLRaw != "":
			return Target{Dialect: DialectPostgres, DSN: cfg.DatabaseURLRaw, Source: "DATABASE_URL"}, nil
		case cfg.DatabaseURLPooled != "":
			return Target{
				Dialect: DialectPostgres,
				DSN:     cfg.DatabaseURLPooled,
				Source:  "DATABASE_URL_POOLED",
				Warning: "running DDL through the pooled URL; set DATABASE_URL_DIRECT",
			}, nil
		}
		return Target{}, errors.New("no database URL configured (set DATABASE_URL_DIRECT or DATABASE_URL)")

	case config.StorageModeMemory:
		return Target{}, fmt.Errorf("STORAGE_MODE=memory: %w", ErrNoSchema)

	default:
		return Target{}, fmt.Errorf("unsupported storage mode: %s", cfg.StorageMode)
	}
}
