package dbmigrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log"
	"sync"

	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

// goose keeps dialect and base FS in package globals.
var gooseMu sync.Mutex

func dirFor(dialect string) (string, error) {
	switch dialect {
	case DialectSQLite:
		return "migrations/sqlite", nil
	case DialectPostgres:
		return "migrations/postgres", nil
	default:
		return "", fmt.Errorf("unsupported migration dialect %q", dialect)
	}
}

// Apply runs a goose command (up, status, down) against an open database
// using the embedded migrations for dialect.
func Apply(ctx context.Context, db *sql.DB, dialect, command string) error {
	dir, err := dirFor(dialect)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(quietLogger{})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, dir); err != nil {
		return fmt.Errorf("goose %s failed: %w", command, err)
	}
	return nil
}

// Run opens the Postgres database at dbURL and applies command.
func Run(ctx context.Context, command string, dbURL string) error {
	if dbURL == "" {
		return fmt.Errorf("database URL is empty")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	return Apply(ctx, db, DialectPostgres, command)
}

// quietLogger drops goose's per-migration chatter; failures surface as
// returned errors.
type quietLogger struct{}

func (quietLogger) Printf(string, ...interface{}) {}

func (quietLogger) Fatalf(format string, v ...interface{}) { log.Fatalf(format, v...) }
