package app

import (
	"context"
	"fmt"

	"github.com/fdg312/culinary-hub/internal/ai"
	"github.com/fdg312/culinary-hub/internal/appstate"
	"github.com/fdg312/culinary-hub/internal/auth"
	"github.com/fdg312/culinary-hub/internal/blob"
	"github.com/fdg312/culinary-hub/internal/chat"
	"github.com/fdg312/culinary-hub/internal/config"
	"github.com/fdg312/culinary-hub/internal/dbmigrate"
	"github.com/fdg312/culinary-hub/internal/foodlog"
	"github.com/fdg312/culinary-hub/internal/reports"
	"github.com/fdg312/culinary-hub/internal/storage"
	"github.com/fdg312/culinary-hub/internal/storage/memory"
	"github.com/fdg312/culinary-hub/internal/storage/postgres"
	"github.com/fdg312/culinary-hub/internal/storage/sqlite"
)

// App is the wired application: persistence, blob store, AI backend and the
// services built on them.
type App struct {
	Config   *config.Config
	Logger   config.Logger
	Store    storage.Store
	Blobs    blob.Store
	BlobMode string
	AI       ai.Provider
	State    *appstate.State
	Auth     *auth.Service
	FoodLog  *foodlog.Service
	Reports  *reports.Service
}

func New(ctx context.Context, cfg *config.Config, logger config.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.LogSummary(logger)

	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	blobs, blobMode, err := blob.NewBlobStore(ctx, cfg.Blob, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	provider, err := ai.NewProvider(cfg, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	state, err := appstate.Load(ctx, store)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		Store:    store,
		Blobs:    blobs,
		BlobMode: blobMode,
		AI:       provider,
		State:    state,
		Auth:     auth.NewService(cfg, store, state),
		FoodLog:  foodlog.NewService(provider, state, blobs, cfg),
		Reports:  reports.NewService(state, blobs, cfg),
	}, nil
}

// Conversation starts a fresh chat with persona.
func (a *App) Conversation(persona ai.Persona) *chat.Conversation {
	return chat.NewConversation(persona, a.AI, a.State)
}

func (a *App) Close() error {
	if a.Store == nil {
		return nil
	}
	return a.Store.Close()
}

// OpenStore opens the key-value store selected by STORAGE_MODE.
func OpenStore(ctx context.Context, cfg *config.Config, logger config.Logger) (storage.Store, error) {
	switch cfg.StorageMode {
	case config.StorageModeMemory:
		logger.Printf("INFO storage: mode=memory (nothing is persisted)")
		return memory.New(), nil

	case config.StorageModePostgres:
		if cfg.RunMigrationsOnStartup {
			if err := Migrate(ctx, cfg, "up", logger); err != nil {
				return nil, fmt.Errorf("startup migrations failed: %w", err)
			}
		}
		store, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres storage: %w", err)
		}
		logger.Printf("INFO storage: mode=postgres")
		return store, nil

	case config.StorageModeSQLite, "":
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		logger.Printf("INFO storage: mode=sqlite path=%s", cfg.SQLitePath)
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported storage mode: %s", cfg.StorageMode)
	}
}

// Migrate runs a goose command (up, status, down) for the configured
// storage backend.
func Migrate(ctx context.Context, cfg *config.Config, command string, logger config.Logger) error {
	target, err := dbmigrate.SelectTarget(cfg)
	if err != nil {
		return err
	}
	if target.Warning != "" {
		logger.Printf("WARN migrate: %s", target.Warning)
	}
	logger.Printf("INFO migrate: command=%s dialect=%s using=%s", command, target.Dialect, target.Source)

	if target.Dialect == dbmigrate.DialectPostgres {
		return dbmigrate.Run(ctx, command, target.DSN)
	}

	store, err := sqlite.Open(ctx, target.DSN)
	if err != nil {
		return fmt.Errorf("open sqlite storage: %w", err)
	}
	defer store.Close()
	return dbmigrate.Apply(ctx, store.DB(), target.Dialect, command)
}
