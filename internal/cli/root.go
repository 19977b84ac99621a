package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fdg312/culinary-hub/internal/app"
	"github.com/fdg312/culinary-hub/internal/auth"
	"github.com/fdg312/culinary-hub/internal/config"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	dbPath  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "culinary",
	Short:         "culinary tracks meals, targets and recipes from your terminal",
	Long:          "culinary is a local-first nutrition and recipe companion: AI-assisted food logging, daily calorie and macro targets, recipe generation with a cooking walkthrough, and a coaching assistant.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for the database and local files (default $CULINARY_DATA_DIR or the user config dir)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")
}

func loadConfig() *config.Config {
	cfg := config.Load()
	if dataDir != "" {
		cfg.DataDir = dataDir
		cfg.SQLitePath = filepath.Join(dataDir, "culinary.db")
		cfg.Blob.LocalDir = filepath.Join(dataDir, "blobs")
	}
	if dbPath != "" {
		cfg.SQLitePath = dbPath
	}
	return cfg
}

func newLogger(cmd *cobra.Command) *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
}

func withApp(cmd *cobra.Command, run func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(ctx, loadConfig(), newLogger(cmd))
	if err != nil {
		return err
	}
	defer a.Close()
	return run(ctx, a)
}

// withSession runs only when someone is signed in.
func withSession(cmd *cobra.Command, run func(ctx context.Context, a *app.App, sess *auth.Session) error) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		sess, err := a.Auth.Current(ctx)
		if errors.Is(err, auth.ErrNotLoggedIn) {
			return errors.New("not logged in: run `culinary login` or `culinary register` first")
		}
		if err != nil {
			return err
		}
		return run(ctx, a, sess)
	})
}
