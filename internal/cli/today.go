package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fdg312/culinary-hub/internal/app"
	"github.com/fdg312/culinary-hub/internal/auth"
	"github.com/fdg312/culinary-hub/internal/config"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var (
	todayDate  string
	todayWatch bool
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's intake against your targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseDateOrNow(todayDate)
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, a *app.App, _ *auth.Session) error {
			printToday(cmd.OutOrStdout(), a, target)
			if !todayWatch {
				return nil
			}
			return watchToday(ctx, cmd.OutOrStdout(), a, todayDate)
		})
	},
}

func printToday(w io.Writer, a *app.App, ref time.Time) {
	renderDashboard(w, ref.Format("2006-01-02"), a.State.Dashboard(ref))
	entries := a.State.Today(ref)
	if len(entries) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("Nothing logged yet."))
		return
	}
	fmt.Fprintln(w)
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s\n", time.UnixMilli(e.Timestamp).In(ref.Location()).Format("15:04"), formatEntry(e))
	}
}

// watchToday redraws the dashboard whenever another process writes to the
// SQLite database.
func watchToday(ctx context.Context, w io.Writer, a *app.App, date string) error {
	if a.Config.StorageMode != config.StorageModeSQLite {
		return errors.New("--watch needs STORAGE_MODE=sqlite")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dbFile := filepath.Clean(a.Config.SQLitePath)
	if err := watcher.Add(filepath.Dir(dbFile)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(dbFile), err)
	}
	a.Logger.Printf("INFO today: watching %s", dbFile)

	const debounce = 200 * time.Millisecond
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasPrefix(filepath.Clean(event.Name), dbFile) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				timer.Reset(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.Logger.Printf("WARN today: watch error: %v", err)
		case <-timer.C:
			if err := a.State.Reload(ctx); err != nil {
				a.Logger.Printf("WARN today: reload failed: %v", err)
				continue
			}
			ref, _ := parseDateOrNow(date)
			fmt.Fprintln(w)
			printToday(w, a, ref)
		}
	}
}

func parseDateOrNow(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nowFunc(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	// Midday keeps the reference inside the calendar day across DST shifts.
	return t.Add(12 * time.Hour), nil
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
	todayCmd.Flags().BoolVarP(&todayWatch, "watch", "w", false, "Keep running and redraw when the log changes")
}
