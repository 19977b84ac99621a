package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fdg312/culinary-hub/internal/app"
	"github.com/fdg312/culinary-hub/internal/auth"
	"github.com/fdg312/culinary-hub/internal/nutrition"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyDate  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List logged entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyLimit < 0 {
			return fmt.Errorf("--limit must be >= 0")
		}
		return withSession(cmd, func(ctx context.Context, a *app.App, _ *auth.Session) error {
			entries := a.State.History()
			if historyDate != "" {
				ref, err := parseDateOrNow(historyDate)
				if err != nil {
					return err
				}
				entries = nutrition.EntriesOn(entries, ref)
			}
			if historyLimit > 0 && len(entries) > historyLimit {
				entries = entries[:historyLimit]
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No entries")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %s\n", time.UnixMilli(e.Timestamp).Local().Format("2006-01-02 15:04"), formatEntry(e))
				if link, err := a.FoodLog.PhotoLink(ctx, e); err == nil && link != "" {
					fmt.Fprintf(out, "                  %s\n", mutedStyle.Render(link))
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum entries to show (0 for all)")
	historyCmd.Flags().StringVar(&historyDate, "date", "", "Only show entries from this day (YYYY-MM-DD)")
}
