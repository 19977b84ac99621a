package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fdg312/culinary-hub/internal/app"
	"github.com/fdg312/culinary-hub/internal/auth"
	"github.com/fdg312/culinary-hub/internal/reports"
	"github.com/spf13/cobra"
)

var reportInput struct {
	from   string
	to     string
	format string
	out    string
	upload bool
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export daily intake against targets as CSV or PDF",
	RunE: func(cmd *cobra.Command, args []string) error {
		now := nowFunc()
		req := reports.CreateReportRequest{
			From:   reportInput.from,
			To:     reportInput.to,
			Format: reportInput.format,
			Upload: reportInput.upload,
		}
		if req.To == "" {
			req.To = now.Format("2006-01-02")
		}
		if req.From == "" {
			req.From = now.AddDate(0, 0, -6).Format("2006-01-02")
		}
		if !req.Upload && reportInput.out == "" {
			reportInput.out = fmt.Sprintf("nutrition-%s-%s.%s", req.From, req.To, req.Format)
		}

		return withSession(cmd, func(ctx context.Context, a *app.App, _ *auth.Session) error {
			r, err := a.Reports.CreateReport(ctx, req)
			switch {
			case errors.Is(err, reports.ErrNoBlobStore):
				return errors.New("--upload needs a blob store (BLOB_MODE=local or s3)")
			case err != nil:
				return err
			}

			out := cmd.OutOrStdout()
			s := r.Summary
			fmt.Fprintf(out, "%s to %s: %d logged days, avg %.0f kcal, %d over target\n",
				r.From, r.To, s.LoggedDays, s.AvgCalories, s.DaysOverTarget)

			if reportInput.out != "" {
				if err := os.WriteFile(reportInput.out, r.Data, 0o644); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				fmt.Fprintf(out, "Wrote %s (%d bytes)\n", reportInput.out, r.SizeBytes)
			}
			if r.ObjectKey != "" {
				fmt.Fprintf(out, "Uploaded %s\n", r.ObjectKey)
				if r.DownloadURL != "" {
					fmt.Fprintln(out, r.DownloadURL)
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	f := reportCmd.Flags()
	f.StringVar(&reportInput.from, "from", "", "First day YYYY-MM-DD (default six days before --to)")
	f.StringVar(&reportInput.to, "to", "", "Last day YYYY-MM-DD (default today)")
	f.StringVarP(&reportInput.format, "format", "f", reports.FormatCSV, "csv or pdf")
	f.StringVarP(&reportInput.out, "out", "o", "", "Output file (default nutrition-<from>-<to>.<format>)")
	f.BoolVar(&reportInput.upload, "upload", false, "Store the report in the blob store and print a download link")
}
