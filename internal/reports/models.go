package reports

import (
	"time"

	"github.com/fdg312/culinary-hub/internal/nutrition"
)

const (
	FormatPDF = "pdf"
	FormatCSV = "csv"
)

// CreateReportRequest selects a date range and output format. Dates are
// YYYY-MM-DD and inclusive.
type CreateReportRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Format string `json:"format"`
	// Upload stores the rendered file in the blob store.
	Upload bool `json:"upload"`
}

// DayRow is one report line: a day's totals measured against the targets.
type DayRow struct {
	Date     string             `json:"date"`
	Entries  int                `json:"entries"`
	Progress nutrition.Progress `json:"progress"`
}

// Summary holds averages over the days that have at least one entry.
type Summary struct {
	LoggedDays     int     `json:"logged_days"`
	AvgCalories    float64 `json:"avg_calories"`
	AvgProteinG    float64 `json:"avg_protein_g"`
	AvgCarbsG      float64 `json:"avg_carbs_g"`
	AvgFatG        float64 `json:"avg_fat_g"`
	AvgWaterMl     float64 `json:"avg_water_ml"`
	DaysOverTarget int     `json:"days_over_target"`
}

// Report is a rendered report plus where it was stored, if anywhere.
type Report struct {
	Format      string            `json:"format"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	ProfileName string            `json:"profile_name"`
	Targets     nutrition.Targets `json:"targets"`
	Days        []DayRow          `json:"days"`
	Summary     Summary           `json:"summary"`
	ContentType string            `json:"content_type"`
	SizeBytes   int64             `json:"size_bytes"`
	ObjectKey   string            `json:"object_key,omitempty"`
	DownloadURL string            `json:"download_url,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	Data        []byte            `json:"-"`
}

func contentTypeFor(format string) string {
	if format == FormatCSV {
		return "text/csv"
	}
	return "application/pdf"
}
