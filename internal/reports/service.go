package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fdg312/culinary-hub/internal/appstate"
	"github.com/fdg312/culinary-hub/internal/blob"
	"github.com/fdg312/culinary-hub/internal/config"
	"github.com/fdg312/culinary-hub/internal/nutrition"
)

var (
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidDate      = errors.New("invalid date format")
	ErrInvalidDateRange = errors.New("from date must be before to date")
	ErrRangeTooLarge    = errors.New("date range too large")
	ErrNoBlobStore      = errors.New("no blob store configured")
)

const presignTTLSeconds = 3600

// Service builds nutrition history reports from the application state.
type Service struct {
	state        *appstate.State
	generator    *Generator
	blobStore    blob.Store
	maxRangeDays int
	location     *time.Location
	now          func() time.Time
}

func NewService(state *appstate.State, blobStore blob.Store, cfg *config.Config) *Service {
	return &Service{
		state:        state,
		generator:    NewGenerator(),
		blobStore:    blobStore,
		maxRangeDays: cfg.ReportsMaxRangeDays,
		location:     time.Local,
		now:          time.Now,
	}
}

// WithLocation sets the zone that defines calendar days.
func (s *Service) WithLocation(loc *time.Location) *Service {
	s.location = loc
	return s
}

// CreateReport renders the requested range and, when asked, uploads it.
func (s *Service) CreateReport(ctx context.Context, req CreateReportRequest) (*Report, error) {
	if req.Format != FormatPDF && req.Format != FormatCSV {
		return nil, ErrInvalidFormat
	}

	fromDate, err := time.ParseInLocation("2006-01-02", req.From, s.location)
	if err != nil {
		return nil, ErrInvalidDate
	}
	toDate, err := time.ParseInLocation("2006-01-02", req.To, s.location)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if fromDate.After(toDate) {
		return nil, ErrInvalidDateRange
	}

	daysDiff := int(toDate.Sub(fromDate).Hours()/24 + 0.5)
	if s.maxRangeDays > 0 && daysDiff > s.maxRangeDays {
		return nil, fmt.Errorf("%w: %d days, max %d", ErrRangeTooLarge, daysDiff, s.maxRangeDays)
	}

	profile := s.state.Profile()
	targets := nutrition.ResolveTargets(profile)
	report := &Report{
		Format:      req.Format,
		From:        req.From,
		To:          req.To,
		ProfileName: profile.Name,
		Targets:     targets,
		ContentType: contentTypeFor(req.Format),
		CreatedAt:   s.now(),
	}
	for _, day := range s.state.Range(fromDate, toDate) {
		report.Days = append(report.Days, DayRow{
			Date:     day.Date,
			Entries:  day.Entries,
			Progress: nutrition.Evaluate(targets, day.Totals),
		})
	}
	report.Summary = summarize(report.Days)

	data, err := s.generator.Render(report)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}
	report.Data = data
	report.SizeBytes = int64(len(data))

	if !req.Upload {
		return report, nil
	}
	if s.blobStore == nil {
		return nil, ErrNoBlobStore
	}

	objectKey := blob.NewKey(blob.PrefixReports, report.CreatedAt, req.Format)
	if _, err := s.blobStore.PutObject(ctx, objectKey, data, report.ContentType); err != nil {
		return nil, fmt.Errorf("failed to upload report: %w", err)
	}
	report.ObjectKey = objectKey

	url, err := s.blobStore.PresignGet(ctx, objectKey, presignTTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("failed to generate download URL: %w", err)
	}
	report.DownloadURL = url
	return report, nil
}

func summarize(days []DayRow) Summary {
	var s Summary
	for _, d := range days {
		if d.Entries == 0 {
			continue
		}
		t := d.Progress.Totals
		s.LoggedDays++
		s.AvgCalories += t.CaloriesConsumed
		s.AvgProteinG += t.ProteinConsumed
		s.AvgCarbsG += t.CarbsConsumed
		s.AvgFatG += t.FatConsumed
		s.AvgWaterMl += t.WaterConsumedMl
		if d.Progress.Calories.Ratio() > 1 {
			s.DaysOverTarget++
		}
	}
	if s.LoggedDays > 0 {
		n := float64(s.LoggedDays)
		s.AvgCalories /= n
		s.AvgProteinG /= n
		s.AvgCarbsG /= n
		s.AvgFatG /= n
		s.AvgWaterMl /= n
	}
	return s
}
