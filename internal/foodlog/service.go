package foodlog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fdg312/culinary-hub/internal/ai"
	"github.com/fdg312/culinary-hub/internal/appstate"
	"github.com/fdg312/culinary-hub/internal/blob"
	"github.com/fdg312/culinary-hub/internal/config"
	"github.com/fdg312/culinary-hub/internal/nutrition"
	"github.com/google/uuid"
)

var (
	ErrEmptyInput       = errors.New("nothing to analyze")
	ErrAnalysisFailed   = errors.New("food analysis failed")
	ErrInvalidAmount    = errors.New("amount must be a non-negative number")
	ErrInvalidMealType  = errors.New("unknown meal type")
	ErrWaterViaConfirm  = errors.New("water is logged with AddWater")
	ErrDailyWaterLimit  = errors.New("daily water limit exceeded")
	ErrWaterNotPositive = errors.New("water amount must be positive")
)

const (
	defaultName    = "Unknown Item"
	defaultPortion = "1 serving"
	// photoLinkTTLSeconds bounds presigned links to meal photos.
	photoLinkTTLSeconds = 3600
)

// Draft is an analyzed meal awaiting the user's edits and confirmation.
type Draft struct {
	Name          string
	Portion       string
	Calories      float64
	Macros        nutrition.Macros
	NeedsQuantity bool
	Message       string

	Image     []byte
	ImageMIME string
}

type Service struct {
	provider     ai.Provider
	state        *appstate.State
	blobs        blob.Store
	maxWaterMl   int
	defaultAddMl int
	now          func() time.Time
}

func NewService(provider ai.Provider, state *appstate.State, blobs blob.Store, cfg *config.Config) *Service {
	return &Service{
		provider:     provider,
		state:        state,
		blobs:        blobs,
		maxWaterMl:   cfg.IntakesMaxWaterMlPerDay,
		defaultAddMl: cfg.IntakesWaterDefaultAddMl,
		now:          time.Now,
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// DefaultWaterMl is the amount added by the water shortcut.
func (s *Service) DefaultWaterMl() int { return s.defaultAddMl }

// AnalyzeText estimates nutrition for a free-text description.
func (s *Service) AnalyzeText(ctx context.Context, text string) (Draft, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Draft{}, ErrEmptyInput
	}
	analysis, err := s.provider.AnalyzeFood(ctx, ai.FoodAnalysisRequest{Text: text})
	if err != nil {
		return Draft{}, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	return draftFrom(analysis), nil
}

// AnalyzeImage estimates nutrition from a meal photo. The photo is kept on
// the draft and stored on confirmation.
func (s *Service) AnalyzeImage(ctx context.Context, data []byte, mime string) (Draft, error) {
	if len(data) == 0 {
		return Draft{}, ErrEmptyInput
	}
	if mime == "" {
		mime = blob.DetectContentType(data)
	}
	analysis, err := s.provider.AnalyzeFood(ctx, ai.FoodAnalysisRequest{Image: data, ImageMIME: mime})
	if err != nil {
		return Draft{}, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	d := draftFrom(analysis)
	d.Image = data
	d.ImageMIME = mime
	return d, nil
}

func draftFrom(a ai.FoodAnalysis) Draft {
	return Draft{
		Name:          a.Name,
		Portion:       a.Portion,
		Calories:      a.Calories,
		Macros:        a.Macros,
		NeedsQuantity: a.NeedsQuantity,
		Message:       a.Message,
	}
}

// Confirm turns a draft into a log entry under mealType.
func (s *Service) Confirm(ctx context.Context, d Draft, mealType nutrition.MealType) (nutrition.FoodLogEntry, error) {
	meal, ok := nutrition.ParseMealType(string(mealType))
	if !ok {
		return nutrition.FoodLogEntry{}, fmt.Errorf("%w: %q", ErrInvalidMealType, mealType)
	}
	if meal == nutrition.MealWater {
		return nutrition.FoodLogEntry{}, ErrWaterViaConfirm
	}
	for _, v := range []float64{d.Calories, d.Macros.Protein, d.Macros.Carbs, d.Macros.Fat} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nutrition.FoodLogEntry{}, ErrInvalidAmount
		}
	}

	now := s.now()
	entry := nutrition.FoodLogEntry{
		ID:        uuid.NewString(),
		Timestamp: now.UnixMilli(),
		MealType:  meal,
		Name:      orDefault(d.Name, defaultName),
		Portion:   orDefault(d.Portion, defaultPortion),
		Calories:  d.Calories,
		Macros:    d.Macros,
	}

	if len(d.Image) > 0 && s.blobs != nil {
		mime := d.ImageMIME
		if mime == "" {
			mime = blob.DetectContentType(d.Image)
		}
		key := blob.NewKey(blob.PrefixMeals, now, blob.ExtensionFor(mime))
		if _, err := s.blobs.PutObject(ctx, key, d.Image, mime); err != nil {
			return nutrition.FoodLogEntry{}, fmt.Errorf("store meal photo: %w", err)
		}
		entry.ImageReference = key
	}

	if err := s.state.AddEntry(ctx, entry); err != nil {
		if entry.ImageReference != "" {
			// Best effort: the entry that referenced the photo was never saved.
			_ = s.blobs.DeleteObject(ctx, entry.ImageReference)
		}
		return nutrition.FoodLogEntry{}, err
	}
	return entry, nil
}

// AddWater logs a water intake. Today's water total may not exceed the
// configured daily maximum.
func (s *Service) AddWater(ctx context.Context, amountMl float64) (nutrition.FoodLogEntry, error) {
	if amountMl <= 0 || math.IsNaN(amountMl) || math.IsInf(amountMl, 0) {
		return nutrition.FoodLogEntry{}, ErrWaterNotPositive
	}

	now := s.now()
	current := s.state.Dashboard(now).Totals.WaterConsumedMl
	if s.maxWaterMl > 0 && current+amountMl > float64(s.maxWaterMl) {
		return nutrition.FoodLogEntry{}, fmt.Errorf("%w: %.0f + %.0f > %d ml", ErrDailyWaterLimit, current, amountMl, s.maxWaterMl)
	}

	amount := amountMl
	entry := nutrition.FoodLogEntry{
		ID:            uuid.NewString(),
		Timestamp:     now.UnixMilli(),
		MealType:      nutrition.MealWater,
		Name:          "Water",
		Portion:       strconv.FormatFloat(amountMl, 'f', -1, 64) + "ml",
		WaterAmountMl: &amount,
	}
	if err := s.state.AddEntry(ctx, entry); err != nil {
		return nutrition.FoodLogEntry{}, err
	}
	return entry, nil
}

// PhotoLink returns a URL for an entry's stored photo, or "" when it has
// none.
func (s *Service) PhotoLink(ctx context.Context, e nutrition.FoodLogEntry) (string, error) {
	if e.ImageReference == "" || s.blobs == nil {
		return "", nil
	}
	return s.blobs.PresignGet(ctx, e.ImageReference, photoLinkTTLSeconds)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
