package ai

import (
	"context"
	"errors"
	"time"

	"github.com/fdg312/culinary-hub/internal/nutrition"
	"github.com/fdg312/culinary-hub/internal/recipes"
)

var (
	// ErrUnsupported is returned by providers that lack a capability.
	ErrUnsupported = errors.New("ai: operation not supported by provider")
	// ErrInvalidResponse means the model answered with something unusable.
	ErrInvalidResponse = errors.New("ai: invalid model response")
)

// Provider is the generative backend used by every feature.
type Provider interface {
	AnalyzeFood(ctx context.Context, req FoodAnalysisRequest) (FoodAnalysis, error)
	GenerateRecipe(ctx context.Context, query string) (recipes.Recipe, error)
	GenerateImage(ctx context.Context, prompt string) (Image, error)
	Reply(ctx context.Context, req ReplyRequest) (ReplyResponse, error)
	Speak(ctx context.Context, text string) (Audio, error)
}

// FoodAnalysisRequest carries either a description or a photo.
type FoodAnalysisRequest struct {
	Text      string
	Image     []byte
	ImageMIME string
}

func (r FoodAnalysisRequest) IsImage() bool { return len(r.Image) > 0 }

// FoodAnalysis is the model's nutrition estimate.
type FoodAnalysis struct {
	Name          string           `json:"name"`
	Portion       string           `json:"portion"`
	Calories      float64          `json:"calories"`
	Macros        nutrition.Macros `json:"macros"`
	NeedsQuantity bool             `json:"needsQuantity"`
	Message       string           `json:"message"`
}

type Image struct {
	Data     []byte
	MIMEType string
}

type Audio struct {
	Data     []byte
	MIMEType string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Persona selects the system prompt for Reply.
type Persona string

const (
	PersonaCoach    Persona = "coach"
	PersonaCulinary Persona = "culinary"
)

// DaySnapshot is today's progress as shown to the coach.
type DaySnapshot struct {
	Date    string
	Targets nutrition.Targets
	Totals  nutrition.DailyTotals
}

type ReplyRequest struct {
	Persona  Persona
	Messages []ChatMessage
	Profile  nutrition.Profile
	Snapshot *DaySnapshot
}

type ReplyResponse struct {
	AssistantText string
}
