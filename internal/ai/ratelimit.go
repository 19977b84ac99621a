package ai

import (
	"context"
	"fmt"

	"github.com/fdg312/culinary-hub/internal/recipes"
	"golang.org/x/time/rate"
)

// RateLimitedProvider throttles calls to the wrapped provider. Callers
// block until a token is available or ctx ends.
type RateLimitedProvider struct {
	next    Provider
	limiter *rate.Limiter
}

// WithRateLimit wraps next when rps > 0 and returns it unchanged otherwise.
func WithRateLimit(next Provider, rps float64, burst int) Provider {
	if rps <= 0 {
		return next
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimitedProvider{next: next, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (p *RateLimitedProvider) wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("ai rate limit: %w", err)
	}
	return nil
}

func (p *RateLimitedProvider) AnalyzeFood(ctx context.Context, req FoodAnalysisRequest) (FoodAnalysis, error) {
	if err := p.wait(ctx); err != nil {
		return FoodAnalysis{}, err
	}
	return p.next.AnalyzeFood(ctx, req)
}

func (p *RateLimitedProvider) GenerateRecipe(ctx context.Context, query string) (recipes.Recipe, error) {
	if err := p.wait(ctx); err != nil {
		return recipes.Recipe{}, err
	}
	return p.next.GenerateRecipe(ctx, query)
}

func (p *RateLimitedProvider) GenerateImage(ctx context.Context, prompt string) (Image, error) {
	if err := p.wait(ctx); err != nil {
		return Image{}, err
	}
	return p.next.GenerateImage(ctx, prompt)
}

func (p *RateLimitedProvider) Reply(ctx context.Context, req ReplyRequest) (ReplyResponse, error) {
	if err := p.wait(ctx); err != nil {
		return ReplyResponse{}, err
	}
	return p.next.Reply(ctx, req)
}

func (p *RateLimitedProvider) Speak(ctx context.Context, text string) (Audio, error) {
	if err := p.wait(ctx); err != nil {
		return Audio{}, err
	}
	return p.next.Speak(ctx, text)
}
