package ai

import (
	"context"
	"testing"
	"time"

	"github.com/fdg312/culinary-hub/internal/config"
)

type countingProvider struct {
	MockProvider
	replies int
}

func (c *countingProvider) Reply(ctx context.Context, req ReplyRequest) (ReplyResponse, error) {
	c.replies++
	return c.MockProvider.Reply(ctx, req)
}

func TestWithRateLimit_Disabled(t *testing.T) {
	next := NewMockProvider()
	if got := WithRateLimit(next, 0, 5); got != Provider(next) {
		t.Fatalf("expected provider unchanged when rps=0, got %T", got)
	}
}

func TestRateLimitedProvider_BlocksBeyondBurst(t *testing.T) {
	next := &countingProvider{}
	p := WithRateLimit(next, 0.001, 1)

	if _, err := p.Reply(context.Background(), ReplyRequest{}); err != nil {
		t.Fatalf("first call should pass: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := p.Reply(ctx, ReplyRequest{}); err == nil {
		t.Fatal("expected second call to be throttled")
	}
	if next.replies != 1 {
		t.Fatalf("expected 1 upstream call, got %d", next.replies)
	}
}

func TestNewProvider_DefaultsToMock(t *testing.T) {
	p, err := NewProvider(testConfig(), nil)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if _, ok := p.(*MockProvider); !ok {
		t.Fatalf("expected *MockProvider, got %T", p)
	}
}

func testConfig() *config.Config {
	return &config.Config{AIMode: "unknown"}
}
