package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fdg312/culinary-hub/internal/ai"
	"github.com/fdg312/culinary-hub/internal/appstate"
	"github.com/fdg312/culinary-hub/internal/nutrition"
	"github.com/fdg312/culinary-hub/internal/storage/memory"
)

var fixedNow = time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)

type recordingProvider struct {
	*ai.MockProvider
	requests []ai.ReplyRequest
	err      error
	reply    string
}

func (p *recordingProvider) Reply(_ context.Context, req ai.ReplyRequest) (ai.ReplyResponse, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return ai.ReplyResponse{}, p.err
	}
	return ai.ReplyResponse{AssistantText: p.reply}, nil
}

func newState(t *testing.T) *appstate.State {
	t.Helper()
	s, err := appstate.Load(context.Background(), memory.New())
	if err != nil {
		t.Fatalf("appstate.Load: %v", err)
	}
	return s
}

func TestNewConversation_Greeting(t *testing.T) {
	state := newState(t)
	if _, err := state.UpdateProfile(context.Background(), func(p *nutrition.Profile) {
		p.Name = "Ada"
		p.HealthGoal = nutrition.GoalWeightLoss
	}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	coach := NewConversation(ai.PersonaCoach, ai.NewMockProvider(), state)
	msgs := coach.Messages()
	if len(msgs) != 1 || msgs[0].Role != ai.RoleAssistant {
		t.Fatalf("expected a single assistant greeting, got %+v", msgs)
	}
	if !strings.HasPrefix(msgs[0].Content, "Hello Ada!") || !strings.Contains(msgs[0].Content, string(nutrition.GoalWeightLoss)) {
		t.Fatalf("unexpected coach greeting %q", msgs[0].Content)
	}

	assistant := NewConversation(ai.PersonaCulinary, ai.NewMockProvider(), nil)
	if got := assistant.Messages()[0].Content; !strings.HasPrefix(got, "Hi! I am your AI Culinary Assistant.") {
		t.Fatalf("unexpected culinary greeting %q", got)
	}
}

func TestSend_AppendsOnSuccess(t *testing.T) {
	provider := &recordingProvider{MockProvider: ai.NewMockProvider(), reply: "  Try oats.  "}
	c := NewConversation(ai.PersonaCulinary, provider, nil).WithClock(func() time.Time { return fixedNow })

	msg, err := c.Send(context.Background(), " breakfast ideas? ")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if msg.Role != ai.RoleAssistant || msg.Content != "Try oats." {
		t.Fatalf("unexpected reply %+v", msg)
	}

	msgs := c.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected greeting, question and reply, got %d messages", len(msgs))
	}
	if msgs[1].Role != ai.RoleUser || msgs[1].Content != "breakfast ideas?" {
		t.Fatalf("unexpected user message %+v", msgs[1])
	}

	req := provider.requests[0]
	if req.Persona != ai.PersonaCulinary || req.Snapshot != nil {
		t.Fatalf("culinary requests carry no snapshot, got %+v", req)
	}
	if len(req.Messages) != 2 || req.Messages[1].Content != "breakfast ideas?" {
		t.Fatalf("expected history with the new question, got %+v", req.Messages)
	}
}

func TestSend_FailureLeavesTranscript(t *testing.T) {
	tests := []struct {
		name     string
		provider *recordingProvider
		wantErr  error
	}{
		{"provider error", &recordingProvider{MockProvider: ai.NewMockProvider(), err: errors.New("timeout")}, ErrAIFailed},
		{"empty reply", &recordingProvider{MockProvider: ai.NewMockProvider(), reply: "   "}, ErrAIFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConversation(ai.PersonaCulinary, tt.provider, nil)
			if _, err := c.Send(context.Background(), "hello"); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if n := len(c.Messages()); n != 1 {
				t.Fatalf("expected only the greeting, got %d messages", n)
			}
		})
	}
}

func TestSend_EmptyMessage(t *testing.T) {
	provider := &recordingProvider{MockProvider: ai.NewMockProvider(), reply: "x"}
	c := NewConversation(ai.PersonaCoach, provider, nil)
	if _, err := c.Send(context.Background(), "  "); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if len(provider.requests) != 0 {
		t.Fatal("empty messages must not reach the provider")
	}
}

func TestSend_CoachIncludesProfileAndSnapshot(t *testing.T) {
	ctx := context.Background()
	state := newState(t)
	if _, err := state.UpdateProfile(ctx, func(p *nutrition.Profile) {
		p.Name = "Sam"
		p.CaloriesGoalOverride = "2000"
	}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if err := state.AddEntry(ctx, nutrition.FoodLogEntry{
		ID:        "1",
		Timestamp: fixedNow.Add(-time.Hour).UnixMilli(),
		MealType:  nutrition.MealBreakfast,
		Name:      "Oatmeal",
		Calories:  300,
	}); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	provider := &recordingProvider{MockProvider: ai.NewMockProvider(), reply: "ok"}
	c := NewConversation(ai.PersonaCoach, provider, state).WithClock(func() time.Time { return fixedNow })
	if _, err := c.Send(ctx, "how am I doing?"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	req := provider.requests[0]
	if req.Profile.Name != "Sam" {
		t.Fatalf("expected profile in request, got %+v", req.Profile)
	}
	if req.Snapshot == nil {
		t.Fatal("expected a daily snapshot")
	}
	if req.Snapshot.Date != "2026-05-02" || req.Snapshot.Totals.CaloriesConsumed != 300 || req.Snapshot.Targets.Calories != 2000 {
		t.Fatalf("unexpected snapshot %+v", req.Snapshot)
	}
}

func TestReset(t *testing.T) {
	c := NewConversation(ai.PersonaCulinary, ai.NewMockProvider(), nil)
	if _, err := c.Send(context.Background(), "hi"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	c.Reset()
	if n := len(c.Messages()); n != 1 {
		t.Fatalf("expected greeting only after reset, got %d", n)
	}
}
