package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fdg312/culinary-hub/internal/ai"
	"github.com/fdg312/culinary-hub/internal/appstate"
	"github.com/fdg312/culinary-hub/internal/nutrition"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrAIFailed       = errors.New("ai failed")
)

// Conversation is one in-memory chat session with an assistant persona.
// Conversations are not persisted.
type Conversation struct {
	mu       sync.Mutex
	persona  ai.Persona
	provider ai.Provider
	state    *appstate.State
	messages []ai.ChatMessage
	now      func() time.Time
}

func NewConversation(persona ai.Persona, provider ai.Provider, state *appstate.State) *Conversation {
	c := &Conversation{
		persona:  persona,
		provider: provider,
		state:    state,
		now:      time.Now,
	}
	c.messages = []ai.ChatMessage{c.greeting()}
	return c
}

// WithClock replaces the time source used for timestamps and the coach's
// daily snapshot.
func (c *Conversation) WithClock(now func() time.Time) *Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	return c
}

func (c *Conversation) Persona() ai.Persona { return c.persona }

// Messages returns the transcript, greeting first.
func (c *Conversation) Messages() []ai.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ai.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Send asks the assistant to answer text. The user message and the reply are
// appended together, and only when the call succeeds.
func (c *Conversation) Send(ctx context.Context, text string) (ai.ChatMessage, error) {
	content := strings.TrimSpace(text)
	if content == "" {
		return ai.ChatMessage{}, ErrInvalidRequest
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	userMsg := ai.ChatMessage{Role: ai.RoleUser, Content: content, CreatedAt: now}

	history := make([]ai.ChatMessage, 0, len(c.messages)+1)
	history = append(history, c.messages...)
	history = append(history, userMsg)

	req := ai.ReplyRequest{
		Persona:  c.persona,
		Messages: history,
	}
	if c.persona == ai.PersonaCoach && c.state != nil {
		req.Profile = c.state.Profile()
		progress := c.state.Dashboard(now)
		req.Snapshot = &ai.DaySnapshot{
			Date:    now.Format("2006-01-02"),
			Targets: progress.Targets,
			Totals:  progress.Totals,
		}
	}

	reply, err := c.provider.Reply(ctx, req)
	if err != nil {
		return ai.ChatMessage{}, fmt.Errorf("%w: %v", ErrAIFailed, err)
	}
	answer := strings.TrimSpace(reply.AssistantText)
	if answer == "" {
		return ai.ChatMessage{}, fmt.Errorf("%w: empty reply", ErrAIFailed)
	}

	assistantMsg := ai.ChatMessage{Role: ai.RoleAssistant, Content: answer, CreatedAt: c.now()}
	c.messages = append(history, assistantMsg)
	return assistantMsg, nil
}

// Reset drops everything but a fresh greeting.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = []ai.ChatMessage{c.greeting()}
}

func (c *Conversation) greeting() ai.ChatMessage {
	profile := nutrition.DefaultProfile()
	if c.state != nil {
		profile = c.state.Profile()
	}
	return ai.ChatMessage{
		Role:      ai.RoleAssistant,
		Content:   Greeting(c.persona, profile),
		CreatedAt: c.now(),
	}
}
