package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/fdg312/culinary-hub/internal/config"
	"github.com/fdg312/culinary-hub/internal/recipes"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// LangChainProvider drives an OpenAI-compatible chat model through
// langchaingo. It cannot generate images or speech.
type LangChainProvider struct {
	llm         llms.Model
	maxTokens   int
	temperature float64
}

func NewLangChainProvider(cfg *config.Config) (*LangChainProvider, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.OpenAIBaseURL),
		openai.WithToken(cfg.OpenAIAPIKey),
		openai.WithModel(cfg.OpenAIModel),
	)
	if err != nil {
		return nil, fmt.Errorf("create langchain llm: %w", err)
	}
	return NewLangChainProviderWithModel(llm, cfg.AIMaxOutputTokens, cfg.AITemperature), nil
}

// NewLangChainProviderWithModel wraps any langchaingo model.
func NewLangChainProviderWithModel(llm llms.Model, maxTokens int, temperature float64) *LangChainProvider {
	return &LangChainProvider{llm: llm, maxTokens: maxTokens, temperature: temperature}
}

func (p *LangChainProvider) options(jsonMode bool) []llms.CallOption {
	opts := []llms.CallOption{
		llms.WithTemperature(p.temperature),
		llms.WithMaxTokens(p.maxTokens),
	}
	if jsonMode {
		opts = append(opts, llms.WithJSONMode())
	}
	return opts
}

func (p *LangChainProvider) AnalyzeFood(ctx context.Context, req FoodAnalysisRequest) (FoodAnalysis, error) {
	var parts []llms.ContentPart
	if req.IsImage() {
		mime := req.ImageMIME
		if mime == "" {
			mime = http.DetectContentType(req.Image)
		}
		parts = []llms.ContentPart{
			llms.ImageURLPart(dataURL(mime, req.Image)),
			llms.TextPart(ImageAnalysisPrompt()),
		}
	} else {
		prompt, err := TextAnalysisPrompt(req.Text)
		if err != nil {
			return FoodAnalysis{}, err
		}
		parts = []llms.ContentPart{llms.TextPart(prompt)}
	}

	content, err := p.generate(ctx, []llms.MessageContent{{Role: schema.ChatMessageTypeHuman, Parts: parts}}, true)
	if err != nil {
		return FoodAnalysis{}, err
	}
	return ParseFoodAnalysis(content)
}

func (p *LangChainProvider) GenerateRecipe(ctx context.Context, query string) (recipes.Recipe, error) {
	prompt, err := RecipePrompt(query)
	if err != nil {
		return recipes.Recipe{}, err
	}
	content, err := llms.GenerateFromSinglePrompt(ctx, p.llm, prompt, p.options(true)...)
	if err != nil {
		return recipes.Recipe{}, fmt.Errorf("generate recipe: %w", err)
	}
	return ParseRecipe(content)
}

func (p *LangChainProvider) Reply(ctx context.Context, req ReplyRequest) (ReplyResponse, error) {
	system, err := SystemPrompt(req)
	if err != nil {
		return ReplyResponse{}, err
	}

	messages := make([]llms.MessageContent, 0, len(req.Messages)+1)
	messages = append(messages, llms.TextParts(schema.ChatMessageTypeSystem, system))
	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleUser:
			messages = append(messages, llms.TextParts(schema.ChatMessageTypeHuman, msg.Content))
		case RoleAssistant:
			messages = append(messages, llms.TextParts(schema.ChatMessageTypeAI, msg.Content))
		}
	}

	content, err := p.generate(ctx, messages, false)
	if err != nil {
		return ReplyResponse{}, err
	}
	return ReplyResponse{AssistantText: content}, nil
}

func (p *LangChainProvider) GenerateImage(context.Context, string) (Image, error) {
	return Image{}, ErrUnsupported
}

func (p *LangChainProvider) Speak(context.Context, string) (Audio, error) {
	return Audio{}, ErrUnsupported
}

func (p *LangChainProvider) generate(ctx context.Context, messages []llms.MessageContent, jsonMode bool) (string, error) {
	resp, err := p.llm.GenerateContent(ctx, messages, p.options(jsonMode)...)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrInvalidResponse)
	}
	content := strings.TrimSpace(resp.Choices[0].Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty completion", ErrInvalidResponse)
	}
	return content, nil
}
