package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fdg312/culinary-hub/internal/config"
	"github.com/fdg312/culinary-hub/internal/recipes"
)

// OpenAIProvider talks to an OpenAI-compatible HTTP API.
type OpenAIProvider struct {
	apiKey      string
	baseURL     string
	model       string
	imageModel  string
	ttsModel    string
	ttsVoice    string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

func NewOpenAIProvider(cfg *config.Config) *OpenAIProvider {
	timeoutSeconds := cfg.AITimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = 60
	}
	baseURL := strings.TrimRight(cfg.OpenAIBaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &OpenAIProvider{
		apiKey:      cfg.OpenAIAPIKey,
		baseURL:     baseURL,
		model:       cfg.OpenAIModel,
		imageModel:  cfg.OpenAIImageModel,
		ttsModel:    cfg.OpenAITTSModel,
		ttsVoice:    cfg.OpenAITTSVoice,
		maxTokens:   cfg.AIMaxOutputTokens,
		temperature: cfg.AITemperature,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

func (p *OpenAIProvider) AnalyzeFood(ctx context.Context, req FoodAnalysisRequest) (FoodAnalysis, error) {
	var msg chatMessageRequest
	if req.IsImage() {
		mime := req.ImageMIME
		if mime == "" {
			mime = http.DetectContentType(req.Image)
		}
		msg = chatMessageRequest{
			Role: RoleUser,
			Content: []contentPart{
				{Type: "image_url", ImageURL: &imageURL{URL: dataURL(mime, req.Image)}},
				{Type: "text", Text: ImageAnalysisPrompt()},
			},
		}
	} else {
		prompt, err := TextAnalysisPrompt(req.Text)
		if err != nil {
			return FoodAnalysis{}, err
		}
		msg = chatMessageRequest{Role: RoleUser, Content: prompt}
	}

	content, err := p.complete(ctx, []chatMessageRequest{msg}, true)
	if err != nil {
		return FoodAnalysis{}, err
	}
	return ParseFoodAnalysis(content)
}

func (p *OpenAIProvider) GenerateRecipe(ctx context.Context, query string) (recipes.Recipe, error) {
	prompt, err := RecipePrompt(query)
	if err != nil {
		return recipes.Recipe{}, err
	}
	content, err := p.complete(ctx, []chatMessageRequest{{Role: RoleUser, Content: prompt}}, true)
	if err != nil {
		return recipes.Recipe{}, err
	}
	return ParseRecipe(content)
}

func (p *OpenAIProvider) Reply(ctx context.Context, req ReplyRequest) (ReplyResponse, error) {
	system, err := SystemPrompt(req)
	if err != nil {
		return ReplyResponse{}, err
	}

	messages := make([]chatMessageRequest, 0, len(req.Messages)+1)
	messages = append(messages, chatMessageRequest{Role: "system", Content: system})
	for _, msg := range req.Messages {
		role := strings.TrimSpace(msg.Role)
		if role == "" {
			continue
		}
		messages = append(messages, chatMessageRequest{Role: role, Content: msg.Content})
	}

	content, err := p.complete(ctx, messages, false)
	if err != nil {
		return ReplyResponse{}, err
	}
	return ReplyResponse{AssistantText: strings.TrimSpace(content)}, nil
}

func (p *OpenAIProvider) GenerateImage(ctx context.Context, prompt string) (Image, error) {
	payload := imagesRequest{
		Model:  p.imageModel,
		Prompt: ImagePrompt(prompt),
		N:      1,
		Size:   "1024x1024",
	}

	body, err := p.post(ctx, "/images/generations", payload)
	if err != nil {
		return Image{}, err
	}

	var parsed imagesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Image{}, err
	}
	if len(parsed.Data) == 0 {
		return Image{}, fmt.Errorf("%w: no image data", ErrInvalidResponse)
	}

	item := parsed.Data[0]
	if item.B64JSON != "" {
		data, err := base64.StdEncoding.DecodeString(item.B64JSON)
		if err != nil {
			return Image{}, fmt.Errorf("%w: decode image: %v", ErrInvalidResponse, err)
		}
		return Image{Data: data, MIMEType: http.DetectContentType(data)}, nil
	}
	if item.URL != "" {
		return p.download(ctx, item.URL)
	}
	return Image{}, fmt.Errorf("%w: empty image item", ErrInvalidResponse)
}

func (p *OpenAIProvider) Speak(ctx context.Context, text string) (Audio, error) {
	payload := speechRequest{
		Model:          p.ttsModel,
		Voice:          p.ttsVoice,
		Input:          text,
		ResponseFormat: "mp3",
	}
	body, err := p.post(ctx, "/audio/speech", payload)
	if err != nil {
		return Audio{}, err
	}
	if len(body) == 0 {
		return Audio{}, fmt.Errorf("%w: empty audio", ErrInvalidResponse)
	}
	return Audio{Data: body, MIMEType: "audio/mpeg"}, nil
}

func (p *OpenAIProvider) complete(ctx context.Context, messages []chatMessageRequest, jsonMode bool) (string, error) {
	requestPayload := chatCompletionsRequest{
		Model:       p.model,
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
		Messages:    messages,
	}
	if jsonMode {
		requestPayload.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	responseBody, err := p.post(ctx, "/chat/completions", requestPayload)
	if err != nil {
		return "", err
	}

	var parsed chatCompletionsResponse
	if err := json.Unmarshal(responseBody, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai response does not contain choices")
	}
	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty completion", ErrInvalidResponse)
	}
	return content, nil
}

func (p *OpenAIProvider) post(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai %s failed with status %d", path, resp.StatusCode)
	}
	return responseBody, nil
}

func (p *OpenAIProvider) download(ctx context.Context, url string) (Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Image{}, err
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Image{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Image{}, fmt.Errorf("image download failed with status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Image{}, err
	}
	return Image{Data: data, MIMEType: http.DetectContentType(data)}, nil
}

func dataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

type chatCompletionsRequest struct {
	Model          string               `json:"model"`
	Messages       []chatMessageRequest `json:"messages"`
	Temperature    float64              `json:"temperature"`
	MaxTokens      int                  `json:"max_tokens"`
	ResponseFormat *responseFormat      `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// Content is a string or a []contentPart.
type chatMessageRequest struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatCompletionsResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type imagesRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imagesResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
		URL     string `json:"url"`
	} `json:"data"`
}

type speechRequest struct {
	Model          string `json:"model"`
	Voice          string `json:"voice"`
	Input          string `json:"input"`
	ResponseFormat string `json:"response_format"`
}
