package ai

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"strings"
	"unicode"

	"github.com/fdg312/culinary-hub/internal/nutrition"
	"github.com/fdg312/culinary-hub/internal/recipes"
)

// MockProvider answers deterministically without network access.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

type mockFood struct {
	keyword string
	name    string
	portion string
	kcal    float64
	macros  nutrition.Macros
}

var mockFoods = []mockFood{
	{"banana", "Banana", "1 medium (118g)", 105, nutrition.Macros{Protein: 1.3, Carbs: 27, Fat: 0.4}},
	{"apple", "Apple", "1 medium (182g)", 95, nutrition.Macros{Protein: 0.5, Carbs: 25, Fat: 0.3}},
	{"egg", "Eggs", "2 large", 143, nutrition.Macros{Protein: 12.6, Carbs: 0.7, Fat: 9.5}},
	{"oat", "Oatmeal", "1 cup cooked", 158, nutrition.Macros{Protein: 6, Carbs: 27, Fat: 3.2}},
	{"chicken", "Grilled chicken breast", "150g", 248, nutrition.Macros{Protein: 46, Carbs: 0, Fat: 5.4}},
	{"rice", "White rice", "1 cup cooked", 205, nutrition.Macros{Protein: 4.3, Carbs: 45, Fat: 0.4}},
	{"salad", "Garden salad", "1 bowl", 120, nutrition.Macros{Protein: 3, Carbs: 10, Fat: 8}},
	{"pizza", "Pizza", "2 slices", 570, nutrition.Macros{Protein: 24, Carbs: 70, Fat: 22}},
	{"coffee", "Coffee with milk", "1 cup", 40, nutrition.Macros{Protein: 2, Carbs: 3, Fat: 2}},
}

func (p *MockProvider) AnalyzeFood(_ context.Context, req FoodAnalysisRequest) (FoodAnalysis, error) {
	if req.IsImage() {
		return FoodAnalysis{
			Name:          "Mixed plate",
			Portion:       "1 plate",
			Calories:      450,
			Macros:        nutrition.Macros{Protein: 25, Carbs: 50, Fat: 15},
			NeedsQuantity: true,
			Message:       "Demo mode: how large was the plate?",
		}, nil
	}

	text := strings.ToLower(req.Text)
	hasQuantity := strings.IndexFunc(text, unicode.IsDigit) >= 0
	for _, f := range mockFoods {
		if strings.Contains(text, f.keyword) {
			return FoodAnalysis{
				Name:          f.name,
				Portion:       f.portion,
				Calories:      f.kcal,
				Macros:        f.macros,
				NeedsQuantity: !hasQuantity,
				Message:       mockAnalysisMessage(hasQuantity),
			}, nil
		}
	}

	return FoodAnalysis{
		Name:          strings.TrimSpace(req.Text),
		Portion:       "1 serving",
		Calories:      250,
		Macros:        nutrition.Macros{Protein: 10, Carbs: 30, Fat: 10},
		NeedsQuantity: !hasQuantity,
		Message:       mockAnalysisMessage(hasQuantity),
	}, nil
}

func mockAnalysisMessage(hasQuantity bool) string {
	if hasQuantity {
		return "Demo mode estimate. Looks good!"
	}
	return "Demo mode estimate. How much did you have?"
}

func (p *MockProvider) GenerateRecipe(_ context.Context, query string) (recipes.Recipe, error) {
	query = strings.TrimSpace(query)
	title := "Simple " + query
	return recipes.Recipe{
		Title:       title,
		Cuisine:     "Fusion",
		Description: fmt.Sprintf("A quick demo take on %s.", query),
		PrepTime:    "10 min",
		CookTime:    "20 min",
		Servings:    2,
		Difficulty:  recipes.DifficultyEasy,
		Ingredients: []recipes.Ingredient{
			{Item: query, Amount: "300g", ImagePrompt: "fresh " + query},
			{Item: "olive oil", Amount: "1 tbsp"},
			{Item: "salt", Amount: "1 pinch"},
		},
		Instructions: []string{
			"Prepare all ingredients.",
			"Heat the olive oil in a pan over medium heat.",
			fmt.Sprintf("Cook the %s until done, about 15 minutes.", query),
			"Season with salt and serve warm.",
		},
		NutritionPerServing: recipes.NutritionPerServing{Calories: 420, Protein: 20, Carbs: 45, Fat: 16},
		FinalImagePrompt:    title + " on a rustic plate",
	}, nil
}

// GenerateImage renders a small solid PNG whose color depends on the prompt.
func (p *MockProvider) GenerateImage(_ context.Context, prompt string) (Image, error) {
	h := fnv.New32a()
	h.Write([]byte(prompt))
	sum := h.Sum32()
	fill := color.RGBA{R: uint8(sum), G: uint8(sum >> 8), B: uint8(sum >> 16), A: 255}

	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, fill)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Image{}, err
	}
	return Image{Data: buf.Bytes(), MIMEType: "image/png"}, nil
}

func (p *MockProvider) Reply(_ context.Context, req ReplyRequest) (ReplyResponse, error) {
	lastUserMessage := ""
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == RoleUser {
			lastUserMessage = req.Messages[i].Content
			break
		}
	}

	if req.Persona == PersonaCoach {
		text := fmt.Sprintf("Demo coach for %s: goal %s.", req.Profile.Name, req.Profile.HealthGoal)
		if s := req.Snapshot; s != nil {
			text += fmt.Sprintf(" Today you are at %.0f of %d kcal.", s.Totals.CaloriesConsumed, s.Targets.Calories)
		}
		return ReplyResponse{AssistantText: text + " You asked: " + lastUserMessage}, nil
	}

	return ReplyResponse{AssistantText: "Demo culinary assistant. You asked: " + lastUserMessage}, nil
}

// Speak returns a short silent mono WAV clip at 24 kHz.
func (p *MockProvider) Speak(_ context.Context, text string) (Audio, error) {
	const sampleRate = 24000
	samples := sampleRate / 10
	if n := len(text) * 100; n > samples {
		samples = n
	}
	dataLen := uint32(samples * 2)

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, 36+dataLen)
	buf.WriteString("WAVEfmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataLen)
	buf.Write(make([]byte, dataLen))

	return Audio{Data: buf.Bytes(), MIMEType: "audio/wav"}, nil
}
