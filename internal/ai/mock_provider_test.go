package ai

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestMockProvider_AnalyzeFood(t *testing.T) {
	p := NewMockProvider()
	ctx := context.Background()

	vague, err := p.AnalyzeFood(ctx, FoodAnalysisRequest{Text: "a banana"})
	if err != nil {
		t.Fatalf("AnalyzeFood: %v", err)
	}
	if vague.Name != "Banana" || !vague.NeedsQuantity {
		t.Fatalf("expected vague banana, got %+v", vague)
	}

	exact, _ := p.AnalyzeFood(ctx, FoodAnalysisRequest{Text: "2 bananas"})
	if exact.NeedsQuantity {
		t.Fatalf("expected quantity recognised, got %+v", exact)
	}

	photo, _ := p.AnalyzeFood(ctx, FoodAnalysisRequest{Image: []byte{1}})
	if !photo.NeedsQuantity || photo.Calories != 450 {
		t.Fatalf("unexpected photo analysis %+v", photo)
	}
}

func TestMockProvider_Deterministic(t *testing.T) {
	p := NewMockProvider()
	ctx := context.Background()

	a, _ := p.GenerateImage(ctx, "tacos")
	b, _ := p.GenerateImage(ctx, "tacos")
	if !bytes.Equal(a.Data, b.Data) || a.MIMEType != "image/png" {
		t.Fatal("expected identical PNGs for identical prompts")
	}

	r1, _ := p.GenerateRecipe(ctx, "tacos")
	r2, _ := p.GenerateRecipe(ctx, "tacos")
	if r1.Title != r2.Title || len(r1.Instructions) == 0 {
		t.Fatalf("unexpected recipes %+v / %+v", r1, r2)
	}
}

func TestMockProvider_Speak(t *testing.T) {
	audio, err := NewMockProvider().Speak(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Speak: %v", err)
	}
	if !strings.HasPrefix(string(audio.Data), "RIFF") || audio.MIMEType != "audio/wav" {
		t.Fatalf("expected WAV output, got %s", audio.MIMEType)
	}
}
