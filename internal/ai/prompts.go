package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/fdg312/culinary-hub/internal/recipes"
	"github.com/tmc/langchaingo/prompts"
)

const analysisJSONShape = `Return a JSON object with: name, portion, calories, macros (protein, carbs, fat), needsQuantity (boolean), and message (string).`

const imageAnalysisPrompt = "Examine this food image. Identify the items and estimate their nutritional content. " +
	"If you cannot determine the exact portion size or quantity, set 'needsQuantity' to true and ask the user for clarification in the 'message'. " +
	analysisJSONShape

var textAnalysisTemplate = prompts.NewPromptTemplate(
	`Analyze this food entry: "{{.Input}}". Provide a nutritional breakdown. If the quantity/portion is missing or vague, set 'needsQuantity' to true. `+analysisJSONShape,
	[]string{"Input"},
)

var recipeTemplate = prompts.NewPromptTemplate(
	`Generate a highly detailed, professional recipe for "{{.Query}}". Ensure instructions are step-by-step. `+
		`Include nutritional breakdown per serving. Use a creative finalImagePrompt for AI generation. Output JSON with keys: `+
		`title, cuisine, description, prepTime, cookTime, servings (number), difficulty (Easy|Medium|Hard), `+
		`ingredients (array of {item, amount, imagePrompt}), instructions (array of strings), `+
		`nutritionPerServing ({calories, protein, carbs, fat}), finalImagePrompt.`,
	[]string{"Query"},
)

var coachTemplate = prompts.NewPromptTemplate(
	`You are a professional Fitness Consultant and Dietician.
User Profile: Name: {{.Name}}, Goals: {{.Goal}}, Activity: {{.Activity}}.
Manual Targets: P:{{.Protein}}g, C:{{.Carbs}}g, F:{{.Fat}}g, Cal:{{.Calories}}.
{{.Snapshot}}Always reference their goals and manual targets if they differ from standard calculations.`,
	[]string{"Name", "Goal", "Activity", "Protein", "Carbs", "Fat", "Calories", "Snapshot"},
)

const culinarySystemPrompt = "You are a helpful AI Culinary Assistant. Help with recipes, food science, and kitchen tips."

// TextAnalysisPrompt asks for a breakdown of a free-text description.
func TextAnalysisPrompt(input string) (string, error) {
	return textAnalysisTemplate.Format(map[string]any{"Input": input})
}

// ImageAnalysisPrompt accompanies a food photo.
func ImageAnalysisPrompt() string { return imageAnalysisPrompt }

// RecipePrompt asks for a structured recipe.
func RecipePrompt(query string) (string, error) {
	return recipeTemplate.Format(map[string]any{"Query": query})
}

// ImagePrompt wraps a subject in the food photography style.
func ImagePrompt(subject string) string {
	return fmt.Sprintf("High resolution food photography of %s. Plated, vibrant colors, bokeh background.", subject)
}

// SystemPrompt renders the persona's instructions.
func SystemPrompt(req ReplyRequest) (string, error) {
	if req.Persona != PersonaCoach {
		return culinarySystemPrompt, nil
	}

	snapshot := ""
	if s := req.Snapshot; s != nil {
		snapshot = fmt.Sprintf("Today (%s): %.0f/%d kcal, P %.0f/%dg, C %.0f/%dg, F %.0f/%dg, water %.0f ml.\n",
			s.Date,
			s.Totals.CaloriesConsumed, s.Targets.Calories,
			s.Totals.ProteinConsumed, s.Targets.ProteinG,
			s.Totals.CarbsConsumed, s.Targets.CarbsG,
			s.Totals.FatConsumed, s.Targets.FatG,
			s.Totals.WaterConsumedMl,
		)
	}

	p := req.Profile
	return coachTemplate.Format(map[string]any{
		"Name":     p.Name,
		"Goal":     string(p.HealthGoal),
		"Activity": string(p.ActivityLevel),
		"Protein":  p.MacroGoalOverrides.Protein,
		"Carbs":    p.MacroGoalOverrides.Carbs,
		"Fat":      p.MacroGoalOverrides.Fat,
		"Calories": p.MacroGoalOverrides.Calories,
		"Snapshot": snapshot,
	})
}

// extractJSON strips markdown code fences and surrounding prose from a model
// reply, keeping the outermost JSON object.
func extractJSON(content string) string {
	s := strings.TrimSpace(content)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end < start {
		return strings.TrimSpace(s)
	}
	return s[start : end+1]
}

// ParseFoodAnalysis decodes and sanitizes an analysis reply.
func ParseFoodAnalysis(content string) (FoodAnalysis, error) {
	var out FoodAnalysis
	if err := json.Unmarshal([]byte(extractJSON(content)), &out); err != nil {
		return FoodAnalysis{}, fmt.Errorf("%w: decode analysis: %v", ErrInvalidResponse, err)
	}
	out.Name = strings.TrimSpace(out.Name)
	out.Portion = strings.TrimSpace(out.Portion)
	out.Calories = nonNegative(out.Calories)
	out.Macros.Protein = nonNegative(out.Macros.Protein)
	out.Macros.Carbs = nonNegative(out.Macros.Carbs)
	out.Macros.Fat = nonNegative(out.Macros.Fat)
	return out, nil
}

// ParseRecipe decodes a recipe reply. A recipe needs at least a title.
func ParseRecipe(content string) (recipes.Recipe, error) {
	var out recipes.Recipe
	if err := json.Unmarshal([]byte(extractJSON(content)), &out); err != nil {
		return recipes.Recipe{}, fmt.Errorf("%w: decode recipe: %v", ErrInvalidResponse, err)
	}
	out.Title = strings.TrimSpace(out.Title)
	if out.Title == "" {
		return recipes.Recipe{}, fmt.Errorf("%w: recipe without title", ErrInvalidResponse)
	}
	return out, nil
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
