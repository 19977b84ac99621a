package recipes

import (
	"fmt"
	"strings"
)

// Narration is the full read-aloud text of a recipe.
func Narration(r Recipe) string {
	ingredients := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, fmt.Sprintf("%s of %s", ing.Amount, ing.Item))
	}
	return fmt.Sprintf("Cooking %s. Ingredients needed: %s. Instructions: %s",
		r.Title, strings.Join(ingredients, ", "), strings.Join(r.Instructions, ". "))
}

// StepNarration reads one instruction; index is zero-based.
func StepNarration(index int, instruction string) string {
	return fmt.Sprintf("Step %d: %s", index+1, instruction)
}

// FinalImagePrompt is the subject used to illustrate the finished dish.
func FinalImagePrompt(r Recipe) string {
	if p := strings.TrimSpace(r.FinalImagePrompt); p != "" {
		return p
	}
	return r.Title
}

// IngredientImagePrompt is the subject used to illustrate one ingredient.
func IngredientImagePrompt(ing Ingredient) string {
	subject := strings.TrimSpace(ing.ImagePrompt)
	if subject == "" {
		subject = ing.Item
	}
	return "high quality ingredient photo of " + subject
}
