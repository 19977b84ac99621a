package recipes

import "testing"

func TestNarration(t *testing.T) {
	r := Recipe{
		Title: "Pancakes",
		Ingredients: []Ingredient{
			{Item: "flour", Amount: "200g"},
			{Item: "milk", Amount: "300ml"},
		},
		Instructions: []string{"Whisk", "Fry"},
	}
	want := "Cooking Pancakes. Ingredients needed: 200g of flour, 300ml of milk. Instructions: Whisk. Fry"
	if got := Narration(r); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestImagePrompts(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"final uses prompt", FinalImagePrompt(Recipe{Title: "Ramen", FinalImagePrompt: "steaming bowl"}), "steaming bowl"},
		{"final falls back to title", FinalImagePrompt(Recipe{Title: "Ramen"}), "Ramen"},
		{"ingredient uses prompt", IngredientImagePrompt(Ingredient{Item: "egg", ImagePrompt: "soft boiled egg"}), "high quality ingredient photo of soft boiled egg"},
		{"ingredient falls back to item", IngredientImagePrompt(Ingredient{Item: "egg"}), "high quality ingredient photo of egg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, tt.got)
			}
		})
	}
}
