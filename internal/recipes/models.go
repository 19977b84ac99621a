package recipes

// Difficulty is the cook's effort rating for a recipe.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Ingredient is one line of the shopping list.
type Ingredient struct {
	Item        string `json:"item"`
	Amount      string `json:"amount"`
	ImagePrompt string `json:"imagePrompt,omitempty"`
}

// NutritionPerServing is the per-portion estimate returned with a recipe.
type NutritionPerServing struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Recipe is a generated recipe. Title is its identity in the saved
// collection.
type Recipe struct {
	Title               string              `json:"title"`
	Cuisine             string              `json:"cuisine"`
	Description         string              `json:"description"`
	PrepTime            string              `json:"prepTime"`
	CookTime            string              `json:"cookTime"`
	Servings            float64             `json:"servings"`
	Difficulty          Difficulty          `json:"difficulty"`
	Ingredients         []Ingredient        `json:"ingredients"`
	Instructions        []string            `json:"instructions"`
	NutritionPerServing NutritionPerServing `json:"nutritionPerServing"`
	FinalImagePrompt    string              `json:"finalImagePrompt,omitempty"`
}

// Clone returns a deep copy.
func (r Recipe) Clone() Recipe {
	out := r
	if r.Ingredients != nil {
		out.Ingredients = append([]Ingredient(nil), r.Ingredients...)
	}
	if r.Instructions != nil {
		out.Instructions = append([]string(nil), r.Instructions...)
	}
	return out
}

// Cuisines are the quick-pick suggestions offered by the generator.
var Cuisines = []string{"Italian", "Japanese", "Mexican", "Indian", "Mediterranean", "Fusion", "Vegan"}
