package recipes

import "errors"

// ErrNoSteps is returned when cooking mode is started for a recipe without
// instructions.
var ErrNoSteps = errors.New("recipe has no instructions")

// Walkthrough is the cooking-mode cursor over a recipe's instructions. The
// index is clamped to [0, len-1].
type Walkthrough struct {
	recipe Recipe
	index  int
}

// Start opens cooking mode at the first step.
func Start(r Recipe) (*Walkthrough, error) {
	if len(r.Instructions) == 0 {
		return nil, ErrNoSteps
	}
	return &Walkthrough{recipe: r.Clone()}, nil
}

func (w *Walkthrough) Recipe() Recipe { return w.recipe.Clone() }

// Index is the zero-based current step.
func (w *Walkthrough) Index() int { return w.index }

// Total is the number of steps.
func (w *Walkthrough) Total() int { return len(w.recipe.Instructions) }

// Current returns the instruction at the cursor.
func (w *Walkthrough) Current() string { return w.recipe.Instructions[w.index] }

// Next advances one step. It reports false on the last step.
func (w *Walkthrough) Next() bool {
	if w.index >= len(w.recipe.Instructions)-1 {
		return false
	}
	w.index++
	return true
}

// Prev moves back one step. It reports false on the first step.
func (w *Walkthrough) Prev() bool {
	if w.index == 0 {
		return false
	}
	w.index--
	return true
}

func (w *Walkthrough) IsFirst() bool { return w.index == 0 }

func (w *Walkthrough) IsLast() bool { return w.index == len(w.recipe.Instructions)-1 }

// Progress is the share of steps reached, in percent: step 1 of 4 is 25.
func (w *Walkthrough) Progress() float64 {
	return float64(w.index+1) / float64(len(w.recipe.Instructions)) * 100
}

// StepNarration is the text read aloud for the current step.
func (w *Walkthrough) StepNarration() string {
	return StepNarration(w.index, w.Current())
}
