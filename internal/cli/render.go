package cli

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fdg312/culinary-hub/internal/nutrition"
	"github.com/fdg312/culinary-hub/internal/recipes"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

const (
	textWidth = 76
	barWidth  = 24
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("35"))
	labelStyle = lipgloss.NewStyle().Width(10)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	barFill    = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	barOver    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	barTrack   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

func progressBar(m nutrition.Metric, width int) string {
	filled := int(math.Round(m.Percent / 100 * float64(width)))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	fill := barFill
	if m.Ratio() > 1 {
		fill = barOver
	}
	return fill.Render(strings.Repeat("█", filled)) + barTrack.Render(strings.Repeat("░", width-filled))
}

func metricLine(label string, m nutrition.Metric, unit string) string {
	left := m.Remaining()
	status := fmt.Sprintf("%.0f%s left", left, unit)
	if left < 0 {
		status = fmt.Sprintf("%.0f%s over", -left, unit)
	}
	return fmt.Sprintf("%s %s %.0f / %.0f%s (%.0f%%)  %s",
		labelStyle.Render(label), progressBar(m, barWidth), m.Consumed, m.Target, unit, m.Percent, mutedStyle.Render(status))
}

func renderDashboard(w io.Writer, date string, p nutrition.Progress) {
	fmt.Fprintln(w, titleStyle.Render("Today · "+date))
	fmt.Fprintln(w, metricLine("Calories", p.Calories, " kcal"))
	fmt.Fprintln(w, metricLine("Protein", p.Protein, "g"))
	fmt.Fprintln(w, metricLine("Carbs", p.Carbs, "g"))
	fmt.Fprintln(w, metricLine("Fat", p.Fat, "g"))
	fmt.Fprintln(w, metricLine("Water", p.Water, " ml"))
}

func renderTargets(w io.Writer, p nutrition.Profile, t nutrition.Targets) {
	source := "computed from age, height, weight, goal and activity"
	if !p.HasMetrics() {
		source = "manual macro goals (age, height or weight missing)"
	}
	if v, ok := nutrition.ParseInteger(p.CaloriesGoalOverride); ok && v > 0 {
		source += fmt.Sprintf(", calorie override %d applied", v)
	}
	fmt.Fprintln(w, titleStyle.Render("Daily targets"))
	fmt.Fprintf(w, "Calories: %d kcal\n", t.Calories)
	fmt.Fprintf(w, "Protein:  %dg\n", t.ProteinG)
	fmt.Fprintf(w, "Carbs:    %dg\n", t.CarbsG)
	fmt.Fprintf(w, "Fat:      %dg\n", t.FatG)
	fmt.Fprintf(w, "Water:    %d ml\n", nutrition.WaterTargetMl)
	fmt.Fprintln(w, mutedStyle.Render(source))
}

// renderMarkdown renders md for the terminal, falling back to the raw text.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithEnvironmentConfig(),
		glamour.WithWordWrap(textWidth),
	)
	if err != nil {
		return wrap(md)
	}
	out, err := r.Render(md)
	if err != nil {
		return wrap(md)
	}
	return out
}

func wrap(s string) string {
	return wordwrap.String(s, textWidth)
}

func indented(s string, n uint) string {
	return indent.String(wrap(s), n)
}

func recipeMarkdown(r recipes.Recipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	meta := []string{}
	for _, part := range []string{r.Cuisine, string(r.Difficulty)} {
		if part != "" {
			meta = append(meta, part)
		}
	}
	if r.PrepTime != "" {
		meta = append(meta, "prep "+r.PrepTime)
	}
	if r.CookTime != "" {
		meta = append(meta, "cook "+r.CookTime)
	}
	if r.Servings > 0 {
		meta = append(meta, fmt.Sprintf("serves %g", r.Servings))
	}
	if len(meta) > 0 {
		fmt.Fprintf(&b, "*%s*\n\n", strings.Join(meta, " · "))
	}
	if r.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", r.Description)
	}

	b.WriteString("## Ingredients\n\n")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "- %s %s\n", ing.Amount, ing.Item)
	}

	b.WriteString("\n## Instructions\n\n")
	for i, step := range r.Instructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}

	n := r.NutritionPerServing
	fmt.Fprintf(&b, "\n## Per serving\n\n%.0f kcal · protein %.0fg · carbs %.0fg · fat %.0fg\n", n.Calories, n.Protein, n.Carbs, n.Fat)
	return b.String()
}

func formatEntry(e nutrition.FoodLogEntry) string {
	if e.IsWater() {
		return fmt.Sprintf("%-9s %s %s", e.MealType, e.Name, e.Portion)
	}
	return fmt.Sprintf("%-9s %s (%s) %.0f kcal · P %.1fg C %.1fg F %.1fg",
		e.MealType, e.Name, e.Portion, e.Calories, e.Macros.Protein, e.Macros.Carbs, e.Macros.Fat)
}
