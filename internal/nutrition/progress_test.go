package nutrition

import (
	"math"
	"testing"
	"time"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name     string
		consumed float64
		target   float64
		want     float64
	}{
		{"half", 1000, 2000, 50},
		{"over target caps", 3000, 2000, 100},
		{"zero target", 500, 0, 0},
		{"negative target", 500, -10, 0},
		{"nothing consumed", 0, 2000, 0},
		{"nan consumed", math.NaN(), 2000, 0},
		{"negative consumed floors at zero", -500, 2000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(tt.consumed, tt.target); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	targets := Targets{Calories: 2000, ProteinG: 150, CarbsG: 0, FatG: 70}
	totals := DailyTotals{
		CaloriesConsumed: 3000,
		ProteinConsumed:  75,
		CarbsConsumed:    40,
		FatConsumed:      35,
		WaterConsumedMl:  1250,
	}

	got := Evaluate(targets, totals)

	if got.Calories.Percent != 100 {
		t.Errorf("calories: expected 100, got %v", got.Calories.Percent)
	}
	if got.Calories.Remaining() != -1000 {
		t.Errorf("calories remaining: expected -1000, got %v", got.Calories.Remaining())
	}
	if got.Calories.Ratio() != 1.5 {
		t.Errorf("calories ratio: expected 1.5, got %v", got.Calories.Ratio())
	}
	if got.Protein.Percent != 50 {
		t.Errorf("protein: expected 50, got %v", got.Protein.Percent)
	}
	if got.Carbs.Percent != 0 || got.Carbs.Ratio() != 0 {
		t.Errorf("carbs with zero target: expected 0, got %+v", got.Carbs)
	}
	if got.Fat.Percent != 50 {
		t.Errorf("fat: expected 50, got %v", got.Fat.Percent)
	}
	if got.Water.Target != WaterTargetMl || got.Water.Percent != 50 {
		t.Errorf("water: expected 50%% of %d, got %+v", WaterTargetMl, got.Water)
	}
}

func TestDashboard(t *testing.T) {
	now := time.Date(2024, 7, 1, 19, 0, 0, 0, time.UTC)
	p := DefaultProfile()
	p.CaloriesGoalOverride = "2000"
	p.HealthGoal = GoalMaintenance

	entries := []FoodLogEntry{
		foodEntry(now.Add(-2*time.Hour), MealDinner, 1000, 62.5, 125, 27.75),
		waterEntry(now.Add(-time.Hour), 2500),
		foodEntry(now.AddDate(0, 0, -1), MealDinner, 5000, 0, 0, 0),
	}

	got := Dashboard(p, entries, now)
	if got.Targets.Calories != 2000 {
		t.Fatalf("expected calorie target 2000, got %d", got.Targets.Calories)
	}
	if got.Calories.Percent != 50 {
		t.Errorf("calories: expected 50, got %v", got.Calories.Percent)
	}
	if got.Protein.Percent != 50 {
		t.Errorf("protein: expected 50 of 125g, got %v", got.Protein.Percent)
	}
	if got.Water.Percent != 100 {
		t.Errorf("water: expected 100, got %v", got.Water.Percent)
	}
}
