package nutrition

import "testing"

func metricsProfile(goal HealthGoal, activity ActivityLevel, override string) Profile {
	return Profile{
		Age:                  "28",
		HeightCm:             "170",
		WeightKg:             "65",
		HealthGoal:           goal,
		ActivityLevel:        activity,
		CaloriesGoalOverride: override,
		MacroGoalOverrides:   DefaultMacroGoals,
	}
}

func TestResolveTargets_Fallback(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    Targets
	}{
		{
			name: "non-numeric age, blank override",
			profile: Profile{
				Age: "x", HeightCm: "170", WeightKg: "65",
				MacroGoalOverrides: MacroGoals{Protein: 150, Carbs: 250, Fat: 70, Calories: 2200},
			},
			want: Targets{Calories: 2000, ProteinG: 150, CarbsG: 250, FatG: 70},
		},
		{
			name: "blank weight with override",
			profile: Profile{
				Age: "30", HeightCm: "180", WeightKg: "", CaloriesGoalOverride: "1800",
				MacroGoalOverrides: MacroGoals{Protein: 120, Carbs: 200, Fat: 60},
			},
			want: Targets{Calories: 1800, ProteinG: 120, CarbsG: 200, FatG: 60},
		},
		{
			name: "negative override ignored",
			profile: Profile{
				HeightCm: "abc", CaloriesGoalOverride: "-100",
				MacroGoalOverrides: MacroGoals{Protein: 10, Carbs: 20, Fat: 30},
			},
			want: Targets{Calories: 2000, ProteinG: 10, CarbsG: 20, FatG: 30},
		},
		{
			name: "negative macro goals clamp to zero",
			profile: Profile{
				MacroGoalOverrides: MacroGoals{Protein: -5, Carbs: 20, Fat: -1},
			},
			want: Targets{Calories: 2000, ProteinG: 0, CarbsG: 20, FatG: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTargets(tt.profile)
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestResolveTargets_Computed(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    Targets
	}{
		{
			name:    "maintenance moderate",
			profile: metricsProfile(GoalMaintenance, ActivityModerate, ""),
			want:    Targets{Calories: 2437, ProteinG: 152, CarbsG: 305, FatG: 68},
		},
		{
			name:    "weight loss sedentary",
			profile: metricsProfile(GoalWeightLoss, ActivitySedentary, ""),
			want:    Targets{Calories: 1387, ProteinG: 104, CarbsG: 139, FatG: 46},
		},
		{
			name:    "muscle gain very active display spelling",
			profile: metricsProfile("Muscle Gain", "Very Active", ""),
			want:    Targets{Calories: 3338, ProteinG: 292, CarbsG: 375, FatG: 74},
		},
		{
			name:    "athletic performance has no adjustment",
			profile: metricsProfile(GoalAthleticPerformance, ActivityModerate, ""),
			want:    Targets{Calories: 2437, ProteinG: 152, CarbsG: 305, FatG: 68},
		},
		{
			name:    "metrics with units still parse",
			profile: Profile{Age: "28 years", HeightCm: "170cm", WeightKg: "65kg", HealthGoal: GoalMaintenance},
			want:    Targets{Calories: 2437, ProteinG: 152, CarbsG: 305, FatG: 68},
		},
		{
			name:    "implausible metrics clamp to zero",
			profile: Profile{Age: "120", HeightCm: "1", WeightKg: "1", HealthGoal: GoalWeightLoss},
			want:    Targets{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTargets(tt.profile)
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestResolveTargets_ExtremeMetricsStayNonNegative(t *testing.T) {
	tests := []struct {
		name         string
		weight       string
		height       string
		age          string
		wantCalories int
	}{
		{"huge weight", "1e300", "170", "28", MaxCalories},
		{"weight overflows to infinity", "1e308", "170", "28", MaxCalories},
		{"opposing infinities", "-1e308", "1e308", "28", 0},
		{"huge age", "65", "170", "1e300", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProfile()
			p.WeightKg, p.HeightCm, p.Age = tt.weight, tt.height, tt.age
			p.CaloriesGoalOverride = ""

			got := ResolveTargets(p)
			if got.Calories != tt.wantCalories {
				t.Fatalf("expected calories %d, got %+v", tt.wantCalories, got)
			}
			if got.ProteinG < 0 || got.CarbsG < 0 || got.FatG < 0 {
				t.Fatalf("expected non-negative macros, got %+v", got)
			}
			if pct := Evaluate(got, DailyTotals{CaloriesConsumed: 500}).Calories.Percent; pct < 0 || pct > 100 {
				t.Fatalf("percent out of range: %v", pct)
			}
		})
	}
}

func TestResolveTargets_OverridePrecedence(t *testing.T) {
	for _, goal := range HealthGoals {
		got := ResolveTargets(metricsProfile(goal, ActivityVeryActive, "1800"))
		if got.Calories != 1800 {
			t.Errorf("goal %s: expected calories 1800, got %d", goal, got.Calories)
		}
	}

	got := ResolveTargets(metricsProfile(GoalMaintenance, ActivityModerate, "1800"))
	want := Targets{Calories: 1800, ProteinG: 113, CarbsG: 225, FatG: 50}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestResolveTargets_IgnoredOverrides(t *testing.T) {
	computed := ResolveTargets(metricsProfile(GoalMaintenance, ActivityModerate, ""))
	for _, override := range []string{"0", "-250", "abc", "   "} {
		got := ResolveTargets(metricsProfile(GoalMaintenance, ActivityModerate, override))
		if got != computed {
			t.Errorf("override %q: expected computed %+v, got %+v", override, computed, got)
		}
	}
}

func TestResolveTargets_MuscleGainSplit(t *testing.T) {
	got := ResolveTargets(metricsProfile(GoalMuscleGain, ActivityModerate, "2000"))
	want := Targets{Calories: 2000, ProteinG: 175, CarbsG: 225, FatG: 44}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestResolveTargets_ActivityDefault(t *testing.T) {
	moderate := ResolveTargets(metricsProfile(GoalMaintenance, ActivityModerate, ""))
	for _, level := range []ActivityLevel{"", "Bogus", "moderate"} {
		got := ResolveTargets(metricsProfile(GoalMaintenance, level, ""))
		if got != moderate {
			t.Errorf("activity %q: expected %+v, got %+v", level, moderate, got)
		}
	}
}

func TestResolveTargets_UnknownGoalBehavesLikeMaintenance(t *testing.T) {
	maintenance := ResolveTargets(metricsProfile(GoalMaintenance, ActivityLight, ""))
	got := ResolveTargets(metricsProfile("Bulking Season", ActivityLight, ""))
	if got != maintenance {
		t.Fatalf("expected %+v, got %+v", maintenance, got)
	}
}

func TestResolveTargets_Idempotent(t *testing.T) {
	profiles := []Profile{
		DefaultProfile(),
		metricsProfile(GoalWeightLoss, ActivityActive, ""),
		{Age: "x"},
	}
	for _, p := range profiles {
		first := ResolveTargets(p)
		second := ResolveTargets(p)
		if first != second {
			t.Fatalf("expected identical results, got %+v and %+v", first, second)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"65", 65, true},
		{" 65.5 kg", 65.5, true},
		{".5", 0.5, true},
		{"-3", -3, true},
		{"", 0, false},
		{"abc", 0, false},
		{"1e999", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseNumber(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseInteger(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"1800", 1800, true},
		{"1800.9", 1800, true},
		{"2200 kcal", 2200, true},
		{"-5", -5, true},
		{"kcal", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseInteger(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseInteger(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseEnums(t *testing.T) {
	if g, ok := ParseHealthGoal("weight loss"); !ok || g != GoalWeightLoss {
		t.Errorf("expected WeightLoss, got %q ok=%v", g, ok)
	}
	if a, ok := ParseActivityLevel("very_active"); !ok || a != ActivityVeryActive {
		t.Errorf("expected VeryActive, got %q ok=%v", a, ok)
	}
	if _, ok := ParseActivityLevel("couch"); ok {
		t.Error("expected unknown activity level to report false")
	}
	if m, ok := ParseMealType("water"); !ok || m != MealWater {
		t.Errorf("expected Water, got %q ok=%v", m, ok)
	}
}
