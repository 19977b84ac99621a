package nutrition

import "math"

const (
	// FallbackCalories is used when metrics are missing and no positive
	// override is set.
	FallbackCalories = 2000

	// MaxCalories caps computed targets so absurd metrics stay representable.
	MaxCalories = math.MaxInt32

	weightLossAdjustmentKcal = -500
	muscleGainAdjustmentKcal = 350

	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

type macroRatio struct {
	protein float64
	carbs   float64
	fat     float64
}

var (
	defaultRatio    = macroRatio{protein: 0.25, carbs: 0.50, fat: 0.25}
	muscleGainRatio = macroRatio{protein: 0.35, carbs: 0.45, fat: 0.20}
	weightLossRatio = macroRatio{protein: 0.30, carbs: 0.40, fat: 0.30}
)

// ActivityMultiplier returns the TDEE multiplier for a level. Unknown or
// empty levels use Moderate.
func ActivityMultiplier(level ActivityLevel) float64 {
	if known, ok := ParseActivityLevel(string(level)); ok {
		return activityMultipliers[known]
	}
	return activityMultipliers[ActivityModerate]
}

// BMR is the sex-agnostic basal metabolic estimate used by the resolver.
// It omits the Mifflin-St Jeor sex constant.
func BMR(weightKg, heightCm, ageYears float64) float64 {
	return 10*weightKg + 6.25*heightCm - 5*ageYears
}

// ResolveTargets derives daily calorie and macro targets from a profile.
// It never fails: when age, height or weight do not parse it returns the
// calorie override (or FallbackCalories) and the manual macro goals.
func ResolveTargets(p Profile) Targets {
	weight, okW := ParseNumber(p.WeightKg)
	height, okH := ParseNumber(p.HeightCm)
	age, okA := ParseNumber(p.Age)

	if !okW || !okH || !okA {
		calories := FallbackCalories
		if override, ok := positiveOverride(p.CaloriesGoalOverride); ok {
			calories = override
		}
		return Targets{
			Calories: calories,
			ProteinG: nonNegative(p.MacroGoalOverrides.Protein),
			CarbsG:   nonNegative(p.MacroGoalOverrides.Carbs),
			FatG:     nonNegative(p.MacroGoalOverrides.Fat),
		}
	}

	goal, _ := ParseHealthGoal(string(p.HealthGoal))

	tdee := BMR(weight, height, age) * ActivityMultiplier(p.ActivityLevel)
	calories := tdee + goalAdjustment(goal)

	if override, ok := positiveOverride(p.CaloriesGoalOverride); ok {
		calories = float64(override)
	}
	calories = clampCalories(calories)

	ratio := ratioFor(goal)
	return Targets{
		Calories: roundInt(calories),
		ProteinG: roundInt(calories * ratio.protein / kcalPerGramProtein),
		CarbsG:   roundInt(calories * ratio.carbs / kcalPerGramCarbs),
		FatG:     roundInt(calories * ratio.fat / kcalPerGramFat),
	}
}

func goalAdjustment(goal HealthGoal) float64 {
	switch goal {
	case GoalWeightLoss:
		return weightLossAdjustmentKcal
	case GoalMuscleGain:
		return muscleGainAdjustmentKcal
	default:
		return 0
	}
}

func ratioFor(goal HealthGoal) macroRatio {
	switch goal {
	case GoalMuscleGain:
		return muscleGainRatio
	case GoalWeightLoss:
		return weightLossRatio
	default:
		return defaultRatio
	}
}

func clampCalories(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, MaxCalories)
}

// roundInt rounds into [0, MaxCalories]; every target fits that range.
func roundInt(v float64) int {
	return int(math.Round(clampCalories(v)))
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
