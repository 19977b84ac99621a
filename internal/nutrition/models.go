package nutrition

import "strings"

// HealthGoal is the user's nutrition goal. Values outside the known set are
// kept as entered and treated as "no adjustment" by the resolver.
type HealthGoal string

const (
	GoalWeightLoss          HealthGoal = "WeightLoss"
	GoalMuscleGain          HealthGoal = "MuscleGain"
	GoalMaintenance         HealthGoal = "Maintenance"
	GoalAthleticPerformance HealthGoal = "AthleticPerformance"
)

// HealthGoals lists the goals in display order.
var HealthGoals = []HealthGoal{GoalWeightLoss, GoalMuscleGain, GoalMaintenance, GoalAthleticPerformance}

// ActivityLevel scales BMR into TDEE.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "Sedentary"
	ActivityLight      ActivityLevel = "Light"
	ActivityModerate   ActivityLevel = "Moderate"
	ActivityActive     ActivityLevel = "Active"
	ActivityVeryActive ActivityLevel = "VeryActive"
)

// ActivityLevels lists the levels from least to most active.
var ActivityLevels = []ActivityLevel{ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive}

// MealType classifies a log entry.
type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealSnack     MealType = "Snack"
	MealWater     MealType = "Water"
)

// MealTypes lists every meal type in the order the logger offers them.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack, MealWater}

// MacroGoals are the manually entered targets used when physical metrics are
// missing.
type MacroGoals struct {
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
	Calories int `json:"calories"`
}

// DefaultMacroGoals are applied to new profiles and to stored profiles that
// predate manual macro goals.
var DefaultMacroGoals = MacroGoals{Protein: 150, Carbs: 250, Fat: 70, Calories: 2200}

// Profile is the user's health and goal configuration. Physical metrics and
// the calorie override are kept as entered; see ParseNumber.
type Profile struct {
	Name                 string        `json:"name"`
	Email                string        `json:"email"`
	Contact              string        `json:"contact"`
	Age                  string        `json:"age"`
	DOB                  string        `json:"dob"`
	HeightCm             string        `json:"height_cm"`
	WeightKg             string        `json:"weight_kg"`
	HealthGoal           HealthGoal    `json:"health_goal"`
	Allergies            string        `json:"allergies"`
	ActivityLevel        ActivityLevel `json:"activity_level"`
	CaloriesGoalOverride string        `json:"calories_goal_override"`
	MacroGoalOverrides   MacroGoals    `json:"macro_goal_overrides"`
}

// DefaultProfile returns the profile created on first run.
func DefaultProfile() Profile {
	return Profile{
		Name:                 "User",
		Age:                  "28",
		HeightCm:             "170",
		WeightKg:             "65",
		HealthGoal:           GoalMaintenance,
		ActivityLevel:        ActivityModerate,
		CaloriesGoalOverride: "2200",
		MacroGoalOverrides:   DefaultMacroGoals,
	}
}

// HasMetrics reports whether age, height and weight all parse as numbers,
// i.e. whether ResolveTargets takes the computed path.
func (p Profile) HasMetrics() bool {
	_, okW := ParseNumber(p.WeightKg)
	_, okH := ParseNumber(p.HeightCm)
	_, okA := ParseNumber(p.Age)
	return okW && okH && okA
}

// Macros are grams of protein, carbohydrate and fat.
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// FoodLogEntry is one recorded consumption event. Entries are immutable once
// created.
type FoodLogEntry struct {
	ID             string   `json:"id"`
	Timestamp      int64    `json:"timestamp"` // unix milliseconds
	MealType       MealType `json:"meal_type"`
	Name           string   `json:"name"`
	Portion        string   `json:"portion"`
	Calories       float64  `json:"calories"`
	Macros         Macros   `json:"macros"`
	ImageReference string   `json:"image_reference,omitempty"`
	WaterAmountMl  *float64 `json:"water_amount_ml,omitempty"`
}

// IsWater reports whether the entry is a water intake.
func (e FoodLogEntry) IsWater() bool {
	return e.MealType == MealWater
}

// Targets is the resolved daily goal set.
type Targets struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

// ParseHealthGoal maps canonical and display spellings ("Weight Loss",
// "weight_loss") onto a known goal.
func ParseHealthGoal(s string) (HealthGoal, bool) {
	key := enumKey(s)
	for _, g := range HealthGoals {
		if enumKey(string(g)) == key {
			return g, true
		}
	}
	return HealthGoal(s), false
}

// ParseActivityLevel maps canonical and display spellings ("Very Active")
// onto a known level.
func ParseActivityLevel(s string) (ActivityLevel, bool) {
	key := enumKey(s)
	for _, a := range ActivityLevels {
		if enumKey(string(a)) == key {
			return a, true
		}
	}
	return ActivityLevel(s), false
}

// ParseMealType maps a case-insensitive name onto a meal type.
func ParseMealType(s string) (MealType, bool) {
	key := enumKey(s)
	for _, m := range MealTypes {
		if enumKey(string(m)) == key {
			return m, true
		}
	}
	return MealType(s), false
}

func enumKey(s string) string {
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}
