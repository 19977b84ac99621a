package nutrition

import (
	"math"
	"time"
)

// WaterTargetMl is the fixed daily hydration goal.
const WaterTargetMl = 2500

// Percent is consumed as a share of target, kept within [0, 100]. A zero
// or negative target yields 0.
func Percent(consumed, target float64) float64 {
	if target <= 0 || math.IsNaN(consumed) {
		return 0
	}
	return math.Max(0, math.Min(100, consumed/target*100))
}

// Metric is one progress bar: the raw numbers plus the capped percentage.
type Metric struct {
	Consumed float64 `json:"consumed"`
	Target   float64 `json:"target"`
	Percent  float64 `json:"percent"`
}

// Remaining is target minus consumed; negative when over target.
func (m Metric) Remaining() float64 {
	return m.Target - m.Consumed
}

// Ratio is the uncapped consumed/target ratio, or 0 for a zero target.
func (m Metric) Ratio() float64 {
	if m.Target <= 0 {
		return 0
	}
	return m.Consumed / m.Target
}

func newMetric(consumed, target float64) Metric {
	return Metric{Consumed: consumed, Target: target, Percent: Percent(consumed, target)}
}

// Progress is today's dashboard.
type Progress struct {
	Targets  Targets     `json:"targets"`
	Totals   DailyTotals `json:"totals"`
	Calories Metric      `json:"calories"`
	Protein  Metric      `json:"protein"`
	Carbs    Metric      `json:"carbs"`
	Fat      Metric      `json:"fat"`
	Water    Metric      `json:"water"`
}

// Evaluate combines resolved targets with consumed totals.
func Evaluate(targets Targets, totals DailyTotals) Progress {
	return Progress{
		Targets:  targets,
		Totals:   totals,
		Calories: newMetric(totals.CaloriesConsumed, float64(targets.Calories)),
		Protein:  newMetric(totals.ProteinConsumed, float64(targets.ProteinG)),
		Carbs:    newMetric(totals.CarbsConsumed, float64(targets.CarbsG)),
		Fat:      newMetric(totals.FatConsumed, float64(targets.FatG)),
		Water:    newMetric(totals.WaterConsumedMl, WaterTargetMl),
	}
}

// Dashboard resolves the profile's targets and today's totals relative to
// now and evaluates them together.
func Dashboard(p Profile, entries []FoodLogEntry, now time.Time) Progress {
	return Evaluate(ResolveTargets(p), AggregateDay(entries, now))
}
