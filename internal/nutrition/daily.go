package nutrition

import "time"

// DailyTotals is what was consumed on one calendar day.
type DailyTotals struct {
	CaloriesConsumed float64 `json:"calories_consumed"`
	ProteinConsumed  float64 `json:"protein_consumed"`
	CarbsConsumed    float64 `json:"carbs_consumed"`
	FatConsumed      float64 `json:"fat_consumed"`
	WaterConsumedMl  float64 `json:"water_consumed_ml"`
}

// DayTotals pairs a calendar date (YYYY-MM-DD) with its totals.
type DayTotals struct {
	Date    string      `json:"date"`
	Entries int         `json:"entries"`
	Totals  DailyTotals `json:"totals"`
}

// SameDay reports whether the entry timestamp falls on the calendar date of
// ref, evaluated in ref's location.
func SameDay(timestampMs int64, ref time.Time) bool {
	t := time.UnixMilli(timestampMs).In(ref.Location())
	y1, m1, d1 := t.Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// EntriesOn returns the entries logged on ref's calendar date, preserving
// their order.
func EntriesOn(entries []FoodLogEntry, ref time.Time) []FoodLogEntry {
	out := make([]FoodLogEntry, 0)
	for _, e := range entries {
		if SameDay(e.Timestamp, ref) {
			out = append(out, e)
		}
	}
	return out
}

// AggregateDay sums the entries logged on ref's calendar date. Water only
// counts for Water entries, whatever the other entries carry.
func AggregateDay(entries []FoodLogEntry, ref time.Time) DailyTotals {
	var totals DailyTotals
	for _, e := range entries {
		if !SameDay(e.Timestamp, ref) {
			continue
		}
		totals.add(e)
	}
	return totals
}

// AggregateRange returns one DayTotals per calendar day from from to to
// inclusive, in from's location. Days without entries are included with
// zero totals.
func AggregateRange(entries []FoodLogEntry, from, to time.Time) []DayTotals {
	loc := from.Location()
	start := startOfDay(from)
	end := startOfDay(to.In(loc))
	if end.Before(start) {
		return []DayTotals{}
	}

	index := make(map[string]int)
	days := make([]DayTotals, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		index[key] = len(days)
		days = append(days, DayTotals{Date: key})
	}

	for _, e := range entries {
		key := time.UnixMilli(e.Timestamp).In(loc).Format("2006-01-02")
		i, ok := index[key]
		if !ok {
			continue
		}
		days[i].Entries++
		days[i].Totals.add(e)
	}
	return days
}

func (t *DailyTotals) add(e FoodLogEntry) {
	t.CaloriesConsumed += e.Calories
	t.ProteinConsumed += e.Macros.Protein
	t.CarbsConsumed += e.Macros.Carbs
	t.FatConsumed += e.Macros.Fat
	if e.IsWater() && e.WaterAmountMl != nil {
		t.WaterConsumedMl += *e.WaterAmountMl
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
