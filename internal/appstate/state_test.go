package appstate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fdg312/culinary-hub/internal/nutrition"
	"github.com/fdg312/culinary-hub/internal/recipes"
	"github.com/fdg312/culinary-hub/internal/storage"
	"github.com/fdg312/culinary-hub/internal/storage/memory"
)

func loadState(t *testing.T, store storage.Store) *State {
	t.Helper()
	s, err := Load(context.Background(), store)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func TestLoad_EmptyStoreUsesDefaults(t *testing.T) {
	s := loadState(t, memory.New())

	if s.Profile() != nutrition.DefaultProfile() {
		t.Fatalf("expected default profile, got %+v", s.Profile())
	}
	if len(s.History()) != 0 || len(s.SavedRecipes()) != 0 {
		t.Fatal("expected empty history and recipes")
	}
}

func TestLoad_MigratesLegacyProfile(t *testing.T) {
	tests := []struct {
		name         string
		stored       string
		wantOverride string
		wantMacros   nutrition.MacroGoals
	}{
		{
			name:         "no goals at all",
			stored:       `{"name":"Ann","age":"30"}`,
			wantOverride: "2200",
			wantMacros:   nutrition.DefaultMacroGoals,
		},
		{
			name:         "macro goals without calorie override",
			stored:       `{"name":"Ann","macro_goal_overrides":{"protein":100,"carbs":200,"fat":50,"calories":1900}}`,
			wantOverride: "1900",
			wantMacros:   nutrition.MacroGoals{Protein: 100, Carbs: 200, Fat: 50, Calories: 1900},
		},
		{
			name:         "explicit empty override kept",
			stored:       `{"name":"Ann","calories_goal_override":"","macro_goal_overrides":{"protein":1,"carbs":2,"fat":3,"calories":4}}`,
			wantOverride: "",
			wantMacros:   nutrition.MacroGoals{Protein: 1, Carbs: 2, Fat: 3, Calories: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.New()
			_ = store.Put(context.Background(), storage.KeyProfile, []byte(tt.stored))

			p := loadState(t, store).Profile()
			if p.Name != "Ann" {
				t.Errorf("expected name kept, got %q", p.Name)
			}
			if p.CaloriesGoalOverride != tt.wantOverride {
				t.Errorf("expected override %q, got %q", tt.wantOverride, p.CaloriesGoalOverride)
			}
			if p.MacroGoalOverrides != tt.wantMacros {
				t.Errorf("expected macros %+v, got %+v", tt.wantMacros, p.MacroGoalOverrides)
			}
		})
	}
}

func TestLoad_CorruptDocument(t *testing.T) {
	store := memory.New()
	_ = store.Put(context.Background(), storage.KeyHistory, []byte("{not json"))
	if _, err := Load(context.Background(), store); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestAddEntry_PersistsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	s := loadState(t, store)

	first := nutrition.FoodLogEntry{ID: "1", Name: "Toast", Timestamp: 1000}
	second := nutrition.FoodLogEntry{ID: "2", Name: "Tea", Timestamp: 2000}
	if err := s.AddEntry(ctx, first); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if err := s.AddEntry(ctx, second); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	history := loadState(t, store).History()
	if len(history) != 2 || history[0].ID != "2" || history[1].ID != "1" {
		t.Fatalf("expected [2 1] after reload, got %+v", history)
	}
}

func TestMutations_RollBackOnWriteFailure(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	s := loadState(t, store)
	boom := errors.New("disk full")
	store.SetFailPut(boom)

	if err := s.AddEntry(ctx, nutrition.FoodLogEntry{ID: "x"}); !errors.Is(err, boom) {
		t.Fatalf("expected write error, got %v", err)
	}
	if len(s.History()) != 0 {
		t.Fatal("expected entry rolled back")
	}

	if _, err := s.UpdateProfile(ctx, func(p *nutrition.Profile) { p.Name = "Bob" }); !errors.Is(err, boom) {
		t.Fatalf("expected write error, got %v", err)
	}
	if s.Profile().Name != "User" {
		t.Fatalf("expected profile unchanged, got %q", s.Profile().Name)
	}

	if _, err := s.SaveRecipe(ctx, recipes.Recipe{Title: "Soup"}); !errors.Is(err, boom) {
		t.Fatalf("expected write error, got %v", err)
	}
	if len(s.SavedRecipes()) != 0 {
		t.Fatal("expected recipe rolled back")
	}
}

func TestRecipes_SaveDeleteAndReload(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	s := loadState(t, store)

	if ok, err := s.SaveRecipe(ctx, recipes.Recipe{Title: "Soup"}); err != nil || !ok {
		t.Fatalf("SaveRecipe: ok=%v err=%v", ok, err)
	}
	if ok, err := s.SaveRecipe(ctx, recipes.Recipe{Title: "Soup"}); err != nil || ok {
		t.Fatalf("expected duplicate to be a no-op: ok=%v err=%v", ok, err)
	}
	if ok, _ := s.SaveRecipe(ctx, recipes.Recipe{Title: "Curry"}); !ok {
		t.Fatal("expected Curry saved")
	}

	reloaded := loadState(t, store)
	titles := []string{}
	for _, r := range reloaded.SavedRecipes() {
		titles = append(titles, r.Title)
	}
	if len(titles) != 2 || titles[0] != "Curry" || titles[1] != "Soup" {
		t.Fatalf("expected [Curry Soup], got %v", titles)
	}

	if ok, err := reloaded.DeleteRecipe(ctx, "Soup"); err != nil || !ok {
		t.Fatalf("DeleteRecipe: ok=%v err=%v", ok, err)
	}
	if _, found := loadState(t, store).FindRecipe("Soup"); found {
		t.Fatal("expected Soup deleted after reload")
	}
}

func TestHistory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := loadState(t, memory.New())
	ml := 250.0
	_ = s.AddEntry(ctx, nutrition.FoodLogEntry{ID: "w", MealType: nutrition.MealWater, WaterAmountMl: &ml})

	h := s.History()
	*h[0].WaterAmountMl = 9999
	h[0].Name = "changed"

	again := s.History()
	if *again[0].WaterAmountMl != 250 || again[0].Name != "" {
		t.Fatalf("expected stored entry untouched, got %+v", again[0])
	}
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	s := loadState(t, memory.New())
	now := time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC)

	_ = s.AddEntry(ctx, nutrition.FoodLogEntry{ID: "a", Timestamp: now.Add(-time.Hour).UnixMilli(), MealType: nutrition.MealLunch, Calories: 1100})
	_ = s.AddEntry(ctx, nutrition.FoodLogEntry{ID: "b", Timestamp: now.AddDate(0, 0, -1).UnixMilli(), MealType: nutrition.MealLunch, Calories: 999})

	p := s.Dashboard(now)
	if p.Targets.Calories != 2200 {
		t.Fatalf("expected default override 2200, got %d", p.Targets.Calories)
	}
	if p.Calories.Percent != 50 {
		t.Fatalf("expected 50%%, got %v", p.Calories.Percent)
	}
	if len(s.Today(now)) != 1 {
		t.Fatalf("expected 1 entry today, got %d", len(s.Today(now)))
	}
}
