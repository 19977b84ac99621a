package appstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/fdg312/culinary-hub/internal/nutrition"
	"github.com/fdg312/culinary-hub/internal/recipes"
	"github.com/fdg312/culinary-hub/internal/storage"
)

// State owns the profile, the food log and the saved recipes. It is loaded
// once and every mutation is written through to the store before it becomes
// visible; a failed write leaves the in-memory state unchanged.
type State struct {
	mu      sync.RWMutex
	store   storage.Store
	profile nutrition.Profile
	history []nutrition.FoodLogEntry // newest first
	saved   *recipes.Collection
}

// Load reads all persisted collections, filling defaults for anything
// missing.
func Load(ctx context.Context, store storage.Store) (*State, error) {
	s := &State{store: store}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the store, picking up writes made by another process.
func (s *State) Reload(ctx context.Context) error {
	return s.load(ctx)
}

func (s *State) load(ctx context.Context) error {
	profile, err := s.loadProfile(ctx)
	if err != nil {
		return err
	}

	history := make([]nutrition.FoodLogEntry, 0)
	if _, err := getJSON(ctx, s.store, storage.KeyHistory, &history); err != nil {
		return err
	}

	saved := make([]recipes.Recipe, 0)
	if _, err := getJSON(ctx, s.store, storage.KeySavedRecipes, &saved); err != nil {
		return err
	}

	s.mu.Lock()
	s.profile = profile
	s.history = history
	s.saved = recipes.NewCollection(saved)
	s.mu.Unlock()
	return nil
}

// storedProfile detects fields absent from profiles written by older
// versions.
type storedProfile struct {
	nutrition.Profile
	CaloriesGoalOverride *string               `json:"calories_goal_override"`
	MacroGoalOverrides   *nutrition.MacroGoals `json:"macro_goal_overrides"`
}

func (s *State) loadProfile(ctx context.Context) (nutrition.Profile, error) {
	var raw storedProfile
	found, err := getJSON(ctx, s.store, storage.KeyProfile, &raw)
	if err != nil {
		return nutrition.Profile{}, err
	}
	if !found {
		return nutrition.DefaultProfile(), nil
	}
	return migrateProfile(raw), nil
}

func migrateProfile(raw storedProfile) nutrition.Profile {
	p := raw.Profile

	if raw.MacroGoalOverrides != nil {
		p.MacroGoalOverrides = *raw.MacroGoalOverrides
	} else {
		p.MacroGoalOverrides = nutrition.DefaultMacroGoals
	}

	switch {
	case raw.CaloriesGoalOverride != nil:
		p.CaloriesGoalOverride = *raw.CaloriesGoalOverride
	case raw.MacroGoalOverrides != nil && raw.MacroGoalOverrides.Calories != 0:
		p.CaloriesGoalOverride = strconv.Itoa(raw.MacroGoalOverrides.Calories)
	default:
		p.CaloriesGoalOverride = strconv.Itoa(nutrition.DefaultMacroGoals.Calories)
	}

	if p.Name == "" {
		p.Name = "User"
	}
	return p
}

// Profile returns a copy of the current profile.
func (s *State) Profile() nutrition.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// UpdateProfile applies fn to a copy of the profile and persists the result.
func (s *State) UpdateProfile(ctx context.Context, fn func(*nutrition.Profile)) (nutrition.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.profile
	fn(&next)
	if err := putJSON(ctx, s.store, storage.KeyProfile, next); err != nil {
		return s.profile, err
	}
	s.profile = next
	return next, nil
}

// History returns the food log, newest first.
func (s *State) History() []nutrition.FoodLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEntries(s.history)
}

// AddEntry prepends an entry and persists the log.
func (s *State) AddEntry(ctx context.Context, e nutrition.FoodLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]nutrition.FoodLogEntry, 0, len(s.history)+1)
	next = append(next, cloneEntry(e))
	next = append(next, s.history...)
	if err := putJSON(ctx, s.store, storage.KeyHistory, next); err != nil {
		return err
	}
	s.history = next
	return nil
}

// SavedRecipes returns the saved recipes, newest first.
func (s *State) SavedRecipes() []recipes.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saved.Items()
}

// FindRecipe looks up a saved recipe by exact title.
func (s *State) FindRecipe(title string) (recipes.Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saved.Find(title)
}

// SaveRecipe adds r unless its title is already saved. It reports whether
// the collection changed.
func (s *State) SaveRecipe(ctx context.Context, r recipes.Recipe) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := recipes.NewCollection(s.saved.Items())
	if !next.Save(r) {
		return false, nil
	}
	if err := putJSON(ctx, s.store, storage.KeySavedRecipes, next.Items()); err != nil {
		return false, err
	}
	s.saved = next
	return true, nil
}

// DeleteRecipe removes saved recipes with this exact title.
func (s *State) DeleteRecipe(ctx context.Context, title string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := recipes.NewCollection(s.saved.Items())
	if !next.Delete(title) {
		return false, nil
	}
	if err := putJSON(ctx, s.store, storage.KeySavedRecipes, next.Items()); err != nil {
		return false, err
	}
	s.saved = next
	return true, nil
}

// Dashboard evaluates today's progress; now fixes both the day and its
// time zone.
func (s *State) Dashboard(now time.Time) nutrition.Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nutrition.Dashboard(s.profile, s.history, now)
}

// Today returns the entries logged on now's calendar day, newest first.
func (s *State) Today(now time.Time) []nutrition.FoodLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEntries(nutrition.EntriesOn(s.history, now))
}

// Range aggregates each day between from and to inclusive.
func (s *State) Range(from, to time.Time) []nutrition.DayTotals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nutrition.AggregateRange(s.history, from, to)
}

func getJSON(ctx context.Context, store storage.Store, key string, v any) (bool, error) {
	data, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func putJSON(ctx context.Context, store storage.Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func cloneEntry(e nutrition.FoodLogEntry) nutrition.FoodLogEntry {
	if e.WaterAmountMl != nil {
		v := *e.WaterAmountMl
		e.WaterAmountMl = &v
	}
	return e
}

func cloneEntries(in []nutrition.FoodLogEntry) []nutrition.FoodLogEntry {
	out := make([]nutrition.FoodLogEntry, 0, len(in))
	for _, e := range in {
		out = append(out, cloneEntry(e))
	}
	return out
}
