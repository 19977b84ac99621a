package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fdg312/culinary-hub/internal/app"
	"github.com/fdg312/culinary-hub/internal/auth"
	"github.com/fdg312/culinary-hub/internal/foodlog"
	"github.com/fdg312/culinary-hub/internal/nutrition"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log food or water",
}

var logInput struct {
	meal     string
	name     string
	portion  string
	calories float64
	protein  float64
	carbs    float64
	fat      float64
	dryRun   bool
}

var logTextCmd = &cobra.Command{
	Use:   "text <description>",
	Short: "Describe what you ate and log the AI estimate",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		meal, err := mealFlag()
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, a *app.App, _ *auth.Session) error {
			draft, err := a.FoodLog.AnalyzeText(ctx, strings.Join(args, " "))
			if err != nil {
				return analysisError(err)
			}
			return confirmDraft(ctx, cmd, a, draft, meal)
		})
	},
}

var logPhotoCmd = &cobra.Command{
	Use:   "photo <image-file>",
	Short: "Log a meal from a photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		meal, err := mealFlag()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read photo: %w", err)
		}
		return withSession(cmd, func(ctx context.Context, a *app.App, _ *auth.Session) error {
			draft, err := a.FoodLog.AnalyzeImage(ctx, data, "")
			if err != nil {
				return analysisError(err)
			}
			return confirmDraft(ctx, cmd, a, draft, meal)
		})
	},
}

var logWaterCmd = &cobra.Command{
	Use:   "water [ml]",
	Short: "Log a glass of water (default amount from INTAKES_WATER_DEFAULT_ADD_ML)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, a *app.App, _ *auth.Session) error {
			amount := float64(a.FoodLog.DefaultWaterMl())
			if len(args) == 1 {
				v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(args[0]), "ml"), 64)
				if err != nil {
					return fmt.Errorf("invalid amount %q", args[0])
				}
				amount = v
			}
			entry, err := a.FoodLog.AddWater(ctx, amount)
			if errors.Is(err, foodlog.ErrDailyWaterLimit) {
				return &userError{msg: fmt.Sprintf("That would exceed the daily water limit of %d ml.", a.Config.IntakesMaxWaterMlPerDay), err: err}
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s\n", entry.Portion)
			p := a.State.Dashboard(nowFunc())
			fmt.Fprintln(cmd.OutOrStdout(), metricLine("Water", p.Water, " ml"))
			return nil
		})
	},
}

func mealFlag() (nutrition.MealType, error) {
	meal, ok := nutrition.ParseMealType(logInput.meal)
	if !ok {
		return "", fmt.Errorf("unknown --meal %q (expected Breakfast, Lunch, Dinner or Snack)", logInput.meal)
	}
	if meal == nutrition.MealWater {
		return "", errors.New("use `culinary log water` to log water")
	}
	return meal, nil
}

func analysisError(err error) error {
	if errors.Is(err, foodlog.ErrEmptyInput) {
		return errors.New("nothing to analyze")
	}
	return failed("Food analysis", err)
}

// confirmDraft applies flag edits to the analyzed draft and logs it.
func confirmDraft(ctx context.Context, cmd *cobra.Command, a *app.App, d foodlog.Draft, meal nutrition.MealType) error {
	f := cmd.Flags()
	if f.Changed("name") {
		d.Name = logInput.name
	}
	if f.Changed("portion") {
		d.Portion = logInput.portion
	}
	if f.Changed("calories") {
		d.Calories = logInput.calories
	}
	if f.Changed("protein") {
		d.Macros.Protein = logInput.protein
	}
	if f.Changed("carbs") {
		d.Macros.Carbs = logInput.carbs
	}
	if f.Changed("fat") {
		d.Macros.Fat = logInput.fat
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s): %.0f kcal · P %.1fg C %.1fg F %.1fg\n",
		d.Name, d.Portion, d.Calories, d.Macros.Protein, d.Macros.Carbs, d.Macros.Fat)
	if d.Message != "" {
		fmt.Fprintln(out, mutedStyle.Render(d.Message))
	}
	if d.NeedsQuantity {
		fmt.Fprintln(out, mutedStyle.Render("Tip: add a quantity (e.g. \"2 eggs\") or pass --portion for a better estimate."))
	}
	if logInput.dryRun {
		fmt.Fprintln(out, "Not logged (--dry-run)")
		return nil
	}

	entry, err := a.FoodLog.Confirm(ctx, d, meal)
	if errors.Is(err, foodlog.ErrInvalidAmount) {
		return &userError{msg: "Calories and macros must not be negative.", err: err}
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Logged %s as %s\n", entry.Name, entry.MealType)
	if entry.ImageReference != "" {
		fmt.Fprintf(out, "Photo stored at %s\n", entry.ImageReference)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logTextCmd, logPhotoCmd, logWaterCmd)

	for _, c := range []*cobra.Command{logTextCmd, logPhotoCmd} {
		f := c.Flags()
		f.StringVarP(&logInput.meal, "meal", "m", string(nutrition.MealBreakfast), "Meal type: Breakfast, Lunch, Dinner or Snack")
		f.StringVar(&logInput.name, "name", "", "Override the detected name")
		f.StringVar(&logInput.portion, "portion", "", "Override the detected portion")
		f.Float64Var(&logInput.calories, "calories", 0, "Override calories")
		f.Float64Var(&logInput.protein, "protein", 0, "Override protein grams")
		f.Float64Var(&logInput.carbs, "carbs", 0, "Override carbs grams")
		f.Float64Var(&logInput.fat, "fat", 0, "Override fat grams")
		f.BoolVar(&logInput.dryRun, "dry-run", false, "Show the estimate without logging it")
	}
}
