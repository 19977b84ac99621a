package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fdg312/culinary-hub/internal/app"
	"github.com/fdg312/culinary-hub/internal/auth"
	"github.com/fdg312/culinary-hub/internal/nutrition"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your health profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, a *app.App, _ *auth.Session) error {
			printProfile(cmd, a.State.Profile())
			return nil
		})
	},
}

var profileInput struct {
	name, email, contact, age, dob, height, weight string
	goal, activity, allergies, calories           string
	protein, carbs, fat, macroCalories            int
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	Long:  "Update profile fields. Only the flags you pass are changed. Age, height, weight and the calorie override are free text; values that do not parse as numbers make targets fall back to the manual macro goals.",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()

		var goal nutrition.HealthGoal
		if f.Changed("goal") {
			g, ok := nutrition.ParseHealthGoal(profileInput.goal)
			if !ok {
				return fmt.Errorf("unknown --goal %q (expected one of %s)", profileInput.goal, joinGoals())
			}
			goal = g
		}
		var activity nutrition.ActivityLevel
		if f.Changed("activity") {
			l, ok := nutrition.ParseActivityLevel(profileInput.activity)
			if !ok {
				return fmt.Errorf("unknown --activity %q (expected one of %s)", profileInput.activity, joinLevels())
			}
			activity = l
		}
		for _, name := range []string{"protein", "carbs", "fat", "macro-calories"} {
			if v, _ := f.GetInt(name); f.Changed(name) && v < 0 {
				return fmt.Errorf("--%s must be >= 0", name)
			}
		}

		return withSession(cmd, func(ctx context.Context, a *app.App, _ *auth.Session) error {
			updated, err := a.State.UpdateProfile(ctx, func(p *nutrition.Profile) {
				setIfChanged(cmd, "name", &p.Name, profileInput.name)
				setIfChanged(cmd, "email", &p.Email, profileInput.email)
				setIfChanged(cmd, "contact", &p.Contact, profileInput.contact)
				setIfChanged(cmd, "age", &p.Age, profileInput.age)
				setIfChanged(cmd, "dob", &p.DOB, profileInput.dob)
				setIfChanged(cmd, "height", &p.HeightCm, profileInput.height)
				setIfChanged(cmd, "weight", &p.WeightKg, profileInput.weight)
				setIfChanged(cmd, "allergies", &p.Allergies, profileInput.allergies)
				setIfChanged(cmd, "calories", &p.CaloriesGoalOverride, profileInput.calories)
				if goal != "" {
					p.HealthGoal = goal
				}
				if activity != "" {
					p.ActivityLevel = activity
				}
				if f.Changed("protein") {
					p.MacroGoalOverrides.Protein = profileInput.protein
				}
				if f.Changed("carbs") {
					p.MacroGoalOverrides.Carbs = profileInput.carbs
				}
				if f.Changed("fat") {
					p.MacroGoalOverrides.Fat = profileInput.fat
				}
				if f.Changed("macro-calories") {
					p.MacroGoalOverrides.Calories = profileInput.macroCalories
				}
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated")
			renderTargets(cmd.OutOrStdout(), updated, nutrition.ResolveTargets(updated))
			return nil
		})
	},
}

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Show the daily calorie and macro targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, a *app.App, _ *auth.Session) error {
			p := a.State.Profile()
			renderTargets(cmd.OutOrStdout(), p, nutrition.ResolveTargets(p))
			return nil
		})
	},
}

func setIfChanged(cmd *cobra.Command, flag string, dst *string, v string) {
	if cmd.Flags().Changed(flag) {
		*dst = strings.TrimSpace(v)
	}
}

func printProfile(cmd *cobra.Command, p nutrition.Profile) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("Profile"))
	rows := [][2]string{
		{"Name", p.Name},
		{"Email", p.Email},
		{"Contact", p.Contact},
		{"Age", p.Age},
		{"Born", p.DOB},
		{"Height", withUnit(p.HeightCm, "cm")},
		{"Weight", withUnit(p.WeightKg, "kg")},
		{"Goal", string(p.HealthGoal)},
		{"Activity", string(p.ActivityLevel)},
		{"Allergies", p.Allergies},
		{"Calories", p.CaloriesGoalOverride},
	}
	for _, r := range rows {
		v := r[1]
		if strings.TrimSpace(v) == "" {
			v = "-"
		}
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render(r[0]+":"), v)
	}
	m := p.MacroGoalOverrides
	fmt.Fprintf(out, "%s P %dg · C %dg · F %dg · %d kcal\n", labelStyle.Render("Manual:"), m.Protein, m.Carbs, m.Fat, m.Calories)
}

func withUnit(v, unit string) string {
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return v + " " + unit
}

func joinGoals() string {
	out := make([]string, len(nutrition.HealthGoals))
	for i, g := range nutrition.HealthGoals {
		out[i] = string(g)
	}
	return strings.Join(out, ", ")
}

func joinLevels() string {
	out := make([]string, len(nutrition.ActivityLevels))
	for i, l := range nutrition.ActivityLevels {
		out[i] = string(l)
	}
	return strings.Join(out, ", ")
}

func init() {
	rootCmd.AddCommand(profileCmd, targetsCmd)
	profileCmd.AddCommand(profileShowCmd, profileSetCmd)

	f := profileSetCmd.Flags()
	f.StringVar(&profileInput.name, "name", "", "Display name")
	f.StringVar(&profileInput.email, "email", "", "Email")
	f.StringVar(&profileInput.contact, "contact", "", "Contact number")
	f.StringVar(&profileInput.age, "age", "", "Age in years")
	f.StringVar(&profileInput.dob, "dob", "", "Date of birth")
	f.StringVar(&profileInput.height, "height", "", "Height in cm")
	f.StringVar(&profileInput.weight, "weight", "", "Weight in kg")
	f.StringVar(&profileInput.goal, "goal", "", "Health goal: "+joinGoals())
	f.StringVar(&profileInput.activity, "activity", "", "Activity level: "+joinLevels())
	f.StringVar(&profileInput.allergies, "allergies", "", "Allergies")
	f.StringVar(&profileInput.calories, "calories", "", "Daily calorie override (blank or 0 to compute)")
	f.IntVar(&profileInput.protein, "protein", 0, "Manual protein goal in grams")
	f.IntVar(&profileInput.carbs, "carbs", 0, "Manual carbs goal in grams")
	f.IntVar(&profileInput.fat, "fat", 0, "Manual fat goal in grams")
	f.IntVar(&profileInput.macroCalories, "macro-calories", 0, "Manual calorie goal shown with the macro goals")
}
