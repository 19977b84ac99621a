package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fdg312/culinary-hub/internal/app"
	"github.com/fdg312/culinary-hub/internal/auth"
	"github.com/fdg312/culinary-hub/internal/blob"
	"github.com/fdg312/culinary-hub/internal/recipes"
	"github.com/spf13/cobra"
)

var (
	recipeCuisine    string
	recipeSave       bool
	recipeFrom       string
	recipeIngredient int
	recipeOut        string
	cookPlain        bool
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Generate, save and cook recipes",
}

var recipeGenerateCmd = &cobra.Command{
	Use:   "generate [query]",
	Short: "Generate a recipe from ingredients, a dish name or a cuisine",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			query = strings.TrimSpace(recipeCuisine)
		} else if recipeCuisine != "" {
			query = fmt.Sprintf("%s (%s cuisine)", query, recipeCuisine)
		}
		if query == "" {
			return fmt.Errorf("give a query or --cuisine (one of %s)", strings.Join(recipes.Cuisines, ", "))
		}
		return withSession(cmd, func(ctx context.Context, a *app.App, _ *auth.Session) error {
			r, err := a.AI.GenerateRecipe(ctx, query)
			if err != nil {
				return failed("Recipe generation", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(recipeMarkdown(r)))
			if recipeSave {
				return saveRecipe(ctx, cmd, a, r)
			}
			return nil
		})
	},
}

var recipeSaveCmd = &cobra.Command{
	Use:   "save --from recipe.json",
	Short: "Save a recipe from a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(recipeFrom)
		if err != nil {
			return fmt.Errorf("read recipe: %w", err)
		}
		var r recipes.Recipe
		if err := json.Unmarshal(data, &r); err != nil {
			return fmt.Errorf("parse recipe: %w", err)
		}
		if strings.TrimSpace(r.Title) == "" {
			return errors.New("recipe has no title")
		}
		return withSession(cmd, func(ctx context.Context, a *app.App, _ *auth.Session) error {
			return saveRecipe(ctx, cmd, a, r)
		})
	},
}

func saveRecipe(ctx context.Context, cmd *cobra.Command, a *app.App, r recipes.Recipe) error {
	added, err := a.State.SaveRecipe(ctx, r)
	if err != nil {
		return err
	}
	if !added {
		fmt.Fprintf(cmd.OutOrStdout(), "%q is already saved\n", r.Title)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %q\n", r.Title)
	return nil
}

var recipeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved recipes, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, a *app.App, _ *auth.Session) error {
			saved := a.State.SavedRecipes()
			out := cmd.OutOrStdout()
			if len(saved) == 0 {
				fmt.Fprintln(out, "No saved recipes")
				return nil
			}
			for _, r := range saved {
				fmt.Fprintf(out, "%s  %s\n", r.Title, mutedStyle.Render(fmt.Sprintf("%s · %s · %.0f kcal/serving", r.Cuisine, r.Difficulty, r.NutritionPerServing.Calories)))
			}
			return nil
		})
	},
}

var recipeShowCmd = &cobra.Command{
	Use:   "show <title>",
	Short: "Show a saved recipe",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSavedRecipe(cmd, args, func(ctx context.Context, a *app.App, r recipes.Recipe) error {
			fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(recipeMarkdown(r)))
			return nil
		})
	},
}

var recipeDeleteCmd = &cobra.Command{
	Use:   "delete <title>",
	Short: "Remove a saved recipe",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.Join(args, " ")
		return withSession(cmd, func(ctx context.Context, a *app.App, _ *auth.Session) error {
			removed, err := a.State.DeleteRecipe(ctx, title)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("no saved recipe titled %q", title)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", title)
			return nil
		})
	},
}

var recipeCookCmd = &cobra.Command{
	Use:   "cook <title>",
	Short: "Walk through a saved recipe step by step",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSavedRecipe(cmd, args, func(ctx context.Context, a *app.App, r recipes.Recipe) error {
			w, err := recipes.Start(r)
			if err != nil {
				return err
			}
			if cookPlain {
				printWalkthrough(cmd, w)
				return nil
			}
			return runCook(ctx, cmd, a, w)
		})
	},
}

func printWalkthrough(cmd *cobra.Command, w *recipes.Walkthrough) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render(w.Recipe().Title))
	for {
		fmt.Fprintf(out, "[%d/%d] %s\n", w.Index()+1, w.Total(), w.StepNarration())
		if !w.Next() {
			break
		}
	}
}

var recipeImageCmd = &cobra.Command{
	Use:   "image <title>",
	Short: "Generate a picture of a saved recipe or one of its ingredients",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSavedRecipe(cmd, args, func(ctx context.Context, a *app.App, r recipes.Recipe) error {
			prompt := recipes.FinalImagePrompt(r)
			if recipeIngredient > 0 {
				if recipeIngredient > len(r.Ingredients) {
					return fmt.Errorf("--ingredient must be between 1 and %d", len(r.Ingredients))
				}
				prompt = recipes.IngredientImagePrompt(r.Ingredients[recipeIngredient-1])
			}

			img, err := a.AI.GenerateImage(ctx, prompt)
			if err != nil {
				return failed("Image generation", err)
			}
			return writeArtifact(ctx, cmd, a, blob.PrefixImages, recipeOut, img.Data, img.MIMEType)
		})
	},
}

// writeArtifact writes data to path, or to the blob store when path is
// empty, and prints where it went.
func writeArtifact(ctx context.Context, cmd *cobra.Command, a *app.App, prefix, path string, data []byte, contentType string) error {
	out := cmd.OutOrStdout()
	if path != "" {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(out, "Wrote %s (%d bytes)\n", path, len(data))
		return nil
	}

	if contentType == "" {
		contentType = blob.DetectContentType(data)
	}
	key := blob.NewKey(prefix, nowFunc(), blob.ExtensionFor(contentType))
	if _, err := a.Blobs.PutObject(ctx, key, data, contentType); err != nil {
		return fmt.Errorf("store %s: %w", prefix, err)
	}
	link, err := a.Blobs.PresignGet(ctx, key, 3600)
	if err != nil {
		fmt.Fprintf(out, "Stored %s\n", key)
		return nil
	}
	fmt.Fprintf(out, "Stored %s\n%s\n", key, link)
	return nil
}

func withSavedRecipe(cmd *cobra.Command, args []string, run func(ctx context.Context, a *app.App, r recipes.Recipe) error) error {
	title := strings.Join(args, " ")
	return withSession(cmd, func(ctx context.Context, a *app.App, _ *auth.Session) error {
		r, ok := a.State.FindRecipe(title)
		if !ok {
			return fmt.Errorf("no saved recipe titled %q", title)
		}
		return run(ctx, a, r)
	})
}

func init() {
	rootCmd.AddCommand(recipeCmd)
	recipeCmd.AddCommand(recipeGenerateCmd, recipeSaveCmd, recipeListCmd, recipeShowCmd, recipeDeleteCmd, recipeCookCmd, recipeImageCmd)

	recipeGenerateCmd.Flags().StringVarP(&recipeCuisine, "cuisine", "c", "", "Cuisine, e.g. "+strings.Join(recipes.Cuisines, ", "))
	recipeGenerateCmd.Flags().BoolVarP(&recipeSave, "save", "s", false, "Save the generated recipe")

	recipeSaveCmd.Flags().StringVar(&recipeFrom, "from", "", "Recipe JSON file")
	_ = recipeSaveCmd.MarkFlagRequired("from")

	recipeCookCmd.Flags().BoolVar(&cookPlain, "plain", false, "Print every step instead of the interactive view")

	recipeImageCmd.Flags().IntVar(&recipeIngredient, "ingredient", 0, "Illustrate the Nth ingredient instead of the dish")
	recipeImageCmd.Flags().StringVarP(&recipeOut, "out", "o", "", "Write the image to this file instead of the blob store")
}
