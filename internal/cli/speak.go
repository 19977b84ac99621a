package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/fdg312/culinary-hub/internal/app"
	"github.com/fdg312/culinary-hub/internal/auth"
	"github.com/fdg312/culinary-hub/internal/blob"
	"github.com/fdg312/culinary-hub/internal/recipes"
	"github.com/spf13/cobra"
)

var errNoPlayer = errors.New("no SPEECH_PLAYER configured")

var (
	speakRecipe string
	speakStep   int
	speakOut    string
)

var speakCmd = &cobra.Command{
	Use:   "speak [text]",
	Short: "Read text, a recipe or one recipe step aloud",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, a *app.App, _ *auth.Session) error {
			text, err := speechText(a, strings.Join(args, " "))
			if err != nil {
				return err
			}
			audio, err := a.AI.Speak(ctx, text)
			if err != nil {
				return failed("Speech", err)
			}

			if a.Config.SpeechPlayer != "" && speakOut == "" {
				if err := playAudio(ctx, a, audio.Data, audio.MIMEType); err != nil {
					return fmt.Errorf("play speech: %w", err)
				}
				return nil
			}
			return writeArtifact(ctx, cmd, a, blob.PrefixSpeech, speakOut, audio.Data, audio.MIMEType)
		})
	},
}

func speechText(a *app.App, text string) (string, error) {
	if speakRecipe == "" {
		if strings.TrimSpace(text) == "" {
			return "", errors.New("nothing to say: pass text or --recipe")
		}
		return text, nil
	}

	r, ok := a.State.FindRecipe(speakRecipe)
	if !ok {
		return "", fmt.Errorf("no saved recipe titled %q", speakRecipe)
	}
	if speakStep <= 0 {
		return recipes.Narration(r), nil
	}
	if speakStep > len(r.Instructions) {
		return "", fmt.Errorf("--step must be between 1 and %d", len(r.Instructions))
	}
	return recipes.StepNarration(speakStep-1, r.Instructions[speakStep-1]), nil
}

// playAudio hands the clip to SPEECH_PLAYER as a temporary file.
func playAudio(ctx context.Context, a *app.App, data []byte, contentType string) error {
	args := strings.Fields(a.Config.SpeechPlayer)
	if len(args) == 0 {
		return errNoPlayer
	}
	if contentType == "" {
		contentType = blob.DetectContentType(data)
	}

	f, err := os.CreateTemp("", "culinary-speech-*"+blob.ExtensionFor(contentType))
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	a.Logger.Printf("INFO speech: playing %d bytes with %s", len(data), args[0])
	out, err := exec.CommandContext(ctx, args[0], append(args[1:], f.Name())...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(speakCmd)
	speakCmd.Flags().StringVarP(&speakRecipe, "recipe", "r", "", "Read a saved recipe")
	speakCmd.Flags().IntVar(&speakStep, "step", 0, "Only read this step of --recipe")
	speakCmd.Flags().StringVarP(&speakOut, "out", "o", "", "Write the audio to this file")
}
