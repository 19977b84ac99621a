package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/fdg312/culinary-hub/internal/ai"
	"github.com/fdg312/culinary-hub/internal/app"
	"github.com/fdg312/culinary-hub/internal/auth"
	"github.com/fdg312/culinary-hub/internal/chat"
	"github.com/spf13/cobra"
)

const chatFailure = "Something went wrong. Let's try again."

var chatMessage string

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "Chat with the fitness and diet consultant",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd, ai.PersonaCoach)
	},
}

var assistantCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Chat with the culinary assistant",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd, ai.PersonaCulinary)
	},
}

func runChat(cmd *cobra.Command, persona ai.Persona) error {
	return withSession(cmd, func(ctx context.Context, a *app.App, _ *auth.Session) error {
		conv := a.Conversation(persona)
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, titleStyle.Render(chat.Title(persona)))
		fmt.Fprintln(out, indented(conv.Messages()[0].Content, 2))

		if chatMessage != "" {
			return chatTurn(ctx, cmd, conv, chatMessage)
		}

		fmt.Fprintln(out, mutedStyle.Render("Type a message, or exit to leave."))
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				fmt.Fprintln(out)
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			switch strings.ToLower(line) {
			case "":
				continue
			case "exit", "quit":
				return nil
			}
			if err := chatTurn(ctx, cmd, conv, line); err != nil {
				return err
			}
		}
	})
}

// chatTurn sends one message and prints the reply. AI failures are shown
// inline and do not end the session.
func chatTurn(ctx context.Context, cmd *cobra.Command, conv *chat.Conversation, text string) error {
	reply, err := conv.Send(ctx, text)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprintln(cmd.OutOrStdout(), errorStyle.Render(chatFailure))
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(reply.Content))
	return nil
}

func init() {
	rootCmd.AddCommand(coachCmd, assistantCmd)
	for _, c := range []*cobra.Command{coachCmd, assistantCmd} {
		c.Flags().StringVarP(&chatMessage, "message", "m", "", "Send one message and exit")
	}
}
