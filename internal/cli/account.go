package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fdg312/culinary-hub/internal/app"
	"github.com/fdg312/culinary-hub/internal/auth"
	"github.com/spf13/cobra"
)

var (
	accountEmail    string
	accountPassword string
	accountName     string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a local account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordFrom(cmd)
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			sess, err := a.Auth.Register(ctx, auth.RegisterRequest{
				Email:    accountEmail,
				Password: password,
				Name:     accountName,
			})
			if err != nil {
				return authMessage(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! Signed in as %s\n", sess.Name, sess.Email)
			return nil
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to a local account",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordFrom(cmd)
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			sess, err := a.Auth.Login(ctx, accountEmail, password)
			if err != nil {
				return authMessage(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", sess.Name, sess.Email)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := a.Auth.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, a *app.App, sess *auth.Session) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\nSession expires: %s\n", sess.Name, sess.Email, sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
			return nil
		})
	},
}

// passwordFrom takes --password, or reads one line from stdin.
func passwordFrom(cmd *cobra.Command) (string, error) {
	if accountPassword != "" {
		return accountPassword, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.New("password is required (use --password or type it on stdin)")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)

	for _, c := range []*cobra.Command{registerCmd, loginCmd} {
		c.Flags().StringVar(&accountEmail, "email", "", "Account email")
		c.Flags().StringVar(&accountPassword, "password", "", "Account password (read from stdin when omitted)")
		_ = c.MarkFlagRequired("email")
	}
	registerCmd.Flags().StringVar(&accountName, "name", "", "Display name (default User)")
}
