package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bookcourier/bookcourier/internal/app"
)

func newLoginCmd(a *app.App) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a bearer token from the identity provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				var err error
				token, err = readToken(cmd)
				if err != nil {
					return err
				}
			}
			if err := a.Session.SignIn(token); err != nil {
				return err
			}
			id := a.Session.Identity()
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", id.Name, id.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "bearer token (prompted when omitted)")
	return cmd
}

// readToken prompts for the token. On a terminal the input is hidden so
// the token does not end up in scrollback.
func readToken(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(cmd.OutOrStdout(), "Token: ")
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	var token string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &token); err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(token), nil
}

func newLogoutCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Session.SignOut(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.Session.Authenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
				return nil
			}
			id := a.Session.Identity()
			fmt.Fprintf(cmd.OutOrStdout(), "name:  %s\nemail: %s\nrole:  %s\n", id.Name, id.Email, id.Role)
			return nil
		},
	}
}
