// Copyright (c) 2025 Doctors Copilot
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"copilot/cli/internal/logging"
	"copilot/cli/internal/session"
	"copilot/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// maxLoginAttempts bounds the interactive login loop before giving up.
const maxLoginAttempts = 3

// loginCmd represents the login command for credential authentication.
// It prompts for a username and password, exchanges them for a bearer token
// and stores the token securely for later commands.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Sign in to the Doctors Copilot dashboard",
	Long: `The login command prompts for your username and password and exchanges them
for an access token at the Doctors Copilot API. The token is stored securely
(OS keychain where available) so subsequent commands stay authenticated until
you log out or the server rejects the token.

The password is read without echo. Credentials are used for the single login
request and never persisted.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, _, _, err := newSession()
		if err != nil {
			return err
		}
		if ctrl.Resume() == session.StateAuthenticated {
			fmt.Println("Already logged in")
			return nil
		}
		return loginInteractive(cmd.Context(), ctrl)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

// loginInteractive runs the sign-in prompt until the controller reaches the
// authenticated state or the attempt limit is reached. Rejection messages
// from the server are shown inline, exactly as received.
func loginInteractive(ctx context.Context, ctrl *session.Controller) error {
	pterm.Println(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Doctors Copilot"))
	pterm.Println("Sign in to access the dashboard")
	pterm.Println()

	for attempt := 1; attempt <= maxLoginAttempts; attempt++ {
		username, password, err := promptCredentials()
		if err != nil {
			return err
		}

		stop := startInlineSpinner(os.Stdout, "Signing in")
		err = ctrl.Login(ctx, username, password)
		stop()

		if err == nil {
			pterm.Printf("✅ Login successful. Welcome, %s!\n", username)
			return nil
		}
		pterm.Println(pterm.NewStyle(pterm.FgRed).Sprint("✗ " + logging.PresentError("", err)))
		logging.L.Debug().Int("attempt", attempt).Msg("login attempt failed")
	}
	return errors.New("too many failed login attempts")
}

// promptCredentials reads a username and a no-echo password from stdin.
// When stdin is not a terminal (tests, pipes) the password is read as a
// plain line instead.
func promptCredentials() (string, string, error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return "", "", err
	}
	username = strings.TrimSpace(username)

	promptText := "Password: "
	fmt.Print(promptText)
	var password string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", "", err
		}
		password = string(raw)
		// Clear the password prompt line now that input is done.
		terminal.ClearPreviousLines(len(promptText))
	} else {
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", err
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if username == "" || password == "" {
		return "", "", errors.New("username and password are required")
	}
	return username, password, nil
}
