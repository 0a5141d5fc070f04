// Copyright (c) 2025 Doctors Copilot
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"copilot/cli/internal/session"

	"github.com/spf13/cobra"
)

// whoamiCmd represents the whoami command for displaying session state.
// It resolves the session from local storage only; the stored token is
// trusted without a server round-trip, so this command works offline.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show current session state",
	Long: `The whoami command reports whether a session token is stored locally.
It does not contact the backend: a stored token is trusted until a request
is rejected with 401. Use it to verify authentication status before running
other commands.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, _, _, err := newSession()
		if err != nil {
			return err
		}
		if ctrl.Resume() == session.StateAuthenticated {
			fmt.Println("🔓 Logged in")
			return nil
		}
		fmt.Println("🔒 You're not logged in yet!")
		fmt.Println("   Run 'copilot login' to get started.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
