// Copyright (c) 2025 Doctors Copilot
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"copilot/cli/internal/session"

	"github.com/spf13/cobra"
)

// logoutCmd represents the logout command for ending the local session.
// It clears the stored access token; there is no server-side session to
// revoke, so nothing else happens.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved access token",
	Long: `The logout command ends the local session by removing the stored access
token from the OS keychain (or its file fallback). Running logout when you
are not logged in does nothing.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, _, _, err := newSession()
		if err != nil {
			return err
		}
		if ctrl.Resume() != session.StateAuthenticated {
			fmt.Println("Not logged in")
			return nil
		}
		// Prints the "logged out" notice through the controller hook.
		ctrl.Logout()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
