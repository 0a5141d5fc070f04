// Copyright (c) 2025 Doctors Copilot
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"

	"copilot/cli/internal/httperrors"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// statusCmd represents the status command for checking backend reachability.
// It calls the unauthenticated health endpoint.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check Doctors Copilot service health",
	Long: `The status command calls the backend health endpoint and reports whether
the Doctors Copilot service is reachable. No authentication is required.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		_, api, cfg, err := newSession()
		if err != nil {
			return err
		}

		stop := startInlineSpinner(os.Stdout, "Checking service health")
		status, err := api.Health(cmd.Context())
		stop()

		if err != nil {
			return httperrors.FormatNetworkError(err, "checking service health")
		}

		pterm.Printf("✅ Service is %s\n", pterm.NewStyle(pterm.FgGreen, pterm.Bold).Sprint(status))
		pterm.Printf("   %s\n", cfg.APIBaseURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
