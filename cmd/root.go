// Copyright (c) 2025 Doctors Copilot
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the Doctors Copilot CLI.
// It implements subcommands for authentication and the patient-insights
// dashboard using the Cobra CLI framework, with a terminal UI built on pterm.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"copilot/cli/internal/backend"
	"copilot/cli/internal/config"
	"copilot/cli/internal/logging"
	"copilot/cli/internal/session"
	"copilot/cli/internal/store"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "copilot",
	Short:         "Doctors Copilot CLI for the patient insights dashboard",
	Long:          `Doctors Copilot is a command-line dashboard client that authenticates against the Doctors Copilot API and renders paginated patient insight records.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			fmt.Printf("copilot %s\n", Version)

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			api := backend.New(cfg.APIBaseURL, time.Duration(cfg.TimeoutSeconds)*time.Second)
			status, err := api.Health(ctx)
			if err != nil {
				status = "unreachable"
			}
			fmt.Printf("backend %s\n", status)
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version and backend status")
}

// newSession wires the shared pieces every command needs: config, debug log,
// backend client, token store and the session controller. The controller
// starts in the unknown state; callers resolve it with Resume or through the
// guard.
func newSession() (*session.Controller, backend.API, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, cfg, err
	}
	_ = logging.Init(cfg.LogLevel) // a CLI without a log file still works

	api := backend.New(cfg.APIBaseURL, time.Duration(cfg.TimeoutSeconds)*time.Second)
	st, err := store.Open()
	if err != nil {
		return nil, nil, cfg, fmt.Errorf("open token store: %w", err)
	}
	return session.NewController(st, api, showNotice), api, cfg, nil
}

// showNotice prints the user-facing notice for a session-ending event.
// The controller guarantees it fires exactly once per event, so the two
// messages stay distinguishable: a deliberate logout versus an expiry.
func showNotice(n session.Notice) {
	switch n {
	case session.NoticeSessionExpired:
		pterm.Println(pterm.NewStyle(pterm.FgYellow).Sprint("⚠️  Session expired, please log in again."))
	case session.NoticeLoggedOut:
		pterm.Println("✅ Logged out successfully")
	}
}
