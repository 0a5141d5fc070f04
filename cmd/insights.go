// Copyright (c) 2025 Doctors Copilot
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"copilot/cli/internal/backend"
	"copilot/cli/internal/guard"
	"copilot/cli/internal/httperrors"
	"copilot/cli/internal/insights"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	insightsPage    int
	insightsPerPage int
	insightsWatch   time.Duration
)

// insightsCmd represents the insights command, the protected dashboard view.
// It fetches one page of patient insight records and renders them as cards.
// Access is gated by the session guard: an unauthenticated user is sent
// through the login prompt first, and a token rejected mid-fetch triggers a
// session-expired re-login before the page is retried.
var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show patient insight records",
	Long: `The insights command fetches a page of patient insight records from the
Doctors Copilot API and renders them as cards: risk score with level, the
clinical insight summary, vitals, labs and the structured assessment.

Requires authentication. If you are not logged in, the login prompt runs
first and the requested page is shown afterwards. Use --page and --per-page
to paginate, or --watch to re-fetch on an interval.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, api, cfg, err := newSession()
		if err != nil {
			return err
		}
		if insightsPerPage <= 0 {
			insightsPerPage = cfg.PerPage
		}

		fetcher := insights.NewFetcher(api, ctrl)
		g := guard.New(ctrl, func(ctx context.Context) error {
			return loginInteractive(ctx, ctrl)
		})

		show := func(ctx context.Context) error {
			stop := startInlineSpinner(os.Stdout, "Fetching patient insights")
			page, err := fetcher.FetchPage(ctx, insightsPage, insightsPerPage)
			stop()
			if err != nil {
				if errors.Is(err, insights.ErrStale) {
					// A newer page already rendered; drop this one.
					return nil
				}
				return err
			}
			renderPage(page)
			return nil
		}

		run := show
		if insightsWatch > 0 {
			run = func(ctx context.Context) error {
				if err := show(ctx); err != nil {
					return err
				}
				ticker := time.NewTicker(insightsWatch)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return nil
					case <-ticker.C:
						pterm.Println()
						pterm.Printf("Refreshed at %s\n", time.Now().Format(time.Kitchen))
						if err := show(ctx); err != nil {
							return err
						}
					}
				}
			}
		}

		if err := g.Run(cmd.Context(), run); err != nil {
			return presentFetchError(err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insightsCmd)
	insightsCmd.Flags().IntVar(&insightsPage, "page", 1, "Page number to fetch")
	insightsCmd.Flags().IntVar(&insightsPerPage, "per-page", 0, "Records per page (default from config)")
	insightsCmd.Flags().DurationVar(&insightsWatch, "watch", 0, "Re-fetch on an interval, e.g. --watch 30s")
}

// presentFetchError prints a friendly message for a failed page fetch and
// returns the error for the process exit code. Non-401 failures leave the
// session untouched; the retry affordance is simply re-running the command.
func presentFetchError(err error) error {
	var fe *insights.FetchError
	if !errors.As(err, &fe) {
		return err
	}
	if fe.Status == 0 {
		return httperrors.FormatNetworkError(fe.Unwrap(), "fetching patient insights")
	}
	pterm.Printf("❌ %s\n", fe.Error())
	pterm.Println("   Run 'copilot insights' again to retry.")
	return fe
}

// renderPage prints one page of insight records as boxed cards with a
// pagination footer.
func renderPage(p *insights.Page) {
	if len(p.Records) == 0 {
		pterm.Println("No patient insights on this page.")
		return
	}

	for i := range p.Records {
		renderRecord(&p.Records[i])
	}

	pterm.Println(pterm.NewStyle(pterm.FgLightCyan).Sprintf(
		"Page %d of %d (%d items)", p.Page, p.TotalPages, p.TotalItems))
}

// renderRecord prints a single insight record card.
func renderRecord(r *backend.InsightRecord) {
	var b strings.Builder

	level := insights.RiskLevel(r.RiskScore)
	fmt.Fprintf(&b, "Risk score:  %.0f %s\n", r.RiskScore, riskStyle(level).Sprintf("[%s]", level))
	if r.Diagnosis != "" {
		fmt.Fprintf(&b, "Diagnosis:   %s\n", r.Diagnosis)
	}
	if r.AdmissionType != "" || r.AdmissionDate != "" {
		fmt.Fprintf(&b, "Admission:   %s\n", admissionLine(r))
	}
	fmt.Fprintf(&b, "Vitals:      HR %.0f, BP %.0f/%.0f\n",
		r.VitalSigns.HeartRate, r.VitalSigns.SystolicBP, r.VitalSigns.DiastolicBP)
	fmt.Fprintf(&b, "Labs:        glucose %.1f, creatinine %.2f\n",
		r.LabResults.Glucose, r.LabResults.Creatinine)
	if r.ClinicalInsights != "" {
		fmt.Fprintf(&b, "\n%s\n", r.ClinicalInsights)
	}
	if r.Assessment.ConcernLevel != "" {
		fmt.Fprintf(&b, "\nConcern level: %s\n", r.Assessment.ConcernLevel)
	}

	title := fmt.Sprintf("Patient %s", r.PatientID)
	if r.AdmissionID != "" {
		title += fmt.Sprintf(" / Admission %s", r.AdmissionID)
	}
	pterm.DefaultBox.
		WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(title)).
		WithTopPadding(1).
		WithBottomPadding(1).
		WithLeftPadding(1).
		WithRightPadding(1).
		Println(strings.TrimRight(b.String(), "\n"))

	if len(r.Assessment.KeyFindings) > 0 {
		pterm.Println(pterm.NewStyle(pterm.Bold).Sprint("Key findings"))
		_ = pterm.DefaultBulletList.WithItems(bulletItems(r.Assessment.KeyFindings)).Render()
	}
	if len(r.Assessment.Recommendations) > 0 {
		pterm.Println(pterm.NewStyle(pterm.Bold).Sprint("Recommendations"))
		_ = pterm.DefaultBulletList.WithItems(bulletItems(r.Assessment.Recommendations)).Render()
	}
	pterm.Println()
}

// admissionLine builds the one-line admission summary for a record.
func admissionLine(r *backend.InsightRecord) string {
	parts := make([]string, 0, 3)
	if r.AdmissionType != "" {
		parts = append(parts, r.AdmissionType)
	}
	if r.AdmissionDate != "" {
		parts = append(parts, "admitted "+r.AdmissionDate)
	}
	if r.DischargeDate != "" {
		parts = append(parts, "discharged "+r.DischargeDate)
	}
	return strings.Join(parts, ", ")
}

// riskStyle maps a risk level to its display color.
func riskStyle(level string) *pterm.Style {
	switch level {
	case "High":
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case "Medium":
		return pterm.NewStyle(pterm.FgYellow)
	default:
		return pterm.NewStyle(pterm.FgGreen)
	}
}

func bulletItems(items []string) (out []pterm.BulletListItem) {
	for _, s := range items {
		out = append(out, pterm.BulletListItem{Level: 0, Text: s})
	}
	return out
}
