// Package diagnose implements the diagnose command: a configuration
// checklist, an X credential check and a sample generation.
package diagnose

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jonesrussell/north-cloud/postbot/cmd/common"
	"github.com/jonesrussell/north-cloud/postbot/internal/diagnostics"
	"github.com/spf13/cobra"
)

// ErrDiagnosticsFailed is returned when any check did not pass.
var ErrDiagnosticsFailed = errors.New("diagnostics found problems")

// Command returns the diagnose command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:     "diagnose",
		Aliases: []string{"test-credentials"},
		Short:   "Check configuration, X credentials and content generation",
		Long: `Check that every secret is set, that the X credentials authenticate and
carry write access, and that the generation service answers. Nothing is posted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to get dependencies: %w", err)
			}
			defer func() { _ = deps.Logger.Sync() }()

			hc := common.HTTPClient(deps.Config)
			gen, err := common.Generator(cmd.Context(), deps, hc)
			if err != nil {
				return err
			}
			checker := diagnostics.NewChecker(common.XClient(deps.Config, hc), deps.Logger)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "🔍 Running bot diagnostics...")

			report := diagnostics.Run(cmd.Context(), common.Secrets(deps.Config), checker, gen)
			Render(out, report)

			if !report.Healthy() {
				return ErrDiagnosticsFailed
			}
			return nil
		},
	}
}

// Render prints report as checklist tables followed by a summary.
func Render(out io.Writer, report *diagnostics.Report) {
	renderSecrets(out, report)
	if len(report.Missing) > 0 {
		fmt.Fprintf(out, "\n❌ Missing environment variables: %s\n", strings.Join(report.Missing, ", "))
		fmt.Fprintln(out, "Please add these to your .env file")
		return
	}

	renderChecks(out, report)
	renderSummary(out, report)
}

func renderSecrets(out io.Writer, report *diagnostics.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.SetTitle("1. Environment variables")
	t.AppendHeader(table.Row{"Variable", "Status"})
	for _, s := range report.Secrets {
		t.AppendRow(table.Row{s.Name, mark(s.Set, "Set", "Missing")})
	}
	t.Render()
}

func renderChecks(out io.Writer, report *diagnostics.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.SetTitle("2. Services")
	t.AppendHeader(table.Row{"Check", "Result", "Detail"})

	cred := report.Credential
	switch {
	case report.CredentialErr != nil:
		t.AppendRow(table.Row{"X authentication", mark(false, "", "Error"), report.CredentialErr.Error()})
	case cred != nil:
		detail := cred.Problem
		if cred.Authenticated {
			detail = "@" + cred.Username
		}
		t.AppendRow(table.Row{"X authentication", mark(cred.Authenticated, "OK", "Failed"), detail})
		if cred.Authenticated {
			writeDetail := cred.AccessLevel
			if !cred.WriteAccess {
				writeDetail = cred.Problem
			}
			t.AppendRow(table.Row{"X write access", mark(cred.WriteAccess, "OK", "Failed"), writeDetail})
		}
	}

	if s := report.Sample; s != nil {
		detail := s.Text
		if s.UsedFallback {
			detail = fmt.Sprintf("fallback used: %v", s.FallbackReason)
		}
		t.AppendRow(table.Row{"Content generation", mark(!s.UsedFallback, "OK", "Failed"), detail})
	}
	t.Render()
}

func renderSummary(out io.Writer, report *diagnostics.Report) {
	fmt.Fprintln(out, "\n📋 SUMMARY:")
	if report.Healthy() {
		fmt.Fprintln(out, "✅ All systems working! Your bot should work correctly.")
		return
	}

	if steps := report.FixSteps(); len(steps) > 0 {
		fmt.Fprintln(out, "❌ X credentials or permissions issue detected.")
		fmt.Fprintln(out, "\nSTEPS TO FIX:")
		for i, step := range steps {
			fmt.Fprintf(out, "%d. %s\n", i+1, step)
		}
	}
	if report.CredentialErr != nil {
		fmt.Fprintf(out, "❌ X credential check failed unexpectedly: %v\n", report.CredentialErr)
	}
	if report.Sample != nil && report.Sample.UsedFallback {
		fmt.Fprintln(out, "❌ Content generation failed; posts will use fallback content. Check the generation API key.")
	}
}

func mark(ok bool, good, bad string) string {
	if ok {
		return "✅ " + good
	}
	return "❌ " + bad
}
