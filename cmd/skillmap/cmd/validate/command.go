// Package validate provides the command that builds the catalog and
// re-checks its invariants.
package validate

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/skillmap"
	"github.com/agentstation/skillmap/internal/cmd/output"
	"github.com/agentstation/skillmap/pkg/errors"
	"github.com/agentstation/skillmap/pkg/reconciler"
)

// AppContext defines the interface that the validate command needs from the app.
type AppContext interface {
	Skillmap() (skillmap.Client, error)
	Logger() *zerolog.Logger
	OutputFormat() string
}

// Report is the structured output of validate.
type Report struct {
	RunID      string                        `json:"run_id" yaml:"run_id"`
	Stats      reconciler.Statistics         `json:"stats" yaml:"stats"`
	Violations []string                      `json:"violations" yaml:"violations"`
	Failures   []reconciler.InferenceFailure `json:"failures" yaml:"failures"`
	Warnings   []string                      `json:"warnings" yaml:"warnings"`
}

// NewCommand creates the validate command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:     "validate",
		GroupID: "management",
		Short:   "Build the catalog and check it for duplicates",
		Long: `Validate builds the catalog from the configured datasets and checks that
every institution id is unique and that no institution lists the same tool
or specialization twice.

Inference failures and assembly warnings are reported but only fail the
command with --strict.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Skillmap()
			if err != nil {
				return err
			}
			result, err := client.Result(cmd.Context())
			if err != nil {
				return err
			}

			report := NewReport(result)
			if err := write(cmd.OutOrStdout(), output.Format(app.OutputFormat()), report); err != nil {
				return err
			}

			logger := app.Logger()
			switch {
			case len(report.Violations) > 0:
				return errors.NewValidationError("catalog", result.RunID,
					fmt.Sprintf("%d invariant violations", len(report.Violations)))
			case strict && (len(report.Failures) > 0 || len(report.Warnings) > 0):
				return errors.NewValidationError("catalog", result.RunID,
					fmt.Sprintf("%d inference failures, %d warnings", len(report.Failures), len(report.Warnings)))
			}
			logger.Info().Str("run_id", result.RunID).Msg(result.Summary())
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat inference failures and warnings as errors")

	return cmd
}

// NewReport re-checks the built catalog.
func NewReport(result *reconciler.Result) Report {
	report := Report{
		RunID:      result.RunID,
		Stats:      result.Stats,
		Violations: []string{},
		Failures:   result.Failures,
		Warnings:   result.Warnings,
	}
	for _, err := range reconciler.Validate(result.Institutions) {
		report.Violations = append(report.Violations, err.Error())
	}
	return report
}

func write(w io.Writer, format output.Format, report Report) error {
	if !format.IsTable() {
		return output.NewFormatter(format).Format(w, report)
	}

	table := output.NewFormatter(output.FormatTable)
	if err := table.Format(w, output.StatsToData(report.Stats)); err != nil {
		return err
	}
	if len(report.Failures) > 0 {
		fmt.Fprintf(w, "\nInference failures (%d):\n", len(report.Failures))
		if err := table.Format(w, output.FailuresToData(report.Failures)); err != nil {
			return err
		}
	}
	if len(report.Warnings) > 0 {
		fmt.Fprintf(w, "\nWarnings (%d):\n", len(report.Warnings))
		for _, warning := range report.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}
	if len(report.Violations) > 0 {
		fmt.Fprintf(w, "\nViolations (%d):\n", len(report.Violations))
		for _, v := range report.Violations {
			fmt.Fprintf(w, "  ✗ %s\n", v)
		}
		return nil
	}
	fmt.Fprintln(w, "\n✓ catalog is valid")
	return nil
}
