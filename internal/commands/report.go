package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/report"
)

type reportOptions struct {
	markdown bool
	style    string
	chart    string
	out      string
}

func newReportCommand(opts *globalOptions) *cobra.Command {
	ro := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the financial summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			return runReport(s, ro)
		},
	}

	cmd.Flags().BoolVar(&ro.markdown, "markdown", false, "render the summary as styled markdown")
	cmd.Flags().StringVar(&ro.style, "style", "auto", "markdown style: auto, dark, light, notty")
	cmd.Flags().StringVar(&ro.chart, "chart", "", "also write a pie chart of categories: income or expense")
	cmd.Flags().StringVar(&ro.out, "out", "", "chart output file (default <kind>-by-category.png in the project directory)")

	return cmd
}

func runReport(s *session, ro *reportOptions) error {
	var chartKind model.Kind
	if ro.chart != "" {
		k, err := model.ParseKind(ro.chart)
		if err != nil {
			return fmt.Errorf("--chart: %w", err)
		}
		chartKind = k
	}

	if s.ledger.IsEmpty() {
		fmt.Fprintln(s.out, "No transactions to report!")
		return nil
	}

	summary := report.Summarize(s.ledger)
	f := s.formatter()

	if ro.markdown {
		rendered, err := report.RenderTerminal(report.Markdown(summary, f), ro.style)
		if err != nil {
			return err
		}
		fmt.Fprint(s.out, rendered)
	} else if err := report.WriteText(s.out, summary, f); err != nil {
		return err
	}

	if chartKind == "" {
		return nil
	}
	return writeChart(s, summary, chartKind, ro.out)
}

func writeChart(s *session, summary report.Summary, kind model.Kind, path string) error {
	if path == "" {
		path = filepath.Join(s.dir, fmt.Sprintf("%s-by-category.png", lowerLabel(kind)))
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer file.Close()

	title := kind.Label() + " by Category"
	if err := report.WriteCategoryChart(file, summary.ByKind(kind), title, s.formatter()); err != nil {
		file.Close()
		_ = os.Remove(path)
		return fmt.Errorf("writing %s chart: %w", lowerLabel(kind), err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing chart file: %w", err)
	}

	fmt.Fprintf(s.out, "\nChart written to %s\n", path)
	return nil
}
