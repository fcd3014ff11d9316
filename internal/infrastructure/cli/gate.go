package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/reqgate/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/reqgate/pkg/domain/gate"
)

type gateOptions struct {
	results       string
	output        string
	emptyCategory string
	render        bool
	json          bool
}

func newGateCmd() *cobra.Command {
	opts := &gateOptions{}
	cmd := &cobra.Command{
		Use:   "gate",
		Short: "Score prompt-evaluation results against quality thresholds",
		Long: `Score prompt-evaluation results against quality thresholds.

Test outcomes are grouped into agent consistency, doc quality, tool usage and
template compliance, and the overall success rate is computed. The gate
passes only when every metric reaches its threshold.

Examples:
  reqgate gate
  reqgate gate --results out/latest.json --empty-category skip
  reqgate gate --render`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.results, "results", "r", "", "Prompt-evaluation result file (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Directory for quality reports (default from config)")
	cmd.Flags().StringVar(&opts.emptyCategory, "empty-category", "", "How to gate categories without tests: fail or skip (default from config)")
	cmd.Flags().BoolVar(&opts.render, "render", false, "Render the Markdown report in the terminal")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the report as JSON")
	return cmd
}

func runGate(cmd *cobra.Command, opts *gateOptions) error {
	ws, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}
	if opts.emptyCategory != "" {
		policy, err := gate.ParseEmptyCategoryPolicy(opts.emptyCategory)
		if err != nil {
			return NewCLIError("invalid --empty-category", "Use fail or skip", err)
		}
		ws.Config.EmptyCategoryPolicy = policy
	}

	out, err := wiring.BuildAppServices(ws).Gate.Run(contextOf(cmd),
		firstNonEmpty(opts.results, ws.Config.ResultsFile),
		firstNonEmpty(opts.output, ws.Config.OutputDir))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch {
	case opts.json:
		data, err := json.MarshalIndent(out.Report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case opts.render:
		if err := renderMarkdown(w, out.Markdown); err != nil {
			return err
		}
	default:
		printGateReport(w, out.Report, []string{out.Paths.JSON, out.Paths.Markdown})
	}

	if !out.Report.Summary.Passed {
		return ErrGateFailed
	}
	return nil
}
