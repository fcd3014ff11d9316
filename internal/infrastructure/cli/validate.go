package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/reqgate/internal/infrastructure/watch"
	"github.com/felixgeelhaar/reqgate/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/reqgate/pkg/application"
	"github.com/felixgeelhaar/reqgate/pkg/domain/consistency"
)

type validateOptions struct {
	input     string
	output    string
	tolerance float64
	noSample  bool
	watch     bool
	json      bool
}

func newValidateCmd() *cobra.Command {
	opts := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Compare YAML requirement documents with their Markdown renderings",
		Long: `Compare YAML requirement documents with their Markdown renderings.

The built-in sample pair runs first, then every *.yaml/*.yml file in the
input directory paired with the first .md file whose name starts with the
YAML base name. Each pair is scored on keyword similarity and structure.

Examples:
  reqgate validate
  reqgate validate --input docs/requirements --tolerance 0.9
  reqgate validate --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Directory holding document pairs (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Directory for validation reports (default from config)")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", 0, fmt.Sprintf("Keyword similarity threshold between 0 and 1 (default from config, built-in %.2f)", consistency.DefaultTolerance))
	cmd.Flags().BoolVar(&opts.noSample, "no-sample", false, "Skip the built-in sample pair")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-run when documents in the input directory change")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the report as JSON")
	return cmd
}

func runValidate(cmd *cobra.Command, opts *validateOptions) error {
	ws, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("tolerance") {
		if err := consistency.CheckTolerance(opts.tolerance); err != nil {
			return NewCLIError("invalid --tolerance", "Use a ratio such as 0.85, not a percentage", err)
		}
		ws.Config.Tolerance = opts.tolerance
	}
	svc := wiring.BuildAppServices(ws).Validation

	runOpts := application.ValidationOptions{
		InputDir:   firstNonEmpty(opts.input, ws.Config.InputDir),
		OutputDir:  firstNonEmpty(opts.output, ws.Config.ValidationOutputDir()),
		SkipSample: opts.noSample,
	}

	run := func(ctx context.Context) error {
		out, err := svc.Run(ctx, runOpts)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if opts.json {
			data, err := json.MarshalIndent(out.Report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal report: %w", err)
			}
			fmt.Fprintln(w, string(data))
		} else {
			printValidationReport(w, out.Report, []string{out.Paths.JSON, out.Paths.Markdown})
		}
		if !out.Passed() {
			return ErrValidationFailed
		}
		return nil
	}

	if !opts.watch {
		return run(contextOf(cmd))
	}
	return watchAndValidate(cmd, ws, runOpts.InputDir, run)
}

// watchAndValidate runs once, then again on every batch of document changes
// until interrupted. Verdicts are printed, never returned.
func watchAndValidate(cmd *cobra.Command, ws *wiring.Workspace, inputDir string, run func(context.Context) error) error {
	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt)
	defer stop()

	dir := inputDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(ws.Root, dir)
	}

	runOnce := func() {
		if err := run(ctx); err != nil && !errors.Is(err, ErrValidationFailed) {
			ws.Logger.Error("validation run failed", "error", err)
		}
	}
	runOnce()

	w, err := watch.NewDocumentWatcher(dir, nil, watch.DefaultWindow, ws.Logger)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render(fmt.Sprintf("\nWatching %s for changes (Ctrl+C to stop)...", dir)))

	err = w.Run(ctx, func(changes []watch.Change) {
		for _, c := range changes {
			ws.Logger.Info("document changed", "path", c.Path, "op", c.Op)
		}
		runOnce()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
