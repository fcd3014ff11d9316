package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/reqgate/internal/infrastructure/wiring"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = NewRootCmd()

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "reqgate",
		Version: Version,
		Short:   "Quality gates for AI-generated requirement documents",
		Long: `reqgate checks AI-generated requirement documents in CI.

It compares structured YAML requirement documents with their Markdown
renderings, scores prompt-evaluation results against quality thresholds,
writes JSON and Markdown reports, and exits non-zero when a gate fails.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("dir", "C", "", "Workspace root (default: current directory)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newValidateCmd(),
		newGateCmd(),
		newEnvCmd(),
		newGradeCmd(),
		newPublishCmd(),
	)
	return root
}

// Execute runs the root command and prints mapped errors with their hints.
// This is called by main.main().
func Execute() error {
	return execute(RootCmd, os.Args[1:], os.Stderr)
}

func execute(root *cobra.Command, args []string, stderr io.Writer) error {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return nil
	}

	mapped := MapError(err)
	var cliErr *CLIError
	if errors.As(mapped, &cliErr) {
		if !cliErr.Reported {
			_, _ = fmt.Fprintf(stderr, "Error: %s\n", cliErr.Error())
		}
		if cliErr.Hint != "" {
			_, _ = fmt.Fprintf(stderr, "Hint: %s\n", cliErr.Hint)
		}
		return cliErr
	}
	_, _ = fmt.Fprintf(stderr, "Error: %v\n", mapped)
	return mapped
}

// loadWorkspace resolves the workspace for a command from --dir and
// --verbose. Relative roots are made absolute against the working directory. Logs go to the command's stderr.
func loadWorkspace(cmd *cobra.Command) (*wiring.Workspace, error) {
	root, _ := cmd.Flags().GetString("dir")
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		root = cwd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace %s: %w", root, err)
	}
	verbose, _ := cmd.Flags().GetBool("verbose")

	ws, err := wiring.NewWorkspace(root, nil)
	if err != nil {
		return nil, NewCLIError("invalid configuration", "Check .reqgate.yaml and the REQGATE_*/threshold environment variables", err)
	}
	ws.Logger = wiring.NewLogger(cmd.ErrOrStderr(), verbose || ws.Config.Verbose)
	return ws, nil
}
