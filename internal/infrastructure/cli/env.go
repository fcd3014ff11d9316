package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/reqgate/internal/infrastructure/wiring"
)

func newEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Inspect the evaluation environment",
	}
	cmd.AddCommand(newEnvCheckCmd())
	return cmd
}

func newEnvCheckCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify required variables and model gateway connectivity",
		Long: `Verify required variables and model gateway connectivity.

Checks OPENROUTER_API_KEY, OPENROUTER_BASE_URL, ANTHROPIC_API_KEY and
ANTHROPIC_BASE_URL, then lists models from the gateway within HEALTH_TIMEOUT.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cmd)
			if err != nil {
				return err
			}
			rep := wiring.BuildAppServices(ws).Health.Check(contextOf(cmd))

			w := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(rep, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal report: %w", err)
				}
				fmt.Fprintln(w, string(data))
			} else {
				printHealthReport(w, rep)
			}

			if !rep.Passed {
				return ErrEnvCheckFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}
