package cli

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/reqgate/internal/infrastructure/wiring"
)

func newGradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grade <file.yaml>",
		Short: "Grade a requirement document's structure, completeness and template compliance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cmd)
			if err != nil {
				return err
			}
			out, err := wiring.BuildAppServices(ws).Grade.Grade(args[0])
			if err != nil {
				return err
			}
			printGradeOutcome(cmd.OutOrStdout(), out)
			if !out.Passed() {
				return ErrGradeFailed
			}
			return nil
		},
	}
}
