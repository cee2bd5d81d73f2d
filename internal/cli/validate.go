package cli

import (
	"fmt"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/compiler"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a score for problems without compiling it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScore(cmd.Context(), args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			problems := compiler.Validate(s)
			for _, p := range problems {
				fmt.Fprintf(cmd.OutOrStdout(), "✗ %s\n", p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%s: %d problem(s)", args[0], len(problems))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", args[0])
			return nil
		},
	}
}
