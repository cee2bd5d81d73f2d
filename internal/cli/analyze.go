package cli

import (
	"fmt"
	"strings"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/compiler"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Summarize a score's structure and length",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScore(cmd.Context(), args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			summary, err := compiler.Analyze(s)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), summary, true)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Score:       %s\n", summary.Name)
			fmt.Fprintf(w, "Key:         %s\n", summary.Key)
			fmt.Fprintf(w, "Time:        %s @ %g BPM\n", summary.TimeSignature, summary.Tempo)
			fmt.Fprintf(w, "Sections:    %d (%d bars, %g beats)\n", summary.Sections, summary.Bars, summary.Beats)
			fmt.Fprintf(w, "Duration:    %.2fs\n", summary.EstimatedSeconds)
			fmt.Fprintf(w, "Instruments: %s\n", strings.Join(summary.Instruments, ", "))
			fmt.Fprintf(w, "Patterns:    %s\n", strings.Join(summary.Patterns, ", "))
			if len(summary.MissingSections) > 0 {
				fmt.Fprintf(w, "Missing:     %s\n", strings.Join(summary.MissingSections, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}
