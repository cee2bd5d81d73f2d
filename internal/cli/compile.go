package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/compiler"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/services"
	"github.com/spf13/cobra"
)

type compileFlags struct {
	tempo  float64
	key    string
	start  string
	end    string
	seed   int64
	pretty bool
	output string
}

func newCompileCmd() *cobra.Command {
	var f compileFlags

	cmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "Compile a score into a timeline",
		Long:  `Compiles a score and writes the timeline, warnings and stats as JSON. Warnings are also printed to stderr.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScore(cmd.Context(), args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			opts := compiler.Options{Tempo: f.tempo, Key: f.key, StartSection: f.start, EndSection: f.end}
			if cmd.Flags().Changed("seed") {
				opts.Seed = &f.seed
			}

			out, err := services.NewCompileService(nil, nil, nil, nil).Compile(cmd.Context(), s, opts, services.Caller{})
			if err != nil {
				return err
			}
			for _, w := range out.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}

			w := cmd.OutOrStdout()
			if f.output != "" {
				file, err := os.Create(f.output)
				if err != nil {
					return fmt.Errorf("failed to create output: %w", err)
				}
				defer file.Close()
				w = file
			}
			return writeJSON(w, out.Result, f.pretty)
		},
	}

	cmd.Flags().Float64Var(&f.tempo, "tempo", 0, "override the score tempo (BPM)")
	cmd.Flags().StringVar(&f.key, "key", "", `override the score key, e.g. "D minor"`)
	cmd.Flags().StringVar(&f.start, "start", "", "first arranged section to compile")
	cmd.Flags().StringVar(&f.end, "end", "", "last arranged section to compile")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "seed for humanize and random arpeggios")
	cmd.Flags().BoolVar(&f.pretty, "pretty", false, "indent the JSON output")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
