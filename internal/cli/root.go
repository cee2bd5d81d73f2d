// Package cli is the etherdaw command line: compile, validate and analyze
// score files, or serve the compiler over HTTP
package cli

import (
	"context"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree. cfg is used by serve and for
// the optional backends.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "etherdaw",
		Short:         "Compile music scores into timelines",
		Long:          `Compiles EtherDAW score documents (JSON, YAML or .ethd scripts) into time-resolved note timelines.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newCompileCmd(),
		newValidateCmd(),
		newAnalyzeCmd(),
		newServeCmd(cfg, version),
	)
	return rootCmd
}

// Execute runs the command line with os.Args
func Execute(ctx context.Context, cfg *config.Config, version string) error {
	return NewRootCommand(cfg, version).ExecuteContext(ctx)
}
