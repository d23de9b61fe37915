package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/paramgen"
	"github.com/simonhull/paramgen/internal/config"
	"github.com/simonhull/paramgen/internal/output"
	"github.com/simonhull/paramgen/internal/params"
	"github.com/simonhull/paramgen/internal/render"
)

// RootCmd creates and returns the root command for the paramgen CLI.
// Run without arguments it prints the built-in shared-params module.
func RootCmd() *cobra.Command {
	var verbose bool
	var configPath string

	cmd := &cobra.Command{
		Use:   "paramgen",
		Short: "Generate the Python shared-params mixin module",
		Long: `paramgen emits the Python module declaring the shared parameter mixins
(HasMaxIter, HasFeaturesCol, ..., DecisionTreeParams) used across a family of
estimator classes, with set<Name>/get<Name> accessors for every parameter.

Run without arguments to print the built-in module to stdout:

  paramgen > python/pyspark/ml/param/shared.py

Use 'paramgen generate' to write files safely, 'paramgen check' to detect
stale generated files and 'paramgen lint' to inspect a parameter table.`,
		Version:       paramgen.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
		// The bare command is the canonical entry point: it always renders
		// the built-in table with default settings and ignores paramgen.yml
		// and PARAMGEN_* variables.
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := render.New().Module(params.Shared())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(src)
			return err
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultFile, "Path to the paramgen config file")

	return cmd
}

// NewApp returns the root command with every subcommand registered
func NewApp() *cobra.Command {
	root := RootCmd()
	root.AddCommand(GenerateCmd())
	root.AddCommand(CheckCmd())
	root.AddCommand(LintCmd())
	root.AddCommand(SchemaCmd())
	root.AddCommand(VersionCmd())
	return root
}
