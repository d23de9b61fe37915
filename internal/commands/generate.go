package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/paramgen/internal/config"
	"github.com/simonhull/paramgen/internal/generator"
	"github.com/simonhull/paramgen/internal/logger"
	"github.com/simonhull/paramgen/internal/output"
	"github.com/simonhull/paramgen/internal/verify"
)

// GenerateCmd creates and returns the 'generate' command
func GenerateCmd() *cobra.Command {
	var schema, out, templates, python string
	var all, force, skip, diff, dryRun, verifyOutput bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the shared-params module",
		Long: `Generate the shared-params module from the built-in table or a schema file.

Without --out or --all the module is printed to stdout. With --out (or --all,
which uses the targets in paramgen.yml) files are written safely:

  - unchanged files are left alone
  - changed files are resolved interactively, or with --force, --skip or --diff
  - all files of one run are written together or not at all

Examples:
  paramgen generate > shared.py
  paramgen generate --out python/pyspark/ml/param/shared.py --diff
  paramgen generate --schema tree.paramgen.yml --out tree.py --force
  paramgen generate --all --verify`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if python != "" {
				cfg.Python = python
			}
			r := newRenderer(cfg, templates)
			checker := verify.New(&verify.Options{Python: cfg.Python, Stderr: cmd.ErrOrStderr(), Spinner: true})

			if !all && out == "" {
				src, err := renderTarget(r, config.Target{Schema: schema})
				if err != nil {
					return err
				}
				if verifyOutput {
					if err := checker.CompileSource(ctx, "shared.py", src); err != nil {
						return err
					}
				}
				_, err = cmd.OutOrStdout().Write(src)
				return err
			}

			resolver, err := generator.NewResolver(force, skip, diff)
			if err != nil {
				return err
			}

			targets, err := resolveTargets(cfg, schema, out, all)
			if err != nil {
				return err
			}

			ops := make([]*generator.WriteFileOp, 0, len(targets))
			for _, target := range targets {
				src, err := renderTarget(r, target)
				if err != nil {
					return err
				}
				ops = append(ops, &generator.WriteFileOp{Path: target.Out, Content: src, Mode: 0644})
			}

			generic := make([]generator.Operation, len(ops))
			for i, op := range ops {
				generic[i] = op
			}
			if err := generator.Execute(ctx, generic, generator.ExecuteOptions{
				DryRun:   dryRun,
				Resolver: resolver,
				Writer:   output.Writer(),
			}); err != nil {
				return err
			}
			if dryRun {
				return nil
			}

			written := 0
			var toVerify []string
			for _, op := range ops {
				if op.Writes() {
					written++
				}
				if !op.Skipped() {
					toVerify = append(toVerify, op.Path)
				}
			}
			logger.Info("generation finished", logger.F("targets", len(ops)), logger.F("written", written))

			if verifyOutput && len(toVerify) > 0 {
				if err := checker.CompileAll(ctx, toVerify); err != nil {
					return err
				}
				output.Success(fmt.Sprintf("Verified %d file(s) compile with %s", len(toVerify), cfg.Python))
			}

			output.Success(fmt.Sprintf("Generated %d of %d file(s)", written, len(ops)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&schema, "schema", "s", "", "Schema file (default: built-in shared params)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the module to this file instead of stdout")
	cmd.Flags().BoolVar(&all, "all", false, "Generate every target listed in the config file")
	cmd.Flags().StringVar(&templates, "templates", "", "Directory containing a templates/ dir overriding the embedded templates")
	cmd.Flags().StringVar(&python, "python", "", "Python interpreter used by --verify (default from config, python3)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite changed files without asking")
	cmd.Flags().BoolVar(&skip, "skip", false, "Keep changed files without asking")
	cmd.Flags().BoolVar(&diff, "diff", false, "Show the diff of changed files before asking")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be written without writing")
	cmd.Flags().BoolVar(&verifyOutput, "verify", false, "Compile the generated modules with python -m py_compile")

	return cmd
}
