package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonhull/paramgen/internal/generator"
	"github.com/simonhull/paramgen/internal/output"
)

// ErrDrift is returned by check when a generated file is out of date.
var ErrDrift = errors.New("generated files are out of date")

// CheckCmd creates and returns the 'check' command
func CheckCmd() *cobra.Command {
	var schema, out, templates string
	var all bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify generated files are up to date",
		Long: `Re-render each target and compare it with the file on disk.

Differences are printed as a unified diff and the command exits non-zero,
which makes it suitable for CI:

  paramgen check --out python/pyspark/ml/param/shared.py
  paramgen check --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && out == "" {
				return fmt.Errorf("check needs --out or --all")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			targets, err := resolveTargets(cfg, schema, out, all)
			if err != nil {
				return err
			}
			r := newRenderer(cfg, templates)

			stale := 0
			for _, target := range targets {
				src, err := renderTarget(r, target)
				if err != nil {
					return err
				}

				existing, err := os.ReadFile(target.Out)
				switch {
				case errors.Is(err, fs.ErrNotExist):
					stale++
					output.Error(target.Out + " is missing")
					continue
				case err != nil:
					return fmt.Errorf("failed to read %s: %w", target.Out, err)
				}

				diff := generator.GenerateDiff(target.Out+" (on disk)", target.Out+" (generated)", existing, src, &generator.DiffOptions{ShowLineNums: true})
				if diff == "" {
					output.Verbose(target.Out + " is up to date")
					continue
				}

				stale++
				added, removed := generator.DiffStat(existing, src)
				output.Error(fmt.Sprintf("%s is out of date (+%d -%d lines)", target.Out, added, removed))
				fmt.Fprint(cmd.OutOrStdout(), diff)
			}

			if stale > 0 {
				return fmt.Errorf("%d of %d file(s): %w; run 'paramgen generate' to update", stale, len(targets), ErrDrift)
			}
			output.Success(fmt.Sprintf("%d file(s) up to date", len(targets)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&schema, "schema", "s", "", "Schema file (default: built-in shared params)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Generated file to check")
	cmd.Flags().BoolVar(&all, "all", false, "Check every target listed in the config file")
	cmd.Flags().StringVar(&templates, "templates", "", "Directory containing a templates/ dir overriding the embedded templates")

	return cmd
}
