package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/paramgen/internal/output"
	"github.com/simonhull/paramgen/internal/params"
)

// LintCmd creates and returns the 'lint' command
func LintCmd() *cobra.Command {
	var schema string

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Report problems in a parameter table",
		Long: `Inspect a parameter table for problems the generator passes through
unchecked: duplicate or case-colliding names, names that are not identifiers
or are Python keywords, docs that would break a string literal, empty docs.

Exits non-zero when an error-severity issue is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd); err != nil {
				return err
			}

			table, source, err := loadTable(schema)
			if err != nil {
				return err
			}

			issues := params.Lint(table)
			if len(issues) == 0 {
				output.Success("No issues found in " + source)
				return nil
			}

			errorCount := 0
			output.Info(fmt.Sprintf("%d issue(s) in %s:", len(issues), source))
			for _, issue := range issues {
				if issue.Severity == params.SeverityError {
					errorCount++
				}
				output.Step(issue.String())
			}

			if params.HasErrors(issues) {
				return fmt.Errorf("lint found %d error(s)", errorCount)
			}
			output.Warn(fmt.Sprintf("%d warning(s)", len(issues)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&schema, "schema", "s", "", "Schema file (default: built-in shared params)")

	return cmd
}
