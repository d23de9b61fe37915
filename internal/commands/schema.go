package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/paramgen/internal/params"
)

// SchemaCmd creates and returns the 'schema' command, which prints the
// built-in table as a schema file to start a custom table from.
func SchemaCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the built-in table as a schema file",
		Example: `  paramgen schema > shared.paramgen.yml
  paramgen generate --schema shared.paramgen.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := params.MarshalSchema(name, params.Shared())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "shared", "Value of the schema's name field")

	return cmd
}
