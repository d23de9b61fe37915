package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/paramgen"
)

// VersionCmd creates and returns the 'version' command
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "paramgen version %s\n", paramgen.Version)
		},
	}
}
