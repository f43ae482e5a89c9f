package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the addressbook release version.
const Version = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "addressbook v%s\n", Version)
		},
	}
}
