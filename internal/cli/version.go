package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const modulePath = "github.com/emphz/rfqcart"

// Version is set at build time with -ldflags "-X".
var Version = "0.1.0-dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the rfq version",
		Args:  cobra.NoArgs,
		// Version needs no configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "rfq v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
