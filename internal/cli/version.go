package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/solrdex/internal/version"
)

// NewVersionCommand creates the version command. It needs no configuration.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// Overrides the root hook so no config or client is required.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
