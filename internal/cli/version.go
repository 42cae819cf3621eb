package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aptos-labs/create-aptos-dapp/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  usageArgs(cobra.NoArgs),
		// Printing the version never needs configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "create-aptos-dapp %s\n", version.GetFullVersion())
			return err
		},
	}
}
