package commands

import "github.com/spf13/cobra"

// NewRootCmd builds the scorecard CLI command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "scorecard",
		Short:         "Resolve model test matrices against the device and runtime catalogs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		newMatrixCmd(),
		newPrecisionsCmd(),
		newDevicesCmd(),
		newPathsCmd(),
		newVersionsCmd(),
	)
	return rootCmd
}
