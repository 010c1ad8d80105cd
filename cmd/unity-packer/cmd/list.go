package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/unity-packer/internal/service/packager"
)

// listCmd prints what pack would write.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the entries a pack would contain without writing a package",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signalContext()
		defer stop()

		options := globalOptions()
		options.AnalysedPath = analysedPath
		options.Exclude = excludePatterns

		return packager.List(ctx, options, cmd.OutOrStdout())
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	addScanFlags(listCmd)
	rootCmd.AddCommand(listCmd)
}
