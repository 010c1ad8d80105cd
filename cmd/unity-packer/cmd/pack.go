package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/unity-packer/internal/service/packager"
)

var (
	// packageName is the output name; .unitypackage replaces its extension.
	packageName string
	// analysedPath is the folder scanned for descriptors.
	analysedPath string
	// excludePatterns are added to the exclusions of the settings file.
	excludePatterns []string
	// reproducible zeroes timestamps in the package.
	reproducible bool

	// packCmd creates a package.
	packCmd = &cobra.Command{
		Use:   "pack",
		Short: "Create a .unitypackage",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signalContext()
			defer stop()

			return packager.Run(ctx, packOptions())
		},
	}
)

// packOptions combines the global flags with the pack flags.
func packOptions() *packager.Options {
	options := globalOptions()
	options.PackageName = packageName
	options.AnalysedPath = analysedPath
	options.Exclude = excludePatterns
	options.Reproducible = reproducible

	return options
}

// addScanFlags registers the flags that select what is scanned.
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().
		StringVarP(&analysedPath, "analysed-path", "p", packager.DefaultAnalysedPath, "path to analyse")
	cmd.Flags().
		StringSliceVarP(&excludePatterns, "exclude", "e", nil, "glob of paths to skip, relative to the analysed path")
}

// addPackFlags registers the flags shared by pack and watch.
func addPackFlags(cmd *cobra.Command) {
	addScanFlags(cmd)
	cmd.Flags().StringVarP(&packageName, "package-name", "n", "", "name of the .unitypackage to create")
	cmd.Flags().BoolVar(&reproducible, "reproducible", false, "zero timestamps so equal inputs give equal packages")

	_ = cmd.MarkFlagRequired("package-name")
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	addPackFlags(packCmd)
	rootCmd.AddCommand(packCmd)
}
