package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/unity-packer/internal/service/watcher"
)

var (
	// debounce overrides the settle time of the settings file.
	debounce time.Duration

	// watchCmd repacks on every change.
	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Create a .unitypackage and rebuild it whenever the analysed path changes",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signalContext()
			defer stop()

			options := packOptions()
			options.WatchDebounce = debounce

			return watcher.Run(ctx, options)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	addPackFlags(watchCmd)
	watchCmd.Flags().DurationVar(&debounce, "debounce", 0, "time to wait for changes to settle (default from settings, 500ms)")
	rootCmd.AddCommand(watchCmd)
}
