package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/oshokin/unity-packer/internal/logger"
	"github.com/oshokin/unity-packer/internal/service/packager"
)

var (
	// force allows init to overwrite existing settings.
	force bool

	// initCmd writes a settings file with every default spelled out.
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with default values",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := packager.InitConfig(configPath, force); err != nil {
				return err
			}

			logger.InfoKV(context.Background(), "Settings written", "path", configPath)

			return nil
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing settings file")
	rootCmd.AddCommand(initCmd)
}
