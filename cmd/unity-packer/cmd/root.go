package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/unity-packer/internal/config"
	"github.com/oshokin/unity-packer/internal/logger"
	"github.com/oshokin/unity-packer/internal/service/packager"
	"github.com/oshokin/unity-packer/internal/version"
)

var (
	// configPath to the settings YAML file.
	configPath string
	// projectRoot is stripped from every path recorded in the package.
	projectRoot string
	// logLevel overrides the console log level.
	logLevel string
	// logFile enables a rotating JSON log.
	logFile string

	// rootCmd represents the base command when called without any subcommands.
	rootCmd = &cobra.Command{
		Use:   "unity-packer",
		Short: "Create .unitypackage files from the command line",
		Long: `Scans a Unity project folder for .meta descriptors and writes them, with their assets,
into a .unitypackage archive that the Unity editor can import.

Settings are read from unity-packer.yaml in the working directory when present;
command-line flags take precedence.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// Execute runs the unity-packer CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error(context.Background(), err)
		os.Exit(1)
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
}

// globalOptions returns packager options filled from the persistent flags.
func globalOptions() *packager.Options {
	return &packager.Options{
		ConfigPath:  configPath,
		ProjectRoot: projectRoot,
		LogLevel:    logLevel,
		LogFile:     logFile,
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to settings file")
	rootCmd.PersistentFlags().
		StringVarP(&projectRoot, "unity-project-root", "u", "", "root of the Unity project, stripped from packed paths")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "console log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write JSON logs to this rotating file")
}
