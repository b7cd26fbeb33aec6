package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gym-gazebo/gzlaunch/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "gzlaunch",
	Short: "Launch isolated Gazebo simulation instances",
	Long: `gzlaunch starts a Gazebo simulator and its ROS 2 helper nodes with
exclusive network parameters, so several instances can share one host.

Each instance gets:
  - A free port from the configured range
  - ROS_DOMAIN_ID set to that port
  - GAZEBO_MASTER_URI pointing at http://localhost:<port>
  - A robot state publisher, entity spawner and cognition component`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

// Execute runs the root command. SIGINT and SIGTERM cancel in-flight
// port probing.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default /etc/gzlaunch/config.toml)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)
