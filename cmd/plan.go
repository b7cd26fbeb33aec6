package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gym-gazebo/gzlaunch/internal/launch"
)

var (
	planGUI       bool
	planRealSpeed bool
	planWorld     string
	planFormat    string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the launch description without starting anything",
	Long: `Resolves packages, allocates network parameters and prints the full
launch description: world, network parameters, environment and processes.

Formats: text (default), json, yaml.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().BoolVar(&planGUI, "gui", false, "Plan with the simulator GUI")
	planCmd.Flags().BoolVar(&planRealSpeed, "real-speed", false, "Plan a real time world")
	planCmd.Flags().StringVarP(&planWorld, "world", "w", "", "World file (overrides --real-speed)")
	planCmd.Flags().StringVarP(&planFormat, "format", "f", launch.FormatText, "Output format: text, json or yaml")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	desc, err := getApp().Composer(cfg).Compose(cmd.Context(), launch.Options{
		GUI:       planGUI,
		RealSpeed: planRealSpeed,
		World:     planWorld,
	})
	if err != nil {
		return err
	}
	defer desc.Release()

	return launch.Render(cmd.OutOrStdout(), desc, planFormat)
}
