package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gym-gazebo/gzlaunch/internal/launch"
	"github.com/gym-gazebo/gzlaunch/internal/logging"
	"github.com/gym-gazebo/gzlaunch/internal/tui"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactive world picker",
	Long: `Opens an interactive TUI for selecting a world and launching it.

Use arrow keys or j/k to navigate, / to filter, Enter to launch.

Actions:
  Enter  - Launch the selected world
  p      - Print the launch plan for the selected world
  g      - Toggle the simulator GUI
  q/Esc  - Quit`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	logging.Debug("picker mode started")

	worlds, dir, err := listWorlds()
	if err != nil {
		return err
	}
	if len(worlds) == 0 {
		logInfo("No worlds found in %s", dir)
		return nil
	}

	result, err := tui.RunPicker(worlds)
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	logging.Debug("picker result", "action", result.Action)

	if result.World == nil {
		return nil
	}
	opts := launch.Options{
		GUI:       result.GUI,
		RealSpeed: result.World.RealSpeed(),
		World:     result.World.Path,
	}

	switch result.Action {
	case tui.ActionLaunch:
		return launchWorldWith(cmd, opts, false, 0)
	case tui.ActionPlan:
		return launchWorldWith(cmd, opts, true, 0)
	}

	return nil
}
