package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gym-gazebo/gzlaunch/internal/errors"
	"github.com/gym-gazebo/gzlaunch/internal/launch"
	"github.com/gym-gazebo/gzlaunch/internal/tui"
)

var worldsCmd = &cobra.Command{
	Use:   "worlds",
	Short: "List available world files",
	Args:  cobra.NoArgs,
	RunE:  runWorlds,
}

func init() {
	rootCmd.AddCommand(worldsCmd)
}

// listWorlds lists the worlds of the configured worlds directory.
func listWorlds() ([]launch.World, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", err
	}
	dir := cfg.Simulator.WorldsDir
	worlds, err := launch.ListWorlds(getApp().FS, dir)
	if err != nil {
		return nil, dir, errors.Wrap(errors.ExitWorldNotFound, "cannot list worlds", err)
	}
	return worlds, dir, nil
}

func runWorlds(cmd *cobra.Command, args []string) error {
	worlds, dir, err := listWorlds()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), tui.SimpleList(worlds, dir))
	return nil
}
