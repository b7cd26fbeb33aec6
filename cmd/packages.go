package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gym-gazebo/gzlaunch/internal/ament"
)

var packagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "List ROS 2 packages on the prefix path",
	Long: `Lists every package registered in the ament resource index of the
prefixes in AMENT_PREFIX_PATH.`,
	Args: cobra.NoArgs,
	RunE: runPackages,
}

func init() {
	rootCmd.AddCommand(packagesCmd)
}

func runPackages(cmd *cobra.Command, args []string) error {
	idx, err := getApp().Index()
	if err != nil {
		return err
	}
	if len(idx.Prefixes) == 0 {
		logWarning("%s is not set; source your ROS 2 workspace first", ament.PrefixPathVar)
		return nil
	}

	names, err := idx.Packages()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}
