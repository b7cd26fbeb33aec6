package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gym-gazebo/gzlaunch/internal/errors"
	"github.com/gym-gazebo/gzlaunch/internal/launch"
	"github.com/gym-gazebo/gzlaunch/internal/port"
)

var (
	portsCount  int
	portsExport bool
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "Allocate exclusive network parameters",
	Long: `Finds free ports in the configured range and prints the matching
ROS_DOMAIN_ID and GAZEBO_MASTER_URI values.

With --count, every port is held until all are found so the result
contains no duplicates. With --export the output can be evaluated by
a shell:

  eval "$(gzlaunch ports --export)"`,
	Args: cobra.NoArgs,
	RunE: runPorts,
}

func init() {
	portsCmd.Flags().IntVarP(&portsCount, "count", "n", 1, "Number of distinct allocations")
	portsCmd.Flags().BoolVar(&portsExport, "export", false, "Print shell export statements")
	rootCmd.AddCommand(portsCmd)
}

func runPorts(cmd *cobra.Command, args []string) error {
	if portsCount < 1 {
		return errors.ValidationError("--count must be at least 1")
	}
	if portsExport && portsCount != 1 {
		return errors.ValidationError("--export requires --count 1")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	alloc := getApp().Allocator(cfg)

	var held []*port.Reservation
	defer func() {
		for _, r := range held {
			_ = r.Release()
		}
	}()
	for len(held) < portsCount {
		r, err := alloc.Reserve(cmd.Context())
		if err != nil {
			return errors.PortAllocationFailed(err)
		}
		held = append(held, r)
	}

	out := cmd.OutOrStdout()
	if portsExport {
		fmt.Fprintln(out, strings.Join(launch.ExportLines(&held[0].Allocation), "\n"))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PORT\tROS_DOMAIN_ID\tGAZEBO_MASTER_URI")
	fmt.Fprintln(w, "----\t-------------\t-----------------")
	for _, r := range held {
		fmt.Fprintf(w, "%d\t%s\t%s\n", r.Port, r.DomainID, r.MasterURI)
	}
	return w.Flush()
}
