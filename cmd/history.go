package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/gym-gazebo/gzlaunch/internal/audit"
)

var (
	historyDomain string
	historyClear  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past launches",
	Long: `Lists recorded launch events: the allocated ROS_DOMAIN_ID, the world and
the pid of every process started. gzlaunch does not track whether those
processes are still running.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&historyDomain, "domain", "d", "", "Only show events for this ROS_DOMAIN_ID")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete the history")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	h := getApp().History(cfg)
	if h == nil {
		logInfo("Launch history is disabled")
		return nil
	}

	if historyClear {
		if err := h.Clear(); err != nil {
			return err
		}
		logSuccess("Cleared %s", h.Path())
		return nil
	}

	events, err := h.Events(historyDomain)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		logInfo("No launches recorded")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tDOMAIN\tEVENT\tDETAIL")
	fmt.Fprintln(w, "----\t------\t-----\t------")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Timestamp.Local().Format(time.DateTime), e.DomainID, e.Type, eventDetail(e))
	}
	return w.Flush()
}

func eventDetail(e audit.Event) string {
	switch e.Type {
	case audit.EventLaunch:
		return e.World
	case audit.EventStart:
		return fmt.Sprintf("%s (pid %d)", e.Process, e.PID)
	default:
		return e.Details
	}
}
