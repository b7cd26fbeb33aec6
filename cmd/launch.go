package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/gym-gazebo/gzlaunch/internal/audit"
	"github.com/gym-gazebo/gzlaunch/internal/errors"
	"github.com/gym-gazebo/gzlaunch/internal/launch"
	"github.com/gym-gazebo/gzlaunch/internal/logging"
	"github.com/gym-gazebo/gzlaunch/internal/monitor"
	"github.com/gym-gazebo/gzlaunch/internal/port"
)

var (
	launchGUI       bool
	launchRealSpeed bool
	launchWorld     string
	launchReserve   bool
	launchDryRun    bool
	launchWait      time.Duration
)

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Start a simulation instance",
	Long: `Allocates exclusive network parameters and starts the simulator with
its helper nodes. Processes are started in the background; gzlaunch does
not wait for them or report their exit status.

By default the server runs headless as fast as possible. Use --gui to
start the client and --real-speed to pin the real time factor to 1.`,
	Args: cobra.NoArgs,
	RunE: runLaunch,
}

func init() {
	launchCmd.Flags().BoolVar(&launchGUI, "gui", false, "Start the simulator GUI")
	launchCmd.Flags().BoolVar(&launchRealSpeed, "real-speed", false, "Run at real time instead of maximum speed")
	launchCmd.Flags().StringVarP(&launchWorld, "world", "w", "", "World file (overrides --real-speed)")
	launchCmd.Flags().BoolVar(&launchReserve, "reserve", false, "Hold the port until the simulator starts")
	launchCmd.Flags().BoolVarP(&launchDryRun, "dry-run", "n", false, "Print the processes instead of starting them")
	launchCmd.Flags().DurationVar(&launchWait, "wait", 0, "Wait up to this long for the simulator to listen on its port")
	rootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	return launchWorldWith(cmd, launch.Options{
		GUI:       launchGUI,
		RealSpeed: launchRealSpeed,
		World:     launchWorld,
		Reserve:   launchReserve,
	}, launchDryRun, launchWait)
}

// launchWorldWith composes and starts one instance. Shared with pick.
func launchWorldWith(cmd *cobra.Command, opts launch.Options, dryRun bool, wait time.Duration) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a := getApp()
	desc, err := a.Composer(cfg).Compose(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer desc.Release()

	reportNetwork(desc.Allocation)

	if dryRun {
		return launch.Render(cmd.OutOrStdout(), desc, launch.FormatText)
	}

	logging.Info("launching simulation", "world", desc.World, "gui", opts.GUI)
	started, err := a.Service().Start(cmd.Context(), desc)
	for _, s := range started {
		logSuccess("Started %s (pid %d)", s.Name, s.PID)
	}
	recordLaunch(a.History(cfg), desc, started, err)
	if err != nil {
		if len(started) > 0 {
			logWarning("%d process(es) already started keep running", len(started))
		}
		return err
	}

	if wait > 0 {
		return waitReady(cmd.Context(), a.Allocator(cfg).Prober, a.History(cfg), desc, wait)
	}
	return nil
}

func waitReady(ctx context.Context, prober port.Prober, h *audit.Logger, desc *launch.Description, wait time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	var opts []monitor.Option
	if h != nil {
		opts = append(opts, monitor.WithAuditLogger(h))
	}
	if err := monitor.New(prober, opts...).WaitReady(ctx, desc.Allocation); err != nil {
		return errors.LaunchFailed(desc.Simulator().Name, err)
	}
	logSuccess("Simulator listening on %s", desc.Allocation.MasterURI)
	return nil
}

// recordLaunch appends the launch to the history. Failures only warn.
func recordLaunch(h *audit.Logger, desc *launch.Description, started []launch.Started, startErr error) {
	if h == nil {
		return
	}

	id := desc.Allocation.DomainID
	events := []audit.Event{{Type: audit.EventLaunch, DomainID: id, World: desc.World}}
	for _, s := range started {
		events = append(events, audit.Event{Type: audit.EventStart, DomainID: id, Process: s.Name, PID: s.PID})
	}
	if startErr != nil {
		events = append(events, audit.Event{Type: audit.EventFailure, DomainID: id, Details: startErr.Error()})
	}

	if err := h.Log(events...); err != nil {
		logging.Warn("failed to record launch history", "path", h.Path(), "error", err)
	}
}
