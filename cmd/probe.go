package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gym-gazebo/gzlaunch/internal/errors"
	"github.com/gym-gazebo/gzlaunch/internal/port"
)

var probeCmd = &cobra.Command{
	Use:   "probe <port>",
	Short: "Check whether a port is in use",
	Long: `Attempts a TCP connection to the port on the configured probe host.
Exits 0 when the port is free and 8 when something is listening.`,
	Args: cobra.ExactArgs(1),
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	p, err := strconv.Atoi(args[0])
	if err != nil || p < 1 || p > 65535 {
		return errors.ValidationError(fmt.Sprintf("invalid port %q", args[0]))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	prober := getApp().Prober
	if prober == nil {
		prober = &port.TCPProber{Host: cfg.Network.ProbeHost, Timeout: cfg.Network.ProbeTimeout.Duration}
	}

	inUse, err := prober.InUse(cmd.Context(), p)
	if err != nil {
		return errors.Wrap(errors.ExitGeneralError, fmt.Sprintf("cannot probe port %d", p), err)
	}
	if inUse {
		return errors.PortInUse(p)
	}

	logSuccess("Port %d is free", p)
	return nil
}
