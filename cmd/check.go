package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gym-gazebo/gzlaunch/internal/errors"
	"github.com/gym-gazebo/gzlaunch/internal/health"
)

var checkFormat string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run preflight checks",
	Long: `Verifies that the configured packages are installed, the default worlds
exist and a free port is available. Exits non-zero when a launch would fail.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "Output format: text or json")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a := getApp()
	idx, err := a.Index()
	if err != nil {
		return err
	}

	report := health.Run(cmd.Context(), health.CheckOptions{
		Config: cfg,
		Index:  idx,
		FS:     a.FS,
		Prober: a.Prober,
	})

	out := cmd.OutOrStdout()
	switch checkFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	case "text":
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CHECK\tSTATUS\tDETAIL")
		fmt.Fprintln(w, "-----\t------\t------")
		for _, c := range report.Checks {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name, c.Status, c.Detail)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	default:
		return errors.ValidationError(fmt.Sprintf("unknown format %q (want text or json)", checkFormat))
	}

	switch report.Summary() {
	case health.StatusUnhealthy:
		logError("Preflight checks failed")
		return errors.New(errors.ExitGeneralError, "preflight checks failed")
	case health.StatusDegraded:
		logWarning("Launch possible, but some defaults are missing")
	default:
		logSuccess("Ready to launch")
	}
	return nil
}
