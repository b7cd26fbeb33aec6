// Package health provides preflight checks for a simulation launch.
//
// Checks verify that the packages a launch needs are installed, that the
// default world files are present and that a free port exists in the
// configured range.
//
// # Health Status
//
//	StatusHealthy   - Check passed
//	StatusDegraded  - Launch possible with explicit options
//	StatusUnhealthy - Launch will fail
//
// # Running Checks
//
//	report := health.Run(ctx, health.CheckOptions{
//	    Config: cfg,
//	    Index:  idx,
//	})
//	status := report.Summary()
//
// Individual checks (CheckPackages, CheckWorlds, CheckPorts) append to
// a Report and can be used alone.
package health
