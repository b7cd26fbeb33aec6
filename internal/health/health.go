package health

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/gym-gazebo/gzlaunch/internal/ament"
	"github.com/gym-gazebo/gzlaunch/internal/config"
	"github.com/gym-gazebo/gzlaunch/internal/launch"
	"github.com/gym-gazebo/gzlaunch/internal/port"
	"github.com/gym-gazebo/gzlaunch/internal/system"
)

// Status represents the outcome of a check
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"

	// PortProbeAttempts bounds the free-port check.
	PortProbeAttempts = 16
)

// Check is a single preflight check result.
type Check struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// CheckOptions holds the dependencies of a preflight run.
type CheckOptions struct {
	Config *config.Config
	Index  *ament.Index
	FS     system.FileSystem
	Prober port.Prober
}

// Report contains the results of all checks
type Report struct {
	Checks []Check `json:"checks"`
}

func (r *Report) add(name string, status Status, format string, args ...any) {
	r.Checks = append(r.Checks, Check{Name: name, Status: status, Detail: fmt.Sprintf(format, args...)})
}

// Summary returns the worst status in the report.
func (r *Report) Summary() Status {
	summary := StatusHealthy
	for _, c := range r.Checks {
		switch c.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			summary = StatusDegraded
		}
	}
	return summary
}

// CheckPackages verifies every package the launch needs is installed.
func CheckPackages(r *Report, cfg *config.Config, idx *ament.Index) {
	robot := cfg.Robot
	seen := make(map[string]bool)
	for _, pkg := range []string{
		robot.DescriptionPackage,
		robot.PluginsPackage,
		robot.StatePublisher,
		robot.SpawnerPackage,
		robot.CognitionPackage,
	} {
		if seen[pkg] {
			continue
		}
		seen[pkg] = true

		prefix, err := idx.Prefix(pkg)
		if err != nil {
			r.add("package "+pkg, StatusUnhealthy, "%v", err)
			continue
		}
		r.add("package "+pkg, StatusHealthy, "%s", prefix)
	}

	if urdf, err := idx.Resolve(robot.DescriptionPackage, robot.URDF); err != nil {
		r.add("urdf", StatusUnhealthy, "%v", err)
	} else if !idx.FS.Exists(urdf) {
		r.add("urdf", StatusUnhealthy, "%s does not exist", urdf)
	} else {
		r.add("urdf", StatusHealthy, "%s", urdf)
	}
}

// CheckWorlds verifies the default worlds are present. Missing default
// worlds only degrade the install since --world can still be used.
func CheckWorlds(r *Report, cfg *config.Config, fsys system.FileSystem) {
	dir := cfg.Simulator.WorldsDir
	worlds, err := launch.ListWorlds(fsys, dir)
	if err != nil {
		r.add("worlds", StatusUnhealthy, "%v", err)
		return
	}
	r.add("worlds", StatusHealthy, "%d in %s", len(worlds), dir)

	for _, name := range []string{config.RealSpeedWorld, config.SpeedUpWorld} {
		path := filepath.Join(dir, name)
		if fsys.Exists(path) {
			r.add("world "+name, StatusHealthy, "%s", path)
		} else {
			r.add("world "+name, StatusDegraded, "%s not found", path)
		}
	}
}

// CheckPorts verifies a free port can be found in the configured range.
func CheckPorts(ctx context.Context, r *Report, cfg *config.Config, prober port.Prober) {
	rng := cfg.Network.Range()
	alloc := port.NewAllocator(rng, prober)
	alloc.MaxAttempts = PortProbeAttempts

	a, err := alloc.Allocate(ctx)
	if err != nil {
		r.add("ports", StatusUnhealthy, "no free port in %s: %v", rng, err)
		return
	}
	r.add("ports", StatusHealthy, "%d free in %s", a.Port, rng)
}

// Run performs all preflight checks.
func Run(ctx context.Context, opts CheckOptions) *Report {
	r := &Report{}

	fsys := opts.FS
	if fsys == nil {
		fsys = system.DefaultFS()
	}

	if err := opts.Config.Validate(); err != nil {
		r.add("config", StatusUnhealthy, "%v", err)
		return r
	}
	r.add("config", StatusHealthy, "valid")

	if opts.Index != nil {
		if len(opts.Index.Prefixes) == 0 {
			r.add("packages", StatusUnhealthy, "%s is empty", ament.PrefixPathVar)
		} else {
			CheckPackages(r, opts.Config, opts.Index)
		}
	}

	CheckWorlds(r, opts.Config, fsys)

	prober := opts.Prober
	if prober == nil {
		n := opts.Config.Network
		prober = &port.TCPProber{Host: n.ProbeHost, Timeout: n.ProbeTimeout.Duration}
	}
	CheckPorts(ctx, r, opts.Config, prober)

	return r
}
