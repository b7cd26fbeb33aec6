package launch

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gym-gazebo/gzlaunch/internal/ament"
	"github.com/gym-gazebo/gzlaunch/internal/config"
	"github.com/gym-gazebo/gzlaunch/internal/env"
	"github.com/gym-gazebo/gzlaunch/internal/errors"
	"github.com/gym-gazebo/gzlaunch/internal/logging"
	"github.com/gym-gazebo/gzlaunch/internal/port"
	"github.com/gym-gazebo/gzlaunch/internal/system"
)

// Variables set on every launched process.
const (
	DomainIDVar   = "ROS_DOMAIN_ID"
	MasterURIVar  = "GAZEBO_MASTER_URI"
	ModelPathVar  = "GAZEBO_MODEL_PATH"
	PluginPathVar = "GAZEBO_PLUGIN_PATH"
)

// Options selects the simulation flavour.
type Options struct {
	// GUI starts the simulator with its client.
	GUI bool

	// RealSpeed pins the real time factor to 1 instead of running
	// as fast as possible.
	RealSpeed bool

	// World overrides the world file chosen by RealSpeed.
	World string

	// Reserve holds the port until the simulator is started.
	Reserve bool
}

// Composer builds launch descriptions.
type Composer struct {
	Config *config.Config
	FS     system.FileSystem

	// Environ supplies the source environment; nil uses os.Environ.
	Environ func() []string

	// Index locates packages; nil builds one from AMENT_PREFIX_PATH
	// of the source environment.
	Index *ament.Index

	// Allocator finds the exclusive port; nil builds one from Config.
	Allocator *port.Allocator
}

// NewComposer creates a Composer with OS defaults.
func NewComposer(cfg *config.Config) *Composer {
	return &Composer{
		Config: cfg,
		FS:     system.DefaultFS(),
	}
}

// WorldPath returns the world file for opts.
func (c *Composer) WorldPath(opts Options) string {
	if opts.World != "" {
		return opts.World
	}
	name := config.SpeedUpWorld
	if opts.RealSpeed {
		name = config.RealSpeedWorld
	}
	return filepath.Join(c.Config.Simulator.WorldsDir, name)
}

func (c *Composer) allocator() *port.Allocator {
	if c.Allocator != nil {
		return c.Allocator
	}
	n := c.Config.Network
	a := port.NewAllocator(n.Range(), &port.TCPProber{
		Host:    n.ProbeHost,
		Timeout: n.ProbeTimeout.Duration,
	})
	a.MaxAttempts = n.MaxAttempts
	return a
}

// Compose resolves packages, allocates exclusive network parameters and
// builds the process list. If the environment cannot be assembled the
// error is logged and no description is returned.
func (c *Composer) Compose(ctx context.Context, opts Options) (*Description, error) {
	cfg := c.Config
	fsys := c.FS
	if fsys == nil {
		fsys = system.DefaultFS()
	}
	environ := c.Environ
	if environ == nil {
		environ = os.Environ
	}

	source, err := env.Parse(environ())
	if err != nil {
		logging.Error("error assembling launch environment", "error", err)
		return nil, errors.EnvironmentError(err)
	}

	idx := c.Index
	if idx == nil {
		idx = ament.FromEnvironment(source, fsys)
	}

	robot := cfg.Robot
	urdf, err := idx.Resolve(robot.DescriptionPackage, robot.URDF)
	if err != nil {
		return nil, errors.PackageNotFound(robot.DescriptionPackage, err)
	}
	install, err := idx.Prefix(robot.PluginsPackage)
	if err != nil {
		return nil, errors.PackageNotFound(robot.PluginsPackage, err)
	}
	workspace, err := filepath.Abs(filepath.Join(install, ".."))
	if err != nil {
		return nil, errors.Wrap(errors.ExitGeneralError, "failed to resolve workspace", err)
	}
	modelPath := filepath.Join(workspace, robot.SourceDir)
	pluginPath := filepath.Join(workspace, robot.PluginBuildDir)

	world := c.WorldPath(opts)
	if !fsys.Exists(world) {
		return nil, errors.WorldNotFound(world)
	}

	full := source.Clone()
	full.AppendPath(ModelPathVar, filepath.Join(install, "share"), modelPath)
	full.AppendPath(PluginPathVar, filepath.Join(install, "lib"), pluginPath)

	desc := &Description{
		World:      world,
		NodeRunner: append([]string(nil), cfg.Simulator.NodeRunner...),
	}

	alloc := c.allocator()
	if opts.Reserve || cfg.Network.Reserve {
		res, err := alloc.Reserve(ctx)
		if err != nil {
			return nil, errors.PortAllocationFailed(err)
		}
		desc.Reservation = res
		desc.Allocation = &res.Allocation
	} else {
		a, err := alloc.Allocate(ctx)
		if err != nil {
			return nil, errors.PortAllocationFailed(err)
		}
		desc.Allocation = a
	}

	full.Set(DomainIDVar, desc.Allocation.DomainID)
	full.Set(MasterURIVar, desc.Allocation.MasterURI)
	logging.Info("exclusive network parameters",
		DomainIDVar, desc.Allocation.DomainID,
		MasterURIVar, desc.Allocation.MasterURI,
		"reserved", desc.Reservation != nil)

	launchEnv := full.UpperOnly()
	desc.Env = launchEnv

	sim := cfg.Simulator
	simCmd := sim.ServerCommand
	if opts.GUI {
		simCmd = sim.ClientCommand
	}
	cmd := []string{simCmd}
	if sim.Verbose {
		cmd = append(cmd, "--verbose")
	}
	for _, plugin := range sim.Plugins {
		cmd = append(cmd, "-s", plugin)
	}
	cmd = append(cmd, world)

	motors := filepath.Join(install, "share", robot.CognitionPackage, robot.MotorsFile)

	desc.Processes = []Process{
		{
			Name:   simCmd,
			Kind:   KindExecute,
			Cmd:    cmd,
			Env:    launchEnv,
			Output: OutputScreen,
		},
		{
			Name:       robot.StatePublisher,
			Kind:       KindNode,
			Package:    robot.StatePublisher,
			Executable: robot.StatePublisher,
			Args:       []string{urdf},
			Env:        launchEnv,
			Output:     OutputScreen,
		},
		{
			Name:       robot.SpawnerExecutable,
			Kind:       KindNode,
			Package:    robot.SpawnerPackage,
			Executable: robot.SpawnerExecutable,
			Env:        launchEnv,
			Output:     OutputScreen,
		},
		{
			Name:       robot.CognitionExecutable,
			Kind:       KindNode,
			Package:    robot.CognitionPackage,
			Executable: robot.CognitionExecutable,
			Args:       []string{"-motors", motors},
			Env:        launchEnv,
			Output:     OutputScreen,
		},
	}

	logging.Debug("composed launch description", "world", world, "processes", len(desc.Processes))
	return desc, nil
}
