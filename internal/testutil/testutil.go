// Package testutil provides test utilities for command and integration tests
package testutil

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gym-gazebo/gzlaunch/internal/app"
	"github.com/gym-gazebo/gzlaunch/internal/config"
	"github.com/gym-gazebo/gzlaunch/internal/logging"
	"github.com/gym-gazebo/gzlaunch/internal/port"
	"github.com/gym-gazebo/gzlaunch/internal/system"
)

// Layout of the fake ROS 2 install.
const (
	WorkspacePrefix = "/ws/install/mara_gazebo_plugins"
	DistroPrefix    = "/opt/ros/dashing"
	WorldsDir       = "/ws/src/gym-gazebo2/worlds"

	resourceIndex = "share/ament_index/resource_index/packages"
)

// TestEnv holds the test environment
type TestEnv struct {
	T       *testing.T
	TmpDir  string
	FS      *system.MockFS
	Starter *system.MockStarter
	Config  *config.Config
	Environ []string
	App     *app.App

	// Output captures user-facing messages
	Output *bytes.Buffer

	mu   sync.Mutex
	busy map[int]bool
}

// NewTestEnv creates a test environment with an installed MARA workspace,
// a mock starter and a fake prober, and installs it as app.Default until
// the test ends.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()

	cfg := config.Default()
	cfg.Simulator.WorldsDir = WorldsDir
	cfg.History.Dir = filepath.Join(tmpDir, "state")

	env := &TestEnv{
		T:       t,
		TmpDir:  tmpDir,
		FS:      system.NewMockFS(),
		Starter: system.NewMockStarter(),
		Config:  cfg,
		Environ: []string{
			"AMENT_PREFIX_PATH=" + WorkspacePrefix + ":" + DistroPrefix,
			"HOME=/home/ros",
			"lower=1",
		},
		Output: &bytes.Buffer{},
		busy:   make(map[int]bool),
	}
	InstallWorkspace(env.FS, cfg)

	env.App = app.New(
		app.WithConfig(cfg),
		app.WithFS(env.FS),
		app.WithStarter(env.Starter),
		app.WithEnviron(func() []string { return env.Environ }),
		app.WithProber(env.Prober()),
	)

	originalDefault := app.Default
	app.SetDefault(env.App)

	origStdout, origStderr := logging.Stdout, logging.Stderr
	logging.Stdout, logging.Stderr = env.Output, env.Output

	t.Cleanup(func() {
		app.SetDefault(originalDefault)
		logging.Stdout, logging.Stderr = origStdout, origStderr
	})

	return env
}

// InstallWorkspace registers every package cfg names, the URDF and the
// default worlds in fsys. The plugins package lives in its own workspace
// prefix; everything else in the distro prefix.
func InstallWorkspace(fsys *system.MockFS, cfg *config.Config) {
	r := cfg.Robot

	AddPackage(fsys, WorkspacePrefix, r.PluginsPackage)
	for _, pkg := range []string{r.DescriptionPackage, r.StatePublisher, r.SpawnerPackage, r.CognitionPackage} {
		AddPackage(fsys, DistroPrefix, pkg)
	}
	fsys.AddFile(filepath.Join(DistroPrefix, "share", r.DescriptionPackage, r.URDF), []byte("<robot name=\"mara\"/>"))

	dir := cfg.Simulator.WorldsDir
	fsys.AddFile(filepath.Join(dir, config.RealSpeedWorld), nil)
	fsys.AddFile(filepath.Join(dir, config.SpeedUpWorld), nil)
}

// AddPackage registers pkg in the resource index of prefix.
func AddPackage(fsys *system.MockFS, prefix, pkg string) {
	fsys.AddFile(filepath.Join(prefix, resourceIndex, pkg), nil)
}

// SetBusy marks ports as in use for the fake prober.
func (e *TestEnv) SetBusy(ports ...int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, p := range ports {
		e.busy[p] = true
	}
}

// Prober returns a prober reporting the ports marked by SetBusy.
func (e *TestEnv) Prober() port.Prober {
	return port.ProberFunc(func(ctx context.Context, p int) (bool, error) {
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.busy[p], nil
	})
}
