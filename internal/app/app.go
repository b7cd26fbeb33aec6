// Package app provides the application context for gzlaunch.
// It allows dependency injection for testing.
package app

import (
	"fmt"
	"os"

	"github.com/gym-gazebo/gzlaunch/internal/ament"
	"github.com/gym-gazebo/gzlaunch/internal/audit"
	"github.com/gym-gazebo/gzlaunch/internal/config"
	"github.com/gym-gazebo/gzlaunch/internal/env"
	"github.com/gym-gazebo/gzlaunch/internal/errors"
	"github.com/gym-gazebo/gzlaunch/internal/launch"
	"github.com/gym-gazebo/gzlaunch/internal/logging"
	"github.com/gym-gazebo/gzlaunch/internal/port"
	"github.com/gym-gazebo/gzlaunch/internal/system"
)

// App holds the application dependencies
type App struct {
	// ConfigPath is the TOML file to load; empty means the default path
	ConfigPath string

	// Config overrides loading from ConfigPath when set
	Config *config.Config

	// FS is used for config, package and world lookups
	FS system.FileSystem

	// Starter launches child processes
	Starter system.ProcessStarter

	// Environ supplies the source environment for launched processes
	Environ func() []string

	// Prober overrides the configured TCP prober
	Prober port.Prober
}

// Option is a function that configures the App
type Option func(*App)

// WithConfigPath sets the config file to load
func WithConfigPath(path string) Option {
	return func(a *App) {
		a.ConfigPath = path
	}
}

// WithConfig sets an already loaded config
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithFS sets a custom file system
func WithFS(fsys system.FileSystem) Option {
	return func(a *App) {
		a.FS = fsys
	}
}

// WithStarter sets a custom process starter
func WithStarter(s system.ProcessStarter) Option {
	return func(a *App) {
		a.Starter = s
	}
}

// WithEnviron sets the source environment
func WithEnviron(environ func() []string) Option {
	return func(a *App) {
		a.Environ = environ
	}
}

// WithProber sets a custom port prober
func WithProber(p port.Prober) Option {
	return func(a *App) {
		a.Prober = p
	}
}

// New creates a new App with the given options.
// Unset dependencies fall back to the OS implementations.
func New(opts ...Option) *App {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.FS == nil {
		app.FS = system.DefaultFS()
	}
	if app.Starter == nil {
		app.Starter = system.DefaultStarter()
	}
	if app.Environ == nil {
		app.Environ = os.Environ
	}

	return app
}

// LoadConfig returns the effective configuration. A missing default
// config file yields the defaults; a missing explicit file is an error.
func (a *App) LoadConfig() (*config.Config, error) {
	if a.Config != nil {
		return a.Config, nil
	}

	path := a.ConfigPath
	optional := path == ""
	if optional {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.Load(a.FS, path, optional)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("cannot load %s", path), err)
	}
	logging.Debug("loaded config", "path", path)

	a.Config = cfg
	return cfg, nil
}

// Allocator builds the port allocator for cfg.
func (a *App) Allocator(cfg *config.Config) *port.Allocator {
	n := cfg.Network
	prober := a.Prober
	if prober == nil {
		prober = &port.TCPProber{Host: n.ProbeHost, Timeout: n.ProbeTimeout.Duration}
	}
	alloc := port.NewAllocator(n.Range(), prober)
	alloc.MaxAttempts = n.MaxAttempts
	return alloc
}

// Composer builds a launch composer wired to the app's dependencies.
func (a *App) Composer(cfg *config.Config) *launch.Composer {
	return &launch.Composer{
		Config:    cfg,
		FS:        a.FS,
		Environ:   a.Environ,
		Allocator: a.Allocator(cfg),
	}
}

// Service builds a launch service using the app's starter.
func (a *App) Service() *launch.Service {
	return &launch.Service{Starter: a.Starter}
}

// History returns the launch event log, or nil when disabled.
func (a *App) History(cfg *config.Config) *audit.Logger {
	if !cfg.History.Enabled {
		return nil
	}
	return audit.NewLogger(cfg.History.Directory())
}

// Index returns the package index of the source environment.
func (a *App) Index() (*ament.Index, error) {
	e, err := env.Parse(a.Environ())
	if err != nil {
		return nil, errors.EnvironmentError(err)
	}
	return ament.FromEnvironment(e, a.FS), nil
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
