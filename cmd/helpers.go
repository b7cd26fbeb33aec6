package cmd

import (
	"github.com/gym-gazebo/gzlaunch/internal/app"
	"github.com/gym-gazebo/gzlaunch/internal/config"
	"github.com/gym-gazebo/gzlaunch/internal/launch"
	"github.com/gym-gazebo/gzlaunch/internal/port"
)

// getApp returns the application context, honoring --config.
func getApp() *app.App {
	a := app.Default
	if configPath != "" && a.ConfigPath != configPath {
		a.ConfigPath = configPath
		a.Config = nil
	}
	return a
}

// loadConfig loads the effective configuration.
func loadConfig() (*config.Config, error) {
	return getApp().LoadConfig()
}

// reportNetwork shows the exclusive network parameters to the user.
func reportNetwork(a *port.Allocation) {
	logInfo("%s=%s", launch.DomainIDVar, a.DomainID)
	logInfo("%s=%s", launch.MasterURIVar, a.MasterURI)
}
