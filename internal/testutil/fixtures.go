package testutil

import (
	"embed"

	"github.com/gym-gazebo/gzlaunch/internal/config"
)

//go:embed fixtures/*.toml
var fixturesFS embed.FS

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// LoadConfigFixture parses a config fixture over the defaults.
func LoadConfigFixture(name string) (*config.Config, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	return config.Parse(data)
}

// ValidConfig returns the valid config fixture.
func ValidConfig() (*config.Config, error) {
	return LoadConfigFixture("valid_config.toml")
}

// InvalidConfigData returns the raw invalid config fixture. It cannot be
// parsed into a Config since Parse validates.
func InvalidConfigData() ([]byte, error) {
	return LoadFixture("invalid_config.toml")
}
