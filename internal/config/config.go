package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/gym-gazebo/gzlaunch/internal/port"
	"github.com/gym-gazebo/gzlaunch/internal/system"
)

const (
	DefaultConfigDir  = "/etc/gzlaunch"
	DefaultConfigFile = "config.toml"
	DefaultWorldsDir  = "/usr/share/gym-gazebo/worlds"

	// World files selected by simulation speed.
	RealSpeedWorld = "empty__state_plugin.world"
	SpeedUpWorld   = "empty__state_plugin__speed_up.world"
)

// DefaultConfigPath returns /etc/gzlaunch/config.toml.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir, DefaultConfigFile)
}

// Duration is a time.Duration written as a string ("500ms") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the complete launcher configuration.
type Config struct {
	Network   Network   `toml:"network"`
	Simulator Simulator `toml:"simulator"`
	Robot     Robot     `toml:"robot"`
	History   History   `toml:"history"`
}

// Network controls exclusive port allocation.
type Network struct {
	PortFrom     int      `toml:"port_from"`
	PortTo       int      `toml:"port_to"`
	ProbeHost    string   `toml:"probe_host"`
	ProbeTimeout Duration `toml:"probe_timeout"`
	MaxAttempts  int      `toml:"max_attempts"`
	Reserve      bool     `toml:"reserve"`
}

// Range returns the configured port range.
func (n Network) Range() port.Range {
	return port.Range{From: n.PortFrom, To: n.PortTo}
}

// Simulator describes the Gazebo command line.
type Simulator struct {
	WorldsDir     string   `toml:"worlds_dir"`
	ServerCommand string   `toml:"server_command"`
	ClientCommand string   `toml:"client_command"`
	Plugins       []string `toml:"plugins"`
	Verbose       bool     `toml:"verbose"`
	NodeRunner    []string `toml:"node_runner"`
}

// Robot names the packages and files of the simulated robot.
type Robot struct {
	DescriptionPackage  string `toml:"description_package"`
	URDF                string `toml:"urdf"`
	PluginsPackage      string `toml:"plugins_package"`
	SourceDir           string `toml:"source_dir"`
	PluginBuildDir      string `toml:"plugin_build_dir"`
	StatePublisher      string `toml:"state_publisher"`
	SpawnerPackage      string `toml:"spawner_package"`
	SpawnerExecutable   string `toml:"spawner_executable"`
	CognitionPackage    string `toml:"cognition_package"`
	CognitionExecutable string `toml:"cognition_executable"`
	MotorsFile          string `toml:"motors_file"`
}

// History controls the launch event log.
type History struct {
	Enabled bool `toml:"enabled"`

	// Dir holds launches.jsonl; empty means DefaultHistoryDir.
	Dir string `toml:"dir"`
}

// Directory returns the effective history directory.
func (h History) Directory() string {
	if h.Dir != "" {
		return h.Dir
	}
	return DefaultHistoryDir()
}

// DefaultHistoryDir returns $XDG_STATE_HOME/gzlaunch, falling back to
// ~/.local/state/gzlaunch.
func DefaultHistoryDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "gzlaunch")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "gzlaunch")
	}
	return filepath.Join(home, ".local", "state", "gzlaunch")
}

// Default returns the configuration for the MARA arm on an empty world.
func Default() *Config {
	r := port.DefaultRange()
	return &Config{
		Network: Network{
			PortFrom:     r.From,
			PortTo:       r.To,
			ProbeHost:    port.DefaultProbeHost,
			ProbeTimeout: Duration{port.DefaultProbeTimeout},
		},
		Simulator: Simulator{
			WorldsDir:     DefaultWorldsDir,
			ServerCommand: "gzserver",
			ClientCommand: "gazebo",
			Plugins:       []string{"libgazebo_ros_factory.so", "libgazebo_ros_init.so"},
			Verbose:       true,
			NodeRunner:    []string{"ros2", "run"},
		},
		Robot: Robot{
			DescriptionPackage:  "mara_description",
			URDF:                "urdf/mara_robot_camera_top.urdf",
			PluginsPackage:      "mara_gazebo_plugins",
			SourceDir:           "src/MARA",
			PluginBuildDir:      "src/MARA/mara_gazebo_plugins/build",
			StatePublisher:      "robot_state_publisher",
			SpawnerPackage:      "mara_utils_scripts",
			SpawnerExecutable:   "spawn_entity.py",
			CognitionPackage:    "hros_cognition_mara_components",
			CognitionExecutable: "hros_cognition_mara_components",
			MotorsFile:          "link_order.yaml",
		},
		History: History{Enabled: true},
	}
}

// Validate checks that the Config is usable.
func (c *Config) Validate() error {
	if err := c.Network.Range().Validate(); err != nil {
		return fmt.Errorf("network: %w", err)
	}
	if c.Network.MaxAttempts < 0 {
		return fmt.Errorf("network: max_attempts must not be negative (got %d)", c.Network.MaxAttempts)
	}
	if c.Network.ProbeTimeout.Duration < 0 {
		return fmt.Errorf("network: probe_timeout must not be negative")
	}

	if c.Simulator.ServerCommand == "" || c.Simulator.ClientCommand == "" {
		return fmt.Errorf("simulator: server_command and client_command are required")
	}
	if len(c.Simulator.NodeRunner) == 0 {
		return fmt.Errorf("simulator: node_runner is required")
	}

	required := map[string]string{
		"description_package":  c.Robot.DescriptionPackage,
		"urdf":                 c.Robot.URDF,
		"plugins_package":      c.Robot.PluginsPackage,
		"state_publisher":      c.Robot.StatePublisher,
		"spawner_package":      c.Robot.SpawnerPackage,
		"spawner_executable":   c.Robot.SpawnerExecutable,
		"cognition_package":    c.Robot.CognitionPackage,
		"cognition_executable": c.Robot.CognitionExecutable,
	}
	for key, value := range required {
		if value == "" {
			return fmt.Errorf("robot: %s is required", key)
		}
	}
	if filepath.IsAbs(c.Robot.URDF) {
		return fmt.Errorf("robot: urdf must be relative to the description package (got %q)", c.Robot.URDF)
	}

	return nil
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Load reads the config at path. When optional is set, a missing file
// yields the defaults.
func Load(fsys system.FileSystem, path string, optional bool) (*Config, error) {
	if fsys == nil {
		fsys = system.DefaultFS()
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Encode renders the config as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
