package config

import (
	"io/fs"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gym-gazebo/gzlaunch/internal/port"
	"github.com/gym-gazebo/gzlaunch/internal/system"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Network.Range() != port.DefaultRange() {
		t.Errorf("Range = %v, want %v", cfg.Network.Range(), port.DefaultRange())
	}
	if cfg.Network.ProbeTimeout.Duration != port.DefaultProbeTimeout {
		t.Errorf("ProbeTimeout = %v", cfg.Network.ProbeTimeout)
	}
}

func TestParse_OverridesDefaults(t *testing.T) {
	data := `
[network]
port_from = 20000
port_to = 20100
probe_timeout = "2s"
reserve = true

[simulator]
worlds_dir = "/ws/src/gym-gazebo2/gym_gazebo2/worlds"
plugins = ["libgazebo_ros_init.so"]
`
	cfg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Network.PortFrom != 20000 || cfg.Network.PortTo != 20100 {
		t.Errorf("range = %d-%d, want 20000-20100", cfg.Network.PortFrom, cfg.Network.PortTo)
	}
	if cfg.Network.ProbeTimeout.Duration != 2*time.Second {
		t.Errorf("ProbeTimeout = %v, want 2s", cfg.Network.ProbeTimeout.Duration)
	}
	if !cfg.Network.Reserve {
		t.Error("Reserve should be true")
	}
	if !reflect.DeepEqual(cfg.Simulator.Plugins, []string{"libgazebo_ros_init.so"}) {
		t.Errorf("Plugins = %v", cfg.Simulator.Plugins)
	}
	if cfg.Simulator.ServerCommand != "gzserver" {
		t.Errorf("ServerCommand = %q, default should be kept", cfg.Simulator.ServerCommand)
	}
	if cfg.Robot.DescriptionPackage != "mara_description" {
		t.Errorf("DescriptionPackage = %q, default should be kept", cfg.Robot.DescriptionPackage)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"syntax", "[network\n", "failed to parse config"},
		{"bad duration", "[network]\nprobe_timeout = \"soon\"\n", "invalid duration"},
		{"unknown key", "[network]\nport_min = 1\n", "unknown config key"},
		{"inverted range", "[network]\nport_from = 15000\nport_to = 10000\n", "empty"},
		{"negative attempts", "[network]\nmax_attempts = -1\n", "max_attempts"},
		{"missing runner", "[simulator]\nnode_runner = []\n", "node_runner"},
		{"missing package", "[robot]\ndescription_package = \"\"\n", "description_package"},
		{"absolute urdf", "[robot]\nurdf = \"/etc/passwd\"\n", "relative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	mockFS := system.NewMockFS()
	mockFS.AddFile("/etc/gzlaunch/config.toml", []byte("[network]\nport_from = 11000\n"))

	cfg, err := Load(mockFS, "/etc/gzlaunch/config.toml", false)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Network.PortFrom != 11000 {
		t.Errorf("PortFrom = %d, want 11000", cfg.Network.PortFrom)
	}
}

func TestLoad_Missing(t *testing.T) {
	mockFS := system.NewMockFS()

	cfg, err := Load(mockFS, DefaultConfigPath(), true)
	if err != nil {
		t.Fatalf("optional Load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Error("missing optional config should yield defaults")
	}

	if _, err := Load(mockFS, "/custom.toml", false); err == nil {
		t.Error("missing required config should fail")
	}
}

func TestLoad_ReadError(t *testing.T) {
	mockFS := system.NewMockFS()
	mockFS.ReadFileErr = fs.ErrPermission

	if _, err := Load(mockFS, DefaultConfigPath(), true); err == nil {
		t.Error("permission error should not fall back to defaults")
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Network.Reserve = true
	cfg.Network.ProbeTimeout = Duration{750 * time.Millisecond}

	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(string(data), `probe_timeout = "750ms"`) {
		t.Errorf("encoded config missing probe_timeout:\n%s", data)
	}

	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse of encoded config failed: %v", err)
	}
	if !reflect.DeepEqual(back, cfg) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, cfg)
	}
}

func TestHistoryDirectory(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/state")

	if got := (History{}).Directory(); got != "/state/gzlaunch" {
		t.Errorf("Directory() = %q, want /state/gzlaunch", got)
	}
	if got := (History{Dir: "/custom"}).Directory(); got != "/custom" {
		t.Errorf("Directory() = %q, want /custom", got)
	}
}
