package integration

import (
	"context"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gym-gazebo/gzlaunch/internal/config"
	"github.com/gym-gazebo/gzlaunch/internal/launch"
	"github.com/gym-gazebo/gzlaunch/internal/port"
	"github.com/gym-gazebo/gzlaunch/internal/system"
)

const resourceIndex = "share/ament_index/resource_index/packages"

// LogVar names the file the fake executables append to.
const LogVar = "GZLAUNCH_TEST_LOG"

// fakeScript records argv and the network environment, one line per run.
const fakeScript = `#!/bin/sh
echo "$(basename "$0") $* | ROS_DOMAIN_ID=$ROS_DOMAIN_ID GAZEBO_MASTER_URI=$GAZEBO_MASTER_URI lower=$lower" >> "$` + LogVar + `"
`

// TestHarness provides an on-disk workspace and fake simulator binaries.
type TestHarness struct {
	t       *testing.T
	TempDir string
	Prefix  string
	Distro  string
	Worlds  string
	LogPath string
	Config  *config.Config
}

// NewHarness creates a new test harness.
// It will skip the test if no POSIX shell is available.
func NewHarness(t *testing.T) *TestHarness {
	t.Helper()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("integration tests need /bin/sh")
	}

	tempDir := t.TempDir()
	h := &TestHarness{
		t:       t,
		TempDir: tempDir,
		Prefix:  filepath.Join(tempDir, "ws", "install", "mara_gazebo_plugins"),
		Distro:  filepath.Join(tempDir, "opt", "ros", "dashing"),
		Worlds:  filepath.Join(tempDir, "ws", "src", "gym-gazebo2", "worlds"),
		LogPath: filepath.Join(tempDir, "launch.log"),
	}

	cfg := config.Default()
	cfg.Simulator.WorldsDir = h.Worlds
	cfg.Network.ProbeHost = "127.0.0.1"
	cfg.History.Enabled = false
	h.Config = cfg

	r := cfg.Robot
	h.addPackage(h.Prefix, r.PluginsPackage)
	for _, pkg := range []string{r.DescriptionPackage, r.StatePublisher, r.SpawnerPackage, r.CognitionPackage} {
		h.addPackage(h.Distro, pkg)
	}
	h.writeFile(filepath.Join(h.Distro, "share", r.DescriptionPackage, r.URDF), "<robot name=\"mara\"/>", 0644)
	h.writeFile(filepath.Join(h.Worlds, config.RealSpeedWorld), "<sdf/>", 0644)
	h.writeFile(filepath.Join(h.Worlds, config.SpeedUpWorld), "<sdf/>", 0644)

	bin := filepath.Join(tempDir, "bin")
	for _, name := range []string{cfg.Simulator.ServerCommand, cfg.Simulator.ClientCommand, cfg.Simulator.NodeRunner[0]} {
		h.writeFile(filepath.Join(bin, name), fakeScript, 0755)
	}
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))

	return h
}

func (h *TestHarness) addPackage(prefix, pkg string) {
	h.writeFile(filepath.Join(prefix, resourceIndex, pkg), "", 0644)
}

func (h *TestHarness) writeFile(path, content string, mode os.FileMode) {
	h.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		h.t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		h.t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// Environ returns the source environment the launcher sees.
func (h *TestHarness) Environ() []string {
	return []string{
		"AMENT_PREFIX_PATH=" + h.Prefix + ":" + h.Distro,
		"PATH=" + os.Getenv("PATH"),
		LogVar + "=" + h.LogPath,
		"lower=dropped",
	}
}

// Composer returns a composer over the on-disk workspace that draws ports
// from candidates and probes them for real.
func (h *TestHarness) Composer(r port.Range, candidates ...int) *launch.Composer {
	alloc := port.NewAllocator(r, &port.TCPProber{Host: "127.0.0.1", Timeout: time.Second})
	alloc.Candidates = func() port.Candidates { return port.Fixed(candidates...) }

	return &launch.Composer{
		Config:    h.Config,
		FS:        system.DefaultFS(),
		Environ:   h.Environ,
		Allocator: alloc,
	}
}

// Listen occupies a loopback port until the test ends.
func (h *TestHarness) Listen() int {
	h.t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		h.t.Fatalf("listen: %v", err)
	}
	h.t.Cleanup(func() { ln.Close() })
	return ln.Addr().(*net.TCPAddr).Port
}

// FreePort returns a loopback port that was free a moment ago.
func (h *TestHarness) FreePort() int {
	h.t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		h.t.Fatalf("listen: %v", err)
	}
	p := ln.Addr().(*net.TCPAddr).Port
	ln.Close()
	return p
}

// WaitForLog waits until the fakes have written n lines and returns them.
func (h *TestHarness) WaitForLog(n int) []string {
	h.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for {
		data, _ := os.ReadFile(h.LogPath)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(data) > 0 && len(lines) >= n {
			return lines
		}

		select {
		case <-ctx.Done():
			h.t.Fatalf("timed out waiting for %d log lines, got:\n%s", n, data)
			return nil
		case <-ticker.C:
		}
	}
}
