package launch

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gym-gazebo/gzlaunch/internal/config"
	lerrors "github.com/gym-gazebo/gzlaunch/internal/errors"
	"github.com/gym-gazebo/gzlaunch/internal/port"
	"github.com/gym-gazebo/gzlaunch/internal/system"
)

const (
	testPrefix  = "/ws/install/mara_gazebo_plugins"
	testDistro  = "/opt/ros/dashing"
	testWorlds  = "/ws/src/gym-gazebo2/worlds"
	packagesDir = "share/ament_index/resource_index/packages"
)

type fixture struct {
	fs       *system.MockFS
	cfg      *config.Config
	environ  []string
	occupied map[int]bool
	draws    []int
	probes   int
}

func newFixture() *fixture {
	fs := system.NewMockFS()
	fs.AddFile(filepath.Join(testPrefix, packagesDir, "mara_gazebo_plugins"), nil)
	fs.AddFile(filepath.Join(testDistro, packagesDir, "mara_description"), nil)
	fs.AddFile(filepath.Join(testWorlds, config.SpeedUpWorld), nil)
	fs.AddFile(filepath.Join(testWorlds, config.RealSpeedWorld), nil)

	cfg := config.Default()
	cfg.Simulator.WorldsDir = testWorlds

	return &fixture{
		fs:  fs,
		cfg: cfg,
		environ: []string{
			"AMENT_PREFIX_PATH=" + testPrefix + ":" + testDistro,
			"HOME=/home/ros",
			"Path=/mixed/case",
			"lower_case=1",
			"GAZEBO_MODEL_PATH=/usr/share/gazebo/models",
		},
		occupied: map[int]bool{10000: true, 10001: true},
		draws:    []int{10000, 10001, 10002},
	}
}

func (f *fixture) composer() *Composer {
	a := port.NewAllocator(f.cfg.Network.Range(), port.ProberFunc(func(ctx context.Context, p int) (bool, error) {
		f.probes++
		return f.occupied[p], nil
	}))
	a.Candidates = func() port.Candidates { return port.Fixed(f.draws...) }

	return &Composer{
		Config:    f.cfg,
		FS:        f.fs,
		Environ:   func() []string { return f.environ },
		Allocator: a,
	}
}

func TestCompose_Scenario(t *testing.T) {
	f := newFixture()

	desc, err := f.composer().Compose(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if desc.Allocation.Port != 10002 {
		t.Errorf("Port = %d, want 10002", desc.Allocation.Port)
	}
	if f.probes != 3 {
		t.Errorf("probes = %d, want 3", f.probes)
	}
	if got := desc.Env.Get(DomainIDVar); got != "10002" {
		t.Errorf("%s = %q, want %q", DomainIDVar, got, "10002")
	}
	if got := desc.Env.Get(MasterURIVar); got != "http://localhost:10002" {
		t.Errorf("%s = %q, want %q", MasterURIVar, got, "http://localhost:10002")
	}
	if desc.Reservation != nil {
		t.Error("Reservation should be nil without Reserve")
	}
}

func TestCompose_UpperCaseEnvOnly(t *testing.T) {
	f := newFixture()

	desc, err := f.composer().Compose(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	want := []string{
		"AMENT_PREFIX_PATH",
		"GAZEBO_MASTER_URI",
		"GAZEBO_MODEL_PATH",
		"GAZEBO_PLUGIN_PATH",
		"HOME",
		"ROS_DOMAIN_ID",
	}
	if got := desc.Env.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("env keys = %v, want %v", got, want)
	}
	for _, p := range desc.Processes {
		if p.Env != desc.Env {
			t.Errorf("process %s does not share the launch environment", p.Name)
		}
	}
}

func TestCompose_GazeboPaths(t *testing.T) {
	f := newFixture()

	desc, err := f.composer().Compose(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	wantModel := "/usr/share/gazebo/models:" + testPrefix + "/share:/ws/install/src/MARA"
	if got := desc.Env.Get(ModelPathVar); got != wantModel {
		t.Errorf("%s = %q, want %q", ModelPathVar, got, wantModel)
	}
	wantPlugin := testPrefix + "/lib:/ws/install/src/MARA/mara_gazebo_plugins/build"
	if got := desc.Env.Get(PluginPathVar); got != wantPlugin {
		t.Errorf("%s = %q, want %q", PluginPathVar, got, wantPlugin)
	}
}

func TestCompose_Processes(t *testing.T) {
	f := newFixture()

	desc, err := f.composer().Compose(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if len(desc.Processes) != 4 {
		t.Fatalf("processes = %d, want 4", len(desc.Processes))
	}

	world := filepath.Join(testWorlds, config.SpeedUpWorld)
	urdf := testDistro + "/share/mara_description/urdf/mara_robot_camera_top.urdf"
	motors := testPrefix + "/share/hros_cognition_mara_components/link_order.yaml"

	tests := []struct {
		name string
		argv []string
	}{
		{"gzserver", []string{"gzserver", "--verbose", "-s", "libgazebo_ros_factory.so", "-s", "libgazebo_ros_init.so", world}},
		{"robot_state_publisher", []string{"ros2", "run", "robot_state_publisher", "robot_state_publisher", urdf}},
		{"spawn_entity.py", []string{"ros2", "run", "mara_utils_scripts", "spawn_entity.py"}},
		{"hros_cognition_mara_components", []string{"ros2", "run", "hros_cognition_mara_components", "hros_cognition_mara_components", "-motors", motors}},
	}

	for i, tt := range tests {
		p := desc.Processes[i]
		if p.Name != tt.name {
			t.Errorf("process %d name = %q, want %q", i, p.Name, tt.name)
		}
		if got := p.Command(desc.NodeRunner); !reflect.DeepEqual(got, tt.argv) {
			t.Errorf("process %s argv =\n  %v\nwant\n  %v", p.Name, got, tt.argv)
		}
		if p.Output != OutputScreen {
			t.Errorf("process %s output = %q, want screen", p.Name, p.Output)
		}
	}

	if sim := desc.Simulator(); sim == nil || sim.Name != "gzserver" {
		t.Errorf("Simulator() = %+v, want gzserver", sim)
	}
}

func TestCompose_GUIAndRealSpeed(t *testing.T) {
	f := newFixture()

	desc, err := f.composer().Compose(context.Background(), Options{GUI: true, RealSpeed: true})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	sim := desc.Processes[0]
	if sim.Cmd[0] != "gazebo" {
		t.Errorf("simulator command = %q, want gazebo", sim.Cmd[0])
	}
	if want := filepath.Join(testWorlds, config.RealSpeedWorld); desc.World != want {
		t.Errorf("World = %q, want %q", desc.World, want)
	}
	if got := sim.Cmd[len(sim.Cmd)-1]; got != desc.World {
		t.Errorf("last simulator arg = %q, want world path", got)
	}
}

func TestCompose_ExplicitWorld(t *testing.T) {
	f := newFixture()
	f.fs.AddFile("/tmp/custom.world", nil)

	desc, err := f.composer().Compose(context.Background(), Options{World: "/tmp/custom.world"})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if desc.World != "/tmp/custom.world" {
		t.Errorf("World = %q", desc.World)
	}
}

func TestCompose_QuietSimulator(t *testing.T) {
	f := newFixture()
	f.cfg.Simulator.Verbose = false
	f.cfg.Simulator.Plugins = nil

	desc, err := f.composer().Compose(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	want := []string{"gzserver", filepath.Join(testWorlds, config.SpeedUpWorld)}
	if !reflect.DeepEqual(desc.Processes[0].Cmd, want) {
		t.Errorf("simulator cmd = %v, want %v", desc.Processes[0].Cmd, want)
	}
}

func TestCompose_EnvironmentFailure(t *testing.T) {
	f := newFixture()
	f.environ = append(f.environ, "BROKEN=\xff")

	desc, err := f.composer().Compose(context.Background(), Options{})
	if desc != nil {
		t.Error("description should be nil when the environment cannot be assembled")
	}
	if code := lerrors.GetExitCode(err); code != lerrors.ExitEnvironment {
		t.Errorf("exit code = %d, want %d (err %v)", code, lerrors.ExitEnvironment, err)
	}
	if f.probes != 0 {
		t.Errorf("no port should be probed after an environment failure, got %d", f.probes)
	}
}

func TestCompose_MissingPackage(t *testing.T) {
	f := newFixture()
	f.environ[0] = "AMENT_PREFIX_PATH=" + testDistro

	_, err := f.composer().Compose(context.Background(), Options{})
	if code := lerrors.GetExitCode(err); code != lerrors.ExitPackageNotFound {
		t.Errorf("exit code = %d, want %d (err %v)", code, lerrors.ExitPackageNotFound, err)
	}
}

func TestCompose_MissingWorld(t *testing.T) {
	f := newFixture()
	f.cfg.Simulator.WorldsDir = "/nowhere"

	_, err := f.composer().Compose(context.Background(), Options{})
	if code := lerrors.GetExitCode(err); code != lerrors.ExitWorldNotFound {
		t.Errorf("exit code = %d, want %d (err %v)", code, lerrors.ExitWorldNotFound, err)
	}
}

func TestCompose_PortsExhausted(t *testing.T) {
	f := newFixture()
	f.draws = []int{10000, 10001}

	_, err := f.composer().Compose(context.Background(), Options{})
	if code := lerrors.GetExitCode(err); code != lerrors.ExitPortAllocation {
		t.Errorf("exit code = %d, want %d (err %v)", code, lerrors.ExitPortAllocation, err)
	}
	if !errors.Is(err, port.ErrExhausted) {
		t.Errorf("error should wrap port.ErrExhausted: %v", err)
	}
}

func TestCompose_Reserve(t *testing.T) {
	f := newFixture()
	f.cfg.Network.PortFrom = 1
	f.cfg.Network.PortTo = 65535

	// Any free port; the reservation binds it for real.
	a := port.NewAllocator(f.cfg.Network.Range(), port.ProberFunc(func(context.Context, int) (bool, error) {
		return false, nil
	}))
	c := f.composer()
	c.Allocator = a

	desc, err := c.Compose(context.Background(), Options{Reserve: true})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	defer desc.Release()

	if desc.Reservation == nil {
		t.Fatal("Reservation should be set")
	}
	if desc.Allocation.Port != desc.Reservation.Port {
		t.Errorf("Allocation %d and Reservation %d disagree", desc.Allocation.Port, desc.Reservation.Port)
	}
	if !port.CheckPortInUse(desc.Allocation.Port) {
		t.Errorf("reserved port %d should be in use", desc.Allocation.Port)
	}
}

func TestCompose_DefaultIndexAndAllocator(t *testing.T) {
	f := newFixture()
	c := &Composer{
		Config:  f.cfg,
		FS:      f.fs,
		Environ: func() []string { return f.environ },
	}

	if got := c.allocator().Range; got != f.cfg.Network.Range() {
		t.Errorf("default allocator range = %v, want %v", got, f.cfg.Network.Range())
	}
	if got := c.WorldPath(Options{}); got != filepath.Join(testWorlds, config.SpeedUpWorld) {
		t.Errorf("WorldPath = %q", got)
	}
}
