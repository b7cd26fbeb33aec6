package launch

import (
	"testing"

	"github.com/gym-gazebo/gzlaunch/internal/config"
	"github.com/gym-gazebo/gzlaunch/internal/system"
)

func TestListWorlds(t *testing.T) {
	fs := system.NewMockFS()
	fs.AddFile("/worlds/"+config.SpeedUpWorld, nil)
	fs.AddFile("/worlds/"+config.RealSpeedWorld, nil)
	fs.AddFile("/worlds/README.md", nil)
	fs.AddDir("/worlds/models.world")

	worlds, err := ListWorlds(fs, "/worlds")
	if err != nil {
		t.Fatalf("ListWorlds failed: %v", err)
	}

	if len(worlds) != 2 {
		t.Fatalf("worlds = %+v, want 2", worlds)
	}
	if worlds[0].Name != "empty__state_plugin" || !worlds[0].RealSpeed() {
		t.Errorf("worlds[0] = %+v, want real-speed world first", worlds[0])
	}
	if worlds[1].Path != "/worlds/"+config.SpeedUpWorld || worlds[1].RealSpeed() {
		t.Errorf("worlds[1] = %+v", worlds[1])
	}
}

func TestListWorlds_MissingDir(t *testing.T) {
	if _, err := ListWorlds(system.NewMockFS(), "/missing"); err == nil {
		t.Error("ListWorlds on a missing directory should fail")
	}
}
