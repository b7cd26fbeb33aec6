package launch

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gym-gazebo/gzlaunch/internal/config"
	"github.com/gym-gazebo/gzlaunch/internal/system"
)

// World is a world description file.
type World struct {
	Name string
	Path string
}

// RealSpeed reports whether the world is the fixed real-time-factor variant.
func (w World) RealSpeed() bool {
	return filepath.Base(w.Path) == config.RealSpeedWorld
}

// ListWorlds returns the *.world files in dir, sorted by name.
func ListWorlds(fsys system.FileSystem, dir string) ([]World, error) {
	if fsys == nil {
		fsys = system.DefaultFS()
	}
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read worlds directory: %w", err)
	}

	var worlds []World
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".world" {
			continue
		}
		worlds = append(worlds, World{
			Name: strings.TrimSuffix(e.Name(), ".world"),
			Path: filepath.Join(dir, e.Name()),
		})
	}
	sort.Slice(worlds, func(i, j int) bool { return worlds[i].Name < worlds[j].Name })
	return worlds, nil
}
