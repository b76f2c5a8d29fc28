package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/antitower/server/internal/component"
	"github.com/antitower/server/internal/vmath"
)

// SpawnEntry places one archetype at startup.
type SpawnEntry struct {
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

type spawnListFile struct {
	Spawns []SpawnEntry `yaml:"spawns"`
}

// KindID resolves the entry's kind name.
func (e SpawnEntry) KindID() (component.Kind, bool) {
	return component.ParseKind(e.Kind)
}

func (e SpawnEntry) Position() vmath.Vec3 {
	return vmath.V3(e.X, e.Y, 0)
}

// LoadSpawnList loads startup spawn entries from a YAML file.
func LoadSpawnList(path string) ([]SpawnEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn_list: %w", err)
	}
	var f spawnListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse spawn_list: %w", err)
	}
	for _, s := range f.Spawns {
		if _, ok := s.KindID(); !ok {
			return nil, fmt.Errorf("spawn_list: %w: unknown kind %q", ErrInvalidArchetype, s.Kind)
		}
	}
	return f.Spawns, nil
}
