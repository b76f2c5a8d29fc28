package data

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/antitower/server/internal/component"
	"github.com/antitower/server/internal/group"
	"github.com/antitower/server/internal/vmath"
)

// ErrInvalidArchetype wraps every archetype validation failure.
var ErrInvalidArchetype = errors.New("invalid archetype")

// GroupsDef is the YAML form of a memberships/filters pair.
type GroupsDef struct {
	Memberships string `yaml:"memberships"`
	Filters     string `yaml:"filters"`
}

// AttackDef is the YAML form of component.Attack.
type AttackDef struct {
	Amount      float64 `yaml:"amount"`
	RateSeconds float64 `yaml:"rate_seconds"`
}

// Archetype holds the fixed component bundle for one entity kind.
// Zero values mean "component absent" except where noted.
type Archetype struct {
	Kind      string     `yaml:"kind"`
	Name      string     `yaml:"name"`
	Texture   string     `yaml:"texture"`
	Layer     float64    `yaml:"layer"`
	Radius    float64    `yaml:"radius"` // 0 = no collider
	Health    float64    `yaml:"health"` // 0 = no health, never despawned by the sweep
	Collision *GroupsDef `yaml:"collision_groups"`
	Detection *GroupsDef `yaml:"detection_groups"`
	Target    bool       `yaml:"target"`
	Static    bool       `yaml:"static"`
	Fragile   bool       `yaml:"fragile"`

	CollisionDamage float64    `yaml:"collision_damage"`
	Restitution     *float64   `yaml:"restitution"` // nil = no Bounce
	Vision          float64    `yaml:"vision"`
	Detects         []string   `yaml:"detects"`
	Attack          *AttackDef `yaml:"attack"`
	AccelRate       float64    `yaml:"accel_rate"`
	Kinematic       bool       `yaml:"kinematic"` // carries Velocity + Acceleration

	SpawnRateSeconds float64    `yaml:"spawn_rate_seconds"`
	SpawnOffset      [3]float64 `yaml:"spawn_offset"` // relative to whatever creates the entity
	LifetimeSeconds  float64    `yaml:"lifetime_seconds"`
	Cost             float64    `yaml:"cost"`

	Speed          float64 `yaml:"speed"`
	GenerationRate float64 `yaml:"generation_rate"`
	MaxStored      float64 `yaml:"max_stored"`
	Value          float64 `yaml:"value"`

	// Resolved by validate.
	kind       component.Kind
	collision  group.Groups
	detection  group.Groups
	detectable component.KindSet
}

func (a *Archetype) KindID() component.Kind             { return a.kind }
func (a *Archetype) CollisionGroups() group.Groups      { return a.collision }
func (a *Archetype) DetectionGroups() group.Groups      { return a.detection }
func (a *Archetype) DetectableKinds() component.KindSet { return a.detectable }
func (a *Archetype) HasCollisionGroups() bool           { return a.Collision != nil }
func (a *Archetype) HasDetectionGroups() bool           { return a.Detection != nil }

func (a *Archetype) Offset() vmath.Vec3 {
	return vmath.V3(a.SpawnOffset[0], a.SpawnOffset[1], a.SpawnOffset[2])
}

func (a *Archetype) SpawnRate() time.Duration { return seconds(a.SpawnRateSeconds) }
func (a *Archetype) Lifetime() time.Duration  { return seconds(a.LifetimeSeconds) }

func (a *Archetype) AttackRate() time.Duration {
	if a.Attack == nil {
		return 0
	}
	return seconds(a.Attack.RateSeconds)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

type archetypeFile struct {
	Archetypes []Archetype `yaml:"archetypes"`
}

// ArchetypeTable holds all archetypes indexed by Kind.
type ArchetypeTable struct {
	byKind map[component.Kind]*Archetype
}

// LoadArchetypeTable loads and validates archetypes from a YAML file.
func LoadArchetypeTable(path string) (*ArchetypeTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archetypes: %w", err)
	}
	return ParseArchetypeTable(raw)
}

// ParseArchetypeTable builds a table from YAML bytes.
func ParseArchetypeTable(raw []byte) (*ArchetypeTable, error) {
	var f archetypeFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse archetypes: %w", err)
	}
	t := &ArchetypeTable{byKind: make(map[component.Kind]*Archetype, len(f.Archetypes))}
	for i := range f.Archetypes {
		a := &f.Archetypes[i]
		if err := a.validate(); err != nil {
			return nil, err
		}
		if _, dup := t.byKind[a.kind]; dup {
			return nil, fmt.Errorf("%w: duplicate kind %q", ErrInvalidArchetype, a.Kind)
		}
		t.byKind[a.kind] = a
	}
	return t, nil
}

func (a *Archetype) validate() error {
	k, ok := component.ParseKind(a.Kind)
	if !ok || k == component.KindNone {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidArchetype, a.Kind)
	}
	a.kind = k

	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidArchetype, a.Kind, fmt.Sprintf(format, args...))
	}
	if a.Radius < 0 {
		return fail("negative radius %v", a.Radius)
	}
	if a.Health < 0 {
		return fail("negative health %v", a.Health)
	}
	if a.Vision < 0 {
		return fail("negative vision %v", a.Vision)
	}
	if a.SpawnRateSeconds < 0 || a.LifetimeSeconds < 0 || a.Cost < 0 {
		return fail("negative timer or cost")
	}
	if a.Restitution != nil && (*a.Restitution < 0 || *a.Restitution > 1) {
		return fail("restitution %v outside [0,1]", *a.Restitution)
	}
	if a.Attack != nil && a.Attack.RateSeconds <= 0 {
		return fail("attack rate must be positive")
	}

	var err error
	if a.Collision != nil {
		if a.collision, err = parseGroups(a.Collision); err != nil {
			return fail("collision_groups: %v", err)
		}
	}
	if a.Detection != nil {
		if a.detection, err = parseGroups(a.Detection); err != nil {
			return fail("detection_groups: %v", err)
		}
	}
	for _, name := range a.Detects {
		dk, ok := component.ParseKind(name)
		if !ok {
			return fail("detects unknown kind %q", name)
		}
		a.detectable |= component.KindsOf(dk)
	}
	if len(a.Detects) > 0 && (a.Vision == 0 || a.Detection == nil) {
		return fail("detects requires vision and detection_groups")
	}
	return nil
}

func parseGroups(d *GroupsDef) (group.Groups, error) {
	m, err := group.ParseMask(d.Memberships)
	if err != nil {
		return group.Groups{}, err
	}
	f, err := group.ParseMask(d.Filters)
	if err != nil {
		return group.Groups{}, err
	}
	return group.New(m, f), nil
}

// Get returns an archetype by kind, or nil if not defined.
func (t *ArchetypeTable) Get(k component.Kind) *Archetype {
	return t.byKind[k]
}

// Count returns the number of loaded archetypes.
func (t *ArchetypeTable) Count() int {
	return len(t.byKind)
}

// Each visits archetypes in Kind order.
func (t *ArchetypeTable) Each(fn func(*Archetype)) {
	for k := component.KindNone; k <= component.KindPotion; k++ {
		if a, ok := t.byKind[k]; ok {
			fn(a)
		}
	}
}
