// Package group defines the 32-bit faction masks that filter collision and
// detection interactions.
package group

import (
	"errors"
	"fmt"
	"strings"
)

// Mask is a bit set of interaction groups.
type Mask uint32

const (
	Player Mask = 1 << iota
	Ally
	NPC
	Enemy
	Weapon
	Projectile
	Structure

	None Mask = 0
	All  Mask = ^Mask(0)
)

// Policy chooses how two entities' groups are compared for collisions.
type Policy uint8

const (
	// Bidirectional requires each side's memberships to match the other's filters.
	Bidirectional Policy = iota
	// Asymmetric only requires a.Memberships & b.Filters.
	Asymmetric
)

// ErrUnknownGroup is returned by ParseMask for names outside the group table.
var ErrUnknownGroup = errors.New("unknown group")

// Groups pairs what an entity is with what it looks for.
type Groups struct {
	Memberships Mask
	Filters     Mask
}

func New(memberships, filters Mask) Groups {
	return Groups{Memberships: memberships, Filters: filters}
}

// Interacts reports whether a and b may interact under policy.
func Interacts(a, b Groups, policy Policy) bool {
	if a.Memberships&b.Filters == 0 {
		return false
	}
	if policy == Asymmetric {
		return true
	}
	return b.Memberships&a.Filters != 0
}

// Sees reports whether a tracker with groups t looks for target groups g.
func Sees(t, g Groups) bool {
	return t.Filters&g.Memberships != 0
}

func (m Mask) Has(o Mask) bool { return m&o == o }

var names = map[string]Mask{
	"player":     Player,
	"ally":       Ally,
	"npc":        NPC,
	"enemy":      Enemy,
	"weapon":     Weapon,
	"projectile": Projectile,
	"structure":  Structure,
	"none":       None,
	"all":        All,
}

// ParseMask parses a "|" separated list of group names, e.g. "enemy|structure".
// An empty string is None.
func ParseMask(s string) (Mask, error) {
	var m Mask
	for _, part := range strings.Split(s, "|") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		g, ok := names[part]
		if !ok {
			return None, fmt.Errorf("%w %q", ErrUnknownGroup, part)
		}
		m |= g
	}
	return m, nil
}

// ParsePolicy maps a config string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "", "bidirectional":
		return Bidirectional, nil
	case "asymmetric":
		return Asymmetric, nil
	}
	return Bidirectional, fmt.Errorf("unknown mask policy %q", s)
}

func (m Mask) String() string {
	if m == None {
		return "none"
	}
	if m == All {
		return "all"
	}
	var parts []string
	for _, n := range []string{"player", "ally", "npc", "enemy", "weapon", "projectile", "structure"} {
		if m&names[n] != 0 {
			parts = append(parts, n)
		}
	}
	if rest := m &^ (Player | Ally | NPC | Enemy | Weapon | Projectile | Structure); rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}
