package data

import (
	_ "embed"
	"fmt"
)

//go:embed defaults.yaml
var defaultArchetypes []byte

// DefaultArchetypes returns the built-in archetype table. It panics if the
// embedded YAML is invalid, which only a broken build can cause.
func DefaultArchetypes() *ArchetypeTable {
	t, err := ParseArchetypeTable(defaultArchetypes)
	if err != nil {
		panic(fmt.Sprintf("embedded archetypes: %v", err))
	}
	return t
}
