package input

import (
	"go.uber.org/zap"
)

// KeySource yields the key names held on a given tick.
type KeySource interface {
	PlayerInput(tick uint64) []string
}

// ScriptDriver replays keys chosen by a script, one call per tick. It lets
// the simulation run headless with a deterministic player.
type ScriptDriver struct {
	src  KeySource
	tick uint64
	log  *zap.Logger
}

func NewScriptDriver(src KeySource, log *zap.Logger) *ScriptDriver {
	return &ScriptDriver{src: src, log: log}
}

func (d *ScriptDriver) Poll(s *State) {
	var held Key
	for _, name := range d.src.PlayerInput(d.tick) {
		k, ok := ParseKey(name)
		if !ok {
			d.log.Warn("input script returned unknown key",
				zap.String("key", name), zap.Uint64("tick", d.tick))
			continue
		}
		held |= k
	}
	s.Set(held)
	d.tick++
}

func (d *ScriptDriver) Close() {}
