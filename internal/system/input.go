package system

import (
	"time"

	coresys "github.com/antitower/server/internal/core/system"
	"github.com/antitower/server/internal/input"
	"github.com/antitower/server/internal/world"
)

// ClockSystem advances the simulation clock. Phase 0 (Input), first.
type ClockSystem struct {
	world *world.State
}

func NewClockSystem(ws *world.State) *ClockSystem {
	return &ClockSystem{world: ws}
}

func (s *ClockSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *ClockSystem) Update(dt time.Duration) {
	s.world.Advance(dt)
}

// InputSystem polls the input driver into the shared key state. Edges
// from the previous tick are dropped first. Phase 0 (Input).
type InputSystem struct {
	driver input.Driver
	keys   *input.State
}

func NewInputSystem(driver input.Driver, keys *input.State) *InputSystem {
	return &InputSystem{driver: driver, keys: keys}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	s.keys.EndFrame()
	s.driver.Poll(s.keys)
}
