package system

import (
	"time"

	coresys "github.com/antitower/server/internal/core/system"
	"github.com/antitower/server/internal/world"
)

// CleanupSystem flushes the deferred entity destruction queue and closes
// the event tick. Phase 6 (Cleanup).
type CleanupSystem struct {
	world *world.State
}

func NewCleanupSystem(ws *world.State) *CleanupSystem {
	return &CleanupSystem{world: ws}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.ECS.FlushDestroyQueue()
	s.world.Bus.EndTick()
}
