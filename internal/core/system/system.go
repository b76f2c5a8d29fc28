package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput         Phase = iota // 0: key edges, player movement, placement
	PhaseDetection                  // 1: tracker scans, steering
	PhaseMovement                   // 2: kinematic integration
	PhaseCollision                  // 3: overlap registry, collision events
	PhaseEntityUpdates              // 4: damage, separation, attack, spawners
	PhaseDespawn                    // 5: zero-health sweep
	PhaseCleanup                    // 6: destroy queued entities, end event tick
)

var phaseNames = [...]string{"input", "detection", "movement", "collision", "entity_updates", "despawn", "cleanup"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
