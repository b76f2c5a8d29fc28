package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/antitower/server/internal/component"
	"github.com/antitower/server/internal/core/ecs"
	"github.com/antitower/server/internal/core/event"
	coresys "github.com/antitower/server/internal/core/system"
	"github.com/antitower/server/internal/data"
	"github.com/antitower/server/internal/group"
	"github.com/antitower/server/internal/vmath"
	"github.com/antitower/server/internal/world"
)

// Rule lets trackers of one set of kinds see targets of another.
type Rule struct {
	Trackers component.KindSet
	Targets  component.KindSet
}

// RulesFromArchetypes builds one rule per archetype that lists detects.
func RulesFromArchetypes(t *data.ArchetypeTable) []Rule {
	var rules []Rule
	t.Each(func(a *data.Archetype) {
		if a.DetectableKinds() != 0 {
			rules = append(rules, Rule{
				Trackers: component.KindsOf(a.KindID()),
				Targets:  a.DetectableKinds(),
			})
		}
	})
	return rules
}

// DetectionSystem scans trackers against targets. A tracker that can
// attack engages the nearest target inside attack range and reports
// nothing else; otherwise every target inside vision yields a Detection
// for steering. Engaged trackers are skipped. Phase 1 (Detection).
type DetectionSystem struct {
	world *world.State
	rules []Rule
	seen  []sighting // scratch, reused per tracker
}

type sighting struct {
	target   ecs.EntityID
	distance float64
}

func NewDetectionSystem(ws *world.State, rules []Rule) *DetectionSystem {
	return &DetectionSystem{world: ws, rules: rules}
}

func (s *DetectionSystem) Phase() coresys.Phase { return coresys.PhaseDetection }

func (s *DetectionSystem) targetsOf(k component.Kind) component.KindSet {
	var set component.KindSet
	for _, r := range s.rules {
		if r.Trackers.Contains(k) {
			set |= r.Targets
		}
	}
	return set
}

func (s *DetectionSystem) Update(_ time.Duration) {
	ws := s.world
	targets := ws.Targets.IDs()

	ws.Trackers.Each(func(id ecs.EntityID, tr *component.Tracker) {
		if !ws.Alive(id) {
			return
		}
		if c, ok := ws.Combats.Get(id); ok && c.Engaged() {
			return
		}
		want := s.targetsOf(ws.KindOf(id))
		if want == 0 {
			return
		}
		tg, ok := ws.DetectionGroups.Get(id)
		if !ok {
			return
		}
		pos, ok := ws.Position(id)
		if !ok {
			return
		}

		s.seen = s.seen[:0]
		nearest := -1
		for _, target := range targets {
			if target == id || !ws.Alive(target) || !want.Contains(ws.KindOf(target)) {
				continue
			}
			g, ok := ws.DetectionGroups.Get(target)
			if !ok || !group.Sees(group.Groups(*tg), group.Groups(*g)) {
				continue
			}
			tpos, ok := ws.Position(target)
			if !ok {
				continue
			}
			d := pos.Distance(tpos)
			if d == 0 {
				continue
			}
			// strict < keeps the lowest id on ties
			if nearest < 0 || d < s.seen[nearest].distance {
				nearest = len(s.seen)
			}
			s.seen = append(s.seen, sighting{target: target, distance: d})
		}
		if nearest < 0 {
			return
		}

		if n := s.seen[nearest]; n.distance < ws.Settings.AttackRange && s.engage(id, n.target) {
			return
		}
		for _, v := range s.seen {
			if v.distance < tr.Vision {
				event.Emit(ws.Bus, event.Detection{Tracker: id, Target: v.target, Distance: v.distance})
			}
		}
	})
}

func (s *DetectionSystem) engage(id, target ecs.EntityID) bool {
	ws := s.world
	if !ws.Attacks.Has(id) {
		return false
	}
	c, ok := ws.Combats.Get(id)
	if !ok {
		c = &component.Combat{}
		ws.Combats.Set(id, c)
	}
	c.Engage(target)
	event.Emit(ws.Bus, event.Engaged{Attacker: id, Target: target})
	ws.Log().Debug("engaged",
		zap.Uint64("attacker", uint64(id)), zap.Uint64("target", uint64(target)))
	return true
}

// SteeringSystem homes each steering tracker on its nearest detection:
// acceleration = normalize(target - self) * AccelRate / distance, taken on
// the tracker's own layer so Z never changes. A tracker with no detection
// this tick coasts with zero acceleration.
// Phase 1 (Detection), after DetectionSystem.
type SteeringSystem struct {
	world   *world.State
	nearest map[ecs.EntityID]event.Detection
}

func NewSteeringSystem(ws *world.State) *SteeringSystem {
	return &SteeringSystem{world: ws, nearest: make(map[ecs.EntityID]event.Detection)}
}

func (s *SteeringSystem) Phase() coresys.Phase { return coresys.PhaseDetection }

func (s *SteeringSystem) Update(_ time.Duration) {
	ws := s.world
	clear(s.nearest)
	for _, ev := range event.Read[event.Detection](ws.Bus) {
		if cur, ok := s.nearest[ev.Tracker]; !ok || ev.Distance < cur.Distance {
			s.nearest[ev.Tracker] = ev
		}
	}

	ecs.Each2(ws.Steerings, ws.Accelerations, func(id ecs.EntityID, st *component.Steering, a *component.Acceleration) {
		a.Value = vmath.Vec3{}
		ev, ok := s.nearest[id]
		if !ok {
			return
		}
		self, ok := ws.Position(id)
		if !ok {
			return
		}
		target, ok := ws.Position(ev.Target)
		if !ok {
			return
		}
		delta := target.WithZ(self.Z).Sub(self)
		dist := delta.Len()
		if dist == 0 {
			return
		}
		a.Value = delta.Scale(st.AccelRate / (dist * dist))
	})
}
