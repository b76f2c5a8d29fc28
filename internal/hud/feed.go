package hud

import (
	"go.uber.org/zap"

	"github.com/antitower/server/internal/core/event"
	"github.com/antitower/server/internal/world"
)

// Counts are the running totals shown in the status line and written to
// the match summary.
type Counts struct {
	Spawned   int
	Died      int
	Despawned int
	Expired   int
	Engaged   int
}

// EventFeed listens to the bus at the end of each tick, logs notable
// events at debug level and keeps running totals.
type EventFeed struct {
	counts Counts
	log    *zap.Logger
}

func NewEventFeed(bus *event.Bus, log *zap.Logger) *EventFeed {
	f := &EventFeed{log: log}
	event.Subscribe(bus, func(event.Spawned) {
		f.counts.Spawned++
	})
	event.Subscribe(bus, func(e event.Engaged) {
		f.counts.Engaged++
		f.log.Debug("combat started",
			zap.Uint64("attacker", uint64(e.Attacker)), zap.Uint64("target", uint64(e.Target)))
	})
	event.Subscribe(bus, func(e event.Died) {
		f.counts.Died++
		f.log.Debug("killed",
			zap.Uint64("entity", uint64(e.Entity)), zap.Uint64("killer", uint64(e.Killer)))
	})
	event.Subscribe(bus, func(e event.Despawned) {
		f.counts.Despawned++
		f.log.Debug("despawned", zap.Stringer("kind", e.Kind), zap.Uint64("entity", uint64(e.Entity)))
	})
	event.Subscribe(bus, func(e event.Expired) {
		f.counts.Expired++
		f.log.Debug("expired", zap.Stringer("kind", e.Kind), zap.Uint64("entity", uint64(e.Entity)))
	})
	event.Subscribe(bus, func(e event.ManaChanged) {
		if e.Delta < 0 || e.Reason != world.ReasonHarvest {
			f.log.Debug("mana",
				zap.String("reason", e.Reason),
				zap.Float64("delta", e.Delta),
				zap.Float64("balance", e.Balance))
		}
	})
	return f
}

func (f *EventFeed) Counts() Counts { return f.counts }
