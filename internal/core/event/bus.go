package event

import (
	"reflect"
)

// Bus is a per-tick event channel. Events emitted during a tick are readable
// by every later system of the same tick through Read, in FIFO order per
// type. EndTick hands the tick's events to subscribers in global emission
// order and then drops them: nothing survives into the next tick.
//
// Accessed only from the game loop goroutine, no locks.
type Bus struct {
	queues   map[reflect.Type][]any
	log      []queued
	handlers map[reflect.Type][]func(any)
}

type queued struct {
	t  reflect.Type
	ev any
}

func NewBus() *Bus {
	return &Bus{
		queues:   make(map[reflect.Type][]any),
		handlers: make(map[reflect.Type][]func(any)),
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Emit queues an event for the rest of the current tick.
func Emit[T any](b *Bus, event T) {
	t := typeOf[T]()
	b.queues[t] = append(b.queues[t], event)
	b.log = append(b.log, queued{t: t, ev: event})
}

// Read returns the events of type T emitted so far this tick, oldest first.
// Reading does not consume: each reader system sees the full queue.
func Read[T any](b *Bus) []T {
	raw := b.queues[typeOf[T]()]
	if len(raw) == 0 {
		return nil
	}
	out := make([]T, len(raw))
	for i, ev := range raw {
		out[i] = ev.(T)
	}
	return out
}

// Count returns the number of queued events of type T.
func Count[T any](b *Bus) int {
	return len(b.queues[typeOf[T]()])
}

// Subscribe registers a typed handler called from EndTick for every event
// of type T. Intended for listeners outside the simulation (HUD, logging,
// ledger); simulation systems use Read.
func Subscribe[T any](b *Bus, fn func(T)) {
	t := typeOf[T]()
	b.handlers[t] = append(b.handlers[t], func(ev any) { fn(ev.(T)) })
}

// EndTick dispatches this tick's events to subscribers and clears all queues.
func (b *Bus) EndTick() {
	for _, q := range b.log {
		for _, h := range b.handlers[q.t] {
			h(q.ev)
		}
	}
	b.log = b.log[:0]
	for k := range b.queues {
		b.queues[k] = b.queues[k][:0]
	}
}
