package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ping struct{ n int }
type pong struct{ n int }

func TestReadIsFIFOAndNonConsuming(t *testing.T) {
	b := NewBus()
	Emit(b, ping{1})
	Emit(b, pong{10})
	Emit(b, ping{2})

	first := Read[ping](b)
	second := Read[ping](b)

	assert.Equal(t, []ping{{1}, {2}}, first)
	assert.Equal(t, first, second, "every reader sees the full queue")
	assert.Equal(t, []pong{{10}}, Read[pong](b))
	assert.Equal(t, 2, Count[ping](b))
}

func TestReadUnknownTypeIsEmpty(t *testing.T) {
	b := NewBus()
	assert.Empty(t, Read[ping](b))
	assert.Zero(t, Count[ping](b))
}

func TestEndTickDispatchesInEmissionOrderThenClears(t *testing.T) {
	b := NewBus()
	var order []string
	Subscribe(b, func(p ping) { order = append(order, "ping") })
	Subscribe(b, func(p pong) { order = append(order, "pong") })

	Emit(b, ping{1})
	Emit(b, pong{1})
	Emit(b, ping{2})
	require.Empty(t, order, "subscribers only run at tick end")

	b.EndTick()

	assert.Equal(t, []string{"ping", "pong", "ping"}, order)
	assert.Empty(t, Read[ping](b), "events never survive into the next tick")
	assert.Empty(t, Read[pong](b))

	b.EndTick()
	assert.Len(t, order, 3, "nothing is redelivered")
}

func TestMultipleSubscribersSameType(t *testing.T) {
	b := NewBus()
	var a, c int
	Subscribe(b, func(p ping) { a += p.n })
	Subscribe(b, func(p ping) { c += p.n * 10 })

	Emit(b, ping{3})
	b.EndTick()

	assert.Equal(t, 3, a)
	assert.Equal(t, 30, c)
}
