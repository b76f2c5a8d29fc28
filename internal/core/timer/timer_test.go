package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepeatingFinishesOnCrossingAdvance(t *testing.T) {
	tm := New(2*time.Second, Repeating)

	var got []bool
	for _, d := range []time.Duration{500, 500, 500, 600} {
		tm.Advance(d * time.Millisecond)
		got = append(got, tm.JustFinished())
	}

	assert.Equal(t, []bool{false, false, false, true}, got)
	assert.Equal(t, 100*time.Millisecond, tm.Elapsed(), "remainder carried into next period")
	assert.Equal(t, 1, tm.TimesFinished())
}

func TestRepeatingCompletesAtMostOncePerAdvance(t *testing.T) {
	tm := New(2*time.Second, Repeating)

	tm.Advance(5 * time.Second)

	assert.True(t, tm.JustFinished())
	assert.Equal(t, 1, tm.TimesFinished(), "extra whole periods are dropped")
	assert.Equal(t, time.Second, tm.Elapsed())

	tm.Advance(500 * time.Millisecond)
	assert.False(t, tm.JustFinished())
	assert.False(t, tm.Finished(), "repeating Finished mirrors JustFinished")
}

func TestOnceStaysFinished(t *testing.T) {
	tm := New(time.Second, Once)

	tm.Advance(600 * time.Millisecond)
	require.False(t, tm.JustFinished())

	tm.Advance(600 * time.Millisecond)
	require.True(t, tm.JustFinished())
	require.True(t, tm.Finished())

	tm.Advance(600 * time.Millisecond)
	assert.False(t, tm.JustFinished(), "edge fires only once")
	assert.True(t, tm.Finished())
	assert.Equal(t, 1, tm.TimesFinished())
	assert.Equal(t, time.Second, tm.Elapsed())
	assert.Zero(t, tm.Remaining())
}

func TestZeroAdvanceClearsEdge(t *testing.T) {
	tm := New(time.Second, Repeating)
	tm.Advance(time.Second)
	require.True(t, tm.JustFinished())

	tm.Advance(0)
	assert.False(t, tm.JustFinished())
	assert.Zero(t, tm.Elapsed())
}

func TestReset(t *testing.T) {
	tm := New(time.Second, Once)
	tm.Advance(2 * time.Second)
	require.True(t, tm.Finished())

	tm.Reset()
	assert.False(t, tm.Finished())
	assert.False(t, tm.JustFinished())
	assert.Zero(t, tm.TimesFinished())
	assert.Equal(t, time.Second, tm.Remaining())
}

func TestFromSeconds(t *testing.T) {
	tm := FromSeconds(1.5, Repeating)
	assert.Equal(t, 1500*time.Millisecond, tm.Duration())
	assert.Equal(t, Repeating, tm.Mode())
}
