package input

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestStateEdges(t *testing.T) {
	s := NewState()

	s.Press(KeyW)
	assert.True(t, s.Pressed(KeyW))
	assert.True(t, s.JustPressed(KeyW))

	s.EndFrame()
	s.Press(KeyW) // auto-repeat
	assert.True(t, s.Pressed(KeyW))
	assert.False(t, s.JustPressed(KeyW), "held keys do not edge again")

	s.Release(KeyW)
	s.EndFrame()
	s.Press(KeyW)
	assert.True(t, s.JustPressed(KeyW))
}

func TestStateSet(t *testing.T) {
	s := NewState()
	s.Set(KeyLeft | KeySpace)
	assert.Equal(t, KeyLeft|KeySpace, s.Held())
	assert.True(t, s.JustPressed(KeySpace))

	s.EndFrame()
	s.Set(KeyLeft | KeyE)
	assert.False(t, s.Pressed(KeySpace))
	assert.False(t, s.JustPressed(KeyLeft))
	assert.True(t, s.JustPressed(KeyE))
}

func TestKeyNames(t *testing.T) {
	k, ok := ParseKey(" Space ")
	require.True(t, ok)
	assert.Equal(t, KeySpace, k)

	_, ok = ParseKey("jump")
	assert.False(t, ok)

	assert.Equal(t, "up|w", (KeyUp | KeyW).String())
	assert.Equal(t, "none", Key(0).String())
}

type scripted map[uint64][]string

func (s scripted) PlayerInput(tick uint64) []string { return s[tick] }

func TestScriptDriverReplaysTicks(t *testing.T) {
	d := NewScriptDriver(scripted{
		0: {"right", "space"},
		1: {"right", "bogus"},
	}, zaptest.NewLogger(t))
	s := NewState()

	d.Poll(s)
	assert.Equal(t, KeyRight|KeySpace, s.Held())
	assert.True(t, s.JustPressed(KeySpace))

	s.EndFrame()
	d.Poll(s)
	assert.Equal(t, KeyRight, s.Held(), "unknown names are skipped")
	assert.False(t, s.JustPressed(KeyRight))

	s.EndFrame()
	d.Poll(s)
	assert.Equal(t, Key(0), s.Held())
	d.Close()
}

func TestTranslate(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want Key
		ok   bool
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), KeyUp, true},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), KeyLeft, true},
		{tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModNone), KeyW, true},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), KeySpace, true},
		{tcell.NewEventKey(tcell.KeyRune, 'e', tcell.ModNone), KeyE, true},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), 0, false},
		{tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), 0, false},
	}
	for _, c := range cases {
		got, ok := Translate(c.ev)
		assert.Equal(t, c.ok, ok, c.ev.Name())
		assert.Equal(t, c.want, got, c.ev.Name())
	}
}

func TestIsQuit(t *testing.T) {
	assert.True(t, IsQuit(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, IsQuit(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.True(t, IsQuit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, IsQuit(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)))
}

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, ss.Init())
	ss.SetSize(80, 24)
	return ss
}

func TestTerminalDriver(t *testing.T) {
	ss := newSimScreen(t)
	d := NewTerminalDriver(ss)
	defer d.Close()

	ss.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	ss.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)

	var held Key
	assert.Eventually(t, func() bool {
		s := NewState()
		d.Poll(s)
		held |= s.Held()
		return held == KeyRight|KeySpace
	}, time.Second, 5*time.Millisecond)

	s := NewState()
	d.Poll(s)
	assert.Equal(t, Key(0), s.Held(), "keys last one tick")

	ss.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	select {
	case <-d.Quit():
	case <-time.After(time.Second):
		t.Fatal("quit not signalled")
	}
	assert.Same(t, ss, d.Screen())
}
