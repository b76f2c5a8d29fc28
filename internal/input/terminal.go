package input

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// TerminalDriver reads keys from a tcell screen. Terminals report key
// presses and auto-repeat but never releases, so a key counts as held for
// the tick after each event it produced.
//
// Events are collected on a separate goroutine and handed to the game loop
// through a buffered channel.
type TerminalDriver struct {
	screen tcell.Screen
	keys   chan Key
	quit   chan struct{}
	once   sync.Once
	done   chan struct{}
}

// NewTerminalDriver takes ownership of an initialised screen and starts
// the event pump.
func NewTerminalDriver(screen tcell.Screen) *TerminalDriver {
	d := &TerminalDriver{
		screen: screen,
		keys:   make(chan Key, 64),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go d.pump()
	return d
}

func (d *TerminalDriver) pump() {
	defer close(d.done)
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			return // screen finalised
		}
		kev, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		if IsQuit(kev) {
			d.once.Do(func() { close(d.quit) })
			continue
		}
		if k, ok := Translate(kev); ok {
			select {
			case d.keys <- k:
			default: // loop is behind; drop repeats
			}
		}
	}
}

// Translate maps a tcell key event to a simulation key.
func Translate(ev *tcell.EventKey) (Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return KeyUp, true
	case tcell.KeyDown:
		return KeyDown, true
	case tcell.KeyLeft:
		return KeyLeft, true
	case tcell.KeyRight:
		return KeyRight, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return KeyW, true
		case 'e', 'E':
			return KeyE, true
		case ' ':
			return KeySpace, true
		}
	}
	return 0, false
}

// IsQuit reports whether ev asks to stop the simulation (Esc, Ctrl-C, q).
func IsQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

// Poll drains the keys received since the previous tick.
func (d *TerminalDriver) Poll(s *State) {
	var held Key
	for {
		select {
		case k := <-d.keys:
			held |= k
		default:
			s.Set(held)
			return
		}
	}
}

// Quit is closed when the user asks to stop.
func (d *TerminalDriver) Quit() <-chan struct{} { return d.quit }

func (d *TerminalDriver) Screen() tcell.Screen { return d.screen }

// Close finalises the screen and waits for the event pump to exit.
func (d *TerminalDriver) Close() {
	d.screen.Fini()
	<-d.done
}
