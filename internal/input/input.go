// Package input turns host key events into per-frame pressed/just-pressed
// state for the simulation's input phase.
package input

import "strings"

// Key is one bit of the keyboard state the simulation reacts to.
type Key uint16

const (
	KeyUp Key = 1 << iota
	KeyDown
	KeyLeft
	KeyRight
	KeyW     // place bubble spawner
	KeySpace // place harvester
	KeyE     // brew potion
)

var keyNames = []struct {
	k    Key
	name string
}{
	{KeyUp, "up"},
	{KeyDown, "down"},
	{KeyLeft, "left"},
	{KeyRight, "right"},
	{KeyW, "w"},
	{KeySpace, "space"},
	{KeyE, "e"},
}

func (k Key) String() string {
	var parts []string
	for _, kn := range keyNames {
		if k&kn.k != 0 {
			parts = append(parts, kn.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// ParseKey resolves a single key name as used by input scripts.
func ParseKey(name string) (Key, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, kn := range keyNames {
		if kn.name == name {
			return kn.k, true
		}
	}
	return 0, false
}

// State is the keyboard as seen by one tick: which keys are held and which
// went down since the previous EndFrame.
type State struct {
	pressed Key
	just    Key
}

func NewState() *State { return &State{} }

// Press marks k held. The first Press after a release is a just-pressed edge.
func (s *State) Press(k Key) {
	s.just |= k &^ s.pressed
	s.pressed |= k
}

func (s *State) Release(k Key) {
	s.pressed &^= k
}

// Set replaces the held keys with exactly held, producing edges for keys
// that were not held before.
func (s *State) Set(held Key) {
	s.just |= held &^ s.pressed
	s.pressed = held
}

func (s *State) Pressed(k Key) bool     { return s.pressed&k != 0 }
func (s *State) JustPressed(k Key) bool { return s.just&k != 0 }
func (s *State) Held() Key              { return s.pressed }

// EndFrame clears the edge set. Called once per tick after the input phase.
func (s *State) EndFrame() {
	s.just = 0
}

// Driver feeds host input into State once per tick.
type Driver interface {
	Poll(s *State)
	Close()
}
