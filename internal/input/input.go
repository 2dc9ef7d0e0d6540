// Package input turns raw terminal bytes into per-frame control snapshots.
package input

import (
	"time"
)

// keyHoldDuration is how long a control counts as held after its last byte.
// Terminals only report key repeats, so this bridges the gap between them.
const keyHoldDuration = 60 * time.Millisecond

// Control is a logical game action.
type Control int

const (
	Thrust Control = iota
	RotateLeft
	RotateRight
	Fire
	Start
	Pause
	Quit
	controlCount
)

var controlNames = [controlCount]string{"thrust", "rotate-left", "rotate-right", "fire", "start", "pause", "quit"}

func (c Control) String() string {
	if c < 0 || c >= controlCount {
		return "unknown"
	}
	return controlNames[c]
}

// Controls is the per-frame input capability consumed by the game.
type Controls interface {
	// Held reports whether the control is currently active.
	Held(c Control) bool
	// JustActivated reports a press edge. It returns true at most once per edge.
	JustActivated(c Control) bool
}

// State is the snapshot for one frame.
type State struct {
	held    [controlCount]bool
	pressed [controlCount]bool
	// Activity is set when any byte arrived since the previous snapshot.
	Activity bool
	// Closed is set once the underlying reader is exhausted.
	Closed bool
}

func (s *State) Held(c Control) bool {
	if s == nil || c < 0 || c >= controlCount {
		return false
	}
	return s.held[c]
}

func (s *State) JustActivated(c Control) bool {
	if s == nil || c < 0 || c >= controlCount {
		return false
	}
	p := s.pressed[c]
	s.pressed[c] = false
	return p
}

var _ Controls = (*State)(nil)

// Tracker accumulates key timestamps and derives held and edge state.
// It does no I/O, so frames can be replayed deterministically.
type Tracker struct {
	lastSeen [controlCount]time.Time
	wasHeld  [controlCount]bool
	partial  []byte // escape sequence cut off at the end of the last feed
}

// Feed records the bytes received at now. An escape sequence split across
// feeds is completed by the next one; if that feed brings nothing, the
// escape stands alone.
func (t *Tracker) Feed(buf []byte, now time.Time) {
	flush := false
	if len(t.partial) > 0 {
		flush = len(buf) == 0
		buf = append(t.partial, buf...)
		t.partial = nil
	}
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == '\x1b' && !flush && unfinishedEscape(buf[i:]) {
			t.partial = append(t.partial, buf[i:]...)
			return
		}
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if c, ok := arrowControl(buf[i+2]); ok {
				t.lastSeen[c] = now
				i += 2
				continue
			}
		}
		if c, ok := byteControl(b); ok {
			t.lastSeen[c] = now
		}
	}
}

// Snapshot builds the State for now.
func (t *Tracker) Snapshot(now time.Time) *State {
	s := &State{}
	for c := Control(0); c < controlCount; c++ {
		seen := t.lastSeen[c]
		held := !seen.IsZero() && now.Sub(seen) < keyHoldDuration
		s.held[c] = held
		s.pressed[c] = held && !t.wasHeld[c]
		t.wasHeld[c] = held
	}
	return s
}

// Reset forgets all key history so a held key is not carried into a new screen.
func (t *Tracker) Reset() {
	*t = Tracker{}
}

// unfinishedEscape reports whether tail is "ESC" or "ESC [" with nothing after.
func unfinishedEscape(tail []byte) bool {
	return len(tail) == 1 || (len(tail) == 2 && tail[1] == '[')
}

func arrowControl(b byte) (Control, bool) {
	switch b {
	case 'A':
		return Thrust, true
	case 'C':
		return RotateRight, true
	case 'D':
		return RotateLeft, true
	}
	return 0, false
}

func byteControl(b byte) (Control, bool) {
	switch b {
	case 'w', 'W', 'i', 'I':
		return Thrust, true
	case 'a', 'A', 'j', 'J':
		return RotateLeft, true
	case 'd', 'D', 'l', 'L':
		return RotateRight, true
	case ' ':
		return Fire, true
	case '\r', '\n':
		return Start, true
	case 'p', 'P', '\x1b':
		return Pause, true
	case 'q', 'Q', '\x03':
		return Quit, true
	}
	return 0, false
}
