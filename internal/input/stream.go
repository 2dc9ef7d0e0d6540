package input

import (
	"bufio"
	"io"
	"time"
)

// Stream reads terminal bytes on a goroutine and hands them to the game loop.
type Stream struct {
	ch      chan byte
	closed  bool
	tracker Tracker
	buf     []byte
}

// StartStream spawns a goroutine that reads r until it fails.
func StartStream(r io.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	go func() {
		defer close(s.ch)
		for {
			b, err := br.ReadByte()
			if err != nil {
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Poll drains pending bytes without blocking and returns the frame snapshot.
func (s *Stream) Poll(now time.Time) *State {
	s.buf = s.buf[:0]
drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			s.buf = append(s.buf, b)
		default:
			break drain
		}
	}

	s.tracker.Feed(s.buf, now)
	state := s.tracker.Snapshot(now)
	state.Activity = len(s.buf) > 0
	state.Closed = s.closed
	return state
}

// Reset drops key history, e.g. when switching screens.
func (s *Stream) Reset() {
	s.tracker.Reset()
}
