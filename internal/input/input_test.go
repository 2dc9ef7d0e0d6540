package input

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestHeldExpiresAfterHoldDuration(t *testing.T) {
	var tr Tracker
	tr.Feed([]byte("w"), t0)

	s := tr.Snapshot(t0.Add(10 * time.Millisecond))
	assert.True(t, s.Held(Thrust))
	assert.False(t, s.Held(Fire))

	s = tr.Snapshot(t0.Add(keyHoldDuration))
	assert.False(t, s.Held(Thrust))
}

func TestArrowKeys(t *testing.T) {
	var tr Tracker
	tr.Feed([]byte("\x1b[A\x1b[D"), t0)
	s := tr.Snapshot(t0)
	assert.True(t, s.Held(Thrust))
	assert.True(t, s.Held(RotateLeft))
	assert.False(t, s.Held(Pause))
}

func TestLoneEscapePausesOnNextFeed(t *testing.T) {
	var tr Tracker
	tr.Feed([]byte{'\x1b'}, t0)
	assert.False(t, tr.Snapshot(t0).Held(Pause))

	t1 := t0.Add(16 * time.Millisecond)
	tr.Feed(nil, t1)
	assert.True(t, tr.Snapshot(t1).Held(Pause))
}

func TestEscapeFollowedByKeyPauses(t *testing.T) {
	var tr Tracker
	tr.Feed([]byte{'\x1b'}, t0)
	tr.Feed([]byte("w"), t0)
	s := tr.Snapshot(t0)
	assert.True(t, s.Held(Pause))
	assert.True(t, s.Held(Thrust))
}

func TestArrowSplitAcrossFeeds(t *testing.T) {
	for _, split := range []int{1, 2} {
		var tr Tracker
		seq := []byte("\x1b[C")
		tr.Feed(seq[:split], t0)
		assert.False(t, tr.Snapshot(t0).Held(Pause))

		tr.Feed(seq[split:], t0)
		s := tr.Snapshot(t0)
		assert.True(t, s.Held(RotateRight), "split at %d", split)
		assert.False(t, s.Held(Pause), "split at %d", split)
		assert.False(t, s.Held(RotateLeft), "split at %d", split)
	}
}

func TestJustActivatedFiresOncePerEdge(t *testing.T) {
	var tr Tracker
	tr.Feed([]byte(" "), t0)
	s := tr.Snapshot(t0)
	assert.True(t, s.JustActivated(Fire))
	assert.False(t, s.JustActivated(Fire), "edge resets after one read")

	// Key repeat keeps the control held without a new edge.
	tr.Feed([]byte(" "), t0.Add(20*time.Millisecond))
	s = tr.Snapshot(t0.Add(20 * time.Millisecond))
	assert.True(t, s.Held(Fire))
	assert.False(t, s.JustActivated(Fire))

	// Released then pressed again.
	_ = tr.Snapshot(t0.Add(200 * time.Millisecond))
	tr.Feed([]byte(" "), t0.Add(300*time.Millisecond))
	s = tr.Snapshot(t0.Add(300 * time.Millisecond))
	assert.True(t, s.JustActivated(Fire))
}

func TestResetForgetsHistory(t *testing.T) {
	var tr Tracker
	tr.Feed([]byte("q"), t0)
	tr.Reset()
	assert.False(t, tr.Snapshot(t0).Held(Quit))
}

func TestNilStateIsInactive(t *testing.T) {
	var s *State
	assert.False(t, s.Held(Fire))
	assert.False(t, s.JustActivated(Fire))
}

func TestStreamReportsClose(t *testing.T) {
	s := StartStream(bytes.NewReader([]byte("d")))

	var state *State
	require.Eventually(t, func() bool {
		state = s.Poll(time.Now())
		return state.Closed
	}, time.Second, time.Millisecond)

	// Polling a closed stream must not block or spin.
	state = s.Poll(time.Now())
	assert.True(t, state.Closed)
	assert.False(t, state.Activity)
}

func TestStreamActivity(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	s := StartStream(r)

	go func() { _, _ = w.Write([]byte("a")) }()
	require.Eventually(t, func() bool {
		st := s.Poll(time.Now())
		return st.Activity && st.Held(RotateLeft)
	}, time.Second, time.Millisecond)
}

func TestControlString(t *testing.T) {
	assert.Equal(t, "fire", Fire.String())
	assert.Equal(t, "unknown", Control(99).String())
}
