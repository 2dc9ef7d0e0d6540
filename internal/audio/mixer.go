package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// DefaultSampleRate is used for the speaker and every generator.
const DefaultSampleRate = beep.SampleRate(44100)

// Mixer mixes one-shot effects and pausable loops into a single stream.
type Mixer struct {
	mu     sync.Mutex
	sr     beep.SampleRate
	mixer  *beep.Mixer
	loops  map[Sound]*beep.Ctrl
	volume float64
}

// NewMixer creates a mixer. volume is in beep's log2 scale, 0 is unchanged.
func NewMixer(sr beep.SampleRate, volume float64) *Mixer {
	return &Mixer{
		sr:     sr,
		mixer:  &beep.Mixer{},
		loops:  make(map[Sound]*beep.Ctrl),
		volume: volume,
	}
}

// Streamer returns the mixed output. It is safe to read from another goroutine.
func (m *Mixer) Streamer() beep.Streamer {
	return lockedStreamer{m}
}

// Active returns how many streamers are mixing, paused loops included.
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mixer.Len()
}

func (m *Mixer) Play(s Sound) {
	src := oneShot(s, m.sr)
	if src == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mixer.Add(m.withVolume(src))
}

func (m *Mixer) StartLoop(s Sound) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ctrl, ok := m.loops[s]; ok {
		ctrl.Paused = false
		return
	}
	src := loop(s, m.sr)
	if src == nil {
		return
	}
	ctrl := &beep.Ctrl{Streamer: m.withVolume(src)}
	m.loops[s] = ctrl
	m.mixer.Add(ctrl)
}

func (m *Mixer) StopLoop(s Sound) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ctrl, ok := m.loops[s]; ok {
		ctrl.Paused = true
	}
}

// Looping reports whether loop s is currently audible.
func (m *Mixer) Looping(s Sound) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	ctrl, ok := m.loops[s]
	return ok && !ctrl.Paused
}

// Close silences everything.
func (m *Mixer) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ctrl := range m.loops {
		ctrl.Paused = true
	}
	m.mixer.Clear()
	clear(m.loops)
}

func (m *Mixer) withVolume(s beep.Streamer) beep.Streamer {
	if m.volume == 0 {
		return s
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: m.volume}
}

type lockedStreamer struct{ m *Mixer }

func (l lockedStreamer) Stream(samples [][2]float64) (int, bool) {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	return l.m.mixer.Stream(samples)
}

func (l lockedStreamer) Err() error { return nil }

var _ Player = (*Mixer)(nil)

// OpenSpeaker starts playing m on the default audio device.
func OpenSpeaker(m *Mixer) error {
	if err := speaker.Init(m.sr, m.sr.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(m.Streamer())
	return nil
}

// CloseSpeaker releases the audio device.
func CloseSpeaker() {
	speaker.Close()
}
