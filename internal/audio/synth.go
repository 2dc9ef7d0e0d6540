package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
)

type wave int

const (
	waveSine wave = iota
	waveSquare
	waveNoise
)

// sweep is a tone gliding between two frequencies with an exponential decay.
// A zero length makes it endless.
type sweep struct {
	sr       beep.SampleRate
	wave     wave
	from, to float64
	decay    float64 // per second
	amp      float64
	length   int
	pos      int
	phase    float64
	rng      *rand.Rand
}

func (g *sweep) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if g.length > 0 && g.pos >= g.length {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.sr)
		freq := g.from
		if g.length > 0 {
			freq += (g.to - g.from) * float64(g.pos) / float64(g.length)
		}

		var v float64
		switch g.wave {
		case waveSine:
			v = math.Sin(2 * math.Pi * g.phase)
		case waveSquare:
			v = 1
			if g.phase >= 0.5 {
				v = -1
			}
		case waveNoise:
			v = g.rng.Float64()*2 - 1
		}
		v *= g.amp * math.Exp(-g.decay*t)

		samples[i][0] = v
		samples[i][1] = v
		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *sweep) Err() error { return nil }

// bassline repeats a note pattern forever.
type bassline struct {
	sr    beep.SampleRate
	notes []float64
	step  int
	pos   int
}

func (g *bassline) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		note := (g.pos / g.step) % len(g.notes)
		inNote := g.pos % g.step
		t := float64(g.pos) / float64(g.sr)
		env := 1 - float64(inNote)/float64(g.step)
		v := 0.12 * env * math.Sin(2*math.Pi*g.notes[note]*t)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *bassline) Err() error { return nil }

func oneShot(s Sound, sr beep.SampleRate) beep.Streamer {
	switch s {
	case Shoot:
		return &sweep{sr: sr, wave: waveSquare, from: 880, to: 440, decay: 20, amp: 0.08, length: sr.N(80 * time.Millisecond)}
	case Explosion:
		return &sweep{sr: sr, wave: waveNoise, decay: 7, amp: 0.3, length: sr.N(400 * time.Millisecond), rng: newRand()}
	case GameOver:
		return &sweep{sr: sr, wave: waveSine, from: 440, to: 110, decay: 1.5, amp: 0.25, length: sr.N(1200 * time.Millisecond)}
	}
	return nil
}

func loop(s Sound, sr beep.SampleRate) beep.Streamer {
	switch s {
	case Music:
		return &bassline{sr: sr, notes: []float64{55, 55, 65.4, 49}, step: sr.N(300 * time.Millisecond)}
	case Engine:
		return &sweep{sr: sr, wave: waveNoise, amp: 0.05, rng: newRand()}
	}
	return nil
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
