package object

import (
	"math"

	"github.com/tomz197/meteors/internal/config"
	"github.com/tomz197/meteors/internal/vec"
)

// Rand is the random source used for spawning. *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Spawner launches a meteorite every interval ticks while running. It never
// holds on to what it spawned.
type Spawner struct {
	settings config.Settings
	sprites  Sprites
	rng      Rand

	interval int
	counter  int
	running  bool
}

// NewSpawner creates a stopped spawner.
func NewSpawner(s config.Settings, sprites Sprites, rng Rand) *Spawner {
	return &Spawner{
		settings: s,
		sprites:  sprites,
		rng:      rng,
		interval: s.Ticks(s.Meteorite.SpawnIntervalMS),
	}
}

func (sp *Spawner) Start()        { sp.running = true }
func (sp *Spawner) Stop()         { sp.running = false }
func (sp *Spawner) Running() bool { return sp.running }

// Reset zeroes the tick counter.
func (sp *Spawner) Reset() {
	sp.counter = 0
}

// Tick counts one frame and returns a new meteorite when the interval elapses.
func (sp *Spawner) Tick() *Meteorite {
	if !sp.running {
		return nil
	}
	sp.counter++
	if sp.counter < sp.interval {
		return nil
	}
	sp.counter = 0
	return sp.Spawn()
}

// Spawn creates a meteorite on the spawn perimeter aimed near the arena center.
func (sp *Spawner) Spawn() *Meteorite {
	g := sp.settings.Game
	m := sp.settings.Meteorite

	pos := sp.PerimeterPoint(sp.rng.Float64() * sp.perimeter())

	center := vec.New(g.Width/2, g.Height/2)
	radius := sp.rng.Float64() * g.Width * m.TargetRadiusFactor
	angle := sp.rng.Float64() * 2 * math.Pi
	target := center.Add(vec.FromAngle(angle).Scale(radius))

	vel := launchDirection(pos, target, center).Scale(m.LaunchSpeed)

	scale := m.MinScale + sp.rng.Float64()*(m.MaxScale-m.MinScale)
	speed := m.MinSpeed + sp.rng.Float64()*(m.MaxSpeed-m.MinSpeed)

	return NewMeteorite(sp.settings, sp.sprites, pos, vel, target, scale, speed)
}

// launchDirection points from pos to target. A degenerate target falls back
// to the arena center, and a spawn on the center falls back to +x.
func launchDirection(pos, target, center vec.Vector2) vec.Vector2 {
	return target.Sub(pos).Normalize(center.Sub(pos).Normalize(vec.New(1, 0)))
}

func (sp *Spawner) perimeter() float64 {
	margin := sp.settings.Meteorite.SpawnMargin
	return 2*(sp.settings.Game.Width+2*margin) + 2*(sp.settings.Game.Height+2*margin)
}

// PerimeterPoint maps a distance d along the grown arena border to a point.
// The walk goes along the top left to right, the right side downwards, the
// bottom right to left and the left side upwards.
func (sp *Spawner) PerimeterPoint(d float64) vec.Vector2 {
	margin := sp.settings.Meteorite.SpawnMargin
	w := sp.settings.Game.Width
	h := sp.settings.Game.Height
	horizontal := w + 2*margin
	vertical := h + 2*margin

	d = math.Mod(d, sp.perimeter())
	if d < 0 {
		d += sp.perimeter()
	}

	switch {
	case d < horizontal:
		return vec.New(-margin+d, -margin)
	case d < horizontal+vertical:
		return vec.New(w+margin, -margin+(d-horizontal))
	case d < 2*horizontal+vertical:
		return vec.New(w+margin-(d-horizontal-vertical), h+margin)
	default:
		return vec.New(-margin, h+margin-(d-2*horizontal-vertical))
	}
}
