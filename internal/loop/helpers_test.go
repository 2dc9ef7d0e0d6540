package loop

import (
	"time"

	"github.com/tomz197/meteors/internal/audio"
	"github.com/tomz197/meteors/internal/config"
	"github.com/tomz197/meteors/internal/input"
	"github.com/tomz197/meteors/internal/object"
	"github.com/tomz197/meteors/internal/vec"
)

// keys is a scripted input snapshot.
type keys struct {
	held    map[input.Control]bool
	pressed map[input.Control]bool
}

func hold(cs ...input.Control) *keys {
	k := &keys{held: map[input.Control]bool{}, pressed: map[input.Control]bool{}}
	for _, c := range cs {
		k.held[c] = true
	}
	return k
}

func press(cs ...input.Control) *keys {
	k := hold(cs...)
	for _, c := range cs {
		k.pressed[c] = true
	}
	return k
}

func idle() *keys { return hold() }

func (k *keys) Held(c input.Control) bool { return k.held[c] }

func (k *keys) JustActivated(c input.Control) bool {
	p := k.pressed[c]
	delete(k.pressed, c)
	return p
}

type constRand float64

func (r constRand) Float64() float64 { return float64(r) }

type clock struct{ t time.Time }

func newClock() *clock { return &clock{t: time.UnixMilli(1_200_000)} }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestGame() (*Game, *clock) {
	clk := newClock()
	g := NewGame(config.Default(), object.Sprites{}, GameOptions{Rand: constRand(0.5), Now: clk.now})
	return g, clk
}

// rockAt places a stationary meteorite with collision radius 10.
func rockAt(g *Game, x, y float64) *object.Meteorite {
	pos := vec.New(x, y)
	m := object.NewMeteorite(g.settings, object.Sprites{}, pos, vec.Vector2{}, pos, 0.5, 1)
	g.AddMeteorite(m)
	return m
}

func shotAt(g *Game, x, y float64, vel vec.Vector2) *object.Projectile {
	p := object.NewProjectile(vec.New(x, y), vel, g.settings.Projectile.Radius, object.Sprites{})
	g.AddProjectile(p)
	return p
}

type fakeAudio struct {
	played []audio.Sound
	loops  map[audio.Sound]bool
}

func newFakeAudio() *fakeAudio { return &fakeAudio{loops: map[audio.Sound]bool{}} }

func (a *fakeAudio) Play(s audio.Sound)      { a.played = append(a.played, s) }
func (a *fakeAudio) StartLoop(s audio.Sound) { a.loops[s] = true }
func (a *fakeAudio) StopLoop(s audio.Sound)  { a.loops[s] = false }

type fakeBoard struct {
	submitted []int
	best      int
	rank      int
	err       error
}

func (b *fakeBoard) Submit(_ string, points int) (int, error) {
	b.submitted = append(b.submitted, points)
	b.best = max(b.best, points)
	return b.rank, b.err
}

func (b *fakeBoard) Best() int { return b.best }
