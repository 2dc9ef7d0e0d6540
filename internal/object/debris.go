package object

import (
	"math"
	"sync"

	"github.com/tomz197/meteors/internal/draw"
	"github.com/tomz197/meteors/internal/vec"
)

var debrisPool = sync.Pool{
	New: func() any {
		return &Debris{}
	},
}

// Debris is a short-lived spark thrown out by an explosion. It has no
// collision and is purely visual.
type Debris struct {
	pos     vec.Vector2
	vel     vec.Vector2
	life    int
	maxLife int
	drag    float64
}

// SpawnDebris appends count sparks bursting from at to dst.
func SpawnDebris(dst []*Debris, at vec.Vector2, count int, speed float64, life int, rng Rand) []*Debris {
	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		spd := speed * (0.5 + rng.Float64())
		ticks := max(1, int(float64(life)*(0.5+rng.Float64()*0.5)))

		d := debrisPool.Get().(*Debris)
		*d = Debris{
			pos:     at,
			vel:     vec.FromAngle(angle).Scale(spd),
			life:    ticks,
			maxLife: ticks,
			drag:    0.95,
		}
		dst = append(dst, d)
	}
	return dst
}

func (d *Debris) Update() {
	if d.life > 0 {
		d.life--
	}
	d.vel = d.vel.Scale(d.drag)
	d.pos = d.pos.Add(d.vel)
}

// Expired reports whether the spark burned out.
func (d *Debris) Expired() bool { return d.life <= 0 }

// Release returns the spark to the pool. It must not be used afterwards.
func (d *Debris) Release() { debrisPool.Put(d) }

func (d *Debris) Position() vec.Vector2 { return d.pos }
func (d *Debris) Radius() float64       { return 0 }

func (d *Debris) Draw(s draw.Surface) {
	// Faded sparks are not drawn.
	if d.maxLife <= 0 || float64(d.life)/float64(d.maxLife) < 0.25 {
		return
	}
	s.StrokeLine(d.pos, d.pos.Sub(d.vel))
}
