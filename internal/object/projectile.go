package object

import (
	"github.com/tomz197/meteors/internal/draw"
	"github.com/tomz197/meteors/internal/vec"
)

// Projectile travels in a straight line at a fixed velocity.
type Projectile struct {
	pos     vec.Vector2
	vel     vec.Vector2
	radius  float64
	sprites Sprites
}

// NewProjectile creates a projectile with a fixed collision radius.
func NewProjectile(pos, vel vec.Vector2, radius float64, sprites Sprites) *Projectile {
	return &Projectile{
		pos:     pos,
		vel:     vel,
		radius:  max(radius, 0),
		sprites: sprites,
	}
}

func (p *Projectile) Update() {
	p.pos = p.pos.Add(p.vel)
}

func (p *Projectile) Position() vec.Vector2 { return p.pos }
func (p *Projectile) Velocity() vec.Vector2 { return p.vel }
func (p *Projectile) Radius() float64       { return p.radius }

func (p *Projectile) Draw(s draw.Surface) {
	img, ok := p.sprites.Projectile.Get()
	if !ok {
		return
	}
	s.Save()
	s.Translate(p.pos.X, p.pos.Y)
	s.Rotate(p.vel.Angle())
	s.DrawImage(img, -img.Width/2, -img.Height/2, img.Width, img.Height)
	s.Restore()
}
