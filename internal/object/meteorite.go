package object

import (
	"github.com/tomz197/meteors/internal/config"
	"github.com/tomz197/meteors/internal/draw"
	"github.com/tomz197/meteors/internal/vec"
)

const (
	healthBarGap    = 10
	healthBarHeight = 7
)

// Meteorite flies along its launch velocity scaled by a per-instance speed.
type Meteorite struct {
	sprites Sprites

	pos    vec.Vector2
	vel    vec.Vector2
	target vec.Vector2

	scale    float64
	speed    float64
	rotation float64

	hp             health
	fallbackRadius float64

	tail  *Animation
	death *deathSequence
}

// NewMeteorite creates a meteorite at pos heading along vel.
func NewMeteorite(s config.Settings, sprites Sprites, pos, vel, target vec.Vector2, scale, speed float64) *Meteorite {
	return &Meteorite{
		sprites:        sprites,
		pos:            pos,
		vel:            vel,
		target:         target,
		scale:          scale,
		speed:          speed,
		rotation:       vel.Angle(),
		hp:             newHealth(s.Meteorite.Health),
		fallbackRadius: s.Meteorite.FallbackRadius,
		tail:           NewAnimation(sprites.Tail, s.Game.FlameFrames, s.Game.FlameFrameStep, true),
		death: newDeathSequence(
			NewAnimation(sprites.Explosion, s.Game.ExplosionFrames, s.Game.ExplosionFrameStep, false),
			s.Ticks(s.Game.RemoveDelayMS),
		),
	}
}

// Update moves the meteorite, or only advances the explosion once destroyed.
func (m *Meteorite) Update() {
	if m.hp.depleted {
		m.death.step()
		return
	}
	m.pos = m.pos.Add(m.vel.Scale(m.speed))
	m.rotation = m.vel.Angle()
	m.tail.Step()
}

// ApplyDamage reduces health; reaching zero destroys the meteorite for good.
func (m *Meteorite) ApplyDamage(amount float64) bool {
	killed := m.hp.damage(amount)
	if killed {
		m.death.start()
	}
	return killed
}

func (m *Meteorite) Position() vec.Vector2 { return m.pos }
func (m *Meteorite) Velocity() vec.Vector2 { return m.vel }
func (m *Meteorite) Target() vec.Vector2   { return m.target }
func (m *Meteorite) Scale() float64        { return m.scale }
func (m *Meteorite) Speed() float64        { return m.speed }
func (m *Meteorite) Rotation() float64     { return m.rotation }
func (m *Meteorite) Health() float64       { return m.hp.current }
func (m *Meteorite) MaxHealth() float64    { return m.hp.max }
func (m *Meteorite) Destroyed() bool       { return m.hp.depleted }
func (m *Meteorite) ReadyToRemove() bool   { return m.death.ready }

// Radius is half the scaled sprite width, or the scaled fallback before it loads.
func (m *Meteorite) Radius() float64 {
	if img, ok := m.sprites.Meteorite.Get(); ok {
		return img.Width * m.scale / 2
	}
	return m.fallbackRadius * m.scale
}

func (m *Meteorite) Draw(s draw.Surface) {
	if m.hp.depleted {
		if !m.death.ready {
			drawExplosion(s, m.death.explosion, m.pos, m.scale*2)
		}
		return
	}

	img, ok := m.sprites.Meteorite.Get()
	if !ok {
		return
	}
	w := img.Width * m.scale
	h := img.Height * m.scale

	s.Save()
	s.Translate(m.pos.X, m.pos.Y)
	s.Rotate(m.rotation)
	if tail := m.tail.Frame(); tail != nil {
		// Trails behind the rock, opposite its heading.
		s.DrawImage(tail, -w/2-max(w, h)/2, -h/2, w, h)
	}
	s.DrawImage(img, -w/2, -h/2, w, h)
	s.Restore()

	// Health bar stays level under the rock.
	s.Save()
	s.Translate(m.pos.X, m.pos.Y)
	y := h/2 + healthBarGap
	s.StrokeLine(vec.New(-w/2, y), vec.New(w/2, y))
	s.FillRect(-w/2, y, w*m.hp.fraction(), healthBarHeight)
	s.Restore()
}
