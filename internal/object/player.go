package object

import (
	"math"

	"github.com/tomz197/meteors/internal/config"
	"github.com/tomz197/meteors/internal/draw"
	"github.com/tomz197/meteors/internal/physics"
	"github.com/tomz197/meteors/internal/vec"
)

// Player is the ship. Rotation 0 faces right.
type Player struct {
	cfg     config.PlayerSettings
	sprites Sprites

	pos vec.Vector2
	vel vec.Vector2
	acc vec.Vector2

	rotation float64
	rotVel   float64
	rotAcc   float64

	hp               health
	projectileDamage float64

	// Arena area the ship center may occupy.
	minX, minY, maxX, maxY float64

	engine *Animation
	death  *deathSequence
}

// NewPlayer creates a ship at the arena center.
func NewPlayer(s config.Settings, sprites Sprites) *Player {
	mx := s.Game.Width * s.Game.ArenaMarginX
	my := s.Game.Height * s.Game.ArenaMarginY
	return &Player{
		cfg:              s.Player,
		sprites:          sprites,
		pos:              vec.New(s.Game.Width/2, s.Game.Height/2),
		hp:               newHealth(s.Player.Health),
		projectileDamage: s.Projectile.Damage,
		minX:             mx,
		minY:             my,
		maxX:             s.Game.Width - mx,
		maxY:             s.Game.Height - my,
		engine:           NewAnimation(sprites.Engine, s.Player.EngineFrames, s.Player.EngineFrameDelay, true),
		death: newDeathSequence(
			NewAnimation(sprites.Explosion, s.Game.ExplosionFrames, s.Game.ExplosionFrameStep, false),
			s.Ticks(s.Game.RemoveDelayMS),
		),
	}
}

// Update moves the ship, or only advances the explosion once defeated.
func (p *Player) Update() {
	if p.hp.depleted {
		p.death.step()
		return
	}
	if p.Moving() {
		p.engine.Step()
	} else {
		p.engine.Reset()
	}

	p.pos = p.pos.Add(p.vel)
	p.pos.X = physics.Clamp(p.pos.X, p.minX, p.maxX)
	p.pos.Y = physics.Clamp(p.pos.Y, p.minY, p.maxY)
	p.rotation += p.rotVel
}

// ApplyThrust accelerates along the heading while on, then applies friction
// and the speed cap.
func (p *Player) ApplyThrust(on bool) {
	if p.hp.depleted {
		return
	}
	if on {
		p.acc = vec.FromAngle(p.rotation).Scale(p.cfg.Acceleration)
	} else {
		p.acc = vec.Vector2{}
	}
	p.vel = p.vel.Add(p.acc).Scale(p.cfg.Friction).ClampLength(p.cfg.MaxSpeed)
}

// ApplyRotation turns clockwise for dir > 0, counter-clockwise for dir < 0,
// and lets the spin decay for dir == 0.
func (p *Player) ApplyRotation(dir int) {
	if p.hp.depleted {
		return
	}
	switch {
	case dir > 0:
		p.rotAcc = p.cfg.RotationAccel
	case dir < 0:
		p.rotAcc = -p.cfg.RotationAccel
	default:
		p.rotAcc = 0
		p.rotVel *= p.cfg.RotationFriction
	}
	p.rotVel = physics.Clamp(p.rotVel+p.rotAcc, -p.cfg.MaxRotationSpeed, p.cfg.MaxRotationSpeed)
}

// ApplyDamage reduces health and starts the explosion when it reaches zero.
func (p *Player) ApplyDamage(amount float64) bool {
	killed := p.hp.damage(amount)
	if killed {
		p.death.start()
	}
	return killed
}

// Moving reports whether the engine animation should play.
func (p *Player) Moving() bool {
	return math.Abs(p.vel.X) >= p.cfg.MovingThreshold ||
		math.Abs(p.vel.Y) >= p.cfg.MovingThreshold ||
		math.Abs(p.rotVel) > p.cfg.RotatingThreshold
}

func (p *Player) Position() vec.Vector2       { return p.pos }
func (p *Player) Velocity() vec.Vector2       { return p.vel }
func (p *Player) Acceleration() vec.Vector2   { return p.acc }
func (p *Player) Rotation() float64           { return p.rotation }
func (p *Player) RotationalVelocity() float64 { return p.rotVel }
func (p *Player) Health() float64             { return p.hp.current }
func (p *Player) MaxHealth() float64          { return p.hp.max }
func (p *Player) Defeated() bool              { return p.hp.depleted }
func (p *Player) ReadyToRemove() bool         { return p.death.ready }
func (p *Player) ProjectileDamage() float64   { return p.projectileDamage }

// Radius derives from the sprite size, or the fallback radius before it loads.
func (p *Player) Radius() float64 {
	if img, ok := p.sprites.Player.Get(); ok {
		return math.Min(img.Width, img.Height) * p.cfg.Scale / 2
	}
	return p.cfg.FallbackRadius * p.cfg.Scale
}

func (p *Player) Draw(s draw.Surface) {
	if p.hp.depleted {
		if p.death.ready {
			return
		}
		drawExplosion(s, p.death.explosion, p.pos, p.cfg.Scale*2)
		return
	}

	img, ok := p.sprites.Player.Get()
	if !ok {
		return
	}
	w := img.Width * p.cfg.Scale
	h := img.Height * p.cfg.Scale

	s.Save()
	s.Translate(p.pos.X, p.pos.Y)
	s.Rotate(p.rotation)
	if p.Moving() {
		if flame := p.engine.Frame(); flame != nil {
			fw := flame.Width * p.cfg.Scale
			fh := flame.Height * p.cfg.Scale
			s.DrawImage(flame, -w/2-fw, -fh/2, fw, fh)
		}
	}
	s.DrawImage(img, -w/2, -h/2, w, h)
	s.Restore()
}

// drawExplosion draws the current explosion frame centered on pos.
func drawExplosion(s draw.Surface, anim *Animation, pos vec.Vector2, scale float64) {
	frame := anim.Frame()
	if frame == nil {
		return
	}
	w := frame.Width * scale
	h := frame.Height * scale
	s.Save()
	s.Translate(pos.X, pos.Y)
	s.DrawImage(frame, -w/2, -h/2, w, h)
	s.Restore()
}
