package loop

import (
	"math"

	"github.com/tomz197/meteors/internal/input"
	"github.com/tomz197/meteors/internal/object"
	"github.com/tomz197/meteors/internal/vec"
)

const projectilesPerShot = 2

func (g *Game) handleMovement(c input.Controls) {
	on := c.Held(input.Thrust) && !g.player.Defeated()
	g.player.ApplyThrust(on)
	g.events.Thrusting = on
}

// handleRotation turns the ship. Right wins when both directions are held.
func (g *Game) handleRotation(c input.Controls) {
	dir := 0
	if c.Held(input.RotateRight) {
		dir = 1
	} else if c.Held(input.RotateLeft) {
		dir = -1
	}
	g.player.ApplyRotation(dir)
}

// handleShooting fires a pair of projectiles on each fire press, at most
// once per reload interval.
func (g *Game) handleShooting(c input.Controls) {
	if !c.JustActivated(input.Fire) || g.player.Defeated() {
		return
	}
	now := g.now()
	if g.fired && now.Sub(g.lastShot) < g.reload {
		return
	}
	g.fired = true
	g.lastShot = now

	cfg := g.settings.Projectile
	pos := g.player.Position()
	theta := g.player.Rotation()
	heading := vec.FromAngle(theta)
	side := vec.New(-math.Sin(theta), math.Cos(theta))
	vel := heading.Scale(cfg.Speed)

	for _, sign := range [projectilesPerShot]float64{-1, 1} {
		at := pos.Add(side.Scale(sign * cfg.SpreadMargin))
		g.projectiles = append(g.projectiles, object.NewProjectile(at, vel, cfg.Radius, g.sprites))
	}
	g.events.Shots += projectilesPerShot
}
