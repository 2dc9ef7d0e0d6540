package loop

import (
	"slices"

	"github.com/tomz197/meteors/internal/object"
	"github.com/tomz197/meteors/internal/physics"
)

// checkProjectileMeteorite removes each projectile on its first hit against
// a live meteorite and damages only that meteorite.
func (g *Game) checkProjectileMeteorite() {
	for i := 0; i < len(g.projectiles); {
		if g.hitMeteorite(g.projectiles[i]) {
			g.projectiles = slices.Delete(g.projectiles, i, i+1)
			continue
		}
		i++
	}
}

func (g *Game) hitMeteorite(p *object.Projectile) bool {
	for _, m := range g.meteorites {
		if m.Destroyed() {
			continue
		}
		if !physics.CirclesOverlap(p.Position(), p.Radius(), m.Position(), m.Radius()) {
			continue
		}
		g.events.Hits++
		if m.ApplyDamage(g.player.ProjectileDamage()) {
			g.onKill(m)
			g.credit()
		}
		return true
	}
	return false
}

// snapshotLive records the meteorites that are live before any collision
// check runs this frame.
func (g *Game) snapshotLive() {
	g.live = g.live[:0]
	for _, m := range g.meteorites {
		if !m.Destroyed() {
			g.live = append(g.live, m)
		}
	}
}

// checkMeteoriteMeteorite destroys both meteorites of every overlapping pair
// from the frame's live snapshot. A meteorite killed earlier in the frame
// still takes down whatever it overlaps. Meteorite collisions never score.
func (g *Game) checkMeteoriteMeteorite() {
	for i, a := range g.live {
		for _, b := range g.live[i+1:] {
			if !physics.CirclesOverlap(a.Position(), a.Radius(), b.Position(), b.Radius()) {
				continue
			}
			if a.ApplyDamage(a.MaxHealth()) {
				g.onKill(a)
			}
			if b.ApplyDamage(b.MaxHealth()) {
				g.onKill(b)
			}
		}
	}
}

// checkPlayerMeteorite trades collision damage between the player and every
// live meteorite it touches. A defeated player still rams but earns nothing.
func (g *Game) checkPlayerMeteorite() {
	pos, r := g.player.Position(), g.player.Radius()
	for _, m := range g.meteorites {
		if m.Destroyed() {
			continue
		}
		if !physics.CirclesOverlap(pos, r, m.Position(), m.Radius()) {
			continue
		}
		g.events.PlayerHit = true
		if g.player.ApplyDamage(g.settings.Meteorite.CollisionDamage) {
			g.events.PlayerDefeated = true
		}
		if m.ApplyDamage(g.settings.Player.RamDamage) {
			g.onKill(m)
			g.credit()
		}
	}
}
