package loop

import (
	"slices"

	"github.com/tomz197/meteors/internal/object"
	"github.com/tomz197/meteors/internal/physics"
)

// sweep updates every entity and removes those drop reports. Iterating
// backwards keeps indices valid while removing.
func sweep[E object.Entity](es []E, drop func(E) bool) []E {
	for i := len(es) - 1; i >= 0; i-- {
		es[i].Update()
		if drop(es[i]) {
			es = slices.Delete(es, i, i+1)
		}
	}
	return es
}

// updateProjectiles moves projectiles and drops those that left the arena.
func (g *Game) updateProjectiles() {
	w, h := g.settings.Game.Width, g.settings.Game.Height
	g.projectiles = sweep(g.projectiles, func(p *object.Projectile) bool {
		return !physics.InBounds(p.Position(), 0, 0, w, h)
	})
}

// updateMeteorites moves meteorites, drops live ones that drifted past the
// cull margin, and drops destroyed ones once their explosion finished.
func (g *Game) updateMeteorites() {
	w, h := g.settings.Game.Width, g.settings.Game.Height
	margin := g.settings.Meteorite.CullMargin
	g.meteorites = sweep(g.meteorites, func(m *object.Meteorite) bool {
		if m.Destroyed() {
			return m.ReadyToRemove()
		}
		return !physics.InBounds(m.Position(), -margin, -margin, w+margin, h+margin)
	})
}

func (g *Game) updateDebris() {
	g.debris = sweep(g.debris, func(d *object.Debris) bool {
		if !d.Expired() {
			return false
		}
		d.Release()
		return true
	})
}
