// Package object contains the arena entities and their per-frame behavior.
package object

import (
	"math"

	"github.com/tomz197/meteors/internal/draw"
	"github.com/tomz197/meteors/internal/vec"
)

// Entity is anything advanced and drawn once per frame.
type Entity interface {
	// Update advances the entity by one tick.
	Update()
	// Position returns a copy of the entity center.
	Position() vec.Vector2
	// Radius is the collision radius. It is never negative, even before sprites load.
	Radius() float64
	// Draw issues the entity's draw calls. Entities with unloaded sprites skip them.
	Draw(s draw.Surface)
}

var (
	_ Entity = (*Player)(nil)
	_ Entity = (*Meteorite)(nil)
	_ Entity = (*Projectile)(nil)
	_ Entity = (*Debris)(nil)
)

// health is a bounded hit point pool with a one-way depleted flag.
type health struct {
	current  float64
	max      float64
	depleted bool
}

func newHealth(max float64) health {
	return health{current: max, max: max}
}

func (h *health) damage(amount float64) bool {
	if h.depleted {
		return false
	}
	if amount < 0 || math.IsNaN(amount) {
		amount = 0
	}
	h.current -= amount
	if h.current <= 0 {
		h.current = 0
		h.depleted = true
		return true
	}
	return false
}

func (h health) fraction() float64 {
	if h.max <= 0 {
		return 0
	}
	return h.current / h.max
}
