// Package physics provides collision detection and distance utilities.
package physics

import (
	"math"

	"github.com/tomz197/meteors/internal/vec"
)

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b vec.Vector2) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// CirclesOverlap reports whether two circles overlap.
// Touching circles (distance == r1+r2) do not overlap.
func CirclesOverlap(a vec.Vector2, r1 float64, b vec.Vector2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(a, b) < minDist*minDist
}

// InBounds reports whether p lies inside [minX, maxX] x [minY, maxY].
func InBounds(p vec.Vector2, minX, minY, maxX, maxY float64) bool {
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
