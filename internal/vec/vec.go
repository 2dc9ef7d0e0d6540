// Package vec provides the 2D vector type shared by the simulation.
package vec

import "math"

// Vector2 is a 2D value used for positions, velocities, accelerations and targets.
// It is always passed by value, so callers receiving one never alias entity state.
type Vector2 struct {
	X, Y float64
}

// New returns the vector (x, y).
func New(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// FromAngle returns a unit vector pointing at angle (radians, 0 = right).
func FromAngle(angle float64) Vector2 {
	return Vector2{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Length returns the magnitude of v.
func (v Vector2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Angle returns the heading of v in radians.
func (v Vector2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Normalize returns the unit vector of v, or fallback when v has no length
// (or is not finite).
func (v Vector2) Normalize(fallback Vector2) Vector2 {
	l := v.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return fallback
	}
	return Vector2{X: v.X / l, Y: v.Y / l}
}

// ClampLength scales v down so its magnitude does not exceed max.
func (v Vector2) ClampLength(max float64) Vector2 {
	l := v.Length()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}
