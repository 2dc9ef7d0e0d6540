package asset

import (
	"math"

	"github.com/tomz197/meteors/internal/vec"
)

// Image is a vector sprite. Points are normalized to [0,1] inside a
// Width x Height box in arena units.
type Image struct {
	Name   string
	Width  float64
	Height float64
	Lines  [][]vec.Vector2 // open polylines
	Dots   []vec.Vector2
}

// transformed returns a copy scaled and rotated around the sprite center.
func (img *Image) transformed(name string, scale, angle float64) *Image {
	sin, cos := math.Sincos(angle)
	apply := func(p vec.Vector2) vec.Vector2 {
		x := (p.X - 0.5) * scale
		y := (p.Y - 0.5) * scale
		return vec.New(x*cos-y*sin+0.5, x*sin+y*cos+0.5)
	}

	out := &Image{
		Name:   name,
		Width:  img.Width,
		Height: img.Height,
		Lines:  make([][]vec.Vector2, len(img.Lines)),
		Dots:   make([]vec.Vector2, len(img.Dots)),
	}
	for i, line := range img.Lines {
		out.Lines[i] = make([]vec.Vector2, len(line))
		for j, p := range line {
			out.Lines[i][j] = apply(p)
		}
	}
	for i, p := range img.Dots {
		out.Dots[i] = apply(p)
	}
	return out
}
