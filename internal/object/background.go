package object

import (
	"math"

	"github.com/tomz197/meteors/internal/config"
	"github.com/tomz197/meteors/internal/draw"
	"github.com/tomz197/meteors/internal/physics"
	"github.com/tomz197/meteors/internal/vec"
)

// Background is the star field drifting against the ship's motion.
type Background struct {
	sprites     Sprites
	width       float64
	height      float64
	factor      float64
	fallbackMax float64
	offset      vec.Vector2
}

// NewBackground creates a centered background for the arena.
func NewBackground(s config.Settings, sprites Sprites) *Background {
	return &Background{
		sprites:     sprites,
		width:       s.Game.Width,
		height:      s.Game.Height,
		factor:      s.Game.ParallaxFactor,
		fallbackMax: s.Game.ParallaxMaxOffset,
	}
}

// Follow shifts the offset against the ship velocity, bounded so the image
// always covers the arena.
func (b *Background) Follow(playerVel vec.Vector2) {
	maxX, maxY := b.maxOffset()
	b.offset.X = physics.Clamp(b.offset.X-playerVel.X*b.factor, -maxX, maxX)
	b.offset.Y = physics.Clamp(b.offset.Y-playerVel.Y*b.factor, -maxY, maxY)
}

// Offset returns the parallax offset.
func (b *Background) Offset() vec.Vector2 {
	return b.offset
}

func (b *Background) maxOffset() (float64, float64) {
	img, ok := b.sprites.Background.Get()
	if !ok {
		return b.fallbackMax, b.fallbackMax
	}
	return math.Max(0, (img.Width-b.width)/2), math.Max(0, (img.Height-b.height)/2)
}

func (b *Background) Draw(s draw.Surface) {
	img, ok := b.sprites.Background.Get()
	if !ok {
		return
	}
	x := (b.width-img.Width)/2 + b.offset.X
	y := (b.height-img.Height)/2 + b.offset.Y
	s.DrawImage(img, x, y, img.Width, img.Height)
}
