package loop

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/tomz197/meteors/internal/draw"
	"github.com/tomz197/meteors/internal/vec"
)

const (
	healthTweenSeconds = 0.35
	bannerTweenSeconds = 0.9

	// Health bar box in arena units.
	hudMargin    = 12.0
	hudBarWidth  = 160.0
	hudBarHeight = 18.0
)

// hud eases the displayed health toward the real value.
type hud struct {
	shown  float32
	target float32
	tween  *gween.Tween
}

func newHUD() *hud {
	return &hud{shown: 1, target: 1}
}

func (h *hud) reset() {
	*h = hud{shown: 1, target: 1}
}

// setHealth retargets the bar to fraction in [0, 1].
func (h *hud) setHealth(fraction float64) {
	t := float32(fraction)
	if t == h.target {
		return
	}
	h.target = t
	h.tween = gween.New(h.shown, t, healthTweenSeconds, ease.OutQuad)
}

func (h *hud) update(dt float32) {
	if h.tween == nil {
		return
	}
	cur, done := h.tween.Update(dt)
	h.shown = cur
	if done {
		h.shown = h.target
		h.tween = nil
	}
}

// barOrigin is the top-left corner of the health bar.
func barOrigin(arenaWidth float64) vec.Vector2 {
	return vec.New(arenaWidth-hudBarWidth-hudMargin, hudMargin)
}

func (h *hud) drawBar(s draw.Surface, arenaWidth float64) {
	o := barOrigin(arenaWidth)
	tl := o
	tr := o.Add(vec.New(hudBarWidth, 0))
	br := o.Add(vec.New(hudBarWidth, hudBarHeight))
	bl := o.Add(vec.New(0, hudBarHeight))
	s.StrokeLine(tl, tr)
	s.StrokeLine(tr, br)
	s.StrokeLine(br, bl)
	s.StrokeLine(bl, tl)
	s.FillRect(o.X, o.Y, hudBarWidth*float64(h.shown), hudBarHeight)
}

// banner drops the game-over title into place.
type banner struct {
	tween *gween.Tween
	row   float32
	done  bool
}

func (b *banner) start(fromRow, toRow int) {
	b.tween = gween.New(float32(fromRow), float32(toRow), bannerTweenSeconds, ease.OutBounce)
	b.row = float32(fromRow)
	b.done = false
}

func (b *banner) update(dt float32) {
	if b.tween == nil || b.done {
		return
	}
	b.row, b.done = b.tween.Update(dt)
}
