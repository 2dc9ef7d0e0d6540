package object

import "github.com/tomz197/meteors/internal/asset"

// Animation steps through frames on a tick counter. Frame timing uses a fixed
// frame count so it does not depend on whether the images have loaded.
type Animation struct {
	frames *asset.Resource[[]*asset.Image]
	count  int
	delay  int
	loop   bool

	tick  int
	index int
}

// NewAnimation creates an animation of count frames, advancing every delay ticks.
func NewAnimation(frames *asset.Resource[[]*asset.Image], count, delay int, loop bool) *Animation {
	return &Animation{
		frames: frames,
		count:  max(count, 1),
		delay:  max(delay, 1),
		loop:   loop,
	}
}

// Step advances one tick. One-shot animations stop on their last frame.
func (a *Animation) Step() {
	if a.Done() {
		return
	}
	a.tick++
	if a.tick < a.delay {
		return
	}
	a.tick = 0
	a.index++
	if a.index >= a.count {
		if a.loop {
			a.index = 0
		} else {
			a.index = a.count - 1
		}
	}
}

// Done reports whether a one-shot animation has reached its last frame.
func (a *Animation) Done() bool {
	return !a.loop && a.index == a.count-1
}

// Index returns the current frame number.
func (a *Animation) Index() int {
	return a.index
}

// Reset rewinds to the first frame.
func (a *Animation) Reset() {
	a.tick = 0
	a.index = 0
}

// Frame returns the current image, or nil while the frames are not ready.
func (a *Animation) Frame() *asset.Image {
	frames, ok := a.frames.Get()
	if !ok || len(frames) == 0 {
		return nil
	}
	return frames[a.index%len(frames)]
}

// deathSequence runs the explosion animation, then waits removeDelay ticks
// on the last frame before the entity is ready to remove.
type deathSequence struct {
	explosion   *Animation
	removeDelay int
	waited      int
	active      bool
	ready       bool
}

func newDeathSequence(explosion *Animation, removeDelay int) *deathSequence {
	return &deathSequence{explosion: explosion, removeDelay: removeDelay}
}

func (d *deathSequence) start() {
	d.active = true
}

func (d *deathSequence) step() {
	if !d.active || d.ready {
		return
	}
	if !d.explosion.Done() {
		d.explosion.Step()
		return
	}
	d.waited++
	if d.waited >= d.removeDelay {
		d.ready = true
	}
}
