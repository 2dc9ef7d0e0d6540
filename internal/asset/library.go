package asset

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// Library hands out sprite resources by name. Resources requested before the
// sheet finishes loading stay pending and are published by the loader.
type Library struct {
	mu         sync.Mutex
	sheet      *Sheet
	loadErr    error
	done       bool
	images     map[string]*Resource[*Image]
	animations map[string]*Resource[[]*Image]
	logger     *log.Logger
}

// NewLibrary creates an empty library. A nil logger uses log.Default().
func NewLibrary(logger *log.Logger) *Library {
	if logger == nil {
		logger = log.Default()
	}
	return &Library{
		images:     make(map[string]*Resource[*Image]),
		animations: make(map[string]*Resource[[]*Image]),
		logger:     logger,
	}
}

// LoadAsync parses data on a separate goroutine.
func (l *Library) LoadAsync(data []byte) {
	go func() {
		_ = l.Load(data)
	}()
}

// Load parses data and publishes every requested resource.
func (l *Library) Load(data []byte) error {
	sheet, err := ParseSheet(data)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done {
		return nil
	}
	l.done = true
	l.sheet = sheet
	l.loadErr = err
	if err != nil {
		l.logger.Error("sprite sheet failed to load", "err", err)
	}
	for name, r := range l.images {
		l.publishImage(name, r)
	}
	for name, r := range l.animations {
		l.publishAnimation(name, r)
	}
	return err
}

// Image returns the resource for a single sprite.
func (l *Library) Image(name string) *Resource[*Image] {
	l.mu.Lock()
	defer l.mu.Unlock()
	if r, ok := l.images[name]; ok {
		return r
	}
	r := &Resource[*Image]{}
	l.images[name] = r
	if l.done {
		l.publishImage(name, r)
	}
	return r
}

// Animation returns the resource for an animation frame list.
func (l *Library) Animation(name string) *Resource[[]*Image] {
	l.mu.Lock()
	defer l.mu.Unlock()
	if r, ok := l.animations[name]; ok {
		return r
	}
	r := &Resource[[]*Image]{}
	l.animations[name] = r
	if l.done {
		l.publishAnimation(name, r)
	}
	return r
}

func (l *Library) publishImage(name string, r *Resource[*Image]) {
	if l.loadErr != nil {
		r.fail(l.loadErr)
		return
	}
	img, ok := l.sheet.Images[name]
	if !ok {
		r.fail(fmt.Errorf("%w: %q", ErrUnknownSprite, name))
		l.logger.Warn("sprite missing from sheet", "name", name)
		return
	}
	r.resolve(img)
}

func (l *Library) publishAnimation(name string, r *Resource[[]*Image]) {
	if l.loadErr != nil {
		r.fail(l.loadErr)
		return
	}
	frames, ok := l.sheet.Animations[name]
	if !ok {
		r.fail(fmt.Errorf("%w: %q", ErrUnknownSprite, name))
		l.logger.Warn("animation missing from sheet", "name", name)
		return
	}
	r.resolve(frames)
}
