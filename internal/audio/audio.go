// Package audio plays synthesized game sounds.
package audio

// Sound identifies an effect or ambient loop.
type Sound int

const (
	Shoot Sound = iota
	Explosion
	GameOver
	Music
	Engine
)

func (s Sound) String() string {
	switch s {
	case Shoot:
		return "shoot"
	case Explosion:
		return "explosion"
	case GameOver:
		return "game_over"
	case Music:
		return "music"
	case Engine:
		return "engine"
	}
	return "unknown"
}

// Player is the audio capability used by the game loop.
type Player interface {
	// Play starts an independent one-shot instance of s.
	Play(s Sound)
	// StartLoop starts or resumes the ambient loop s. Starting a running loop is a no-op.
	StartLoop(s Sound)
	// StopLoop pauses the ambient loop s.
	StopLoop(s Sound)
}

// Nop discards every request. SSH sessions have no audio device.
type Nop struct{}

func (Nop) Play(Sound)      {}
func (Nop) StartLoop(Sound) {}
func (Nop) StopLoop(Sound)  {}

var _ Player = Nop{}
