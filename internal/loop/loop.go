// Package loop runs the game: the per-frame simulation, the screen state
// machine, and terminal output for one player.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/meteors/internal/asset"
	"github.com/tomz197/meteors/internal/audio"
	"github.com/tomz197/meteors/internal/config"
	"github.com/tomz197/meteors/internal/draw"
	"github.com/tomz197/meteors/internal/input"
	"github.com/tomz197/meteors/internal/metrics"
	"github.com/tomz197/meteors/internal/object"
)

// Max render resolution in terminal cells. Larger terminals get a centered
// arena with a border.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)

// maxFrameDelta caps the tween step after a stall.
const maxFrameDelta = 0.1

// ErrInactive is returned by Run when the player idled past the timeout.
var ErrInactive = errors.New("disconnected for inactivity")

// ScoreBoard records finished games. *score.Store satisfies it.
type ScoreBoard interface {
	Submit(name string, points int) (rank int, err error)
	Best() int
}

// Options configures Run. Zero fields use defaults.
type Options struct {
	Settings     config.Settings
	Assets       *asset.Library // shared sprite library; loaded on demand when nil
	Audio        audio.Player
	Scores       ScoreBoard
	Metrics      *metrics.Recorder
	Logger       *log.Logger
	TermSizeFunc draw.TermSizeFunc
	PlayerName   string

	// Idle time before the warning screen and before disconnecting.
	// Zero disables the check.
	InactivityWarn    time.Duration
	InactivityTimeout time.Duration

	Rand object.Rand
	Now  func() time.Time
}

// session is one player's run: input, screens, the current round and the
// terminal it draws to.
type session struct {
	opts     Options
	settings config.Settings
	log      *log.Logger
	audio    audio.Player
	sprites  object.Sprites
	now      func() time.Time

	frameTime time.Duration

	out     io.Writer
	stream  *input.Stream
	cw      *draw.ChunkWriter
	canvas  *draw.Canvas
	surface *draw.CanvasSurface

	screen     Screen
	prevScreen Screen
	game       *Game
	hud        *hud
	banner     banner

	best int
	rank int

	lastInput   time.Time
	lastFrame   time.Time
	inactive    bool
	wasInactive bool
}

// Run plays until the player quits, the input closes, ctx is cancelled, or
// the inactivity timeout elapses.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	opts.setDefaults()
	if err := opts.Settings.Validate(); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	s := newSession(r, w, opts)

	draw.HideCursor(w)
	draw.ClearScreen(w)
	defer s.close()

	return s.run(ctx)
}

func (o *Options) setDefaults() {
	if o.Settings == (config.Settings{}) {
		o.Settings = config.Default()
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Audio == nil {
		o.Audio = audio.Nop{}
	}
	if o.TermSizeFunc == nil {
		o.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

func newSession(r io.Reader, w io.Writer, opts Options) *session {
	opts.setDefaults()
	lib := opts.Assets
	if lib == nil {
		lib = asset.NewLibrary(opts.Logger)
		lib.LoadAsync(asset.DefaultSheet)
	}

	st := opts.Settings
	termWidth, termHeight, _ := opts.TermSizeFunc()
	layout := draw.Fit(termWidth, termHeight, MaxTermWidth, MaxTermHeight)
	canvas := draw.NewScaledCanvas(layout.Width, layout.Height, st.Game.Width, st.Game.Height)
	canvas.SetOffset(layout.OffsetCol, layout.OffsetRow)

	s := &session{
		opts:       opts,
		settings:   st,
		log:        opts.Logger,
		audio:      opts.Audio,
		sprites:    object.LoadSprites(lib),
		now:        opts.Now,
		frameTime:  time.Second / time.Duration(st.Game.FPS),
		out:        w,
		stream:     input.StartStream(r),
		cw:         draw.NewChunkWriter(w, layout.OffsetCol, layout.OffsetRow),
		canvas:     canvas,
		surface:    draw.NewCanvasSurface(canvas),
		screen:     ScreenStart,
		prevScreen: -1,
		hud:        newHUD(),
	}
	s.game = s.newGame()
	if opts.Scores != nil {
		s.best = opts.Scores.Best()
	}
	return s
}

func (s *session) newGame() *Game {
	return NewGame(s.settings, s.sprites, GameOptions{Rand: s.opts.Rand, Now: s.now})
}

func (s *session) run(ctx context.Context) error {
	start := s.now()
	s.lastInput = start
	s.lastFrame = start

	timer := time.NewTimer(s.frameTime)
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			return nil
		}

		frameStart := s.now()
		done, err := s.frame(frameStart)
		if err != nil || done {
			return err
		}

		elapsed := s.now().Sub(frameStart)
		s.opts.Metrics.ObserveFrame(elapsed)
		if elapsed >= s.frameTime {
			continue
		}
		timer.Reset(s.frameTime - elapsed)
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
}

// frame runs input, update and draw once. It reports done when the session
// should end.
func (s *session) frame(now time.Time) (bool, error) {
	ctl := s.stream.Poll(now)
	if ctl.Closed || ctl.JustActivated(input.Quit) {
		return true, nil
	}
	if s.checkInactivity(now, ctl.Activity) {
		s.log.Info("disconnecting idle player", "player", s.opts.PlayerName)
		return true, ErrInactive
	}

	dt := float32(min(now.Sub(s.lastFrame).Seconds(), maxFrameDelta))
	s.lastFrame = now

	s.resize()
	s.update(ctl, dt)
	return false, s.render(now)
}

// checkInactivity updates the warning flag and reports whether the idle
// timeout elapsed.
func (s *session) checkInactivity(now time.Time, activity bool) bool {
	if activity {
		s.lastInput = now
		s.inactive = false
		return false
	}
	if s.opts.InactivityTimeout <= 0 {
		return false
	}
	idle := now.Sub(s.lastInput)
	if idle >= s.opts.InactivityTimeout {
		return true
	}
	s.inactive = s.opts.InactivityWarn > 0 && idle >= s.opts.InactivityWarn
	return false
}

func (s *session) update(ctl input.Controls, dt float32) {
	switch s.screen {
	case ScreenStart:
		if ctl.JustActivated(input.Start) || ctl.JustActivated(input.Fire) {
			s.startGame()
		}
	case ScreenPlaying:
		if ctl.JustActivated(input.Pause) {
			s.pause()
			return
		}
		s.apply(s.game.Step(ctl))
		s.hud.setHealth(s.game.Health() / s.game.MaxHealth())
		s.hud.update(dt)
		if s.game.Over() {
			s.gameOver()
		}
	case ScreenPaused:
		if ctl.JustActivated(input.Pause) || ctl.JustActivated(input.Start) || ctl.JustActivated(input.Fire) {
			s.resume()
		}
	case ScreenGameOver:
		s.banner.update(dt)
		if s.banner.done && (ctl.JustActivated(input.Start) || ctl.JustActivated(input.Fire)) {
			s.startGame()
		}
	}
}

// apply turns simulation events into sound and metrics.
func (s *session) apply(ev Events) {
	if ev.Shots > 0 {
		s.audio.Play(audio.Shoot)
	}
	if ev.Kills > 0 || ev.PlayerDefeated {
		s.audio.Play(audio.Explosion)
	}
	if ev.Thrusting {
		s.audio.StartLoop(audio.Engine)
	} else {
		s.audio.StopLoop(audio.Engine)
	}
	if ev.PlayerDefeated {
		s.log.Debug("player defeated", "player", s.opts.PlayerName, "score", s.game.Score())
	}
	s.opts.Metrics.ShotsFired(ev.Shots)
	s.opts.Metrics.MeteoritesDestroyed(ev.Kills)
}

func (s *session) startGame() {
	s.stream.Reset()
	s.game.Release()
	s.game = s.newGame()
	s.game.StartSpawning()
	s.audio.StartLoop(audio.Music)
	s.hud.reset()
	s.rank = 0
	s.screen = ScreenPlaying
	s.opts.Metrics.GameStarted()
	s.log.Debug("game started", "player", s.opts.PlayerName)
}

func (s *session) pause() {
	s.game.StopSpawning()
	s.audio.StopLoop(audio.Music)
	s.audio.StopLoop(audio.Engine)
	s.screen = ScreenPaused
}

func (s *session) resume() {
	s.game.StartSpawning()
	s.audio.StartLoop(audio.Music)
	s.screen = ScreenPlaying
}

func (s *session) gameOver() {
	s.audio.Play(audio.GameOver)
	s.audio.StopLoop(audio.Music)
	s.audio.StopLoop(audio.Engine)
	s.game.StopSpawning()

	points := s.game.Score()
	s.best = max(s.best, points)
	if s.opts.Scores != nil {
		rank, err := s.opts.Scores.Submit(s.opts.PlayerName, points)
		if err != nil {
			s.log.Warn("failed to record score", "player", s.opts.PlayerName, "err", err)
		}
		s.rank = rank
		s.best = max(s.best, s.opts.Scores.Best())
	}
	s.log.Info("game over", "player", s.opts.PlayerName, "score", points, "rank", s.rank)

	s.banner.start(1, s.canvas.TerminalHeight()/2-len(gameOverArt)-1)
	s.screen = ScreenGameOver
}

// resize follows the terminal size, clamped to the max render resolution.
// Actual size changes clear the terminal to remove residue outside the new
// canvas area.
func (s *session) resize() {
	termWidth, termHeight, err := s.opts.TermSizeFunc()
	if err != nil {
		return
	}
	l := draw.Fit(termWidth, termHeight, MaxTermWidth, MaxTermHeight)

	if l.Width != s.canvas.TerminalWidth() || l.Height != s.canvas.TerminalHeight() ||
		l.OffsetCol != s.canvas.OffsetCol() || l.OffsetRow != s.canvas.OffsetRow() {
		draw.ClearScreen(s.cw)
		s.canvas.ForceRedraw()
	}

	s.canvas.Resize(l.Width, l.Height)
	s.canvas.SetOffset(l.OffsetCol, l.OffsetRow)
	s.cw.SetOffset(l.OffsetCol, l.OffsetRow)
}

func (s *session) render(now time.Time) error {
	// Screen and warning transitions clear so old overlays do not persist.
	if s.screen != s.prevScreen || s.inactive != s.wasInactive {
		draw.ClearScreen(s.cw)
		s.canvas.ForceRedraw()
		s.prevScreen = s.screen
		s.wasInactive = s.inactive
	}

	s.surface.Begin()
	s.game.Draw(s.surface)
	if s.screen == ScreenPlaying || s.screen == ScreenPaused {
		s.hud.drawBar(s.surface, s.settings.Game.Width)
	}
	if err := s.surface.Present(s.cw); err != nil {
		return err
	}
	s.drawUI(now)
	return s.cw.Flush()
}

func (s *session) close() {
	s.audio.StopLoop(audio.Music)
	s.audio.StopLoop(audio.Engine)
	s.game.Release()
	if err := s.cw.Flush(); err != nil {
		s.log.Debug("flush on close", "err", err)
	}
	draw.ClearScreen(s.out)
	draw.ShowCursor(s.out)
}
