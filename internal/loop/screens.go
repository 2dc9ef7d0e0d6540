package loop

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Screen is the session phase.
type Screen int

const (
	ScreenStart    Screen = iota // Title screen
	ScreenPlaying                // Active round
	ScreenPaused                 // Round frozen, spawner and music stopped
	ScreenGameOver               // Round finished, waiting for restart
)

func (s Screen) String() string {
	switch s {
	case ScreenStart:
		return "start"
	case ScreenPlaying:
		return "playing"
	case ScreenPaused:
		return "paused"
	case ScreenGameOver:
		return "game_over"
	}
	return "unknown"
}

// ASCII art titles (figlet "small" font).
var (
	titleArt = []string{
		`  __  __ ___ _____ ___ ___  ___  ___  `,
		` |  \/  | __|_   _| __/ _ \| _ \/ __| `,
		` | |\/| | _|  | | | _| (_) |   /\__ \ `,
		` |_|  |_|___| |_| |___\___/|_|_\|___/ `,
		`                                      `,
	}
	pausedArt = []string{
		`  ___  _   _   _ ___ ___ ___   `,
		` | _ \/_\ | | | / __| __|   \  `,
		` |  _/ _ \| |_| \__ \ _|| |) | `,
		` |_|/_/ \_\\___/|___/___|___/  `,
	}
	gameOverArt = []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}
	controlLines = []string{
		"W / Up  . . . . Thrust",
		"A D / < >  . .  Rotate",
		"SPACE  . . . . . Shoot",
		"P / ESC  . . . . Pause",
		"Q  . . . . . . .  Quit",
	}
)

// blinkOn toggles every 600ms for prompts.
func blinkOn(now time.Time) bool {
	return now.UnixMilli()/600%2 == 0
}

// text writes str at a 1-based canvas cell and lets the canvas repaint the
// cells underneath next frame.
func (s *session) text(col, row int, str string) {
	s.cw.WriteAt(col, row, str)
	s.canvas.MarkTextDirty(col, row, utf8.RuneCountInString(str))
}

func (s *session) centered(row int, str string) {
	s.text(s.canvas.TerminalWidth()/2-utf8.RuneCountInString(str)/2, row, str)
}

func (s *session) art(row int, lines []string) {
	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	col := s.canvas.TerminalWidth()/2 - width/2
	for i, l := range lines {
		s.text(col, row+i, l)
	}
}

func (s *session) drawUI(now time.Time) {
	if s.inactive {
		s.drawInactivityScreen(now)
		return
	}
	switch s.screen {
	case ScreenStart:
		s.drawStartScreen(now)
	case ScreenPlaying:
		s.drawPlayingHUD()
	case ScreenPaused:
		s.drawPlayingHUD()
		s.drawPausedScreen()
	case ScreenGameOver:
		s.drawGameOverScreen(now)
	}
}

func (s *session) drawStartScreen(now time.Time) {
	centerY := s.canvas.TerminalHeight() / 2
	titleY := centerY - 8
	s.art(titleY, titleArt)

	s.centered(titleY+len(titleArt)+1, "~ Hold the line against the meteor storm ~")

	controlsY := titleY + len(titleArt) + 3
	s.centered(controlsY, "Controls")
	for i, line := range controlLines {
		s.centered(controlsY+1+i, line)
	}

	promptY := controlsY + len(controlLines) + 2
	if blinkOn(now) {
		s.centered(promptY, ">>  Press SPACE to Start  <<")
	}
	if s.best > 0 {
		s.centered(promptY+2, fmt.Sprintf("Best score: %d", s.best))
	}
}

// drawPlayingHUD uses fixed-width fields so shrinking values leave no
// residue, since the screen is not cleared every frame.
func (s *session) drawPlayingHUD() {
	s.text(2, 1, fmt.Sprintf("Score: %-8d", s.game.Score()))
	s.text(2, 2, fmt.Sprintf("Best:  %-8d", max(s.best, s.game.Score())))

	o := barOrigin(s.settings.Game.Width)
	col, row := s.canvas.LogicalToTerminal(o.X, o.Y+hudBarHeight/2)
	if col > 4 {
		s.text(col-4, row, fmt.Sprintf("%3.0f", s.game.Health()))
	}
}

func (s *session) drawPausedScreen() {
	centerY := s.canvas.TerminalHeight() / 2
	s.art(centerY-4, pausedArt)
	s.centered(centerY+2, "Press P to resume")
}

func (s *session) drawGameOverScreen(now time.Time) {
	titleY := int(s.banner.row)
	s.art(titleY, gameOverArt)

	infoY := s.canvas.TerminalHeight()/2 + 1
	s.centered(infoY, fmt.Sprintf("Score: %d", s.game.Score()))
	s.centered(infoY+1, fmt.Sprintf("Best:  %d", s.best))
	if s.rank > 0 {
		s.centered(infoY+3, fmt.Sprintf("New entry on the board at #%d", s.rank))
	}
	if s.banner.done && blinkOn(now) {
		s.centered(infoY+5, ">>  Press SPACE to Restart  <<")
	}
}

func (s *session) drawInactivityScreen(now time.Time) {
	centerY := s.canvas.TerminalHeight() / 2
	s.centered(centerY-2, "INACTIVITY WARNING")

	left := max(0, int((s.opts.InactivityTimeout - now.Sub(s.lastInput)).Seconds()))
	s.centered(centerY, fmt.Sprintf("You have been inactive for too long. You will be disconnected in %d seconds.", left))
	s.centered(centerY+2, "Press any key to continue")
}
