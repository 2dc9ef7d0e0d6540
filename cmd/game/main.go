package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/meteors/internal/audio"
	"github.com/tomz197/meteors/internal/config"
	"github.com/tomz197/meteors/internal/loop"
	"github.com/tomz197/meteors/internal/score"
)

const appName = "meteors"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.Load(config.GetEnv("METEORS_CONFIG", ""))
	if err != nil {
		return err
	}

	logOut, err := config.LogOutput()
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logOut.Close()
	logger := config.NewLogger(logOut, appName)

	player := newAudio(logger)
	if m, ok := player.(*audio.Mixer); ok {
		defer audio.CloseSpeaker()
		defer m.Close()
	}

	opts := loop.Options{
		Settings:   settings,
		Audio:      player,
		Logger:     logger,
		PlayerName: config.GetEnv("USER", "player"),
	}
	if scores, err := score.Open(appName); err != nil {
		logger.Warn("high scores disabled", "err", err)
	} else {
		opts.Scores = scores
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, opts)
	if errors.Is(err, loop.ErrInactive) {
		return nil
	}
	return err
}

// newAudio opens the speaker, falling back to silence when there is no
// usable device or METEORS_MUTE is set.
func newAudio(logger *log.Logger) audio.Player {
	muted, err := config.GetEnvBool("METEORS_MUTE", false)
	if err != nil {
		logger.Warn("ignoring bad env", "err", err)
	}
	if muted {
		return audio.Nop{}
	}
	volume, err := config.GetEnvFloat("METEORS_VOLUME", 0)
	if err != nil {
		logger.Warn("ignoring bad env", "err", err)
	}
	m := audio.NewMixer(audio.DefaultSampleRate, volume)
	if err := audio.OpenSpeaker(m); err != nil {
		logger.Warn("audio disabled", "err", err)
		return audio.Nop{}
	}
	return m
}
