package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"

	"github.com/tomz197/meteors/internal/asset"
	"github.com/tomz197/meteors/internal/audio"
	"github.com/tomz197/meteors/internal/config"
	"github.com/tomz197/meteors/internal/draw"
	"github.com/tomz197/meteors/internal/loop"
	"github.com/tomz197/meteors/internal/metrics"
	"github.com/tomz197/meteors/internal/score"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultMetricsAddr = ":9090"

	defaultInactivityWarn    = 90 * time.Second
	defaultInactivityTimeout = 120 * time.Second
)

// games holds what every session shares.
type games struct {
	settings config.Settings
	assets   *asset.Library
	scores   *score.Store
	metrics  *metrics.Recorder
	logger   *log.Logger

	inactivityWarn    time.Duration
	inactivityTimeout time.Duration
}

func main() {
	logger := config.NewLogger(os.Stderr, "ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	metricsAddr := config.GetEnv("METRICS_ADDR", defaultMetricsAddr)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "metrics", metricsAddr)

	settings, err := config.Load(config.GetEnv("METEORS_CONFIG", ""))
	if err != nil {
		logger.Fatal("failed to load settings", "err", err)
	}

	g := &games{
		settings: settings,
		assets:   asset.NewLibrary(logger),
		metrics:  metrics.New(nil),
		logger:   logger,
	}
	if g.inactivityWarn, err = config.GetEnvDuration("INACTIVITY_WARN", defaultInactivityWarn); err != nil {
		logger.Fatal("bad inactivity warning", "err", err)
	}
	if g.inactivityTimeout, err = config.GetEnvDuration("INACTIVITY_TIMEOUT", defaultInactivityTimeout); err != nil {
		logger.Fatal("bad inactivity timeout", "err", err)
	}
	g.assets.LoadAsync(asset.DefaultSheet)
	if g.scores, err = score.Open("meteors"); err != nil {
		logger.Warn("high scores disabled", "err", err)
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			g.middleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// TCP_NODELAY keeps key presses from queueing behind Nagle.
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", g.metrics.Handler())
	metricsServer := &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := metricsServer.Shutdown(ctx); err != nil {
		logger.Warn("metrics shutdown", "err", err)
	}
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// middleware runs one game per SSH session.
func (g *games) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := g.logger.With("session", uuid.NewString(), "user", sess.User())
		logger.Info("new game session", "terminal", pty.Term, "size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		g.metrics.SessionOpened()
		defer g.metrics.SessionClosed()

		opts := loop.Options{
			Settings:          g.settings,
			Assets:            g.assets,
			Audio:             audio.Nop{},
			Metrics:           g.metrics,
			Logger:            logger,
			TermSizeFunc:      sizeTracker.getSize,
			PlayerName:        sess.User(),
			InactivityWarn:    g.inactivityWarn,
			InactivityTimeout: g.inactivityTimeout,
		}
		// A nil *score.Store must not become a non-nil interface.
		if g.scores != nil {
			opts.Scores = g.scores
		}

		err := loop.Run(sess.Context(), bufio.NewReader(sess), sess, opts)
		switch {
		case errors.Is(err, loop.ErrInactive):
			fmt.Fprintf(sess, "Disconnected after %s without input. Thanks for playing!\n", g.inactivityTimeout)
		case err != nil:
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
