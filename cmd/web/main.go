package main

import (
	_ "embed"
	"html/template"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/meteors/internal/config"
	"github.com/tomz197/meteors/internal/score"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
	boardSize   = 10
)

//go:embed index.html
var htmlPage string

var page = template.Must(template.New("index").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(htmlPage))

type pageData struct {
	SSHHost string
	SSHPort string
	Scores  []score.Entry
}

// scoresFunc loads the current board.
type scoresFunc func() ([]score.Entry, error)

func main() {
	logger := config.NewLogger(os.Stderr, "web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	sshPort := config.GetEnv("SSH_DISPLAY_PORT", "2222")

	// The SSH server writes the board; reopen it per request to see new entries.
	load := func() ([]score.Entry, error) {
		s, err := score.Open("meteors")
		if err != nil {
			return nil, err
		}
		return s.Top(boardSize), nil
	}

	addr := net.JoinHostPort(host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newHandler(pageData{SSHHost: sshHost, SSHPort: sshPort}, load, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("starting web server", "url", "http://"+addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

func newHandler(base pageData, load scoresFunc, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		data := base
		entries, err := load()
		if err != nil {
			logger.Warn("load scores", "err", err)
		}
		data.Scores = entries

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Execute(w, data); err != nil {
			logger.Error("render page", "err", err)
		}
	})
	return mux
}
