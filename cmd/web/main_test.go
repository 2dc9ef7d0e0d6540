package main

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/meteors/internal/score"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestIndexShowsHostAndScores(t *testing.T) {
	load := func() ([]score.Entry, error) {
		return []score.Entry{
			{Name: "vera", Points: 120, At: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
			{Name: "<b>bob</b>", Points: 45, At: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
		}, nil
	}
	h := newHandler(pageData{SSHHost: "play.example.org", SSHPort: "2022"}, load, log.New(io.Discard))

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "ssh -t play.example.org -p 2022")
	assert.Contains(t, body, "<td>1</td><td>vera</td>")
	assert.Contains(t, body, "2026-03-02")
	assert.Contains(t, body, "&lt;b&gt;bob&lt;/b&gt;")
	assert.NotContains(t, body, "<b>bob</b>")
}

func TestIndexWithoutScores(t *testing.T) {
	load := func() ([]score.Entry, error) { return nil, errors.New("no data dir") }
	h := newHandler(pageData{SSHHost: "h", SSHPort: "22"}, load, log.New(io.Discard))

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No scores yet")
}

func TestUnknownPathIsNotFound(t *testing.T) {
	h := newHandler(pageData{}, func() ([]score.Entry, error) { return nil, nil }, log.New(io.Discard))
	assert.Equal(t, http.StatusNotFound, get(t, h, "/nope").Code)
}
