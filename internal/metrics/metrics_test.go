package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		m := f.GetMetric()[0]
		if g := m.GetGauge(); g != nil {
			return g.GetValue()
		}
		return m.GetCounter().GetValue()
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.SessionOpened()
	r.SessionOpened()
	r.SessionClosed()
	r.GameStarted()
	r.ShotsFired(2)
	r.ShotsFired(0)
	r.MeteoritesDestroyed(3)
	r.MeteoritesDestroyed(-1)
	r.ObserveFrame(5 * time.Millisecond)

	assert.Equal(t, 1.0, counterValue(t, reg, "meteors_active_sessions"))
	assert.Equal(t, 1.0, counterValue(t, reg, "meteors_games_played_total"))
	assert.Equal(t, 2.0, counterValue(t, reg, "meteors_shots_fired_total"))
	assert.Equal(t, 3.0, counterValue(t, reg, "meteors_meteorites_destroyed_total"))
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.SessionOpened()
		r.SessionClosed()
		r.GameStarted()
		r.ShotsFired(1)
		r.MeteoritesDestroyed(1)
		r.ObserveFrame(time.Millisecond)
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerServesMetrics(t *testing.T) {
	r := New(nil)
	r.GameStarted()

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "meteors_games_played_total 1")
}
