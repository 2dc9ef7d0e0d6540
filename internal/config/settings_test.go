package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, 800.0, s.Game.Width)
	assert.Equal(t, 600.0, s.Game.Height)
	assert.Equal(t, 5, s.Meteorite.ScorePerKill)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	data := []byte("meteorite:\n  spawn_interval_ms: 500\nplayer:\n  health: 50\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 500, s.Meteorite.SpawnIntervalMS)
	assert.Equal(t, 50.0, s.Player.Health)
	assert.Equal(t, Default().Projectile, s.Projectile)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("meteorite:\n  min_scale: 2\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestTicks(t *testing.T) {
	s := Default()
	assert.Equal(t, 120, s.Ticks(2000))
	assert.Equal(t, 6, s.Ticks(100))
	assert.Equal(t, 1, s.Ticks(0))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("METEORS_TEST_KEY", "value")
	assert.Equal(t, "value", GetEnv("METEORS_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("METEORS_TEST_MISSING", "fallback"))
}

func TestTypedEnv(t *testing.T) {
	t.Setenv("METEORS_TEST_BOOL", "true")
	t.Setenv("METEORS_TEST_FLOAT", "-1.5")
	t.Setenv("METEORS_TEST_DUR", "90s")
	t.Setenv("METEORS_TEST_BAD", "nope")

	b, err := GetEnvBool("METEORS_TEST_BOOL", false)
	require.NoError(t, err)
	assert.True(t, b)

	f, err := GetEnvFloat("METEORS_TEST_FLOAT", 0)
	require.NoError(t, err)
	assert.Equal(t, -1.5, f)

	d, err := GetEnvDuration("METEORS_TEST_DUR", 0)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	d, err = GetEnvDuration("METEORS_TEST_MISSING", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, d)

	f, err = GetEnvFloat("METEORS_TEST_BAD", 2)
	assert.Error(t, err)
	assert.Equal(t, 2.0, f)
}
