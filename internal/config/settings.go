package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a settings value is out of its allowed range.
var ErrInvalid = errors.New("invalid settings")

// Settings holds every gameplay tunable.
type Settings struct {
	Game       GameSettings       `yaml:"game"`
	Player     PlayerSettings     `yaml:"player"`
	Projectile ProjectileSettings `yaml:"projectile"`
	Meteorite  MeteoriteSettings  `yaml:"meteorite"`
}

// GameSettings describes the arena and the frame rate.
type GameSettings struct {
	Width              float64 `yaml:"width"`
	Height             float64 `yaml:"height"`
	FPS                int     `yaml:"fps"`
	ArenaMarginX       float64 `yaml:"arena_margin_x"` // fraction of width
	ArenaMarginY       float64 `yaml:"arena_margin_y"` // fraction of height
	ParallaxFactor     float64 `yaml:"parallax_factor"`
	ParallaxMaxOffset  float64 `yaml:"parallax_max_offset"`
	ExplosionFrames    int     `yaml:"explosion_frames"`
	ExplosionFrameStep int     `yaml:"explosion_frame_delay"`
	FlameFrames        int     `yaml:"flame_frames"`
	FlameFrameStep     int     `yaml:"flame_frame_delay"`
	RemoveDelayMS      int     `yaml:"remove_delay_ms"`
}

// PlayerSettings are the ship tunables.
type PlayerSettings struct {
	Scale             float64 `yaml:"scale"`
	Acceleration      float64 `yaml:"acceleration"`
	MaxSpeed          float64 `yaml:"max_speed"`
	Friction          float64 `yaml:"friction"`
	Health            float64 `yaml:"health"`
	RamDamage         float64 `yaml:"ram_damage"`
	RotationAccel     float64 `yaml:"rotation_acceleration"`
	MaxRotationSpeed  float64 `yaml:"max_rotation_speed"`
	RotationFriction  float64 `yaml:"rotation_friction"`
	MovingThreshold   float64 `yaml:"moving_threshold"`
	RotatingThreshold float64 `yaml:"rotating_threshold"`
	EngineFrames      int     `yaml:"engine_frames"`
	EngineFrameDelay  int     `yaml:"engine_frame_delay"`
	FallbackRadius    float64 `yaml:"fallback_radius"`
}

// ProjectileSettings are the weapon tunables.
type ProjectileSettings struct {
	Speed        float64 `yaml:"speed"`
	ReloadMS     int     `yaml:"reload_ms"`
	SpreadMargin float64 `yaml:"spread_margin"`
	Damage       float64 `yaml:"damage"`
	Radius       float64 `yaml:"radius"`
}

// MeteoriteSettings are the meteorite and spawner tunables.
type MeteoriteSettings struct {
	MinScale           float64 `yaml:"min_scale"`
	MaxScale           float64 `yaml:"max_scale"`
	MinSpeed           float64 `yaml:"min_speed"`
	MaxSpeed           float64 `yaml:"max_speed"`
	Health             float64 `yaml:"health"`
	CollisionDamage    float64 `yaml:"collision_damage"`
	ScorePerKill       int     `yaml:"score_per_kill"`
	SpawnIntervalMS    int     `yaml:"spawn_interval_ms"`
	SpawnMargin        float64 `yaml:"spawn_margin"`
	LaunchSpeed        float64 `yaml:"launch_speed"`
	TargetRadiusFactor float64 `yaml:"target_radius_factor"`
	FallbackRadius     float64 `yaml:"fallback_radius"`
	CullMargin         float64 `yaml:"cull_margin"`
}

// Default returns the stock tunables.
func Default() Settings {
	return Settings{
		Game: GameSettings{
			Width:              800,
			Height:             600,
			FPS:                60,
			ArenaMarginX:       0.035,
			ArenaMarginY:       0.06,
			ParallaxFactor:     0.15,
			ParallaxMaxOffset:  40,
			ExplosionFrames:    7,
			ExplosionFrameStep: 6,
			FlameFrames:        9,
			FlameFrameStep:     5,
			RemoveDelayMS:      120,
		},
		Player: PlayerSettings{
			Scale:             0.8,
			Acceleration:      0.2,
			MaxSpeed:          12,
			Friction:          0.97,
			Health:            100,
			RamDamage:         10,
			RotationAccel:     0.002,
			MaxRotationSpeed:  0.1,
			RotationFriction:  0.97,
			MovingThreshold:   0.3,
			RotatingThreshold: 0.011,
			EngineFrames:      4,
			EngineFrameDelay:  4,
			FallbackRadius:    20,
		},
		Projectile: ProjectileSettings{
			Speed:        25,
			ReloadMS:     100,
			SpreadMargin: 23.2,
			Damage:       5,
			Radius:       5,
		},
		Meteorite: MeteoriteSettings{
			MinScale:           0.3,
			MaxScale:           0.8,
			MinSpeed:           0.3,
			MaxSpeed:           2,
			Health:             100,
			CollisionDamage:    3,
			ScorePerKill:       5,
			SpawnIntervalMS:    2000,
			SpawnMargin:        50,
			LaunchSpeed:        3,
			TargetRadiusFactor: 0.9,
			FallbackRadius:     20,
			CullMargin:         500,
		},
	}
}

// Load reads a YAML file on top of the defaults. An empty path returns the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}

// Validate checks that every tunable is usable by the simulation.
func (s Settings) Validate() error {
	checks := []struct {
		ok   bool
		name string
	}{
		{s.Game.Width > 0 && s.Game.Height > 0, "game size"},
		{s.Game.FPS > 0, "game.fps"},
		{s.Game.ExplosionFrames > 0 && s.Game.ExplosionFrameStep > 0, "explosion animation"},
		{s.Game.FlameFrames > 0 && s.Game.FlameFrameStep > 0, "flame animation"},
		{s.Game.RemoveDelayMS >= 0, "game.remove_delay_ms"},
		{s.Player.Health > 0, "player.health"},
		{s.Player.MaxSpeed >= 0, "player.max_speed"},
		{s.Player.MaxRotationSpeed >= 0, "player.max_rotation_speed"},
		{inUnit(s.Player.Friction) && inUnit(s.Player.RotationFriction), "player friction"},
		{s.Player.EngineFrames > 0 && s.Player.EngineFrameDelay > 0, "engine animation"},
		{s.Projectile.Speed > 0, "projectile.speed"},
		{s.Projectile.ReloadMS >= 0, "projectile.reload_ms"},
		{s.Projectile.Radius >= 0, "projectile.radius"},
		{s.Meteorite.MinScale > 0 && s.Meteorite.MinScale <= s.Meteorite.MaxScale, "meteorite scale range"},
		{s.Meteorite.MinSpeed >= 0 && s.Meteorite.MinSpeed <= s.Meteorite.MaxSpeed, "meteorite speed range"},
		{s.Meteorite.Health > 0, "meteorite.health"},
		{s.Meteorite.ScorePerKill >= 0, "meteorite.score_per_kill"},
		{s.Meteorite.SpawnIntervalMS > 0, "meteorite.spawn_interval_ms"},
		{s.Meteorite.SpawnMargin >= 0, "meteorite.spawn_margin"},
		{s.Meteorite.FallbackRadius >= 0, "meteorite.fallback_radius"},
		{s.Meteorite.CullMargin >= 0, "meteorite.cull_margin"},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: %s", ErrInvalid, c.name)
		}
	}
	return nil
}

// Ticks converts a duration in milliseconds to a whole number of frames,
// never less than one.
func (s Settings) Ticks(ms int) int {
	fps := s.Game.FPS
	if fps <= 0 {
		fps = 60
	}
	n := int(math.Round(float64(ms) * float64(fps) / 1000))
	if n < 1 {
		return 1
	}
	return n
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
