package loop

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/meteors/internal/input"
	"github.com/tomz197/meteors/internal/object"
	"github.com/tomz197/meteors/internal/vec"
)

func TestProjectileHitsOnlyFirstMeteorite(t *testing.T) {
	g, _ := newTestGame()
	a := rockAt(g, 100, 100)
	b := rockAt(g, 125, 100)
	shotAt(g, 112.5, 100, vec.Vector2{})

	ev := g.Step(idle())

	assert.Empty(t, g.Projectiles())
	assert.Equal(t, 95.0, a.Health())
	assert.Equal(t, 100.0, b.Health())
	assert.Equal(t, 1, ev.Hits)
	assert.Zero(t, g.Score())
}

func TestProjectileIgnoresDestroyedMeteorite(t *testing.T) {
	g, _ := newTestGame()
	m := rockAt(g, 100, 100)
	m.ApplyDamage(1000)
	shotAt(g, 100, 100, vec.Vector2{})

	g.Step(idle())
	assert.Len(t, g.Projectiles(), 1)
}

func TestOverlappingMeteoritesDestroyEachOther(t *testing.T) {
	g, _ := newTestGame()
	a := rockAt(g, 100, 100)
	b := rockAt(g, 110, 100)
	c := rockAt(g, 300, 100)

	ev := g.Step(idle())

	assert.True(t, a.Destroyed())
	assert.True(t, b.Destroyed())
	assert.Equal(t, 0.0, a.Health())
	assert.Equal(t, 0.0, b.Health())
	assert.Equal(t, 100.0, c.Health())
	assert.False(t, c.Destroyed())
	assert.Equal(t, 2, ev.Kills)
	assert.Zero(t, g.Score(), "meteorite collisions never score")
}

func TestChainOfOverlappingMeteoritesAllDestroyed(t *testing.T) {
	g, _ := newTestGame()
	a := rockAt(g, 100, 100)
	b := rockAt(g, 110, 100)
	c := rockAt(g, 105, 100)

	ev := g.Step(idle())

	for _, m := range []*object.Meteorite{a, b, c} {
		assert.True(t, m.Destroyed())
		assert.Equal(t, 0.0, m.Health())
	}
	assert.Equal(t, 3, ev.Kills)
}

func TestMeteoriteShotDownStillDestroysNeighbour(t *testing.T) {
	g, _ := newTestGame()
	a := rockAt(g, 100, 100)
	a.ApplyDamage(96)
	b := rockAt(g, 115, 100)
	shotAt(g, 95, 100, vec.Vector2{})

	ev := g.Step(idle())

	assert.True(t, a.Destroyed())
	assert.True(t, b.Destroyed())
	assert.Equal(t, 0.0, b.Health())
	assert.Equal(t, 2, ev.Kills)
	assert.Equal(t, g.settings.Meteorite.ScorePerKill, g.Score(), "only the shot scores")
}

func TestPlayerMeteoriteTradeDamage(t *testing.T) {
	g, _ := newTestGame()
	m := rockAt(g, 400, 300)

	ev := g.Step(idle())

	assert.True(t, ev.PlayerHit)
	assert.Equal(t, 97.0, g.Health())
	assert.Equal(t, 90.0, m.Health())
	assert.Zero(t, g.Score())
}

func TestKillCreditsScore(t *testing.T) {
	g, _ := newTestGame()
	m := rockAt(g, 100, 100)
	m.ApplyDamage(96)
	shotAt(g, 100, 100, vec.Vector2{})

	ev := g.Step(idle())

	assert.True(t, m.Destroyed())
	assert.Equal(t, 5, g.Score())
	assert.Equal(t, 5, ev.ScoreGained)
	assert.Equal(t, 1, ev.Kills)
}

func TestNoCreditOnceDefeated(t *testing.T) {
	g, _ := newTestGame()
	g.Player().ApplyDamage(1000)
	m := rockAt(g, 100, 100)
	m.ApplyDamage(96)
	shotAt(g, 100, 100, vec.Vector2{})

	ev := g.Step(idle())

	assert.True(t, m.Destroyed())
	assert.Equal(t, 1, ev.Kills)
	assert.Zero(t, g.Score())
}

func TestDefeatedPlayerStillRamsWithoutScoring(t *testing.T) {
	g, _ := newTestGame()
	g.Player().ApplyDamage(1000)
	m := rockAt(g, 400, 300)

	ev := g.Step(idle())

	assert.True(t, ev.PlayerHit)
	assert.False(t, ev.PlayerDefeated, "defeat is reported once")
	assert.Equal(t, 0.0, g.Health())
	assert.Equal(t, 90.0, m.Health())

	m.ApplyDamage(85)
	ev = g.Step(idle())
	assert.True(t, m.Destroyed())
	assert.Equal(t, 1, ev.Kills)
	assert.Zero(t, g.Score())
}

func TestRamKillCredits(t *testing.T) {
	g, _ := newTestGame()
	m := rockAt(g, 400, 300)
	m.ApplyDamage(95)

	g.Step(idle())

	assert.True(t, m.Destroyed())
	assert.Equal(t, 97.0, g.Health())
	assert.Equal(t, 5, g.Score())
}

func TestRamKillAfterFatalHitDoesNotCredit(t *testing.T) {
	g, _ := newTestGame()
	g.Player().ApplyDamage(97)
	m := rockAt(g, 400, 300)
	m.ApplyDamage(95)

	ev := g.Step(idle())

	assert.True(t, ev.PlayerDefeated)
	assert.True(t, g.Defeated())
	assert.True(t, m.Destroyed())
	assert.Zero(t, g.Score())
}

func TestShootingFiresSpreadPair(t *testing.T) {
	g, _ := newTestGame()

	ev := g.Step(press(input.Fire))

	require.Len(t, g.Projectiles(), 2)
	assert.Equal(t, 2, ev.Shots)
	ys := []float64{g.Projectiles()[0].Position().Y, g.Projectiles()[1].Position().Y}
	slices.Sort(ys)
	assert.InDelta(t, 300-23.2, ys[0], 1e-9)
	assert.InDelta(t, 300+23.2, ys[1], 1e-9)
	for _, p := range g.Projectiles() {
		assert.InDelta(t, 400, p.Position().X, 1e-9)
		assert.Equal(t, vec.New(25, 0), p.Velocity())
	}
}

func TestShootingRespectsReload(t *testing.T) {
	g, clk := newTestGame()
	g.Step(press(input.Fire))

	clk.advance(50 * time.Millisecond)
	ev := g.Step(press(input.Fire))
	assert.Zero(t, ev.Shots)
	assert.Len(t, g.Projectiles(), 2)

	clk.advance(50 * time.Millisecond)
	ev = g.Step(press(input.Fire))
	assert.Equal(t, 2, ev.Shots)
	assert.Len(t, g.Projectiles(), 4)
}

func TestHoldingFireDoesNotRepeat(t *testing.T) {
	g, clk := newTestGame()
	g.Step(press(input.Fire))
	for i := 0; i < 10; i++ {
		clk.advance(time.Second)
		assert.Zero(t, g.Step(hold(input.Fire)).Shots)
	}
}

func TestDefeatedPlayerCannotShoot(t *testing.T) {
	g, _ := newTestGame()
	g.Player().ApplyDamage(1000)
	ev := g.Step(press(input.Fire, input.Thrust))
	assert.Zero(t, ev.Shots)
	assert.False(t, ev.Thrusting)
	assert.Empty(t, g.Projectiles())
}

func TestProjectilesCulledOutsideArena(t *testing.T) {
	g, _ := newTestGame()
	shotAt(g, 790, 300, vec.New(25, 0))
	keep := shotAt(g, 100, 100, vec.Vector2{})

	g.Step(idle())

	require.Len(t, g.Projectiles(), 1)
	assert.Same(t, keep, g.Projectiles()[0])
}

func TestMeteoritesCulledPastMargin(t *testing.T) {
	g, _ := newTestGame()
	near := object.NewMeteorite(g.settings, object.Sprites{}, vec.New(-400, 300), vec.New(-1, 0), vec.Vector2{}, 0.5, 1)
	far := object.NewMeteorite(g.settings, object.Sprites{}, vec.New(-500, 300), vec.New(-1, 0), vec.Vector2{}, 0.5, 1)
	g.AddMeteorite(near)
	g.AddMeteorite(far)

	g.Step(idle())

	require.Len(t, g.Meteorites(), 1)
	assert.Same(t, near, g.Meteorites()[0])
}

func TestDestroyedMeteoriteStaysUntilReady(t *testing.T) {
	g, _ := newTestGame()
	m := rockAt(g, 100, 100)
	m.ApplyDamage(1000)

	s := g.settings
	steps := (s.Game.ExplosionFrames-1)*s.Game.ExplosionFrameStep + s.Ticks(s.Game.RemoveDelayMS)
	for i := 0; i < steps-1; i++ {
		g.Step(idle())
		require.Len(t, g.Meteorites(), 1, "step %d", i)
	}
	g.Step(idle())
	assert.Empty(t, g.Meteorites())
}

func TestSpawnerFeedsTheWorld(t *testing.T) {
	g, _ := newTestGame()
	interval := g.settings.Ticks(g.settings.Meteorite.SpawnIntervalMS)

	for i := 0; i < interval; i++ {
		g.Step(idle())
	}
	assert.Empty(t, g.Meteorites(), "spawner starts stopped")

	g.StartSpawning()
	for i := 0; i < interval-1; i++ {
		g.Step(idle())
	}
	assert.Empty(t, g.Meteorites())
	g.Step(idle())
	require.Len(t, g.Meteorites(), 1)

	g.StopSpawning()
	for i := 0; i < interval; i++ {
		g.Step(idle())
	}
	assert.Len(t, g.Meteorites(), 1, "stopping keeps meteorites in flight")
}

func TestRotationStaysBounded(t *testing.T) {
	g, _ := newTestGame()
	limit := g.settings.Player.MaxRotationSpeed
	for i := 0; i < 300; i++ {
		g.Step(hold(input.RotateRight))
		require.LessOrEqual(t, math.Abs(g.Player().RotationalVelocity()), limit)
	}
	for i := 0; i < 300; i++ {
		g.Step(hold(input.RotateLeft))
		require.LessOrEqual(t, math.Abs(g.Player().RotationalVelocity()), limit)
	}
}

func TestRotateRightWinsWhenBothHeld(t *testing.T) {
	g, _ := newTestGame()
	g.Step(hold(input.RotateLeft, input.RotateRight))
	assert.InDelta(t, g.settings.Player.RotationAccel, g.Player().RotationalVelocity(), 1e-12)
}

func TestThrustMovesShipAndBackground(t *testing.T) {
	g, _ := newTestGame()
	ev := g.Step(hold(input.Thrust))
	assert.True(t, ev.Thrusting)
	assert.Greater(t, g.Player().Velocity().X, 0.0)

	g.Step(hold(input.Thrust))
	assert.Less(t, g.Background().Offset().X, 0.0)
	assert.Greater(t, g.Player().Position().X, 400.0)
}

func TestScoreOnlyGrowsByKillCredit(t *testing.T) {
	g, clk := newTestGame()
	g.StartSpawning()
	per := g.settings.Meteorite.ScorePerKill

	prev := 0
	for i := 0; i < 3000 && !g.Over(); i++ {
		clk.advance(16 * time.Millisecond)
		var k *keys
		if i%8 == 0 {
			k = press(input.Fire, input.RotateRight)
		} else {
			k = hold(input.RotateRight)
		}
		ev := g.Step(k)
		require.GreaterOrEqual(t, g.Score(), prev)
		require.Equal(t, prev+ev.ScoreGained, g.Score())
		require.Zero(t, ev.ScoreGained%per)
		prev = g.Score()
	}
}
