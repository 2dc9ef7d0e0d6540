package loop

import (
	"math/rand/v2"
	"time"

	"github.com/tomz197/meteors/internal/config"
	"github.com/tomz197/meteors/internal/draw"
	"github.com/tomz197/meteors/internal/input"
	"github.com/tomz197/meteors/internal/object"
)

// Debris burst per destroyed meteorite.
const (
	debrisCount = 10
	debrisSpeed = 4.0
	debrisLife  = 30
)

// Events reports what happened during one Step.
type Events struct {
	Shots          int  // projectiles fired
	Hits           int  // projectiles that struck a meteorite
	Kills          int  // meteorites destroyed by any cause
	ScoreGained    int  // score credited this step
	PlayerHit      bool // the player took collision damage
	PlayerDefeated bool // the player's health reached zero this step
	Thrusting      bool // the engine is firing
}

// GameOptions configures a Game. Zero fields use defaults.
type GameOptions struct {
	Rand object.Rand
	Now  func() time.Time
}

// Game is one round of play. It exclusively owns the projectile and
// meteorite collections; entities never reference them.
type Game struct {
	settings config.Settings
	sprites  object.Sprites
	rng      object.Rand
	now      func() time.Time

	player      *object.Player
	background  *object.Background
	spawner     *object.Spawner
	projectiles []*object.Projectile
	meteorites  []*object.Meteorite
	live        []*object.Meteorite // meteorites alive when collisions began
	debris      []*object.Debris

	score    int
	reload   time.Duration
	lastShot time.Time
	fired    bool

	events Events
}

// NewGame creates a round with the player at the arena center and the
// spawner stopped.
func NewGame(s config.Settings, sprites object.Sprites, opts GameOptions) *Game {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Game{
		settings:   s,
		sprites:    sprites,
		rng:        rng,
		now:        now,
		player:     object.NewPlayer(s, sprites),
		background: object.NewBackground(s, sprites),
		spawner:    object.NewSpawner(s, sprites, rng),
		reload:     time.Duration(s.Projectile.ReloadMS) * time.Millisecond,
	}
}

// Step advances the round by one frame: spawn, background, projectiles,
// player, meteorites, input, then collisions.
func (g *Game) Step(controls input.Controls) Events {
	g.events = Events{}

	if m := g.spawner.Tick(); m != nil {
		g.meteorites = append(g.meteorites, m)
	}
	g.background.Follow(g.player.Velocity())
	g.updateProjectiles()
	if !g.player.ReadyToRemove() {
		g.player.Update()
	}
	g.updateMeteorites()
	g.updateDebris()

	g.handleMovement(controls)
	g.handleRotation(controls)
	g.handleShooting(controls)

	g.snapshotLive()
	g.checkProjectileMeteorite()
	g.checkMeteoriteMeteorite()
	g.checkPlayerMeteorite()

	return g.events
}

// Draw renders the world back to front.
func (g *Game) Draw(s draw.Surface) {
	g.background.Draw(s)
	drawAll(s, g.debris)
	drawAll(s, g.meteorites)
	drawAll(s, g.projectiles)
	if !g.player.ReadyToRemove() {
		g.player.Draw(s)
	}
}

func drawAll[E object.Entity](s draw.Surface, es []E) {
	for _, e := range es {
		e.Draw(s)
	}
}

// StartSpawning starts or resumes meteorite spawning.
func (g *Game) StartSpawning() { g.spawner.Start() }

// StopSpawning pauses spawning. Meteorites already in flight are untouched.
func (g *Game) StopSpawning() { g.spawner.Stop() }

func (g *Game) Score() int                        { return g.score }
func (g *Game) Health() float64                   { return g.player.Health() }
func (g *Game) MaxHealth() float64                { return g.player.MaxHealth() }
func (g *Game) Defeated() bool                    { return g.player.Defeated() }
func (g *Game) Over() bool                        { return g.player.ReadyToRemove() }
func (g *Game) Player() *object.Player            { return g.player }
func (g *Game) Background() *object.Background    { return g.background }
func (g *Game) Projectiles() []*object.Projectile { return g.projectiles }
func (g *Game) Meteorites() []*object.Meteorite   { return g.meteorites }

// AddMeteorite places a meteorite in the world, bypassing the spawner.
func (g *Game) AddMeteorite(m *object.Meteorite) {
	g.meteorites = append(g.meteorites, m)
}

// AddProjectile places a projectile in the world.
func (g *Game) AddProjectile(p *object.Projectile) {
	g.projectiles = append(g.projectiles, p)
}

// Release returns pooled debris. The game must not be used afterwards.
func (g *Game) Release() {
	for _, d := range g.debris {
		d.Release()
	}
	g.debris = nil
}

func (g *Game) credit() {
	if g.player.Defeated() {
		return
	}
	gain := g.settings.Meteorite.ScorePerKill
	g.score += gain
	g.events.ScoreGained += gain
}

func (g *Game) onKill(m *object.Meteorite) {
	g.events.Kills++
	g.debris = object.SpawnDebris(g.debris, m.Position(), debrisCount, debrisSpeed, debrisLife, g.rng)
}
