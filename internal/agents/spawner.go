// Bot spawning: assigns names, archetypes and seeds to the three
// universities of a match.
package agents

import (
	"math/rand"

	"github.com/talgya/knowledge-island/internal/engine"
	"github.com/talgya/knowledge-island/internal/world"
)

var uniNames = [world.NumUnis]string{"UNSW", "Sydney", "ANU"}

// Spawner creates bots for successive matches.
type Spawner struct {
	rng *rand.Rand

	// Archetypes to draw from; all known archetypes when empty.
	Archetypes []string
}

// NewSpawner creates a bot spawner with the given seed.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{rng: rand.New(rand.NewSource(seed + 300))}
}

// Spawn returns three bots, one per university, each with its own seed.
func (s *Spawner) Spawn() [world.NumUnis]*Bot {
	pool := s.Archetypes
	if len(pool) == 0 {
		pool = Archetypes
	}
	var bots [world.NumUnis]*Bot
	for i := range bots {
		arch := pool[s.rng.Intn(len(pool))]
		bots[i] = NewBot(uniNames[i], arch, s.rng.Int63())
	}
	return bots
}

// Drivers adapts bots to the engine's driver slots.
func Drivers(bots [world.NumUnis]*Bot) [world.NumUnis]engine.Driver {
	var out [world.NumUnis]engine.Driver
	for i, b := range bots {
		out[i] = b
	}
	return out
}
