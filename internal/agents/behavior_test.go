package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/knowledge-island/internal/economy"
	"github.com/talgya/knowledge-island/internal/engine"
	"github.com/talgya/knowledge-island/internal/entropy"
	"github.com/talgya/knowledge-island/internal/world"
)

func TestCandidatesCoverIsland(t *testing.T) {
	c := islandCandidates()
	assert.Len(t, c.corners, 54)
	assert.Len(t, c.arcs, 72)
	assert.Empty(t, c.corners[0], "root corner first")
}

func TestBotOpeningMoves(t *testing.T) {
	g := engine.NewGameFromLayout(world.DefaultLayout())
	g.ThrowDice(12)

	bot := NewBot("test", ArchRoadBuilder, 1)
	a := bot.Decide(g, world.UniA)
	require.Equal(t, engine.ActionObtainArc, a.Kind)
	assert.True(t, g.IsLegal(a))
}

func TestBotPassesWhenBroke(t *testing.T) {
	g := engine.NewGameFromLayout(world.DefaultLayout())
	g.ThrowDice(7) // Banks A's MTV and MMONEY

	bot := NewBot("test", ArchScholar, 1)
	for i := 0; i < 10; i++ {
		a := bot.Decide(g, world.UniA)
		if a.Kind == engine.ActionPass {
			return
		}
		require.NoError(t, g.Do(a))
	}
	t.Fatal("bot never passed")
}

func TestBotRetrainsTowardGoal(t *testing.T) {
	g := engine.NewGameFromLayout(world.DefaultLayout())
	// 61 throws of 11: A's hex pays MTV every time and the turn ends on A.
	for i := 0; i < 61; i++ {
		g.ThrowDice(11)
	}
	require.Equal(t, world.UniA, g.WhoseTurn())
	require.Equal(t, 62, g.Students(world.UniA, world.StudentMTV))

	bot := NewBot("test", ArchScholar, 3)
	retrained := false
	for i := 0; i < 20; i++ {
		a := bot.Decide(g, world.UniA)
		if a.Kind == engine.ActionPass {
			break
		}
		if a.Kind == engine.ActionStartSpinoff {
			_, err := g.Spinoff(1)
			require.NoError(t, err)
			continue
		}
		if a.Kind == engine.ActionRetrain {
			retrained = true
			assert.Equal(t, world.StudentMTV, a.From)
		}
		require.NoError(t, g.Do(a))
	}
	assert.True(t, retrained, "scholar never retrained")
	assert.Positive(t, g.Publications(world.UniA))
}

func TestShortfall(t *testing.T) {
	inv := economy.Inventory{world.StudentMJ: 1}
	got := Shortfall(inv, economy.GO8Cost)
	assert.Equal(t, []world.Discipline{world.StudentMMONEY, world.StudentMJ}, got)
	assert.Empty(t, Shortfall(economy.Inventory{0, 9, 9, 9, 9, 9}, economy.CampusCost))
}

func TestTemplateFallback(t *testing.T) {
	assert.Equal(t, archetypeTemplates[ArchExpansionist].SaveFor, Template("nobody").SaveFor)
	for _, name := range Archetypes {
		assert.NotEmpty(t, Template(name).Goals, name)
	}
}

func TestSpawnerDeterministic(t *testing.T) {
	a, b := NewSpawner(5).Spawn(), NewSpawner(5).Spawn()
	for i := range a {
		assert.Equal(t, a[i].Archetype, b[i].Archetype)
		assert.Equal(t, uniNames[i], a[i].Name)
	}

	s := NewSpawner(5)
	s.Archetypes = []string{ArchUpgrader}
	for _, bot := range s.Spawn() {
		assert.Equal(t, ArchUpgrader, bot.Archetype)
	}
}

// Bots only submit legal actions, so counters never go negative.
func TestBotMatchKeepsCountersNonNegative(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		g := engine.NewGameFromLayout(world.DefaultLayout())
		e := engine.NewEngine(g, entropy.NewDice(seed), Drivers(NewSpawner(seed).Spawn()))
		e.MaxTurns = 600
		e.OnAction = func(u world.Uni, a engine.Action) {
			for _, p := range g.Players() {
				for d, n := range p.Students {
					require.GreaterOrEqual(t, n, 0, "seed %d: %s %s after %s", seed, p.Uni, world.Discipline(d), a)
				}
			}
		}

		res, err := e.Run(context.Background())
		require.NoError(t, err)
		assert.Zero(t, res.Rejected, "seed %d", seed)
		assert.Positive(t, res.Actions, "seed %d", seed)
	}
}

func TestKnownArchetype(t *testing.T) {
	for _, a := range Archetypes {
		assert.True(t, KnownArchetype(a), a)
	}
	assert.False(t, KnownArchetype(""))
	assert.False(t, KnownArchetype("expansionist"))
}
