package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/knowledge-island/internal/world"
)

func TestKPIScoring(t *testing.T) {
	g := newDefaultGame()
	a, b, c := world.UniA, world.UniB, world.UniC

	g.ThrowDice(quietRoll)
	grant(g, a, 50)
	do(t, g, ActionObtainArc, "L")
	assert.Equal(t, 32, g.KPI(a), "arc plus most-arcs bonus")
	for i, p := range []string{"LR", "LRR", "LRRL"} {
		do(t, g, ActionObtainArc, p)
		assert.Equal(t, 34+2*i, g.KPI(a))
	}
	do(t, g, ActionBuildCampus, "LR")
	assert.Equal(t, 48, g.KPI(a))
	do(t, g, ActionBuildCampus, "LRRL")
	assert.Equal(t, 58, g.KPI(a))
	assert.Equal(t, 4, g.Campuses(a))
	do(t, g, ActionBuildGO8, "LR")
	assert.Equal(t, 68, g.KPI(a))
	do(t, g, ActionBuildGO8, "LRRL")
	assert.Equal(t, 78, g.KPI(a))
	assert.Equal(t, 2, g.Campuses(a))
	assert.Equal(t, 2, g.GO8s(a))

	g.ThrowDice(quietRoll)
	grant(g, b, 50)
	for _, p := range []string{"RRLRL", "RRLR", "RRLL", "RRLLL"} {
		do(t, g, ActionObtainArc, p)
	}
	assert.Equal(t, 28, g.KPI(b), "tied on arcs, no bonus")
	do(t, g, ActionBuildCampus, "RRL")
	do(t, g, ActionBuildCampus, "RRLLL")
	assert.Equal(t, 48, g.KPI(b))
	do(t, g, ActionBuildGO8, "RRL")
	do(t, g, ActionBuildGO8, "RRLLL")
	assert.Equal(t, 68, g.KPI(b))

	do(t, g, ActionObtainArc, "RRLLR")
	assert.Equal(t, 80, g.KPI(b), "overtakes A on arcs")
	assert.Equal(t, 68, g.KPI(a))
	assert.Equal(t, b, g.MostARCs())

	g.ThrowDice(quietRoll)
	grant(g, c, 50)
	for _, p := range []string{"LRLRLR", "LRLRLRR", "LRLRLRRR", "LRLRLRRRL"} {
		do(t, g, ActionObtainArc, p)
	}
	assert.Equal(t, 28, g.KPI(c))
	do(t, g, ActionBuildCampus, "LRLRLRR")
	do(t, g, ActionBuildCampus, "LRLRLRRRL")
	do(t, g, ActionBuildGO8, "LRLRLRR")
	do(t, g, ActionBuildGO8, "LRLRLRRRL")
	assert.Equal(t, 68, g.KPI(c))
	do(t, g, ActionObtainArc, "LRLRLRRRR")
	do(t, g, ActionObtainArc, "LRLRLRRRLR")
	assert.Equal(t, 82, g.KPI(c))
	assert.Equal(t, 70, g.KPI(b))

	g.ThrowDice(quietRoll)
	for _, p := range []string{"R", "RR", "RL"} {
		do(t, g, ActionObtainArc, p)
	}
	assert.Equal(t, 84, g.KPI(a))
	assert.Equal(t, 72, g.KPI(c))
	assert.Equal(t, a, g.MostARCs())
}

func TestMostARCsTies(t *testing.T) {
	g := newDefaultGame()
	g.ThrowDice(quietRoll)
	grant(g, world.UniA, 10)
	do(t, g, ActionObtainArc, "L")
	assert.Equal(t, world.UniA, g.MostARCs())

	g.ThrowDice(quietRoll)
	grant(g, world.UniB, 10)
	do(t, g, ActionObtainArc, "RRLRLL")
	assert.Equal(t, world.UniA, g.MostARCs())

	g.ThrowDice(quietRoll)
	grant(g, world.UniC, 10)
	do(t, g, ActionObtainArc, "RRLRLLRLRLL")
	assert.Equal(t, world.UniA, g.MostARCs())
	do(t, g, ActionObtainArc, "RRLRLLRLRLLR")
	assert.Equal(t, world.UniC, g.MostARCs())

	g.ThrowDice(quietRoll)
	do(t, g, ActionObtainArc, "LR")
	assert.Equal(t, world.UniC, g.MostARCs())
	assert.Equal(t, 24, g.KPI(world.UniA))
	assert.Equal(t, 34, g.KPI(world.UniC))
}

func TestMostPublications(t *testing.T) {
	g := NewGameFromLayout(resourceLayout())
	g.ThrowDice(2)
	grant(g, world.UniA, 20)
	assert.Equal(t, world.NoOne, g.MostPublications())

	g.Apply(Action{Kind: ActionObtainPublication})
	assert.Equal(t, world.UniA, g.MostPublications())
	assert.Equal(t, InitialKPI+PrestigeBonus, g.KPI(world.UniA))

	g.ThrowDice(2)
	g.Apply(Action{Kind: ActionObtainPublication})
	assert.Equal(t, world.UniA, g.MostPublications(), "a tie does not transfer")

	g.ThrowDice(2)
	g.Apply(Action{Kind: ActionObtainPublication})
	assert.Equal(t, world.UniA, g.MostPublications())
	grant(g, world.UniC, 5)
	g.Apply(Action{Kind: ActionObtainPublication})
	assert.Equal(t, world.UniC, g.MostPublications())
	assert.Equal(t, InitialKPI, g.KPI(world.UniA))
	assert.Equal(t, InitialKPI+PrestigeBonus, g.KPI(world.UniC))
	assert.Equal(t, 2, g.Publications(world.UniC))
}

func TestPatents(t *testing.T) {
	g := newDefaultGame()
	g.ThrowDice(quietRoll)
	grant(g, world.UniA, 5)
	g.Apply(Action{Kind: ActionObtainIPPatent})
	g.Apply(Action{Kind: ActionObtainIPPatent})
	assert.Equal(t, 2, g.Patents(world.UniA))
	assert.Equal(t, InitialKPI+2*KPIPerPatent, g.KPI(world.UniA))
	assert.Equal(t, 4, g.Students(world.UniA, world.StudentMJ))

	g.ThrowDice(quietRoll)
	g.Apply(Action{Kind: ActionObtainIPPatent})
	assert.Equal(t, 1, g.Patents(world.UniB))
	assert.Equal(t, 2, g.Patents(world.UniA))
	assert.Zero(t, g.Patents(world.UniC))
}

func TestRetrain(t *testing.T) {
	g := NewGameFromLayout(resourceLayout())
	g.ThrowDice(2)
	p := g.player(world.UniA)
	p.Students = [world.NumDisciplines]int{0, 94, 94, 1, 1, 1}

	require.NoError(t, g.Do(Action{Kind: ActionRetrain, From: world.StudentBQN, To: world.StudentMJ}))
	assert.Equal(t, 91, g.Students(world.UniA, world.StudentBQN))
	assert.Equal(t, 2, g.Students(world.UniA, world.StudentMJ))

	require.NoError(t, g.Do(Action{Kind: ActionRetrain, From: world.StudentBPS, To: world.StudentMTV}))
	assert.Equal(t, 91, g.Students(world.UniA, world.StudentBPS))
	assert.Equal(t, 2, g.Students(world.UniA, world.StudentMTV))
}

func TestDoRejectsIllegal(t *testing.T) {
	g := newDefaultGame()
	err := g.Do(Action{Kind: ActionPass})
	assert.ErrorIs(t, err, ErrIllegalAction)

	g.ThrowDice(quietRoll)
	before := g.Players()
	err = g.Do(Action{Kind: ActionBuildCampus, Destination: path("L")})
	assert.ErrorIs(t, err, ErrIllegalAction)
	assert.Equal(t, before, g.Players())

	grant(g, world.UniA, 1)
	assert.ErrorIs(t, g.Do(Action{Kind: ActionStartSpinoff}), ErrUnresolvedSpinoff)
}

func TestSpinoff(t *testing.T) {
	g := newDefaultGame()
	g.ThrowDice(quietRoll)

	outcome, err := g.Spinoff(0)
	require.NoError(t, err)
	assert.Equal(t, ActionObtainIPPatent, outcome.Kind)
	assert.Equal(t, 1, g.Patents(world.UniA))

	_, err = g.Spinoff(0)
	assert.ErrorIs(t, err, ErrIllegalAction, "no students left")

	grant(g, world.UniA, 1)
	outcome, err = g.Spinoff(1)
	require.NoError(t, err)
	assert.Equal(t, ActionObtainPublication, outcome.Kind)
	assert.Equal(t, 1, g.Publications(world.UniA))
}

func TestResolveSpinoff(t *testing.T) {
	patents := 0
	for draw := 0; draw < 300; draw++ {
		if ResolveSpinoff(draw).Kind == ActionObtainIPPatent {
			patents++
		}
	}
	assert.Equal(t, 100, patents)
}

func TestApplyIgnoredBeforeFirstThrow(t *testing.T) {
	g := newDefaultGame()
	g.Apply(Action{Kind: ActionObtainIPPatent})
	assert.Zero(t, g.Patents(world.UniA))
}

func TestActionString(t *testing.T) {
	assert.Equal(t, `obtain arc at "LR"`, Action{Kind: ActionObtainArc, Destination: path("LR")}.String())
	assert.Equal(t, "retrain students MTV->BPS", Action{Kind: ActionRetrain, From: world.StudentMTV, To: world.StudentBPS}.String())
	assert.Equal(t, "pass", Action{}.String())
	assert.Equal(t, "action(42)", ActionKind(42).String())
}
