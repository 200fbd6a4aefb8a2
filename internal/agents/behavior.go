// Package agents provides rule-based drivers for automated matches.
// Every action, a bot walks its archetype's goals in order and takes the
// first legal move; when nothing is affordable it retrains toward the
// goal it is saving for, and otherwise passes.
package agents

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/talgya/knowledge-island/internal/engine"
	"github.com/talgya/knowledge-island/internal/world"
)

// candidates holds a contained path to every corner and arc, sorted so
// that bots iterate them in a reproducible order.
type candidates struct {
	corners []world.Path
	arcs    []world.Path
}

var islandCandidates = sync.OnceValue(func() candidates {
	idx := world.IndexSites()
	var c candidates
	for _, p := range idx.Corners {
		c.corners = append(c.corners, p)
	}
	for _, p := range idx.Arcs {
		c.arcs = append(c.arcs, p)
	}
	sortPaths(c.corners)
	sortPaths(c.arcs)
	return c
})

// Sites returns a contained path to every corner and arc of the island,
// shortest first. The slices are shared and must not be modified.
func Sites() (corners, arcs []world.Path) {
	c := islandCandidates()
	return c.corners, c.arcs
}

func sortPaths(ps []world.Path) {
	sort.Slice(ps, func(i, j int) bool {
		if len(ps[i]) != len(ps[j]) {
			return len(ps[i]) < len(ps[j])
		}
		return ps[i].String() < ps[j].String()
	})
}

// Bot is an automated university. It implements engine.Driver.
type Bot struct {
	Name      string
	Archetype string

	tmpl  BehaviorTemplate
	rng   *rand.Rand
	sites candidates

	turn         int // Turn the counters below belong to
	arcsThisTurn int
}

// NewBot creates a bot with the given archetype and seed.
func NewBot(name, archetype string, seed int64) *Bot {
	return &Bot{
		Name:      name,
		Archetype: archetype,
		tmpl:      Template(archetype),
		rng:       rand.New(rand.NewSource(seed)),
		sites:     islandCandidates(),
		turn:      engine.TerraNullius,
	}
}

// Decide returns the bot's next action for u.
func (b *Bot) Decide(g *engine.Game, u world.Uni) engine.Action {
	if g.Turn() != b.turn {
		b.turn = g.Turn()
		b.arcsThisTurn = 0
	}

	for _, goal := range b.tmpl.Goals {
		if a, ok := b.pursue(g, goal); ok {
			if goal == GoalArc {
				b.arcsThisTurn++
			}
			return a
		}
	}
	if a, ok := b.retrain(g, u); ok {
		return a
	}
	return engine.Action{Kind: engine.ActionPass}
}

// pursue returns a legal action advancing goal, if there is one.
func (b *Bot) pursue(g *engine.Game, goal Goal) (engine.Action, bool) {
	switch goal {
	case GoalGO8:
		return b.firstLegal(g, engine.ActionBuildGO8, b.sites.corners)
	case GoalCampus:
		return b.firstLegal(g, engine.ActionBuildCampus, b.sites.corners)
	case GoalArc:
		if b.arcsThisTurn >= b.tmpl.ArcBudget {
			return engine.Action{}, false
		}
		return b.bestArc(g)
	case GoalSpinoff:
		a := engine.Action{Kind: engine.ActionStartSpinoff}
		return a, g.IsLegal(a)
	}
	return engine.Action{}, false
}

// firstLegal scans paths from a random offset and returns the first legal
// build of kind.
func (b *Bot) firstLegal(g *engine.Game, kind engine.ActionKind, paths []world.Path) (engine.Action, bool) {
	if len(paths) == 0 {
		return engine.Action{}, false
	}
	start := b.rng.Intn(len(paths))
	for i := range paths {
		a := engine.Action{Kind: kind, Destination: paths[(start+i)%len(paths)]}
		if g.IsLegal(a) {
			return a, true
		}
	}
	return engine.Action{}, false
}

// bestArc picks a legal arc, preferring arcs that open a corner where a
// campus could later be built. Ties are broken at random.
func (b *Bot) bestArc(g *engine.Game) (engine.Action, bool) {
	var best []engine.Action
	bestScore := -1
	for _, p := range b.sites.arcs {
		a := engine.Action{Kind: engine.ActionObtainArc, Destination: p}
		if !g.IsLegal(a) {
			continue
		}
		score := 0
		for _, end := range world.ResolveArc(p).Corners() {
			if campusSite(g.Board(), end) {
				score++
			}
		}
		switch {
		case score > bestScore:
			best, bestScore = []engine.Action{a}, score
		case score == bestScore:
			best = append(best, a)
		}
	}
	if len(best) == 0 {
		return engine.Action{}, false
	}
	return best[b.rng.Intn(len(best))], true
}

// campusSite reports whether c is vacant, on the island and clear of
// other buildings.
func campusSite(m *world.Map, c world.Corner) bool {
	if !c.Inside() || m.Building(c) != world.Vacant {
		return false
	}
	for _, n := range c.Neighbors() {
		if m.Building(n) != world.Vacant {
			return false
		}
	}
	return true
}

// retrain exchanges spare students for one the saved-for goal lacks.
func (b *Bot) retrain(g *engine.Game, u world.Uni) (engine.Action, bool) {
	cost := b.tmpl.SaveFor.Cost()
	for _, need := range Shortfall(g.Player(u).Students, cost) {
		from, ok := surplus(g, u, cost, need)
		if !ok {
			continue
		}
		a := engine.Action{Kind: engine.ActionRetrain, From: from, To: need}
		if g.IsLegal(a) {
			return a, true
		}
	}
	return engine.Action{}, false
}
