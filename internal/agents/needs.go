// Goals and shortfalls: what a bot is saving up for and
// which students it still lacks.
package agents

import (
	"github.com/talgya/knowledge-island/internal/economy"
	"github.com/talgya/knowledge-island/internal/engine"
	"github.com/talgya/knowledge-island/internal/world"
)

// Goal is something a bot spends students on.
type Goal uint8

const (
	GoalGO8     Goal = iota
	GoalCampus       // Needs an arc leading to a free corner
	GoalArc          // Extends the network, contests most-arcs
	GoalSpinoff      // Patents and publications
)

var goalNames = [...]string{"GO8", "campus", "arc", "spinoff"}

func (g Goal) String() string {
	if int(g) < len(goalNames) {
		return goalNames[g]
	}
	return "unknown"
}

// Cost returns the students the goal consumes.
func (g Goal) Cost() economy.Cost {
	switch g {
	case GoalGO8:
		return economy.GO8Cost
	case GoalCampus:
		return economy.CampusCost
	case GoalArc:
		return economy.ArcCost
	}
	return economy.SpinoffCost
}

// Shortfall returns the disciplines inv lacks for c, most-missing first.
func Shortfall(inv economy.Inventory, c economy.Cost) []world.Discipline {
	var out []world.Discipline
	for missing := 3; missing >= 1; missing-- {
		for d := range c {
			if c[d]-inv[d] == missing {
				out = append(out, world.Discipline(d))
			}
		}
	}
	return out
}

// surplus returns a tradeable discipline u can retrain away without
// dipping below reserve, preferring the one with the most spare students.
func surplus(g *engine.Game, u world.Uni, reserve economy.Cost, to world.Discipline) (world.Discipline, bool) {
	inv := g.Player(u).Students
	best, bestSpare := world.DisciplineNone, 0
	for d := world.StudentBPS; d <= world.StudentMMONEY; d++ {
		if d == to {
			continue
		}
		spare := inv[d] - reserve[d] - g.ExchangeRate(u, d, to)
		if spare >= 0 && (best == world.DisciplineNone || spare > bestSpare) {
			best, bestSpare = d, spare
		}
	}
	return best, best != world.DisciplineNone
}
