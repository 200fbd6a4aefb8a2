// Dice-driven production: every hex whose trigger matches the roll pays
// the universities with campuses on its corners.
package engine

import (
	"log/slog"

	"github.com/talgya/knowledge-island/internal/economy"
	"github.com/talgya/knowledge-island/internal/world"
)

// Yield per building on a producing hex.
const (
	CampusYield = 1
	GO8Yield    = 2
)

// Production summarises one dice throw.
type Production struct {
	Turn   int                              `json:"turn"`
	Roll   int                              `json:"roll"`
	Gains  [world.NumUnis]economy.Inventory `json:"gains"`
	Banked [world.NumUnis]int               `json:"banked"` // Students moved to THD on a 7
}

// Gained returns how many students u received from the throw.
func (p Production) Gained(u world.Uni) int {
	if !u.Valid() {
		return 0
	}
	return p.Gains[u-1].Total()
}

// ThrowDice advances the turn and distributes production for roll. A
// RedistributionRoll then moves every university's MTV and MMONEY into
// THD.
func (g *Game) ThrowDice(roll int) Production {
	g.turn++
	prod := Production{Turn: g.turn, Roll: roll}

	for _, h := range g.board.Regions() {
		if h.Dice != roll {
			continue
		}
		for _, c := range h.Coord.Corners() {
			b := g.board.Building(c)
			p := g.player(b.Owner())
			if p == nil {
				continue
			}
			n := CampusYield
			if b.IsGO8() {
				n = GO8Yield
			}
			p.Students.Add(h.Discipline, n)
			prod.Gains[p.Uni-1].Add(h.Discipline, n)
		}
	}

	if roll == RedistributionRoll {
		for i := range g.players {
			prod.Banked[i] = g.players[i].Students.Bank()
		}
	}

	slog.Debug("dice thrown", "turn", g.turn, "roll", roll, "active", g.WhoseTurn(),
		"gained_a", prod.Gained(world.UniA), "gained_b", prod.Gained(world.UniB), "gained_c", prod.Gained(world.UniC))
	return prod
}
