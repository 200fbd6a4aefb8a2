package engine

import (
	"github.com/talgya/knowledge-island/internal/economy"
	"github.com/talgya/knowledge-island/internal/world"
)

// ExchangeRate returns how many students of from u must give up for one
// student of to. The rate is discounted when u has a campus or GO8 on
// either corner of the retraining centre for from.
func (g *Game) ExchangeRate(u world.Uni, from, to world.Discipline) int {
	for _, c := range g.board.RetrainingCorners() {
		if g.board.Retraining(c) == from && g.board.Building(c).Owner() == u {
			return economy.DiscountedExchangeRate
		}
	}
	return economy.BaseExchangeRate
}
