package engine

import "github.com/talgya/knowledge-island/internal/world"

// Prestige tracks one contested bonus: who holds it and the count at which
// it was last won. Threshold never exceeds the true maximum of the metric
// because counts only grow and Offer is the only writer.
type Prestige struct {
	Holder    world.Uni `json:"holder"`
	Threshold int       `json:"threshold"`
}

// Offer records that u has reached count. A strictly greater count takes
// the bonus; ties leave it where it is. It returns the previous holder and
// whether the bonus changed hands.
func (p *Prestige) Offer(u world.Uni, count int) (prev world.Uni, moved bool) {
	if count <= p.Threshold {
		return p.Holder, false
	}
	prev = p.Holder
	p.Holder = u
	p.Threshold = count
	return prev, prev != u
}

// award offers count to p and moves PrestigeBonus KPI when the holder
// changes.
func (g *Game) award(p *Prestige, u world.Uni, count int) {
	prev, moved := p.Offer(u, count)
	if !moved {
		return
	}
	if loser := g.player(prev); loser != nil {
		loser.KPI -= PrestigeBonus
	}
	if winner := g.player(u); winner != nil {
		winner.KPI += PrestigeBonus
	}
}
