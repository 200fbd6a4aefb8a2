package engine

import (
	"github.com/talgya/knowledge-island/internal/economy"
	"github.com/talgya/knowledge-island/internal/world"
)

// IsLegal reports whether the active university may perform a now. It
// never mutates the game.
func (g *Game) IsLegal(a Action) bool {
	u := g.WhoseTurn()
	p := g.player(u)
	if p == nil {
		return false // Terra nullius
	}

	switch a.Kind {
	case ActionPass:
		return true

	case ActionBuildCampus:
		if !world.Contained(a.Destination) || !p.Students.Covers(economy.CampusCost) {
			return false
		}
		c := world.ResolveCorner(a.Destination)
		return g.board.Building(c) == world.Vacant &&
			g.campusConnected(u, c) &&
			!g.campusTooClose(c)

	case ActionBuildGO8:
		if !world.Contained(a.Destination) || !p.Students.Covers(economy.GO8Cost) {
			return false
		}
		return g.board.Building(world.ResolveCorner(a.Destination)) == world.CampusOf(u)

	case ActionObtainArc:
		if len(a.Destination) == 0 || !world.Contained(a.Destination) || !p.Students.Covers(economy.ArcCost) {
			return false
		}
		arc := world.ResolveArc(a.Destination)
		return g.board.ArcOwner(arc) == world.NoOne && g.arcConnected(u, arc)

	case ActionStartSpinoff:
		return p.Students.Covers(economy.SpinoffCost)

	case ActionRetrain:
		if !a.From.Tradeable() || !a.To.Valid() {
			return false
		}
		return p.Students[a.From] >= g.ExchangeRate(u, a.From, a.To)
	}

	// Publications and patents only arrive through a spinoff.
	return false
}

// campusConnected reports whether one of u's arcs touches c.
func (g *Game) campusConnected(u world.Uni, c world.Corner) bool {
	for _, a := range c.Arcs() {
		if g.board.ArcOwner(a) == u {
			return true
		}
	}
	return false
}

// campusTooClose reports whether any corner one arc away from c holds a
// building.
func (g *Game) campusTooClose(c world.Corner) bool {
	for _, n := range c.Neighbors() {
		if g.board.Building(n) != world.Vacant {
			return true
		}
	}
	return false
}

// arcConnected reports whether an endpoint of arc holds one of u's
// buildings or touches another of u's arcs.
func (g *Game) arcConnected(u world.Uni, arc world.Arc) bool {
	for _, end := range arc.Corners() {
		if g.board.Building(end).Owner() == u {
			return true
		}
		for _, other := range end.Arcs() {
			if other != arc && g.board.ArcOwner(other) == u {
				return true
			}
		}
	}
	return false
}
