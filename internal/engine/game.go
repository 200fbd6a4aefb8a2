// Package engine provides the game state, action validation and execution,
// dice production and the match loop that drives automated players.
package engine

import (
	"fmt"

	"github.com/talgya/knowledge-island/internal/economy"
	"github.com/talgya/knowledge-island/internal/world"
)

// Scoring constants, in KPI points.
const (
	KPIPerCampus  = 10
	KPIPerGO8     = 20
	KPIPerArc     = 2
	KPIPerPatent  = 10
	PrestigeBonus = 10 // Most arcs, most publications

	WinningKPI = 150

	InitialCampuses = 2
	InitialKPI      = InitialCampuses * KPIPerCampus

	// TerraNullius is the turn number before the first dice throw.
	TerraNullius = -1
	// RedistributionRoll sends every volatile student to THD.
	RedistributionRoll = 7
)

// Starting campuses, two per university.
var startingCampuses = [...]struct {
	uni  world.Uni
	path string
}{
	{world.UniA, ""},
	{world.UniA, "RLRLRLRLRLL"},
	{world.UniB, "RRLRL"},
	{world.UniB, "LRLRLRRLRL"},
	{world.UniC, "LRLRL"},
	{world.UniC, "RRLRLLRLRL"},
}

// Retraining centres. Each spans the two coastal corners at the ends of
// one arc.
var retrainingCentres = [...]struct {
	discipline world.Discipline
	paths      [2]string
}{
	{world.StudentMTV, [2]string{"R", "RR"}},
	{world.StudentMMONEY, [2]string{"LR", "LRL"}},
	{world.StudentBPS, [2]string{"RRLRLLRLRLL", "RRLRLLRLRLLR"}},
	{world.StudentMJ, [2]string{"RRLRLLRLRLLRLRLL", "RRLRLLRLRLLRLRLLR"}},
	{world.StudentBQN, [2]string{"RRLRLLRLRLLRLRLLRLRLL", "RRLRLLRLRLLRLRLLRLRLLR"}},
}

// Player is one university's holdings and achievements.
type Player struct {
	Uni          world.Uni         `json:"uni"`
	Students     economy.Inventory `json:"students"`
	KPI          int               `json:"kpi"`
	ARCs         int               `json:"arcs"`
	Campuses     int               `json:"campuses"` // Basic campuses only
	GO8s         int               `json:"go8s"`
	Patents      int               `json:"patents"`
	Publications int               `json:"publications"`
}

// Game is the complete state of one match. It is not safe for concurrent
// use.
type Game struct {
	board   *world.Map
	players [world.NumUnis]Player
	turn    int

	mostARCs         Prestige
	mostPublications Prestige
}

// NewGame builds a game from region-indexed discipline and dice arrays,
// with the starting campuses and retraining centres in place.
func NewGame(disciplines [world.NumRegions]world.Discipline, dice [world.NumRegions]int) *Game {
	g := &Game{
		board: world.NewMap(disciplines, dice),
		turn:  TerraNullius,
	}
	for i := range g.players {
		g.players[i] = Player{
			Uni:      world.Uni(i + 1),
			Students: economy.StartingInventory,
			KPI:      InitialKPI,
			Campuses: InitialCampuses,
		}
	}
	for _, s := range startingCampuses {
		g.board.SetBuilding(world.ResolveCorner(world.MustParsePath(s.path)), world.CampusOf(s.uni))
	}
	for _, rc := range retrainingCentres {
		for _, p := range rc.paths {
			g.board.SetRetraining(world.ResolveCorner(world.MustParsePath(p)), rc.discipline)
		}
	}
	return g
}

// NewGameFromLayout is NewGame for a generated or default layout.
func NewGameFromLayout(l world.Layout) *Game {
	return NewGame(l.Disciplines, l.Dice)
}

func (g *Game) player(u world.Uni) *Player {
	if !u.Valid() {
		return nil
	}
	return &g.players[u-1]
}

// Board exposes the island for read-only queries.
func (g *Game) Board() *world.Map { return g.board }

// Player returns a copy of u's record. The zero Player is returned for an
// invalid id.
func (g *Game) Player(u world.Uni) Player {
	if p := g.player(u); p != nil {
		return *p
	}
	return Player{}
}

// Players returns copies of all three records in turn order.
func (g *Game) Players() []Player {
	out := make([]Player, 0, world.NumUnis)
	for _, p := range g.players {
		out = append(out, p)
	}
	return out
}

// KPI, ARCs, Campuses, GO8s, Patents and Publications return u's counters,
// zero for an invalid id.
func (g *Game) KPI(u world.Uni) int        { return g.Player(u).KPI }
func (g *Game) ARCs(u world.Uni) int         { return g.Player(u).ARCs }
func (g *Game) Campuses(u world.Uni) int     { return g.Player(u).Campuses }
func (g *Game) GO8s(u world.Uni) int         { return g.Player(u).GO8s }
func (g *Game) Patents(u world.Uni) int      { return g.Player(u).Patents }
func (g *Game) Publications(u world.Uni) int { return g.Player(u).Publications }

// Students returns how many students of discipline d u holds.
func (g *Game) Students(u world.Uni, d world.Discipline) int {
	return g.Player(u).Students.Get(d)
}

// Discipline returns the discipline of a region, DisciplineNone for an
// unknown region.
func (g *Game) Discipline(region int) world.Discipline {
	if h := g.board.Region(region); h != nil {
		return h.Discipline
	}
	return world.DisciplineNone
}

// DiceValue returns the dice trigger of a region, 0 for an unknown region.
func (g *Game) DiceValue(region int) int {
	if h := g.board.Region(region); h != nil {
		return h.Dice
	}
	return 0
}

// CampusAt returns the building on the corner p resolves to.
func (g *Game) CampusAt(p world.Path) world.Building {
	return g.board.Building(world.ResolveCorner(p))
}

// ArcAt returns the owner of the arc p resolves to.
func (g *Game) ArcAt(p world.Path) world.Uni {
	return g.board.ArcOwner(world.ResolveArc(p))
}

// Turn returns the turn number, TerraNullius before the first throw.
func (g *Game) Turn() int { return g.turn }

// WhoseTurn returns the active university, NoOne before the first throw.
func (g *Game) WhoseTurn() world.Uni {
	if g.turn < 0 {
		return world.NoOne
	}
	return world.Uni(g.turn%world.NumUnis + 1)
}

// MostARCs returns the holder of the most-arcs prestige bonus.
func (g *Game) MostARCs() world.Uni { return g.mostARCs.Holder }

// MostPublications returns the holder of the most-publications bonus.
func (g *Game) MostPublications() world.Uni { return g.mostPublications.Holder }

// Winner returns the first university at or above WinningKPI, or NoOne.
func (g *Game) Winner() world.Uni {
	for _, p := range g.players {
		if p.KPI >= WinningKPI {
			return p.Uni
		}
	}
	return world.NoOne
}

func (g *Game) String() string {
	return fmt.Sprintf("Game(turn=%d, active=%s, kpi=[%d %d %d])",
		g.turn, g.WhoseTurn(), g.players[0].KPI, g.players[1].KPI, g.players[2].KPI)
}
