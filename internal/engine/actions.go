package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/knowledge-island/internal/economy"
	"github.com/talgya/knowledge-island/internal/world"
)

var (
	ErrIllegalAction     = errors.New("illegal action")
	ErrUnresolvedSpinoff = errors.New("spinoff must be resolved before it is applied")
)

// Action is one request from the active university.
type Action struct {
	Kind        ActionKind       `json:"kind"`
	Destination world.Path       `json:"destination,omitempty"` // Campus, GO8 and arc builds
	From        world.Discipline `json:"from,omitempty"`        // Retrain only
	To          world.Discipline `json:"to,omitempty"`          // Retrain only
}

// ActionKind enumerates the actions a university can request. The
// numbering matches the action codes used by existing fixtures.
type ActionKind uint8

const (
	ActionPass              ActionKind = iota
	ActionBuildCampus                  // Campus on a vacant corner
	ActionBuildGO8                     // Upgrade one of the actor's campuses
	ActionObtainArc                    // Arc on a vacant edge
	ActionStartSpinoff                 // Gamble that resolves to one of the next two
	ActionObtainPublication            // Only as a spinoff outcome
	ActionObtainIPPatent               // Only as a spinoff outcome
	ActionRetrain                      // Exchange students at the current rate
)

var actionNames = [...]string{
	ActionPass:              "pass",
	ActionBuildCampus:       "build campus",
	ActionBuildGO8:          "build GO8",
	ActionObtainArc:         "obtain arc",
	ActionStartSpinoff:      "start spinoff",
	ActionObtainPublication: "obtain publication",
	ActionObtainIPPatent:    "obtain IP patent",
	ActionRetrain:           "retrain students",
}

func (k ActionKind) String() string {
	if int(k) < len(actionNames) {
		return actionNames[k]
	}
	return fmt.Sprintf("action(%d)", k)
}

func (a Action) String() string {
	switch a.Kind {
	case ActionBuildCampus, ActionBuildGO8, ActionObtainArc:
		return fmt.Sprintf("%s at %q", a.Kind, a.Destination)
	case ActionRetrain:
		return fmt.Sprintf("%s %s->%s", a.Kind, a.From, a.To)
	}
	return a.Kind.String()
}

// PatentOdds is the one-in-n chance that a spinoff becomes a patent.
const PatentOdds = 3

// ResolveSpinoff turns a spinoff into its outcome. draw is any
// non-negative random integer; one draw in PatentOdds yields a patent.
func ResolveSpinoff(draw int) Action {
	if draw%PatentOdds == 0 {
		return Action{Kind: ActionObtainIPPatent}
	}
	return Action{Kind: ActionObtainPublication}
}

// Apply performs a for the active university. It trusts its input: the
// caller has already checked IsLegal, or is deliberately granting a
// publication or patent. Apply does nothing before the first throw and
// for an unresolved spinoff.
func (g *Game) Apply(a Action) {
	u := g.WhoseTurn()
	p := g.player(u)
	if p == nil {
		return
	}

	switch a.Kind {
	case ActionBuildCampus:
		g.board.SetBuilding(world.ResolveCorner(a.Destination), world.CampusOf(u))
		p.Students.Spend(economy.CampusCost)
		p.Campuses++
		p.KPI += KPIPerCampus

	case ActionBuildGO8:
		g.board.SetBuilding(world.ResolveCorner(a.Destination), world.GO8Of(u))
		p.Students.Spend(economy.GO8Cost)
		p.Campuses--
		p.GO8s++
		p.KPI += KPIPerGO8 - KPIPerCampus

	case ActionObtainArc:
		g.board.SetArc(world.ResolveArc(a.Destination), u)
		p.Students.Spend(economy.ArcCost)
		p.ARCs++
		p.KPI += KPIPerArc
		g.award(&g.mostARCs, u, p.ARCs)

	case ActionObtainPublication:
		p.Students.Spend(economy.SpinoffCost)
		p.Publications++
		g.award(&g.mostPublications, u, p.Publications)

	case ActionObtainIPPatent:
		p.Students.Spend(economy.SpinoffCost)
		p.Patents++
		p.KPI += KPIPerPatent

	case ActionRetrain:
		rate := g.ExchangeRate(u, a.From, a.To)
		p.Students[a.From] -= rate
		p.Students[a.To]++

	case ActionPass, ActionStartSpinoff:
		return
	}

	slog.Debug("action applied", "turn", g.turn, "uni", u, "action", a, "kpi", p.KPI)
}

// Do validates a and applies it. A spinoff is rejected with
// ErrUnresolvedSpinoff; use Spinoff instead.
func (g *Game) Do(a Action) error {
	if !g.IsLegal(a) {
		return fmt.Errorf("%s by %s on turn %d: %w", a, g.WhoseTurn(), g.turn, ErrIllegalAction)
	}
	if a.Kind == ActionStartSpinoff {
		return ErrUnresolvedSpinoff
	}
	g.Apply(a)
	return nil
}

// Spinoff validates a spinoff for the active university, resolves it with
// draw and applies the outcome, which is returned.
func (g *Game) Spinoff(draw int) (Action, error) {
	if !g.IsLegal(Action{Kind: ActionStartSpinoff}) {
		return Action{}, fmt.Errorf("spinoff by %s on turn %d: %w", g.WhoseTurn(), g.turn, ErrIllegalAction)
	}
	outcome := ResolveSpinoff(draw)
	g.Apply(outcome)
	return outcome, nil
}
