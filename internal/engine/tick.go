// Match loop: throws the dice, hands the turn to the active university's
// driver and stops at a winner or the turn limit.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/knowledge-island/internal/world"
)

// Match limits.
const (
	DefaultMaxTurns          = 3000 // 1000 rounds
	DefaultMaxActionsPerTurn = 40
)

// Driver chooses actions for one university. Returning ActionPass ends
// the turn.
type Driver interface {
	Decide(g *Game, u world.Uni) Action
}

// Dice is the randomness a match consumes.
type Dice interface {
	Roll() int      // Sum of two dice, 2..12
	Intn(n int) int // Spinoff draws
}

// Result describes a finished match.
type Result struct {
	Winner   world.Uni `json:"winner"`
	Turns    int       `json:"turns"`   // Dice throws
	Actions  int       `json:"actions"` // Applied actions, passes excluded
	Rejected int       `json:"rejected"`
	TimedOut bool      `json:"timed_out"`
	Players  []Player  `json:"players"`
}

// Engine drives one match forward.
type Engine struct {
	Game    *Game
	Dice    Dice
	Drivers [world.NumUnis]Driver

	MaxTurns          int
	MaxActionsPerTurn int

	// Callbacks, all optional.
	OnThrow  func(p Production)          // After every dice throw
	OnAction func(u world.Uni, a Action) // After every applied action
	OnEnd    func(r Result)              // Once, when Run returns a result
}

// NewEngine creates a match engine with default limits.
func NewEngine(g *Game, dice Dice, drivers [world.NumUnis]Driver) *Engine {
	return &Engine{
		Game:              g,
		Dice:              dice,
		Drivers:           drivers,
		MaxTurns:          DefaultMaxTurns,
		MaxActionsPerTurn: DefaultMaxActionsPerTurn,
	}
}

// Run plays the match until a university reaches WinningKPI, the turn
// limit is hit or ctx is cancelled.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	for i, d := range e.Drivers {
		if d == nil {
			return Result{}, fmt.Errorf("run match: no driver for %s", world.Uni(i+1))
		}
	}

	var res Result
	slog.Debug("match started", "max_turns", e.MaxTurns)

	for res.Winner == world.NoOne {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("run match at turn %d: %w", e.Game.Turn(), err)
		}
		if res.Turns >= e.MaxTurns {
			res.TimedOut = true
			break
		}
		e.step(&res)
	}

	res.Players = e.Game.Players()
	slog.Debug("match finished", "winner", res.Winner, "turns", res.Turns, "actions", res.Actions, "timed_out", res.TimedOut)
	if e.OnEnd != nil {
		e.OnEnd(res)
	}
	return res, nil
}

// step plays one turn: a dice throw followed by the active driver's
// actions.
func (e *Engine) step(res *Result) {
	prod := e.Game.ThrowDice(e.Dice.Roll())
	res.Turns++
	if e.OnThrow != nil {
		e.OnThrow(prod)
	}

	u := e.Game.WhoseTurn()
	driver := e.Drivers[u-1]
	for i := 0; i < e.MaxActionsPerTurn; i++ {
		a := driver.Decide(e.Game, u)
		if a.Kind == ActionPass {
			return
		}

		var err error
		if a.Kind == ActionStartSpinoff {
			a, err = e.Game.Spinoff(e.Dice.Intn(PatentOdds))
		} else {
			err = e.Game.Do(a)
		}
		if err != nil {
			// A confused driver forfeits the rest of its turn.
			if errors.Is(err, ErrIllegalAction) {
				res.Rejected++
			}
			slog.Debug("action rejected", "turn", e.Game.Turn(), "uni", u, "error", err)
			return
		}

		res.Actions++
		if e.OnAction != nil {
			e.OnAction(u, a)
		}
		if w := e.Game.Winner(); w != world.NoOne {
			res.Winner = w
			return
		}
	}
}

// TurnLabel returns a human-readable label for a turn number.
func TurnLabel(turn int) string {
	if turn < 0 {
		return "terra nullius"
	}
	return fmt.Sprintf("round %d, %s to play", turn/world.NumUnis+1, world.Uni(turn%world.NumUnis+1))
}
