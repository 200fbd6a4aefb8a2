package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/talgya/knowledge-island/internal/agents"
	"github.com/talgya/knowledge-island/internal/engine"
	"github.com/talgya/knowledge-island/internal/world"
)

// maxHints bounds the sites listed by the hint command.
const maxHints = 8

var errQuit = errors.New("quit")

// verbs maps command words to action kinds. Numeric action codes are
// accepted too.
var verbs = map[string]engine.ActionKind{
	"pass":        engine.ActionPass,
	"campus":      engine.ActionBuildCampus,
	"go8":         engine.ActionBuildGO8,
	"arc":         engine.ActionObtainArc,
	"spinoff":     engine.ActionStartSpinoff,
	"publication": engine.ActionObtainPublication,
	"patent":      engine.ActionObtainIPPatent,
	"retrain":     engine.ActionRetrain,
}

const helpText = `Commands:
  pass                     end the turn
  campus [PATH]            build a campus at the corner PATH leads to
  go8 [PATH]               upgrade a campus to a GO8
  arc PATH                 obtain the arc PATH ends on
  spinoff                  start a spinoff (1 in 3 becomes a patent)
  retrain FROM TO          retrain students, e.g. "retrain MTV BPS"
  status                   show the scoreboard
  hint campus|go8|arc      list legal sites
  quit                     leave the game
Paths are strings of L, R and B turns walked from the root corner.
Action codes 0..7 may be used in place of the command word.`

// parseCommand turns a console line into an action.
func parseCommand(line string) (engine.Action, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return engine.Action{}, errors.New("empty command")
	}

	kind, ok := verbs[strings.ToLower(fields[0])]
	if !ok {
		code, err := strconv.Atoi(fields[0])
		if err != nil || code < int(engine.ActionPass) || code > int(engine.ActionRetrain) {
			return engine.Action{}, fmt.Errorf("unknown command %q", fields[0])
		}
		kind = engine.ActionKind(code)
	}
	args := fields[1:]

	a := engine.Action{Kind: kind}
	switch kind {
	case engine.ActionBuildCampus, engine.ActionBuildGO8, engine.ActionObtainArc:
		if len(args) > 1 {
			return engine.Action{}, fmt.Errorf("%s takes one path", kind)
		}
		if len(args) == 1 {
			p, err := world.ParsePath(strings.ToUpper(args[0]))
			if err != nil {
				return engine.Action{}, err
			}
			a.Destination = p
		}
	case engine.ActionRetrain:
		if len(args) != 2 {
			return engine.Action{}, errors.New("retrain takes a source and a target discipline")
		}
		var err error
		if a.From, err = parseDiscipline(args[0]); err != nil {
			return engine.Action{}, err
		}
		if a.To, err = parseDiscipline(args[1]); err != nil {
			return engine.Action{}, err
		}
	default:
		if len(args) > 0 {
			return engine.Action{}, fmt.Errorf("%s takes no arguments", kind)
		}
	}
	return a, nil
}

// parseDiscipline accepts a discipline name or its number.
func parseDiscipline(s string) (world.Discipline, error) {
	if d, ok := world.ParseDiscipline(strings.ToUpper(s)); ok {
		return d, nil
	}
	if n, err := strconv.Atoi(s); err == nil && world.Discipline(n).Valid() {
		return world.Discipline(n), nil
	}
	return world.DisciplineNone, fmt.Errorf("unknown discipline %q", s)
}

// Console is a human driver reading commands from a line-oriented stream.
// It implements engine.Driver.
type Console struct {
	in  *bufio.Scanner
	out io.Writer

	// Quit is called once when the player quits or input ends.
	Quit func()

	lastTurn int
	done     bool
}

// NewConsole creates a console driver.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out, lastTurn: engine.TerraNullius}
}

// Decide prompts until the player enters a legal action.
func (c *Console) Decide(g *engine.Game, u world.Uni) engine.Action {
	if c.done {
		return engine.Action{Kind: engine.ActionPass}
	}
	if g.Turn() != c.lastTurn {
		c.lastTurn = g.Turn()
		fmt.Fprintf(c.out, "\nUniversity %s's turn (%s)\n", u, engine.TurnLabel(g.Turn()))
		printStudents(c.out, g, u)
	}

	for {
		a, err := c.read(g)
		if errors.Is(err, errQuit) {
			c.done = true
			if c.Quit != nil {
				c.Quit()
			}
			return engine.Action{Kind: engine.ActionPass}
		}
		if err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}
		if g.IsLegal(a) {
			return a
		}
		fmt.Fprintln(c.out, "Illegal action")
	}
}

// read handles one line, running informational commands in place.
func (c *Console) read(g *engine.Game) (engine.Action, error) {
	for {
		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			return engine.Action{}, errQuit
		}
		line := strings.TrimSpace(c.in.Text())
		fields := strings.Fields(strings.ToLower(line))
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "quit", "exit":
			return engine.Action{}, errQuit
		case "help", "?":
			fmt.Fprintln(c.out, helpText)
		case "status":
			fmt.Fprint(c.out, scoreboard(g))
		case "hint":
			kind := engine.ActionBuildCampus
			if len(fields) > 1 {
				k, ok := verbs[fields[1]]
				if !ok {
					return engine.Action{}, fmt.Errorf("no hints for %q", fields[1])
				}
				kind = k
			}
			fmt.Fprintln(c.out, strings.Join(hints(g, kind), " "))
		default:
			return parseCommand(line)
		}
	}
}

// hints lists up to maxHints legal destinations for a site action.
func hints(g *engine.Game, kind engine.ActionKind) []string {
	corners, arcs := agents.Sites()
	paths := corners
	switch kind {
	case engine.ActionObtainArc:
		paths = arcs
	case engine.ActionBuildCampus, engine.ActionBuildGO8:
	default:
		return []string{"(no sites for " + kind.String() + ")"}
	}

	var out []string
	for _, p := range paths {
		if g.IsLegal(engine.Action{Kind: kind, Destination: p}) {
			out = append(out, fmt.Sprintf("%q", p.String()))
			if len(out) == maxHints {
				break
			}
		}
	}
	if len(out) == 0 {
		return []string{"(none)"}
	}
	return out
}

func printStudents(w io.Writer, g *engine.Game, u world.Uni) {
	p := g.Player(u)
	fmt.Fprintf(w, "  students: %s\n", p.Students)
	fmt.Fprintf(w, "  KPI %d, %d campuses, %d GO8s, %d arcs\n", p.KPI, p.Campuses, p.GO8s, p.ARCs)
}

func scoreboard(g *engine.Game) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-4s %5s %5s %5s %5s %5s %5s\n", "uni", "KPI", "camp", "GO8", "arcs", "pat", "pub")
	for _, p := range g.Players() {
		marks := ""
		if g.MostARCs() == p.Uni {
			marks += " most-arcs"
		}
		if g.MostPublications() == p.Uni {
			marks += " most-pubs"
		}
		fmt.Fprintf(&b, "%-4s %5d %5d %5d %5d %5d %5d%s\n",
			p.Uni, p.KPI, p.Campuses, p.GO8s, p.ARCs, p.Patents, p.Publications, marks)
	}
	return b.String()
}
