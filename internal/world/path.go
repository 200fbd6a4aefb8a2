package world

import (
	"errors"
	"fmt"
	"strings"
)

// MaxPathLength bounds the number of turns in a path string.
const MaxPathLength = 150

var (
	ErrInvalidPath = errors.New("invalid path token")
	ErrPathTooLong = errors.New("path too long")
)

// Turn is one path token.
type Turn uint8

const (
	TurnLeft  Turn = iota // 'L'
	TurnRight             // 'R'
	TurnBack              // 'B'
)

// Path is a parsed sequence of turns. The zero value is the empty path,
// which resolves to the root corner.
type Path []Turn

// ParsePath converts a string over the alphabet {L, R, B}.
func ParsePath(s string) (Path, error) {
	if len(s) > MaxPathLength {
		return nil, fmt.Errorf("parse path of %d turns: %w", len(s), ErrPathTooLong)
	}
	p := make(Path, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'L':
			p = append(p, TurnLeft)
		case 'R':
			p = append(p, TurnRight)
		case 'B':
			p = append(p, TurnBack)
		default:
			return nil, fmt.Errorf("parse path %q at %d: %w", s, i, ErrInvalidPath)
		}
	}
	return p, nil
}

// MustParsePath is ParsePath for fixed, known-good paths. It panics on
// malformed input.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Path) String() string {
	var b strings.Builder
	for _, t := range p {
		b.WriteByte("LRB"[t])
	}
	return b.String()
}

// Facing is one of the six directions an arc can be walked in.
type Facing uint8

const (
	FacingE  Facing = iota // 0°
	FacingNE               // 60°
	FacingNW               // 120°
	FacingW                // 180°
	FacingSW               // 240°
	FacingSE               // 300°
	numFacings
)

// turnOffsets rotates a facing counter-clockwise, in 60° steps.
var turnOffsets = [3]Facing{
	TurnLeft:  1,
	TurnRight: numFacings - 1,
	TurnBack:  numFacings / 2,
}

// Turn returns the facing after applying t.
func (f Facing) Turn(t Turn) Facing {
	return (f + turnOffsets[t]) % numFacings
}

// step is the arc walked and the corner reached when leaving a corner in
// a given facing. Offsets are relative to the cell of the corner left.
type step struct {
	arc       Coord
	arcIndex  int
	to        Coord
	cornerIdx int
}

// steps is indexed by the facing of the move. Facings E, NW and SW leave
// an upper-left corner (index 0); W, SE and NE leave an upper-right one.
// Opposite facings walk the same arc in reverse.
var steps = [numFacings]step{
	FacingE:  {arc: Coord{0, 0}, arcIndex: 1, to: Coord{0, 0}, cornerIdx: 1},
	FacingW:  {arc: Coord{0, 0}, arcIndex: 1, to: Coord{0, 0}, cornerIdx: 0},
	FacingSW: {arc: Coord{0, 0}, arcIndex: 0, to: Coord{-1, 0}, cornerIdx: 1},
	FacingNE: {arc: Coord{1, 0}, arcIndex: 0, to: Coord{1, 0}, cornerIdx: 0},
	FacingNW: {arc: Coord{-1, 1}, arcIndex: 2, to: Coord{-1, 1}, cornerIdx: 1},
	FacingSE: {arc: Coord{0, 0}, arcIndex: 2, to: Coord{1, -1}, cornerIdx: 0},
}

// The walk starts on the upper-left corner of the topmost hex, facing as
// if it had just arrived from the sea along the rootArc.
var (
	rootCorner = Corner{Coord: Coord{X: 3, Y: 5}, Index: 0}
	rootFacing = FacingSE
	rootArc    = Arc{Coord: Coord{X: 2, Y: 6}, Index: 2}
)

// Walker is the turtle state carried along a path.
type Walker struct {
	Corner Corner
	Facing Facing
	Arc    Arc // last arc walked; rootArc before the first move
}

// NewWalker returns a walker at the root.
func NewWalker() Walker {
	return Walker{Corner: rootCorner, Facing: rootFacing, Arc: rootArc}
}

// Step applies one turn and advances along one arc.
func (w Walker) Step(t Turn) Walker {
	f := w.Facing.Turn(t)
	s := steps[f]
	from := w.Corner.Coord
	return Walker{
		Corner: Corner{Coord: from.Add(s.to), Index: s.cornerIdx},
		Facing: f,
		Arc:    Arc{Coord: from.Add(s.arc), Index: s.arcIndex},
	}
}

// Walk replays p from the root and calls fn after every move. Iteration
// stops early when fn returns false.
func Walk(p Path, fn func(Walker) bool) {
	w := NewWalker()
	for _, t := range p {
		w = w.Step(t)
		if !fn(w) {
			return
		}
	}
}

// ResolveCorner returns the corner reached by p.
func ResolveCorner(p Path) Corner {
	w := NewWalker()
	for _, t := range p {
		w = w.Step(t)
	}
	return w.Corner
}

// ResolveArc returns the last arc walked by p. The empty path resolves to
// the root's offshore arc, which is never on the island.
func ResolveArc(p Path) Arc {
	w := NewWalker()
	for _, t := range p {
		w = w.Step(t)
	}
	return w.Arc
}

// Contained reports whether every arc walked by p lies on the island. A
// path that leaves the coast and comes back is still rejected.
func Contained(p Path) bool {
	ok := true
	Walk(p, func(w Walker) bool {
		ok = w.Arc.Inside()
		return ok
	})
	return ok
}
