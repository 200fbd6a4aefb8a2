package world

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	p, err := ParsePath("LRB")
	require.NoError(t, err)
	assert.Equal(t, Path{TurnLeft, TurnRight, TurnBack}, p)
	assert.Equal(t, "LRB", p.String())

	p, err = ParsePath("")
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestParsePathErrors(t *testing.T) {
	_, err := ParsePath("LRX")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = ParsePath("lr")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = ParsePath(strings.Repeat("L", MaxPathLength+1))
	assert.ErrorIs(t, err, ErrPathTooLong)

	_, err = ParsePath(strings.Repeat("L", MaxPathLength))
	assert.NoError(t, err)

	assert.Panics(t, func() { MustParsePath("Q") })
}

func TestFacingTurn(t *testing.T) {
	assert.Equal(t, FacingE, FacingSE.Turn(TurnLeft))
	assert.Equal(t, FacingSW, FacingSE.Turn(TurnRight))
	assert.Equal(t, FacingNW, FacingSE.Turn(TurnBack))
	for f := FacingE; f < numFacings; f++ {
		assert.Equal(t, f, f.Turn(TurnLeft).Turn(TurnRight))
		assert.Equal(t, f, f.Turn(TurnBack).Turn(TurnBack))
	}
}

func TestResolveCorner(t *testing.T) {
	tests := []struct {
		path string
		want Corner
	}{
		{"", Corner{Coord{3, 5}, 0}},
		{"L", Corner{Coord{3, 5}, 1}},
		{"LB", Corner{Coord{3, 5}, 0}},
		{"LBLLRB", Corner{Coord{3, 4}, 0}},
		{"LR", Corner{Coord{4, 4}, 0}},
		{"RLR", Corner{Coord{2, 4}, 1}},
		{"RLRRLRR", Corner{Coord{0, 5}, 1}},
		{"RLRL", Corner{Coord{3, 3}, 0}},
		{"RLRLLRRL", Corner{Coord{4, 1}, 0}},
		{"RLRLLRRLLR", Corner{Coord{5, 0}, 0}},
		{"RLRRLRRLLLL", Corner{Coord{0, 4}, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveCorner(MustParsePath(tt.path)))
		})
	}
}

func TestResolveArc(t *testing.T) {
	tests := []struct {
		path string
		want Arc
	}{
		{"", rootArc},
		{"L", Arc{Coord{3, 5}, 1}},
		{"LB", Arc{Coord{3, 5}, 1}},
		{"LBLLRB", Arc{Coord{3, 4}, 0}},
		{"LR", Arc{Coord{3, 5}, 2}},
		{"RLR", Arc{Coord{3, 4}, 0}},
		{"RLRRLRR", Arc{Coord{0, 5}, 2}},
		{"RLRL", Arc{Coord{2, 4}, 2}},
		{"RLRLLRRL", Arc{Coord{3, 2}, 2}},
		{"RLRLLRRLLR", Arc{Coord{4, 1}, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveArc(MustParsePath(tt.path)))
		})
	}
	assert.False(t, rootArc.Inside())
}

func TestResolveIsPure(t *testing.T) {
	p := MustParsePath("RLRLLRRLLR")
	assert.Equal(t, ResolveCorner(p), ResolveCorner(p))
	assert.Equal(t, ResolveArc(p), ResolveArc(p))
}

func TestContained(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"", true},
		{"L", true},
		{"RLRRLRR", true},
		{"RLRLLRRLLR", true},
		{"RLRLRLRLRLL", true},
		{"LRLRLRRLRLL", false}, // leaves the coast and comes back
		{"B", false},
		{"RRR", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Contained(MustParsePath(tt.path)))
		})
	}
}

func TestWalkStopsEarly(t *testing.T) {
	steps := 0
	Walk(MustParsePath("LRLRLR"), func(w Walker) bool {
		steps++
		return steps < 2
	})
	assert.Equal(t, 2, steps)
}

func TestStepReversal(t *testing.T) {
	// Walking forward then back returns to the same corner over the same arc.
	w := NewWalker()
	for _, tt := range []Turn{TurnLeft, TurnRight, TurnRight, TurnLeft} {
		next := w.Step(tt)
		back := next.Step(TurnBack)
		assert.Equal(t, w.Corner, back.Corner)
		assert.Equal(t, next.Arc, back.Arc)
		w = next
	}
}

// Every move ends on the far corner of the arc it walks, so the walker's
// corner is the resolved corner.
func TestStepsEndOnWalkedArc(t *testing.T) {
	leaves := [numFacings]int{FacingE: 0, FacingNW: 0, FacingSW: 0, FacingW: 1, FacingNE: 1, FacingSE: 1}
	for f := Facing(0); f < numFacings; f++ {
		start := Corner{Coord: Coord{X: 3, Y: 3}, Index: leaves[f]}
		s := steps[f]
		end := Corner{Coord: start.Add(s.to), Index: s.cornerIdx}
		arc := Arc{Coord: start.Add(s.arc), Index: s.arcIndex}
		assert.ElementsMatch(t, []Corner{start, end}, arc.Corners(), "facing %d", f)
	}

	assert.Equal(t, rootCorner, ResolveCorner(nil))
	Walk(MustParsePath("RRLRLLRLRLLRL"), func(w Walker) bool {
		assert.Contains(t, w.Arc.Corners(), w.Corner)
		return true
	})
}
