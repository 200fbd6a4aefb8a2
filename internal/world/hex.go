// Package world provides the island's hex grid, region numbering, path
// resolution and the geometry shared by every rule in the engine.
//
// Hexes are flat-topped and addressed with axial coordinates (x, y):
// x is the column, y grows upward. Each hex owns the elements on its top
// boundary only: arcs 0..2 (upper-left edge, top edge, upper-right edge)
// and corners 0..1 (upper-left corner, upper-right corner). The bottom
// elements of a hex belong to its neighbours.
package world

import "fmt"

// Grid dimensions of the backing array. Only 19 cells are playable; the
// rest is padding so that boundary arcs and corners have a home.
const (
	GridWidth  = 7
	GridHeight = 6

	NumRegions = 19
	NoRegion   = -1

	ArcsPerHex    = 3
	CornersPerHex = 2
)

// Coord is a hex position in the backing grid.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Axial neighbour offsets.
var (
	dirUp         = Coord{X: 0, Y: 1}
	dirDown       = Coord{X: 0, Y: -1}
	dirUpperLeft  = Coord{X: -1, Y: 1}
	dirLowerLeft  = Coord{X: -1, Y: 0}
	dirUpperRight = Coord{X: 1, Y: 0}
	dirLowerRight = Coord{X: 1, Y: -1}
)

// Add returns the coordinate offset by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// InGrid reports whether c addresses a cell of the backing array.
func (c Coord) InGrid() bool {
	return c.X >= 0 && c.X < GridWidth && c.Y >= 0 && c.Y < GridHeight
}

// Neighbors returns the six adjacent coordinates, clockwise from up.
func (c Coord) Neighbors() [6]Coord {
	return [6]Coord{
		c.Add(dirUp),
		c.Add(dirUpperRight),
		c.Add(dirLowerRight),
		c.Add(dirDown),
		c.Add(dirLowerLeft),
		c.Add(dirUpperLeft),
	}
}

// Corners returns the six corners of the hex at c. Two are stored in the
// cell itself, the rest in the lower-left, lower-right and lower cells.
func (c Coord) Corners() [6]Corner {
	lowerLeft := c.Add(dirLowerLeft)
	lowerRight := c.Add(dirLowerRight)
	down := c.Add(dirDown)
	return [6]Corner{
		{Coord: c, Index: 0},
		{Coord: c, Index: 1},
		{Coord: lowerRight, Index: 0}, // right corner
		{Coord: down, Index: 1},
		{Coord: down, Index: 0},
		{Coord: lowerLeft, Index: 1}, // left corner
	}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Corner is a vertex of the lattice, stored in cell Coord at slot Index
// (0 = upper-left corner, 1 = upper-right corner).
type Corner struct {
	Coord
	Index int
}

// Neighbors returns the three corners one arc away.
func (c Corner) Neighbors() [3]Corner {
	if c.Index == 0 {
		return [3]Corner{
			{Coord: c.Coord, Index: 1},
			{Coord: c.Add(dirLowerLeft), Index: 1},
			{Coord: c.Add(dirUpperLeft), Index: 1},
		}
	}
	return [3]Corner{
		{Coord: c.Coord, Index: 0},
		{Coord: c.Add(dirLowerRight), Index: 0},
		{Coord: c.Add(dirUpperRight), Index: 0},
	}
}

// Arcs returns the three arcs that touch the corner.
func (c Corner) Arcs() [3]Arc {
	if c.Index == 0 {
		return [3]Arc{
			{Coord: c.Coord, Index: 1},
			{Coord: c.Coord, Index: 0},
			{Coord: c.Add(dirUpperLeft), Index: 2},
		}
	}
	return [3]Arc{
		{Coord: c.Coord, Index: 1},
		{Coord: c.Coord, Index: 2},
		{Coord: c.Add(dirUpperRight), Index: 0},
	}
}

// Hexes returns the three hexes meeting at the corner.
func (c Corner) Hexes() [3]Coord {
	side := dirUpperLeft
	if c.Index == 1 {
		side = dirUpperRight
	}
	return [3]Coord{c.Coord, c.Add(dirUp), c.Add(side)}
}

func (c Corner) String() string {
	return fmt.Sprintf("corner%s/%d", c.Coord, c.Index)
}

// Arc is an edge of the lattice, stored in cell Coord at slot Index
// (0 = upper-left edge, 1 = top edge, 2 = upper-right edge).
type Arc struct {
	Coord
	Index int
}

// Corners returns the two endpoints of the arc.
func (a Arc) Corners() [2]Corner {
	switch a.Index {
	case 0:
		return [2]Corner{{Coord: a.Coord, Index: 0}, {Coord: a.Add(dirLowerLeft), Index: 1}}
	case 1:
		return [2]Corner{{Coord: a.Coord, Index: 0}, {Coord: a.Coord, Index: 1}}
	default:
		return [2]Corner{{Coord: a.Coord, Index: 1}, {Coord: a.Add(dirLowerRight), Index: 0}}
	}
}

// Hexes returns the two hexes separated by the arc.
func (a Arc) Hexes() [2]Coord {
	switch a.Index {
	case 0:
		return [2]Coord{a.Coord, a.Add(dirUpperLeft)}
	case 1:
		return [2]Coord{a.Coord, a.Add(dirUp)}
	default:
		return [2]Coord{a.Coord, a.Add(dirUpperRight)}
	}
}

func (a Arc) String() string {
	return fmt.Sprintf("arc%s/%d", a.Coord, a.Index)
}

// Discipline enumerates the six student types. The numbering matches the
// construction arrays used by existing fixtures.
type Discipline int

// DisciplineNone tags padding hexes and empty retraining slots.
const DisciplineNone Discipline = -1

const (
	StudentTHD    Discipline = iota // Banked, never tradeable
	StudentBPS                      // Arcs, campuses
	StudentBQN                      // Arcs, campuses
	StudentMJ                       // Campuses, GO8s, spinoffs
	StudentMTV                      // Campuses, spinoffs; lost to THD on a 7
	StudentMMONEY                   // GO8s, spinoffs; lost to THD on a 7
)

// NumDisciplines is the number of student types tracked per player.
const NumDisciplines = 6

var disciplineNames = [NumDisciplines]string{"THD", "BPS", "BQN", "MJ", "MTV", "MMONEY"}

// Valid reports whether d is one of the six student types.
func (d Discipline) Valid() bool {
	return d >= StudentTHD && d <= StudentMMONEY
}

// Tradeable reports whether students of type d may be retrained.
func (d Discipline) Tradeable() bool {
	return d.Valid() && d != StudentTHD
}

func (d Discipline) String() string {
	if !d.Valid() {
		return "none"
	}
	return disciplineNames[d]
}

// ParseDiscipline maps a discipline name (case-sensitive, as printed by
// String) back to its value.
func ParseDiscipline(name string) (Discipline, bool) {
	for i, n := range disciplineNames {
		if n == name {
			return Discipline(i), true
		}
	}
	return DisciplineNone, false
}

// Uni identifies a player. NoOne marks vacancy and "no holder".
type Uni int

const (
	NoOne Uni = iota
	UniA
	UniB
	UniC
)

// NumUnis is the number of players in a game.
const NumUnis = 3

// Valid reports whether u is a real player.
func (u Uni) Valid() bool {
	return u >= UniA && u <= UniC
}

func (u Uni) String() string {
	switch u {
	case UniA:
		return "A"
	case UniB:
		return "B"
	case UniC:
		return "C"
	}
	return "no one"
}

// Building is the content of a corner slot.
type Building int

const (
	Vacant Building = iota
	CampusA
	CampusB
	CampusC
	GO8A
	GO8B
	GO8C
)

// CampusOf returns the basic campus owned by u.
func CampusOf(u Uni) Building {
	return Building(u)
}

// GO8Of returns the upgraded campus owned by u.
func GO8Of(u Uni) Building {
	return Building(int(u) + NumUnis)
}

// Owner returns the player owning the building, NoOne when vacant.
func (b Building) Owner() Uni {
	switch {
	case b >= CampusA && b <= CampusC:
		return Uni(b)
	case b >= GO8A && b <= GO8C:
		return Uni(int(b) - NumUnis)
	}
	return NoOne
}

// IsGO8 reports whether the building is an upgraded campus.
func (b Building) IsGO8() bool {
	return b >= GO8A && b <= GO8C
}
