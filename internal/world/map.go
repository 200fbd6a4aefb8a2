package world

import "fmt"

// regionColumns lists the playable columns left to right. Regions are
// numbered column by column, top to bottom within each column.
var regionColumns = [5]struct {
	x      int
	top    int
	height int
}{
	{x: 1, top: 5, height: 3},
	{x: 2, top: 5, height: 4},
	{x: 3, top: 5, height: 5},
	{x: 4, top: 4, height: 4},
	{x: 5, top: 3, height: 3},
}

// RegionToCoord returns the hex holding region id. ok is false for ids
// outside 0..NumRegions-1.
func RegionToCoord(id int) (c Coord, ok bool) {
	if id < 0 || id >= NumRegions {
		return Coord{}, false
	}
	for _, col := range regionColumns {
		if id < col.height {
			return Coord{X: col.x, Y: col.top - id}, true
		}
		id -= col.height
	}
	return Coord{}, false
}

// CoordToRegion returns the region id of c, or NoRegion when c is not one
// of the playable hexes.
func CoordToRegion(c Coord) int {
	base := 0
	for _, col := range regionColumns {
		if c.X == col.x {
			offset := col.top - c.Y
			if offset < 0 || offset >= col.height {
				return NoRegion
			}
			return base + offset
		}
		base += col.height
	}
	return NoRegion
}

// Playable reports whether c is one of the 19 island hexes.
func (c Coord) Playable() bool {
	return CoordToRegion(c) != NoRegion
}

// SiteKind selects what part of a cell a containment query is about.
type SiteKind uint8

const (
	SiteHex    SiteKind = iota // The hex interior, for production and region lookups
	SiteArc                    // One of the cell's three arcs
	SiteCorner                 // One of the cell's two corners
)

// Site names a hex, or one of its stored arcs or corners.
type Site struct {
	Coord
	Kind  SiteKind
	Index int
}

// Inside reports whether the site lies on the island. A hex is inside
// when it is playable. An arc or corner is inside when any hex touching
// it is playable, so a padding cell can be outside as a hex and still
// own an arc or corner on the coastline.
func Inside(s Site) bool {
	switch s.Kind {
	case SiteHex:
		return s.Playable()
	case SiteArc:
		if s.Index < 0 || s.Index >= ArcsPerHex {
			return false
		}
		return Arc{Coord: s.Coord, Index: s.Index}.Inside()
	case SiteCorner:
		if s.Index < 0 || s.Index >= CornersPerHex {
			return false
		}
		return Corner{Coord: s.Coord, Index: s.Index}.Inside()
	}
	return false
}

// Inside reports whether the arc borders at least one island hex.
func (a Arc) Inside() bool {
	for _, h := range a.Hexes() {
		if h.Playable() {
			return true
		}
	}
	return false
}

// Inside reports whether the corner touches at least one island hex.
func (c Corner) Inside() bool {
	for _, h := range c.Hexes() {
		if h.Playable() {
			return true
		}
	}
	return false
}

// Hex is a single cell of the backing grid.
type Hex struct {
	Coord      Coord      `json:"coord"`
	Region     int        `json:"region"`
	Discipline Discipline `json:"discipline"`
	Dice       int        `json:"dice"` // 2..12, 0 on padding cells

	Arcs       [ArcsPerHex]Uni           `json:"arcs"`
	Corners    [CornersPerHex]Building   `json:"corners"`
	Retraining [CornersPerHex]Discipline `json:"retraining"`
}

// Map holds the complete island grid.
type Map struct {
	grid [GridWidth][GridHeight]Hex
}

// NewMap lays out the island from region-indexed discipline and dice
// arrays. Padding cells get DisciplineNone and no dice value.
func NewMap(disciplines [NumRegions]Discipline, dice [NumRegions]int) *Map {
	m := &Map{}
	for x := 0; x < GridWidth; x++ {
		for y := 0; y < GridHeight; y++ {
			c := Coord{X: x, Y: y}
			m.grid[x][y] = Hex{
				Coord:      c,
				Region:     NoRegion,
				Discipline: DisciplineNone,
				Retraining: [CornersPerHex]Discipline{DisciplineNone, DisciplineNone},
			}
		}
	}
	for id := 0; id < NumRegions; id++ {
		c, _ := RegionToCoord(id)
		h := &m.grid[c.X][c.Y]
		h.Region = id
		h.Discipline = disciplines[id]
		h.Dice = dice[id]
	}
	return m
}

// Get returns the cell at c, or nil outside the backing grid.
func (m *Map) Get(c Coord) *Hex {
	if !c.InGrid() {
		return nil
	}
	return &m.grid[c.X][c.Y]
}

// Region returns the cell of region id, or nil for an unknown id.
func (m *Map) Region(id int) *Hex {
	c, ok := RegionToCoord(id)
	if !ok {
		return nil
	}
	return m.Get(c)
}

// Regions returns the playable cells in region order.
func (m *Map) Regions() []*Hex {
	out := make([]*Hex, 0, NumRegions)
	for id := 0; id < NumRegions; id++ {
		out = append(out, m.Region(id))
	}
	return out
}

// Building returns the content of a corner. Corners outside the backing
// grid are always vacant.
func (m *Map) Building(c Corner) Building {
	h := m.Get(c.Coord)
	if h == nil || c.Index < 0 || c.Index >= CornersPerHex {
		return Vacant
	}
	return h.Corners[c.Index]
}

// SetBuilding places b on a corner inside the backing grid.
func (m *Map) SetBuilding(c Corner, b Building) {
	if h := m.Get(c.Coord); h != nil {
		h.Corners[c.Index] = b
	}
}

// ArcOwner returns the owner of an arc, NoOne when vacant or off-grid.
func (m *Map) ArcOwner(a Arc) Uni {
	h := m.Get(a.Coord)
	if h == nil || a.Index < 0 || a.Index >= ArcsPerHex {
		return NoOne
	}
	return h.Arcs[a.Index]
}

// SetArc records u as the owner of an arc inside the backing grid.
func (m *Map) SetArc(a Arc, u Uni) {
	if h := m.Get(a.Coord); h != nil {
		h.Arcs[a.Index] = u
	}
}

// Retraining returns the retraining centre discipline at a corner.
func (m *Map) Retraining(c Corner) Discipline {
	h := m.Get(c.Coord)
	if h == nil || c.Index < 0 || c.Index >= CornersPerHex {
		return DisciplineNone
	}
	return h.Retraining[c.Index]
}

// SetRetraining marks a corner as part of a retraining centre.
func (m *Map) SetRetraining(c Corner, d Discipline) {
	if h := m.Get(c.Coord); h != nil {
		h.Retraining[c.Index] = d
	}
}

// RetrainingCorners returns every corner carrying a retraining marker.
func (m *Map) RetrainingCorners() []Corner {
	var out []Corner
	for x := 0; x < GridWidth; x++ {
		for y := 0; y < GridHeight; y++ {
			for i, d := range m.grid[x][y].Retraining {
				if d != DisciplineNone {
					out = append(out, Corner{Coord: Coord{X: x, Y: y}, Index: i})
				}
			}
		}
	}
	return out
}

// String returns a summary of the map.
func (m *Map) String() string {
	campuses, arcs := 0, 0
	for x := 0; x < GridWidth; x++ {
		for y := 0; y < GridHeight; y++ {
			for _, b := range m.grid[x][y].Corners {
				if b != Vacant {
					campuses++
				}
			}
			for _, u := range m.grid[x][y].Arcs {
				if u != NoOne {
					arcs++
				}
			}
		}
	}
	return fmt.Sprintf("Map(regions=%d, campuses=%d, arcs=%d)", NumRegions, campuses, arcs)
}
