package world

// SiteIndex maps every on-island corner and arc to one of its shortest
// contained paths from the root.
type SiteIndex struct {
	Corners map[Corner]Path
	Arcs    map[Arc]Path
}

// IndexSites walks the island breadth-first from the root, only along
// arcs that lie on the island, and records the first path to reach each
// corner and arc. Every path in the result satisfies Contained.
func IndexSites() SiteIndex {
	idx := SiteIndex{
		Corners: make(map[Corner]Path),
		Arcs:    make(map[Arc]Path),
	}

	type node struct {
		w    Walker
		path Path
	}
	type state struct {
		corner Corner
		facing Facing
	}

	root := NewWalker()
	idx.Corners[root.Corner] = Path{}
	seen := map[state]bool{{root.Corner, root.Facing}: true}
	queue := []node{{w: root}}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, t := range [3]Turn{TurnLeft, TurnRight, TurnBack} {
			next := n.w.Step(t)
			if !next.Arc.Inside() {
				continue
			}
			p := make(Path, len(n.path)+1)
			copy(p, n.path)
			p[len(n.path)] = t

			if _, ok := idx.Arcs[next.Arc]; !ok {
				idx.Arcs[next.Arc] = p
			}
			if _, ok := idx.Corners[next.Corner]; !ok {
				idx.Corners[next.Corner] = p
			}
			s := state{next.Corner, next.Facing}
			if seen[s] {
				continue
			}
			seen[s] = true
			queue = append(queue, node{w: next, path: p})
		}
	}
	return idx
}
