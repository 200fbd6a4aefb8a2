// Package economy provides student inventories, build costs and the
// exchange rates used when retraining students.
package economy

import (
	"fmt"
	"strings"

	"github.com/talgya/knowledge-island/internal/world"
)

// Inventory holds one counter per discipline.
type Inventory [world.NumDisciplines]int

// StartingInventory is what every university holds at game start.
var StartingInventory = Inventory{
	world.StudentTHD:    0,
	world.StudentBPS:    3,
	world.StudentBQN:    3,
	world.StudentMJ:     1,
	world.StudentMTV:    1,
	world.StudentMMONEY: 1,
}

// Cost is a bundle of students consumed by an action.
type Cost = Inventory

// Build costs.
var (
	CampusCost = Cost{world.StudentBPS: 1, world.StudentBQN: 1, world.StudentMJ: 1, world.StudentMTV: 1}
	GO8Cost    = Cost{world.StudentMJ: 2, world.StudentMMONEY: 3}
	ArcCost    = Cost{world.StudentBPS: 1, world.StudentBQN: 1}
	// Spinoffs, publications and patents share one price.
	SpinoffCost = Cost{world.StudentMJ: 1, world.StudentMTV: 1, world.StudentMMONEY: 1}
)

// Exchange rates for retraining.
const (
	BaseExchangeRate       = 3
	DiscountedExchangeRate = 2 // With a campus at a matching retraining centre
)

// Covers reports whether inv holds at least c of every discipline.
func (inv Inventory) Covers(c Cost) bool {
	for d, n := range c {
		if inv[d] < n {
			return false
		}
	}
	return true
}

// Spend removes c from inv. The caller checks Covers first.
func (inv *Inventory) Spend(c Cost) {
	for d, n := range c {
		inv[d] -= n
	}
}

// Add credits n students of discipline d.
func (inv *Inventory) Add(d world.Discipline, n int) {
	if d.Valid() {
		inv[d] += n
	}
}

// Get returns the count for d, zero for an invalid discipline.
func (inv Inventory) Get(d world.Discipline) int {
	if !d.Valid() {
		return 0
	}
	return inv[d]
}

// Bank moves every student of the volatile disciplines into THD.
func (inv *Inventory) Bank() (moved int) {
	for _, d := range []world.Discipline{world.StudentMTV, world.StudentMMONEY} {
		moved += inv[d]
		inv[world.StudentTHD] += inv[d]
		inv[d] = 0
	}
	return moved
}

// Total returns the number of students held.
func (inv Inventory) Total() int {
	total := 0
	for _, n := range inv {
		total += n
	}
	return total
}

func (inv Inventory) String() string {
	parts := make([]string, 0, world.NumDisciplines)
	for d, n := range inv {
		parts = append(parts, fmt.Sprintf("%s=%d", world.Discipline(d), n))
	}
	return strings.Join(parts, " ")
}
