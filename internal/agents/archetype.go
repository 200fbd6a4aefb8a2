// Archetypes: behavioural templates that give each bot a play style.
// Each archetype orders the goals it pursues and sets how eagerly it
// retrains students toward them.
package agents

import "slices"

// Archetype constants.
const (
	ArchExpansionist = "Expansionist"
	ArchUpgrader     = "Upgrader"
	ArchScholar      = "Scholar"
	ArchRoadBuilder  = "RoadBuilder"
)

// Archetypes lists every known archetype in a stable order.
var Archetypes = []string{ArchExpansionist, ArchUpgrader, ArchScholar, ArchRoadBuilder}

// KnownArchetype reports whether name is one of Archetypes.
func KnownArchetype(name string) bool {
	return slices.Contains(Archetypes, name)
}

// BehaviorTemplate defines how an archetype plays a turn.
type BehaviorTemplate struct {
	// Goals in the order they are attempted each action.
	Goals []Goal

	// SaveFor is the goal retraining works toward when nothing is
	// affordable.
	SaveFor Goal

	// ArcBudget caps arcs built per turn, so arcs do not eat the students
	// saved for campuses.
	ArcBudget int
}

var archetypeTemplates = map[string]BehaviorTemplate{
	ArchExpansionist: {
		Goals:     []Goal{GoalCampus, GoalGO8, GoalArc, GoalSpinoff},
		SaveFor:   GoalCampus,
		ArcBudget: 2,
	},
	ArchUpgrader: {
		Goals:     []Goal{GoalGO8, GoalCampus, GoalArc, GoalSpinoff},
		SaveFor:   GoalGO8,
		ArcBudget: 1,
	},
	ArchScholar: {
		Goals:     []Goal{GoalSpinoff, GoalCampus, GoalGO8, GoalArc},
		SaveFor:   GoalSpinoff,
		ArcBudget: 1,
	},
	ArchRoadBuilder: {
		Goals:     []Goal{GoalArc, GoalCampus, GoalGO8, GoalSpinoff},
		SaveFor:   GoalArc,
		ArcBudget: 4,
	},
}

// Template returns the template of a named archetype, falling back to
// the expansionist.
func Template(name string) BehaviorTemplate {
	if t, ok := archetypeTemplates[name]; ok {
		return t
	}
	return archetypeTemplates[ArchExpansionist]
}
