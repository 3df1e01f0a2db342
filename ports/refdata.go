package ports

import (
	"waradvisor/domain/core"
	"waradvisor/domain/tactics"
)

// ReferenceData is the read-only catalog the advisor engine scores against.
// Implementations are immutable after construction and safe for concurrent
// readers.
type ReferenceData interface {
	// Unit returns one unit by ID, or a not-found error.
	Unit(id core.UnitID) (tactics.Unit, error)
	// Strategy returns one strategy by ID, or a not-found error.
	Strategy(id core.StrategyID) (tactics.Strategy, error)
	// Modifier returns one environment modifier by category and ID, or a
	// not-found error.
	Modifier(category tactics.ModifierCategory, id string) (tactics.EnvironmentModifier, error)
	// Affinity returns a unit's affinity profile. Units without affinity
	// data get a fully neutral profile; this lookup never fails.
	Affinity(id core.UnitID) tactics.AffinityProfile
	// MaxAdjustment is the bound on the affinity distance adjustment.
	MaxAdjustment() float64

	// Units lists every unit in ascending ID order.
	Units() []tactics.Unit
	// Strategies lists every strategy in ascending ID order.
	Strategies() []tactics.Strategy
	// Modifiers lists one category's modifiers in ascending ID order.
	Modifiers(category tactics.ModifierCategory) []tactics.EnvironmentModifier
}
