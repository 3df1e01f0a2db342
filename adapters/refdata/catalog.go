// Package refdata loads, validates and serves the advisor's reference data:
// the unit roster, the strategy book, the environment modifiers and the
// unit affinity profiles.
package refdata

import (
	"waradvisor/domain/tactics"
)

// Catalog is one parsed and validated reference dataset.
type Catalog struct {
	Units         []tactics.Unit
	Strategies    []tactics.Strategy
	Modifiers     map[tactics.ModifierCategory][]tactics.EnvironmentModifier
	Affinities    []tactics.AffinityProfile
	MaxAdjustment float64
}

// Reference data file names inside a dataset directory.
const (
	unitsFile      = "units.json"
	strategiesFile = "strategies.json"
	modifiersFile  = "modifiers.json"
	affinitiesFile = "affinities.json"
)
