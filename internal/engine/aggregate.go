package engine

import (
	"github.com/montanaflynn/stats"

	"waradvisor/domain/core"
	"waradvisor/domain/tactics"
)

// Aggregate computes the army profile: the per-attribute mean across the
// selected units. Duplicate IDs count once per occurrence, so a double
// selection doubles that unit's weight.
func (a *Advisor) Aggregate(unitIDs []core.UnitID) (tactics.AttributeVector, error) {
	if len(unitIDs) == 0 {
		return tactics.AttributeVector{}, core.NewEmptySelectionError()
	}

	units := make([]tactics.Unit, 0, len(unitIDs))
	for _, id := range unitIDs {
		unit, err := a.data.Unit(id)
		if err != nil {
			if core.IsNotFoundError(err) {
				return tactics.AttributeVector{}, core.NewUnknownIdentifierError(core.CategoryUnit, id.String())
			}
			return tactics.AttributeVector{}, err
		}
		units = append(units, unit)
	}

	var profile tactics.AttributeVector
	for _, attr := range tactics.Attributes() {
		values := make([]float64, len(units))
		for i, unit := range units {
			values[i] = unit.Attributes.Get(attr)
		}
		mean, _ := stats.Mean(values)
		profile.Set(attr, mean)
	}
	return profile, nil
}
