// Package engine implements the strategy recommendation pipeline:
// aggregate the army, apply environment modifiers, compute the affinity
// adjustment and rank the strategy book by distance.
package engine

import (
	"waradvisor/domain/core"
	"waradvisor/domain/tactics"
	"waradvisor/ports"
)

// Advisor scores armies against the strategy book. It holds no mutable
// state beyond the immutable reference data, so one instance serves
// concurrent requests.
type Advisor struct {
	data ports.ReferenceData
}

// New creates an advisor over a reference dataset.
func New(data ports.ReferenceData) *Advisor {
	return &Advisor{data: data}
}

// Calculate runs the full advisory pipeline for one request. The result is
// deterministic: the same request against the same dataset always produces
// the same profiles, warnings and ranking.
func (a *Advisor) Calculate(req tactics.CalculationRequest) (*tactics.CalculationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	profile, err := a.Aggregate(req.Units)
	if err != nil {
		return nil, err
	}

	modifiers, err := a.resolveModifiers(req.Terrain, req.Weather, req.TroopStatus)
	if err != nil {
		return nil, err
	}
	modified, warnings := applyModifierSequence(profile, modifiers)

	avgAffinity, adjustment, err := a.AffinityAdjustment(req.Units, req.Terrain, req.Weather)
	if err != nil {
		return nil, err
	}

	ranking := a.Rank(modified, adjustment)

	if warnings == nil {
		warnings = []tactics.CriticalWarning{}
	}
	result := &tactics.CalculationResult{
		Units:           append([]core.UnitID(nil), req.Units...),
		ArmyProfile:     profile,
		ModifiedProfile: modified,
		Terrain:         contextSelection(modifiers[0]),
		Weather:         contextSelection(modifiers[1]),
		TroopStatus:     contextSelection(modifiers[2]),
		Warnings:        warnings,
		AvgAffinity:     avgAffinity,
		Adjustment:      adjustment,
		Ranking:         ranking,
	}
	if len(ranking) > 0 {
		top := ranking[0]
		worst := ranking[len(ranking)-1]
		result.Top = &top
		result.Worst = &worst
	}
	return result, nil
}

func contextSelection(m tactics.EnvironmentModifier) tactics.ContextSelection {
	return tactics.ContextSelection{ID: m.ID.String(), Name: m.Name}
}
