package engine

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"waradvisor/domain/tactics"
)

// maxDistance is the largest possible Euclidean distance between two
// profiles, reached when every attribute differs by a full unit.
var maxDistance = math.Sqrt(float64(tactics.NumAttributes))

// Rank scores the full strategy book against a modified profile. Each raw
// Euclidean distance is shifted by the shared affinity adjustment and floored
// at zero; compatibility maps the adjusted distance onto a 0-100 scale. The
// ranking sorts by adjusted distance ascending, strategy ID breaking ties.
func (a *Advisor) Rank(profile tactics.AttributeVector, adjustment float64) []tactics.StrategyScore {
	strategies := a.data.Strategies()
	components := profile.Components()

	scores := make([]tactics.StrategyScore, 0, len(strategies))
	for _, strategy := range strategies {
		raw := floats.Distance(components, strategy.Ideal.Components(), 2)
		final := math.Max(0, raw+adjustment)
		scores = append(scores, tactics.StrategyScore{
			ID:            strategy.ID,
			Name:          strategy.Name,
			Description:   strategy.Description,
			Ideal:         strategy.Ideal,
			RawDistance:   raw,
			Distance:      final,
			Compatibility: compatibility(final),
		})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Distance != scores[j].Distance {
			return scores[i].Distance < scores[j].Distance
		}
		return scores[i].ID < scores[j].ID
	})
	return scores
}

// compatibility maps an adjusted distance onto 0-100: 100 is a perfect
// match, 0 is the theoretical maximum distance or beyond.
func compatibility(distance float64) float64 {
	score := 100 * (1 - distance/maxDistance)
	return math.Min(100, math.Max(0, score))
}
