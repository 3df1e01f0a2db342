package tactics

import (
	"fmt"
	"math"

	"waradvisor/domain/core"
)

// NeutralAffinity is the affinity assumed for any unit/condition pair the
// reference data does not cover. A fully neutral army produces a zero
// distance adjustment.
const NeutralAffinity = 0.5

// DefaultMaxAdjustment bounds how far the affinity adjustment can move any
// strategy's distance when the dataset does not set its own bound.
const DefaultMaxAdjustment = 0.1

// weightSumTolerance absorbs float noise when checking that affinity
// weights sum to one.
const weightSumTolerance = 0.001

// AffinityWeights blends a unit's terrain and weather affinities into one
// combined value. The two weights must sum to 1.
type AffinityWeights struct {
	Terrain float64 `json:"terrain"`
	Weather float64 `json:"weather"`
}

// DefaultAffinityWeights weighs terrain and weather equally.
func DefaultAffinityWeights() AffinityWeights {
	return AffinityWeights{Terrain: 0.5, Weather: 0.5}
}

// Validate checks the weights are non-negative and sum to 1.
func (w AffinityWeights) Validate() error {
	if w.Terrain < 0 || w.Weather < 0 {
		return fmt.Errorf("affinity weights must be non-negative, got terrain=%.3f weather=%.3f", w.Terrain, w.Weather)
	}
	if math.Abs(w.Terrain+w.Weather-1.0) > weightSumTolerance {
		return fmt.Errorf("affinity weights must sum to 1.0, got %.3f", w.Terrain+w.Weather)
	}
	return nil
}

// AffinityProfile captures how comfortable one unit is across terrains and
// weather conditions. Values are in [0, 1]; 1 is home ground, 0 is hostile.
type AffinityProfile struct {
	UnitID  core.UnitID                `json:"unit_id"`
	Terrain map[core.TerrainID]float64 `json:"terrain"`
	Weather map[core.WeatherID]float64 `json:"weather"`
	Weights AffinityWeights            `json:"weights"`
}

// NewNeutralProfile returns the profile used for units without affinity data.
func NewNeutralProfile(unitID core.UnitID) AffinityProfile {
	return AffinityProfile{
		UnitID:  unitID,
		Terrain: map[core.TerrainID]float64{},
		Weather: map[core.WeatherID]float64{},
		Weights: DefaultAffinityWeights(),
	}
}

// TerrainAffinity returns the unit's affinity for a terrain, neutral when
// the terrain is not listed.
func (p AffinityProfile) TerrainAffinity(id core.TerrainID) float64 {
	if v, ok := p.Terrain[id]; ok {
		return v
	}
	return NeutralAffinity
}

// WeatherAffinity returns the unit's affinity for a weather condition,
// neutral when the condition is not listed.
func (p AffinityProfile) WeatherAffinity(id core.WeatherID) float64 {
	if v, ok := p.Weather[id]; ok {
		return v
	}
	return NeutralAffinity
}

// Combined blends the terrain and weather affinities with the profile's weights.
func (p AffinityProfile) Combined(terrain core.TerrainID, weather core.WeatherID) float64 {
	return p.TerrainAffinity(terrain)*p.Weights.Terrain + p.WeatherAffinity(weather)*p.Weights.Weather
}
