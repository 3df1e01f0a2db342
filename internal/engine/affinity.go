package engine

import (
	"github.com/montanaflynn/stats"

	"waradvisor/domain/core"
	"waradvisor/domain/tactics"
)

// AffinityAdjustment computes the single distance adjustment shared by every
// strategy in a request. Each unit instance contributes its weighted
// terrain/weather affinity (neutral when the dataset has no profile or no
// entry for the condition); the mean is mapped around the neutral midpoint
// and scaled by the dataset's max adjustment. Returns the mean affinity and
// the adjustment; a comfortable army yields a negative adjustment, pulling
// every strategy closer.
func (a *Advisor) AffinityAdjustment(unitIDs []core.UnitID, terrain core.TerrainID, weather core.WeatherID) (float64, float64, error) {
	if len(unitIDs) == 0 {
		return 0, 0, core.NewEmptySelectionError()
	}

	values := make([]float64, len(unitIDs))
	for i, id := range unitIDs {
		profile := a.data.Affinity(id)
		values[i] = profile.Combined(terrain, weather)
	}
	avg, _ := stats.Mean(values)
	adjustment := (tactics.NeutralAffinity - avg) * 2 * a.data.MaxAdjustment()
	return avg, adjustment, nil
}
