package batch

import (
	"fmt"
	"math/rand"

	"waradvisor/app"
	"waradvisor/domain/core"
	"waradvisor/domain/tactics"
)

// Generator drafts random but valid calculation requests from one catalog.
// A fixed seed reproduces the same scenario sequence.
type Generator struct {
	rng      *rand.Rand
	units    []core.UnitID
	terrains []core.TerrainID
	weather  []core.WeatherID
	statuses []core.TroopStatusID
}

// NewGenerator seeds a generator over a catalog's selectable options.
func NewGenerator(opts app.CatalogOptions, seed int64) (*Generator, error) {
	g := &Generator{rng: rand.New(rand.NewSource(seed))}
	for _, unit := range opts.Units {
		g.units = append(g.units, core.UnitID(unit.ID))
	}
	for _, terrain := range opts.Terrains {
		g.terrains = append(g.terrains, core.TerrainID(terrain.ID))
	}
	for _, weather := range opts.Weather {
		g.weather = append(g.weather, core.WeatherID(weather.ID))
	}
	for _, status := range opts.TroopStatus {
		g.statuses = append(g.statuses, core.TroopStatusID(status.ID))
	}

	if len(g.units) == 0 || len(g.terrains) == 0 || len(g.weather) == 0 || len(g.statuses) == 0 {
		return nil, fmt.Errorf("catalog has an empty option list, nothing to draft from")
	}
	return g, nil
}

// Requests drafts count scenarios with army sizes in [minUnits, maxUnits].
// Units are drawn with replacement; a doubled-up unit weighs the army
// aggregate once per copy.
func (g *Generator) Requests(count, minUnits, maxUnits int) ([]tactics.CalculationRequest, error) {
	if count < 1 {
		return nil, fmt.Errorf("scenario count must be at least 1, got %d", count)
	}
	if minUnits < 1 || maxUnits < minUnits {
		return nil, fmt.Errorf("invalid army size range [%d, %d]", minUnits, maxUnits)
	}

	requests := make([]tactics.CalculationRequest, count)
	for i := range requests {
		size := minUnits + g.rng.Intn(maxUnits-minUnits+1)
		units := make([]core.UnitID, size)
		for j := range units {
			units[j] = g.units[g.rng.Intn(len(g.units))]
		}
		requests[i] = tactics.CalculationRequest{
			Units:       units,
			Terrain:     g.terrains[g.rng.Intn(len(g.terrains))],
			Weather:     g.weather[g.rng.Intn(len(g.weather))],
			TroopStatus: g.statuses[g.rng.Intn(len(g.statuses))],
		}
	}
	return requests, nil
}
