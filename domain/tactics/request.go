package tactics

import "waradvisor/domain/core"

// CalculationRequest selects the army composition and the environmental
// context to advise on. Duplicate unit IDs are meaningful: each occurrence
// weighs the aggregate once.
type CalculationRequest struct {
	Units       []core.UnitID      `json:"units"`
	Terrain     core.TerrainID     `json:"terrain"`
	Weather     core.WeatherID     `json:"weather"`
	TroopStatus core.TroopStatusID `json:"troop_status"`
}

// Validate rejects requests the engine cannot score: an empty unit
// selection, or a missing context selection.
func (r CalculationRequest) Validate() error {
	if len(r.Units) == 0 {
		return core.NewEmptySelectionError()
	}
	if r.Terrain == "" {
		return core.NewUnknownIdentifierError(core.CategoryTerrain, "")
	}
	if r.Weather == "" {
		return core.NewUnknownIdentifierError(core.CategoryWeather, "")
	}
	if r.TroopStatus == "" {
		return core.NewUnknownIdentifierError(core.CategoryTroopStatus, "")
	}
	return nil
}

// ContextSelection echoes one resolved context choice back to the caller.
type ContextSelection struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StrategyScore is one strategy's placement in the ranking. RawDistance is
// the plain Euclidean distance; Distance folds in the affinity adjustment
// and is what the ranking sorts on.
type StrategyScore struct {
	ID            core.StrategyID `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Ideal         AttributeVector `json:"ideal_attributes"`
	RawDistance   float64         `json:"raw_distance"`
	Distance      float64         `json:"distance"`
	Compatibility float64         `json:"compatibility"`
}

// CalculationResult is the full advisory output for one request. It is a
// pure function of the request and the reference data: no timestamps, no
// generated IDs, so identical inputs produce identical results.
type CalculationResult struct {
	Units           []core.UnitID     `json:"units"`
	ArmyProfile     AttributeVector   `json:"army_profile"`
	ModifiedProfile AttributeVector   `json:"modified_profile"`
	Terrain         ContextSelection  `json:"terrain"`
	Weather         ContextSelection  `json:"weather"`
	TroopStatus     ContextSelection  `json:"troop_status"`
	Warnings        []CriticalWarning `json:"critical_warnings"`
	AvgAffinity     float64           `json:"avg_affinity"`
	Adjustment      float64           `json:"adjustment"`
	Ranking         []StrategyScore   `json:"ranking"`
	Top             *StrategyScore    `json:"top_strategy,omitempty"`
	Worst           *StrategyScore    `json:"worst_strategy,omitempty"`
}
