package refdata

import (
	"fmt"

	"waradvisor/domain/core"
	"waradvisor/domain/tactics"
)

// validateCatalog enforces the dataset invariants before a store is built.
// A dataset that passes here can be served without further checks.
func validateCatalog(catalog *Catalog) error {
	if err := validateUnits(catalog.Units); err != nil {
		return err
	}
	if err := validateStrategies(catalog.Strategies); err != nil {
		return err
	}
	if err := validateModifiers(catalog.Modifiers); err != nil {
		return err
	}
	if err := validateAffinities(catalog); err != nil {
		return err
	}
	if catalog.MaxAdjustment < 0 {
		return core.NewMalformedDataError(affinitiesFile,
			fmt.Sprintf("max_adjustment must be non-negative, got %.3f", catalog.MaxAdjustment))
	}
	return nil
}

func validateUnits(units []tactics.Unit) error {
	if len(units) == 0 {
		return core.NewMalformedDataError(unitsFile, "at least one unit is required")
	}
	seen := make(map[core.UnitID]bool, len(units))
	for _, unit := range units {
		if unit.ID == "" {
			return core.NewMalformedDataError(unitsFile, "unit with empty id")
		}
		if seen[unit.ID] {
			return core.NewMalformedDataError(unitsFile, fmt.Sprintf("duplicate unit id %q", unit.ID))
		}
		seen[unit.ID] = true
		if unit.Name == "" {
			return core.NewMalformedDataError(unitsFile, fmt.Sprintf("unit %q has no name", unit.ID))
		}
		if !unit.Attributes.InUnitRange() {
			return core.NewMalformedDataError(unitsFile,
				fmt.Sprintf("unit %q has attributes outside [0,1]", unit.ID))
		}
	}
	return nil
}

func validateStrategies(strategies []tactics.Strategy) error {
	if len(strategies) == 0 {
		return core.NewMalformedDataError(strategiesFile, "at least one strategy is required")
	}
	seen := make(map[core.StrategyID]bool, len(strategies))
	for _, strategy := range strategies {
		if strategy.ID == "" {
			return core.NewMalformedDataError(strategiesFile, "strategy with empty id")
		}
		if seen[strategy.ID] {
			return core.NewMalformedDataError(strategiesFile, fmt.Sprintf("duplicate strategy id %q", strategy.ID))
		}
		seen[strategy.ID] = true
		if strategy.Name == "" {
			return core.NewMalformedDataError(strategiesFile, fmt.Sprintf("strategy %q has no name", strategy.ID))
		}
		if !strategy.Ideal.InUnitRange() {
			return core.NewMalformedDataError(strategiesFile,
				fmt.Sprintf("strategy %q has ideal attributes outside [0,1]", strategy.ID))
		}
	}
	return nil
}

func validateModifiers(byCategory map[tactics.ModifierCategory][]tactics.EnvironmentModifier) error {
	for _, category := range tactics.ModifierCategories() {
		modifiers := byCategory[category]
		if len(modifiers) == 0 {
			return core.NewMalformedDataError(modifiersFile,
				fmt.Sprintf("category %q needs at least one modifier", category))
		}
		seen := make(map[core.ID]bool, len(modifiers))
		for _, modifier := range modifiers {
			if modifier.ID == "" {
				return core.NewMalformedDataError(modifiersFile,
					fmt.Sprintf("%s modifier with empty id", category))
			}
			if seen[modifier.ID] {
				return core.NewMalformedDataError(modifiersFile,
					fmt.Sprintf("duplicate %s modifier id %q", category, modifier.ID))
			}
			seen[modifier.ID] = true
			if modifier.Name == "" {
				return core.NewMalformedDataError(modifiersFile,
					fmt.Sprintf("%s modifier %q has no name", category, modifier.ID))
			}
			if err := validateEffects(category, modifier); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateEffects(category tactics.ModifierCategory, modifier tactics.EnvironmentModifier) error {
	if len(modifier.Effects) == 0 {
		return core.NewMalformedDataError(modifiersFile,
			fmt.Sprintf("%s modifier %q has no effects", category, modifier.ID))
	}
	for key, effect := range modifier.Effects {
		if key == tactics.AllAttributesKey {
			if category != tactics.TroopStatusModifiers {
				return core.NewMalformedDataError(modifiersFile,
					fmt.Sprintf("%s modifier %q uses ALL, only troop_status modifiers may", category, modifier.ID))
			}
			if effect.Critical {
				return core.NewMalformedDataError(modifiersFile,
					fmt.Sprintf("troop_status modifier %q marks ALL as CRITICAL", modifier.ID))
			}
		} else if _, err := tactics.ParseAttribute(key); err != nil {
			return core.NewMalformedDataError(modifiersFile,
				fmt.Sprintf("%s modifier %q: %v", category, modifier.ID, err))
		}
		if !effect.Critical && effect.Op == tactics.OpScale && effect.Value < 0 {
			return core.NewMalformedDataError(modifiersFile,
				fmt.Sprintf("%s modifier %q has negative scale on %q", category, modifier.ID, key))
		}
	}
	return nil
}

func validateAffinities(catalog *Catalog) error {
	unitIDs := make(map[core.UnitID]bool, len(catalog.Units))
	for _, unit := range catalog.Units {
		unitIDs[unit.ID] = true
	}
	terrainIDs := make(map[core.TerrainID]bool)
	for _, modifier := range catalog.Modifiers[tactics.TerrainModifiers] {
		terrainIDs[core.TerrainID(modifier.ID)] = true
	}
	weatherIDs := make(map[core.WeatherID]bool)
	for _, modifier := range catalog.Modifiers[tactics.WeatherModifiers] {
		weatherIDs[core.WeatherID(modifier.ID)] = true
	}

	seen := make(map[core.UnitID]bool, len(catalog.Affinities))
	for _, profile := range catalog.Affinities {
		if profile.UnitID == "" {
			return core.NewMalformedDataError(affinitiesFile, "affinity with empty unit_id")
		}
		if seen[profile.UnitID] {
			return core.NewMalformedDataError(affinitiesFile,
				fmt.Sprintf("duplicate affinity for unit %q", profile.UnitID))
		}
		seen[profile.UnitID] = true
		if !unitIDs[profile.UnitID] {
			return core.NewMalformedDataError(affinitiesFile,
				fmt.Sprintf("affinity references unknown unit %q", profile.UnitID))
		}
		for terrain, value := range profile.Terrain {
			if !terrainIDs[terrain] {
				return core.NewMalformedDataError(affinitiesFile,
					fmt.Sprintf("unit %q affinity references unknown terrain %q", profile.UnitID, terrain))
			}
			if value < 0 || value > 1 {
				return core.NewMalformedDataError(affinitiesFile,
					fmt.Sprintf("unit %q terrain affinity %q outside [0,1]", profile.UnitID, terrain))
			}
		}
		for weather, value := range profile.Weather {
			if !weatherIDs[weather] {
				return core.NewMalformedDataError(affinitiesFile,
					fmt.Sprintf("unit %q affinity references unknown weather %q", profile.UnitID, weather))
			}
			if value < 0 || value > 1 {
				return core.NewMalformedDataError(affinitiesFile,
					fmt.Sprintf("unit %q weather affinity %q outside [0,1]", profile.UnitID, weather))
			}
		}
		if err := profile.Weights.Validate(); err != nil {
			return core.NewMalformedDataError(affinitiesFile,
				fmt.Sprintf("unit %q: %v", profile.UnitID, err))
		}
	}
	return nil
}
