package refdata

import (
	"encoding/json"
	"fmt"
	"sort"

	"waradvisor/domain/core"
	"waradvisor/domain/tactics"
)

// Store serves one validated reference dataset. It is immutable after
// construction and safe for concurrent readers.
type Store struct {
	units      map[core.UnitID]tactics.Unit
	strategies map[core.StrategyID]tactics.Strategy
	modifiers  map[tactics.ModifierCategory]map[string]tactics.EnvironmentModifier
	affinities map[core.UnitID]tactics.AffinityProfile

	unitList      []tactics.Unit
	strategyList  []tactics.Strategy
	modifierLists map[tactics.ModifierCategory][]tactics.EnvironmentModifier

	maxAdjustment float64
	fingerprint   core.DatasetHash
}

// NewStore indexes a catalog for lookup. The catalog is assumed valid; use
// Load or LoadFS to get validation.
func NewStore(catalog Catalog) *Store {
	s := &Store{
		units:         make(map[core.UnitID]tactics.Unit, len(catalog.Units)),
		strategies:    make(map[core.StrategyID]tactics.Strategy, len(catalog.Strategies)),
		modifiers:     make(map[tactics.ModifierCategory]map[string]tactics.EnvironmentModifier),
		affinities:    make(map[core.UnitID]tactics.AffinityProfile, len(catalog.Affinities)),
		modifierLists: make(map[tactics.ModifierCategory][]tactics.EnvironmentModifier),
		maxAdjustment: catalog.MaxAdjustment,
	}

	for _, unit := range catalog.Units {
		s.units[unit.ID] = unit
	}
	s.unitList = append(s.unitList, catalog.Units...)
	sort.Slice(s.unitList, func(i, j int) bool { return s.unitList[i].ID < s.unitList[j].ID })

	for _, strategy := range catalog.Strategies {
		s.strategies[strategy.ID] = strategy
	}
	s.strategyList = append(s.strategyList, catalog.Strategies...)
	sort.Slice(s.strategyList, func(i, j int) bool { return s.strategyList[i].ID < s.strategyList[j].ID })

	for _, category := range tactics.ModifierCategories() {
		modifiers := catalog.Modifiers[category]
		byID := make(map[string]tactics.EnvironmentModifier, len(modifiers))
		for _, modifier := range modifiers {
			byID[modifier.ID.String()] = modifier
		}
		s.modifiers[category] = byID

		list := append([]tactics.EnvironmentModifier(nil), modifiers...)
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
		s.modifierLists[category] = list
	}

	for _, profile := range catalog.Affinities {
		s.affinities[profile.UnitID] = profile
	}

	s.fingerprint = fingerprint(s)
	return s
}

// fingerprint digests the dataset in canonical order, so the same data
// produces the same fingerprint regardless of file layout or load order.
func fingerprint(s *Store) core.DatasetHash {
	affinities := make([]tactics.AffinityProfile, 0, len(s.affinities))
	for _, unit := range s.unitList {
		if profile, ok := s.affinities[unit.ID]; ok {
			affinities = append(affinities, profile)
		}
	}

	payload := struct {
		Units         []tactics.Unit                `json:"units"`
		Strategies    []tactics.Strategy            `json:"strategies"`
		Terrain       []tactics.EnvironmentModifier `json:"terrain"`
		Weather       []tactics.EnvironmentModifier `json:"weather"`
		TroopStatus   []tactics.EnvironmentModifier `json:"troop_status"`
		Affinities    []tactics.AffinityProfile     `json:"affinities"`
		MaxAdjustment float64                       `json:"max_adjustment"`
	}{
		Units:         s.unitList,
		Strategies:    s.strategyList,
		Terrain:       s.modifierLists[tactics.TerrainModifiers],
		Weather:       s.modifierLists[tactics.WeatherModifiers],
		TroopStatus:   s.modifierLists[tactics.TroopStatusModifiers],
		Affinities:    affinities,
		MaxAdjustment: s.maxAdjustment,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return core.NewDatasetHash(data)
}

// Unit returns one unit by ID.
func (s *Store) Unit(id core.UnitID) (tactics.Unit, error) {
	unit, ok := s.units[id]
	if !ok {
		return tactics.Unit{}, fmt.Errorf("%w %q", core.ErrUnitNotFound, id)
	}
	return unit, nil
}

// Strategy returns one strategy by ID.
func (s *Store) Strategy(id core.StrategyID) (tactics.Strategy, error) {
	strategy, ok := s.strategies[id]
	if !ok {
		return tactics.Strategy{}, fmt.Errorf("%w %q", core.ErrStrategyNotFound, id)
	}
	return strategy, nil
}

// Modifier returns one environment modifier by category and ID.
func (s *Store) Modifier(category tactics.ModifierCategory, id string) (tactics.EnvironmentModifier, error) {
	modifier, ok := s.modifiers[category][id]
	if !ok {
		return tactics.EnvironmentModifier{}, fmt.Errorf("%w: %s %q", core.ErrModifierNotFound, category, id)
	}
	return modifier, nil
}

// Affinity returns a unit's affinity profile, neutral when the dataset has
// none for it.
func (s *Store) Affinity(id core.UnitID) tactics.AffinityProfile {
	if profile, ok := s.affinities[id]; ok {
		return profile
	}
	return tactics.NewNeutralProfile(id)
}

// MaxAdjustment is the dataset's bound on the affinity distance adjustment.
func (s *Store) MaxAdjustment() float64 {
	return s.maxAdjustment
}

// Fingerprint identifies the loaded dataset in logs and diagnostics.
func (s *Store) Fingerprint() core.DatasetHash {
	return s.fingerprint
}

// Units lists every unit in ascending ID order.
func (s *Store) Units() []tactics.Unit {
	return append([]tactics.Unit(nil), s.unitList...)
}

// Strategies lists every strategy in ascending ID order.
func (s *Store) Strategies() []tactics.Strategy {
	return append([]tactics.Strategy(nil), s.strategyList...)
}

// Modifiers lists one category's modifiers in ascending ID order.
func (s *Store) Modifiers(category tactics.ModifierCategory) []tactics.EnvironmentModifier {
	return append([]tactics.EnvironmentModifier(nil), s.modifierLists[category]...)
}
