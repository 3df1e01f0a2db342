package engine

import (
	"fmt"
	"math"
	"sort"
	"testing"

	"waradvisor/domain/core"
	"waradvisor/domain/tactics"
)

// stubData is a hand-built reference dataset small enough to reason about
// exactly. It implements ports.ReferenceData.
type stubData struct {
	units      map[core.UnitID]tactics.Unit
	strategies []tactics.Strategy
	modifiers  map[tactics.ModifierCategory]map[string]tactics.EnvironmentModifier
	affinities map[core.UnitID]tactics.AffinityProfile
	maxAdjust  float64
}

func (s *stubData) Unit(id core.UnitID) (tactics.Unit, error) {
	u, ok := s.units[id]
	if !ok {
		return tactics.Unit{}, fmt.Errorf("%w %q", core.ErrUnitNotFound, id)
	}
	return u, nil
}

func (s *stubData) Strategy(id core.StrategyID) (tactics.Strategy, error) {
	for _, st := range s.strategies {
		if st.ID == id {
			return st, nil
		}
	}
	return tactics.Strategy{}, fmt.Errorf("%w %q", core.ErrStrategyNotFound, id)
}

func (s *stubData) Modifier(category tactics.ModifierCategory, id string) (tactics.EnvironmentModifier, error) {
	m, ok := s.modifiers[category][id]
	if !ok {
		return tactics.EnvironmentModifier{}, fmt.Errorf("%w %s %q", core.ErrModifierNotFound, category, id)
	}
	return m, nil
}

func (s *stubData) Affinity(id core.UnitID) tactics.AffinityProfile {
	if p, ok := s.affinities[id]; ok {
		return p
	}
	return tactics.NewNeutralProfile(id)
}

func (s *stubData) MaxAdjustment() float64 { return s.maxAdjust }

func (s *stubData) Units() []tactics.Unit {
	out := make([]tactics.Unit, 0, len(s.units))
	for _, u := range s.units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *stubData) Strategies() []tactics.Strategy {
	out := append([]tactics.Strategy(nil), s.strategies...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *stubData) Modifiers(category tactics.ModifierCategory) []tactics.EnvironmentModifier {
	out := make([]tactics.EnvironmentModifier, 0, len(s.modifiers[category]))
	for _, m := range s.modifiers[category] {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// uniform builds a vector with every attribute set to the same value.
func uniform(v float64) tactics.AttributeVector {
	var vec tactics.AttributeVector
	for _, attr := range tactics.Attributes() {
		vec.Set(attr, v)
	}
	return vec
}

func stubModifier(category tactics.ModifierCategory, id, name string, effects map[string]tactics.Effect) tactics.EnvironmentModifier {
	return tactics.EnvironmentModifier{
		ID:       core.ID(id),
		Name:     name,
		Category: category,
		Effects:  effects,
	}
}

// newStubData builds the fixture used across the engine tests:
//   - pikes: every attribute 0.6, at home on flat ground in calm weather
//   - slings: every attribute 0.2, no affinity data
//   - hounds: mixed attributes, terrain-heavy affinity weights
func newStubData() *stubData {
	pikes := tactics.Unit{ID: "pikes", Name: "Pike Wall", Attributes: uniform(0.6)}
	slings := tactics.Unit{ID: "slings", Name: "Sling Levies", Attributes: uniform(0.2)}
	hounds := tactics.Unit{ID: "hounds", Name: "War Hounds", Attributes: tactics.AttributeVector{
		Attack: 0.8, Defense: 0.6, Mobility: 0.4, Stealth: 0.2,
		Discipline: 0.9, TerrainAdapt: 0.1, RangePower: 0.7, Support: 0.3,
	}}

	return &stubData{
		units: map[core.UnitID]tactics.Unit{
			pikes.ID: pikes, slings.ID: slings, hounds.ID: hounds,
		},
		strategies: []tactics.Strategy{
			{ID: "close", Name: "Close Order", Ideal: uniform(0.6)},
			{ID: "far", Name: "Loose Order", Ideal: uniform(0.2)},
		},
		modifiers: map[tactics.ModifierCategory]map[string]tactics.EnvironmentModifier{
			tactics.TerrainModifiers: {
				"flat": stubModifier(tactics.TerrainModifiers, "flat", "Flat Ground",
					map[string]tactics.Effect{"mobility": tactics.Scale(1.0)}),
				"dunes": stubModifier(tactics.TerrainModifiers, "dunes", "Dunes",
					map[string]tactics.Effect{"attack": tactics.Offset(0.2)}),
				"crags": stubModifier(tactics.TerrainModifiers, "crags", "Crags",
					map[string]tactics.Effect{"mobility": tactics.CriticalEffect(), "defense": tactics.Scale(1.2)}),
				"shrine": stubModifier(tactics.TerrainModifiers, "shrine", "Shrine Grounds",
					map[string]tactics.Effect{"discipline": tactics.Offset(0.3)}),
				"bog": stubModifier(tactics.TerrainModifiers, "bog", "Bogland",
					map[string]tactics.Effect{"discipline": tactics.Scale(0.5)}),
				"chasm": stubModifier(tactics.TerrainModifiers, "chasm", "Chasm Edge",
					map[string]tactics.Effect{"support": tactics.Offset(-0.9)}),
			},
			tactics.WeatherModifiers: {
				"calm": stubModifier(tactics.WeatherModifiers, "calm", "Calm",
					map[string]tactics.Effect{"discipline": tactics.Scale(1.0)}),
				"mist": stubModifier(tactics.WeatherModifiers, "mist", "Mist",
					map[string]tactics.Effect{"attack": tactics.Scale(0.5)}),
				"gale": stubModifier(tactics.WeatherModifiers, "gale", "Gale",
					map[string]tactics.Effect{"discipline": tactics.CriticalEffect(), "range_power": tactics.Scale(0.5)}),
				"haze": stubModifier(tactics.WeatherModifiers, "haze", "Heat Haze",
					map[string]tactics.Effect{"stealth": tactics.Scale(1.5)}),
			},
			tactics.TroopStatusModifiers: {
				"ready": stubModifier(tactics.TroopStatusModifiers, "ready", "Ready",
					map[string]tactics.Effect{tactics.AllAttributesKey: tactics.Scale(1.0)}),
				"spent": stubModifier(tactics.TroopStatusModifiers, "spent", "Spent",
					map[string]tactics.Effect{tactics.AllAttributesKey: tactics.Scale(0.8), "discipline": tactics.CriticalEffect()}),
				"keen": stubModifier(tactics.TroopStatusModifiers, "keen", "Keen",
					map[string]tactics.Effect{tactics.AllAttributesKey: tactics.Scale(1.5), "attack": tactics.Offset(0.1)}),
			},
		},
		affinities: map[core.UnitID]tactics.AffinityProfile{
			"pikes": {
				UnitID:  "pikes",
				Terrain: map[core.TerrainID]float64{"flat": 1.0, "crags": 0.0},
				Weather: map[core.WeatherID]float64{"calm": 1.0, "gale": 0.0},
				Weights: tactics.DefaultAffinityWeights(),
			},
			"hounds": {
				UnitID:  "hounds",
				Terrain: map[core.TerrainID]float64{"flat": 0.8},
				Weather: map[core.WeatherID]float64{},
				Weights: tactics.AffinityWeights{Terrain: 0.75, Weather: 0.25},
			},
		},
		maxAdjust: 0.1,
	}
}

func newStubAdvisor() *Advisor {
	return New(newStubData())
}

// expectAttr fails the test when an attribute is off by more than 1e-9.
func expectAttr(t *testing.T, v tactics.AttributeVector, attr tactics.Attribute, want float64) {
	t.Helper()
	got := v.Get(attr)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected %s=%.6f, got %.6f", attr, want, got)
	}
}
