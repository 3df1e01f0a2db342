package tactics

import (
	"encoding/json"
	"fmt"

	"waradvisor/domain/core"
)

// ModifierCategory names one of the three environmental modifier groups.
type ModifierCategory string

const (
	TerrainModifiers     ModifierCategory = "terrain"
	WeatherModifiers     ModifierCategory = "weather"
	TroopStatusModifiers ModifierCategory = "troop_status"
)

// ModifierCategories returns the categories in application order:
// terrain first, then weather, then troop status.
func ModifierCategories() []ModifierCategory {
	return []ModifierCategory{TerrainModifiers, WeatherModifiers, TroopStatusModifiers}
}

// IdentifierCategory maps the modifier category onto the identifier category
// used in error reporting.
func (c ModifierCategory) IdentifierCategory() core.IdentifierCategory {
	switch c {
	case TerrainModifiers:
		return core.CategoryTerrain
	case WeatherModifiers:
		return core.CategoryWeather
	case TroopStatusModifiers:
		return core.CategoryTroopStatus
	}
	return core.IdentifierCategory(c)
}

// AllAttributesKey is the pseudo-attribute key in modifier effect maps that
// applies an effect to every attribute. Only troop status modifiers use it.
const AllAttributesKey = "ALL"

// criticalMarker is the JSON encoding of a CRITICAL effect.
const criticalMarker = "CRITICAL"

const (
	// CriticalThreshold is the baseline value below which a CRITICAL effect
	// triggers its penalty.
	CriticalThreshold = 0.5
	// CriticalPenalty is the factor applied to the working value when a
	// CRITICAL effect triggers.
	CriticalPenalty = 0.5
)

// EffectOp distinguishes the two numeric adjustment forms.
type EffectOp string

const (
	OpScale  EffectOp = "scale"  // multiply the working value
	OpOffset EffectOp = "offset" // add to the working value
)

// Effect is a single adjustment an environment modifier applies to one
// attribute: a multiplicative scale, an additive offset, or the CRITICAL
// marker. JSON encodings: a bare number is a scale, the string "CRITICAL"
// is the marker, and {"mul": x} / {"add": x} are the explicit forms.
type Effect struct {
	Op       EffectOp
	Value    float64
	Critical bool
}

// Scale builds a multiplicative effect.
func Scale(factor float64) Effect {
	return Effect{Op: OpScale, Value: factor}
}

// Offset builds an additive effect.
func Offset(delta float64) Effect {
	return Effect{Op: OpOffset, Value: delta}
}

// CriticalEffect builds the CRITICAL marker effect.
func CriticalEffect() Effect {
	return Effect{Critical: true}
}

// Apply returns the working value after this effect. CRITICAL effects are
// handled by the caller against the baseline and never reach Apply.
func (e Effect) Apply(value float64) float64 {
	if e.Critical {
		return value
	}
	if e.Op == OpOffset {
		return value + e.Value
	}
	return value * e.Value
}

// UnmarshalJSON accepts the three wire forms of an effect.
func (e *Effect) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*e = Scale(num)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != criticalMarker {
			return fmt.Errorf("unknown effect marker %q", s)
		}
		*e = CriticalEffect()
		return nil
	}

	var obj struct {
		Mul *float64 `json:"mul"`
		Add *float64 `json:"add"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid effect: %s", string(data))
	}
	switch {
	case obj.Mul != nil && obj.Add != nil:
		return fmt.Errorf("effect cannot be both mul and add")
	case obj.Mul != nil:
		*e = Scale(*obj.Mul)
	case obj.Add != nil:
		*e = Offset(*obj.Add)
	default:
		return fmt.Errorf("effect object needs mul or add")
	}
	return nil
}

// MarshalJSON emits the compact wire form.
func (e Effect) MarshalJSON() ([]byte, error) {
	if e.Critical {
		return json.Marshal(criticalMarker)
	}
	if e.Op == OpOffset {
		return json.Marshal(map[string]float64{"add": e.Value})
	}
	return json.Marshal(e.Value)
}

// EnvironmentModifier adjusts an army profile for one environmental
// condition. Effects are keyed by attribute name, plus the optional
// AllAttributesKey entry.
type EnvironmentModifier struct {
	ID       core.ID           `json:"id"`
	Name     string            `json:"name"`
	Category ModifierCategory  `json:"category"`
	Effects  map[string]Effect `json:"effects"`
}

// EffectFor returns the effect registered for a specific attribute.
func (m EnvironmentModifier) EffectFor(attr Attribute) (Effect, bool) {
	e, ok := m.Effects[string(attr)]
	return e, ok
}

// AllEffect returns the effect registered under the ALL key.
func (m EnvironmentModifier) AllEffect() (Effect, bool) {
	e, ok := m.Effects[AllAttributesKey]
	return e, ok
}

// CriticalWarning records one triggered CRITICAL penalty: which modifier
// fired, on which attribute, and the baseline that tripped the threshold.
type CriticalWarning struct {
	ModifierCategory ModifierCategory `json:"modifier_category"`
	ModifierID       string           `json:"modifier_id"`
	ModifierName     string           `json:"modifier_name"`
	Attribute        Attribute        `json:"attribute"`
	Baseline         float64          `json:"baseline"`
	Threshold        float64          `json:"threshold"`
	Penalty          float64          `json:"penalty"`
}

// String renders the warning for logs and reports.
func (w CriticalWarning) String() string {
	return fmt.Sprintf("%s: %s %.2f below %.2f threshold, value halved",
		w.ModifierName, w.Attribute, w.Baseline, w.Threshold)
}
