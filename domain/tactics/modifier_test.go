package tactics

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestEffectUnmarshalForms tests the three wire forms of an effect
func TestEffectUnmarshalForms(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Effect
	}{
		{"bare number is a scale", `0.8`, Scale(0.8)},
		{"integer scale", `2`, Scale(2)},
		{"critical marker", `"CRITICAL"`, CriticalEffect()},
		{"explicit mul", `{"mul": 1.2}`, Scale(1.2)},
		{"explicit add", `{"add": -0.05}`, Offset(-0.05)},
	}

	for _, test := range tests {
		var e Effect
		if err := json.Unmarshal([]byte(test.input), &e); err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if e != test.expected {
			t.Errorf("%s: got %+v, want %+v", test.name, e, test.expected)
		}
	}
}

// TestEffectUnmarshalRejections tests malformed effect encodings
func TestEffectUnmarshalRejections(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"lowercase marker", `"critical"`, "unknown effect marker"},
		{"both mul and add", `{"mul": 1.1, "add": 0.1}`, "cannot be both"},
		{"empty object", `{}`, "needs mul or add"},
		{"array", `[1, 2]`, "invalid effect"},
		{"null", `null`, "needs mul or add"},
	}

	for _, test := range tests {
		var e Effect
		err := json.Unmarshal([]byte(test.input), &e)
		if err == nil {
			t.Errorf("%s: expected error for %s", test.name, test.input)
			continue
		}
		if !strings.Contains(err.Error(), test.wantMsg) {
			t.Errorf("%s: error %q does not mention %q", test.name, err, test.wantMsg)
		}
	}
}

// TestEffectMarshal tests the compact wire encoding
func TestEffectMarshal(t *testing.T) {
	tests := []struct {
		effect   Effect
		expected string
	}{
		{Scale(1.2), `1.2`},
		{Offset(0.05), `{"add":0.05}`},
		{CriticalEffect(), `"CRITICAL"`},
	}

	for _, test := range tests {
		data, err := json.Marshal(test.effect)
		if err != nil {
			t.Errorf("Marshal(%+v) failed: %v", test.effect, err)
			continue
		}
		if string(data) != test.expected {
			t.Errorf("Marshal(%+v) = %s, want %s", test.effect, data, test.expected)
		}
	}
}

// TestEffectApply tests numeric application
func TestEffectApply(t *testing.T) {
	if got := Scale(1.2).Apply(0.5); got != 0.6 {
		t.Errorf("Scale apply = %v, want 0.6", got)
	}
	if got := Offset(-0.1).Apply(0.5); got != 0.4 {
		t.Errorf("Offset apply = %v, want 0.4", got)
	}
	// CRITICAL is resolved against the baseline by the engine, Apply is a
	// pass-through for it.
	if got := CriticalEffect().Apply(0.3); got != 0.3 {
		t.Errorf("Critical apply = %v, want 0.3", got)
	}
}

// TestModifierEffectLookups tests per-attribute and ALL lookups
func TestModifierEffectLookups(t *testing.T) {
	modifier := EnvironmentModifier{
		ID:       "exhausted",
		Name:     "Exhausted",
		Category: TroopStatusModifiers,
		Effects: map[string]Effect{
			AllAttributesKey:       Scale(0.75),
			string(AttrDiscipline): CriticalEffect(),
		},
	}

	all, ok := modifier.AllEffect()
	if !ok || all != Scale(0.75) {
		t.Errorf("AllEffect = %+v, %v", all, ok)
	}

	eff, ok := modifier.EffectFor(AttrDiscipline)
	if !ok || !eff.Critical {
		t.Errorf("EffectFor(discipline) = %+v, %v", eff, ok)
	}

	if _, ok := modifier.EffectFor(AttrAttack); ok {
		t.Error("Expected no effect for attack")
	}
}

// TestModifierCategories tests application order and error category mapping
func TestModifierCategories(t *testing.T) {
	categories := ModifierCategories()
	want := []ModifierCategory{TerrainModifiers, WeatherModifiers, TroopStatusModifiers}
	if len(categories) != len(want) {
		t.Fatalf("Expected %d categories, got %d", len(want), len(categories))
	}
	for i := range want {
		if categories[i] != want[i] {
			t.Errorf("Category %d = %s, want %s", i, categories[i], want[i])
		}
	}

	if TerrainModifiers.IdentifierCategory() != "terrain" {
		t.Error("Terrain identifier category mismatch")
	}
	if WeatherModifiers.IdentifierCategory() != "weather" {
		t.Error("Weather identifier category mismatch")
	}
	if TroopStatusModifiers.IdentifierCategory() != "troop_status" {
		t.Error("Troop status identifier category mismatch")
	}
}

// TestCriticalWarningString tests the report rendering of a warning
func TestCriticalWarningString(t *testing.T) {
	w := CriticalWarning{
		ModifierCategory: WeatherModifiers,
		ModifierID:       "storm",
		ModifierName:     "Thunderstorm",
		Attribute:        AttrDiscipline,
		Baseline:         0.367,
		Threshold:        CriticalThreshold,
		Penalty:          CriticalPenalty,
	}

	got := w.String()
	want := "Thunderstorm: discipline 0.37 below 0.50 threshold, value halved"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
