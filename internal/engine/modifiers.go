package engine

import (
	"waradvisor/domain/core"
	"waradvisor/domain/tactics"
)

// ApplyModifiers resolves the three environment selections and applies them
// to an aggregated profile in the fixed order terrain, weather, troop status.
// Values are clamped to [0, 1] once, after the final modifier.
func (a *Advisor) ApplyModifiers(profile tactics.AttributeVector, terrain core.TerrainID, weather core.WeatherID, status core.TroopStatusID) (tactics.AttributeVector, []tactics.CriticalWarning, error) {
	modifiers, err := a.resolveModifiers(terrain, weather, status)
	if err != nil {
		return tactics.AttributeVector{}, nil, err
	}
	modified, warnings := applyModifierSequence(profile, modifiers)
	return modified, warnings, nil
}

// resolveModifiers looks up one modifier per category, in application order.
func (a *Advisor) resolveModifiers(terrain core.TerrainID, weather core.WeatherID, status core.TroopStatusID) ([3]tactics.EnvironmentModifier, error) {
	var resolved [3]tactics.EnvironmentModifier
	ids := [3]string{terrain.String(), weather.String(), status.String()}
	for i, category := range tactics.ModifierCategories() {
		modifier, err := a.data.Modifier(category, ids[i])
		if err != nil {
			if core.IsNotFoundError(err) {
				return resolved, core.NewUnknownIdentifierError(category.IdentifierCategory(), ids[i])
			}
			return resolved, err
		}
		resolved[i] = modifier
	}
	return resolved, nil
}

// applyModifierSequence applies resolved modifiers to an aggregated profile.
// Within one modifier the ALL effect runs before the per-attribute effects,
// and attributes are visited in canonical order. CRITICAL effects gate on the
// baseline profile, not the running value: an attribute the army was already
// weak in gets halved no matter what earlier modifiers did to it, and two
// CRITICAL effects on the same attribute compound to a quarter.
func applyModifierSequence(baseline tactics.AttributeVector, modifiers [3]tactics.EnvironmentModifier) (tactics.AttributeVector, []tactics.CriticalWarning) {
	current := baseline
	var warnings []tactics.CriticalWarning

	for _, modifier := range modifiers {
		if all, ok := modifier.AllEffect(); ok {
			for _, attr := range tactics.Attributes() {
				current.Set(attr, all.Apply(current.Get(attr)))
			}
		}
		for _, attr := range tactics.Attributes() {
			effect, ok := modifier.EffectFor(attr)
			if !ok {
				continue
			}
			if effect.Critical {
				base := baseline.Get(attr)
				if base < tactics.CriticalThreshold {
					current.Set(attr, current.Get(attr)*tactics.CriticalPenalty)
					warnings = append(warnings, tactics.CriticalWarning{
						ModifierCategory: modifier.Category,
						ModifierID:       modifier.ID.String(),
						ModifierName:     modifier.Name,
						Attribute:        attr,
						Baseline:         base,
						Threshold:        tactics.CriticalThreshold,
						Penalty:          tactics.CriticalPenalty,
					})
				}
				continue
			}
			current.Set(attr, effect.Apply(current.Get(attr)))
		}
	}
	return current.Clamped(), warnings
}
