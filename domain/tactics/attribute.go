// Package tactics holds the core domain model for the strategy advisor:
// attribute vectors, units, strategies, environment modifiers, affinities
// and the calculation request/result types.
package tactics

import "fmt"

// Attribute names one of the eight combat dimensions every unit and
// strategy is described in.
type Attribute string

const (
	AttrAttack       Attribute = "attack"
	AttrDefense      Attribute = "defense"
	AttrMobility     Attribute = "mobility"
	AttrStealth      Attribute = "stealth"
	AttrDiscipline   Attribute = "discipline"
	AttrTerrainAdapt Attribute = "terrain_adapt"
	AttrRangePower   Attribute = "range_power"
	AttrSupport      Attribute = "support"
)

// NumAttributes is the dimensionality of the attribute space.
const NumAttributes = 8

// Attributes returns the eight attributes in canonical order. All iteration
// over attributes goes through this order so results stay deterministic.
func Attributes() []Attribute {
	return []Attribute{
		AttrAttack,
		AttrDefense,
		AttrMobility,
		AttrStealth,
		AttrDiscipline,
		AttrTerrainAdapt,
		AttrRangePower,
		AttrSupport,
	}
}

// ParseAttribute parses a string into an Attribute
func ParseAttribute(s string) (Attribute, error) {
	switch Attribute(s) {
	case AttrAttack, AttrDefense, AttrMobility, AttrStealth,
		AttrDiscipline, AttrTerrainAdapt, AttrRangePower, AttrSupport:
		return Attribute(s), nil
	}
	return "", fmt.Errorf("unknown attribute %q", s)
}
