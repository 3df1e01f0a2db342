package tactics

// AttributeVector is a point in the eight-dimensional attribute space.
// Reference data keeps every component in [0, 1]; intermediate values during
// modification may leave that range until the final clamp.
type AttributeVector struct {
	Attack       float64 `json:"attack"`
	Defense      float64 `json:"defense"`
	Mobility     float64 `json:"mobility"`
	Stealth      float64 `json:"stealth"`
	Discipline   float64 `json:"discipline"`
	TerrainAdapt float64 `json:"terrain_adapt"`
	RangePower   float64 `json:"range_power"`
	Support      float64 `json:"support"`
}

// Get returns the component for the given attribute.
func (v AttributeVector) Get(attr Attribute) float64 {
	switch attr {
	case AttrAttack:
		return v.Attack
	case AttrDefense:
		return v.Defense
	case AttrMobility:
		return v.Mobility
	case AttrStealth:
		return v.Stealth
	case AttrDiscipline:
		return v.Discipline
	case AttrTerrainAdapt:
		return v.TerrainAdapt
	case AttrRangePower:
		return v.RangePower
	case AttrSupport:
		return v.Support
	}
	return 0
}

// Set assigns the component for the given attribute.
func (v *AttributeVector) Set(attr Attribute, value float64) {
	switch attr {
	case AttrAttack:
		v.Attack = value
	case AttrDefense:
		v.Defense = value
	case AttrMobility:
		v.Mobility = value
	case AttrStealth:
		v.Stealth = value
	case AttrDiscipline:
		v.Discipline = value
	case AttrTerrainAdapt:
		v.TerrainAdapt = value
	case AttrRangePower:
		v.RangePower = value
	case AttrSupport:
		v.Support = value
	}
}

// Components returns the vector as a slice in canonical attribute order,
// ready for distance and mean computations.
func (v AttributeVector) Components() []float64 {
	return []float64{
		v.Attack,
		v.Defense,
		v.Mobility,
		v.Stealth,
		v.Discipline,
		v.TerrainAdapt,
		v.RangePower,
		v.Support,
	}
}

// Clamped returns a copy with every component clamped to [0, 1].
func (v AttributeVector) Clamped() AttributeVector {
	out := v
	for _, attr := range Attributes() {
		c := out.Get(attr)
		if c < 0 {
			out.Set(attr, 0)
		} else if c > 1 {
			out.Set(attr, 1)
		}
	}
	return out
}

// InUnitRange reports whether every component lies in [0, 1].
func (v AttributeVector) InUnitRange() bool {
	for _, attr := range Attributes() {
		c := v.Get(attr)
		if c < 0 || c > 1 {
			return false
		}
	}
	return true
}
