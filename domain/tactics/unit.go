package tactics

import "waradvisor/domain/core"

// Unit is an army unit type from the reference data.
type Unit struct {
	ID          core.UnitID     `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Attributes  AttributeVector `json:"attributes"`
}

// Strategy is a military strategy with the attribute profile it works best with.
type Strategy struct {
	ID          core.StrategyID `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Ideal       AttributeVector `json:"ideal_attributes"`
}
