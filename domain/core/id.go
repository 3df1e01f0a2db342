package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types. Reference data identifiers are lowercase
// snake_case slugs ("assassins", "forest", "troop_status" ids and so on).
type (
	UnitID        ID
	StrategyID    ID
	TerrainID     ID
	WeatherID     ID
	TroopStatusID ID
)

// String conversions for domain IDs
func (id UnitID) String() string        { return ID(id).String() }
func (id StrategyID) String() string    { return ID(id).String() }
func (id TerrainID) String() string     { return ID(id).String() }
func (id WeatherID) String() string     { return ID(id).String() }
func (id TroopStatusID) String() string { return ID(id).String() }

// ParseUnitID parses a string into UnitID
func ParseUnitID(s string) (UnitID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("unit ID cannot be empty")
	}
	return UnitID(s), nil
}

// ParseStrategyID parses a string into StrategyID
func ParseStrategyID(s string) (StrategyID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("strategy ID cannot be empty")
	}
	return StrategyID(s), nil
}

// ParseTerrainID parses a string into TerrainID
func ParseTerrainID(s string) (TerrainID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("terrain ID cannot be empty")
	}
	return TerrainID(s), nil
}

// ParseWeatherID parses a string into WeatherID
func ParseWeatherID(s string) (WeatherID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("weather ID cannot be empty")
	}
	return WeatherID(s), nil
}

// ParseTroopStatusID parses a string into TroopStatusID
func ParseTroopStatusID(s string) (TroopStatusID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("troop status ID cannot be empty")
	}
	return TroopStatusID(s), nil
}
