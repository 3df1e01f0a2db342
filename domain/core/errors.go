package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors (store-level lookups)
	ErrNotFound         = errors.New("resource not found")
	ErrUnitNotFound     = fmt.Errorf("%w: unit", ErrNotFound)
	ErrStrategyNotFound = fmt.Errorf("%w: strategy", ErrNotFound)
	ErrModifierNotFound = fmt.Errorf("%w: modifier", ErrNotFound)

	// Request validation errors
	ErrEmptySelection    = errors.New("no units selected")
	ErrUnknownIdentifier = errors.New("unknown identifier")

	// Reference data errors
	ErrMalformedData = errors.New("malformed reference data")
)

// IdentifierCategory names the kind of identifier a request referenced.
type IdentifierCategory string

const (
	CategoryUnit        IdentifierCategory = "unit"
	CategoryStrategy    IdentifierCategory = "strategy"
	CategoryTerrain     IdentifierCategory = "terrain"
	CategoryWeather     IdentifierCategory = "weather"
	CategoryTroopStatus IdentifierCategory = "troop_status"
)

// UnknownIdentifierError reports a request identifier that does not exist in
// the reference data. It carries the category so callers can report exactly
// which selection was wrong.
type UnknownIdentifierError struct {
	Category IdentifierCategory
	ID       string
}

func (e *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("unknown identifier: %s %q", e.Category, e.ID)
}

func (e *UnknownIdentifierError) Unwrap() error {
	return ErrUnknownIdentifier
}

// NewUnknownIdentifierError builds an UnknownIdentifierError for a category/id pair.
func NewUnknownIdentifierError(category IdentifierCategory, id string) error {
	return &UnknownIdentifierError{Category: category, ID: id}
}

// MalformedDataError reports reference data that failed structural or
// semantic validation at load time.
type MalformedDataError struct {
	Source string // file or section the defect was found in
	Reason string
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("malformed reference data in %s: %s", e.Source, e.Reason)
}

func (e *MalformedDataError) Unwrap() error {
	return ErrMalformedData
}

// NewMalformedDataError builds a MalformedDataError for a source/reason pair.
func NewMalformedDataError(source, reason string) error {
	return &MalformedDataError{Source: source, Reason: reason}
}

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewEmptySelectionError() error {
	return fmt.Errorf("%w: at least one unit is required", ErrEmptySelection)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsEmptySelectionError(err error) bool {
	return errors.Is(err, ErrEmptySelection)
}

func IsUnknownIdentifierError(err error) bool {
	return errors.Is(err, ErrUnknownIdentifier)
}

func IsMalformedDataError(err error) bool {
	return errors.Is(err, ErrMalformedData)
}

// AsUnknownIdentifier extracts the typed error when err is (or wraps) an
// UnknownIdentifierError.
func AsUnknownIdentifier(err error) (*UnknownIdentifierError, bool) {
	var uie *UnknownIdentifierError
	if errors.As(err, &uie) {
		return uie, true
	}
	return nil, false
}
