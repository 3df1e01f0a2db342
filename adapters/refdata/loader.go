package refdata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"

	"waradvisor/domain/core"
	"waradvisor/domain/tactics"
)

// Load reads a dataset from a directory on disk and returns a validated store.
func Load(dir string) (*Store, error) {
	return LoadFS(os.DirFS(dir), ".")
}

// LoadFS reads a dataset from a directory inside any fs.FS and returns a
// validated store. Every structural or semantic defect fails with a
// malformed-data error naming the file and the reason.
func LoadFS(fsys fs.FS, dir string) (*Store, error) {
	catalog, err := parseCatalog(fsys, dir)
	if err != nil {
		return nil, err
	}
	if err := validateCatalog(catalog); err != nil {
		return nil, err
	}
	return NewStore(*catalog), nil
}

// Raw file shapes. Parsing is strict: unknown fields in units and
// strategies are load failures, and attribute vectors must name all eight
// attributes explicitly.

type vectorDoc map[string]float64

// toVector converts a raw attribute map, rejecting unknown keys and
// missing attributes.
func (d vectorDoc) toVector(source, owner string) (tactics.AttributeVector, error) {
	var v tactics.AttributeVector
	for key, value := range d {
		attr, err := tactics.ParseAttribute(key)
		if err != nil {
			return v, core.NewMalformedDataError(source, fmt.Sprintf("%s: %v", owner, err))
		}
		v.Set(attr, value)
	}
	for _, attr := range tactics.Attributes() {
		if _, ok := d[string(attr)]; !ok {
			return v, core.NewMalformedDataError(source,
				fmt.Sprintf("%s: missing attribute %q", owner, attr))
		}
	}
	return v, nil
}

type unitEntry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Attributes  vectorDoc `json:"attributes"`
}

type unitsDocument struct {
	Units []unitEntry `json:"units"`
}

type strategyEntry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Ideal       vectorDoc `json:"ideal_attributes"`
}

type strategiesDocument struct {
	Strategies []strategyEntry `json:"strategies"`
}

type modifierEntry struct {
	ID      string                    `json:"id"`
	Name    string                    `json:"name"`
	Effects map[string]tactics.Effect `json:"effects"`
}

type modifiersDocument struct {
	Terrain     []modifierEntry `json:"terrain"`
	Weather     []modifierEntry `json:"weather"`
	TroopStatus []modifierEntry `json:"troop_status"`
}

type affinityEntry struct {
	UnitID  string                   `json:"unit_id"`
	Terrain map[string]float64       `json:"terrain"`
	Weather map[string]float64       `json:"weather"`
	Weights *tactics.AffinityWeights `json:"weights"`
}

type affinitiesDocument struct {
	MaxAdjustment *float64        `json:"max_adjustment"`
	Affinities    []affinityEntry `json:"affinities"`
}

func parseCatalog(fsys fs.FS, dir string) (*Catalog, error) {
	var units unitsDocument
	if err := readStrictJSON(fsys, dir, unitsFile, &units); err != nil {
		return nil, err
	}

	var strategies strategiesDocument
	if err := readStrictJSON(fsys, dir, strategiesFile, &strategies); err != nil {
		return nil, err
	}

	var modifiers modifiersDocument
	if err := readStrictJSON(fsys, dir, modifiersFile, &modifiers); err != nil {
		return nil, err
	}

	var affinities affinitiesDocument
	if err := readStrictJSON(fsys, dir, affinitiesFile, &affinities); err != nil {
		return nil, err
	}

	catalogUnits := make([]tactics.Unit, 0, len(units.Units))
	for _, entry := range units.Units {
		attrs, err := entry.Attributes.toVector(unitsFile, fmt.Sprintf("unit %q", entry.ID))
		if err != nil {
			return nil, err
		}
		catalogUnits = append(catalogUnits, tactics.Unit{
			ID:          core.UnitID(entry.ID),
			Name:        entry.Name,
			Description: entry.Description,
			Attributes:  attrs,
		})
	}

	catalogStrategies := make([]tactics.Strategy, 0, len(strategies.Strategies))
	for _, entry := range strategies.Strategies {
		ideal, err := entry.Ideal.toVector(strategiesFile, fmt.Sprintf("strategy %q", entry.ID))
		if err != nil {
			return nil, err
		}
		catalogStrategies = append(catalogStrategies, tactics.Strategy{
			ID:          core.StrategyID(entry.ID),
			Name:        entry.Name,
			Description: entry.Description,
			Ideal:       ideal,
		})
	}

	catalog := &Catalog{
		Units:      catalogUnits,
		Strategies: catalogStrategies,
		Modifiers: map[tactics.ModifierCategory][]tactics.EnvironmentModifier{
			tactics.TerrainModifiers:     convertModifiers(tactics.TerrainModifiers, modifiers.Terrain),
			tactics.WeatherModifiers:     convertModifiers(tactics.WeatherModifiers, modifiers.Weather),
			tactics.TroopStatusModifiers: convertModifiers(tactics.TroopStatusModifiers, modifiers.TroopStatus),
		},
		MaxAdjustment: tactics.DefaultMaxAdjustment,
	}
	if affinities.MaxAdjustment != nil {
		catalog.MaxAdjustment = *affinities.MaxAdjustment
	}

	for _, entry := range affinities.Affinities {
		profile := tactics.AffinityProfile{
			UnitID:  core.UnitID(entry.UnitID),
			Terrain: make(map[core.TerrainID]float64, len(entry.Terrain)),
			Weather: make(map[core.WeatherID]float64, len(entry.Weather)),
			Weights: tactics.DefaultAffinityWeights(),
		}
		for terrain, value := range entry.Terrain {
			profile.Terrain[core.TerrainID(terrain)] = value
		}
		for weather, value := range entry.Weather {
			profile.Weather[core.WeatherID(weather)] = value
		}
		if entry.Weights != nil {
			profile.Weights = *entry.Weights
		}
		catalog.Affinities = append(catalog.Affinities, profile)
	}

	return catalog, nil
}

func convertModifiers(category tactics.ModifierCategory, entries []modifierEntry) []tactics.EnvironmentModifier {
	out := make([]tactics.EnvironmentModifier, 0, len(entries))
	for _, entry := range entries {
		out = append(out, tactics.EnvironmentModifier{
			ID:       core.ID(entry.ID),
			Name:     entry.Name,
			Category: category,
			Effects:  entry.Effects,
		})
	}
	return out
}

func readStrictJSON(fsys fs.FS, dir, name string, v interface{}) error {
	data, err := fs.ReadFile(fsys, path.Join(dir, name))
	if err != nil {
		return core.NewMalformedDataError(name, fmt.Sprintf("read failed: %v", err))
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return core.NewMalformedDataError(name, fmt.Sprintf("parse failed: %v", err))
	}
	return nil
}
