// Package app wires the reference data store, the scoring engine and the
// report writers behind one service consumed by the web server and the CLI.
package app

import (
	"fmt"
	"io"

	"waradvisor/adapters/report"
	"waradvisor/domain/tactics"
	"waradvisor/internal/engine"
	"waradvisor/ports"
)

// AdvisorService is the application facade over the advisory pipeline.
type AdvisorService struct {
	data    ports.ReferenceData
	advisor *engine.Advisor
}

// NewAdvisorService creates the service over a reference dataset.
func NewAdvisorService(data ports.ReferenceData) *AdvisorService {
	return &AdvisorService{
		data:    data,
		advisor: engine.New(data),
	}
}

// UnitOption is one selectable unit for pickers.
type UnitOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ContextOption is one selectable terrain, weather or troop status entry.
type ContextOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CatalogOptions lists everything a request can select from, in stable
// ID order.
type CatalogOptions struct {
	Units       []UnitOption    `json:"units"`
	Terrains    []ContextOption `json:"terrains"`
	Weather     []ContextOption `json:"weather"`
	TroopStatus []ContextOption `json:"troop_status"`
}

// Options returns the selectable catalog for the frontend pickers and the
// CLI options tables.
func (s *AdvisorService) Options() CatalogOptions {
	units := s.data.Units()
	opts := CatalogOptions{
		Units:       make([]UnitOption, 0, len(units)),
		Terrains:    contextOptions(s.data.Modifiers(tactics.TerrainModifiers)),
		Weather:     contextOptions(s.data.Modifiers(tactics.WeatherModifiers)),
		TroopStatus: contextOptions(s.data.Modifiers(tactics.TroopStatusModifiers)),
	}
	for _, unit := range units {
		opts.Units = append(opts.Units, UnitOption{
			ID:          unit.ID.String(),
			Name:        unit.Name,
			Description: unit.Description,
		})
	}
	return opts
}

func contextOptions(modifiers []tactics.EnvironmentModifier) []ContextOption {
	opts := make([]ContextOption, 0, len(modifiers))
	for _, m := range modifiers {
		opts = append(opts, ContextOption{ID: m.ID.String(), Name: m.Name})
	}
	return opts
}

// Calculate runs the advisory pipeline for one request.
func (s *AdvisorService) Calculate(req tactics.CalculationRequest) (*tactics.CalculationResult, error) {
	return s.advisor.Calculate(req)
}

// Briefing stamps a result into a report-ready briefing, resolving unit
// display names from the catalog.
func (s *AdvisorService) Briefing(result *tactics.CalculationResult) report.Briefing {
	names := make([]string, len(result.Units))
	for i, id := range result.Units {
		if unit, err := s.data.Unit(id); err == nil {
			names[i] = unit.Name
		} else {
			names[i] = id.String()
		}
	}
	return report.NewBriefing(result, names)
}

// WriteTextBriefing renders a result as a text briefing.
func (s *AdvisorService) WriteTextBriefing(w io.Writer, result *tactics.CalculationResult) error {
	return s.Briefing(result).WriteText(w)
}

// AppendTextBriefing appends a result briefing to a report file.
func (s *AdvisorService) AppendTextBriefing(path string, result *tactics.CalculationResult) error {
	return s.Briefing(result).AppendText(path)
}

// WriteExcelBriefing saves a result as an XLSX workbook at path.
func (s *AdvisorService) WriteExcelBriefing(path string, result *tactics.CalculationResult) error {
	return s.Briefing(result).WriteExcel(path)
}

// ExcelBriefing renders the XLSX workbook in memory and names the download
// after its report ID.
func (s *AdvisorService) ExcelBriefing(result *tactics.CalculationResult) ([]byte, string, error) {
	briefing := s.Briefing(result)
	data, err := briefing.ExcelBytes()
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("war_briefing_%s.xlsx", briefing.ReportID), nil
}
