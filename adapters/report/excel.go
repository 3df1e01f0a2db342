package report

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"waradvisor/domain/tactics"
)

const (
	overviewSheet = "Briefing"
	rankingSheet  = "Ranking"
)

// WriteExcel saves the briefing as an XLSX workbook at path.
func (b Briefing) WriteExcel(path string) error {
	f, err := b.workbook()
	if err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// ExcelBytes renders the briefing workbook in memory, for HTTP downloads.
func (b Briefing) ExcelBytes() ([]byte, error) {
	f, err := b.workbook()
	if err != nil {
		return nil, err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (b Briefing) workbook() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", overviewSheet); err != nil {
		return nil, err
	}

	result := b.Result

	rows := [][]interface{}{
		{"War Advisor Briefing"},
		{"Report", b.ReportID.String()},
		{"Generated", b.Generated.Format(timestampLayout)},
		{},
		{"Terrain", result.Terrain.Name, result.Terrain.ID},
		{"Weather", result.Weather.Name, result.Weather.ID},
		{"Troop status", result.TroopStatus.Name, result.TroopStatus.ID},
		{"Avg affinity", Round(result.AvgAffinity, 4)},
		{"Adjustment", Round(result.Adjustment, 4)},
		{},
		{"Army"},
	}
	for i, id := range result.Units {
		rows = append(rows, []interface{}{b.unitName(i), id.String()})
	}

	rows = append(rows, []interface{}{}, []interface{}{"Attribute", "Base", "Modified"})
	for _, attr := range tactics.Attributes() {
		rows = append(rows, []interface{}{
			string(attr),
			Round(result.ArmyProfile.Get(attr), 4),
			Round(result.ModifiedProfile.Get(attr), 4),
		})
	}

	if len(result.Warnings) > 0 {
		rows = append(rows, []interface{}{}, []interface{}{"Critical warnings"})
		for _, warning := range result.Warnings {
			rows = append(rows, []interface{}{warning.String()})
		}
	}

	if err := writeRows(f, overviewSheet, rows); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(rankingSheet); err != nil {
		return nil, err
	}
	rankRows := [][]interface{}{
		{"Rank", "Strategy", "ID", "Compatibility %", "Distance", "Raw distance"},
	}
	for i, score := range result.Ranking {
		rankRows = append(rankRows, []interface{}{
			i + 1,
			score.Name,
			score.ID.String(),
			Round(score.Compatibility, 1),
			Round(score.Distance, 4),
			Round(score.RawDistance, 4),
		})
	}
	if err := writeRows(f, rankingSheet, rankRows); err != nil {
		return nil, err
	}

	if idx, err := f.GetSheetIndex(overviewSheet); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// Round truncates presentation values to a fixed number of decimals. Scores
// keep full precision internally; only rendered output goes through here.
func Round(x float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(x*p) / p
}
