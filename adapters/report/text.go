// Package report renders calculation results into shareable artifacts:
// a plain-text briefing for consoles and report files, and an XLSX
// workbook for download.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"waradvisor/domain/core"
	"waradvisor/domain/tactics"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	ruleWidth       = 70
	barWidth        = 10
)

// Briefing pairs one calculation result with its presentation metadata.
// The report ID and timestamp exist only here; the engine result itself
// stays pure.
type Briefing struct {
	ReportID  core.ID
	Generated core.Timestamp
	// UnitNames holds the display name for each entry of Result.Units,
	// in the same order.
	UnitNames []string
	Result    *tactics.CalculationResult
}

// NewBriefing stamps a result with a fresh report ID and the current time.
func NewBriefing(result *tactics.CalculationResult, unitNames []string) Briefing {
	return Briefing{
		ReportID:  core.NewID(),
		Generated: core.Now(),
		UnitNames: unitNames,
		Result:    result,
	}
}

// WriteText renders the briefing: the army, the context, any critical
// warnings, the modified profile as bars, the recommendation and the full
// ranking table.
func (b Briefing) WriteText(w io.Writer) error {
	var out strings.Builder

	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(&out, "%s\n", rule)
	fmt.Fprintf(&out, "WAR ADVISOR BRIEFING - %s\n", b.Generated.Format(timestampLayout))
	fmt.Fprintf(&out, "Report: %s\n", b.ReportID)
	fmt.Fprintf(&out, "%s\n\n", rule)

	result := b.Result

	fmt.Fprintf(&out, "ARMY (%d units)\n", len(result.Units))
	for i, id := range result.Units {
		fmt.Fprintf(&out, "   - %s (%s)\n", b.unitName(i), id)
	}
	out.WriteString("\n")

	out.WriteString("CONTEXT\n")
	fmt.Fprintf(&out, "   Terrain:  %s (%s)\n", result.Terrain.Name, result.Terrain.ID)
	fmt.Fprintf(&out, "   Weather:  %s (%s)\n", result.Weather.Name, result.Weather.ID)
	fmt.Fprintf(&out, "   Troops:   %s (%s)\n", result.TroopStatus.Name, result.TroopStatus.ID)
	fmt.Fprintf(&out, "   Affinity: avg %.2f, adjustment %+.4f\n\n", result.AvgAffinity, result.Adjustment)

	if len(result.Warnings) > 0 {
		out.WriteString("CRITICAL WARNINGS\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(&out, "   ! %s\n", warning)
		}
		out.WriteString("\n")
	}

	out.WriteString("ARMY PROFILE (after modifiers)\n")
	for _, attr := range tactics.Attributes() {
		value := result.ModifiedProfile.Get(attr)
		fmt.Fprintf(&out, "   %-13s %s %.2f\n", attr, bar(value), value)
	}
	out.WriteString("\n")

	if result.Top != nil {
		top := result.Top
		out.WriteString("RECOMMENDATION\n")
		fmt.Fprintf(&out, "   Name:          %s\n", top.Name)
		fmt.Fprintf(&out, "   ID:            %s\n", top.ID)
		fmt.Fprintf(&out, "   Compatibility: %.1f%%\n", top.Compatibility)
		fmt.Fprintf(&out, "   Distance:      %.4f\n", top.Distance)
		fmt.Fprintf(&out, "   Description:   %s\n\n", top.Description)
	}

	out.WriteString("RANKING\n")
	writeRankingTable(&out, result.Ranking)

	if result.Worst != nil {
		fmt.Fprintf(&out, "\nWORST FIT: %s (%.1f%%)\n", result.Worst.Name, result.Worst.Compatibility)
	}

	fmt.Fprintf(&out, "\n%s\n\n", strings.Repeat("-", ruleWidth))

	_, err := io.WriteString(w, out.String())
	return err
}

// AppendText appends the briefing to a report file, creating it on first use.
func (b Briefing) AppendText(path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open report file: %w", err)
	}
	defer f.Close()

	if err := b.WriteText(f); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func (b Briefing) unitName(i int) string {
	if i < len(b.UnitNames) && b.UnitNames[i] != "" {
		return b.UnitNames[i]
	}
	return b.Result.Units[i].String()
}

func writeRankingTable(w io.Writer, ranking []tactics.StrategyScore) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"#", "Strategy", "Compatibility", "Distance", "Raw"}),
	)
	for i, score := range ranking {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			score.Name,
			fmt.Sprintf("%.1f%%", score.Compatibility),
			fmt.Sprintf("%.4f", score.Distance),
			fmt.Sprintf("%.4f", score.RawDistance),
		})
	}
	table.Render()
}

// bar renders a ten-slot gauge for a [0,1] value.
func bar(value float64) string {
	filled := int(value * barWidth)
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}
