package batch

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"waradvisor/domain/core"
)

// StrategyCount is one row of the winning-strategy histogram.
type StrategyCount struct {
	ID    core.StrategyID
	Name  string
	Count int
	Share float64 // fraction of scenarios this strategy won
}

// Summary aggregates one finished batch: who won how often, how strong the
// winning fits were, and how many critical penalties fired along the way.
type Summary struct {
	Scenarios     int
	TopStrategies []StrategyCount
	Warnings      int
	MeanTopCompat float64
	MinTopCompat  float64
	MaxTopCompat  float64
}

// Summarize folds outcomes into a summary. The histogram sorts by
// descending win count, strategy ID breaking ties.
func Summarize(outcomes []Outcome) Summary {
	summary := Summary{Scenarios: len(outcomes)}
	if len(outcomes) == 0 {
		return summary
	}

	counts := make(map[core.StrategyID]*StrategyCount)
	compats := make([]float64, 0, len(outcomes))
	for _, outcome := range outcomes {
		summary.Warnings += len(outcome.Result.Warnings)
		top := outcome.Result.Top
		if top == nil {
			continue
		}
		row, ok := counts[top.ID]
		if !ok {
			row = &StrategyCount{ID: top.ID, Name: top.Name}
			counts[top.ID] = row
		}
		row.Count++
		compats = append(compats, top.Compatibility)
	}

	for _, row := range counts {
		row.Share = float64(row.Count) / float64(len(outcomes))
		summary.TopStrategies = append(summary.TopStrategies, *row)
	}
	sort.Slice(summary.TopStrategies, func(i, j int) bool {
		a, b := summary.TopStrategies[i], summary.TopStrategies[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.ID < b.ID
	})

	if len(compats) > 0 {
		summary.MeanTopCompat, _ = stats.Mean(compats)
		summary.MinTopCompat, _ = stats.Min(compats)
		summary.MaxTopCompat, _ = stats.Max(compats)
	}
	return summary
}

// histogramWidth is the bar length of a strategy that won every scenario.
const histogramWidth = 30

// WriteText renders the summary histogram the way the briefing renders
// attribute bars.
func (s Summary) WriteText(w io.Writer) error {
	var out strings.Builder

	fmt.Fprintf(&out, "BATCH SUMMARY: %d scenarios\n", s.Scenarios)
	for _, row := range s.TopStrategies {
		bar := strings.Repeat("█", int(row.Share*histogramWidth))
		fmt.Fprintf(&out, "   %-20s %s %dx (%.0f%%)\n", row.Name, bar, row.Count, row.Share*100)
	}
	if s.Scenarios > 0 {
		fmt.Fprintf(&out, "Top compatibility: mean %.1f%%, min %.1f%%, max %.1f%%\n",
			s.MeanTopCompat, s.MinTopCompat, s.MaxTopCompat)
		fmt.Fprintf(&out, "Critical warnings triggered: %d\n", s.Warnings)
	}

	_, err := io.WriteString(w, out.String())
	return err
}
