package engine

import (
	"math"
	"testing"

	"waradvisor/domain/core"
)

func TestAffinityNeutralWithoutProfile(t *testing.T) {
	advisor := newStubAdvisor()

	// slings has no affinity record at all
	avg, adjustment, err := advisor.AffinityAdjustment([]core.UnitID{"slings"}, "flat", "calm")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if avg != 0.5 {
		t.Errorf("Expected neutral average 0.5, got %v", avg)
	}
	if adjustment != 0 {
		t.Errorf("Expected zero adjustment for neutral army, got %v", adjustment)
	}
}

func TestAffinityComfortableArmyNegative(t *testing.T) {
	advisor := newStubAdvisor()

	// pikes on home ground in its favorite weather: combined affinity 1.0
	avg, adjustment, err := advisor.AffinityAdjustment([]core.UnitID{"pikes"}, "flat", "calm")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(avg-1.0) > 1e-9 {
		t.Errorf("Expected average affinity 1.0, got %v", avg)
	}
	if math.Abs(adjustment-(-0.1)) > 1e-9 {
		t.Errorf("Expected adjustment -0.1, got %v", adjustment)
	}
}

func TestAffinityHostileArmyPositive(t *testing.T) {
	advisor := newStubAdvisor()

	avg, adjustment, err := advisor.AffinityAdjustment([]core.UnitID{"pikes"}, "crags", "gale")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(avg) > 1e-9 {
		t.Errorf("Expected average affinity 0, got %v", avg)
	}
	if math.Abs(adjustment-0.1) > 1e-9 {
		t.Errorf("Expected adjustment +0.1, got %v", adjustment)
	}
}

func TestAffinityWeightsBlendTerrainAndWeather(t *testing.T) {
	advisor := newStubAdvisor()

	// hounds: terrain 0.8 at weight 0.75, weather unlisted (neutral 0.5) at 0.25
	avg, adjustment, err := advisor.AffinityAdjustment([]core.UnitID{"hounds"}, "flat", "calm")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(avg-0.725) > 1e-9 {
		t.Errorf("Expected average affinity 0.725, got %v", avg)
	}
	if math.Abs(adjustment-(-0.045)) > 1e-9 {
		t.Errorf("Expected adjustment -0.045, got %v", adjustment)
	}
}

func TestAffinityUnlistedConditionIsNeutral(t *testing.T) {
	advisor := newStubAdvisor()

	// pikes has no dunes entry: terrain side neutral, weather side 1.0
	avg, _, err := advisor.AffinityAdjustment([]core.UnitID{"pikes"}, "dunes", "calm")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(avg-0.75) > 1e-9 {
		t.Errorf("Expected average affinity 0.75, got %v", avg)
	}
}

func TestAffinityAveragesAcrossInstances(t *testing.T) {
	advisor := newStubAdvisor()

	// Two comfortable pikes and one neutral slings: (1.0+1.0+0.5)/3
	avg, adjustment, err := advisor.AffinityAdjustment([]core.UnitID{"pikes", "pikes", "slings"}, "flat", "calm")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	wantAvg := (1.0 + 1.0 + 0.5) / 3
	if math.Abs(avg-wantAvg) > 1e-9 {
		t.Errorf("Expected average affinity %v, got %v", wantAvg, avg)
	}
	wantAdj := (0.5 - wantAvg) * 2 * 0.1
	if math.Abs(adjustment-wantAdj) > 1e-9 {
		t.Errorf("Expected adjustment %v, got %v", wantAdj, adjustment)
	}
}

// The adjustment can never exceed the configured bound in either direction.
func TestAffinityAdjustmentBounded(t *testing.T) {
	advisor := newStubAdvisor()

	armies := [][]core.UnitID{
		{"pikes"}, {"slings"}, {"hounds"},
		{"pikes", "slings"}, {"pikes", "hounds", "slings"},
	}
	terrains := []core.TerrainID{"flat", "crags", "dunes"}
	weathers := []core.WeatherID{"calm", "gale", "mist"}

	for _, army := range armies {
		for _, terrain := range terrains {
			for _, weather := range weathers {
				_, adjustment, err := advisor.AffinityAdjustment(army, terrain, weather)
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if math.Abs(adjustment) > 0.1+1e-9 {
					t.Errorf("Adjustment %v exceeds bound 0.1 for army %v on %s/%s",
						adjustment, army, terrain, weather)
				}
			}
		}
	}
}

func TestAffinityEmptySelection(t *testing.T) {
	advisor := newStubAdvisor()

	_, _, err := advisor.AffinityAdjustment(nil, "flat", "calm")
	if err == nil {
		t.Fatal("Expected error for empty selection, got nil")
	}
	if !core.IsEmptySelectionError(err) {
		t.Errorf("Expected empty selection error, got %v", err)
	}
}
