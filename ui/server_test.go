package ui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"waradvisor/adapters/refdata"
	"waradvisor/app"
	"waradvisor/domain/core"
	"waradvisor/domain/tactics"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := refdata.DefaultStore()
	if err != nil {
		t.Fatalf("Failed to load embedded dataset: %v", err)
	}
	return NewServer(app.NewAdvisorService(store))
}

func perform(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload := []byte(nil)
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func nightRaidRequest() tactics.CalculationRequest {
	return tactics.CalculationRequest{
		Units:       []core.UnitID{"assassins", "assassins", "assassins", "archers", "archers"},
		Terrain:     "forest",
		Weather:     "night",
		TroopStatus: "fresh",
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	w := perform(t, s, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestConfigListsCatalogs(t *testing.T) {
	s := newTestServer(t)

	w := perform(t, s, http.MethodGet, "/api/config", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var opts app.CatalogOptions
	if err := json.Unmarshal(w.Body.Bytes(), &opts); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(opts.Units) != 10 {
		t.Errorf("Expected 10 units, got %d", len(opts.Units))
	}
	if len(opts.Terrains) != 6 || len(opts.Weather) != 6 || len(opts.TroopStatus) != 6 {
		t.Errorf("Expected 6 entries per context catalog, got terrains=%d weather=%d status=%d",
			len(opts.Terrains), len(opts.Weather), len(opts.TroopStatus))
	}

	found := false
	for _, unit := range opts.Units {
		if unit.ID == "assassins" {
			found = true
			if unit.Name == "" || unit.Description == "" {
				t.Errorf("Expected name and description for assassins, got %+v", unit)
			}
		}
	}
	if !found {
		t.Errorf("Expected assassins in the unit catalog")
	}
}

func TestCalculateReturnsAdvice(t *testing.T) {
	s := newTestServer(t)

	w := perform(t, s, http.MethodPost, "/api/calculate", nightRaidRequest())
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var result tactics.CalculationResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if result.Top == nil || result.Top.ID != "ambush" {
		t.Fatalf("Expected ambush as top strategy, got %+v", result.Top)
	}
	if len(result.Ranking) != 8 {
		t.Errorf("Expected 8 ranked strategies, got %d", len(result.Ranking))
	}

	// Presentation rounding: distances to 4 decimals, compatibility to 1.
	if result.Top.RawDistance != 0.2092 {
		t.Errorf("Expected raw distance 0.2092, got %v", result.Top.RawDistance)
	}
	if result.Top.Distance != 0.1632 {
		t.Errorf("Expected distance 0.1632, got %v", result.Top.Distance)
	}
	if result.Top.Compatibility != 94.2 {
		t.Errorf("Expected compatibility 94.2, got %v", result.Top.Compatibility)
	}

	// No warnings for this scenario, but the field must still be present
	// as an empty array rather than null.
	if !strings.Contains(w.Body.String(), `"critical_warnings":[]`) {
		t.Errorf("Expected empty critical_warnings array in response")
	}
}

func TestCalculateRejectsEmptySelection(t *testing.T) {
	s := newTestServer(t)

	req := nightRaidRequest()
	req.Units = nil

	w := perform(t, s, http.MethodPost, "/api/calculate", req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	message, _ := body["error"].(string)
	if !strings.Contains(message, "no units selected") {
		t.Errorf("Expected empty selection message, got %q", message)
	}
	if _, ok := body["category"]; ok {
		t.Errorf("Expected no category for empty selection, got %v", body["category"])
	}
}

func TestCalculateRejectsUnknownSelections(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name     string
		mutate   func(*tactics.CalculationRequest)
		category string
		id       string
	}{
		{"unknown unit", func(r *tactics.CalculationRequest) { r.Units = []core.UnitID{"dragons"} }, "unit", "dragons"},
		{"unknown terrain", func(r *tactics.CalculationRequest) { r.Terrain = "ocean" }, "terrain", "ocean"},
		{"unknown weather", func(r *tactics.CalculationRequest) { r.Weather = "meteor" }, "weather", "meteor"},
		{"unknown status", func(r *tactics.CalculationRequest) { r.TroopStatus = "mutinous" }, "troop_status", "mutinous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := nightRaidRequest()
			tt.mutate(&req)

			w := perform(t, s, http.MethodPost, "/api/calculate", req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d: %s", w.Code, w.Body.String())
			}

			var body map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if body["category"] != tt.category {
				t.Errorf("Expected category %q, got %v", tt.category, body["category"])
			}
			if body["id"] != tt.id {
				t.Errorf("Expected id %q, got %v", tt.id, body["id"])
			}
		})
	}
}

func TestCalculateRejectsMalformedJSON(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "invalid request body") {
		t.Errorf("Expected invalid body message, got %s", w.Body.String())
	}
}

func TestBriefingDownloadsWorkbook(t *testing.T) {
	s := newTestServer(t)

	w := perform(t, s, http.MethodPost, "/api/briefing", nightRaidRequest())
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	disposition := w.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "attachment") || !strings.Contains(disposition, "war_briefing_") {
		t.Errorf("Expected attachment disposition with briefing filename, got %q", disposition)
	}

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("Expected a readable workbook, got %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	joined := strings.Join(sheets, ",")
	if !strings.Contains(joined, "Briefing") || !strings.Contains(joined, "Ranking") {
		t.Errorf("Expected Briefing and Ranking sheets, got %v", sheets)
	}
}

func TestBriefingRejectsUnknownUnit(t *testing.T) {
	s := newTestServer(t)

	req := nightRaidRequest()
	req.Units = []core.UnitID{"dragons"}

	w := perform(t, s, http.MethodPost, "/api/briefing", req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestIndexServesFrontend(t *testing.T) {
	s := newTestServer(t)

	w := perform(t, s, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Content-Type"), "text/html") {
		t.Errorf("Expected HTML content type, got %q", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "<title>War Advisor</title>") {
		t.Errorf("Expected frontend page title in response")
	}
}

func TestStaticAssetsServed(t *testing.T) {
	s := newTestServer(t)

	w := perform(t, s, http.MethodGet, "/static/js/advisor.js", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "/api/calculate") {
		t.Errorf("Expected frontend script to call the calculate API")
	}
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	s := newTestServer(t)

	w := perform(t, s, http.MethodGet, "/healthz", nil)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected wildcard CORS origin, got %q", got)
	}

	preflight := perform(t, s, http.MethodOptions, "/api/calculate", nil)
	if preflight.Code != http.StatusNoContent {
		t.Errorf("Expected status 204 for preflight, got %d", preflight.Code)
	}
	if got := preflight.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "POST") {
		t.Errorf("Expected POST in allowed methods, got %q", got)
	}
}
