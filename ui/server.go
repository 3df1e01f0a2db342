package ui

import (
	"embed"
	"fmt"
	"log"
	"net/http"

	"waradvisor/adapters/report"
	"waradvisor/app"
	"waradvisor/domain/core"
	"waradvisor/domain/tactics"

	"github.com/gin-gonic/gin"
)

//go:embed static/*
var embeddedFiles embed.FS

// Server represents the web server for the War Advisor UI: the embedded
// single-page frontend plus the JSON API it calls.
type Server struct {
	router  *gin.Engine
	service *app.AdvisorService
}

// NewServer creates a new web server instance around an advisor service.
func NewServer(service *app.AdvisorService) *Server {
	s := &Server{
		router:  gin.Default(),
		service: service,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", s.handleHealthz)

	// API endpoints for the frontend
	s.router.GET("/api/config", s.handleConfig)
	s.router.POST("/api/calculate", s.handleCalculate)
	s.router.POST("/api/briefing", s.handleBriefing)
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("Starting War Advisor UI on http://%s", addr)
	return s.router.Run(addr)
}

// handleIndex serves the embedded single-page frontend
func (s *Server) handleIndex(c *gin.Context) {
	content, err := embeddedFiles.ReadFile("static/index.html")
	if err != nil {
		log.Printf("[handleIndex] Frontend not found: %v", err)
		c.String(http.StatusInternalServerError, "Frontend not embedded")
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, string(content))
}

// handleHealthz reports liveness for the launcher and supervisors
func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleConfig returns the unit and context catalogs that populate the
// frontend pickers
func (s *Server) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, s.service.Options())
}

// handleCalculate scores one scenario and returns the full advisory result
func (s *Server) handleCalculate(c *gin.Context) {
	var req tactics.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := s.service.Calculate(req)
	if err != nil {
		s.renderCalculationError(c, err)
		return
	}

	c.JSON(http.StatusOK, roundedView(*result))
}

// handleBriefing scores one scenario and responds with an XLSX briefing
// download
func (s *Server) handleBriefing(c *gin.Context) {
	var req tactics.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := s.service.Calculate(req)
	if err != nil {
		s.renderCalculationError(c, err)
		return
	}

	payload, filename, err := s.service.ExcelBriefing(result)
	if err != nil {
		log.Printf("[handleBriefing] Briefing build failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "briefing generation failed"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
}

// renderCalculationError maps engine errors onto API status codes: selection
// mistakes are the caller's fault, everything else is ours.
func (s *Server) renderCalculationError(c *gin.Context, err error) {
	if core.IsEmptySelectionError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if unknown, ok := core.AsUnknownIdentifier(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    err.Error(),
			"category": unknown.Category,
			"id":       unknown.ID,
		})
		return
	}
	log.Printf("[renderCalculationError] Calculation failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "calculation failed"})
}

// roundedView applies the presentation rounding the frontend expects:
// distances to four decimals, compatibility to one. The ranking is sorted
// on full precision before this, so rounding never reorders it.
func roundedView(result tactics.CalculationResult) tactics.CalculationResult {
	view := result
	view.Ranking = make([]tactics.StrategyScore, len(result.Ranking))
	for i, score := range result.Ranking {
		view.Ranking[i] = roundedScore(score)
	}
	if result.Top != nil {
		top := roundedScore(*result.Top)
		view.Top = &top
	}
	if result.Worst != nil {
		worst := roundedScore(*result.Worst)
		view.Worst = &worst
	}
	return view
}

func roundedScore(score tactics.StrategyScore) tactics.StrategyScore {
	score.RawDistance = report.Round(score.RawDistance, 4)
	score.Distance = report.Round(score.Distance, 4)
	score.Compatibility = report.Round(score.Compatibility, 1)
	return score
}
