package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/groupsense/affinity-backend-go/internal/analysis"
	"github.com/groupsense/affinity-backend-go/internal/repository"
	"github.com/groupsense/affinity-backend-go/internal/service"
	"github.com/groupsense/affinity-backend-go/pkg/response"
)

// AnalysisHandler handles HTTP requests for batch analysis runs
type AnalysisHandler struct {
	runner *analysis.Runner
	runs   *repository.RunRepository
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(runner *analysis.Runner, runs *repository.RunRepository) *AnalysisHandler {
	return &AnalysisHandler{runner: runner, runs: runs}
}

// TriggerRun starts a batch run in the background
// POST /api/v1/analysis/runs
func (h *AnalysisHandler) TriggerRun(c *gin.Context) {
	run, err := h.runner.TriggerAsync(context.Background())
	if err != nil {
		if errors.Is(err, service.ErrRunInProgress) {
			response.Conflict(c, "An analysis run is already in progress")
			return
		}
		response.InternalError(c, "Failed to trigger analysis run")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"run_id": run.ID,
		"status": run.Status,
	})
}

// GetRun retrieves a run by id
// GET /api/v1/analysis/runs/:id
func (h *AnalysisHandler) GetRun(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid run ID")
		return
	}

	run, err := h.runs.GetByID(id)
	if err != nil {
		response.NotFound(c, err.Error())
		return
	}

	response.Success(c, run)
}

// ListRuns retrieves recent runs, newest first
// GET /api/v1/analysis/runs
func (h *AnalysisHandler) ListRuns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		offset = 0
	}

	runs, err := h.runs.List(limit, offset)
	if err != nil {
		response.InternalError(c, "Failed to list analysis runs")
		return
	}

	response.Success(c, gin.H{
		"runs":   runs,
		"limit":  limit,
		"offset": offset,
	})
}
