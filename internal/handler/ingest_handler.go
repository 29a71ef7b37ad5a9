package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/groupsense/affinity-backend-go/internal/service"
	"github.com/groupsense/affinity-backend-go/pkg/response"
)

// IngestHandler handles HTTP requests for localization event ingestion
type IngestHandler struct {
	service *service.IngestService
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(service *service.IngestService) *IngestHandler {
	return &IngestHandler{service: service}
}

// IngestRequest represents the request body for event ingestion
type IngestRequest struct {
	Entries []service.EventEntry `json:"entries" binding:"required"`
}

// RecordEvents ingests a batch of grouping entries for the authenticated
// user. Malformed entries are reported individually; the batch continues.
// POST /api/v1/localizations
func (h *IngestHandler) RecordEvents(c *gin.Context) {
	username := c.GetString("user")
	if username == "" {
		response.Unauthorized(c, "Missing authenticated user")
		return
	}

	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.RecordEvents(username, req.Entries)
	if err != nil {
		if errors.Is(err, service.ErrUnknownUser) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, "Failed to record events")
		return
	}

	response.Success(c, result)
}
