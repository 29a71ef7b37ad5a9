package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/groupsense/affinity-backend-go/internal/service"
	"github.com/groupsense/affinity-backend-go/pkg/response"
)

// Density queries cover the fixed deployment start date through today
var densityEpoch = time.Date(2017, time.November, 6, 0, 0, 0, 0, time.UTC)

// DensityHandler handles HTTP requests for region visit densities
type DensityHandler struct {
	service *service.DensityService
}

// NewDensityHandler creates a new density handler
func NewDensityHandler(service *service.DensityService) *DensityHandler {
	return &DensityHandler{service: service}
}

// QueryDensity returns per-region visit totals from the epoch to today
// GET /api/v1/density
func (h *DensityHandler) QueryDensity(c *gin.Context) {
	densities, err := h.service.QueryDensity(densityEpoch, time.Now())
	if err != nil {
		response.InternalError(c, "Failed to query density")
		return
	}

	response.Success(c, gin.H{"data": densities})
}
