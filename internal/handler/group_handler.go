package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/groupsense/affinity-backend-go/internal/service"
	"github.com/groupsense/affinity-backend-go/pkg/response"
)

// GroupHandler handles HTTP requests for strength and group queries
type GroupHandler struct {
	service *service.QueryService
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(service *service.QueryService) *GroupHandler {
	return &GroupHandler{service: service}
}

// PersonalStrength returns the user's aggregate neighbor strengths
// GET /api/v1/users/:id/strength
func (h *GroupHandler) PersonalStrength(c *gin.Context) {
	uid, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	peers, err := h.service.PersonalStrength(uid)
	if err != nil {
		if errors.Is(err, service.ErrUnknownUser) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, "Failed to compute strength")
		return
	}

	response.Success(c, gin.H{"data": peers})
}

// GroupsForUser returns the current snapshot's groups containing the user
// GET /api/v1/groups/user/:id
func (h *GroupHandler) GroupsForUser(c *gin.Context) {
	uid, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	groups, err := h.service.GroupsForUser(uid)
	if err != nil {
		if errors.Is(err, service.ErrUnknownUser) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, "Failed to query groups")
		return
	}

	response.Success(c, gin.H{"data": groups})
}

// GenderBreakdown returns group counts per composition label
// GET /api/v1/groups/genders
func (h *GroupHandler) GenderBreakdown(c *gin.Context) {
	counts, err := h.service.GenderBreakdown()
	if err != nil {
		response.InternalError(c, "Failed to query gender breakdown")
		return
	}

	response.Success(c, gin.H{"data": counts})
}
