package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/amateurbeekeeper/data-visulisation/internal/service"
	"github.com/amateurbeekeeper/data-visulisation/pkg/response"
)

// PathsHandler serves the spanning-tree and map endpoints
type PathsHandler struct {
	statsService *service.StatsService
}

// NewPathsHandler creates a new paths handler
func NewPathsHandler(statsService *service.StatsService) *PathsHandler {
	return &PathsHandler{statsService: statsService}
}

// GetNearestPaths handles GET /nearest_paths
func (h *PathsHandler) GetNearestPaths(c *gin.Context) {
	q, ok := bindQuery(c)
	if !ok {
		return
	}
	edges, err := h.statsService.NearestPaths(q)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, edges)
}

// GetPathSummary handles GET /path_summary
func (h *PathsHandler) GetPathSummary(c *gin.Context) {
	q, ok := bindQuery(c)
	if !ok {
		return
	}
	summary, err := h.statsService.PathSummary(q)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, summary)
}

// GetBounds handles GET /bounds
func (h *PathsHandler) GetBounds(c *gin.Context) {
	q, ok := bindQuery(c)
	if !ok {
		return
	}
	bounds, found, err := h.statsService.Bounds(q)
	if err != nil {
		fail(c, err)
		return
	}
	if !found {
		response.NotFound(c, "No records for this dataset and year")
		return
	}
	response.Success(c, bounds)
}
