package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetIndex handles GET /
func (h *StatsHandler) GetIndex(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to the Data Aggregation API!")
}

// GetHealth 健康检查, with the loaded row count of every dataset
func (h *StatsHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"datasets": h.statsService.Datasets(),
	})
}
