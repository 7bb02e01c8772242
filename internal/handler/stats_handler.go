package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/amateurbeekeeper/data-visulisation/internal/logging"
	"github.com/amateurbeekeeper/data-visulisation/internal/models"
	"github.com/amateurbeekeeper/data-visulisation/internal/service"
	"github.com/amateurbeekeeper/data-visulisation/internal/stats"
	"github.com/amateurbeekeeper/data-visulisation/pkg/response"
)

// StatsHandler handles HTTP requests for chart statistics
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// bindQuery reads dataset, year and location with their defaults
func bindQuery(c *gin.Context) (models.ChartQuery, bool) {
	var q models.ChartQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return q, false
	}
	q.Defaults()
	return q, true
}

// fail maps service errors to responses
func fail(c *gin.Context, err error) {
	if errors.Is(err, stats.ErrInvalidYear) {
		logging.Ctx(c.Request.Context()).Debug().Err(err).Msg("Rejected year selector")
		response.BadRequest(c, "Invalid year parameter: expected \"all\" or an integer year")
		return
	}
	c.Error(err)
	logging.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
	response.InternalError(c, "Internal server error")
}

type chartFunc func(models.ChartQuery) ([]models.ChartPoint, error)

func (h *StatsHandler) chart(fn chartFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, ok := bindQuery(c)
		if !ok {
			return
		}
		points, err := fn(q)
		if err != nil {
			fail(c, err)
			return
		}
		response.Success(c, points)
	}
}

// GetTimeSeriesCounts handles GET /time_series_counts
func (h *StatsHandler) GetTimeSeriesCounts(c *gin.Context) {
	h.chart(h.statsService.TimeSeriesCounts)(c)
}

// GetDailyCounts handles GET /daily_counts
func (h *StatsHandler) GetDailyCounts(c *gin.Context) {
	h.chart(h.statsService.DailyCounts)(c)
}

// GetLocationCounts handles GET /location_counts and its /bar_chart alias
func (h *StatsHandler) GetLocationCounts(c *gin.Context) {
	h.chart(h.statsService.LocationCounts)(c)
}

// GetDayCounts handles GET /day_counts
func (h *StatsHandler) GetDayCounts(c *gin.Context) {
	h.chart(h.statsService.DayCounts)(c)
}

// GetHourlyCounts handles GET /hourly_counts
func (h *StatsHandler) GetHourlyCounts(c *gin.Context) {
	h.chart(h.statsService.HourlyCounts)(c)
}

// GetMonthlyCounts handles GET /monthly_counts
func (h *StatsHandler) GetMonthlyCounts(c *gin.Context) {
	h.chart(h.statsService.MonthlyCounts)(c)
}

// GetYears handles GET /years
func (h *StatsHandler) GetYears(c *gin.Context) {
	q, ok := bindQuery(c)
	if !ok {
		return
	}
	response.Success(c, h.statsService.Years(q))
}

// GetScatterData handles GET /scatter_data
func (h *StatsHandler) GetScatterData(c *gin.Context) {
	q, ok := bindQuery(c)
	if !ok {
		return
	}
	points, err := h.statsService.ScatterData(q)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, points)
}

// GetUniqueCoordinates handles GET /unique_coordinates
func (h *StatsHandler) GetUniqueCoordinates(c *gin.Context) {
	q, ok := bindQuery(c)
	if !ok {
		return
	}
	records, err := h.statsService.UniqueCoordinates(q)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, records)
}
