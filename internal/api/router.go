package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amateurbeekeeper/data-visulisation/internal/config"
	"github.com/amateurbeekeeper/data-visulisation/internal/handler"
	"github.com/amateurbeekeeper/data-visulisation/internal/middleware"
	"github.com/amateurbeekeeper/data-visulisation/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, statsService *service.StatsService) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORS.Origins))
	if cfg.RateLimit.Requests > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	statsHandler := handler.NewStatsHandler(statsService)
	pathsHandler := handler.NewPathsHandler(statsService)

	r.GET("/", statsHandler.GetIndex)
	r.GET("/health", statsHandler.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 图表数据
	r.GET("/years", statsHandler.GetYears)
	r.GET("/scatter_data", statsHandler.GetScatterData)
	r.GET("/time_series_counts", statsHandler.GetTimeSeriesCounts)
	r.GET("/unique_coordinates", statsHandler.GetUniqueCoordinates)
	r.GET("/daily_counts", statsHandler.GetDailyCounts)
	r.GET("/location_counts", statsHandler.GetLocationCounts)
	r.GET("/bar_chart", statsHandler.GetLocationCounts)
	r.GET("/day_counts", statsHandler.GetDayCounts)
	r.GET("/hourly_counts", statsHandler.GetHourlyCounts)
	r.GET("/monthly_counts", statsHandler.GetMonthlyCounts)

	// 路径与地图
	r.GET("/nearest_paths", pathsHandler.GetNearestPaths)
	r.GET("/path_summary", pathsHandler.GetPathSummary)
	r.GET("/bounds", pathsHandler.GetBounds)

	return r
}
