package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amateurbeekeeper/data-visulisation/internal/api"
	"github.com/amateurbeekeeper/data-visulisation/internal/config"
	"github.com/amateurbeekeeper/data-visulisation/internal/database"
	"github.com/amateurbeekeeper/data-visulisation/internal/dataset"
	"github.com/amateurbeekeeper/data-visulisation/internal/logging"
	"github.com/amateurbeekeeper/data-visulisation/internal/metrics"
	"github.com/amateurbeekeeper/data-visulisation/internal/repository"
	"github.com/amateurbeekeeper/data-visulisation/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 加载数据集
	src, db, err := openSource(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open data source")
	}
	if db != nil {
		defer db.Close()
	}
	registry, err := dataset.Load(ctx, src)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load datasets")
	}
	for _, info := range registry.Sizes() {
		metrics.DatasetRecords.WithLabelValues(info.Name).Set(float64(info.Records))
	}

	statsService, err := service.NewStatsService(registry, cfg.Cache.PathsSize)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create stats service")
	}

	// 初始化路由
	router := api.SetupRouter(cfg, statsService)
	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", cfg.Server.Port).Str("source", cfg.Data.Source).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Server shutdown failed")
	}
}

// openSource picks the region source from data.source. The database
// handle is nil for CSV.
func openSource(cfg *config.Config) (dataset.Source, *sql.DB, error) {
	if cfg.Data.Source != "sqlite" {
		return dataset.CSVSource{Dir: cfg.Data.Dir}, nil, nil
	}
	db, err := database.Open(database.Config{Path: cfg.Data.SQLitePath})
	if err != nil {
		return nil, nil, err
	}
	return repository.NewActivityRepository(db, cfg.Data.SQLiteTable), db, nil
}
