// Command import copies the region CSV exports from data.dir into the
// SQLite table the server reads when data.source is sqlite.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/amateurbeekeeper/data-visulisation/internal/config"
	"github.com/amateurbeekeeper/data-visulisation/internal/database"
	"github.com/amateurbeekeeper/data-visulisation/internal/dataset"
	"github.com/amateurbeekeeper/data-visulisation/internal/logging"
	"github.com/amateurbeekeeper/data-visulisation/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	db, err := database.Open(database.Config{Path: cfg.Data.SQLitePath})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	src := dataset.CSVSource{Dir: cfg.Data.Dir}
	repo := repository.NewActivityRepository(db, cfg.Data.SQLiteTable)
	for _, id := range dataset.Regions {
		ds, err := src.Load(ctx, id)
		if err != nil {
			logging.Fatal().Err(err).Str("dataset", string(id)).Msg("Failed to read CSV")
		}
		if err := repo.Replace(ctx, id, ds); err != nil {
			logging.Fatal().Err(err).Str("dataset", string(id)).Msg("Failed to import dataset")
		}
		logging.Info().Str("dataset", string(id)).Int("records", len(ds)).Msg("Dataset imported")
	}
}
