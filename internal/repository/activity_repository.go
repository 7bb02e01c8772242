package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/amateurbeekeeper/data-visulisation/internal/database"
	"github.com/amateurbeekeeper/data-visulisation/internal/dataset"
	"github.com/amateurbeekeeper/data-visulisation/internal/models"
)

// ActivityRepository reads and writes region tables in SQLite.
// It implements dataset.Source.
type ActivityRepository struct {
	db    *sql.DB
	table string
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *sql.DB, table string) *ActivityRepository {
	return &ActivityRepository{db: db, table: table}
}

// Load returns the rows of one region in insertion order
func (r *ActivityRepository) Load(ctx context.Context, id dataset.ID) (models.Dataset, error) {
	query := `SELECT startTime, latitude, longitude, location, count FROM ` +
		database.QuoteIdent(r.table) + ` WHERE region = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, string(id))
	if err != nil {
		return nil, fmt.Errorf("failed to query activity records: %w", err)
	}
	defer rows.Close()

	ds := make(models.Dataset, 0)
	for rows.Next() {
		var (
			startTime string
			rec       models.ActivityRecord
		)
		if err := rows.Scan(&startTime, &rec.Latitude, &rec.Longitude, &rec.Location, &rec.Count); err != nil {
			return nil, fmt.Errorf("failed to scan activity record: %w", err)
		}
		rec.StartTime, err = dataset.ParseTimestamp(startTime)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(ds)+1, err)
		}
		if err := dataset.Validate(rec); err != nil {
			return nil, fmt.Errorf("row %d: %w", len(ds)+1, err)
		}
		ds = append(ds, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity records: %w", err)
	}
	return ds, nil
}

// Replace swaps the stored rows of a region for ds in one transaction
func (r *ActivityRepository) Replace(ctx context.Context, id dataset.ID, ds models.Dataset) error {
	if err := database.EnsureActivitySchema(r.db, r.table); err != nil {
		return err
	}

	t := database.QuoteIdent(r.table)
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t+` WHERE region = ?`, string(id)); err != nil {
			return fmt.Errorf("failed to clear region %s: %w", id, err)
		}

		stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+t+
			` (region, startTime, latitude, longitude, location, count) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for i, rec := range ds {
			if err := dataset.Validate(rec); err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
			_, err := stmt.ExecContext(ctx, string(id), rec.StartTime.Format(time.RFC3339Nano),
				rec.Latitude, rec.Longitude, rec.Location, rec.Count)
			if err != nil {
				return fmt.Errorf("failed to insert row %d: %w", i+1, err)
			}
		}
		return nil
	})
}
