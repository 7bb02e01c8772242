package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/amateurbeekeeper/data-visulisation/internal/logging"
	"github.com/amateurbeekeeper/data-visulisation/internal/models"
)

// Source loads one region table
type Source interface {
	Load(ctx context.Context, id ID) (models.Dataset, error)
}

// Load reads every region from src in parallel and builds the registry
func Load(ctx context.Context, src Source) (*Registry, error) {
	var mu sync.Mutex
	regions := make(map[ID]models.Dataset, len(Regions))

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range Regions {
		g.Go(func() error {
			ds, err := src.Load(gctx, id)
			if err != nil {
				return fmt.Errorf("load %s: %w", id, err)
			}
			logging.Info().Str("dataset", string(id)).Int("records", len(ds)).Msg("Dataset loaded")

			mu.Lock()
			regions[id] = ds
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewRegistry(regions)
}

// csvFiles names the export file of each region
var csvFiles = map[ID]string{
	Edinburgh:   "edinburgh.csv",
	JohnMuirWay: "john-muir-way.csv",
	Glasgow:     "glasgow.csv",
}

// CSVSource reads region exports from a directory
type CSVSource struct {
	Dir string
}

// Load implements Source
func (s CSVSource) Load(ctx context.Context, id ID) (models.Dataset, error) {
	name, ok := csvFiles[id]
	if !ok {
		return nil, fmt.Errorf("no csv file for dataset %q", id)
	}
	path := filepath.Join(s.Dir, name)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := ReadCSV(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

var requiredColumns = []string{"startTime", "latitude", "longitude", "location", "count"}

// ReadCSV parses a headed CSV export. Columns are located by header name and
// extra columns are ignored. The first bad row aborts the read.
func ReadCSV(ctx context.Context, r io.Reader) (models.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return models.Dataset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	idx := make([]int, len(requiredColumns))
	for i, name := range requiredColumns {
		pos, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidRecord, name)
		}
		idx[i] = pos
	}

	ds := make(models.Dataset, 0)
	for row := 2; ; row++ {
		if row%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		field := func(i int) string {
			if idx[i] < len(fields) {
				return fields[idx[i]]
			}
			return ""
		}
		rec, err := RawRecord{
			StartTime: field(0),
			Latitude:  field(1),
			Longitude: field(2),
			Location:  field(3),
			Count:     field(4),
		}.Parse()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		ds = append(ds, rec)
	}
	return ds, nil
}
