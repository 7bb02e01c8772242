package service

import (
	"fmt"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/amateurbeekeeper/data-visulisation/internal/dataset"
	"github.com/amateurbeekeeper/data-visulisation/internal/metrics"
	"github.com/amateurbeekeeper/data-visulisation/internal/models"
	"github.com/amateurbeekeeper/data-visulisation/internal/spatial"
	"github.com/amateurbeekeeper/data-visulisation/internal/stats"
)

const (
	locationTopK = 10
	dayTopK      = 10
	monthTopK    = 10
	hourTopK     = 5

	// scatterDigits merges near-identical coordinates in the scatter chart
	scatterDigits = 4
)

type pathKey struct {
	dataset dataset.ID
	year    string
}

// StatsService turns chart queries into chart-ready aggregates.
// It never modifies the registry's datasets.
type StatsService struct {
	registry *dataset.Registry
	// paths caches spanning trees per (dataset, year); nil when disabled.
	// Cached slices are shared between callers and must be treated as read-only.
	paths *lru.Cache[pathKey, []models.PathEdge]
}

// NewStatsService creates a new stats service. cacheSize 0 disables the path cache.
func NewStatsService(registry *dataset.Registry, cacheSize int) (*StatsService, error) {
	s := &StatsService{registry: registry}
	if cacheSize > 0 {
		cache, err := lru.New[pathKey, []models.PathEdge](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create path cache: %w", err)
		}
		s.paths = cache
	}
	return s, nil
}

// scope resolves the dataset and applies the year filter
func (s *StatsService) scope(q models.ChartQuery) (dataset.ID, stats.YearFilter, models.Dataset, error) {
	id := s.registry.ResolveID(q.Dataset)
	year, err := stats.ParseYear(q.Year)
	if err != nil {
		return "", stats.YearFilter{}, nil, err
	}
	return id, year, year.Apply(s.registry.Get(id)), nil
}

// NearestPaths returns the spanning tree over the unique coordinates
func (s *StatsService) NearestPaths(q models.ChartQuery) ([]models.PathEdge, error) {
	id, year, ds, err := s.scope(q)
	if err != nil {
		return nil, err
	}

	key := pathKey{dataset: id, year: year.String()}
	if s.paths != nil {
		if edges, ok := s.paths.Get(key); ok {
			metrics.CacheHits.WithLabelValues("paths").Inc()
			return edges, nil
		}
		metrics.CacheMisses.WithLabelValues("paths").Inc()
	}

	coords := spatial.UniqueCoordinates(ds, spatial.NoRounding)
	metrics.SpanningTreeNodes.Observe(float64(len(coords)))
	edges := spatial.BuildMST(coords)

	if s.paths != nil {
		s.paths.Add(key, edges)
	}
	return edges, nil
}

// PathSummary reports the size and length of the nearest-paths tree
func (s *StatsService) PathSummary(q models.ChartQuery) (models.PathSummary, error) {
	_, _, ds, err := s.scope(q)
	if err != nil {
		return models.PathSummary{}, err
	}
	return spatial.Summarize(spatial.UniqueCoordinates(ds, spatial.NoRounding)), nil
}

// Years lists the years present in the whole dataset; the year parameter is ignored
func (s *StatsService) Years(q models.ChartQuery) []int {
	return stats.Years(s.registry.Resolve(q.Dataset))
}

// ScatterData sums counts per coordinate rounded to four decimals
func (s *StatsService) ScatterData(q models.ChartQuery) ([]models.ScatterPoint, error) {
	_, _, ds, err := s.scope(q)
	if err != nil {
		return nil, err
	}

	buckets := stats.Aggregate(ds, stats.ByCoordinate(scatterDigits), stats.Options[stats.LatLon]{})
	points := make([]models.ScatterPoint, len(buckets))
	for i, b := range buckets {
		points[i] = models.ScatterPoint{
			ID:    formatFloat(b.Key[0]) + "," + formatFloat(b.Key[1]),
			X:     b.Key[0],
			Y:     b.Key[1],
			Value: b.Value,
		}
	}
	return points, nil
}

// TimeSeriesCounts sums counts per calendar date, oldest first
func (s *StatsService) TimeSeriesCounts(q models.ChartQuery) ([]models.ChartPoint, error) {
	_, _, ds, err := s.scope(q)
	if err != nil {
		return nil, err
	}
	return chartPoints(stats.Aggregate(ds, stats.ByDate, stats.Options[string]{}), identity), nil
}

// UniqueCoordinates scores every location by visits relative to the median,
// optionally restricted to one location label
func (s *StatsService) UniqueCoordinates(q models.ChartQuery) ([]models.PopularityRecord, error) {
	_, _, ds, err := s.scope(q)
	if err != nil {
		return nil, err
	}
	if q.Location != "" {
		ds = filterLocation(ds, q.Location)
	}
	return stats.Popularity(ds), nil
}

// DailyCounts sums counts per weekday name
func (s *StatsService) DailyCounts(q models.ChartQuery) ([]models.ChartPoint, error) {
	_, _, ds, err := s.scope(q)
	if err != nil {
		return nil, err
	}
	return chartPoints(stats.Aggregate(ds, stats.ByWeekday, stats.Options[string]{}), identity), nil
}

// LocationCounts returns the ten busiest locations
func (s *StatsService) LocationCounts(q models.ChartQuery) ([]models.ChartPoint, error) {
	_, _, ds, err := s.scope(q)
	if err != nil {
		return nil, err
	}
	buckets := stats.Aggregate(ds, stats.ByLocation, stats.Options[string]{
		Order: stats.Descending,
		TopK:  locationTopK,
	})
	return chartPoints(buckets, identity), nil
}

// DayCounts returns the ten busiest days of the year as "M/D"
func (s *StatsService) DayCounts(q models.ChartQuery) ([]models.ChartPoint, error) {
	_, _, ds, err := s.scope(q)
	if err != nil {
		return nil, err
	}
	buckets := stats.Aggregate(ds, stats.ByMonthDay, stats.Options[stats.MonthDay]{
		Order: stats.Descending,
		TopK:  dayTopK,
	})
	return chartPoints(buckets, stats.MonthDayLabel), nil
}

// HourlyCounts returns the five busiest hours out of all 24
func (s *StatsService) HourlyCounts(q models.ChartQuery) ([]models.ChartPoint, error) {
	_, _, ds, err := s.scope(q)
	if err != nil {
		return nil, err
	}
	buckets := stats.Aggregate(ds, stats.ByHour, stats.Options[int]{
		Backfill: stats.AllHours(),
		Order:    stats.Descending,
		TopK:     hourTopK,
	})
	return chartPoints(buckets, stats.HourLabel), nil
}

// MonthlyCounts returns the ten busiest months by name
func (s *StatsService) MonthlyCounts(q models.ChartQuery) ([]models.ChartPoint, error) {
	_, _, ds, err := s.scope(q)
	if err != nil {
		return nil, err
	}
	buckets := stats.Aggregate(ds, stats.ByMonth, stats.Options[int]{
		Order: stats.Descending,
		TopK:  monthTopK,
	})
	return chartPoints(buckets, stats.MonthName), nil
}

// Bounds returns the bounding box of the filtered dataset; ok is false when it is empty
func (s *StatsService) Bounds(q models.ChartQuery) (bounds models.Bounds, ok bool, err error) {
	_, _, ds, err := s.scope(q)
	if err != nil {
		return models.Bounds{}, false, err
	}
	bounds, ok = spatial.DatasetBounds(ds)
	return bounds, ok, nil
}

// Datasets reports the loaded datasets
func (s *StatsService) Datasets() []models.DatasetInfo {
	return s.registry.Sizes()
}

func chartPoints[K comparable](buckets []stats.Bucket[K], label func(K) string) []models.ChartPoint {
	points := make([]models.ChartPoint, len(buckets))
	for i, b := range buckets {
		points[i] = models.ChartPoint{Name: label(b.Key), ActivityCount: b.Value}
	}
	return points
}

func identity(s string) string { return s }

func filterLocation(ds models.Dataset, location string) models.Dataset {
	out := make(models.Dataset, 0)
	for _, r := range ds {
		if r.Location == location {
			out = append(out, r)
		}
	}
	return out
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
