package service

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/amateurbeekeeper/data-visulisation/internal/dataset"
	"github.com/amateurbeekeeper/data-visulisation/internal/metrics"
	"github.com/amateurbeekeeper/data-visulisation/internal/models"
	"github.com/amateurbeekeeper/data-visulisation/internal/stats"
)

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T, cacheSize int) *StatsService {
	t.Helper()
	edinburgh := models.Dataset{
		{StartTime: at(2021, time.March, 1, 9), Latitude: 55.95, Longitude: -3.18, Location: "Meadows", Count: 4},
		{StartTime: at(2021, time.March, 1, 17), Latitude: 55.95, Longitude: -3.18, Location: "Meadows", Count: 6},
		{StartTime: at(2021, time.July, 4, 9), Latitude: 55.94, Longitude: -3.20, Location: "Bruntsfield", Count: 2},
		{StartTime: at(2022, time.December, 25, 17), Latitude: 55.96, Longitude: -3.17, Location: "Leith Walk", Count: 10},
		{StartTime: at(2022, time.January, 3, 23), Latitude: 55.940001, Longitude: -3.200001, Location: "Bruntsfield", Count: 1},
	}
	glasgow := models.Dataset{
		{StartTime: at(2020, time.May, 5, 12), Latitude: 55.86, Longitude: -4.25, Location: "Kelvingrove", Count: 7},
	}
	reg, err := dataset.NewRegistry(map[dataset.ID]models.Dataset{
		dataset.Edinburgh:   edinburgh,
		dataset.JohnMuirWay: {},
		dataset.Glasgow:     glasgow,
	})
	if err != nil {
		t.Fatal(err)
	}
	svc, err := NewStatsService(reg, cacheSize)
	if err != nil {
		t.Fatal(err)
	}
	return svc
}

func q(ds, year string) models.ChartQuery {
	return models.ChartQuery{Dataset: ds, Year: year}
}

func TestInvalidYearSurfaces(t *testing.T) {
	svc := newTestService(t, 0)
	calls := map[string]func(models.ChartQuery) error{
		"paths":    func(q models.ChartQuery) error { _, err := svc.NearestPaths(q); return err },
		"scatter":  func(q models.ChartQuery) error { _, err := svc.ScatterData(q); return err },
		"series":   func(q models.ChartQuery) error { _, err := svc.TimeSeriesCounts(q); return err },
		"unique":   func(q models.ChartQuery) error { _, err := svc.UniqueCoordinates(q); return err },
		"daily":    func(q models.ChartQuery) error { _, err := svc.DailyCounts(q); return err },
		"location": func(q models.ChartQuery) error { _, err := svc.LocationCounts(q); return err },
		"day":      func(q models.ChartQuery) error { _, err := svc.DayCounts(q); return err },
		"hourly":   func(q models.ChartQuery) error { _, err := svc.HourlyCounts(q); return err },
		"monthly":  func(q models.ChartQuery) error { _, err := svc.MonthlyCounts(q); return err },
		"summary":  func(q models.ChartQuery) error { _, err := svc.PathSummary(q); return err },
		"bounds":   func(q models.ChartQuery) error { _, _, err := svc.Bounds(q); return err },
	}
	for name, call := range calls {
		if err := call(q("edinburgh", "20x1")); !errors.Is(err, stats.ErrInvalidYear) {
			t.Errorf("%s: expected ErrInvalidYear, got %v", name, err)
		}
	}
}

func TestUnknownDatasetFallsBack(t *testing.T) {
	svc := newTestService(t, 0)
	want, _ := svc.LocationCounts(q("edinburgh", "all"))
	got, _ := svc.LocationCounts(q("nonexistent", "all"))
	if len(got) != len(want) {
		t.Fatalf("fallback mismatch: %v vs %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLocationCounts(t *testing.T) {
	svc := newTestService(t, 0)
	got, err := svc.LocationCounts(q("edinburgh", "all"))
	if err != nil {
		t.Fatal(err)
	}
	want := []models.ChartPoint{
		{Name: "Leith Walk", ActivityCount: 10},
		{Name: "Meadows", ActivityCount: 10},
		{Name: "Bruntsfield", ActivityCount: 3},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestHourlyCounts(t *testing.T) {
	svc := newTestService(t, 0)
	got, err := svc.HourlyCounts(q("edinburgh", "all"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 hours, got %d", len(got))
	}
	want := []models.ChartPoint{
		{Name: "17 - 18", ActivityCount: 16},
		{Name: "9 - 10", ActivityCount: 6},
		{Name: "23 - 0", ActivityCount: 1},
		{Name: "0 - 1", ActivityCount: 0},
		{Name: "1 - 2", ActivityCount: 0},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	empty, err := svc.HourlyCounts(q("john_muir_way", "all"))
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 5 || empty[0].Name != "0 - 1" || empty[0].ActivityCount != 0 {
		t.Errorf("expected zero-filled hours for an empty dataset, got %v", empty)
	}
}

func TestMonthlyAndDayCounts(t *testing.T) {
	svc := newTestService(t, 0)

	months, err := svc.MonthlyCounts(q("edinburgh", "2021"))
	if err != nil {
		t.Fatal(err)
	}
	if len(months) != 2 || months[0].Name != "March" || months[0].ActivityCount != 10 || months[1].Name != "July" {
		t.Errorf("unexpected months %v", months)
	}

	days, err := svc.DayCounts(q("edinburgh", "all"))
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 4 || days[0].Name != "3/1" || days[1].Name != "12/25" {
		t.Errorf("unexpected days %v", days)
	}
}

func TestDailyAndTimeSeries(t *testing.T) {
	svc := newTestService(t, 0)

	daily, err := svc.DailyCounts(q("edinburgh", "all"))
	if err != nil {
		t.Fatal(err)
	}
	// 2021-03-01 Monday, 2021-07-04 Sunday, 2022-12-25 Sunday, 2022-01-03 Monday
	if len(daily) != 2 || daily[0].Name != "Monday" || daily[0].ActivityCount != 11 ||
		daily[1].Name != "Sunday" || daily[1].ActivityCount != 12 {
		t.Errorf("unexpected daily counts %v", daily)
	}

	series, err := svc.TimeSeriesCounts(q("edinburgh", "all"))
	if err != nil {
		t.Fatal(err)
	}
	wantNames := []string{"2021-03-01", "2021-07-04", "2022-01-03", "2022-12-25"}
	if len(series) != len(wantNames) {
		t.Fatalf("unexpected series %v", series)
	}
	for i, name := range wantNames {
		if series[i].Name != name {
			t.Errorf("series %d = %s, want %s", i, series[i].Name, name)
		}
	}
}

func TestScatterData(t *testing.T) {
	svc := newTestService(t, 0)
	got, err := svc.ScatterData(q("edinburgh", "all"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 rounded points, got %v", got)
	}
	if got[0].ID != "55.94,-3.2" || got[0].Value != 3 {
		t.Errorf("unexpected first point %+v", got[0])
	}
	var total int64
	for _, p := range got {
		total += p.Value
	}
	if total != 23 {
		t.Errorf("scatter total = %d, want 23", total)
	}
}

func TestUniqueCoordinatesLocationFilter(t *testing.T) {
	svc := newTestService(t, 0)

	all, err := svc.UniqueCoordinates(q("edinburgh", "all"))
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 places, got %d", len(all))
	}

	only, err := svc.UniqueCoordinates(models.ChartQuery{Dataset: "edinburgh", Year: "all", Location: "Meadows"})
	if err != nil {
		t.Fatal(err)
	}
	if len(only) != 1 || only[0].Location != "Meadows" || only[0].AdjustedCounts != 10 {
		t.Errorf("unexpected filtered result %+v", only)
	}

	none, err := svc.UniqueCoordinates(models.ChartQuery{Dataset: "edinburgh", Location: "Nowhere"})
	if err != nil || len(none) != 0 {
		t.Errorf("expected empty result, got %v, %v", none, err)
	}
}

func TestNearestPathsCache(t *testing.T) {
	svc := newTestService(t, 4)
	hits := testutil.ToFloat64(metrics.CacheHits.WithLabelValues("paths"))
	misses := testutil.ToFloat64(metrics.CacheMisses.WithLabelValues("paths"))

	first, err := svc.NearestPaths(q("edinburgh", "all"))
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 edges over 4 points, got %d", len(first))
	}
	// "" and "all" share a cache entry
	second, err := svc.NearestPaths(q("edinburgh", ""))
	if err != nil {
		t.Fatal(err)
	}
	if len(second) != len(first) {
		t.Errorf("cached result differs: %v vs %v", second, first)
	}

	if d := testutil.ToFloat64(metrics.CacheMisses.WithLabelValues("paths")) - misses; d != 1 {
		t.Errorf("misses grew by %v, want 1", d)
	}
	if d := testutil.ToFloat64(metrics.CacheHits.WithLabelValues("paths")) - hits; d != 1 {
		t.Errorf("hits grew by %v, want 1", d)
	}

	single, err := svc.NearestPaths(q("glasgow", "all"))
	if err != nil || len(single) != 0 {
		t.Errorf("expected no edges for one point, got %v, %v", single, err)
	}
}

func TestYearsIgnoresYearFilter(t *testing.T) {
	svc := newTestService(t, 0)
	got := svc.Years(q("edinburgh", "2021"))
	if len(got) != 2 || got[0] != 2021 || got[1] != 2022 {
		t.Errorf("Years = %v", got)
	}
	all := svc.Years(q("all", ""))
	if len(all) != 3 || all[2] != 2020 {
		t.Errorf("Years(all) = %v", all)
	}
}

func TestBoundsAndSummary(t *testing.T) {
	svc := newTestService(t, 0)

	if _, ok, err := svc.Bounds(q("john_muir_way", "all")); ok || err != nil {
		t.Errorf("expected no bounds for an empty dataset, got ok=%v err=%v", ok, err)
	}
	b, ok, err := svc.Bounds(q("glasgow", "all"))
	if err != nil || !ok {
		t.Fatalf("expected bounds, got ok=%v err=%v", ok, err)
	}
	if b.Center != [2]float64{55.86, -4.25} {
		t.Errorf("centre = %v", b.Center)
	}

	sum, err := svc.PathSummary(q("edinburgh", "all"))
	if err != nil {
		t.Fatal(err)
	}
	if sum.Nodes != 4 || sum.Edges != 3 || sum.LengthMeters <= 0 {
		t.Errorf("unexpected summary %+v", sum)
	}
}

func TestServiceDoesNotMutateRegistry(t *testing.T) {
	svc := newTestService(t, 0)
	before := append(models.Dataset{}, svc.registry.Get(dataset.Edinburgh)...)

	svc.ScatterData(q("edinburgh", "all"))
	svc.HourlyCounts(q("edinburgh", "2021"))
	svc.UniqueCoordinates(models.ChartQuery{Dataset: "edinburgh", Location: "Meadows"})
	svc.NearestPaths(q("edinburgh", "all"))

	after := svc.registry.Get(dataset.Edinburgh)
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("record %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}
