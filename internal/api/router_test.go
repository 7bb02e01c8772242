package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amateurbeekeeper/data-visulisation/internal/config"
	"github.com/amateurbeekeeper/data-visulisation/internal/dataset"
	"github.com/amateurbeekeeper/data-visulisation/internal/models"
	"github.com/amateurbeekeeper/data-visulisation/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	reg, err := dataset.NewRegistry(map[dataset.ID]models.Dataset{
		dataset.Edinburgh: {
			{StartTime: time.Date(2021, time.March, 1, 9, 0, 0, 0, time.UTC), Latitude: 55.95, Longitude: -3.18, Location: "Meadows", Count: 4},
			{StartTime: time.Date(2022, time.June, 2, 10, 0, 0, 0, time.UTC), Latitude: 55.96, Longitude: -3.17, Location: "Leith Walk", Count: 2},
		},
		dataset.JohnMuirWay: {},
		dataset.Glasgow:     {},
	})
	if err != nil {
		t.Fatal(err)
	}
	svc, err := service.NewStatsService(reg, cfg.Cache.PathsSize)
	if err != nil {
		t.Fatal(err)
	}
	return SetupRouter(cfg, svc)
}

func TestRoutesRegistered(t *testing.T) {
	r := newTestRouter(t, config.Default())
	for _, path := range []string{
		"/", "/health", "/metrics",
		"/nearest_paths", "/years", "/scatter_data", "/time_series_counts",
		"/unique_coordinates", "/daily_counts", "/location_counts", "/bar_chart",
		"/day_counts", "/hourly_counts", "/monthly_counts",
		"/path_summary", "/bounds",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d", path, w.Code)
		}
	}
}

func TestBarChartAliasesLocationCounts(t *testing.T) {
	r := newTestRouter(t, config.Default())
	body := func(path string) string {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w.Body.String()
	}
	if a, b := body("/bar_chart?year=2021"), body("/location_counts?year=2021"); a != b {
		t.Errorf("bar_chart %s != location_counts %s", a, b)
	}
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	r := newTestRouter(t, config.Default())
	req := httptest.NewRequest(http.MethodGet, "/years", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestRateLimitEnabledByConfig(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit.Requests = 1
	cfg.RateLimit.Window = time.Hour
	r := newTestRouter(t, cfg)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/years", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 429]", codes)
	}
}

func TestMetricsExposition(t *testing.T) {
	r := newTestRouter(t, config.Default())
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/years", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Error("metrics output missing http_requests_total")
	}
}
