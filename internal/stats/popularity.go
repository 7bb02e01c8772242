package stats

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/amateurbeekeeper/data-visulisation/internal/models"
)

// popularityScale is the adjusted score of a location visited exactly as often as the median
const popularityScale = 10

type placeKey struct {
	lat, lon float64
	location string
}

// Popularity counts rows per (latitude, longitude, location) and rescales
// each count against the median count: round(raw/median*10), ties to even.
// A zero median leaves the raw count untouched.
func Popularity(ds models.Dataset) []models.PopularityRecord {
	visits := make(map[placeKey]int64)
	places := make([]placeKey, 0)
	for _, r := range ds {
		k := placeKey{lat: r.Latitude, lon: r.Longitude, location: r.Location}
		if _, ok := visits[k]; !ok {
			places = append(places, k)
		}
		visits[k]++
	}

	slices.SortFunc(places, func(a, b placeKey) int {
		if c := cmp.Compare(a.lat, b.lat); c != 0 {
			return c
		}
		if c := cmp.Compare(a.lon, b.lon); c != 0 {
			return c
		}
		return strings.Compare(a.location, b.location)
	})

	raw := make([]int64, len(places))
	for i, p := range places {
		raw[i] = visits[p]
	}
	adjusted := AdjustToMedian(raw)

	records := make([]models.PopularityRecord, len(places))
	for i, p := range places {
		records[i] = models.PopularityRecord{
			Latitude:       p.lat,
			Longitude:      p.lon,
			Location:       p.location,
			AdjustedCounts: adjusted[i],
		}
	}
	return records
}

// AdjustToMedian rescales raw counts relative to their median
func AdjustToMedian(raw []int64) []int64 {
	median := Median(raw)
	out := make([]int64, len(raw))
	for i, v := range raw {
		if median == 0 {
			out[i] = v
			continue
		}
		out[i] = int64(math.RoundToEven(float64(v) / median * popularityScale))
	}
	return out
}
