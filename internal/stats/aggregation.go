package stats

import (
	"cmp"
	"slices"
	"strings"

	"github.com/amateurbeekeeper/data-visulisation/internal/models"
)

// Order controls how buckets are ranked after grouping
type Order int

const (
	// Grouped keeps ascending key order
	Grouped Order = iota
	// Descending ranks by value, largest first
	Descending
	// Ascending ranks by value, smallest first
	Ascending
)

// Bucket is one (key, summed count) row
type Bucket[K comparable] struct {
	Key   K
	Value int64
}

// Deriver maps a record to its grouping key and orders keys
type Deriver[K comparable] struct {
	Key     func(models.ActivityRecord) K
	Compare func(a, b K) int
}

// Options tunes the pipeline after grouping
type Options[K comparable] struct {
	// Backfill keys get a zero bucket when absent, appended after the
	// grouped keys and before ranking.
	Backfill []K
	Order    Order
	// TopK truncates after ranking; 0 keeps every bucket.
	TopK int
}

// Aggregate groups ds by the derived key and sums the count column.
// Buckets come out in ascending key order unless opts asks for ranking;
// ranking is a stable sort so ties keep that order.
func Aggregate[K comparable](ds models.Dataset, d Deriver[K], opts Options[K]) []Bucket[K] {
	sums := make(map[K]int64)
	keys := make([]K, 0)
	for _, r := range ds {
		k := d.Key(r)
		if _, ok := sums[k]; !ok {
			keys = append(keys, k)
		}
		sums[k] += r.Count
	}

	slices.SortFunc(keys, d.Compare)

	buckets := make([]Bucket[K], 0, len(keys)+len(opts.Backfill))
	for _, k := range keys {
		buckets = append(buckets, Bucket[K]{Key: k, Value: sums[k]})
	}

	if len(opts.Backfill) > 0 {
		missing := make([]K, 0, len(opts.Backfill))
		for _, k := range opts.Backfill {
			if _, ok := sums[k]; !ok {
				missing = append(missing, k)
			}
		}
		slices.SortFunc(missing, d.Compare)
		for _, k := range missing {
			buckets = append(buckets, Bucket[K]{Key: k})
		}
	}

	switch opts.Order {
	case Descending:
		slices.SortStableFunc(buckets, func(a, b Bucket[K]) int {
			return cmp.Compare(b.Value, a.Value)
		})
	case Ascending:
		slices.SortStableFunc(buckets, func(a, b Bucket[K]) int {
			return cmp.Compare(a.Value, b.Value)
		})
	}

	if opts.TopK > 0 && len(buckets) > opts.TopK {
		buckets = buckets[:opts.TopK]
	}
	return buckets
}

// SumValues totals the bucket values
func SumValues[K comparable](buckets []Bucket[K]) int64 {
	var total int64
	for _, b := range buckets {
		total += b.Value
	}
	return total
}

// MonthDay is a calendar day without its year
type MonthDay struct {
	Month int
	Day   int
}

// LatLon is a coordinate grouping key
type LatLon [2]float64

// ByLocation groups on the location label
var ByLocation = Deriver[string]{
	Key:     func(r models.ActivityRecord) string { return r.Location },
	Compare: strings.Compare,
}

// ByWeekday groups on the English weekday name. Names sort alphabetically.
var ByWeekday = Deriver[string]{
	Key:     func(r models.ActivityRecord) string { return r.StartTime.Weekday().String() },
	Compare: strings.Compare,
}

// ByHour groups on the hour of day, 0-23
var ByHour = Deriver[int]{
	Key:     func(r models.ActivityRecord) int { return r.StartTime.Hour() },
	Compare: cmp.Compare[int],
}

// ByMonth groups on the month number, 1-12
var ByMonth = Deriver[int]{
	Key:     func(r models.ActivityRecord) int { return int(r.StartTime.Month()) },
	Compare: cmp.Compare[int],
}

// ByMonthDay groups on (month, day) across years
var ByMonthDay = Deriver[MonthDay]{
	Key: func(r models.ActivityRecord) MonthDay {
		return MonthDay{Month: int(r.StartTime.Month()), Day: r.StartTime.Day()}
	},
	Compare: func(a, b MonthDay) int {
		if c := cmp.Compare(a.Month, b.Month); c != 0 {
			return c
		}
		return cmp.Compare(a.Day, b.Day)
	},
}

// ByDate groups on the calendar date rendered as YYYY-MM-DD
var ByDate = Deriver[string]{
	Key:     func(r models.ActivityRecord) string { return r.StartTime.Format("2006-01-02") },
	Compare: strings.Compare,
}

// ByCoordinate groups on (latitude, longitude); digits >= 0 rounds both first
func ByCoordinate(digits int) Deriver[LatLon] {
	return Deriver[LatLon]{
		Key: func(r models.ActivityRecord) LatLon {
			if digits < 0 {
				return LatLon{r.Latitude, r.Longitude}
			}
			return LatLon{Round(r.Latitude, digits), Round(r.Longitude, digits)}
		},
		Compare: CompareLatLon,
	}
}

// CompareLatLon orders by latitude then longitude
func CompareLatLon(a, b LatLon) int {
	if c := cmp.Compare(a[0], b[0]); c != 0 {
		return c
	}
	return cmp.Compare(a[1], b[1])
}

// AllHours lists 0..23 for hourly backfill
func AllHours() []int {
	hours := make([]int, 24)
	for h := range hours {
		hours[h] = h
	}
	return hours
}
