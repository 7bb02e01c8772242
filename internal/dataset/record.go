package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/amateurbeekeeper/data-visulisation/internal/models"
)

// ErrInvalidRecord marks a source row that cannot become an ActivityRecord
var ErrInvalidRecord = errors.New("invalid activity record")

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp accepts the ISO-like layouts found in the exported logs
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable startTime %q", ErrInvalidRecord, s)
}

// RawRecord is an unvalidated row as read from a source
type RawRecord struct {
	StartTime string
	Latitude  string
	Longitude string
	Location  string
	Count     string
}

// Parse validates the row and converts it
func (raw RawRecord) Parse() (models.ActivityRecord, error) {
	ts, err := ParseTimestamp(raw.StartTime)
	if err != nil {
		return models.ActivityRecord{}, err
	}
	lat, err := parseFloat("latitude", raw.Latitude)
	if err != nil {
		return models.ActivityRecord{}, err
	}
	lon, err := parseFloat("longitude", raw.Longitude)
	if err != nil {
		return models.ActivityRecord{}, err
	}
	count, err := parseCount(raw.Count)
	if err != nil {
		return models.ActivityRecord{}, err
	}

	return models.ActivityRecord{
		StartTime: ts,
		Latitude:  lat,
		Longitude: lon,
		Location:  raw.Location,
		Count:     count,
	}, nil
}

// Validate checks the invariants of an already typed record
func Validate(r models.ActivityRecord) error {
	if r.Count < 0 {
		return fmt.Errorf("%w: negative count %d", ErrInvalidRecord, r.Count)
	}
	if math.IsNaN(r.Latitude) || math.IsNaN(r.Longitude) {
		return fmt.Errorf("%w: NaN coordinate", ErrInvalidRecord)
	}
	return nil
}

func parseFloat(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: bad %s %q", ErrInvalidRecord, field, s)
	}
	return v, nil
}

// parseCount accepts integers and integral floats such as "3.0"
func parseCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%w: bad count %q", ErrInvalidRecord, s)
		}
		n = int64(f)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative count %d", ErrInvalidRecord, n)
	}
	return n, nil
}
