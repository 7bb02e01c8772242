package stats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/amateurbeekeeper/data-visulisation/internal/models"
)

// AllYears is the year selector that disables filtering
const AllYears = "all"

// ErrInvalidYear is returned for a selector that is neither "all" nor an integer
var ErrInvalidYear = errors.New("invalid year selector")

// YearFilter is a parsed year selector
type YearFilter struct {
	All  bool
	Year int
}

// ParseYear parses "all", "" or an integer year
func ParseYear(selector string) (YearFilter, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" || selector == AllYears {
		return YearFilter{All: true}, nil
	}
	year, err := strconv.Atoi(selector)
	if err != nil {
		return YearFilter{}, fmt.Errorf("%w: %q", ErrInvalidYear, selector)
	}
	return YearFilter{Year: year}, nil
}

// String renders the selector back in canonical form
func (f YearFilter) String() string {
	if f.All {
		return AllYears
	}
	return strconv.Itoa(f.Year)
}

// Apply keeps the records whose start time falls in the filter's year.
// The "all" filter returns ds itself; other filters return a new slice.
func (f YearFilter) Apply(ds models.Dataset) models.Dataset {
	if f.All {
		return ds
	}
	out := make(models.Dataset, 0)
	for _, r := range ds {
		if r.StartTime.Year() == f.Year {
			out = append(out, r)
		}
	}
	return out
}

// FilterByYear parses selector and applies it to ds
func FilterByYear(ds models.Dataset, selector string) (models.Dataset, error) {
	f, err := ParseYear(selector)
	if err != nil {
		return nil, err
	}
	return f.Apply(ds), nil
}

// Years lists the distinct start-time years in order of first appearance
func Years(ds models.Dataset) []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, r := range ds {
		y := r.StartTime.Year()
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	return years
}
