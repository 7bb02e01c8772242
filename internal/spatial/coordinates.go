package spatial

import (
	"github.com/amateurbeekeeper/data-visulisation/internal/models"
	"github.com/amateurbeekeeper/data-visulisation/internal/stats"
)

// NoRounding keeps raw coordinates in UniqueCoordinates
const NoRounding = -1

// Coordinate is a (latitude, longitude) pair in degrees
type Coordinate struct {
	Lat float64
	Lon float64
}

// Pair renders the coordinate as [lat, lon]
func (c Coordinate) Pair() [2]float64 {
	return [2]float64{c.Lat, c.Lon}
}

// UniqueCoordinates extracts the distinct coordinates of ds in first-seen
// order, rounding both axes to roundDigits decimals first unless roundDigits
// is NoRounding. The order is significant: BuildMST numbers nodes by position.
func UniqueCoordinates(ds models.Dataset, roundDigits int) []Coordinate {
	seen := make(map[Coordinate]struct{}, len(ds))
	coords := make([]Coordinate, 0)
	for _, r := range ds {
		c := Coordinate{Lat: r.Latitude, Lon: r.Longitude}
		if roundDigits >= 0 {
			c = Coordinate{Lat: stats.Round(c.Lat, roundDigits), Lon: stats.Round(c.Lon, roundDigits)}
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		coords = append(coords, c)
	}
	return coords
}
