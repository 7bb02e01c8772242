package spatial

import (
	"github.com/paulmach/orb"

	"github.com/amateurbeekeeper/data-visulisation/internal/models"
)

// DatasetBounds computes the bounding box and centre of ds.
// ok is false for an empty dataset.
func DatasetBounds(ds models.Dataset) (bounds models.Bounds, ok bool) {
	if len(ds) == 0 {
		return models.Bounds{}, false
	}

	// orb points are (x=lon, y=lat)
	mp := make(orb.MultiPoint, 0, len(ds))
	for _, r := range ds {
		mp = append(mp, orb.Point{r.Longitude, r.Latitude})
	}
	b := mp.Bound()
	center := b.Center()

	return models.Bounds{
		Min:    [2]float64{b.Min.Lat(), b.Min.Lon()},
		Max:    [2]float64{b.Max.Lat(), b.Max.Lon()},
		Center: [2]float64{center.Lat(), center.Lon()},
	}, true
}
