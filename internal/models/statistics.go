package models

// ChartPoint is a named bar/line value
type ChartPoint struct {
	Name          string `json:"name"`
	ActivityCount int64  `json:"ActivityCount"`
}

// ScatterPoint is one bubble of the coordinate scatter chart
type ScatterPoint struct {
	ID    string  `json:"id"` // "lat,lon"
	X     float64 `json:"x"`  // latitude
	Y     float64 `json:"y"`  // longitude
	Value int64   `json:"value"`
}

// PathEdge is one spanning-tree edge between two [lat, lon] pairs
type PathEdge struct {
	Start [2]float64 `json:"start"`
	End   [2]float64 `json:"end"`
}

// PopularityRecord carries the median-relative visit intensity of a location
type PopularityRecord struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Location       string  `json:"location"`
	AdjustedCounts int64   `json:"adjusted_counts"`
}

// Bounds describes the bounding box of a dataset for the initial map view
type Bounds struct {
	Min    [2]float64 `json:"min"`
	Max    [2]float64 `json:"max"`
	Center [2]float64 `json:"center"`
}

// PathSummary summarises a spanning tree
type PathSummary struct {
	Nodes        int     `json:"nodes"`
	Edges        int     `json:"edges"`
	PlanarWeight float64 `json:"planar_weight"` // sum of edge weights in degree space
	LengthMeters float64 `json:"length_m"`      // great-circle length of all edges
}

// DatasetInfo is reported by the health endpoint
type DatasetInfo struct {
	Name    string `json:"name"`
	Records int    `json:"records"`
}
