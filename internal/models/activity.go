package models

import "time"

// ActivityRecord is one row of a path-usage log
type ActivityRecord struct {
	StartTime time.Time `json:"startTime" db:"startTime"`
	Latitude  float64   `json:"latitude" db:"latitude"`
	Longitude float64   `json:"longitude" db:"longitude"`
	Location  string    `json:"location" db:"location"`
	Count     int64     `json:"count" db:"count"` // activity events folded into this row, never negative
}

// Dataset is an ordered, read-only table of activity records.
// Callers must not modify the slice or its elements after load.
type Dataset []ActivityRecord

// TotalCount sums the count column
func (d Dataset) TotalCount() int64 {
	var total int64
	for _, r := range d {
		total += r.Count
	}
	return total
}
