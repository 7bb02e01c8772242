package models

// ChartQuery holds the query parameters shared by every chart endpoint
type ChartQuery struct {
	Dataset  string `form:"dataset"`
	Year     string `form:"year"`
	Location string `form:"location"` // only honoured by /unique_coordinates
}

// Defaults fills the documented defaults for missing parameters
func (q *ChartQuery) Defaults() {
	if q.Dataset == "" {
		q.Dataset = "edinburgh"
	}
	if q.Year == "" {
		q.Year = "all"
	}
}
