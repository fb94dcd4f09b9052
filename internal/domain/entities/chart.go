package entities

// ChartKind names how a front end should draw a chart.
type ChartKind string

const (
	ChartKindPie  ChartKind = "pie"
	ChartKindBar  ChartKind = "bar"
	ChartKindLine ChartKind = "line"
)

// Chart is a renderer-agnostic chart description.
type Chart struct {
	Kind   ChartKind   `json:"kind"`
	Title  string      `json:"title"`
	XLabel string      `json:"x_label,omitempty"`
	YLabel string      `json:"y_label,omitempty"`
	Points []DataPoint `json:"points"`
	// XTickStep labels one category out of XTickStep on the x axis; zero labels all.
	XTickStep int `json:"x_tick_step,omitempty"`
}

// DataPoint is one labelled value of a chart.
type DataPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ShareSlice is the average market share of one film category.
type ShareSlice struct {
	Category string  `json:"category"`
	Average  float64 `json:"average"`
}

// DepartmentCount is the number of cinemas in a department.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}
