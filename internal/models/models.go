package models

type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartPie  ChartKind = "pie"
	ChartLine ChartKind = "line"
)

// Columns holds the display names of a result table.
type Columns struct {
	Category string `json:"category"`
	Series   string `json:"series,omitempty"`
	Value    string `json:"value"`
	Percent  string `json:"percent,omitempty"`
}

// ChartSpec tells the renderer how to draw a ViewResult.
type ChartSpec struct {
	Kind        ChartKind `json:"kind"`
	Title       string    `json:"title"`
	XTitle      string    `json:"x_title"`
	YTitle      string    `json:"y_title"`
	LegendTitle string    `json:"legend_title,omitempty"`
	Stacked     bool      `json:"stacked"`
	Horizontal  bool      `json:"horizontal"`
	Columns     Columns   `json:"columns"`
}

type ViewInfo struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Chart ChartSpec `json:"chart"`
}

type Row struct {
	Category string   `json:"category"`
	Series   string   `json:"series,omitempty"`
	Value    int64    `json:"value"`
	Percent  *float64 `json:"percent,omitempty"`
}

// ViewResult is the chart-ready table for one view. A nil Chart means
// the view is unknown and nothing should be drawn.
type ViewResult struct {
	View  string     `json:"view"`
	Chart *ChartSpec `json:"chart"`
	Rows  []Row      `json:"rows"`
}

func (r ViewResult) Empty() bool {
	return len(r.Rows) == 0
}

// Total sums the value column.
func (r ViewResult) Total() int64 {
	var t int64
	for _, row := range r.Rows {
		t += row.Value
	}
	return t
}

type State struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
