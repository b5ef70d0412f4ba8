package charts

import "context"

// Meta holds the parts every chart has
type Meta struct {
	Title    string
	XLabel   string
	YLabel   string
	FileName string
}

// HistogramSpec bins Values into Bins equal-width bins
type HistogramSpec struct {
	Meta
	Values []float64
	Bins   int
}

// BoxGroup is one box of a box plot
type BoxGroup struct {
	Label  string
	Values []float64
}

// BoxPlotSpec draws one box per group, left to right
type BoxPlotSpec struct {
	Meta
	Groups []BoxGroup
}

// BarSpec draws one bar per label
type BarSpec struct {
	Meta
	Labels []string
	Values []float64
	// YMax fixes the top of the value axis when positive
	YMax float64
	// LabelRotation rotates the category labels, in degrees
	LabelRotation float64
}

// HeatMapSpec colors a grid of Values[row][column]
type HeatMapSpec struct {
	Meta
	RowLabels    []string
	ColumnLabels []string
	Values       [][]float64
}

// PieSpec draws one wedge per label with its percentage of the total
type PieSpec struct {
	Meta
	Labels []string
	Values []float64
	// StartAngle is where the first wedge begins, in degrees counter-clockwise from 3 o'clock
	StartAngle  float64
	Clockwise   bool
	LegendTitle string
}

// Renderer draws charts and returns the path of each written image
type Renderer interface {
	Histogram(ctx context.Context, spec HistogramSpec) (string, error)
	BoxPlot(ctx context.Context, spec BoxPlotSpec) (string, error)
	Bar(ctx context.Context, spec BarSpec) (string, error)
	HeatMap(ctx context.Context, spec HeatMapSpec) (string, error)
	Pie(ctx context.Context, spec PieSpec) (string, error)
}
