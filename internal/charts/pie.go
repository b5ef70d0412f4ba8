package charts

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// pieChart is a plot.Plotter drawing wedges around the center of the data area
type pieChart struct {
	values    []float64
	labels    []string
	colors    []color.Color
	start     float64 // radians
	clockwise bool

	// radius is a fraction of half the shorter side of the canvas
	radius float64
}

func newPieChart(spec PieSpec) *pieChart {
	colors := make([]color.Color, len(spec.Values))
	for i := range colors {
		colors[i] = plotutil.Color(i)
	}
	return &pieChart{
		values:    spec.Values,
		labels:    spec.Labels,
		colors:    colors,
		start:     spec.StartAngle * math.Pi / 180,
		clockwise: spec.Clockwise,
		radius:    0.8,
	}
}

// wedge is the start and sweep of one slice, in radians
type wedge struct {
	start, sweep float64
	percent      float64
}

// wedges splits the circle in proportion to the values
func (pc *pieChart) wedges() []wedge {
	total := 0.0
	for _, v := range pc.values {
		total += v
	}
	if total <= 0 {
		return nil
	}

	out := make([]wedge, len(pc.values))
	angle := pc.start
	for i, v := range pc.values {
		sweep := 2 * math.Pi * v / total
		if pc.clockwise {
			sweep = -sweep
		}
		out[i] = wedge{start: angle, sweep: sweep, percent: v / total * 100}
		angle += sweep
	}
	return out
}

// Plot implements plot.Plotter
func (pc *pieChart) Plot(c draw.Canvas, p *plot.Plot) {
	size := c.Size()
	side := size.X
	if size.Y < side {
		side = size.Y
	}
	r := side / 2 * vg.Length(pc.radius)
	center := vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: (c.Min.Y + c.Max.Y) / 2}

	pctStyle := p.Legend.TextStyle
	pctStyle.XAlign = text.XCenter
	pctStyle.YAlign = text.YCenter
	labelStyle := pctStyle

	edge := draw.LineStyle{Color: color.White, Width: vg.Points(1)}

	for i, w := range pc.wedges() {
		var path vg.Path
		path.Move(center)
		path.Arc(center, r, w.start, w.sweep)
		path.Close()

		c.SetColor(pc.colors[i])
		c.Fill(path)
		c.SetLineStyle(edge)
		c.Stroke(path)

		mid := w.start + w.sweep/2
		c.FillText(pctStyle, polar(center, r*0.6, mid), fmt.Sprintf("%.1f%%", w.percent))
		c.FillText(labelStyle, polar(center, r*1.1, mid), pc.labels[i])
	}
}

// DataRange implements plot.DataRanger with a unit square around the pie
func (pc *pieChart) DataRange() (xmin, xmax, ymin, ymax float64) {
	return -1, 1, -1, 1
}

func polar(center vg.Point, r vg.Length, angle float64) vg.Point {
	return vg.Point{
		X: center.X + r*vg.Length(math.Cos(angle)),
		Y: center.Y + r*vg.Length(math.Sin(angle)),
	}
}

// wedgeThumbnail draws a legend swatch
type wedgeThumbnail struct {
	color color.Color
}

// Thumbnail implements plot.Thumbnailer
func (t wedgeThumbnail) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(t.color, c.ClipPolygonY(pts))
}
