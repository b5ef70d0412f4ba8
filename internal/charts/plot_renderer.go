package charts

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/config"
	apperrors "github.com/Fekt0ral/Exploratory-data-analysis-project/internal/errors"
)

// heatMapPalette is the sequential yellow-green-blue scheme
const (
	heatMapPalette     = "YlGnBu"
	heatMapPaletteSize = 9
)

// PlotRenderer draws charts with gonum/plot and saves them as images in
// the output directory. Each call builds and discards its own plot.
type PlotRenderer struct {
	paths  *config.Paths
	cfg    config.ChartsConfig
	logger *slog.Logger
}

// NewPlotRenderer creates a renderer writing into paths' output directory
func NewPlotRenderer(paths *config.Paths, cfg config.ChartsConfig, logger *slog.Logger) *PlotRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlotRenderer{paths: paths, cfg: cfg, logger: logger}
}

// Histogram implements Renderer
func (r *PlotRenderer) Histogram(ctx context.Context, spec HistogramSpec) (string, error) {
	p := newPlot(spec.Meta)

	h, err := plotter.NewHist(plotter.Values(spec.Values), spec.Bins)
	if err != nil {
		return "", renderError(spec.Meta, err)
	}
	h.FillColor = plotutil.Color(0)
	h.LineStyle.Color = color.Black
	p.Add(h)

	return r.save(ctx, p, spec.Meta, r.cfg.Width, r.cfg.Height)
}

// BoxPlot implements Renderer
func (r *PlotRenderer) BoxPlot(ctx context.Context, spec BoxPlotSpec) (string, error) {
	p := newPlot(spec.Meta)

	labels := make([]string, len(spec.Groups))
	for i, g := range spec.Groups {
		box, err := plotter.NewBoxPlot(vg.Points(40), float64(i), plotter.Values(g.Values))
		if err != nil {
			return "", renderError(spec.Meta, fmt.Errorf("group %s: %w", g.Label, err))
		}
		box.FillColor = plotutil.Color(i)
		p.Add(box)
		labels[i] = g.Label
	}
	p.NominalX(labels...)

	return r.save(ctx, p, spec.Meta, r.cfg.Width, r.cfg.Height)
}

// Bar implements Renderer
func (r *PlotRenderer) Bar(ctx context.Context, spec BarSpec) (string, error) {
	p := newPlot(spec.Meta)

	bars, err := plotter.NewBarChart(plotter.Values(spec.Values), vg.Points(20))
	if err != nil {
		return "", renderError(spec.Meta, err)
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(spec.Labels...)

	p.Y.Min = 0
	if spec.YMax > 0 {
		p.Y.Max = spec.YMax
	}
	if spec.LabelRotation != 0 {
		p.X.Tick.Label.Rotation = spec.LabelRotation * math.Pi / 180
		p.X.Tick.Label.XAlign = text.XRight
		p.X.Tick.Label.YAlign = text.YCenter
	}

	return r.save(ctx, p, spec.Meta, r.cfg.Width, r.cfg.Height)
}

// HeatMap implements Renderer
func (r *PlotRenderer) HeatMap(ctx context.Context, spec HeatMapSpec) (string, error) {
	p := newPlot(spec.Meta)

	pal, err := brewer.GetPalette(brewer.TypeSequential, heatMapPalette, heatMapPaletteSize)
	if err != nil {
		return "", renderError(spec.Meta, err)
	}

	grid := heatGrid(spec.Values)
	hm := plotter.NewHeatMap(grid, pal)
	if hm.Min == hm.Max {
		// a flat grid has no color range
		hm.Max = hm.Min + 1
	}
	p.Add(hm)

	p.X.Tick.Marker = labelTicks(spec.ColumnLabels, false)
	p.Y.Tick.Marker = labelTicks(spec.RowLabels, true)

	return r.save(ctx, p, spec.Meta, r.cfg.HeatMapWidth, r.cfg.HeatMapHeight)
}

// Pie implements Renderer
func (r *PlotRenderer) Pie(ctx context.Context, spec PieSpec) (string, error) {
	p := newPlot(spec.Meta)
	p.HideAxes()

	pie := newPieChart(spec)
	p.Add(pie)

	p.Legend.Top = true
	if spec.LegendTitle != "" {
		p.Legend.Add(spec.LegendTitle)
	}
	for i, label := range spec.Labels {
		p.Legend.Add(label, wedgeThumbnail{color: pie.colors[i]})
	}

	return r.save(ctx, p, spec.Meta, r.cfg.Width, r.cfg.Height)
}

func newPlot(meta Meta) *plot.Plot {
	p := plot.New()
	p.Title.Text = meta.Title
	p.X.Label.Text = meta.XLabel
	p.Y.Label.Text = meta.YLabel
	return p
}

func (r *PlotRenderer) save(ctx context.Context, p *plot.Plot, meta Meta, width, height float64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := r.paths.GetOutputPath(meta.FileName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", apperrors.NewStorageError("failed to create chart directory", err).WithContext("path", path)
	}
	if err := p.Save(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, path); err != nil {
		return "", apperrors.NewStorageError("failed to save chart", err).WithContext("path", path)
	}

	r.logger.DebugContext(ctx, "chart saved",
		slog.String("chart", meta.FileName),
		slog.String("path", path))
	return path, nil
}

func renderError(meta Meta, err error) error {
	return apperrors.NewRenderError("failed to build chart", err).WithContext("chart", meta.FileName)
}

// heatGrid adapts Values[row][column] to plotter.GridXYZ with unit cells.
// Row 0 is drawn at the top.
type heatGrid [][]float64

func (g heatGrid) Dims() (c, r int) {
	if len(g) == 0 {
		return 0, 0
	}
	return len(g[0]), len(g)
}

func (g heatGrid) Z(c, r int) float64 { return g[r][c] }
func (g heatGrid) X(c int) float64    { return float64(c) }
func (g heatGrid) Y(r int) float64    { return float64(len(g) - 1 - r) }

// labelTicks places one label at each integer position. Reversed labels
// run from the top of the axis down.
func labelTicks(labels []string, reversed bool) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(labels))
	for i, l := range labels {
		pos := i
		if reversed {
			pos = len(labels) - 1 - i
		}
		ticks[i] = plot.Tick{Value: float64(pos), Label: l}
	}
	return ticks
}
