package charts

import (
	"context"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/config"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/dataprocessing"
)

// Chart is one image the visualizer produces
type Chart struct {
	FileName string
	// Path is empty when the chart was skipped
	Path    string
	Skipped bool
}

// chartJob builds and renders one chart. It returns skip when the table
// has nothing to draw.
type chartJob struct {
	fileName string
	render   func(ctx context.Context, t *dataprocessing.Table) (path string, skip bool, err error)
}

// Visualizer renders the fixed set of charts from an enriched table
type Visualizer struct {
	renderer    Renderer
	parallelism int
	logger      *slog.Logger
}

// NewVisualizer creates a visualizer. Charts are rendered one at a time
// unless parallelism is greater than one.
func NewVisualizer(renderer Renderer, parallelism int, logger *slog.Logger) *Visualizer {
	if parallelism < 1 {
		parallelism = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Visualizer{renderer: renderer, parallelism: parallelism, logger: logger}
}

// RenderAll renders every chart and returns them in a fixed order.
// Charts with nothing to draw are skipped with a warning. The first error
// cancels the remaining charts; images already written stay on disk.
func (v *Visualizer) RenderAll(ctx context.Context, t *dataprocessing.Table) ([]Chart, error) {
	jobs := v.jobs()
	charts := make([]Chart, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.parallelism)

	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			path, skip, err := job.render(gctx, t)
			if err != nil {
				v.logger.ErrorContext(gctx, "chart rendering failed",
					slog.String("chart", job.fileName),
					slog.String("error", err.Error()))
				return err
			}

			charts[i] = Chart{FileName: job.fileName, Path: path, Skipped: skip}
			if skip {
				v.logger.WarnContext(gctx, "chart skipped, no data to draw",
					slog.String("chart", job.fileName))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return charts, nil
}

func (v *Visualizer) jobs() []chartJob {
	return []chartJob{
		{config.AgeDistributionChart, v.ageDistribution},
		{config.AmountByGenderChart, v.amountByGender},
		{config.AmountByCountryChart, v.amountByCountry},
		{config.TopCategoriesChart, v.topCategories},
		{config.OrdersByMonthsChart, v.ordersByMonths},
		{config.AgeQuantityRevenueChart, v.ageQuantityRevenue},
		{config.PaymentMethodsChart, v.paymentMethods},
	}
}

func (v *Visualizer) ageDistribution(ctx context.Context, t *dataprocessing.Table) (string, bool, error) {
	ages := dataprocessing.AgeValues(t)
	if len(ages) == 0 {
		return "", true, nil
	}
	path, err := v.renderer.Histogram(ctx, HistogramSpec{
		Meta: Meta{
			Title:    "Age distribution",
			XLabel:   "Age",
			YLabel:   "Count",
			FileName: config.AgeDistributionChart,
		},
		Values: ages,
		Bins:   config.AgeHistogramBins,
	})
	return path, false, err
}

func (v *Visualizer) amountByGender(ctx context.Context, t *dataprocessing.Table) (string, bool, error) {
	groups := dataprocessing.AmountByGender(t)
	if len(groups) == 0 {
		return "", true, nil
	}
	spec := BoxPlotSpec{
		Meta: Meta{
			Title:    "Total amount distribution by gender",
			XLabel:   "Gender",
			YLabel:   "Total amount",
			FileName: config.AmountByGenderChart,
		},
		Groups: make([]BoxGroup, len(groups)),
	}
	for i, g := range groups {
		spec.Groups[i] = BoxGroup{Label: g.Group, Values: g.Values}
	}
	path, err := v.renderer.BoxPlot(ctx, spec)
	return path, false, err
}

func (v *Visualizer) amountByCountry(ctx context.Context, t *dataprocessing.Table) (string, bool, error) {
	sums := dataprocessing.RevenueByCountry(t)
	if len(sums) == 0 {
		return "", true, nil
	}
	labels, values := keyedSeries(sums)
	path, err := v.renderer.Bar(ctx, BarSpec{
		Meta: Meta{
			Title:    "Total revenue by country",
			XLabel:   "Country",
			YLabel:   "Total revenue",
			FileName: config.AmountByCountryChart,
		},
		Labels: labels,
		Values: values,
	})
	return path, false, err
}

func (v *Visualizer) topCategories(ctx context.Context, t *dataprocessing.Table) (string, bool, error) {
	top := dataprocessing.TopCategoriesByPrice(t, config.TopCategoryCount)
	if len(top) == 0 {
		return "", true, nil
	}
	labels, values := keyedSeries(top)
	path, err := v.renderer.Bar(ctx, BarSpec{
		Meta: Meta{
			Title:    "Top 5 product categories by revenue",
			XLabel:   "Product category",
			YLabel:   "Total revenue",
			FileName: config.TopCategoriesChart,
		},
		Labels: labels,
		Values: values,
		// top is sorted descending
		YMax: values[0] * config.TopCategoryYScale,
	})
	return path, false, err
}

func (v *Visualizer) ordersByMonths(ctx context.Context, t *dataprocessing.Table) (string, bool, error) {
	if t.Len() == 0 {
		return "", true, nil
	}
	counts := dataprocessing.OrdersByMonth(t)
	labels := make([]string, len(counts))
	values := make([]float64, len(counts))
	for i, c := range counts {
		labels[i] = c.Month.String()
		values[i] = float64(c.Count)
	}
	path, err := v.renderer.Bar(ctx, BarSpec{
		Meta: Meta{
			Title:    "Months distribution",
			XLabel:   "Month",
			YLabel:   "Count",
			FileName: config.OrdersByMonthsChart,
		},
		Labels:        labels,
		Values:        values,
		LabelRotation: config.XLabelRotationDeg,
	})
	return path, false, err
}

func (v *Visualizer) ageQuantityRevenue(ctx context.Context, t *dataprocessing.Table) (string, bool, error) {
	pivot := dataprocessing.AgeQuantityPivot(t)
	if pivot.Empty() {
		return "", true, nil
	}
	spec := HeatMapSpec{
		Meta: Meta{
			Title:    "Revenue heat map between age and quantity",
			XLabel:   "Quantity",
			YLabel:   "Age",
			FileName: config.AgeQuantityRevenueChart,
		},
		RowLabels:    make([]string, len(pivot.Ages)),
		ColumnLabels: make([]string, len(pivot.Quantities)),
		Values:       make([][]float64, len(pivot.Ages)),
	}
	for i, age := range pivot.Ages {
		spec.RowLabels[i] = strconv.Itoa(age)
		spec.Values[i] = make([]float64, len(pivot.Quantities))
		for j := range pivot.Quantities {
			spec.Values[i][j] = pivot.Cells[i][j].InexactFloat64()
		}
	}
	for j, qty := range pivot.Quantities {
		spec.ColumnLabels[j] = strconv.FormatInt(qty, 10)
	}
	path, err := v.renderer.HeatMap(ctx, spec)
	return path, false, err
}

func (v *Visualizer) paymentMethods(ctx context.Context, t *dataprocessing.Table) (string, bool, error) {
	shares := dataprocessing.PaymentShares(t)
	if len(shares) == 0 {
		return "", true, nil
	}
	spec := PieSpec{
		Meta: Meta{
			Title:    "Payment methods distribution",
			FileName: config.PaymentMethodsChart,
		},
		Labels:      make([]string, len(shares)),
		Values:      make([]float64, len(shares)),
		StartAngle:  config.PieStartAngleDeg,
		Clockwise:   true,
		LegendTitle: "Payment Method",
	}
	for i, s := range shares {
		spec.Labels[i] = s.Key
		spec.Values[i] = float64(s.Count)
	}
	path, err := v.renderer.Pie(ctx, spec)
	return path, false, err
}

func keyedSeries(sums []dataprocessing.KeyedAmount) ([]string, []float64) {
	labels := make([]string, len(sums))
	values := make([]float64, len(sums))
	for i, s := range sums {
		labels[i] = s.Key
		values[i] = s.Amount.InexactFloat64()
	}
	return labels, values
}
