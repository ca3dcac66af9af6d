package secondary

// BarDatum is one labeled bar. Slices of BarDatum arrive in final display
// order; the renderer must not resort them.
type BarDatum struct {
	Label string
	Value float64
}

// ScatterGroup is one legend entry of the geo scatter with its points.
type ScatterGroup struct {
	Label string
	Xs    []float64
	Ys    []float64
}

// ChartRenderer saves one chart per call into the output location under the
// given file name, overwriting any previous artifact of the same name.
type ChartRenderer interface {
	// Bars renders a labeled bar chart.
	Bars(filename, title, xLabel, yLabel string, data []BarDatum) error

	// Histogram renders a binned value distribution. With logScale the
	// count axis uses a logarithmic range to expose the tail.
	Histogram(filename, title, xLabel, yLabel string, values []float64, bins int, logScale bool) error

	// Heatmap renders a dense grid, rows × columns, darker meaning more.
	Heatmap(filename, title, xLabel, yLabel string, rowLabels, colLabels []string, grid [][]int) error

	// Scatter renders one dot series per group with a legend.
	Scatter(filename, title, xLabel, yLabel string, groups []ScatterGroup) error
}
