// Package chart contains the go-chart implementation of the ChartRenderer
// port. Every method renders into memory first and writes the artifact only
// on success, so a failed render leaves no partial file.
package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/srviz/internal/ports/secondary"
)

const (
	chartWidth  = 1024
	chartHeight = 512
)

var colorOrange = drawing.Color{R: 255, G: 165, B: 0, A: 255}

// bucketColors maps the four-way scheme labels to series colors.
var bucketColors = map[string]drawing.Color{
	"0 hours":    chart.ColorGreen,
	"0–24 hours": chart.ColorBlue,
	"1–7 days":   colorOrange,
	"7+ days":    chart.ColorRed,
	"Open":       chart.ColorAlternateGray,
}

// Renderer implements secondary.ChartRenderer, saving PNG artifacts into a
// single output directory.
type Renderer struct {
	outDir string
}

// NewRenderer creates a renderer writing into outDir.
func NewRenderer(outDir string) *Renderer {
	return &Renderer{outDir: outDir}
}

// save writes a fully rendered artifact, creating the output directory on
// first use and overwriting any previous file of the same name.
func (r *Renderer) save(filename string, data []byte) error {
	if err := os.MkdirAll(r.outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(r.outDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// Bars renders a labeled bar chart in the order given.
func (r *Renderer) Bars(filename, title, xLabel, yLabel string, data []secondary.BarDatum) error {
	bars := make([]chart.Value, len(data))
	for i, d := range data {
		bars[i] = chart.Value{Label: d.Label, Value: d.Value}
	}

	barWidth := 60
	if n := len(bars); n > 0 && chartWidth/n < barWidth+20 {
		barWidth = chartWidth/n - 20
	}
	if barWidth < 4 {
		barWidth = 4
	}

	graph := chart.BarChart{
		Title:      title,
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 20}},
		XAxis:      chart.Style{TextRotationDegrees: 25},
		YAxis:      chart.YAxis{Name: yLabel},
		Bars:       bars,
	}
	// xLabel has no slot of its own on a BarChart; the bar labels carry it.
	_ = xLabel

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("failed to render bar chart: %w", err)
	}
	return r.save(filename, buf.Bytes())
}

// Histogram renders a binned distribution of values as adjacent bars.
func (r *Renderer) Histogram(filename, title, xLabel, yLabel string, values []float64, bins int, logScale bool) error {
	if len(values) == 0 {
		return fmt.Errorf("histogram needs at least one value")
	}
	if bins < 1 {
		bins = 1
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	width := (max - min) / float64(bins)
	if width == 0 {
		width = 1
	}

	counts := make([]int, bins)
	for _, v := range values {
		b := int((v - min) / width)
		if b >= bins {
			b = bins - 1
		}
		counts[b]++
	}

	bars := make([]chart.Value, bins)
	labelEvery := bins / 10
	if labelEvery < 1 {
		labelEvery = 1
	}
	for i, n := range counts {
		label := ""
		if i%labelEvery == 0 {
			label = fmt.Sprintf("%.0f", min+float64(i)*width)
		}
		bars[i] = chart.Value{Label: label, Value: float64(n)}
	}

	yAxis := chart.YAxis{Name: yLabel}
	if logScale {
		yAxis.Range = &chart.LogarithmicRange{}
	}

	barWidth := (chartWidth - 100) / bins
	if barWidth < 2 {
		barWidth = 2
	}

	graph := chart.BarChart{
		Title:      title,
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   barWidth,
		BarSpacing: 1,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 20}},
		YAxis:      yAxis,
		Bars:       bars,
	}
	_ = xLabel

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("failed to render histogram: %w", err)
	}
	return r.save(filename, buf.Bytes())
}

// Scatter renders one dot series per group with a legend. Axis ranges are
// padded explicitly so a degenerate (single-point or collinear) input still
// renders.
func (r *Renderer) Scatter(filename, title, xLabel, yLabel string, groups []secondary.ScatterGroup) error {
	if len(groups) == 0 {
		return fmt.Errorf("scatter needs at least one group")
	}

	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMin, yMax := math.Inf(1), math.Inf(-1)
	series := make([]chart.Series, 0, len(groups))
	for _, g := range groups {
		for i := range g.Xs {
			xMin = math.Min(xMin, g.Xs[i])
			xMax = math.Max(xMax, g.Xs[i])
			yMin = math.Min(yMin, g.Ys[i])
			yMax = math.Max(yMax, g.Ys[i])
		}
		col, ok := bucketColors[g.Label]
		if !ok {
			col = chart.ColorBlack
		}
		series = append(series, chart.ContinuousSeries{
			Name:    g.Label,
			XValues: g.Xs,
			YValues: g.Ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    2,
				DotColor:    col,
			},
		})
	}

	graph := chart.Chart{
		Title:      title,
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  xLabel,
			Range: paddedRange(xMin, xMax),
		},
		YAxis: chart.YAxis{
			Name:  yLabel,
			Range: paddedRange(yMin, yMax),
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("failed to render scatter: %w", err)
	}
	return r.save(filename, buf.Bytes())
}

func paddedRange(min, max float64) *chart.ContinuousRange {
	pad := (max - min) * 0.02
	if pad == 0 {
		pad = 0.01
	}
	return &chart.ContinuousRange{Min: min - pad, Max: max + pad}
}

// Heatmap layout constants (pixels).
const (
	heatLeft   = 100
	heatTop    = 40
	heatRight  = 90
	heatBottom = 30
	cellWidth  = 34
	cellHeight = 30
)

// Heatmap rasterizes the grid directly: go-chart has no matrix plot, so the
// cells are drawn with the image package and labeled with the basic bitmap
// font, darker blue meaning more requests.
func (r *Renderer) Heatmap(filename, title, xLabel, yLabel string, rowLabels, colLabels []string, grid [][]int) error {
	if len(grid) == 0 || len(grid) != len(rowLabels) {
		return fmt.Errorf("heatmap grid must have one row per label")
	}
	cols := len(colLabels)
	for _, row := range grid {
		if len(row) != cols {
			return fmt.Errorf("heatmap grid must have one column per label")
		}
	}

	maxCount := 0
	for _, row := range grid {
		for _, v := range row {
			if v > maxCount {
				maxCount = v
			}
		}
	}

	width := heatLeft + cols*cellWidth + heatRight
	height := heatTop + len(grid)*cellHeight + heatBottom
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	// White background.
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	for y, row := range grid {
		for x, v := range row {
			cell := image.Rect(
				heatLeft+x*cellWidth, heatTop+y*cellHeight,
				heatLeft+(x+1)*cellWidth, heatTop+(y+1)*cellHeight,
			)
			fillRect(img, cell, heatColor(v, maxCount))
		}
	}

	drawString(img, heatLeft, heatTop-18, title)
	for y, label := range rowLabels {
		w := stringWidth(label)
		drawString(img, heatLeft-8-w, heatTop+y*cellHeight+cellHeight/2+4, label)
	}
	for x, label := range colLabels {
		w := stringWidth(label)
		drawString(img, heatLeft+x*cellWidth+(cellWidth-w)/2, heatTop+len(grid)*cellHeight+16, label)
	}
	_ = xLabel
	_ = yLabel

	drawColorScale(img, width-heatRight+16, heatTop, len(grid)*cellHeight, maxCount)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode heatmap: %w", err)
	}
	return r.save(filename, buf.Bytes())
}

// heatColor interpolates white (0) to dark blue (max).
func heatColor(v, max int) color.RGBA {
	if max == 0 {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	t := float64(v) / float64(max)
	return color.RGBA{
		R: uint8(255 - 230*t),
		G: uint8(255 - 195*t),
		B: uint8(255 - 135*t),
		A: 255,
	}
}

func fillRect(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// drawColorScale draws a vertical min..max legend strip.
func drawColorScale(img *image.RGBA, x, y, height, max int) {
	const stripWidth = 14
	for i := 0; i < height; i++ {
		// Top of the strip is the maximum.
		v := max - i*max/height
		fillRect(img,
			image.Rect(x, y+i, x+stripWidth, y+i+1),
			heatColor(v, max),
		)
	}
	drawString(img, x+stripWidth+4, y+10, fmt.Sprintf("%d", max))
	drawString(img, x+stripWidth+4, y+height, "0")
}

func drawString(img *image.RGBA, x, y int, s string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func stringWidth(s string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(s).Ceil()
}

// Ensure Renderer implements the interface.
var _ secondary.ChartRenderer = (*Renderer)(nil)
