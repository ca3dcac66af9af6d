package app

import (
	"context"

	"github.com/example/srviz/internal/ports/secondary"
)

// Ensure the mocks implement the ports.
var (
	_ secondary.RequestStore  = (*mockStore)(nil)
	_ secondary.ChartRenderer = (*recordingRenderer)(nil)
)

// mockStore implements secondary.RequestStore from canned values.
type mockStore struct {
	tables    []string
	columns   map[string][]string
	typeCount []secondary.TypeCount
	resolved  []float64
	allHours  []*float64
	deptStats []secondary.GroupStat
	volume    []secondary.GroupStat
	slowness  []secondary.GroupStat
	heat      []secondary.HeatCell
	geo       []secondary.GeoPoint

	err error // returned by every read when set
}

func (m *mockStore) TableNames(ctx context.Context) ([]string, error) {
	return m.tables, m.err
}

func (m *mockStore) TableColumns(ctx context.Context, table string) ([]string, error) {
	return m.columns[table], m.err
}

func (m *mockStore) TopTypeCounts(ctx context.Context, table string, limit int) ([]secondary.TypeCount, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.typeCount) > limit {
		return m.typeCount[:limit], nil
	}
	return m.typeCount, nil
}

func (m *mockStore) ResolvedHours(ctx context.Context, table string) ([]float64, error) {
	return m.resolved, m.err
}

func (m *mockStore) AllResolutionHours(ctx context.Context, table string) ([]*float64, error) {
	return m.allHours, m.err
}

func (m *mockStore) DepartmentStats(ctx context.Context, table string) ([]secondary.GroupStat, error) {
	return m.deptStats, m.err
}

func (m *mockStore) AreaStatsByVolume(ctx context.Context, table string, minCount, limit int) ([]secondary.GroupStat, error) {
	return m.volume, m.err
}

func (m *mockStore) AreaStatsBySlowness(ctx context.Context, table string, minCount, limit int) ([]secondary.GroupStat, error) {
	return m.slowness, m.err
}

func (m *mockStore) HeatmapCells(ctx context.Context, table string) ([]secondary.HeatCell, error) {
	return m.heat, m.err
}

func (m *mockStore) GeoPoints(ctx context.Context, table string) ([]secondary.GeoPoint, error) {
	return m.geo, m.err
}

// renderCall records one renderer invocation.
type renderCall struct {
	kind     string // "bars", "histogram", "heatmap", "scatter"
	filename string
	title    string
	bars     []secondary.BarDatum
	values   []float64
	logScale bool
	rows     []string
	cols     []string
	grid     [][]int
	groups   []secondary.ScatterGroup
}

// recordingRenderer implements secondary.ChartRenderer by remembering calls.
type recordingRenderer struct {
	calls []renderCall
	err   error // returned by every render when set
}

func (r *recordingRenderer) Bars(filename, title, xLabel, yLabel string, data []secondary.BarDatum) error {
	if r.err != nil {
		return r.err
	}
	r.calls = append(r.calls, renderCall{kind: "bars", filename: filename, title: title, bars: data})
	return nil
}

func (r *recordingRenderer) Histogram(filename, title, xLabel, yLabel string, values []float64, bins int, logScale bool) error {
	if r.err != nil {
		return r.err
	}
	r.calls = append(r.calls, renderCall{kind: "histogram", filename: filename, title: title, values: values, logScale: logScale})
	return nil
}

func (r *recordingRenderer) Heatmap(filename, title, xLabel, yLabel string, rowLabels, colLabels []string, grid [][]int) error {
	if r.err != nil {
		return r.err
	}
	r.calls = append(r.calls, renderCall{kind: "heatmap", filename: filename, title: title, rows: rowLabels, cols: colLabels, grid: grid})
	return nil
}

func (r *recordingRenderer) Scatter(filename, title, xLabel, yLabel string, groups []secondary.ScatterGroup) error {
	if r.err != nil {
		return r.err
	}
	r.calls = append(r.calls, renderCall{kind: "scatter", filename: filename, title: title, groups: groups})
	return nil
}

func (r *recordingRenderer) call(filename string) *renderCall {
	for i := range r.calls {
		if r.calls[i].filename == filename {
			return &r.calls[i]
		}
	}
	return nil
}
