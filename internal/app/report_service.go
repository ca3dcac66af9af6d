package app

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/example/srviz/internal/config"
	"github.com/example/srviz/internal/core/bucket"
	"github.com/example/srviz/internal/core/pivot"
	"github.com/example/srviz/internal/core/sample"
	"github.com/example/srviz/internal/core/stats"
	"github.com/example/srviz/internal/ports/primary"
	"github.com/example/srviz/internal/ports/secondary"
)

// Aggregation parameters. These are part of the report contract, not
// configuration: only the scatter sample cap is externally adjustable.
const (
	topTypesLimit = 10
	trimQuantile  = 0.99
	trimmedBins   = 50
	logBins       = 60
	areaMinCount  = 50
	areaLimit     = 15
	scatterSeed   = 42
)

// Artifact names are stable identifiers so repeated runs overwrite the same
// files.
const (
	artifactTopTypes     = "01_top_request_types.png"
	artifactHistTrimmed  = "02_resolution_hist_trimmed.png"
	artifactHistLog      = "03_resolution_hist_log.png"
	artifactBuckets      = "04_resolution_buckets.png"
	artifactDepartments  = "05_avg_resolution_by_department.png"
	artifactAreaVolume   = "06a_top_community_areas_by_volume.png"
	artifactAreaSlowness = "06b_slowest_community_areas_by_avg_resolution.png"
	artifactHeatmap      = "07_requests_heatmap.png"
	artifactScatter      = "08_map_scatter_by_bucket.png"
)

// ReportServiceImpl implements the primary.ReportService interface.
type ReportServiceImpl struct {
	store    secondary.RequestStore
	renderer secondary.ChartRenderer
	cfg      config.Config
}

// NewReportService creates a new ReportService with injected dependencies.
func NewReportService(store secondary.RequestStore, renderer secondary.ChartRenderer, cfg config.Config) *ReportServiceImpl {
	return &ReportServiceImpl{store: store, renderer: renderer, cfg: cfg}
}

// Probe inspects the store without generating anything.
func (s *ReportServiceImpl) Probe(ctx context.Context) (*primary.SchemaReport, error) {
	info, err := ProbeSchema(ctx, s.store, s.cfg.Table)
	if err != nil {
		return nil, err
	}

	report := &primary.SchemaReport{
		Table:              s.cfg.Table,
		Tables:             info.TableNames(),
		HasResolutionHours: info.HasColumn(s.cfg.Table, ColumnResolutionHours),
	}
	if !report.HasResolutionHours {
		report.Advisories = missingColumnAdvisories(s.cfg.Table)
	}
	return report, nil
}

func missingColumnAdvisories(table string) []string {
	advisories := []string{
		fmt.Sprintf("column %q not found; reports that need it will be skipped", ColumnResolutionHours),
		"add and back-fill it with:",
	}
	for _, stmt := range RemediationStatements(table) {
		advisories = append(advisories, "  "+stmt)
	}
	return advisories
}

// Run probes the schema, then executes the eight reports in fixed order.
// Each report is independent: a skip or failure in one has no effect on the
// others. The returned error is non-nil only when the probe itself fails.
func (s *ReportServiceImpl) Run(ctx context.Context) (*primary.RunSummary, error) {
	info, err := ProbeSchema(ctx, s.store, s.cfg.Table)
	if err != nil {
		return nil, err
	}

	summary := &primary.RunSummary{OutDir: s.cfg.OutDir}
	if !info.HasColumn(s.cfg.Table, ColumnResolutionHours) {
		summary.Advisories = missingColumnAdvisories(s.cfg.Table)
	}

	histTrimmed, histLog := s.resolutionHistograms(ctx, info)
	summary.Outcomes = append(summary.Outcomes,
		s.topRequestTypes(ctx),
		histTrimmed,
		histLog,
		s.resolutionBuckets(ctx, info),
		s.avgResolutionByDepartment(ctx, info),
		s.communityAreaVolume(ctx, info),
		s.communityAreaSlowness(ctx, info),
		s.dayHourHeatmap(ctx),
		s.geoScatter(ctx, info),
	)
	return summary, nil
}

func generated(id, name, artifact string) primary.ReportOutcome {
	return primary.ReportOutcome{ID: id, Name: name, Artifact: artifact, Status: primary.StatusGenerated}
}

func skipped(id, name, reason string) primary.ReportOutcome {
	return primary.ReportOutcome{ID: id, Name: name, Status: primary.StatusSkipped, Detail: reason}
}

func failed(id, name string, err error) primary.ReportOutcome {
	return primary.ReportOutcome{ID: id, Name: name, Status: primary.StatusFailed, Detail: err.Error()}
}

// hasResolutionHours is the shared precondition of every duration report.
func (s *ReportServiceImpl) hasResolutionHours(info *SchemaInfo) bool {
	return info.HasColumn(s.cfg.Table, ColumnResolutionHours)
}

func (s *ReportServiceImpl) topRequestTypes(ctx context.Context) primary.ReportOutcome {
	const id, name = "1", "Top request types"

	counts, err := s.store.TopTypeCounts(ctx, s.cfg.Table, topTypesLimit)
	if err != nil {
		return failed(id, name, err)
	}
	if len(counts) == 0 {
		return skipped(id, name, "query returned no rows")
	}

	data := make([]secondary.BarDatum, len(counts))
	for i, c := range counts {
		data[i] = secondary.BarDatum{Label: c.Type, Value: float64(c.Count)}
	}
	if err := s.renderer.Bars(artifactTopTypes,
		"Top 10 Chicago 311 Request Types (Count)",
		"Request type", "Requests", data); err != nil {
		return failed(id, name, err)
	}
	return generated(id, name, artifactTopTypes)
}

// resolutionHistograms produces the trimmed and log-tail views from a single
// store read: both consume the same non-null sample.
func (s *ReportServiceImpl) resolutionHistograms(ctx context.Context, info *SchemaInfo) (primary.ReportOutcome, primary.ReportOutcome) {
	const (
		idTrimmed, nameTrimmed = "2a", "Resolution histogram (trimmed)"
		idLog, nameLog         = "2b", "Resolution histogram (log tail)"
	)

	if !s.hasResolutionHours(info) {
		reason := "resolution_hours column missing"
		return skipped(idTrimmed, nameTrimmed, reason), skipped(idLog, nameLog, reason)
	}

	hours, err := s.store.ResolvedHours(ctx, s.cfg.Table)
	if err != nil {
		return failed(idTrimmed, nameTrimmed, err), failed(idLog, nameLog, err)
	}
	if len(hours) == 0 {
		reason := "no non-null resolution_hours values"
		return skipped(idTrimmed, nameTrimmed, reason), skipped(idLog, nameLog, reason)
	}

	trimmed, _ := stats.TrimAtPercentile(hours, trimQuantile)

	outTrimmed := generated(idTrimmed, nameTrimmed, artifactHistTrimmed)
	if err := s.renderer.Histogram(artifactHistTrimmed,
		"Resolution Time Distribution (Trimmed at 99th Percentile)",
		"Resolution hours", "Count", trimmed, trimmedBins, false); err != nil {
		outTrimmed = failed(idTrimmed, nameTrimmed, err)
	}

	outLog := generated(idLog, nameLog, artifactHistLog)
	if err := s.renderer.Histogram(artifactHistLog,
		"Resolution Time Distribution (Log Y-Scale)",
		"Resolution hours", "Count (log scale)", hours, logBins, true); err != nil {
		outLog = failed(idLog, nameLog, err)
	}

	return outTrimmed, outLog
}

func (s *ReportServiceImpl) resolutionBuckets(ctx context.Context, info *SchemaInfo) primary.ReportOutcome {
	const id, name = "3", "Resolution buckets"

	if !s.hasResolutionHours(info) {
		return skipped(id, name, "resolution_hours column missing")
	}

	hours, err := s.store.AllResolutionHours(ctx, s.cfg.Table)
	if err != nil {
		return failed(id, name, err)
	}
	if len(hours) == 0 {
		return skipped(id, name, "query returned no rows")
	}

	counts := make(map[string]int)
	for _, h := range hours {
		counts[bucket.Five(h)]++
	}

	data := make([]secondary.BarDatum, 0, len(counts))
	for label, n := range counts {
		data = append(data, secondary.BarDatum{Label: label, Value: float64(n)})
	}
	// Descending count; equal counts keep the scheme's own band order.
	sort.SliceStable(data, func(i, j int) bool {
		if data[i].Value != data[j].Value {
			return data[i].Value > data[j].Value
		}
		return bucket.FiveIndex(data[i].Label) < bucket.FiveIndex(data[j].Label)
	})

	if err := s.renderer.Bars(artifactBuckets,
		"Resolution Time Buckets", "Bucket", "Count", data); err != nil {
		return failed(id, name, err)
	}
	return generated(id, name, artifactBuckets)
}

func (s *ReportServiceImpl) avgResolutionByDepartment(ctx context.Context, info *SchemaInfo) primary.ReportOutcome {
	const id, name = "4", "Avg resolution by department"

	if !s.hasResolutionHours(info) {
		return skipped(id, name, "resolution_hours column missing")
	}

	groups, err := s.store.DepartmentStats(ctx, s.cfg.Table)
	if err != nil {
		return failed(id, name, err)
	}
	if len(groups) == 0 {
		return skipped(id, name, "query returned no rows")
	}

	data := make([]secondary.BarDatum, len(groups))
	for i, g := range groups {
		data[i] = secondary.BarDatum{Label: g.Key, Value: g.AvgHours}
	}
	if err := s.renderer.Bars(artifactDepartments,
		"Average Resolution Hours by Department",
		"Department", "Avg resolution hours", data); err != nil {
		return failed(id, name, err)
	}
	return generated(id, name, artifactDepartments)
}

func (s *ReportServiceImpl) communityAreaVolume(ctx context.Context, info *SchemaInfo) primary.ReportOutcome {
	const id, name = "5a", "Community-area volume"

	if !s.hasResolutionHours(info) {
		return skipped(id, name, "resolution_hours column missing")
	}

	groups, err := s.store.AreaStatsByVolume(ctx, s.cfg.Table, areaMinCount, areaLimit)
	if err != nil {
		return failed(id, name, err)
	}
	if len(groups) == 0 {
		return skipped(id, name, fmt.Sprintf("no community area reaches %d requests", areaMinCount))
	}

	data := make([]secondary.BarDatum, len(groups))
	for i, g := range groups {
		data[i] = secondary.BarDatum{Label: g.Key, Value: float64(g.Count)}
	}
	if err := s.renderer.Bars(artifactAreaVolume,
		"Top Community Areas by Request Volume (n ≥ 50)",
		"Community area", "Requests", data); err != nil {
		return failed(id, name, err)
	}
	return generated(id, name, artifactAreaVolume)
}

func (s *ReportServiceImpl) communityAreaSlowness(ctx context.Context, info *SchemaInfo) primary.ReportOutcome {
	const id, name = "5b", "Community-area slowness"

	if !s.hasResolutionHours(info) {
		return skipped(id, name, "resolution_hours column missing")
	}

	groups, err := s.store.AreaStatsBySlowness(ctx, s.cfg.Table, areaMinCount, areaLimit)
	if err != nil {
		return failed(id, name, err)
	}
	if len(groups) == 0 {
		return skipped(id, name, fmt.Sprintf("no community area reaches %d requests", areaMinCount))
	}

	data := make([]secondary.BarDatum, len(groups))
	for i, g := range groups {
		data[i] = secondary.BarDatum{Label: g.Key, Value: g.AvgHours}
	}
	if err := s.renderer.Bars(artifactAreaSlowness,
		"Slowest Avg Resolution by Community Area (n ≥ 50)",
		"Community area", "Avg resolution hours", data); err != nil {
		return failed(id, name, err)
	}
	return generated(id, name, artifactAreaSlowness)
}

func (s *ReportServiceImpl) dayHourHeatmap(ctx context.Context) primary.ReportOutcome {
	const id, name = "6", "Day×hour heatmap"

	cells, err := s.store.HeatmapCells(ctx, s.cfg.Table)
	if err != nil {
		return failed(id, name, err)
	}
	if len(cells) == 0 {
		return skipped(id, name, "query returned no rows")
	}

	pivotCells := make([]pivot.Cell, len(cells))
	for i, c := range cells {
		pivotCells[i] = pivot.Cell{Day: c.Day, Hour: c.Hour, Count: c.Count}
	}
	grid := pivot.DayHourGrid(pivotCells)

	hourLabels := make([]string, pivot.HoursPerDay)
	for h := range hourLabels {
		hourLabels[h] = strconv.Itoa(h)
	}

	if err := s.renderer.Heatmap(artifactHeatmap,
		"Requests Heatmap: Day of Week × Hour",
		"Hour of day", "Day of week", pivot.Weekdays, hourLabels, grid); err != nil {
		return failed(id, name, err)
	}
	return generated(id, name, artifactHeatmap)
}

func (s *ReportServiceImpl) geoScatter(ctx context.Context, info *SchemaInfo) primary.ReportOutcome {
	const id, name = "7", "Geo scatter by bucket"

	if !s.hasResolutionHours(info) {
		return skipped(id, name, "resolution_hours column missing")
	}

	points, err := s.store.GeoPoints(ctx, s.cfg.Table)
	if err != nil {
		return failed(id, name, err)
	}
	if len(points) == 0 {
		return skipped(id, name, "no rows with both coordinates present")
	}

	points = sample.Deterministic(points, s.cfg.ScatterCap, scatterSeed)

	byBucket := make(map[string]*secondary.ScatterGroup)
	for _, p := range points {
		label := bucket.Four(p.ResolutionHours)
		g, ok := byBucket[label]
		if !ok {
			g = &secondary.ScatterGroup{Label: label}
			byBucket[label] = g
		}
		g.Xs = append(g.Xs, p.Longitude)
		g.Ys = append(g.Ys, p.Latitude)
	}

	// Legend follows the scheme's own band order, not first-seen order.
	var groups []secondary.ScatterGroup
	for _, label := range bucket.FourOrder {
		if g, ok := byBucket[label]; ok {
			groups = append(groups, *g)
		}
	}

	if err := s.renderer.Scatter(artifactScatter,
		"Chicago 311 Requests (sample) by Resolution Bucket",
		"Longitude", "Latitude", groups); err != nil {
		return failed(id, name, err)
	}
	return generated(id, name, artifactScatter)
}

// Ensure ReportServiceImpl implements the interface.
var _ primary.ReportService = (*ReportServiceImpl)(nil)
