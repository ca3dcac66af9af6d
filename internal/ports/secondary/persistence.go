// Package secondary defines the driven ports: the store the aggregation
// layer reads from and the renderer it hands display-ready tables to.
package secondary

import "context"

// TypeCount is one (request type, count) row.
type TypeCount struct {
	Type  string
	Count int
}

// GroupStat is one grouped row carrying a count and a mean resolution time.
type GroupStat struct {
	Key      string
	Count    int
	AvgHours float64
}

// HeatCell is one grouped (day-of-week, hour) count.
type HeatCell struct {
	Day   string
	Hour  int
	Count int
}

// GeoPoint is one request location. ResolutionHours is nil while the
// request is still open.
type GeoPoint struct {
	Latitude        float64
	Longitude       float64
	ResolutionHours *float64
}

// RequestStore is the read-only boundary to the service-request database.
// Grouping, filtering, and ordering that SQL expresses naturally live here;
// bucketing, percentiles, pivoting, and sampling live in internal/core.
type RequestStore interface {
	// TableNames lists the tables present in the store.
	TableNames(ctx context.Context) ([]string, error)

	// TableColumns lists the column names of a table.
	TableColumns(ctx context.Context, table string) ([]string, error)

	// TopTypeCounts returns per-type request counts, descending, capped at limit.
	TopTypeCounts(ctx context.Context, table string, limit int) ([]TypeCount, error)

	// ResolvedHours returns every non-null resolution_hours value.
	ResolvedHours(ctx context.Context, table string) ([]float64, error)

	// AllResolutionHours returns resolution_hours for every row, nil for open requests.
	AllResolutionHours(ctx context.Context, table string) ([]*float64, error)

	// DepartmentStats returns per-department count and mean resolution over
	// resolved rows, ordered by mean descending.
	DepartmentStats(ctx context.Context, table string) ([]GroupStat, error)

	// AreaStatsByVolume returns per-community-area count and mean resolution
	// over resolved rows with a known area, keeping groups of at least
	// minCount rows, ordered by count descending, capped at limit.
	AreaStatsByVolume(ctx context.Context, table string, minCount, limit int) ([]GroupStat, error)

	// AreaStatsBySlowness is AreaStatsByVolume ordered by mean descending.
	AreaStatsBySlowness(ctx context.Context, table string, minCount, limit int) ([]GroupStat, error)

	// HeatmapCells returns per-(day, hour) request counts.
	HeatmapCells(ctx context.Context, table string) ([]HeatCell, error)

	// GeoPoints returns every row with both coordinates present.
	GeoPoints(ctx context.Context, table string) ([]GeoPoint, error)
}
