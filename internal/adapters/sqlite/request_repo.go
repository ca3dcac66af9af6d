// Package sqlite contains the SQLite implementation of the RequestStore port.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/srviz/internal/ports/secondary"
)

// RequestRepository implements secondary.RequestStore against a SQLite
// database of service-request rows. All queries are read-only.
type RequestRepository struct {
	db *sql.DB
}

// NewRequestRepository creates a new SQLite request repository.
func NewRequestRepository(db *sql.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// quoteIdent quotes a table name for interpolation into SQL. Identifiers
// cannot be bound as parameters, so the table name is escaped and quoted.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// TableNames lists the tables present in the store.
func (r *RequestRepository) TableNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// TableColumns lists the column names of a table.
func (r *RequestRepository) TableColumns(ctx context.Context, table string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect columns of %s: %w", table, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// TopTypeCounts returns per-type request counts, descending, capped at limit.
func (r *RequestRepository) TopTypeCounts(ctx context.Context, table string, limit int) ([]secondary.TypeCount, error) {
	query := fmt.Sprintf(`
		SELECT sr_type, COUNT(*) AS request_count
		FROM %s
		GROUP BY sr_type
		ORDER BY request_count DESC
		LIMIT ?`, quoteIdent(table))

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to count request types: %w", err)
	}
	defer rows.Close()

	var counts []secondary.TypeCount
	for rows.Next() {
		var tc secondary.TypeCount
		var srType sql.NullString
		if err := rows.Scan(&srType, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan request type: %w", err)
		}
		tc.Type = srType.String
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

// ResolvedHours returns every non-null resolution_hours value.
func (r *RequestRepository) ResolvedHours(ctx context.Context, table string) ([]float64, error) {
	query := fmt.Sprintf(
		"SELECT resolution_hours FROM %s WHERE resolution_hours IS NOT NULL",
		quoteIdent(table),
	)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read resolution hours: %w", err)
	}
	defer rows.Close()

	var hours []float64
	for rows.Next() {
		var h float64
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("failed to scan resolution hours: %w", err)
		}
		hours = append(hours, h)
	}
	return hours, rows.Err()
}

// AllResolutionHours returns resolution_hours for every row, nil for open requests.
func (r *RequestRepository) AllResolutionHours(ctx context.Context, table string) ([]*float64, error) {
	query := fmt.Sprintf("SELECT resolution_hours FROM %s", quoteIdent(table))

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read resolution hours: %w", err)
	}
	defer rows.Close()

	var hours []*float64
	for rows.Next() {
		var h sql.NullFloat64
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("failed to scan resolution hours: %w", err)
		}
		if h.Valid {
			v := h.Float64
			hours = append(hours, &v)
		} else {
			hours = append(hours, nil)
		}
	}
	return hours, rows.Err()
}

// DepartmentStats returns per-department count and mean resolution over
// resolved rows, ordered by mean descending.
func (r *RequestRepository) DepartmentStats(ctx context.Context, table string) ([]secondary.GroupStat, error) {
	query := fmt.Sprintf(`
		SELECT owner_department,
		       COUNT(*) AS n,
		       AVG(resolution_hours) AS avg_hours
		FROM %s
		WHERE resolution_hours IS NOT NULL
		GROUP BY owner_department
		ORDER BY avg_hours DESC`, quoteIdent(table))

	return r.queryGroupStats(ctx, query)
}

// AreaStatsByVolume returns the busiest community areas among resolved rows,
// groups of at least minCount only, ordered by count descending.
func (r *RequestRepository) AreaStatsByVolume(ctx context.Context, table string, minCount, limit int) ([]secondary.GroupStat, error) {
	query := fmt.Sprintf(`
		SELECT CAST(community_area AS TEXT) AS area,
		       COUNT(*) AS n,
		       AVG(resolution_hours) AS avg_hours
		FROM %s
		WHERE resolution_hours IS NOT NULL
		  AND community_area IS NOT NULL
		GROUP BY area
		HAVING n >= ?
		ORDER BY n DESC
		LIMIT ?`, quoteIdent(table))

	return r.queryGroupStats(ctx, query, minCount, limit)
}

// AreaStatsBySlowness returns the slowest community areas among resolved
// rows, groups of at least minCount only, ordered by mean descending.
func (r *RequestRepository) AreaStatsBySlowness(ctx context.Context, table string, minCount, limit int) ([]secondary.GroupStat, error) {
	query := fmt.Sprintf(`
		SELECT CAST(community_area AS TEXT) AS area,
		       COUNT(*) AS n,
		       AVG(resolution_hours) AS avg_hours
		FROM %s
		WHERE resolution_hours IS NOT NULL
		  AND community_area IS NOT NULL
		GROUP BY area
		HAVING n >= ?
		ORDER BY avg_hours DESC
		LIMIT ?`, quoteIdent(table))

	return r.queryGroupStats(ctx, query, minCount, limit)
}

func (r *RequestRepository) queryGroupStats(ctx context.Context, query string, args ...any) ([]secondary.GroupStat, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query group stats: %w", err)
	}
	defer rows.Close()

	var stats []secondary.GroupStat
	for rows.Next() {
		var gs secondary.GroupStat
		var key sql.NullString
		if err := rows.Scan(&key, &gs.Count, &gs.AvgHours); err != nil {
			return nil, fmt.Errorf("failed to scan group stat: %w", err)
		}
		gs.Key = key.String
		if !key.Valid {
			gs.Key = "(none)"
		}
		stats = append(stats, gs)
	}
	return stats, rows.Err()
}

// HeatmapCells returns per-(day, hour) request counts.
func (r *RequestRepository) HeatmapCells(ctx context.Context, table string) ([]secondary.HeatCell, error) {
	query := fmt.Sprintf(`
		SELECT created_day_of_week, created_hour, COUNT(*) AS requests
		FROM %s
		WHERE created_day_of_week IS NOT NULL
		  AND created_hour IS NOT NULL
		GROUP BY created_day_of_week, created_hour
		ORDER BY created_day_of_week, created_hour`, quoteIdent(table))

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query heatmap cells: %w", err)
	}
	defer rows.Close()

	var cells []secondary.HeatCell
	for rows.Next() {
		var c secondary.HeatCell
		if err := rows.Scan(&c.Day, &c.Hour, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan heatmap cell: %w", err)
		}
		cells = append(cells, c)
	}
	return cells, rows.Err()
}

// GeoPoints returns every row with both coordinates present.
func (r *RequestRepository) GeoPoints(ctx context.Context, table string) ([]secondary.GeoPoint, error) {
	query := fmt.Sprintf(`
		SELECT latitude, longitude, resolution_hours
		FROM %s
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL`, quoteIdent(table))

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query geo points: %w", err)
	}
	defer rows.Close()

	var points []secondary.GeoPoint
	for rows.Next() {
		var p secondary.GeoPoint
		var hours sql.NullFloat64
		if err := rows.Scan(&p.Latitude, &p.Longitude, &hours); err != nil {
			return nil, fmt.Errorf("failed to scan geo point: %w", err)
		}
		if hours.Valid {
			v := hours.Float64
			p.ResolutionHours = &v
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// Ensure RequestRepository implements the interface.
var _ secondary.RequestStore = (*RequestRepository)(nil)
