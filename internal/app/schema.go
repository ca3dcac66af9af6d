// Package app implements the primary ports: the schema probe and the
// report pipeline.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/srviz/internal/ports/secondary"
)

// ColumnResolutionHours is the derived duration column the store may or may
// not carry. Reports that depend on it degrade gracefully when it is absent.
const ColumnResolutionHours = "resolution_hours"

// SchemaError is the fatal missing-table condition: without the request
// table no report can run.
type SchemaError struct {
	Table   string
	Present []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %q not found in database (tables present: %s)",
		e.Table, strings.Join(e.Present, ", "))
}

// SchemaInfo is the capability descriptor produced once by ProbeSchema and
// passed to every report transform, so no transform re-queries the schema.
type SchemaInfo struct {
	tables  map[string]bool
	columns map[string]map[string]bool
	names   []string
}

// HasTable reports whether the store has a table of that name.
func (s *SchemaInfo) HasTable(name string) bool {
	return s.tables[name]
}

// HasColumn reports whether a table has a column of that name.
func (s *SchemaInfo) HasColumn(table, column string) bool {
	return s.columns[table][column]
}

// TableNames lists the tables seen by the probe.
func (s *SchemaInfo) TableNames() []string {
	return s.names
}

// ProbeSchema inspects the store once. A missing request table is fatal and
// returns a *SchemaError; a missing derived-duration column is not, it only
// shapes which reports run.
func ProbeSchema(ctx context.Context, store secondary.RequestStore, table string) (*SchemaInfo, error) {
	names, err := store.TableNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to probe tables: %w", err)
	}

	info := &SchemaInfo{
		tables:  make(map[string]bool, len(names)),
		columns: make(map[string]map[string]bool),
		names:   names,
	}
	for _, n := range names {
		info.tables[n] = true
	}

	if !info.HasTable(table) {
		return nil, &SchemaError{Table: table, Present: names}
	}

	cols, err := store.TableColumns(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("failed to probe columns of %s: %w", table, err)
	}
	info.columns[table] = make(map[string]bool, len(cols))
	for _, c := range cols {
		info.columns[table][c] = true
	}

	return info, nil
}

// RemediationStatements are the exact statements that add and back-fill the
// derived duration column; surfaced verbatim in the advisory when the
// column is missing.
func RemediationStatements(table string) []string {
	return []string{
		fmt.Sprintf("ALTER TABLE %s ADD COLUMN resolution_hours REAL;", table),
		fmt.Sprintf("UPDATE %s SET resolution_hours = (julianday(closed_date) - julianday(created_date)) * 24 WHERE closed_date IS NOT NULL;", table),
	}
}
