package app

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/srviz/internal/adapters/sqlite"
	"github.com/example/srviz/internal/config"
	"github.com/example/srviz/internal/ports/primary"
)

// End-to-end pipeline scenarios over a real in-memory store.

func openScenarioDB(t *testing.T, schema string) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

const scenarioSchema = `
CREATE TABLE service_requests (
	sr_type TEXT NOT NULL,
	owner_department TEXT,
	community_area INTEGER,
	latitude REAL,
	longitude REAL,
	created_day_of_week TEXT,
	created_hour INTEGER,
	resolution_hours REAL
);`

const scenarioSchemaNoDerived = `
CREATE TABLE service_requests (
	sr_type TEXT NOT NULL,
	owner_department TEXT,
	community_area INTEGER,
	latitude REAL,
	longitude REAL,
	created_day_of_week TEXT,
	created_hour INTEGER
);`

// Scenario A: requests table without the derived duration column. Reports
// 2a, 2b, 3, 4, 5a, 5b, and 7 are skipped with advisories; 1 and 6 still
// produce artifacts.
func TestScenarioMissingDerivedColumn(t *testing.T) {
	db := openScenarioDB(t, scenarioSchemaNoDerived)
	for i := 0; i < 5; i++ {
		if _, err := db.Exec(`
			INSERT INTO service_requests (sr_type, created_day_of_week, created_hour)
			VALUES ('Pothole', 'Monday', 9)`); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	renderer := &recordingRenderer{}
	svc := NewReportService(sqlite.NewRequestRepository(db), renderer, config.Default())

	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(summary.Advisories) == 0 {
		t.Error("expected schema advisories for the missing column")
	}

	wantSkipped := []string{"2a", "2b", "3", "4", "5a", "5b", "7"}
	for _, id := range wantSkipped {
		if o := outcomeByID(t, summary, id); o.Status != primary.StatusSkipped {
			t.Errorf("report %s status = %s, want skipped (%s)", id, o.Status, o.Detail)
		}
	}
	for _, id := range []string{"1", "6"} {
		if o := outcomeByID(t, summary, id); o.Status != primary.StatusGenerated {
			t.Errorf("report %s status = %s, want generated (%s)", id, o.Status, o.Detail)
		}
	}
	if got := summary.Generated(); got != 2 {
		t.Errorf("Generated() = %d, want 2", got)
	}
}

// Scenario B: 1000 rows with resolution_hours uniform over [0,1000). The
// trimmed histogram drops the top 1% and the bucket counts sum to 1000.
func TestScenarioUniformResolutionHours(t *testing.T) {
	db := openScenarioDB(t, scenarioSchema)

	stmt, err := db.Prepare(`
		INSERT INTO service_requests
			(sr_type, created_day_of_week, created_hour, resolution_hours)
		VALUES ('Pothole', 'Monday', 9, ?)`)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	for i := 0; i < 1000; i++ {
		if _, err := stmt.Exec(float64(i)); err != nil {
			t.Fatalf("seed row %d: %v", i, err)
		}
	}
	stmt.Close()

	renderer := &recordingRenderer{}
	svc := NewReportService(sqlite.NewRequestRepository(db), renderer, config.Default())

	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(summary.Advisories) != 0 {
		t.Errorf("unexpected advisories: %v", summary.Advisories)
	}

	trimmed := renderer.call("02_resolution_hist_trimmed.png")
	if trimmed == nil {
		t.Fatal("trimmed histogram not rendered")
	}
	if len(trimmed.values) != 990 {
		t.Errorf("trimmed sample has %d values, want 990 (top 1%% excluded)", len(trimmed.values))
	}

	buckets := renderer.call("04_resolution_buckets.png")
	if buckets == nil {
		t.Fatal("bucket chart not rendered")
	}
	total := 0.0
	for _, b := range buckets.bars {
		total += b.Value
	}
	if total != 1000 {
		t.Errorf("bucket counts sum to %v, want 1000", total)
	}
}

// Scenario C: table exists but has zero rows. Every report is skipped and
// the run still completes.
func TestScenarioEmptyTable(t *testing.T) {
	db := openScenarioDB(t, scenarioSchema)

	renderer := &recordingRenderer{}
	svc := NewReportService(sqlite.NewRequestRepository(db), renderer, config.Default())

	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v, empty data must not be fatal", err)
	}

	for _, o := range summary.Outcomes {
		if o.Status != primary.StatusSkipped {
			t.Errorf("report %s status = %s (%s), want skipped", o.ID, o.Status, o.Detail)
		}
		if o.Detail == "" {
			t.Errorf("report %s skipped without an advisory", o.ID)
		}
	}
	if len(renderer.calls) != 0 {
		t.Errorf("renderer invoked %d times on an empty table", len(renderer.calls))
	}
}
