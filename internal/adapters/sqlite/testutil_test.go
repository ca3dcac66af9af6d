// Package sqlite_test contains integration tests for the request repository.
//
// All tests run against an in-memory database created by setupTestDB; seed
// helpers insert synthetic service-request rows. The schema mirrors the
// conventional Chicago 311 extract, with and without the derived
// resolution_hours column.
package sqlite_test

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

const requestSchema = `
CREATE TABLE service_requests (
	sr_type TEXT NOT NULL,
	created_date DATETIME,
	closed_date DATETIME,
	owner_department TEXT,
	community_area INTEGER,
	latitude REAL,
	longitude REAL,
	created_day_of_week TEXT,
	created_hour INTEGER,
	resolution_hours REAL
);`

// requestSchemaNoDerived is the same table before anyone has back-filled the
// derived duration column.
const requestSchemaNoDerived = `
CREATE TABLE service_requests (
	sr_type TEXT NOT NULL,
	created_date DATETIME,
	closed_date DATETIME,
	owner_department TEXT,
	community_area INTEGER,
	latitude REAL,
	longitude REAL,
	created_day_of_week TEXT,
	created_hour INTEGER
);`

// setupTestDB creates an in-memory database with the full request schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return setupTestDBWithSchema(t, requestSchema)
}

func setupTestDBWithSchema(t *testing.T, schema string) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// request is one synthetic row. Pointer fields insert NULL when nil.
type request struct {
	srType     string
	department *string
	area       *int
	lat        *float64
	lon        *float64
	day        string
	hour       int
	hours      *float64
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func fPtr(f float64) *float64 { return &f }

// seedRequest inserts one row.
func seedRequest(t *testing.T, db *sql.DB, r request) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO service_requests
			(sr_type, owner_department, community_area, latitude, longitude,
			 created_day_of_week, created_hour, resolution_hours)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.srType, r.department, r.area, r.lat, r.lon, r.day, r.hour, r.hours,
	)
	if err != nil {
		t.Fatalf("failed to seed request: %v", err)
	}
}

// seedTypeCounts inserts count rows of each given type with minimal fields.
func seedTypeCounts(t *testing.T, db *sql.DB, counts map[string]int) {
	t.Helper()
	for srType, n := range counts {
		for i := 0; i < n; i++ {
			seedRequest(t, db, request{srType: srType, day: "Monday", hour: 9})
		}
	}
}

// seedAreaBatch inserts n resolved rows in one community area, each taking
// hours to resolve.
func seedAreaBatch(t *testing.T, db *sql.DB, area, n int, hours float64) {
	t.Helper()
	for i := 0; i < n; i++ {
		seedRequest(t, db, request{
			srType: fmt.Sprintf("type-%d", area),
			area:   intPtr(area),
			day:    "Tuesday",
			hour:   10,
			hours:  fPtr(hours),
		})
	}
}
