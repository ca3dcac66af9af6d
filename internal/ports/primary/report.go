// Package primary defines the driving ports exposed to the CLI.
package primary

import "context"

// ReportStatus is the terminal state of one report's execution.
type ReportStatus string

const (
	// StatusGenerated means the report wrote its artifact.
	StatusGenerated ReportStatus = "generated"
	// StatusSkipped means a precondition was unmet (missing column, empty
	// result); the report wrote nothing. Not an error.
	StatusSkipped ReportStatus = "skipped"
	// StatusFailed means the store read or the render failed. The failure
	// is confined to the report; the run continues.
	StatusFailed ReportStatus = "failed"
)

// ReportOutcome describes how one report ended.
type ReportOutcome struct {
	ID       string // ordinal, e.g. "1", "2a"
	Name     string
	Artifact string // file name, empty unless generated
	Status   ReportStatus
	Detail   string // skip reason or failure message
}

// RunSummary is the result of one full pipeline run.
type RunSummary struct {
	OutDir     string
	Advisories []string // schema advisories surfaced by the probe
	Outcomes   []ReportOutcome
}

// Generated returns how many reports produced an artifact.
func (s *RunSummary) Generated() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Status == StatusGenerated {
			n++
		}
	}
	return n
}

// SchemaReport is what the probe learned about the store.
type SchemaReport struct {
	Table              string
	Tables             []string
	HasResolutionHours bool
	Advisories         []string
}

// ReportService runs the aggregation pipeline.
type ReportService interface {
	// Probe inspects the store without generating anything.
	Probe(ctx context.Context) (*SchemaReport, error)

	// Run probes the schema, then executes the eight reports in fixed
	// order. The error is non-nil only for the two fatal conditions
	// (store unreachable, request table absent).
	Run(ctx context.Context) (*RunSummary, error)
}
