// Package wire assembles the service graph for one invocation.
package wire

import (
	"database/sql"

	chartadapter "github.com/example/srviz/internal/adapters/chart"
	"github.com/example/srviz/internal/adapters/sqlite"
	"github.com/example/srviz/internal/app"
	"github.com/example/srviz/internal/config"
	"github.com/example/srviz/internal/ports/primary"
)

// ReportService builds the report pipeline on top of an open database. The
// process runs the pipeline once, so there is no singleton state: the caller
// owns the database handle and closes it when the run ends.
func ReportService(cfg config.Config, database *sql.DB) primary.ReportService {
	store := sqlite.NewRequestRepository(database)
	renderer := chartadapter.NewRenderer(cfg.OutDir)
	return app.NewReportService(store, renderer, cfg)
}
