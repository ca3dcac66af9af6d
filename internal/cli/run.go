// Package cli contains the cobra command constructors.
package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/srviz/internal/config"
	"github.com/example/srviz/internal/db"
	"github.com/example/srviz/internal/ports/primary"
	"github.com/example/srviz/internal/wire"
)

// addConfigFlags registers the shared configuration flags, defaulting from
// the environment (and a .env file if present).
func addConfigFlags(cmd *cobra.Command, cfg *config.Config) {
	*cfg = config.FromEnv()
	cmd.Flags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite database file")
	cmd.Flags().StringVar(&cfg.Table, "table", cfg.Table, "name of the service-request table")
	cmd.Flags().StringVar(&cfg.OutDir, "out", cfg.OutDir, "directory the PNG charts are written to")
}

// RunCmd returns the run command
func RunCmd() *cobra.Command {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate all charts from the service-request database",
		Long: `Run the full pipeline: probe the schema, then generate the eight
chart artifacts in fixed order. Reports whose preconditions are unmet
(missing resolution_hours column, empty result sets) are skipped with an
advisory; the remaining reports still run.

Examples:
  srviz run
  srviz run --db Chicago311.db --out charts --scatter-cap 2000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			database, err := db.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer database.Close()

			summary, err := wire.ReportService(cfg, database).Run(context.Background())
			if err != nil {
				return err
			}

			printSummary(summary)
			return nil
		},
	}

	addConfigFlags(cmd, &cfg)
	cmd.Flags().IntVar(&cfg.ScatterCap, "scatter-cap", cfg.ScatterCap, "maximum points drawn on the geo scatter")

	return cmd
}

func printSummary(summary *primary.RunSummary) {
	for _, a := range summary.Advisories {
		fmt.Printf("%s %s\n", color.New(color.FgYellow).Sprint("WARNING:"), a)
	}
	if len(summary.Advisories) > 0 {
		fmt.Println()
	}

	for _, o := range summary.Outcomes {
		switch o.Status {
		case primary.StatusGenerated:
			fmt.Printf("%s %-30s %s\n", color.New(color.FgGreen).Sprint("✓"), o.Name, o.Artifact)
		case primary.StatusSkipped:
			fmt.Printf("%s %-30s skipped: %s\n", color.New(color.FgYellow).Sprint("!"), o.Name, o.Detail)
		case primary.StatusFailed:
			fmt.Printf("%s %-30s failed: %s\n", color.New(color.FgRed).Sprint("✗"), o.Name, o.Detail)
		}
	}

	fmt.Println()
	fmt.Printf("Done. %d chart(s) written to %s\n", summary.Generated(), summary.OutDir)
}
