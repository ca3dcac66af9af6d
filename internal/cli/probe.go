package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/srviz/internal/config"
	"github.com/example/srviz/internal/db"
	"github.com/example/srviz/internal/wire"
)

// ProbeCmd returns the probe command
func ProbeCmd() *cobra.Command {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Inspect the database schema without generating charts",
		Long: `Check that the request table exists and whether it carries the derived
resolution_hours column. If the column is missing, print the statements
that add and back-fill it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			database, err := db.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer database.Close()

			report, err := wire.ReportService(cfg, database).Probe(context.Background())
			if err != nil {
				return err
			}

			fmt.Printf("Table: %s %s\n", report.Table, color.New(color.FgGreen).Sprint("OK"))

			if report.HasResolutionHours {
				fmt.Printf("Column resolution_hours: %s\n", color.New(color.FgGreen).Sprint("OK"))
				fmt.Println("\nAll eight reports can run.")
				return nil
			}

			fmt.Printf("Column resolution_hours: %s\n", color.New(color.FgYellow).Sprint("MISSING"))
			fmt.Println()
			for _, a := range report.Advisories {
				fmt.Println(a)
			}
			return nil
		},
	}

	addConfigFlags(cmd, &cfg)

	return cmd
}
