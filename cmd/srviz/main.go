package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/srviz/internal/cli"
	"github.com/example/srviz/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "srviz",
		Short:   "srviz - chart generator for Chicago 311 service requests",
		Version: version.String(),
		Long: `srviz turns a SQLite extract of Chicago 311 service requests into a
fixed set of PNG chart artifacts: request-type counts, resolution-time
distributions and buckets, department and community-area summaries, a
day-of-week × hour heatmap, and a geographic scatter.`,
	}

	rootCmd.AddCommand(cli.RunCmd())
	rootCmd.AddCommand(cli.ProbeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
