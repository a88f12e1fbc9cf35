// Command yieldcurve fetches US Treasury yields from FRED, fits cubic
// spline and Nelson–Siegel–Svensson models, and reports curve analytics.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/meenmo/yieldcurve/internal/config"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

// Global config, loaded before any subcommand runs.
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "yieldcurve",
	Short: "US Treasury yield curve fitting and analytics",
	Long: `yieldcurve retrieves Treasury constant-maturity yields from FRED,
fits a natural cubic spline and a Nelson-Siegel-Svensson model, and derives
slope, curvature, forward-rate and duration measures.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			cfg, err = config.LoadFromFile(path)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(fitCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(historyCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("yieldcurve %s (%s)\n", version, commit)
	},
}
