package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	csvPath string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "aisolutions",
	Short: "AI Solutions sales data synthesizer and dashboard API",
	Long: `aisolutions synthesizes realistic AI-product sales records, appends them to a
CSV store and serves sales and marketing dashboards over HTTP.

Commands:
  serve          Run the API with the scheduled synthesizer
  generate       Write a bulk dataset
  watch          Live terminal feed of a growing store
  hash-password  Hash a password for AUTH_USERS`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&csvPath, "store", "", "CSV store path (default from CSV_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
