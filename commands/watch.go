package commands

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"aisolutions-backend/config"
	"aisolutions-backend/generator"
	"aisolutions-backend/services"
	"aisolutions-backend/store"
	"aisolutions-backend/tui"

	"github.com/spf13/cobra"
)

var (
	// Watch flags
	watchInterval   time.Duration
	watchBatch      int
	watchIterations int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Append records on a timer and show a live feed",
	Long: `Append a batch of synthesized records to the store on every interval and
render the running KPIs and newest rows. --iterations 0 runs until q is pressed.

Examples:
  aisolutions watch
  aisolutions watch --interval 500ms --batch 10 --iterations 0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch()
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchInterval, "interval", time.Second, "Time between batches")
	watchCmd.Flags().IntVar(&watchBatch, "batch", 5, "Records per batch")
	watchCmd.Flags().IntVar(&watchIterations, "iterations", 20, "Number of batches (0 = until quit)")
}

func runWatch() error {
	if watchBatch < 1 {
		return fmt.Errorf("--batch must be positive, got %d", watchBatch)
	}
	if watchInterval <= 0 {
		return fmt.Errorf("--interval must be positive, got %s", watchInterval)
	}
	cfg := config.Load()
	if csvPath != "" {
		cfg.CSVPath = csvPath
	}

	st := store.Open(cfg.CSVPath)
	gen := generator.New(generator.DefaultConfig(), generator.WithSeed(cfg.GeneratorSeed))
	// The feed owns the terminal; batch logs would tear the display.
	ingest := services.NewIngestService(gen, st, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return tui.Run(tui.NewWatchModel(ingest, st, watchInterval, watchBatch, watchIterations))
}
