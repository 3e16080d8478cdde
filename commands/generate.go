package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"aisolutions-backend/analytics"
	"aisolutions-backend/config"
	"aisolutions-backend/generator"
	"aisolutions-backend/models"
	"aisolutions-backend/output"
	"aisolutions-backend/store"

	"github.com/spf13/cobra"
)

var (
	// Generate flags
	generateCount int
	generateOut   string
	generateSeed  uint64
)

// generateCmd writes a fresh bulk dataset
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a bulk synthetic dataset",
	Long: `Write a new CSV dataset of synthesized sales records, replacing the output
file if it exists. A non-zero --seed makes the dataset reproducible.

Examples:
  aisolutions generate
  aisolutions generate --count 500 --out data/sample.csv --seed 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate()
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 10000, "Number of records")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "AI_Solutions_Dataset.csv", "Output CSV path")
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 0, "Random seed (0 picks one)")
}

func runGenerate() error {
	if generateCount < 1 {
		return fmt.Errorf("--count must be positive, got %d", generateCount)
	}
	seed := generateSeed
	if seed == 0 {
		seed = config.Load().GeneratorSeed
	}

	records := generator.New(generator.DefaultConfig(), generator.WithSeed(seed)).Batch(generateCount)

	if dir := filepath.Dir(generateOut); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(generateOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", generateOut, err)
	}
	if err := store.WriteCSV(f, records); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", generateOut, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	output.Success("Wrote %d records to %s", len(records), generateOut)
	printSummary(records)
	return nil
}

func printSummary(records []models.Record) {
	kpi := analytics.ComputeSalesKPIs(records)
	output.Section("Summary")
	output.KeyValue("Total Sales Revenue", output.Money(kpi.TotalSalesRevenue))
	output.KeyValue("Total Profit", output.Money(kpi.TotalProfit))
	output.KeyValue("Total Loss", output.Money(kpi.TotalLoss))
	output.KeyValue("Countries", kpi.CountriesReached)
	output.KeyValue("Top Product", kpi.TopSellingProduct)
	for _, sc := range analytics.StatusCounts(records) {
		output.KeyValue(output.StatusIcon(string(sc.Status))+" "+string(sc.Status), sc.Count)
	}
}
