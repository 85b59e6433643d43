// Command exportbook loads the configured register store and writes the
// full workbook snapshot (Daily Invoices, Monthly Summary, GST Report) to
// a local .xlsx file.
// Usage: go run ./cmd/exportbook [output.xlsx]
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"brickledger/internal/config"
	"brickledger/internal/port"
	"brickledger/internal/report"
	"brickledger/internal/storage/postgres"
	"brickledger/internal/storage/workbook"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var store port.RegisterStore
	if cfg.Store.Driver == "postgres" {
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		store = postgres.NewStore(db)
	} else {
		store = workbook.NewStore(cfg.Store.WorkbookPath)
	}

	ctx := context.Background()
	records, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load register: %w", err)
	}

	data, err := store.Export(ctx, records, report.MonthlySummary(records), report.GSTReport(records))
	if err != nil {
		return fmt.Errorf("failed to build snapshot: %w", err)
	}

	outPath := workbook.BuildFilename(cfg.Seller.Name)
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	log.Printf("wrote %d invoices to %s", len(records), outPath)
	return nil
}
