// Command import generates lunar year codes and stores them in the SQLite
// database, optionally with their decoded month lists.
//
// Usage:
//
//	go run ./cmd/import -from 1200 -to 2199 -db data/amlich.db
//
// Years are processed in batches, each in its own transaction. A failed batch
// is reported and the remaining batches still run. Re-running is safe:
// unchanged codes are left alone.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cloudeng.io/errors"

	"github.com/zapponejosh/amlich-api/internal/database"
	"github.com/zapponejosh/amlich-api/internal/logger"
	"github.com/zapponejosh/amlich-api/internal/lunar"
)

// ImportStats tracks what the import did.
type ImportStats struct {
	Generated     int
	Changed       int
	MonthsCached  int
	FailedBatches int
}

func main() {
	dbPath := flag.String("db", "data/amlich.db", "Path to SQLite database")
	from := flag.Int("from", lunar.MinYear, "First lunar year")
	to := flag.Int("to", lunar.MaxYear, "Last lunar year")
	batch := flag.Int("batch", 100, "Years per transaction")
	months := flag.Bool("months", false, "Also cache decoded month lists")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	log := logger.New(os.Stdout, level, "text")

	if *from < lunar.MinYear || *to > lunar.MaxYear || *from > *to {
		log.Error("invalid year span",
			slog.Int("from", *from),
			slog.Int("to", *to),
		)
		os.Exit(2)
	}
	if *batch < 1 {
		*batch = 1
	}

	if err := run(*dbPath, *from, *to, *batch, *months, log); err != nil {
		log.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("import complete")
}

func run(dbPath string, from, to, batch int, withMonths bool, log *slog.Logger) error {
	ctx := context.Background()
	start := time.Now()

	db, err := database.Open(database.DefaultConfig(dbPath), log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Debug("migrations complete", slog.Int("applied", migrated))

	var (
		stats ImportStats
		errs  errors.M
	)
	for lo := from; lo <= to; lo += batch {
		hi := min(lo+batch-1, to)
		if err := importBatch(ctx, db, lo, hi, withMonths, &stats, log); err != nil {
			stats.FailedBatches++
			errs.Append(fmt.Errorf("years %d-%d: %w", lo, hi, err))
		}
	}

	log.Info("import summary",
		slog.Int("generated", stats.Generated),
		slog.Int("changed", stats.Changed),
		slog.Int("months_cached", stats.MonthsCached),
		slog.Int("failed_batches", stats.FailedBatches),
		slog.Duration("duration", time.Since(start)),
	)
	return errs.Err()
}

// importBatch generates and stores the codes of years lo through hi.
func importBatch(ctx context.Context, db *database.DB, lo, hi int, withMonths bool, stats *ImportStats, log *slog.Logger) error {
	records := make([]database.YearCodeRecord, 0, hi-lo+1)
	for year := lo; year <= hi; year++ {
		code, err := lunar.GenerateYearCode(year)
		if err != nil {
			return err
		}
		records = append(records, database.YearCodeRecord{Year: year, Code: code, Source: database.SourceComputed})
	}
	stats.Generated += len(records)

	changed, err := db.UpsertYearCodes(ctx, records)
	if err != nil {
		return err
	}
	stats.Changed += changed

	log.Debug("batch stored",
		slog.Int("from", lo),
		slog.Int("to", hi),
		slog.Int("changed", changed),
	)

	if !withMonths {
		return nil
	}
	for _, r := range records {
		if err := db.SaveMonths(ctx, r.Year, r.Code, lunar.DecodeYear(r.Year, r.Code)); err != nil {
			return err
		}
		stats.MonthsCached++
	}
	return nil
}
