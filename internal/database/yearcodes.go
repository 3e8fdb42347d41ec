package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/zapponejosh/amlich-api/internal/lunar"
)

// YearCodeTable is a lunar.YearCodeSource backed by the year_codes table.
// Years with no stored code fall back to the computed tables.
type YearCodeTable struct {
	mu    sync.RWMutex
	codes map[int]lunar.YearCode
}

// LoadYearCodeTable reads every stored year code into memory.
func (db *DB) LoadYearCodeTable(ctx context.Context) (*YearCodeTable, error) {
	records, err := db.ListYearCodes(ctx, lunar.MinYear, lunar.MaxYear)
	if err != nil {
		return nil, fmt.Errorf("load year codes: %w", err)
	}

	t := &YearCodeTable{codes: make(map[int]lunar.YearCode, len(records))}
	for _, r := range records {
		t.codes[r.Year] = r.Code
	}

	db.logger.Info("year code table loaded",
		slog.Int("stored", len(records)),
		slog.Int("computed", lunar.MaxYear-lunar.MinYear+1-len(records)),
	)
	return t, nil
}

// YearCode implements lunar.YearCodeSource.
func (t *YearCodeTable) YearCode(year int) lunar.YearCode {
	t.mu.RLock()
	code, ok := t.codes[year]
	t.mu.RUnlock()
	if ok {
		return code
	}
	return lunar.ResolveYearCode(year)
}

// Update replaces the in-memory codes of the given records, typically after
// UpsertYearCodes stored them.
func (t *YearCodeTable) Update(records []YearCodeRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range records {
		t.codes[r.Year] = r.Code
	}
}

// Len returns the number of stored codes.
func (t *YearCodeTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.codes)
}

// MonthCache is a read-through cache of decoded month lists, kept in memory
// and, when a database is set, in lunar_months. Entries are tagged with the
// year code they were decoded from and only served while the converter still
// decodes that year with the same code.
type MonthCache struct {
	db     *DB
	conv   *lunar.Converter
	logger *slog.Logger

	mu     sync.RWMutex
	months map[int]cachedMonths
}

type cachedMonths struct {
	code   lunar.YearCode
	months []lunar.MonthDescriptor
}

// NewMonthCache returns a cache in front of conv. db may be nil.
func NewMonthCache(db *DB, conv *lunar.Converter, logger *slog.Logger) *MonthCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &MonthCache{
		db:     db,
		conv:   conv,
		logger: logger,
		months: make(map[int]cachedMonths),
	}
}

// Months returns the decoded months of year. Callers must not modify the
// returned slice.
func (c *MonthCache) Months(ctx context.Context, year int) ([]lunar.MonthDescriptor, error) {
	code, err := c.conv.YearCode(year)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	entry, ok := c.months[year]
	c.mu.RUnlock()
	if ok && entry.code == code {
		return entry.months, nil
	}

	if c.db != nil {
		stored, err := c.db.GetMonths(ctx, year, code)
		switch {
		case err == nil:
			c.store(year, code, stored)
			return stored, nil
		case !errors.Is(err, ErrNotFound):
			c.logger.WarnContext(ctx, "month cache read failed",
				slog.Int("year", year),
				slog.Any("error", err),
			)
		}
	}

	months := lunar.DecodeYear(year, code)
	if c.db != nil {
		if err := c.db.SaveMonths(ctx, year, code, months); err != nil {
			c.logger.WarnContext(ctx, "month cache write failed",
				slog.Int("year", year),
				slog.Any("error", err),
			)
		}
	}
	c.store(year, code, months)
	return months, nil
}

// Invalidate drops the in-memory months of year.
func (c *MonthCache) Invalidate(year int) {
	c.mu.Lock()
	delete(c.months, year)
	c.mu.Unlock()
}

func (c *MonthCache) store(year int, code lunar.YearCode, months []lunar.MonthDescriptor) {
	c.mu.Lock()
	c.months[year] = cachedMonths{code: code, months: months}
	c.mu.Unlock()
}
