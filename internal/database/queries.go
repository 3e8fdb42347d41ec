package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zapponejosh/amlich-api/internal/lunar"
)

// parseTimestamp parses a SQLite TEXT timestamp, returning the zero time if it
// is empty or malformed.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05.999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// =============================================================================
// Year Codes
// =============================================================================

// UpsertYearCodes inserts or replaces year codes in one transaction. Cached
// months of a year whose code changes are deleted. Returns the number of
// codes that were inserted or changed.
func (db *DB) UpsertYearCodes(ctx context.Context, records []YearCodeRecord) (int, error) {
	changed := 0
	err := db.WithTx(ctx, func(tx *Tx) error {
		for _, r := range records {
			if r.Year < lunar.MinYear || r.Year > lunar.MaxYear {
				return fmt.Errorf("year %d outside %d-%d", r.Year, lunar.MinYear, lunar.MaxYear)
			}
			if r.Source == "" {
				r.Source = SourceComputed
			}
			if !r.Source.IsValid() {
				return fmt.Errorf("year %d: invalid source %q", r.Year, r.Source)
			}

			var existing int64
			err := tx.QueryRowContext(ctx, `SELECT code FROM year_codes WHERE year = ?`, r.Year).Scan(&existing)
			switch {
			case errors.Is(err, sql.ErrNoRows):
			case err != nil:
				return fmt.Errorf("query year %d: %w", r.Year, err)
			case lunar.YearCode(existing) == r.Code:
				continue
			}

			_, err = tx.ExecContext(ctx, `
				INSERT INTO year_codes (year, code, source)
				VALUES (?, ?, ?)
				ON CONFLICT(year) DO UPDATE SET
					code = excluded.code,
					source = excluded.source,
					updated_at = datetime('now')
			`, r.Year, int64(r.Code), string(r.Source))
			if err != nil {
				return fmt.Errorf("upsert year %d: %w", r.Year, err)
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM lunar_months WHERE year = ?`, r.Year); err != nil {
				return fmt.Errorf("invalidate months of %d: %w", r.Year, err)
			}
			changed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

// GetYearCode returns the stored code of year, or ErrNotFound.
func (db *DB) GetYearCode(ctx context.Context, year int) (*YearCodeRecord, error) {
	var (
		r                    YearCodeRecord
		code                 int64
		source               string
		createdAt, updatedAt string
	)
	err := db.QueryRowContext(ctx, `
		SELECT year, code, source, created_at, updated_at
		FROM year_codes
		WHERE year = ?
	`, year).Scan(&r.Year, &code, &source, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query year code %d: %w", year, err)
	}

	r.Code = lunar.YearCode(code)
	r.Source = Source(source)
	r.CreatedAt = parseTimestamp(createdAt)
	r.UpdatedAt = parseTimestamp(updatedAt)
	return &r, nil
}

// ListYearCodes returns the stored codes of years from through to, inclusive,
// in year order.
func (db *DB) ListYearCodes(ctx context.Context, from, to int) ([]YearCodeRecord, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT year, code, source, created_at, updated_at
		FROM year_codes
		WHERE year BETWEEN ? AND ?
		ORDER BY year
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("query year codes: %w", err)
	}
	defer rows.Close()

	var records []YearCodeRecord
	for rows.Next() {
		var (
			r                    YearCodeRecord
			code                 int64
			source               string
			createdAt, updatedAt string
		)
		if err := rows.Scan(&r.Year, &code, &source, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan year code: %w", err)
		}
		r.Code = lunar.YearCode(code)
		r.Source = Source(source)
		r.CreatedAt = parseTimestamp(createdAt)
		r.UpdatedAt = parseTimestamp(updatedAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate year codes: %w", err)
	}
	return records, nil
}

// Summary decodes a record for display.
func (r YearCodeRecord) Summary() YearCodeSummary {
	return YearCodeSummary{
		Year:          r.Year,
		Code:          int(r.Code),
		Hex:           fmt.Sprintf("%#x", int(r.Code)),
		LeapMonth:     r.Code.LeapMonth(),
		NewYearOffset: r.Code.NewYearOffset(),
		Source:        r.Source,
	}
}

// =============================================================================
// Lunar Months
// =============================================================================

// SaveMonths replaces the cached month list of year, recording the year code
// it was decoded from.
func (db *DB) SaveMonths(ctx context.Context, year int, code lunar.YearCode, months []lunar.MonthDescriptor) error {
	return db.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM lunar_months WHERE year = ?`, year); err != nil {
			return fmt.Errorf("clear months of %d: %w", year, err)
		}
		for i, m := range months {
			if m.Year != year {
				return fmt.Errorf("month %d belongs to year %d, not %d", i, m.Year, year)
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO lunar_months (year, position, month, leap_month, leap_year, jd, length, code)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, year, i, m.Month, m.LeapMonth, m.LeapYear, m.JD, m.Length, int64(code))
			if err != nil {
				return fmt.Errorf("insert month %d of %d: %w", i, year, err)
			}
		}
		return nil
	})
}

// GetMonths returns the month list of year cached for code, or ErrNotFound
// if none is stored or the stored list was decoded from another code.
func (db *DB) GetMonths(ctx context.Context, year int, code lunar.YearCode) ([]lunar.MonthDescriptor, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT position, month, leap_month, leap_year, jd, length
		FROM lunar_months
		WHERE year = ? AND code = ?
		ORDER BY position
	`, year, int64(code))
	if err != nil {
		return nil, fmt.Errorf("query months of %d: %w", year, err)
	}
	defer rows.Close()

	var months []lunar.MonthDescriptor
	for rows.Next() {
		row := monthRow{MonthDescriptor: lunar.MonthDescriptor{Year: year, Day: 1}}
		if err := rows.Scan(&row.position, &row.Month, &row.LeapMonth, &row.LeapYear, &row.JD, &row.Length); err != nil {
			return nil, fmt.Errorf("scan month: %w", err)
		}
		if row.position != len(months) {
			return nil, fmt.Errorf("months of %d: gap at position %d", year, len(months))
		}
		months = append(months, row.MonthDescriptor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate months: %w", err)
	}
	if len(months) == 0 {
		return nil, ErrNotFound
	}
	return months, nil
}
