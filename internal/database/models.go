package database

import (
	"time"

	"github.com/zapponejosh/amlich-api/internal/lunar"
)

// Source records where a stored year code came from.
type Source string

const (
	SourceComputed Source = "computed" // generated from the astronomical series
	SourceImported Source = "imported" // loaded from an external table
)

// IsValid checks if a source is valid.
func (s Source) IsValid() bool {
	return s == SourceComputed || s == SourceImported
}

// YearCodeRecord is one row of year_codes.
type YearCodeRecord struct {
	Year      int            `json:"year"`
	Code      lunar.YearCode `json:"code"`
	Source    Source         `json:"source"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// YearCodeSummary is the decoded view of a record returned by the API.
type YearCodeSummary struct {
	Year          int    `json:"year"`
	Code          int    `json:"code"`
	Hex           string `json:"hex"`
	LeapMonth     int    `json:"leap_month"`
	NewYearOffset int    `json:"new_year_offset"`
	Source        Source `json:"source"`
}

// monthRow mirrors a lunar_months row.
type monthRow struct {
	position int
	lunar.MonthDescriptor
}
