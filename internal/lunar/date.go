// Package lunar implements the Vietnamese lunisolar calendar: year codes,
// month decoding, solar to lunar conversion and the calendar facts derived
// from a lunar date (Can Chi names, solar terms, lucky hours).
package lunar

import (
	"errors"
	"fmt"
)

// Date is a day, month and year triple in either calendar.
type Date struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// optional is a value with an explicit presence flag, so that a resolved
// zero or false is not mistaken for "unset".
type optional[T any] struct {
	value T
	ok    bool
}

func some[T any](v T) optional[T] {
	return optional[T]{value: v, ok: true}
}

// resolveField keeps an existing value unless force is set or no value is
// present.
func resolveField[T any](existing optional[T], recommended T, force bool) optional[T] {
	if force || !existing.ok {
		return some(recommended)
	}
	return existing
}

// LunarDate is a date in the lunar calendar. Dates built with New or NewLeap
// are unresolved until Init runs; dates returned by the converter are
// resolved.
type LunarDate struct {
	Date
	leapMonth optional[bool]
	leapYear  optional[bool]
	jd        optional[int]
	length    optional[int]
}

// New returns an unresolved lunar date in a regular month.
func New(d Date) *LunarDate {
	return &LunarDate{Date: d}
}

// NewLeap returns an unresolved lunar date in the leap month following
// regular month d.Month.
func NewLeap(d Date) *LunarDate {
	return &LunarDate{Date: d, leapMonth: some(true)}
}

// LeapMonth reports whether the date falls in a leap month.
func (l *LunarDate) LeapMonth() bool {
	return l.leapMonth.value
}

// LeapYear reports whether the date's lunar year has a leap month.
func (l *LunarDate) LeapYear() bool {
	return l.leapYear.value
}

// JD returns the Julian Day Number of the date, if resolved.
func (l *LunarDate) JD() (int, bool) {
	return l.jd.value, l.jd.ok
}

// Length returns the number of days in the date's month, or 0 if unresolved.
func (l *LunarDate) Length() int {
	return l.length.value
}

// Resolved reports whether the date has been anchored to a Julian Day Number.
func (l *LunarDate) Resolved() bool {
	return l.jd.ok
}

// Get returns the day, month and year.
func (l *LunarDate) Get() Date {
	return l.Date
}

func (l *LunarDate) String() string {
	if l.LeapMonth() {
		return l.Date.String() + " (nhuận)"
	}
	return l.Date.String()
}

// Init validates the date and fills in its leap flags, Julian Day Number and
// month length from the built-in year tables. Fields that are already set are
// kept unless force is true.
func (l *LunarDate) Init(force bool) error {
	return defaultConverter.Resolve(l, force)
}

// SetDate moves l to a new date. On failure l is left unchanged and the
// returned error matches ErrInvalidDate.
func (l *LunarDate) SetDate(d Date, leapMonth bool) error {
	return defaultConverter.SetDate(l, d, leapMonth)
}

// IsValidDate reports whether d lies in the range covered by the year tables.
// Lunar 1200 starts on the 14th of month 1 and lunar 2199 ends on the 14th of
// month 11; finer day checks depend on the month length and happen during
// resolution.
func IsValidDate(d Date) bool {
	if d.Day < 1 || d.Day > 30 {
		return false
	}
	if d.Month < 1 || d.Month > 12 {
		return false
	}
	switch {
	case d.Year < MinYear || d.Year > MaxYear:
		return false
	case d.Year == MinYear:
		if d.Month == 1 && d.Day < 14 {
			return false
		}
	case d.Year == MaxYear:
		if d.Month == 12 || (d.Month == 11 && d.Day > 14) {
			return false
		}
	}
	return true
}

// recommendation holds the resolved fields of a date.
type recommendation struct {
	jd        int
	leapMonth bool
	leapYear  bool
	length    int
}

// recommend finds d in the decoded months of its year.
func recommend(d Date, leapMonth bool, months []MonthDescriptor) (recommendation, error) {
	for i, m := range months {
		if m.Month != d.Month || m.LeapMonth {
			continue
		}
		ref := m
		if leapMonth {
			if i+1 >= len(months) || !months[i+1].LeapMonth || months[i+1].Month != d.Month {
				return recommendation{}, fmt.Errorf("%w: year %d has no leap month %d", ErrInvalidDate, d.Year, d.Month)
			}
			ref = months[i+1]
		}
		if d.Day > ref.Length {
			return recommendation{}, fmt.Errorf("%w: %s, month has %d days", ErrInvalidDate, d, ref.Length)
		}
		return recommendation{
			jd:        ref.JD + d.Day - 1,
			leapMonth: ref.LeapMonth,
			leapYear:  ref.LeapYear,
			length:    ref.Length,
		}, nil
	}
	return recommendation{}, fmt.Errorf("%w: month %d missing from year %d", ErrInvalidState, d.Month, d.Year)
}

// asInvalidDate makes err match ErrInvalidDate while keeping its cause.
func asInvalidDate(err error) error {
	if errors.Is(err, ErrInvalidDate) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidDate, err)
}
