// Package calendar provides the Gregorian side of the lunar calendar: solar
// dates, Julian Day Numbers and date parsing.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/carlosjhr64/jd"
	"github.com/mooncaker816/learnmeeus/v3/julian"
)

// GregorianStartJD is the Julian Day Number of 1582-10-15, the first day of
// the Gregorian calendar. Earlier days are expressed in the Julian calendar.
const GregorianStartJD = 2299161

// Supported solar year range.
const (
	MinYear = 1200
	MaxYear = 2199
)

// FirstSupportedJD is the JDN of 1200-01-31 (Julian), the first solar day the
// lunar year tables cover. Earlier days of 1200 belong to lunar year 1199.
const FirstSupportedJD = 2159388

// ErrInvalidDate is returned for dates that do not exist in the calendar or
// fall outside the supported range.
var ErrInvalidDate = errors.New("invalid solar date")

// SolarDate is a date in the civil (Julian before 1582-10-15, Gregorian after)
// calendar.
type SolarDate struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// NewSolarDate returns a validated solar date.
func NewSolarDate(day, month, year int) (SolarDate, error) {
	d := SolarDate{Day: day, Month: month, Year: year}
	if !d.IsValid() {
		return SolarDate{}, fmt.Errorf("%w: %s", ErrInvalidDate, d)
	}
	return d, nil
}

// FromTime returns the solar date of t in its own location.
func FromTime(t time.Time) SolarDate {
	return SolarDate{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}
}

// String formats the date as YYYY-MM-DD.
func (d SolarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Get returns the day, month and year.
func (d SolarDate) Get() (day, month, year int) {
	return d.Day, d.Month, d.Year
}

// JDN returns the Julian Day Number of d.
func (d SolarDate) JDN() int {
	return JDN(d.Day, d.Month, d.Year)
}

// IsValid reports whether d exists in the civil calendar and lies within the
// supported window, 1200-01-31 through 2199-12-31. The ten days dropped by the
// 1582 reform are invalid.
func (d SolarDate) IsValid() bool {
	if d.Year < MinYear || d.Year > MaxYear {
		return false
	}
	if d.Month < 1 || d.Month > 12 {
		return false
	}
	if d.Day < 1 || d.Day > DaysInMonth(d.Month, d.Year) {
		return false
	}
	if d.Year == 1582 && d.Month == 10 && d.Day > 4 && d.Day < 15 {
		return false
	}
	if d.Year == MinYear && d.JDN() < FirstSupportedJD {
		return false
	}
	return true
}

// JDN returns the Julian Day Number of the given civil date. Dates before
// 1582-10-15 are interpreted in the Julian calendar.
func JDN(day, month, year int) int {
	n := jd.YMD2J(year, month, day)
	if n < GregorianStartJD {
		// CalendarJulianToJD returns the JD at 0h, half a day before the JDN.
		n = int(julian.CalendarJulianToJD(year, month, float64(day)) + 0.5)
	}
	return n
}

// FromJD returns the civil date of a Julian Day Number.
func FromJD(n int) SolarDate {
	if n >= GregorianStartJD {
		y, m, d := jd.J2YMD(n)
		return SolarDate{Day: d, Month: m, Year: y}
	}
	y, m, d := julian.JDToCalendar(float64(n))
	return SolarDate{Day: int(d), Month: m, Year: y}
}

// DaysInMonth returns the number of days of month in year, using the Julian
// leap year rule before 1583.
func DaysInMonth(month, year int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// IsLeapYear reports whether year has a February 29th.
func IsLeapYear(year int) bool {
	if year <= 1582 {
		return year%4 == 0
	}
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Weekday returns the day of week of a Julian Day Number.
func Weekday(n int) time.Weekday {
	return time.Weekday((n + 1) % 7)
}
