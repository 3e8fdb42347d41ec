package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDateString parses a date string in YYYY-MM-DD format.
//
// time.Parse is not used because it validates against the proleptic
// Gregorian calendar, which rejects Julian leap days such as 1500-02-29.
func ParseDateString(dateStr string) (SolarDate, error) {
	parts := strings.Split(strings.TrimSpace(dateStr), "-")
	if len(parts) != 3 {
		return SolarDate{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, dateStr)
	}

	var fields [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return SolarDate{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, dateStr)
		}
		fields[i] = n
	}

	return NewSolarDate(fields[2], fields[1], fields[0])
}

// FormatDate formats a date as YYYY-MM-DD
func FormatDate(date SolarDate) string {
	return date.String()
}

// AddDays returns the date n days after d.
func AddDays(d SolarDate, n int) SolarDate {
	return FromJD(d.JDN() + n)
}

// DaysBetween returns the number of days from start to end.
func DaysBetween(start, end SolarDate) int {
	return end.JDN() - start.JDN()
}
