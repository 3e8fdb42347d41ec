package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestJDN_KnownDates(t *testing.T) {
	tests := []struct {
		name string
		date SolarDate
		want int
	}{
		{"unix epoch", SolarDate{Day: 1, Month: 1, Year: 1970}, 2440588},
		{"J2000", SolarDate{Day: 1, Month: 1, Year: 2000}, 2451545},
		{"tet 2023", SolarDate{Day: 22, Month: 1, Year: 2023}, 2459967},
		{"first gregorian day", SolarDate{Day: 15, Month: 10, Year: 1582}, GregorianStartJD},
		{"last julian day", SolarDate{Day: 4, Month: 10, Year: 1582}, GregorianStartJD - 1},
		{"julian 1200", SolarDate{Day: 1, Month: 1, Year: 1200}, 2159358},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.date.JDN(); got != tt.want {
				t.Errorf("JDN(%s) = %d, want %d", tt.date, got, tt.want)
			}
			if got := FromJD(tt.want); got != tt.date {
				t.Errorf("FromJD(%d) = %s, want %s", tt.want, got, tt.date)
			}
		})
	}
}

func TestJDN_RoundTrip(t *testing.T) {
	start := FirstSupportedJD
	end := JDN(31, 12, MaxYear)

	for n := start; n <= end; n += 3 {
		d := FromJD(n)
		if !d.IsValid() {
			t.Fatalf("FromJD(%d) = %s, not a valid date", n, d)
		}
		if got := d.JDN(); got != n {
			t.Fatalf("JDN(FromJD(%d)) = %d (date %s)", n, got, d)
		}
	}
}

func TestJDN_Consecutive(t *testing.T) {
	// The reform skips ten calendar days but no Julian days.
	before := SolarDate{Day: 4, Month: 10, Year: 1582}
	after := SolarDate{Day: 15, Month: 10, Year: 1582}
	if got := DaysBetween(before, after); got != 1 {
		t.Errorf("DaysBetween(%s, %s) = %d, want 1", before, after, got)
	}
	if got := AddDays(before, 1); got != after {
		t.Errorf("AddDays(%s, 1) = %s, want %s", before, got, after)
	}
}

func TestSolarDate_IsValid(t *testing.T) {
	tests := []struct {
		date SolarDate
		want bool
	}{
		{SolarDate{Day: 29, Month: 2, Year: 1500}, true}, // julian leap year
		{SolarDate{Day: 29, Month: 2, Year: 1700}, false},
		{SolarDate{Day: 29, Month: 2, Year: 2000}, true},
		{SolarDate{Day: 10, Month: 10, Year: 1582}, false},
		{SolarDate{Day: 31, Month: 4, Year: 2024}, false},
		{SolarDate{Day: 1, Month: 13, Year: 2024}, false},
		{SolarDate{Day: 0, Month: 1, Year: 2024}, false},
		{SolarDate{Day: 31, Month: 12, Year: 1199}, false},
		{SolarDate{Day: 30, Month: 1, Year: 1200}, false},
		{SolarDate{Day: 31, Month: 1, Year: 1200}, true},
		{SolarDate{Day: 1, Month: 1, Year: 2200}, false},
		{SolarDate{Day: 31, Month: 12, Year: 2199}, true},
	}

	for _, tt := range tests {
		if got := tt.date.IsValid(); got != tt.want {
			t.Errorf("IsValid(%s) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestParseDateString(t *testing.T) {
	d, err := ParseDateString("2023-01-22")
	if err != nil {
		t.Fatalf("ParseDateString failed: %v", err)
	}
	if want := (SolarDate{Day: 22, Month: 1, Year: 2023}); d != want {
		t.Errorf("ParseDateString = %s, want %s", d, want)
	}

	if _, err := ParseDateString("1500-02-29"); err != nil {
		t.Errorf("julian leap day rejected: %v", err)
	}

	for _, bad := range []string{"", "2023-01", "2023/01/22", "2023-02-30", "abcd-01-01"} {
		if _, err := ParseDateString(bad); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDateString(%q) error = %v, want ErrInvalidDate", bad, err)
		}
	}
}

func TestWeekday(t *testing.T) {
	// 2023-01-22 was a Sunday.
	if got := Weekday(2459967); got != time.Sunday {
		t.Errorf("Weekday = %v, want Sunday", got)
	}
	if got := Weekday(JDN(15, 10, 1582)); got != time.Friday {
		t.Errorf("Weekday(1582-10-15) = %v, want Friday", got)
	}
}
