package lunar

import (
	"errors"
	"testing"

	"github.com/zapponejosh/amlich-api/internal/calendar"
)

func TestConvertSolarToLunar(t *testing.T) {
	tests := []struct {
		name  string
		solar calendar.SolarDate
		want  Date
		leap  bool
	}{
		{"tet 2023", calendar.SolarDate{Day: 22, Month: 1, Year: 2023}, Date{Day: 1, Month: 1, Year: 2023}, false},
		{"new year's eve 2023", calendar.SolarDate{Day: 21, Month: 1, Year: 2023}, Date{Day: 30, Month: 12, Year: 2022}, false},
		{"leap month 2020", calendar.SolarDate{Day: 23, Month: 5, Year: 2020}, Date{Day: 1, Month: 4, Year: 2020}, true},
		{"leap month 2023", calendar.SolarDate{Day: 22, Month: 3, Year: 2023}, Date{Day: 1, Month: 2, Year: 2023}, true},
		{"tet 1985", calendar.SolarDate{Day: 21, Month: 1, Year: 1985}, Date{Day: 1, Month: 1, Year: 1985}, false},
		{"tet 2024", calendar.SolarDate{Day: 10, Month: 2, Year: 2024}, Date{Day: 1, Month: 1, Year: 2024}, false},
		{"first supported day", calendar.SolarDate{Day: 31, Month: 1, Year: 1200}, Date{Day: 14, Month: 1, Year: 1200}, false},
		{"last supported day", calendar.SolarDate{Day: 31, Month: 12, Year: 2199}, Date{Day: 14, Month: 11, Year: 2199}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := ConvertSolarToLunar(tt.solar.Day, tt.solar.Month, tt.solar.Year)
			if err != nil {
				t.Fatalf("ConvertSolarToLunar(%s) error: %v", tt.solar, err)
			}
			if l.Get() != tt.want {
				t.Errorf("ConvertSolarToLunar(%s) = %s, want %s", tt.solar, l.Get(), tt.want)
			}
			if l.LeapMonth() != tt.leap {
				t.Errorf("LeapMonth() = %v, want %v", l.LeapMonth(), tt.leap)
			}
			if jd, ok := l.JD(); !ok || jd != tt.solar.JDN() {
				t.Errorf("JD() = %d, %v, want %d", jd, ok, tt.solar.JDN())
			}

			back, ok := ConvertLunarToSolar(l)
			if !ok || back != tt.solar {
				t.Errorf("ConvertLunarToSolar() = %s, %v, want %s", back, ok, tt.solar)
			}
		})
	}
}

func TestConvertSolarToLunar_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		solar calendar.SolarDate
	}{
		{"impossible day", calendar.SolarDate{Day: 31, Month: 2, Year: 2023}},
		{"before lunar range", calendar.SolarDate{Day: 30, Month: 1, Year: 1200}},
		{"after range", calendar.SolarDate{Day: 1, Month: 1, Year: 2200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromSolarDate(tt.solar)
			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("FromSolarDate(%s) error = %v, want ErrInvalidDate", tt.solar, err)
			}
		})
	}
}

// TestConversion_RoundTrip converts every supported day to lunar and back.
// Short mode samples every 11th day.
func TestConversion_RoundTrip(t *testing.T) {
	step := 1
	if testing.Short() {
		step = 11
	}
	end := calendar.JDN(31, 12, calendar.MaxYear)
	for jd := calendar.FirstSupportedJD; jd <= end; jd += step {
		solar := calendar.FromJD(jd)
		l, err := FromSolarDate(solar)
		if err != nil {
			t.Fatalf("FromSolarDate(%s) error: %v", solar, err)
		}

		var fresh *LunarDate
		if l.LeapMonth() {
			fresh = NewLeap(l.Get())
		} else {
			fresh = New(l.Get())
		}
		if err := fresh.Init(false); err != nil {
			t.Fatalf("Init(%s) error: %v", fresh, err)
		}
		if got, _ := fresh.JD(); got != jd {
			t.Fatalf("lunar %s resolves to %d, want %d", fresh, got, jd)
		}
		if fresh.Length() != l.Length() || fresh.LeapYear() != l.LeapYear() {
			t.Fatalf("lunar %s: resolved fields %+v differ from converted %+v", fresh, *fresh, *l)
		}
	}
}

func TestLocate_Errors(t *testing.T) {
	if _, err := Locate(2459967, nil); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Locate(empty) error = %v, want ErrInvalidState", err)
	}
	if _, err := Locate(2459967, []MonthDescriptor{{Year: 2023, Month: 1}}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Locate(no anchor) error = %v, want ErrInvalidState", err)
	}

	months := DecodeYear(2023, ResolveYearCode(2023))
	if _, err := Locate(months[0].JD-1, months); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Locate(before year) error = %v, want ErrOutOfRange", err)
	}

	l, err := Locate(months[0].JD, months)
	if err != nil {
		t.Fatalf("Locate(first day) error: %v", err)
	}
	if l.Get() != (Date{Day: 1, Month: 1, Year: 2023}) {
		t.Errorf("Locate(first day) = %s", l)
	}
}

func TestConvertLunarToSolar_Unresolved(t *testing.T) {
	l := New(Date{Day: 1, Month: 1, Year: 2023})
	if _, ok := ConvertLunarToSolar(l); ok {
		t.Error("ConvertLunarToSolar() of unresolved date returned ok")
	}
}

// fixedCodes serves a single year code for every year.
type fixedCodes YearCode

func (f fixedCodes) YearCode(int) YearCode { return YearCode(f) }

func TestConverter_CustomSource(t *testing.T) {
	// 2024's code applied to 2023 moves Tết 2023 to January 1 + 40 days.
	c := NewConverter(fixedCodes(ResolveYearCode(2024)))

	months, err := c.MonthsOfYear(2023)
	if err != nil {
		t.Fatalf("MonthsOfYear() error: %v", err)
	}
	if len(months) != 12 {
		t.Errorf("len(months) = %d, want 12", len(months))
	}
	if want := calendar.JDN(1, 1, 2023) + 40; months[0].JD != want {
		t.Errorf("months[0].JD = %d, want %d", months[0].JD, want)
	}

	l := New(Date{Day: 1, Month: 1, Year: 2023})
	if err := c.Resolve(l, false); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if jd, _ := l.JD(); jd != months[0].JD {
		t.Errorf("JD() = %d, want %d", jd, months[0].JD)
	}
}

func TestConverter_MonthsOfYearRange(t *testing.T) {
	c := NewConverter(nil)
	for _, year := range []int{MinYear - 1, MaxYear + 1} {
		if _, err := c.MonthsOfYear(year); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("MonthsOfYear(%d) error = %v, want ErrInvalidDate", year, err)
		}
	}
}
