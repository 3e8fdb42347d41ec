package lunar

import (
	"errors"
	"testing"
)

func TestIsValidDate(t *testing.T) {
	tests := []struct {
		name string
		date Date
		want bool
	}{
		{"ordinary", Date{Day: 15, Month: 8, Year: 2023}, true},
		{"day 30", Date{Day: 30, Month: 12, Year: 2023}, true},
		{"day 0", Date{Day: 0, Month: 1, Year: 2023}, false},
		{"day 31", Date{Day: 31, Month: 1, Year: 2023}, false},
		{"month 0", Date{Day: 1, Month: 0, Year: 2023}, false},
		{"month 13", Date{Day: 1, Month: 13, Year: 2023}, false},
		{"before range", Date{Day: 1, Month: 6, Year: 1199}, false},
		{"after range", Date{Day: 1, Month: 1, Year: 2200}, false},
		{"first day", Date{Day: 14, Month: 1, Year: MinYear}, true},
		{"before first day", Date{Day: 13, Month: 1, Year: MinYear}, false},
		{"second month of first year", Date{Day: 1, Month: 2, Year: MinYear}, true},
		{"last day", Date{Day: 14, Month: 11, Year: MaxYear}, true},
		{"after last day", Date{Day: 15, Month: 11, Year: MaxYear}, false},
		{"last month", Date{Day: 1, Month: 12, Year: MaxYear}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidDate(tt.date); got != tt.want {
				t.Errorf("IsValidDate(%s) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestLunarDate_Init(t *testing.T) {
	tests := []struct {
		name     string
		date     *LunarDate
		wantJD   int
		wantLeap bool
		wantYear bool
		wantLen  int
	}{
		{"tet 2023", New(Date{Day: 1, Month: 1, Year: 2023}), 2459967, false, true, 29},
		{"leap month 2023", NewLeap(Date{Day: 15, Month: 2, Year: 2023}), 2460040, true, true, 29},
		{"regular month after leap", New(Date{Day: 1, Month: 3, Year: 2023}), 2460055, false, true, 29},
		{"leap month 2020", NewLeap(Date{Day: 1, Month: 4, Year: 2020}), 2458993, true, true, 29},
		{"no leap year", New(Date{Day: 1, Month: 1, Year: 2024}), 2460351, false, false, 29},
		{"first day", New(Date{Day: 14, Month: 1, Year: MinYear}), 2159388, false, true, 29},
		{"last day", New(Date{Day: 14, Month: 11, Year: MaxYear}), 2524593, false, true, 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.date.Resolved() {
				t.Fatal("date resolved before Init")
			}
			if err := tt.date.Init(false); err != nil {
				t.Fatalf("Init() error: %v", err)
			}

			jd, ok := tt.date.JD()
			if !ok || jd != tt.wantJD {
				t.Errorf("JD() = %d, %v, want %d, true", jd, ok, tt.wantJD)
			}
			if got := tt.date.LeapMonth(); got != tt.wantLeap {
				t.Errorf("LeapMonth() = %v, want %v", got, tt.wantLeap)
			}
			if got := tt.date.LeapYear(); got != tt.wantYear {
				t.Errorf("LeapYear() = %v, want %v", got, tt.wantYear)
			}
			if got := tt.date.Length(); got != tt.wantLen {
				t.Errorf("Length() = %d, want %d", got, tt.wantLen)
			}
		})
	}
}

func TestLunarDate_InitErrors(t *testing.T) {
	tests := []struct {
		name string
		date *LunarDate
	}{
		{"out of range", New(Date{Day: 1, Month: 1, Year: 2200})},
		{"day past month end", New(Date{Day: 30, Month: 1, Year: 2023})},
		{"leap day past month end", NewLeap(Date{Day: 30, Month: 2, Year: 2023})},
		{"no leap month in year", NewLeap(Date{Day: 1, Month: 2, Year: 2024})},
		{"leap of another month", NewLeap(Date{Day: 1, Month: 3, Year: 2023})},
		{"before first day", New(Date{Day: 1, Month: 1, Year: MinYear})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.date.Init(false)
			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("Init() error = %v, want ErrInvalidDate", err)
			}
			if tt.date.Resolved() {
				t.Error("date resolved after failed Init")
			}
		})
	}
}

func TestLunarDate_InitKeepsFields(t *testing.T) {
	l := New(Date{Day: 1, Month: 1, Year: 2023})
	if err := l.Init(false); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	l.Day = 10
	if err := l.Init(false); err != nil {
		t.Fatalf("Init(false) error: %v", err)
	}
	if jd, _ := l.JD(); jd != 2459967 {
		t.Errorf("Init(false) JD = %d, want the existing 2459967", jd)
	}

	if err := l.Init(true); err != nil {
		t.Fatalf("Init(true) error: %v", err)
	}
	if jd, _ := l.JD(); jd != 2459976 {
		t.Errorf("Init(true) JD = %d, want 2459976", jd)
	}
}

func TestLunarDate_SetDate(t *testing.T) {
	l := New(Date{Day: 1, Month: 1, Year: 2023})
	if err := l.Init(false); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	if err := l.SetDate(Date{Day: 5, Month: 2, Year: 2023}, true); err != nil {
		t.Fatalf("SetDate() error: %v", err)
	}
	if jd, _ := l.JD(); jd != 2460030 {
		t.Errorf("JD() = %d, want 2460030", jd)
	}
	if !l.LeapMonth() {
		t.Error("LeapMonth() = false, want true")
	}
	if got := l.String(); got != "2023-02-05 (nhuận)" {
		t.Errorf("String() = %q", got)
	}
}

func TestLunarDate_SetDateRollback(t *testing.T) {
	l := New(Date{Day: 1, Month: 1, Year: 2023})
	if err := l.Init(false); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	before := *l

	tests := []struct {
		name string
		date Date
		leap bool
	}{
		{"day past month end", Date{Day: 30, Month: 1, Year: 2023}, false},
		{"missing leap month", Date{Day: 1, Month: 5, Year: 2024}, true},
		{"out of range", Date{Day: 1, Month: 1, Year: 1100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := l.SetDate(tt.date, tt.leap)
			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("SetDate() error = %v, want ErrInvalidDate", err)
			}
			if *l != before {
				t.Errorf("date changed to %+v after failed SetDate", *l)
			}
		})
	}
}

func TestResolveField(t *testing.T) {
	if got := resolveField(optional[int]{}, 5, false); got != some(5) {
		t.Errorf("unset field = %+v, want 5", got)
	}
	if got := resolveField(some(3), 5, false); got != some(3) {
		t.Errorf("set field = %+v, want 3", got)
	}
	if got := resolveField(some(3), 5, true); got != some(5) {
		t.Errorf("forced field = %+v, want 5", got)
	}
	// A present false is kept.
	if got := resolveField(some(false), true, false); got != some(false) {
		t.Errorf("set false field = %+v, want false", got)
	}
}

func TestRecommend_InvalidState(t *testing.T) {
	months := DecodeYear(2023, ResolveYearCode(2023))[:4]
	_, err := recommend(Date{Day: 1, Month: 9, Year: 2023}, false, months)
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("recommend() error = %v, want ErrInvalidState", err)
	}
}
