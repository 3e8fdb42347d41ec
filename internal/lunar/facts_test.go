package lunar

import (
	"reflect"
	"testing"

	"github.com/zapponejosh/amlich-api/internal/calendar"
)

func tet2023(t *testing.T) *LunarDate {
	t.Helper()
	l := New(Date{Day: 1, Month: 1, Year: 2023})
	if err := l.Init(false); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	return l
}

func TestFacts_Tet2023(t *testing.T) {
	l := tet2023(t)

	if got := l.YearName(); got != "Quý Mão" {
		t.Errorf("YearName() = %q, want %q", got, "Quý Mão")
	}
	if got := l.MonthName(); got != "Giáp Dần" {
		t.Errorf("MonthName() = %q, want %q", got, "Giáp Dần")
	}

	checks := []struct {
		name string
		fn   func() (string, bool)
		want string
	}{
		{"DayName", l.DayName, "Canh Thìn"},
		{"HourName", l.HourName, "Bính Tý"},
		{"DayOfWeek", l.DayOfWeek, "Chủ nhật"},
		{"SolarTerm", l.SolarTerm, "Đại hàn"},
	}
	for _, c := range checks {
		got, ok := c.fn()
		if !ok || got != c.want {
			t.Errorf("%s() = %q, %v, want %q", c.name, got, ok, c.want)
		}
	}
}

func TestFacts_LuckyHours(t *testing.T) {
	l := tet2023(t)

	got, ok := l.LuckyHours()
	if !ok {
		t.Fatal("LuckyHours() not ok")
	}
	want := []LuckyHour{
		{"Dần", [2]int{3, 5}},
		{"Thìn", [2]int{7, 9}},
		{"Tỵ", [2]int{9, 11}},
		{"Thân", [2]int{15, 17}},
		{"Dậu", [2]int{17, 19}},
		{"Hợi", [2]int{21, 23}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LuckyHours() = %v, want %v", got, want)
	}
}

func TestFacts_LuckyHoursAlwaysSix(t *testing.T) {
	for jd := 2459967; jd < 2459967+12; jd++ {
		l, err := FromSolarDate(calendar.FromJD(jd))
		if err != nil {
			t.Fatalf("FromSolarDate() error: %v", err)
		}
		hours, _ := l.LuckyHours()
		if len(hours) != 6 {
			t.Errorf("day %d: %d lucky hours, want 6", jd, len(hours))
		}
	}
}

func TestFacts_TyWrapsMidnight(t *testing.T) {
	// Day branch Tý selects the first pattern, which includes the Tý slot.
	l, err := FromSolarDate(calendar.FromJD(2459967 + 8))
	if err != nil {
		t.Fatalf("FromSolarDate() error: %v", err)
	}
	hours, _ := l.LuckyHours()
	if len(hours) == 0 || hours[0].Name != "Tý" || hours[0].Time != [2]int{23, 1} {
		t.Errorf("LuckyHours()[0] = %v, want Tý [23 1]", hours)
	}
}

func TestFacts_HourNameBranchIsTy(t *testing.T) {
	// Only the stem follows the day: it advances two places per day over a
	// five day cycle, and the named hour is always the first one (Tý).
	start, _ := tet2023(t).JD()
	stems := make(map[string]bool)
	for jd := start; jd < start+10; jd++ {
		l, err := FromSolarDate(calendar.FromJD(jd))
		if err != nil {
			t.Fatalf("FromSolarDate(%d) error: %v", jd, err)
		}
		name, ok := l.HourName()
		if !ok {
			t.Fatalf("HourName() not resolved for %d", jd)
		}
		want := Can[((jd-1)*2)%10] + " " + Chi[0]
		if name != want {
			t.Errorf("HourName() at %d = %q, want %q", jd, name, want)
		}
		stems[Can[((jd-1)*2)%10]] = true
	}
	if len(stems) != 5 {
		t.Errorf("ten days use %d stems, want 5", len(stems))
	}
}

func TestFacts_LeapMonthName(t *testing.T) {
	l := NewLeap(Date{Day: 1, Month: 2, Year: 2023})
	if err := l.Init(false); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if got := l.MonthName(); got != "Ất Mão (nhuận)" {
		t.Errorf("MonthName() = %q, want %q", got, "Ất Mão (nhuận)")
	}
}

func TestFacts_Unresolved(t *testing.T) {
	l := New(Date{Day: 1, Month: 1, Year: 2023})

	if got := l.YearName(); got != "Quý Mão" {
		t.Errorf("YearName() = %q, want %q", got, "Quý Mão")
	}
	for name, fn := range map[string]func() (string, bool){
		"DayName":   l.DayName,
		"HourName":  l.HourName,
		"DayOfWeek": l.DayOfWeek,
		"SolarTerm": l.SolarTerm,
	} {
		if got, ok := fn(); ok || got != "" {
			t.Errorf("%s() = %q, %v, want empty", name, got, ok)
		}
	}
	if hours, ok := l.LuckyHours(); ok || hours != nil {
		t.Errorf("LuckyHours() = %v, %v, want nil", hours, ok)
	}

	info := l.Info()
	if info.DayName != "" || info.Solar != nil || info.JD != 0 {
		t.Errorf("Info() of unresolved date = %+v", info)
	}
}

func TestInfo(t *testing.T) {
	info := tet2023(t).Info()

	if info.JD != 2459967 || info.Length != 29 || !info.LeapYear || info.LeapMonth {
		t.Errorf("Info() = %+v", info)
	}
	if info.Solar == nil || *info.Solar != (calendar.SolarDate{Day: 22, Month: 1, Year: 2023}) {
		t.Errorf("Info().Solar = %v, want 2023-01-22", info.Solar)
	}

	folded := info.ASCII()
	if folded.YearName != "Quy Mao" || folded.SolarTerm != "Dai han" || folded.DayOfWeek != "Chu nhat" {
		t.Errorf("ASCII() = %+v", folded)
	}
	if folded.LuckyHours[2].Name != "Ty" {
		t.Errorf("ASCII() lucky hour = %q, want %q", folded.LuckyHours[2].Name, "Ty")
	}
	// The original is not modified.
	if info.LuckyHours[2].Name != "Tỵ" {
		t.Errorf("original lucky hour = %q, want %q", info.LuckyHours[2].Name, "Tỵ")
	}
}

func TestASCII(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Giáp Tý", "Giap Ty"},
		{"Đinh Hợi", "Dinh Hoi"},
		{"Sương giáng", "Suong giang"},
		{"Thứ tư", "Thu tu"},
		{"Ất Mão (nhuận)", "At Mao (nhuan)"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ASCII(tt.in); got != tt.want {
			t.Errorf("ASCII(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
