package lunar

import "github.com/zapponejosh/amlich-api/internal/calendar"

// LuckyHour is a two-hour slot (giờ hoàng đạo). Time holds the start and end
// hour; the Tý slot wraps midnight as [23, 1].
type LuckyHour struct {
	Name string `json:"name"`
	Time [2]int `json:"time"`
}

// YearName returns the Can Chi name of the lunar year.
func (l *LunarDate) YearName() string {
	return Can[(l.Year+6)%10] + " " + Chi[(l.Year+8)%12]
}

// MonthName returns the Can Chi name of the lunar month.
func (l *LunarDate) MonthName() string {
	name := Can[(l.Year*12+l.Month+3)%10] + " " + Chi[(l.Month+1)%12]
	if l.LeapMonth() {
		name += leapSuffix
	}
	return name
}

// DayName returns the Can Chi name of the day.
func (l *LunarDate) DayName() (string, bool) {
	jd, ok := l.JD()
	if !ok {
		return "", false
	}
	return Can[(jd+9)%10] + " " + Chi[(jd+1)%12], true
}

// HourName returns the Can Chi name of the first hour (Tý) of the day. Only
// the stem depends on the day; the branch is always Tý.
func (l *LunarDate) HourName() (string, bool) {
	jd, ok := l.JD()
	if !ok {
		return "", false
	}
	return Can[((jd-1)*2)%10] + " " + Chi[0], true
}

// DayOfWeek returns the Vietnamese weekday name.
func (l *LunarDate) DayOfWeek() (string, bool) {
	jd, ok := l.JD()
	if !ok {
		return "", false
	}
	return Weekdays[(jd+1)%7], true
}

// SolarTerm returns the solar term (tiết khí) of the day, evaluated in the
// Vietnamese reference time zone.
func (l *LunarDate) SolarTerm() (string, bool) {
	jd, ok := l.JD()
	if !ok {
		return "", false
	}
	return SolarTerms[SolarTermIndex(jd+1, TimeZone)], true
}

// LuckyHours returns the lucky hours of the day in branch order.
func (l *LunarDate) LuckyHours() ([]LuckyHour, bool) {
	jd, ok := l.JD()
	if !ok {
		return nil, false
	}
	pattern := luckyHours[((jd+1)%12)%6]

	hours := make([]LuckyHour, 0, 6)
	for i := 0; i < 12; i++ {
		if pattern[i] != '1' {
			continue
		}
		hours = append(hours, LuckyHour{
			Name: Chi[i],
			Time: [2]int{(i*2 + 23) % 24, (i*2 + 1) % 24},
		})
	}
	return hours, true
}

// Info is a flattened view of a lunar date and its derived facts.
type Info struct {
	Day        int                 `json:"day"`
	Month      int                 `json:"month"`
	Year       int                 `json:"year"`
	LeapMonth  bool                `json:"leap_month"`
	LeapYear   bool                `json:"leap_year"`
	JD         int                 `json:"jd,omitempty"`
	Length     int                 `json:"length,omitempty"`
	YearName   string              `json:"year_name"`
	MonthName  string              `json:"month_name"`
	DayName    string              `json:"day_name,omitempty"`
	HourName   string              `json:"hour_name,omitempty"`
	DayOfWeek  string              `json:"day_of_week,omitempty"`
	SolarTerm  string              `json:"solar_term,omitempty"`
	LuckyHours []LuckyHour         `json:"lucky_hours,omitempty"`
	Solar      *calendar.SolarDate `json:"solar,omitempty"`
}

// Info collects the date and every fact derivable from it. Facts that need a
// Julian Day Number are left empty for unresolved dates.
func (l *LunarDate) Info() Info {
	info := Info{
		Day:       l.Day,
		Month:     l.Month,
		Year:      l.Year,
		LeapMonth: l.LeapMonth(),
		LeapYear:  l.LeapYear(),
		Length:    l.Length(),
		YearName:  l.YearName(),
		MonthName: l.MonthName(),
	}
	if !l.Resolved() {
		return info
	}

	info.JD, _ = l.JD()
	info.DayName, _ = l.DayName()
	info.HourName, _ = l.HourName()
	info.DayOfWeek, _ = l.DayOfWeek()
	info.SolarTerm, _ = l.SolarTerm()
	info.LuckyHours, _ = l.LuckyHours()
	if solar, ok := l.ToSolarDate(); ok {
		info.Solar = &solar
	}
	return info
}

// ASCII returns a copy of info with every name folded to ASCII.
func (info Info) ASCII() Info {
	info.YearName = ASCII(info.YearName)
	info.MonthName = ASCII(info.MonthName)
	info.DayName = ASCII(info.DayName)
	info.HourName = ASCII(info.HourName)
	info.DayOfWeek = ASCII(info.DayOfWeek)
	info.SolarTerm = ASCII(info.SolarTerm)
	if info.LuckyHours != nil {
		hours := make([]LuckyHour, len(info.LuckyHours))
		for i, h := range info.LuckyHours {
			hours[i] = LuckyHour{Name: ASCII(h.Name), Time: h.Time}
		}
		info.LuckyHours = hours
	}
	return info
}
