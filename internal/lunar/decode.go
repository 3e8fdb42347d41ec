package lunar

import "github.com/zapponejosh/amlich-api/internal/calendar"

// MonthDescriptor anchors one lunar month to the day it starts on.
type MonthDescriptor struct {
	Year      int  `json:"year"`
	Month     int  `json:"month"`
	Day       int  `json:"day"`
	LeapMonth bool `json:"leap_month"`
	JD        int  `json:"jd"`
	LeapYear  bool `json:"leap_year"`
	Length    int  `json:"length"`
}

// NewYearJD returns the JDN of the first day of lunar month 1 of year.
func NewYearJD(year int, code YearCode) int {
	return calendar.JDN(1, 1, year) + code.NewYearOffset()
}

// DecodeYear lists the months of lunar year year in calendar order. The leap
// month, if any, directly follows the regular month it repeats.
func DecodeYear(year int, code YearCode) []MonthDescriptor {
	leapMonth := code.LeapMonth()
	leapYear := leapMonth != 0

	months := make([]MonthDescriptor, 0, 13)
	jd := NewYearJD(year, code)
	for m := 1; m <= 12; m++ {
		length := code.MonthLength(m)
		months = append(months, MonthDescriptor{
			Year:     year,
			Month:    m,
			Day:      1,
			JD:       jd,
			LeapYear: leapYear,
			Length:   length,
		})
		jd += length

		if m == leapMonth {
			length = code.LeapMonthLength()
			months = append(months, MonthDescriptor{
				Year:      year,
				Month:     m,
				Day:       1,
				LeapMonth: true,
				JD:        jd,
				LeapYear:  true,
				Length:    length,
			})
			jd += length
		}
	}
	return months
}
