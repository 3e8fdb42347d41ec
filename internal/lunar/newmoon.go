package lunar

import (
	"fmt"
	"math"

	"github.com/zapponejosh/amlich-api/internal/calendar"
)

// TimeZone is the reference time zone of the Vietnamese calendar, in hours
// east of UTC.
const TimeZone = 7.0

const (
	synodicMonth = 29.530588853
	// JD of the first new moon of 1900 (k = 0), used to number lunations.
	newMoonEpoch = 2415021.076998695
)

// newMoon returns the Julian day of the k-th new moon after 1900-01-01
// (Meeus, chapter 49, truncated).
func newMoon(k int) float64 {
	kf := float64(k)
	t := kf / 1236.85 // Julian centuries since 1900-01-01 12:00
	t2 := t * t
	t3 := t2 * t

	jd1 := 2415020.75933 + 29.53058868*kf + 0.0001178*t2 - 0.000000155*t3
	jd1 += 0.00033 * math.Sin((166.56+132.87*t-0.009173*t2)*degToRad)

	m := 359.2242 + 29.10535608*kf - 0.0000333*t2 - 0.00000347*t3    // sun's mean anomaly
	mpr := 306.0253 + 385.81691806*kf + 0.0107306*t2 + 0.00001236*t3 // moon's mean anomaly
	f := 21.2964 + 390.67050646*kf - 0.0016528*t2 - 0.00000239*t3    // moon's argument of latitude

	c1 := (0.1734-0.000393*t)*math.Sin(m*degToRad) + 0.0021*math.Sin(2*degToRad*m)
	c1 = c1 - 0.4068*math.Sin(mpr*degToRad) + 0.0161*math.Sin(degToRad*2*mpr)
	c1 = c1 - 0.0004*math.Sin(degToRad*3*mpr)
	c1 = c1 + 0.0104*math.Sin(degToRad*2*f) - 0.0051*math.Sin(degToRad*(m+mpr))
	c1 = c1 - 0.0074*math.Sin(degToRad*(m-mpr)) + 0.0004*math.Sin(degToRad*(2*f+m))
	c1 = c1 - 0.0004*math.Sin(degToRad*(2*f-m)) - 0.0006*math.Sin(degToRad*(2*f+mpr))
	c1 = c1 + 0.0010*math.Sin(degToRad*(2*f-mpr)) + 0.0005*math.Sin(degToRad*(2*mpr+m))

	var deltaT float64
	if t < -11 {
		deltaT = 0.001 + 0.000839*t + 0.0002261*t2 - 0.00000845*t3 - 0.000000081*t*t3
	} else {
		deltaT = -0.000278 + 0.000265*t + 0.000262*t2
	}
	return jd1 + c1 - deltaT
}

// newMoonDay returns the JDN of the local day on which the k-th new moon
// falls.
func newMoonDay(k int) int {
	return int(math.Floor(newMoon(k) + 0.5 + TimeZone/24))
}

// lunationOf returns the lunation number whose new moon falls on day jd.
func lunationOf(jd int) int {
	k := int(math.Floor((float64(jd)-newMoonEpoch)/synodicMonth + 0.5))
	for newMoonDay(k) < jd {
		k++
	}
	for newMoonDay(k) > jd {
		k--
	}
	return k
}

// lunarMonth11 returns the first day of the lunar month containing the
// December solstice of Gregorian year y.
func lunarMonth11(y int) int {
	off := calendar.JDN(31, 12, y) - 2415021
	k := int(math.Floor(float64(off) / synodicMonth))
	nm := newMoonDay(k)
	if majorTerm(nm, TimeZone) >= 9 {
		nm = newMoonDay(k - 1)
	}
	return nm
}

// leapMonthOffset returns the position, counted from month 11 starting on
// a11, of the first month without a major solar term.
func leapMonthOffset(a11 int) int {
	k := int(math.Floor((float64(a11)-newMoonEpoch)/synodicMonth + 0.5))
	i := 1
	arc := majorTerm(newMoonDay(k+i), TimeZone)
	for {
		last := arc
		i++
		arc = majorTerm(newMoonDay(k+i), TimeZone)
		if arc == last || i >= 14 {
			break
		}
	}
	return i - 1
}

// monthStart is a lunar month located by the generator.
type monthStart struct {
	year, month int
	leap        bool
	jd          int
}

// monthsFromSolstice lists the months from month 11 of lunar year y up to,
// excluding, month 11 of lunar year y+1.
func monthsFromSolstice(y int) []monthStart {
	a11 := lunarMonth11(y)
	b11 := lunarMonth11(y + 1)
	k := lunationOf(a11)

	n, leapOff := 12, -1
	if b11-a11 > 365 {
		n, leapOff = 13, leapMonthOffset(a11)
	}

	months := make([]monthStart, 0, n)
	for i := 0; i < n; i++ {
		ms := monthStart{month: i + 11, jd: newMoonDay(k + i)}
		if leapOff > 0 && i >= leapOff {
			ms.month = i + 10
			ms.leap = i == leapOff
		}
		if ms.month > 12 {
			ms.month -= 12
		}
		ms.year = y + 1
		if ms.month >= 11 && i < 4 {
			ms.year = y
		}
		months = append(months, ms)
	}
	return months
}

// GenerateYearCode computes the year code of lunar year y from the new moon
// and solar longitude series, in the Vietnamese reference time zone.
func GenerateYearCode(y int) (YearCode, error) {
	months := append(monthsFromSolstice(y-1), monthsFromSolstice(y)...)

	first := -1
	for i, m := range months {
		if m.year == y {
			first = i
			break
		}
	}
	if first < 0 || months[first].month != 1 || months[first].leap {
		return 0, fmt.Errorf("year %d: no first month found", y)
	}

	var lengths [12]int
	leapMonth, leapLength := 0, 0
	i := first
	for ; i < len(months)-1 && months[i].year == y; i++ {
		m := months[i]
		length := months[i+1].jd - m.jd
		if !m.leap {
			lengths[m.month-1] = length
			continue
		}
		if leapMonth != 0 {
			return 0, fmt.Errorf("year %d: second leap month after month %d", y, m.month)
		}
		leapMonth, leapLength = m.month, length
	}
	if months[i].year != y+1 || months[i].month != 1 {
		return 0, fmt.Errorf("year %d: month list does not end at the next new year", y)
	}

	offset := months[first].jd - calendar.JDN(1, 1, y)
	code, err := EncodeYearCode(offset, leapMonth, leapLength, lengths)
	if err != nil {
		return 0, fmt.Errorf("year %d: %w", y, err)
	}
	return code, nil
}
