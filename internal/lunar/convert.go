package lunar

import (
	"fmt"

	"github.com/zapponejosh/amlich-api/internal/calendar"
)

// Converter converts between solar and lunar dates using the year codes of
// a YearCodeSource.
type Converter struct {
	codes YearCodeSource
}

// NewConverter returns a converter reading year codes from codes. A nil
// source selects the built-in tables.
func NewConverter(codes YearCodeSource) *Converter {
	if codes == nil {
		codes = defaultTables
	}
	return &Converter{codes: codes}
}

var defaultConverter = NewConverter(nil)

// Locate finds the lunar date of day jd in months, which must be ordered by
// JD.
func Locate(jd int, months []MonthDescriptor) (*LunarDate, error) {
	if len(months) == 0 || months[0].JD == 0 {
		return nil, ErrInvalidState
	}
	if jd < months[0].JD {
		return nil, fmt.Errorf("%w: day %d precedes lunar year %d", ErrOutOfRange, jd, months[0].Year)
	}

	i := len(months) - 1
	for jd < months[i].JD {
		i--
	}
	m := months[i]

	return &LunarDate{
		Date: Date{
			Day:   m.Day + jd - m.JD,
			Month: m.Month,
			Year:  m.Year,
		},
		leapMonth: some(m.LeapMonth),
		leapYear:  some(m.LeapYear),
		jd:        some(jd),
		length:    some(m.Length),
	}, nil
}

// YearCode returns the code the converter decodes year with.
func (c *Converter) YearCode(year int) (YearCode, error) {
	if year < MinYear || year > MaxYear {
		return 0, fmt.Errorf("%w: year %d outside %d-%d", ErrInvalidDate, year, MinYear, MaxYear)
	}
	return c.codes.YearCode(year), nil
}

// MonthsOfYear returns the decoded months of a supported lunar year.
func (c *Converter) MonthsOfYear(year int) ([]MonthDescriptor, error) {
	code, err := c.YearCode(year)
	if err != nil {
		return nil, err
	}
	return DecodeYear(year, code), nil
}

// FromSolarDate converts a solar date to its lunar date.
func (c *Converter) FromSolarDate(d calendar.SolarDate) (*LunarDate, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("%w: solar %s", ErrInvalidDate, d)
	}
	jd := d.JDN()
	year := d.Year

	months := DecodeYear(year, c.codes.YearCode(year))
	if jd < months[0].JD {
		// The solar year has turned but the lunar year has not.
		year--
		if year < MinYear {
			return nil, fmt.Errorf("%w: solar %s precedes lunar year %d", ErrOutOfRange, d, MinYear)
		}
		months = DecodeYear(year, c.codes.YearCode(year))
	}
	return Locate(jd, months)
}

// ToSolarDate converts a resolved lunar date to its solar date. It returns
// false if l has never been resolved.
func (c *Converter) ToSolarDate(l *LunarDate) (calendar.SolarDate, bool) {
	jd, ok := l.JD()
	if !ok {
		return calendar.SolarDate{}, false
	}
	return calendar.FromJD(jd), true
}

// Resolve validates l and fills in its unset fields; with force every field is
// recomputed.
func (c *Converter) Resolve(l *LunarDate, force bool) error {
	if !IsValidDate(l.Date) {
		return fmt.Errorf("%w: %s", ErrInvalidDate, l.Date)
	}

	months := DecodeYear(l.Year, c.codes.YearCode(l.Year))
	rec, err := recommend(l.Date, l.leapMonth.value, months)
	if err != nil {
		return err
	}

	l.leapMonth = resolveField(l.leapMonth, rec.leapMonth, force)
	l.leapYear = resolveField(l.leapYear, rec.leapYear, force)
	l.jd = resolveField(l.jd, rec.jd, force)
	l.length = resolveField(l.length, rec.length, force)
	return nil
}

// SetDate resolves a new date into a fresh value and only then replaces *l.
// The returned error always matches ErrInvalidDate and wraps the cause.
func (c *Converter) SetDate(l *LunarDate, d Date, leapMonth bool) error {
	next := &LunarDate{Date: d, leapMonth: some(leapMonth)}
	if err := c.Resolve(next, true); err != nil {
		return asInvalidDate(err)
	}
	*l = *next
	return nil
}

// FromSolarDate converts a solar date using the built-in tables.
func FromSolarDate(d calendar.SolarDate) (*LunarDate, error) {
	return defaultConverter.FromSolarDate(d)
}

// ToSolarDate converts a resolved lunar date to its solar date.
func (l *LunarDate) ToSolarDate() (calendar.SolarDate, bool) {
	return defaultConverter.ToSolarDate(l)
}

// ConvertSolarToLunar converts the solar date day/month/year.
func ConvertSolarToLunar(day, month, year int) (*LunarDate, error) {
	return FromSolarDate(calendar.SolarDate{Day: day, Month: month, Year: year})
}

// ConvertLunarToSolar converts a resolved lunar date. It returns false when
// Init has not run on l.
func ConvertLunarToSolar(l *LunarDate) (calendar.SolarDate, bool) {
	return l.ToSolarDate()
}
