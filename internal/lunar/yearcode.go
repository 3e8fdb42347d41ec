package lunar

import (
	"fmt"
	"sync"
)

// Supported lunar year range.
const (
	MinYear = 1200
	MaxYear = 2199
)

// YearCode is the packed description of one lunar year.
//
//	bits 0-3   leap month (1-12), 0 when the year has none
//	bits 4-15  regular month lengths, month 12 in bit 4 up to month 1 in bit 15
//	bit  16    leap month length
//	bits 17+   offset in days of lunar new year from Gregorian January 1
//
// A length bit of 1 means 30 days, 0 means 29 days.
type YearCode int

var monthLengths = [2]int{29, 30}

// LeapMonth returns the leap month of the year, or 0.
func (c YearCode) LeapMonth() int {
	return int(c & 0xf)
}

// LeapMonthLength returns the length of the leap month. The value is
// meaningless when LeapMonth is 0.
func (c YearCode) LeapMonthLength() int {
	return monthLengths[(c>>16)&0x1]
}

// MonthLength returns the length of regular month m (1-12).
func (c YearCode) MonthLength(m int) int {
	return monthLengths[(c>>(4+12-m))&0x1]
}

// NewYearOffset returns the number of days from January 1 to the first day
// of lunar month 1.
func (c YearCode) NewYearOffset() int {
	return int(c >> 17)
}

// EncodeYearCode packs a lunar year. lengths holds the twelve regular month
// lengths; leapLength is ignored when leapMonth is 0.
func EncodeYearCode(offset, leapMonth, leapLength int, lengths [12]int) (YearCode, error) {
	if leapMonth < 0 || leapMonth > 12 {
		return 0, fmt.Errorf("leap month %d out of range", leapMonth)
	}
	bit := func(n int) (YearCode, error) {
		switch n {
		case 29:
			return 0, nil
		case 30:
			return 1, nil
		}
		return 0, fmt.Errorf("month length %d is neither 29 nor 30", n)
	}

	code := YearCode(offset) << 17
	if leapMonth != 0 {
		b, err := bit(leapLength)
		if err != nil {
			return 0, fmt.Errorf("leap month %d: %w", leapMonth, err)
		}
		code |= b << 16
	}
	for i, n := range lengths {
		b, err := bit(n)
		if err != nil {
			return 0, fmt.Errorf("month %d: %w", i+1, err)
		}
		code |= b << (4 + 12 - (i + 1))
	}
	return code | YearCode(leapMonth), nil
}

// YearCodeSource resolves the year code of a supported lunar year.
type YearCodeSource interface {
	YearCode(year int) YearCode
}

// century is the year code table of one hundred consecutive years, filled on
// first use.
type century struct {
	once  sync.Once
	start int
	codes [100]YearCode
}

func (c *century) fill() {
	for i := range c.codes {
		code, err := GenerateYearCode(c.start + i)
		if err != nil {
			panic(fmt.Sprintf("lunar: year code table %d: %v", c.start, err))
		}
		c.codes[i] = code
	}
}

// Tables is the built-in YearCodeSource covering MinYear through MaxYear,
// partitioned into per-century tables.
type Tables struct {
	centuries [(MaxYear - MinYear + 1) / 100]century
}

// NewTables returns an empty set of tables. Each century is computed the first
// time one of its years is requested.
func NewTables() *Tables {
	t := &Tables{}
	for i := range t.centuries {
		t.centuries[i].start = MinYear + i*100
	}
	return t
}

// YearCode implements YearCodeSource. year must be within [MinYear, MaxYear];
// other values panic like an out of range table index.
func (t *Tables) YearCode(year int) YearCode {
	c := &t.centuries[(year-MinYear)/100]
	c.once.Do(c.fill)
	return c.codes[year-c.start]
}

var defaultTables = NewTables()

// ResolveYearCode returns the year code of year from the built-in tables.
func ResolveYearCode(year int) YearCode {
	return defaultTables.YearCode(year)
}
