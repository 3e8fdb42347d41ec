// Command amlich converts dates between the solar and the Vietnamese lunar
// calendar from the command line.
//
//	amlich                       today (UTC+7)
//	amlich -date 2023-01-22      a solar date
//	amlich -lunar 2023-2-1 -leap a lunar date, here in leap month 2
//	amlich -year 2023            the months and festivals of a lunar year
//	amlich -year 2023 -month 2   the days of lunar month 2
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/zapponejosh/amlich-api/internal/calendar"
	"github.com/zapponejosh/amlich-api/internal/lunar"
)

// festival is a fixed lunar day shown with a year's months.
type festival struct {
	month, day int
	name       string
}

var festivals = []festival{
	{1, 1, "Tết Nguyên Đán"},
	{1, 15, "Tết Nguyên Tiêu"},
	{3, 3, "Tết Hàn Thực"},
	{3, 10, "Giỗ Tổ Hùng Vương"},
	{4, 15, "Lễ Phật Đản"},
	{5, 5, "Tết Đoan Ngọ"},
	{7, 15, "Vu Lan"},
	{8, 15, "Tết Trung Thu"},
	{12, 23, "Ông Công Ông Táo"},
}

type options struct {
	ascii bool
	json  bool
}

func main() {
	date := flag.String("date", "", "Solar date (YYYY-MM-DD)")
	lunarDate := flag.String("lunar", "", "Lunar date (YYYY-M-D)")
	leap := flag.Bool("leap", false, "With -lunar or -month: use the leap month")
	year := flag.Int("year", 0, "Print the months and festivals of a lunar year")
	month := flag.Int("month", 0, "With -year: print the days of one lunar month")
	ascii := flag.Bool("ascii", false, "Strip Vietnamese diacritics")
	asJSON := flag.Bool("json", false, "Print JSON")
	flag.Parse()

	opts := options{ascii: *ascii, json: *asJSON}

	var err error
	switch {
	case *year != 0 && *month != 0:
		err = printMonth(*year, *month, *leap, opts)
	case *year != 0:
		err = printYear(*year, opts)
	case *lunarDate != "":
		err = printLunar(*lunarDate, *leap, opts)
	case *date != "":
		err = printSolar(*date, opts)
	default:
		err = printInfo(today(), opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func today() *lunar.LunarDate {
	now := time.Now().In(time.FixedZone("ICT", int(lunar.TimeZone*3600)))
	l, err := lunar.FromSolarDate(calendar.FromTime(now))
	if err != nil {
		// The clock is outside the supported years.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return l
}

func printSolar(s string, opts options) error {
	d, err := calendar.ParseDateString(s)
	if err != nil {
		return err
	}
	l, err := lunar.FromSolarDate(d)
	if err != nil {
		return err
	}
	return printInfo(l, opts)
}

func printLunar(s string, leap bool, opts options) error {
	var d lunar.Date
	if _, err := fmt.Sscanf(s, "%d-%d-%d", &d.Year, &d.Month, &d.Day); err != nil {
		return fmt.Errorf("%w: %q is not YYYY-M-D", lunar.ErrInvalidDate, s)
	}

	l := lunar.New(d)
	if leap {
		l = lunar.NewLeap(d)
	}
	if err := l.Init(false); err != nil {
		return err
	}
	return printInfo(l, opts)
}

func printInfo(l *lunar.LunarDate, opts options) error {
	info := l.Info()
	if opts.ascii {
		info = info.ASCII()
	}
	if opts.json {
		return writeJSON(info)
	}

	fmt.Printf("Âm lịch:  %d/%d/%d", info.Day, info.Month, info.Year)
	if info.LeapMonth {
		fmt.Print(" (nhuận)")
	}
	fmt.Println()
	if info.Solar != nil {
		fmt.Printf("Dương lịch: %s (%s)\n", info.Solar, info.DayOfWeek)
	}
	fmt.Printf("Năm:      %s\n", info.YearName)
	fmt.Printf("Tháng:    %s (%d ngày)\n", info.MonthName, info.Length)
	fmt.Printf("Ngày:     %s\n", info.DayName)
	fmt.Printf("Giờ:      %s\n", info.HourName)
	fmt.Printf("Tiết khí: %s\n", info.SolarTerm)

	hours := make([]string, len(info.LuckyHours))
	for i, h := range info.LuckyHours {
		hours[i] = fmt.Sprintf("%s (%d-%d)", h.Name, h.Time[0], h.Time[1])
	}
	fmt.Printf("Giờ hoàng đạo: %s\n", strings.Join(hours, ", "))
	return nil
}

func printYear(year int, opts options) error {
	months, err := lunar.NewConverter(nil).MonthsOfYear(year)
	if err != nil {
		return err
	}

	type dated struct {
		Name  string             `json:"name"`
		Lunar lunar.Date         `json:"lunar"`
		Solar calendar.SolarDate `json:"solar"`
	}
	var days []dated
	for _, f := range festivals {
		l := lunar.New(lunar.Date{Day: f.day, Month: f.month, Year: year})
		if err := l.Init(false); err != nil {
			// Month 12 of the last supported year has no table entry.
			if errors.Is(err, lunar.ErrInvalidDate) {
				continue
			}
			return err
		}
		solar, _ := l.ToSolarDate()
		name := f.name
		if opts.ascii {
			name = lunar.ASCII(name)
		}
		days = append(days, dated{Name: name, Lunar: l.Date, Solar: solar})
	}

	yearName := lunar.New(lunar.Date{Day: 1, Month: 1, Year: year}).YearName()
	if opts.ascii {
		yearName = lunar.ASCII(yearName)
	}

	if opts.json {
		return writeJSON(map[string]any{
			"year":      year,
			"year_name": yearName,
			"months":    months,
			"festivals": days,
		})
	}

	fmt.Printf("=== Năm %s (%d) ===\n\n", yearName, year)
	fmt.Println("Tháng:")
	for _, m := range months {
		leap := "       "
		if m.LeapMonth {
			leap = " nhuận "
		}
		fmt.Printf("  %2d%s %s  %d ngày\n", m.Month, leap, calendar.FromJD(m.JD), m.Length)
	}
	fmt.Println()
	fmt.Println("Ngày lễ:")
	for _, d := range days {
		fmt.Printf("  %-20s %2d/%-2d  %s\n", d.Name, d.Lunar.Day, d.Lunar.Month, d.Solar)
	}
	return nil
}

// printMonth prints one row per day of a lunar month.
func printMonth(year, month int, leap bool, opts options) error {
	d := lunar.Date{Day: 1, Month: month, Year: year}
	first := lunar.New(d)
	if leap {
		first = lunar.NewLeap(d)
	}
	if year == lunar.MinYear && month == 1 {
		// The table starts on day 14 of the first month.
		first.Day = 14
	}
	if err := first.Init(false); err != nil {
		return err
	}

	jd, _ := first.JD()
	last := jd - first.Day + first.Length()
	if year == lunar.MaxYear && month == 11 {
		last = jd - first.Day + 14
	}

	days := make([]lunar.Info, 0, last-jd+1)
	for ; jd <= last; jd++ {
		l, err := lunar.FromSolarDate(calendar.FromJD(jd))
		if err != nil {
			return err
		}
		info := l.Info()
		if opts.ascii {
			info = info.ASCII()
		}
		days = append(days, info)
	}

	if opts.json {
		return writeJSON(days)
	}

	fmt.Printf("=== Tháng %s, năm %s ===\n\n", days[0].MonthName, days[0].YearName)
	for _, info := range days {
		fmt.Printf("  %2d  %s  %-9s %-10s %s\n", info.Day, info.Solar, info.DayOfWeek, info.DayName, info.SolarTerm)
	}
	return nil
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
