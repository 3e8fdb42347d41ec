package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"time"
)

// APIResponse matches the API response structure
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type SolarDate struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (d SolarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

type LunarInfo struct {
	Day       int        `json:"day"`
	Month     int        `json:"month"`
	Year      int        `json:"year"`
	LeapMonth bool       `json:"leap_month"`
	DayName   string     `json:"day_name"`
	Solar     *SolarDate `json:"solar"`
}

type RangeResponse struct {
	Days []LunarInfo `json:"days"`
}

// TestResult holds the result for a single date
type TestResult struct {
	Date      string `json:"date"`
	Success   bool   `json:"success"`
	LunarDate string `json:"lunar_date,omitempty"`
	LunarYear int    `json:"lunar_year,omitempty"`
	Error     string `json:"error,omitempty"`
}

// YearStats tracks statistics for each lunar year
type YearStats struct {
	Year        int      `json:"year"`
	TotalDays   int      `json:"total_days"`
	SuccessDays int      `json:"success_days"`
	FailedDays  int      `json:"failed_days"`
	FailedDates []string `json:"failed_dates,omitempty"`
}

// checker walks solar days through the API and converts each lunar result
// back to solar.
type checker struct {
	client  *http.Client
	baseURL string
	window  int
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	startYear := flag.Int("start", 2020, "Start year (solar)")
	years := flag.Int("years", 4, "Number of years to test")
	window := flag.Int("window", 90, "Days fetched per range request")
	verbose := flag.Bool("v", false, "Verbose output (show each date)")
	outputFile := flag.String("o", "", "Output results to JSON file")
	flag.Parse()

	endYear := *startYear + *years - 1

	// time.Time is proleptic Gregorian; the API uses the Julian calendar before 1582.
	if *startYear < 1583 || endYear > 2199 || *window < 1 {
		fmt.Println("Error: years must lie within 1583-2199 and window must be positive")
		os.Exit(2)
	}

	fmt.Println("================================================================")
	fmt.Println("Âm Lịch API - Round Trip Coverage Test")
	fmt.Println("================================================================")
	fmt.Printf("Base URL:    %s\n", *baseURL)
	fmt.Printf("Date Range:  %d-01-01 to %d-12-31\n", *startYear, endYear)
	fmt.Printf("Total Years: %d\n", *years)
	fmt.Println()

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	c := &checker{client: client, baseURL: *baseURL, window: *window}
	results := c.testAllDates(*startYear, endYear, *verbose)

	analysis := analyzeResults(results)
	printSummary(analysis)
	printAllFailures(analysis)

	if *outputFile != "" {
		saveResults(*outputFile, analysis)
	}

	if analysis.TotalFailed > 0 {
		os.Exit(1)
	}
}

func (c *checker) testAllDates(startYear, endYear int, verbose bool) []TestResult {
	start := time.Date(startYear, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(endYear, 12, 31, 0, 0, 0, 0, time.UTC)
	totalDays := int(end.Sub(start).Hours()/24) + 1

	fmt.Printf("Testing %d days...\n\n", totalDays)

	var results []TestResult
	failed := 0
	lastProgress := -1

	for current := start; !current.After(end); current = current.AddDate(0, 0, c.window) {
		last := current.AddDate(0, 0, c.window-1)
		if last.After(end) {
			last = end
		}

		for _, result := range c.testWindow(current, last) {
			results = append(results, result)
			if !result.Success {
				failed++
			}
			if verbose {
				status := "✓"
				if !result.Success {
					status = "✗"
				}
				fmt.Printf("  %s %s: %s\n", status, result.Date, result.LunarDate)
				if !result.Success {
					fmt.Printf("      Error: %s\n", result.Error)
				}
			}
		}

		progress := (len(results) * 100) / totalDays
		if progress != lastProgress && progress%5 == 0 {
			fmt.Printf("  Progress: %d%% (%d/%d) - Failures: %d\n", progress, len(results), totalDays, failed)
			lastProgress = progress
		}
	}

	fmt.Println()
	return results
}

// testWindow converts the days from first through last with one range
// request, then checks each lunar date converts back to the same day.
func (c *checker) testWindow(first, last time.Time) []TestResult {
	var days []TestResult
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, TestResult{Date: d.Format("2006-01-02")})
	}

	var rng RangeResponse
	path := fmt.Sprintf("/api/v1/lunar/range?start=%s&end=%s", days[0].Date, days[len(days)-1].Date)
	if err := c.get(path, &rng); err != nil {
		for i := range days {
			days[i].Error = err.Error()
		}
		return days
	}
	if len(rng.Days) != len(days) {
		for i := range days {
			days[i].Error = fmt.Sprintf("range returned %d days, want %d", len(rng.Days), len(days))
		}
		return days
	}

	for i, info := range rng.Days {
		days[i].LunarYear = info.Year
		days[i].LunarDate = lunarString(info)
		days[i].Success, days[i].Error = c.roundTrip(days[i].Date, info)
	}
	return days
}

func (c *checker) roundTrip(date string, info LunarInfo) (bool, string) {
	if info.Solar == nil || info.Solar.String() != date {
		return false, fmt.Sprintf("solar echo %v", info.Solar)
	}
	if info.DayName == "" {
		return false, "missing day name"
	}

	var back LunarInfo
	path := fmt.Sprintf("/api/v1/solar/lunar?year=%d&month=%d&day=%d&leap=%t",
		info.Year, info.Month, info.Day, info.LeapMonth)
	if err := c.get(path, &back); err != nil {
		return false, err.Error()
	}
	if back.Solar == nil || back.Solar.String() != date {
		return false, fmt.Sprintf("round trip gave %v", back.Solar)
	}
	return true, ""
}

func (c *checker) get(path string, target any) error {
	resp, err := c.client.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return fmt.Errorf("parse error: %w", err)
	}
	if !apiResp.Success {
		if apiResp.Error != nil {
			return fmt.Errorf("%s: %s", apiResp.Error.Code, apiResp.Error.Message)
		}
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return json.Unmarshal(apiResp.Data, target)
}

func lunarString(info LunarInfo) string {
	s := fmt.Sprintf("%d/%d/%d", info.Day, info.Month, info.Year)
	if info.LeapMonth {
		s += " (leap)"
	}
	return s
}

// Analysis holds the analyzed results
type Analysis struct {
	TotalDays    int
	TotalSuccess int
	TotalFailed  int
	ByYear       map[int]*YearStats
	AllFailures  []TestResult
}

func analyzeResults(results []TestResult) *Analysis {
	analysis := &Analysis{
		ByYear: make(map[int]*YearStats),
	}

	for _, r := range results {
		analysis.TotalDays++

		if _, ok := analysis.ByYear[r.LunarYear]; !ok {
			analysis.ByYear[r.LunarYear] = &YearStats{Year: r.LunarYear}
		}
		stats := analysis.ByYear[r.LunarYear]
		stats.TotalDays++

		if r.Success {
			analysis.TotalSuccess++
			stats.SuccessDays++
		} else {
			analysis.TotalFailed++
			stats.FailedDays++
			stats.FailedDates = append(stats.FailedDates, r.Date)
			analysis.AllFailures = append(analysis.AllFailures, r)
		}
	}

	return analysis
}

func printSummary(analysis *Analysis) {
	fmt.Println("================================================================")
	fmt.Println("SUMMARY")
	fmt.Println("================================================================")
	fmt.Printf("Total Days Tested: %d\n", analysis.TotalDays)
	fmt.Printf("Successful:        %d (%.1f%%)\n", analysis.TotalSuccess,
		float64(analysis.TotalSuccess)/float64(analysis.TotalDays)*100)
	fmt.Printf("Failed:            %d (%.1f%%)\n", analysis.TotalFailed,
		float64(analysis.TotalFailed)/float64(analysis.TotalDays)*100)
	fmt.Println()

	years := make([]int, 0, len(analysis.ByYear))
	for year := range analysis.ByYear {
		years = append(years, year)
	}
	sort.Ints(years)

	// Year 0 collects days whose conversion failed outright.
	fmt.Println("By Lunar Year:")
	for _, year := range years {
		stats := analysis.ByYear[year]
		status := "✓"
		if stats.FailedDays > 0 {
			status = "✗"
		}
		fmt.Printf("  %s %d: %d/%d days (%.1f%% success)\n",
			status, year, stats.SuccessDays, stats.TotalDays,
			float64(stats.SuccessDays)/float64(stats.TotalDays)*100)
	}
	fmt.Println()
}

func printAllFailures(analysis *Analysis) {
	if analysis.TotalFailed == 0 {
		fmt.Println("No failures! 🎉")
		return
	}

	if analysis.TotalFailed > 50 {
		fmt.Printf("(Showing first 50 of %d failures)\n\n", analysis.TotalFailed)
	}

	fmt.Println("================================================================")
	fmt.Println("ALL FAILURES (Date | Lunar | Error)")
	fmt.Println("================================================================")

	errorGroups := make(map[string][]TestResult)
	for _, f := range analysis.AllFailures {
		errorGroups[f.Error] = append(errorGroups[f.Error], f)
	}

	shown := 0
	for errorType, failures := range errorGroups {
		fmt.Printf("\nError: %s (%d occurrences)\n", errorType, len(failures))
		for _, f := range failures {
			if shown >= 50 {
				break
			}
			lunar := f.LunarDate
			if lunar == "" {
				lunar = "(unresolved)"
			}
			fmt.Printf("  %s | %s\n", f.Date, lunar)
			shown++
		}
		if shown >= 50 {
			break
		}
	}
	fmt.Println()
}

func saveResults(filename string, analysis *Analysis) {
	output := struct {
		GeneratedAt string                 `json:"generated_at"`
		Summary     map[string]interface{} `json:"summary"`
		ByYear      map[int]*YearStats     `json:"by_year"`
		Failures    []TestResult           `json:"failures"`
	}{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Summary: map[string]interface{}{
			"total_days":    analysis.TotalDays,
			"total_success": analysis.TotalSuccess,
			"total_failed":  analysis.TotalFailed,
			"success_rate":  fmt.Sprintf("%.2f%%", float64(analysis.TotalSuccess)/float64(analysis.TotalDays)*100),
		},
		ByYear:   analysis.ByYear,
		Failures: analysis.AllFailures,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling results: %v\n", err)
		return
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		fmt.Printf("Error writing file: %v\n", err)
		return
	}

	fmt.Printf("Results saved to: %s\n", filename)
}
