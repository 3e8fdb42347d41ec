package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// SolarDate is a Gregorian (or proleptic Julian) date as the API returns it
type SolarDate struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (d SolarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

type LuckyHour struct {
	Name string `json:"name"`
	Time [2]int `json:"time"`
}

// LunarInfo is the response for /lunar/solar/{date}, /lunar/today and /solar/lunar
type LunarInfo struct {
	Day        int         `json:"day"`
	Month      int         `json:"month"`
	Year       int         `json:"year"`
	LeapMonth  bool        `json:"leap_month"`
	LeapYear   bool        `json:"leap_year"`
	JD         int         `json:"jd"`
	Length     int         `json:"length"`
	YearName   string      `json:"year_name"`
	MonthName  string      `json:"month_name"`
	DayName    string      `json:"day_name"`
	HourName   string      `json:"hour_name"`
	DayOfWeek  string      `json:"day_of_week"`
	SolarTerm  string      `json:"solar_term"`
	LuckyHours []LuckyHour `json:"lucky_hours"`
	Solar      *SolarDate  `json:"solar"`
}

// RangeResponse is the response for /lunar/range
type RangeResponse struct {
	Start SolarDate   `json:"start"`
	End   SolarDate   `json:"end"`
	Days  []LunarInfo `json:"days"`
}

type Month struct {
	Month     int  `json:"month"`
	LeapMonth bool `json:"leap_month"`
	JD        int  `json:"jd"`
	Length    int  `json:"length"`
}

// YearMonthsResponse is the response for /lunar/years/{year}/months
type YearMonthsResponse struct {
	Year      int     `json:"year"`
	YearName  string  `json:"year_name"`
	LeapMonth int     `json:"leap_month"`
	Months    []Month `json:"months"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status    string `json:"status"`
	YearCodes string `json:"year_codes"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Âm Lịch API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	tr.testHealth()
	tr.testToday()
	tr.testSpecificDates()
	tr.testLunarToSolar()
	tr.testYearMonths()
	tr.testDateRange()
	tr.testEdgeCases()

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	resp, err := tr.get("/health")
	if err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	var health HealthResponse
	if err := tr.parseDataAs(resp, &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess(fmt.Sprintf("Health check passed (year codes: %s)", health.YearCodes))
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testToday() {
	tr.printSection("Today")

	resp, err := tr.get("/api/v1/lunar/today")
	if err != nil {
		tr.recordError("Today", err.Error())
		return
	}

	var data LunarInfo
	if err := tr.parseDataAs(resp, &data); err != nil {
		tr.recordError("Today", err.Error())
		return
	}

	tr.recordSuccess(fmt.Sprintf("Today: %d/%d/%d (%s, %s)",
		data.Day, data.Month, data.Year, data.DayName, data.YearName))
	tr.printInfoDetail(&data)
}

func (tr *TestRunner) testSpecificDates() {
	tr.printSection("Solar to Lunar")

	testCases := []struct {
		date        string
		day         int
		month       int
		year        int
		leap        bool
		description string
	}{
		{"2023-01-22", 1, 1, 2023, false, "Tết Quý Mão"},
		{"2023-03-22", 1, 2, 2023, true, "Leap month 2 of 2023"},
		{"2023-04-20", 1, 3, 2023, false, "Month after the leap month"},
		{"2024-02-10", 1, 1, 2024, false, "Tết Giáp Thìn"},
		{"2020-05-23", 1, 4, 2020, true, "Leap month 4 of 2020"},
		{"1985-01-21", 1, 1, 1985, false, "Tết 1985 (differs from China)"},
		{"1200-01-31", 14, 1, 1200, false, "First supported day (Julian)"},
		{"2199-12-31", 14, 11, 2199, false, "Last supported day"},
	}

	for _, tc := range testCases {
		resp, err := tr.get(fmt.Sprintf("/api/v1/lunar/solar/%s", tc.date))
		if err != nil {
			tr.recordError(tc.date, err.Error())
			continue
		}

		var data LunarInfo
		if err := tr.parseDataAs(resp, &data); err != nil {
			tr.recordError(tc.date, err.Error())
			continue
		}

		if data.Day == tc.day && data.Month == tc.month && data.Year == tc.year && data.LeapMonth == tc.leap {
			tr.recordSuccess(fmt.Sprintf("%s: %d/%d/%d (%s)",
				tc.date, data.Day, data.Month, data.Year, tc.description))
		} else {
			tr.recordError(tc.date, fmt.Sprintf("Expected %d/%d/%d leap=%v, got %d/%d/%d leap=%v",
				tc.day, tc.month, tc.year, tc.leap, data.Day, data.Month, data.Year, data.LeapMonth))
		}

		if tr.verbose {
			tr.printInfoDetail(&data)
		}
	}
}

func (tr *TestRunner) testLunarToSolar() {
	tr.printSection("Lunar to Solar")

	testCases := []struct {
		query    string
		expected string
	}{
		{"year=2023&month=1&day=1", "2023-01-22"},
		{"year=2023&month=2&day=1&leap=true", "2023-03-22"},
		{"year=2023&month=2&day=1", "2023-02-20"},
		{"year=1200&month=1&day=14", "1200-01-31"},
	}

	for _, tc := range testCases {
		resp, err := tr.get("/api/v1/solar/lunar?" + tc.query)
		if err != nil {
			tr.recordError(tc.query, err.Error())
			continue
		}

		var data LunarInfo
		if err := tr.parseDataAs(resp, &data); err != nil {
			tr.recordError(tc.query, err.Error())
			continue
		}

		if data.Solar != nil && data.Solar.String() == tc.expected {
			tr.recordSuccess(fmt.Sprintf("%s -> %s", tc.query, tc.expected))
		} else {
			tr.recordError(tc.query, fmt.Sprintf("Expected %s, got %v", tc.expected, data.Solar))
		}
	}

	// Leap flag on a month that is not leap
	resp, _ := tr.getRaw("/api/v1/solar/lunar?year=2024&month=2&day=1&leap=true")
	if resp != nil && resp.StatusCode == 400 {
		tr.recordSuccess("Non-existent leap month rejected")
	} else {
		tr.recordError("Leap month", "Should reject leap month 2 of 2024")
	}
	closeBody(resp)
}

func (tr *TestRunner) testYearMonths() {
	tr.printSection("Year Months")

	resp, err := tr.get("/api/v1/lunar/years/2023/months")
	if err != nil {
		tr.recordError("Months 2023", err.Error())
		return
	}

	var data YearMonthsResponse
	if err := tr.parseDataAs(resp, &data); err != nil {
		tr.recordError("Months 2023", err.Error())
		return
	}

	if len(data.Months) == 13 && data.LeapMonth == 2 {
		tr.recordSuccess(fmt.Sprintf("2023 (%s) has 13 months, leap month %d", data.YearName, data.LeapMonth))
	} else {
		tr.recordError("Months 2023", fmt.Sprintf("Expected 13 months with leap 2, got %d with leap %d",
			len(data.Months), data.LeapMonth))
	}

	if tr.verbose {
		for _, m := range data.Months {
			leap := ""
			if m.LeapMonth {
				leap = " (leap)"
			}
			fmt.Printf("    Month %2d%s: JD %d, %d days\n", m.Month, leap, m.JD, m.Length)
		}
		fmt.Println()
	}
}

func (tr *TestRunner) testDateRange() {
	tr.printSection("Date Range Tests")

	resp, err := tr.get("/api/v1/lunar/range?start=2023-01-18&end=2023-01-24")
	if err != nil {
		tr.recordError("Range (week)", err.Error())
		return
	}

	var rangeData RangeResponse
	if err := tr.parseDataAs(resp, &rangeData); err != nil {
		tr.recordError("Range (week)", err.Error())
		return
	}

	if len(rangeData.Days) == 7 {
		tr.recordSuccess(fmt.Sprintf("Week range returned %d days", len(rangeData.Days)))
	} else {
		tr.recordError("Range (week)", fmt.Sprintf("Expected 7 days, got %d", len(rangeData.Days)))
	}

	resp2, _ := tr.getRaw("/api/v1/lunar/range?start=2025-01-01&end=2025-12-31")
	if resp2 != nil && resp2.StatusCode == 400 {
		tr.recordSuccess("Range limit enforced")
	} else {
		tr.recordError("Range limit", "Should reject a year-long range")
	}
	closeBody(resp2)

	resp3, _ := tr.getRaw("/api/v1/lunar/range?start=2025-12-31&end=2025-01-01")
	if resp3 != nil && resp3.StatusCode == 400 {
		tr.recordSuccess("Invalid range rejected (end before start)")
	} else {
		tr.recordError("Invalid range", "Should reject end < start")
	}
	closeBody(resp3)
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	cases := []struct {
		path   string
		status int
		desc   string
	}{
		{"/api/v1/lunar/solar/invalid", 400, "Invalid date format rejected"},
		{"/api/v1/lunar/solar/2023-02-29", 400, "Non-existent day rejected"},
		{"/api/v1/lunar/solar/1582-10-10", 400, "Day skipped by the Gregorian reform rejected"},
		{"/api/v1/lunar/solar/1200-01-30", 400, "Day before the first supported day rejected"},
		{"/api/v1/lunar/range?start=2025-01-01", 400, "Missing end parameter rejected"},
		{"/api/v1/lunar/years/2200/months", 400, "Year outside the table rejected"},
	}

	for _, tc := range cases {
		resp, err := tr.getRaw(tc.path)
		if err != nil {
			tr.recordError(tc.path, err.Error())
			continue
		}
		if resp.StatusCode == tc.status {
			tr.recordSuccess(tc.desc)
		} else {
			tr.recordError(tc.path, fmt.Sprintf("Expected HTTP %d, got %d", tc.status, resp.StatusCode))
		}
		closeBody(resp)
	}

	// Diacritics folded on request
	resp, err := tr.get("/api/v1/lunar/solar/2023-01-22?ascii=true")
	if err != nil {
		tr.recordError("ASCII", err.Error())
		return
	}
	var data LunarInfo
	if err := tr.parseDataAs(resp, &data); err != nil {
		tr.recordError("ASCII", err.Error())
		return
	}
	if data.YearName == "Quy Mao" {
		tr.recordSuccess("ASCII names: " + data.YearName)
	} else {
		tr.recordError("ASCII", fmt.Sprintf("Expected 'Quy Mao', got '%s'", data.YearName))
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) get(path string) (*APIResponse, error) {
	resp, err := tr.getRaw(path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return nil, fmt.Errorf("API error: %s", errMsg)
	}

	return &apiResp, nil
}

func (tr *TestRunner) getRaw(path string) (*http.Response, error) {
	url := tr.baseURL + path
	return tr.client.Get(url)
}

func closeBody(resp *http.Response) {
	if resp != nil {
		resp.Body.Close()
	}
}

func (tr *TestRunner) parseDataAs(resp *APIResponse, target interface{}) error {
	// Re-marshal and unmarshal to convert map to struct
	dataBytes, err := json.Marshal(resp.Data)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	return json.Unmarshal(dataBytes, target)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) printInfoDetail(info *LunarInfo) {
	if info == nil {
		return
	}
	fmt.Printf("    Year:  %s\n", info.YearName)
	fmt.Printf("    Month: %s\n", info.MonthName)
	fmt.Printf("    Day:   %s (%s)\n", info.DayName, info.DayOfWeek)
	if info.SolarTerm != "" {
		fmt.Printf("    Term:  %s\n", info.SolarTerm)
	}
	if len(info.LuckyHours) > 0 {
		fmt.Printf("    Lucky hours:\n")
		for _, h := range info.LuckyHours {
			fmt.Printf("      - %s (%d-%d)\n", h.Name, h.Time[0], h.Time[1])
		}
	}
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	verbose := flag.Bool("v", false, "Verbose output (show date details)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *verbose)
	runner.Run()

	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
