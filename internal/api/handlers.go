package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/amlich-api/internal/calendar"
	"github.com/zapponejosh/amlich-api/internal/config"
	"github.com/zapponejosh/amlich-api/internal/database"
	"github.com/zapponejosh/amlich-api/internal/logger"
	"github.com/zapponejosh/amlich-api/internal/lunar"
)

// vietnam is the civil time zone "today" is evaluated in.
var vietnam = time.FixedZone("ICT", int(lunar.TimeZone*3600))

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db     *database.DB
	conv   *lunar.Converter
	months *database.MonthCache
	codes  *database.YearCodeTable // nil when codes are computed
	cfg    *config.Config
	now    func() time.Time
}

// NewHandlers creates a new Handlers instance. codes may be nil; when set,
// year codes stored through the admin endpoint take effect immediately.
func NewHandlers(db *database.DB, conv *lunar.Converter, codes *database.YearCodeTable, cfg *config.Config, log *slog.Logger) *Handlers {
	return &Handlers{
		db:     db,
		conv:   conv,
		months: database.NewMonthCache(db, conv, log),
		codes:  codes,
		cfg:    cfg,
		now:    time.Now,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Health(r.Context()); err != nil {
		logger.Warn(r.Context(), "health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", CodeUnhealthy)
		return
	}

	WriteSuccess(w, map[string]string{
		"status":     "healthy",
		"year_codes": h.cfg.YearCodes,
	})
}

// GetToday handles GET /api/v1/lunar/today
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	h.writeSolar(w, r, calendar.FromTime(h.now().In(vietnam)))
}

// GetSolarDate handles GET /api/v1/lunar/solar/{date}
func (h *Handlers) GetSolarDate(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")
	date, err := calendar.ParseDateString(dateStr)
	if err != nil {
		h.writeError(w, r, fmt.Sprintf("Invalid date: %s. Use YYYY-MM-DD", dateStr), err)
		return
	}
	h.writeSolar(w, r, date)
}

func (h *Handlers) writeSolar(w http.ResponseWriter, r *http.Request, date calendar.SolarDate) {
	l, err := h.conv.FromSolarDate(date)
	if err != nil {
		h.writeError(w, r, fmt.Sprintf("Cannot convert %s", date), err)
		return
	}
	WriteSuccess(w, h.info(r, l))
}

// GetRange handles GET /api/v1/lunar/range?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handlers) GetRange(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return
	}

	start, err := calendar.ParseDateString(startStr)
	if err != nil {
		h.writeError(w, r, fmt.Sprintf("Invalid start date: %s. Use YYYY-MM-DD", startStr), err)
		return
	}
	end, err := calendar.ParseDateString(endStr)
	if err != nil {
		h.writeError(w, r, fmt.Sprintf("Invalid end date: %s. Use YYYY-MM-DD", endStr), err)
		return
	}

	days := calendar.DaysBetween(start, end)
	if days < 0 {
		WriteBadRequest(w, "Start date must be before or equal to end date")
		return
	}
	if days > h.cfg.MaxRangeDays {
		WriteBadRequest(w, fmt.Sprintf("Date range cannot exceed %d days", h.cfg.MaxRangeDays))
		return
	}

	results := make([]lunar.Info, 0, days+1)
	for n := start.JDN(); n <= end.JDN(); n++ {
		l, err := h.conv.FromSolarDate(calendar.FromJD(n))
		if err != nil {
			h.writeError(w, r, fmt.Sprintf("Cannot convert %s", calendar.FromJD(n)), err)
			return
		}
		results = append(results, h.info(r, l))
	}

	WriteSuccess(w, map[string]any{
		"start": start,
		"end":   end,
		"days":  results,
	})
}

// GetLunarDate handles GET /api/v1/solar/lunar?year=&month=&day=&leap=
func (h *Handlers) GetLunarDate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var fields [3]int
	for i, name := range []string{"day", "month", "year"} {
		n, err := strconv.Atoi(q.Get(name))
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("Parameter %s must be an integer", name))
			return
		}
		fields[i] = n
	}
	leap := false
	if s := q.Get("leap"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			WriteBadRequest(w, "Parameter leap must be a boolean")
			return
		}
		leap = b
	}

	d := lunar.Date{Day: fields[0], Month: fields[1], Year: fields[2]}
	l := lunar.New(d)
	if leap {
		l = lunar.NewLeap(d)
	}
	if err := h.conv.Resolve(l, false); err != nil {
		h.writeError(w, r, fmt.Sprintf("Invalid lunar date: %s", l), err)
		return
	}
	WriteSuccess(w, h.info(r, l))
}

// GetYearMonths handles GET /api/v1/lunar/years/{year}/months
func (h *Handlers) GetYearMonths(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, "Year must be an integer")
		return
	}

	months, err := h.months.Months(r.Context(), year)
	if err != nil {
		h.writeError(w, r, fmt.Sprintf("No months for year %d", year), err)
		return
	}

	leapMonth := 0
	for _, m := range months {
		if m.LeapMonth {
			leapMonth = m.Month
		}
	}
	l := lunar.New(lunar.Date{Day: 1, Month: 1, Year: year})
	WriteSuccess(w, map[string]any{
		"year":       year,
		"year_name":  h.name(r, l.YearName()),
		"leap_month": leapMonth,
		"months":     months,
	})
}

// yearCodesRequest seeds year codes either by computing a span of years or
// from explicit codes.
type yearCodesRequest struct {
	From  int `json:"from,omitempty"`
	To    int `json:"to,omitempty"`
	Codes []struct {
		Year int `json:"year"`
		Code int `json:"code"`
	} `json:"codes,omitempty"`
}

// PostYearCodes handles POST /api/v1/admin/year-codes
func (h *Handlers) PostYearCodes(w http.ResponseWriter, r *http.Request) {
	var req yearCodesRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	records, err := req.records()
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	changed, err := h.db.UpsertYearCodes(r.Context(), records)
	if err != nil {
		logger.Error(r.Context(), "failed to store year codes", err)
		WriteInternalError(w, "Failed to store year codes")
		return
	}
	if h.codes != nil {
		h.codes.Update(records)
	}
	for _, rec := range records {
		h.months.Invalidate(rec.Year)
	}

	logger.Info(r.Context(), "year codes stored",
		slog.Int("received", len(records)),
		slog.Int("changed", changed),
	)

	summaries := make([]database.YearCodeSummary, len(records))
	for i, rec := range records {
		summaries[i] = rec.Summary()
	}
	WriteSuccess(w, map[string]any{
		"received": len(records),
		"changed":  changed,
		"codes":    summaries,
	})
}

func (req yearCodesRequest) records() ([]database.YearCodeRecord, error) {
	if len(req.Codes) > 0 {
		records := make([]database.YearCodeRecord, len(req.Codes))
		for i, c := range req.Codes {
			if c.Year < lunar.MinYear || c.Year > lunar.MaxYear {
				return nil, fmt.Errorf("year %d outside %d-%d", c.Year, lunar.MinYear, lunar.MaxYear)
			}
			if c.Code < 0 || lunar.YearCode(c.Code).LeapMonth() > 12 {
				return nil, fmt.Errorf("year %d: invalid code %d", c.Year, c.Code)
			}
			records[i] = database.YearCodeRecord{Year: c.Year, Code: lunar.YearCode(c.Code), Source: database.SourceImported}
		}
		return records, nil
	}

	if req.From < lunar.MinYear || req.To > lunar.MaxYear || req.From > req.To {
		return nil, fmt.Errorf("from/to must satisfy %d <= from <= to <= %d", lunar.MinYear, lunar.MaxYear)
	}
	records := make([]database.YearCodeRecord, 0, req.To-req.From+1)
	for year := req.From; year <= req.To; year++ {
		records = append(records, database.YearCodeRecord{Year: year, Code: lunar.ResolveYearCode(year), Source: database.SourceComputed})
	}
	return records, nil
}

// info builds the response body of a lunar date, folding names to ASCII when
// the request asks for it.
func (h *Handlers) info(r *http.Request, l *lunar.LunarDate) lunar.Info {
	info := l.Info()
	if wantASCII(r) {
		return info.ASCII()
	}
	return info
}

func (h *Handlers) name(r *http.Request, s string) string {
	if wantASCII(r) {
		return lunar.ASCII(s)
	}
	return s
}

func wantASCII(r *http.Request) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get("ascii"))
	return b
}

// writeError maps a calendar error to a response. Unexpected errors are
// logged and reported without detail.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, message string, err error) {
	status, code := errorStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error(r.Context(), "calendar computation failed", err, slog.String("path", r.URL.Path))
		WriteInternalError(w, "Internal server error")
		return
	}
	WriteError(w, status, message, code)
}

// decodeJSON decodes a JSON request body, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("request body is empty")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
