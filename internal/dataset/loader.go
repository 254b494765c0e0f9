package dataset

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/storewatch/storewatch-api/internal/apperr"
	"github.com/storewatch/storewatch-api/internal/models"
)

// Timestamp layouts seen in the status dataset. Tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999 UTC",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ReadPolls streams every status poll row through fn, in file order. fn
// returning an error stops the read and surfaces that error. Rows are not
// retained; memory stays flat no matter how many polls the file holds.
func ReadPolls(r io.Reader, fn func(models.StorePoll) error) error {
	cr := newRowReader(r)
	cols, err := cr.header("store_id", "timestamp_utc", "status")
	if err != nil {
		return err
	}
	for {
		row, line, err := cr.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if row[cols[0]] == "" {
			return apperr.Parsef("status row %d: missing store_id", line)
		}
		if row[cols[2]] == "" {
			return apperr.Parsef("status row %d: missing status", line)
		}
		ts, err := parseTimestamp(row[cols[1]])
		if err != nil {
			return apperr.Parsef("status row %d: invalid timestamp %q", line, row[cols[1]])
		}
		poll := models.StorePoll{
			StoreID:      row[cols[0]],
			TimestampUTC: ts,
			IsActive:     strings.EqualFold(row[cols[2]], "active"),
		}
		if err := fn(poll); err != nil {
			return err
		}
	}
}

// ReadBusinessHours loads every declared business interval. The day column
// follows the dataset convention 0=Monday through 6=Sunday.
func ReadBusinessHours(r io.Reader) ([]models.BusinessInterval, error) {
	cr := newRowReader(r)
	cols, err := cr.header("store_id", "day", "start_time_local", "end_time_local")
	if err != nil {
		return nil, err
	}
	var intervals []models.BusinessInterval
	for {
		row, line, err := cr.next()
		if err == io.EOF {
			return intervals, nil
		}
		if err != nil {
			return nil, err
		}
		if row[cols[0]] == "" {
			return nil, apperr.Parsef("business hours row %d: missing store_id", line)
		}
		day, err := strconv.Atoi(strings.TrimSpace(row[cols[1]]))
		if err != nil || day < 0 || day > 6 {
			return nil, apperr.Parsef("business hours row %d: invalid day of week %q", line, row[cols[1]])
		}
		start, err := parseTimeOfDay(row[cols[2]])
		if err != nil {
			return nil, apperr.Parsef("business hours row %d: invalid start time %q", line, row[cols[2]])
		}
		end, err := parseTimeOfDay(row[cols[3]])
		if err != nil {
			return nil, apperr.Parsef("business hours row %d: invalid end time %q", line, row[cols[3]])
		}
		intervals = append(intervals, models.BusinessInterval{
			StoreID:      row[cols[0]],
			DayOfWeek:    day,
			StartMinutes: start,
			EndMinutes:   end,
		})
	}
}

// ReadTimezones loads the store to IANA timezone name mapping.
func ReadTimezones(r io.Reader) (map[string]string, error) {
	cr := newRowReader(r)
	cols, err := cr.header("store_id", "timezone_str")
	if err != nil {
		return nil, err
	}
	zones := make(map[string]string)
	for {
		row, line, err := cr.next()
		if err == io.EOF {
			return zones, nil
		}
		if err != nil {
			return nil, err
		}
		if row[cols[0]] == "" || row[cols[1]] == "" {
			return nil, apperr.Parsef("timezone row %d: missing required field", line)
		}
		zones[row[cols[0]]] = strings.TrimSpace(row[cols[1]])
	}
}

// rowReader wraps encoding/csv with header-name column lookup and 1-based
// line numbers for error messages.
type rowReader struct {
	cr   *csv.Reader
	line int
}

func newRowReader(r io.Reader) *rowReader {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	return &rowReader{cr: cr}
}

// header reads the header row and resolves the index of each wanted column.
// Aliases cover the column name variants the datasets use.
func (rr *rowReader) header(names ...string) ([]int, error) {
	record, err := rr.cr.Read()
	if err != nil {
		return nil, apperr.Parsef("failed to read header row: %v", err)
	}
	rr.line = 1

	index := make(map[string]int, len(record))
	for i, h := range record {
		h = strings.ToLower(strings.Trim(strings.TrimSpace(h), `"`))
		index[h] = i
	}

	aliases := map[string][]string{
		"day":          {"day", "day_of_week", "dayofweek"},
		"timezone_str": {"timezone_str", "timezone"},
	}

	cols := make([]int, len(names))
	for i, name := range names {
		candidates := aliases[name]
		if candidates == nil {
			candidates = []string{name}
		}
		found := -1
		for _, c := range candidates {
			if idx, ok := index[c]; ok {
				found = idx
				break
			}
		}
		if found < 0 {
			return nil, apperr.Parsef("missing required column %q", name)
		}
		cols[i] = found
	}
	return cols, nil
}

func (rr *rowReader) next() ([]string, int, error) {
	record, err := rr.cr.Read()
	if err == io.EOF {
		return nil, 0, io.EOF
	}
	rr.line++
	if err != nil {
		return nil, 0, apperr.Parsef("row %d: %v", rr.line, err)
	}
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}
	return record, rr.line, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// parseTimeOfDay turns "HH:MM" or "HH:MM:SS" into minutes since midnight.
func parseTimeOfDay(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return 0, errors.Errorf("malformed time of day %q", s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, errors.Errorf("malformed hour in %q", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, errors.Errorf("malformed minute in %q", s)
	}
	return hours*60 + minutes, nil
}
