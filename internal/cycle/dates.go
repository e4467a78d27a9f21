package cycle

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD civil date. Dates are timezone-naive, so
// everything is anchored to UTC to keep day arithmetic stable.
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	// time.Parse normalizes overflow (e.g. 2024-02-31 -> 2024-03-02);
	// reject anything that does not format back to itself.
	if t.Format(dateLayout) != s {
		return time.Time{}, fmt.Errorf("invalid calendar date %q", s)
	}
	return t, nil
}

// validDate reports whether s is a real calendar date in YYYY-MM-DD form.
func validDate(s string) bool {
	_, err := parseDate(s)
	return err == nil
}

// addDays returns the civil date n days after s. s must already be valid.
func addDays(s string, n int) string {
	t, err := parseDate(s)
	if err != nil {
		return s
	}
	return t.AddDate(0, 0, n).Format(dateLayout)
}

// dayOfMonth returns the 1-based day of month of a valid civil date.
func dayOfMonth(s string) int {
	t, err := parseDate(s)
	if err != nil {
		return 0
	}
	return t.Day()
}

// monthKey returns the YYYY-MM bucket of a civil date string.
func monthKey(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// normalizeDate accepts the two date shapes the import contract allows:
// YYYY-MM-DD (passed through) and M/D/YYYY or M/D/YY (two-digit years get
// a 20 prefix). Any other shape, or a value that is not a real calendar
// date, is an error.
func normalizeDate(raw string) (string, error) {
	s := strings.TrimSpace(raw)

	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) != 3 {
			return "", fmt.Errorf("unrecognized date shape %q", raw)
		}
		month, err1 := strconv.Atoi(parts[0])
		day, err2 := strconv.Atoi(parts[1])
		year := parts[2]
		if err1 != nil || err2 != nil {
			return "", fmt.Errorf("unrecognized date shape %q", raw)
		}
		if len(year) == 2 {
			year = "20" + year
		}
		if len(year) != 4 {
			return "", fmt.Errorf("unrecognized date shape %q", raw)
		}
		s = fmt.Sprintf("%s-%02d-%02d", year, month, day)
	}

	if _, err := parseDate(s); err != nil {
		return "", err
	}
	return s, nil
}
