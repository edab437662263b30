package assumption

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate reads a YYYY-MM-DD date. A trailing time component
// ("2026-04-01T00:00:00") is accepted and dropped.
func ParseDate(s string) (time.Time, error) {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// MonthStart truncates t to the first of its month (UTC)
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthIndex counts calendar months from start to t; negative when t is earlier
func MonthIndex(start, t time.Time) int {
	return (t.Year()-start.Year())*12 + int(t.Month()) - int(start.Month())
}

// MonthDate is the first day of month index m
func MonthDate(start time.Time, m int) time.Time {
	return MonthStart(start).AddDate(0, m, 0)
}
