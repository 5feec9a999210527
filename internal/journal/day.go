package journal

import (
	"fmt"
	"strings"
	"time"
)

// DayLayout is the storage format of calendar day keys.
const DayLayout = "2006-01-02"

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfNextDay returns midnight of the day after t.
func StartOfNextDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// DayKey formats the calendar day of t in the local time zone, the zone
// stored dates are read back in. Time of day is ignored.
func DayKey(t time.Time) string {
	return t.In(time.Local).Format(DayLayout)
}

// ParseDay parses a YYYY-MM-DD day in the local time zone. The words "today"
// and "yesterday" are accepted relative to now.
func ParseDay(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return StartOfDay(now), nil
	case "yesterday":
		return StartOfDay(now).AddDate(0, 0, -1), nil
	}

	t, err := time.ParseInLocation(DayLayout, strings.TrimSpace(s), now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}
