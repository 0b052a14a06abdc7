package streak

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day wire format (yyyy-MM-dd).
const DateLayout = "2006-01-02"

const week = 7

// Day strips the time of day from t. The calendar date is read in t's own
// location and returned as midnight UTC so that day arithmetic never crosses
// a DST transition.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday of the ISO week containing t.
func WeekStart(t time.Time) time.Time {
	day := Day(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

// WeekBounds returns the Monday and Sunday (both inclusive) of the week
// containing t.
func WeekBounds(t time.Time) (start, end time.Time) {
	start = WeekStart(t)
	return start, start.AddDate(0, 0, week-1)
}

// CountInWeek counts the dates that fall within [start, end], inclusive on
// both ends. Only the calendar date of each value is compared.
func CountInWeek(dates []time.Time, start, end time.Time) int {
	start, end = Day(start), Day(end)
	count := 0
	for _, d := range dates {
		d = Day(d)
		if !d.Before(start) && !d.After(end) {
			count++
		}
	}
	return count
}

// FormatDate renders the calendar date of t as yyyy-MM-dd.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a yyyy-MM-dd string into a calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ParseDates parses a list of yyyy-MM-dd strings.
func ParseDates(values []string) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(values))
	for _, v := range values {
		d, err := ParseDate(v)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// weekIndex counts distinct completion days per week, keyed by week start.
// Duplicate dates collapse so a week never exceeds seven days.
type weekIndex struct {
	counts   map[time.Time]int
	earliest time.Time
	empty    bool
}

func indexWeeks(dates []time.Time) weekIndex {
	idx := weekIndex{counts: make(map[time.Time]int), empty: true}
	seen := make(map[time.Time]struct{}, len(dates))
	for _, d := range dates {
		d = Day(d)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		idx.counts[WeekStart(d)]++
		if idx.empty || d.Before(idx.earliest) {
			idx.earliest = d
			idx.empty = false
		}
	}
	return idx
}

func (idx weekIndex) count(weekStart time.Time) int {
	return idx.counts[weekStart]
}

// distinctDays normalises dates to calendar days and drops duplicates,
// preserving the first occurrence order.
func distinctDays(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		d = Day(d)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	return days
}
