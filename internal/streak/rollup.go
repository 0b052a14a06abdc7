package streak

import (
	"math"
	"time"
)

// DefaultHistoryWeeks is the number of completed weeks WeeklyHistory returns
// when the caller does not ask for a specific count.
const DefaultHistoryWeeks = 4

type WeekProgress struct {
	DaysCompleted   int `json:"daysCompleted"`
	PercentComplete int `json:"percentComplete"`
}

type WeekSummary struct {
	WeekStart     string `json:"weekStart"`
	WeekEnd       string `json:"weekEnd"`
	Achieved      bool   `json:"achieved"`
	DaysCompleted int    `json:"daysCompleted"`
	Target        int    `json:"target"`
}

type MonthStats struct {
	DaysCompleted int `json:"daysCompleted"`
	TotalDays     int `json:"totalDays"`
	Percentage    int `json:"percentage"`
}

type DayStatus struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// Percent rounds part/whole*100 half away from zero, returning 0 when whole
// is not positive. The result is not capped at 100.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

// CurrentWeekProgress counts completions in the week containing now. Percent
// over 100 means the goal was exceeded.
func CurrentWeekProgress(dates []time.Time, target int, now time.Time) WeekProgress {
	start, end := WeekBounds(now)
	done := CountInWeek(distinctDays(dates), start, end)
	return WeekProgress{
		DaysCompleted:   done,
		PercentComplete: Percent(done, target),
	}
}

// WeeklyHistory summarises the last weeksCount completed weeks, most recent
// first. The in-progress week is excluded. A non-positive weeksCount falls
// back to DefaultHistoryWeeks.
func WeeklyHistory(dates []time.Time, target, weeksCount int, now time.Time) []WeekSummary {
	if weeksCount <= 0 {
		weeksCount = DefaultHistoryWeeks
	}
	weeksCount = min(weeksCount, MaxWeeks)

	days := distinctDays(dates)
	thisWeek := WeekStart(now)

	history := make([]WeekSummary, 0, weeksCount)
	for i := 1; i <= weeksCount; i++ {
		start := thisWeek.AddDate(0, 0, -week*i)
		end := start.AddDate(0, 0, week-1)
		done := CountInWeek(days, start, end)

		history = append(history, WeekSummary{
			WeekStart:     FormatDate(start),
			WeekEnd:       FormatDate(end),
			Achieved:      done >= target,
			DaysCompleted: done,
			Target:        target,
		})
	}
	return history
}

// ThisMonthStats measures the current month against the days lived so far:
// TotalDays runs from the 1st through today inclusive.
func ThisMonthStats(dates []time.Time, now time.Time) MonthStats {
	today := Day(now)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	done := 0
	for _, d := range distinctDays(dates) {
		if !d.Before(monthStart) && !d.After(monthEnd) {
			done++
		}
	}

	total := today.Day()
	return MonthStats{
		DaysCompleted: done,
		TotalDays:     total,
		Percentage:    Percent(done, total),
	}
}

// CurrentWeekDays lists the seven days of the week containing now with their
// completion state.
func CurrentWeekDays(dates []time.Time, now time.Time) []DayStatus {
	done := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		done[Day(d)] = true
	}

	start := WeekStart(now)
	days := make([]DayStatus, 0, week)
	for i := range week {
		d := start.AddDate(0, 0, i)
		days = append(days, DayStatus{Date: FormatDate(d), Completed: done[d]})
	}
	return days
}
