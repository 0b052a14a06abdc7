package streak

import (
	"sort"
	"time"
)

// GoalSummary is the goal block of a goals-and-streaks entry.
type GoalSummary struct {
	Target         int    `json:"target"`
	TotalDays      int    `json:"totalDays"`
	MotivationNote string `json:"motivationNote"`
}

type CurrentWeek struct {
	WeekStart       string      `json:"weekStart"`
	WeekEnd         string      `json:"weekEnd"`
	Completions     []DayStatus `json:"completions"`
	DaysCompleted   int         `json:"daysCompleted"`
	PercentComplete int         `json:"percentComplete"`
}

type StreakSummary struct {
	CurrentWeeks int `json:"currentWeeks"`
	LongestWeeks int `json:"longestWeeks"`
}

// Overview is one domain's entry in the goals-and-streaks payload.
type Overview struct {
	DomainID      string        `json:"id"`
	Name          string        `json:"name"`
	Color         string        `json:"color"`
	Icon          string        `json:"icon"`
	Goal          *GoalSummary  `json:"goal"`
	CurrentWeek   CurrentWeek   `json:"currentWeek"`
	Streak        StreakSummary `json:"streak"`
	ThisMonth     MonthStats    `json:"thisMonth"`
	WeeklyHistory []WeekSummary `json:"weeklyHistory"`
}

// OverviewInput carries everything BuildOverview needs for one domain.
type OverviewInput struct {
	DomainID       string
	Name           string
	Color          string
	Icon           string
	Goal           *Goal
	MotivationNote string
	Dates          []time.Time
	HistoryWeeks   int
}

// BuildOverview assembles a domain's goals-and-streaks entry. Domains without
// a goal get zero progress, zero streaks and an empty history.
func BuildOverview(in OverviewInput, now time.Time) (Overview, error) {
	start, end := WeekBounds(now)

	o := Overview{
		DomainID: in.DomainID,
		Name:     in.Name,
		Color:    in.Color,
		Icon:     in.Icon,
		CurrentWeek: CurrentWeek{
			WeekStart:   FormatDate(start),
			WeekEnd:     FormatDate(end),
			Completions: CurrentWeekDays(in.Dates, now),
		},
		ThisMonth:     ThisMonthStats(in.Dates, now),
		WeeklyHistory: []WeekSummary{},
	}

	if in.Goal == nil {
		return o, nil
	}

	result, err := Calculate(in.Dates, in.Goal, now)
	if err != nil {
		return Overview{}, err
	}

	progress := CurrentWeekProgress(in.Dates, in.Goal.TargetDays, now)
	o.Goal = &GoalSummary{
		Target:         in.Goal.TargetDays,
		TotalDays:      in.Goal.TotalDays,
		MotivationNote: in.MotivationNote,
	}
	o.CurrentWeek.DaysCompleted = progress.DaysCompleted
	o.CurrentWeek.PercentComplete = progress.PercentComplete
	o.Streak = StreakSummary{
		CurrentWeeks: result.CurrentStreak,
		LongestWeeks: result.LongestStreak,
	}
	o.WeeklyHistory = WeeklyHistory(in.Dates, in.Goal.TargetDays, in.HistoryWeeks, now)

	return o, nil
}

// SortOverviews orders entries for display: domains with a goal before those
// without, then active streaks first, then by descending current-week
// percent. Ties keep their input order.
func SortOverviews(items []Overview) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]

		if (a.Goal == nil) != (b.Goal == nil) {
			return a.Goal != nil
		}

		aActive, bActive := a.Streak.CurrentWeeks > 0, b.Streak.CurrentWeeks > 0
		if aActive != bActive {
			return aActive
		}

		return a.CurrentWeek.PercentComplete > b.CurrentWeek.PercentComplete
	})
}
