package streak

import (
	"errors"
	"time"
)

// MaxWeeks bounds every week scan (~10 years) so corrupted histories cannot
// loop unboundedly.
const MaxWeeks = 520

var ErrInvalidTarget = errors.New("target days must be at least 1")

// Goal is the weekly target the calculator evaluates every week against.
// Only the latest goal is known, so it applies to the whole history.
type Goal struct {
	TargetDays int
	TotalDays  int
}

// Result holds the consecutive-week streaks for one domain.
type Result struct {
	CurrentStreak int `json:"currentStreak" yaml:"currentStreak"`
	LongestStreak int `json:"longestStreak" yaml:"longestStreak"`
}

// Calculate derives the current and longest weekly streaks from a domain's
// completion dates. A nil goal or an empty history yields a zero result.
//
// The week containing now only counts once it meets the target; while it is
// still short the scan starts from the previous week, so an in-progress week
// never breaks the streak.
func Calculate(dates []time.Time, goal *Goal, now time.Time) (Result, error) {
	if goal == nil {
		return Result{}, nil
	}
	if goal.TargetDays < 1 {
		return Result{}, ErrInvalidTarget
	}

	idx := indexWeeks(dates)
	if idx.empty {
		return Result{}, nil
	}

	current := currentStreak(idx, goal.TargetDays, now)
	longest := longestStreak(idx, goal.TargetDays, now)

	return Result{
		CurrentStreak: current,
		LongestStreak: max(longest, current),
	}, nil
}

func currentStreak(idx weekIndex, target int, now time.Time) int {
	earliestWeek := WeekStart(idx.earliest)

	check := WeekStart(now)
	if idx.count(check) < target {
		check = check.AddDate(0, 0, -week)
	}

	streak := 0
	for streak < MaxWeeks && !check.Before(earliestWeek) {
		if idx.count(check) < target {
			break
		}
		streak++
		check = check.AddDate(0, 0, -week)
	}
	return streak
}

// longestStreak scans forward from the earliest completion week (or MaxWeeks
// back, whichever is later) through the week containing now.
func longestStreak(idx weekIndex, target int, now time.Time) int {
	last := WeekStart(now)
	first := WeekStart(idx.earliest)
	if floor := last.AddDate(0, 0, -week*(MaxWeeks-1)); first.Before(floor) {
		first = floor
	}

	longest, run := 0, 0
	for w := first; !w.After(last); w = w.AddDate(0, 0, week) {
		if idx.count(w) >= target {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}
