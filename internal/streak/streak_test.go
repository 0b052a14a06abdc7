package streak

import (
	"errors"
	"testing"
	"time"
)

func concat(parts ...[]time.Time) []time.Time {
	var all []time.Time
	for _, p := range parts {
		all = append(all, p...)
	}
	return all
}

func TestCalculate(t *testing.T) {
	fiveOfSeven := &Goal{TargetDays: 5, TotalDays: 7}

	tests := []struct {
		name        string
		dates       []time.Time
		goal        *Goal
		now         time.Time
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "no goal",
			dates:       run("2025-01-06", 7),
			goal:        nil,
			now:         date("2025-01-13"),
			wantCurrent: 0,
			wantLongest: 0,
		},
		{
			name:        "no completions",
			dates:       nil,
			goal:        fiveOfSeven,
			now:         date("2025-01-13"),
			wantCurrent: 0,
			wantLongest: 0,
		},
		{
			name:        "previous week met, in-progress week excluded",
			dates:       run("2025-01-06", 5),
			goal:        fiveOfSeven,
			now:         date("2025-01-13"),
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "two met weeks, empty wednesday of the third",
			dates:       concat(run("2025-01-06", 5), run("2025-01-13", 5)),
			goal:        fiveOfSeven,
			now:         date("2025-01-22"),
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name:        "single short week",
			dates:       run("2025-01-06", 3),
			goal:        fiveOfSeven,
			now:         date("2025-01-09"),
			wantCurrent: 0,
			wantLongest: 0,
		},
		{
			name:        "current week already met counts",
			dates:       concat(run("2025-01-06", 5), run("2025-01-13", 5)),
			goal:        fiveOfSeven,
			now:         date("2025-01-17"),
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name:        "exceeding the target still counts",
			dates:       run("2025-01-06", 7),
			goal:        fiveOfSeven,
			now:         date("2025-01-14"),
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "missed week breaks the current run",
			dates:       concat(run("2025-01-06", 5), run("2025-01-20", 5)),
			goal:        fiveOfSeven,
			now:         date("2025-01-27"),
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name: "longest run found earlier in history",
			dates: concat(
				run("2024-12-02", 5),
				run("2024-12-09", 5),
				run("2024-12-16", 5),
				run("2025-01-06", 5),
			),
			goal:        fiveOfSeven,
			now:         date("2025-01-13"),
			wantCurrent: 1,
			wantLongest: 3,
		},
		{
			name:        "earliest completion mid-week still counts its week",
			dates:       run("2025-01-08", 5), // wed..sun
			goal:        &Goal{TargetDays: 5, TotalDays: 7},
			now:         date("2025-01-13"),
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "now before earliest completion",
			dates:       run("2025-03-03", 5),
			goal:        fiveOfSeven,
			now:         date("2025-01-01"),
			wantCurrent: 0,
			wantLongest: 0,
		},
		{
			name:        "duplicate dates count once",
			dates:       []time.Time{date("2025-01-06"), date("2025-01-06"), date("2025-01-06")},
			goal:        &Goal{TargetDays: 2, TotalDays: 7},
			now:         date("2025-01-13"),
			wantCurrent: 0,
			wantLongest: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.dates, tt.goal, tt.now)
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			if got.CurrentStreak != tt.wantCurrent {
				t.Errorf("CurrentStreak = %d, want %d", got.CurrentStreak, tt.wantCurrent)
			}
			if got.LongestStreak != tt.wantLongest {
				t.Errorf("LongestStreak = %d, want %d", got.LongestStreak, tt.wantLongest)
			}
			if got.LongestStreak < got.CurrentStreak {
				t.Errorf("LongestStreak %d < CurrentStreak %d", got.LongestStreak, got.CurrentStreak)
			}
		})
	}
}

func TestCalculateInvalidTarget(t *testing.T) {
	_, err := Calculate(run("2025-01-06", 3), &Goal{TargetDays: 0, TotalDays: 7}, date("2025-01-13"))
	if !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("Calculate() error = %v, want ErrInvalidTarget", err)
	}
}

// The latest target is applied to every historical week; lowering or raising
// it re-evaluates the whole history.
func TestCalculateGoalChangeAppliesToAllHistory(t *testing.T) {
	dates := concat(run("2025-01-06", 3), run("2025-01-13", 3))
	now := date("2025-01-20")

	got, err := Calculate(dates, &Goal{TargetDays: 3, TotalDays: 7}, now)
	if err != nil {
		t.Fatal(err)
	}
	if got.CurrentStreak != 2 || got.LongestStreak != 2 {
		t.Errorf("target 3: got %+v, want current=2 longest=2", got)
	}

	got, err = Calculate(dates, &Goal{TargetDays: 4, TotalDays: 7}, now)
	if err != nil {
		t.Fatal(err)
	}
	if got.CurrentStreak != 0 || got.LongestStreak != 0 {
		t.Errorf("target 4: got %+v, want current=0 longest=0", got)
	}
}

func TestCalculateSafetyBound(t *testing.T) {
	start := date("2010-01-04") // monday
	var dates []time.Time
	for i := range MaxWeeks + 80 {
		dates = append(dates, start.AddDate(0, 0, 7*i))
	}
	now := dates[len(dates)-1].AddDate(0, 0, 1)

	got, err := Calculate(dates, &Goal{TargetDays: 1, TotalDays: 7}, now)
	if err != nil {
		t.Fatal(err)
	}
	if got.CurrentStreak != MaxWeeks {
		t.Errorf("CurrentStreak = %d, want %d", got.CurrentStreak, MaxWeeks)
	}
	if got.LongestStreak != MaxWeeks {
		t.Errorf("LongestStreak = %d, want %d", got.LongestStreak, MaxWeeks)
	}
}

func TestCalculateIdempotent(t *testing.T) {
	dates := concat(run("2024-12-02", 4), run("2024-12-09", 6), run("2025-01-06", 5))
	goal := &Goal{TargetDays: 4, TotalDays: 7}
	now := date("2025-01-15")

	first, err := Calculate(dates, goal, now)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Calculate(dates, goal, now)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("recompute differs: %+v then %+v", first, second)
	}
}

func TestCalculateCompletingCurrentWeekExtendsStreak(t *testing.T) {
	goal := &Goal{TargetDays: 5, TotalDays: 7}
	now := date("2025-01-17") // friday
	dates := concat(run("2025-01-06", 5), run("2025-01-13", 4))

	before, err := Calculate(dates, goal, now)
	if err != nil {
		t.Fatal(err)
	}
	if before.CurrentStreak != 1 {
		t.Fatalf("before: CurrentStreak = %d, want 1", before.CurrentStreak)
	}

	after, err := Calculate(append(dates, date("2025-01-17")), goal, now)
	if err != nil {
		t.Fatal(err)
	}
	if after.CurrentStreak != before.CurrentStreak+1 {
		t.Errorf("after: CurrentStreak = %d, want %d", after.CurrentStreak, before.CurrentStreak+1)
	}

	// A completion outside the active run never lowers the streak.
	unrelated, err := Calculate(append(dates, date("2024-11-04")), goal, now)
	if err != nil {
		t.Fatal(err)
	}
	if unrelated.CurrentStreak != before.CurrentStreak {
		t.Errorf("unrelated: CurrentStreak = %d, want %d", unrelated.CurrentStreak, before.CurrentStreak)
	}
}
