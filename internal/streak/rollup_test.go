package streak

import (
	"testing"
	"time"
)

func TestCurrentWeekProgress(t *testing.T) {
	now := date("2025-01-10") // friday

	tests := []struct {
		name        string
		dates       []time.Time
		target      int
		wantDays    int
		wantPercent int
	}{
		{
			name:        "partial week",
			dates:       run("2025-01-06", 1),
			target:      3,
			wantDays:    1,
			wantPercent: 33,
		},
		{
			name:        "goal exceeded is not capped",
			dates:       run("2025-01-06", 6),
			target:      5,
			wantDays:    6,
			wantPercent: 120,
		},
		{
			name:        "zero target",
			dates:       run("2025-01-06", 2),
			target:      0,
			wantDays:    2,
			wantPercent: 0,
		},
		{
			name:        "previous week ignored",
			dates:       run("2024-12-30", 7),
			target:      5,
			wantDays:    0,
			wantPercent: 0,
		},
		{
			name:        "rounds half up",
			dates:       run("2025-01-06", 1),
			target:      2,
			wantDays:    1,
			wantPercent: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrentWeekProgress(tt.dates, tt.target, now)
			if got.DaysCompleted != tt.wantDays {
				t.Errorf("DaysCompleted = %d, want %d", got.DaysCompleted, tt.wantDays)
			}
			if got.PercentComplete != tt.wantPercent {
				t.Errorf("PercentComplete = %d, want %d", got.PercentComplete, tt.wantPercent)
			}
		})
	}
}

func TestWeeklyHistory(t *testing.T) {
	now := date("2025-01-29") // wednesday, week of 2025-01-27
	dates := concat(
		run("2025-01-20", 4), // most recent completed week
		run("2025-01-27", 2), // in-progress week, excluded
	)

	history := WeeklyHistory(dates, 3, 4, now)
	if len(history) != 4 {
		t.Fatalf("len(history) = %d, want 4", len(history))
	}

	wantStarts := []string{"2025-01-20", "2025-01-13", "2025-01-06", "2024-12-30"}
	achieved := 0
	for i, w := range history {
		if w.WeekStart != wantStarts[i] {
			t.Errorf("history[%d].WeekStart = %s, want %s", i, w.WeekStart, wantStarts[i])
		}
		if w.Target != 3 {
			t.Errorf("history[%d].Target = %d, want 3", i, w.Target)
		}
		if w.Achieved {
			achieved++
			if w.DaysCompleted != 4 {
				t.Errorf("achieved week DaysCompleted = %d, want 4", w.DaysCompleted)
			}
		} else if w.DaysCompleted != 0 {
			t.Errorf("history[%d].DaysCompleted = %d, want 0", i, w.DaysCompleted)
		}
	}
	if achieved != 1 {
		t.Errorf("achieved weeks = %d, want 1", achieved)
	}
	if history[0].WeekEnd != "2025-01-26" {
		t.Errorf("history[0].WeekEnd = %s, want 2025-01-26", history[0].WeekEnd)
	}
}

func TestWeeklyHistoryDefaultCount(t *testing.T) {
	history := WeeklyHistory(nil, 3, 0, date("2025-01-29"))
	if len(history) != DefaultHistoryWeeks {
		t.Errorf("len(history) = %d, want %d", len(history), DefaultHistoryWeeks)
	}
}

func TestThisMonthStats(t *testing.T) {
	now := date("2025-04-10") // april has 30 days
	dates := concat(
		run("2025-03-25", 5), // march, ignored
		run("2025-04-01", 7),
	)

	got := ThisMonthStats(dates, now)
	want := MonthStats{DaysCompleted: 7, TotalDays: 10, Percentage: 70}
	if got != want {
		t.Errorf("ThisMonthStats() = %+v, want %+v", got, want)
	}

	first := ThisMonthStats(nil, date("2025-04-01"))
	if first.TotalDays != 1 || first.Percentage != 0 {
		t.Errorf("first of month = %+v", first)
	}
}

func TestCurrentWeekDays(t *testing.T) {
	days := CurrentWeekDays([]time.Time{date("2025-01-06"), date("2025-01-12")}, date("2025-01-09"))
	if len(days) != 7 {
		t.Fatalf("len(days) = %d, want 7", len(days))
	}
	if days[0].Date != "2025-01-06" || !days[0].Completed {
		t.Errorf("days[0] = %+v", days[0])
	}
	if days[3].Completed {
		t.Errorf("days[3] = %+v, want not completed", days[3])
	}
	if days[6].Date != "2025-01-12" || !days[6].Completed {
		t.Errorf("days[6] = %+v", days[6])
	}
}
