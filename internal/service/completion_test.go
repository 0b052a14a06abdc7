package service

import (
	"errors"
	"testing"

	"github.com/habitboard/habitboard/internal/repository"
	"github.com/habitboard/habitboard/internal/validation"
)

func TestToggle(t *testing.T) {
	f := setup(t)
	f.user(t, "alice", testNow)
	gym := f.domain(t, "alice", "Gym")
	if _, err := f.goalService.Set("alice", gym.ID, 1, 7, ""); err != nil {
		t.Fatal(err)
	}

	on, err := f.completionService.Toggle("alice", gym.ID, "2025-01-13")
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if !on.Completed || on.Completion == nil {
		t.Fatalf("Toggle() = %+v, want completed", on)
	}
	// target 1 met in the current week
	if on.Streak == nil || on.Streak.CurrentStreak != 1 {
		t.Errorf("streak after completing = %+v, want 1", on.Streak)
	}

	off, err := f.completionService.Toggle("alice", gym.ID, "2025-01-13")
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if off.Completed || off.Completion != nil {
		t.Errorf("second Toggle() = %+v, want removed", off)
	}
	if off.Streak == nil || off.Streak.CurrentStreak != 0 || off.Streak.LongestStreak != 0 {
		t.Errorf("streak after undo = %+v, want zero", off.Streak)
	}
}

func TestToggleValidation(t *testing.T) {
	f := setup(t)
	f.user(t, "alice", testNow)
	f.user(t, "bob", testNow)
	gym := f.domain(t, "alice", "Gym")

	tests := []struct {
		name      string
		userID    string
		date      string
		wantErr   error
		wantValid bool
	}{
		{name: "future date", userID: "alice", date: "2025-01-14", wantValid: true},
		{name: "malformed date", userID: "alice", date: "13/01/2025", wantValid: true},
		{name: "other user", userID: "bob", date: "2025-01-13", wantErr: repository.ErrDomainNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.completionService.Toggle(tt.userID, gym.ID, tt.date)
			if err == nil {
				t.Fatal("Toggle() succeeded, want error")
			}
			if tt.wantValid && !validation.IsValidationError(err) {
				t.Errorf("Toggle() error = %v, want validation error", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Toggle() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateDuplicateCompletion(t *testing.T) {
	f := setup(t)
	f.user(t, "alice", testNow)
	gym := f.domain(t, "alice", "Gym")
	f.complete(t, "alice", gym.ID, "2025-01-10")

	_, err := f.completionService.Create("alice", gym.ID, "2025-01-10")
	if !errors.Is(err, repository.ErrDuplicateCompletion) {
		t.Errorf("Create() error = %v, want ErrDuplicateCompletion", err)
	}
}

func TestDeleteCompletionRecalculates(t *testing.T) {
	f := setup(t)
	f.user(t, "alice", testNow)
	gym := f.domain(t, "alice", "Gym")
	if _, err := f.goalService.Set("alice", gym.ID, 5, 7, ""); err != nil {
		t.Fatal(err)
	}
	f.complete(t, "alice", gym.ID, workweek("2025-01-06")...)

	list, err := f.completionService.List("alice", repository.CompletionFilter{DomainID: gym.ID, StartDate: "2025-01-10"})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("List() = %d completions, want 1", len(list))
	}

	if err := f.completionService.Delete("alice", list[0].ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	cached, _ := f.streaks.ByDomainID(gym.ID)
	if cached.CurrentStreak != 0 {
		t.Errorf("current streak = %d after dropping below target, want 0", cached.CurrentStreak)
	}

	if err := f.completionService.Delete("alice", list[0].ID); !errors.Is(err, repository.ErrCompletionNotFound) {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestListRejectsBadDates(t *testing.T) {
	f := setup(t)
	f.user(t, "alice", testNow)

	_, err := f.completionService.List("alice", repository.CompletionFilter{EndDate: "yesterday"})
	if !validation.IsValidationError(err) {
		t.Errorf("List() error = %v, want validation error", err)
	}
}
