package validation

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/habitboard/habitboard/internal/model"
	"github.com/habitboard/habitboard/internal/streak"
)

const (
	MaxIconLength           = 16
	MaxMotivationNoteLength = 500
)

func ValidateColor(color string) error {
	if !slices.Contains(model.DomainColors, color) {
		return newError("color", "color must be one of %s", strings.Join(model.DomainColors, ", "))
	}
	return nil
}

// ValidateIcon accepts an empty icon or a short emoji sequence.
func ValidateIcon(icon string) error {
	if utf8.RuneCountInString(icon) > MaxIconLength {
		return newError("icon", "icon is too long (max %d characters)", MaxIconLength)
	}
	return nil
}

// ValidateGoal checks a weekly target of targetDays out of totalDays.
func ValidateGoal(targetDays, totalDays int, motivationNote string) error {
	if totalDays < 1 || totalDays > model.DaysPerWeek {
		return newError("totalDays", "total days must be between 1 and %d", model.DaysPerWeek)
	}

	if targetDays < 1 || targetDays > totalDays {
		return newError("targetDays", "target must be between 1 and %d", totalDays)
	}

	if utf8.RuneCountInString(motivationNote) > MaxMotivationNoteLength {
		return newError("motivationNote", "motivation note is too long (max %d characters)", MaxMotivationNoteLength)
	}

	return nil
}

// ValidateCompletionDate parses a yyyy-MM-dd date and rejects days after
// today.
func ValidateCompletionDate(date string, today time.Time) (time.Time, error) {
	d, err := streak.ParseDate(date)
	if err != nil {
		return time.Time{}, newError("date", "date must be in yyyy-MM-dd format")
	}

	if d.After(streak.Day(today)) {
		return time.Time{}, newError("date", "date cannot be in the future")
	}

	return d, nil
}
