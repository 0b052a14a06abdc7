package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/habitboard/habitboard/internal/clock"
	"github.com/habitboard/habitboard/internal/model"
	"github.com/habitboard/habitboard/internal/repository"
	"github.com/habitboard/habitboard/internal/streak"
	"github.com/habitboard/habitboard/internal/validation"
)

// ToggleResult reports the state of a (domain, date) pair after a toggle.
type ToggleResult struct {
	Completed  bool              `json:"completed"`
	Completion *model.Completion `json:"completion,omitempty"`
	Streak     *model.Streak     `json:"streak,omitempty"`
}

type CompletionService struct {
	domainRepository     repository.DomainRepository
	completionRepository repository.CompletionRepository
	streakService        *StreakService
	clock                clock.Clock
}

func NewCompletionService(
	domainRepository repository.DomainRepository,
	completionRepository repository.CompletionRepository,
	streakService *StreakService,
	clock clock.Clock,
) *CompletionService {
	return &CompletionService{
		domainRepository:     domainRepository,
		completionRepository: completionRepository,
		streakService:        streakService,
		clock:                clock,
	}
}

// Toggle marks the domain done on date, or undoes it if already done, then
// recalculates the domain's streak.
func (s *CompletionService) Toggle(userID, domainID, date string) (*ToggleResult, error) {
	now := s.clock.Now()

	day, err := validation.ValidateCompletionDate(date, now)
	if err != nil {
		return nil, err
	}

	_, err = s.domainRepository.ByID(userID, domainID)
	if err != nil {
		return nil, err
	}

	completion, completed, err := s.completionRepository.Toggle(domainID, streak.FormatDate(day), now.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to toggle completion: %w", err)
	}

	return &ToggleResult{
		Completed:  completed,
		Completion: completion,
		Streak:     s.streakService.refresh(domainID),
	}, nil
}

// Create returns repository.ErrDuplicateCompletion when the domain is already
// done on date.
func (s *CompletionService) Create(userID, domainID, date string) (*model.Completion, error) {
	now := s.clock.Now()

	day, err := validation.ValidateCompletionDate(date, now)
	if err != nil {
		return nil, err
	}

	_, err = s.domainRepository.ByID(userID, domainID)
	if err != nil {
		return nil, err
	}

	completion := &model.Completion{
		ID:        uuid.New().String(),
		DomainID:  domainID,
		Date:      streak.FormatDate(day),
		CreatedAt: now.UTC(),
	}

	err = s.completionRepository.Create(completion)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion: %w", err)
	}

	s.streakService.refresh(domainID)
	return completion, nil
}

func (s *CompletionService) Delete(userID, completionID string) error {
	completion, err := s.completionRepository.ByID(userID, completionID)
	if err != nil {
		return err
	}

	err = s.completionRepository.Delete(userID, completionID)
	if err != nil {
		return fmt.Errorf("failed to delete completion: %w", err)
	}

	s.streakService.refresh(completion.DomainID)
	return nil
}

// List validates date bounds before querying.
func (s *CompletionService) List(userID string, filter repository.CompletionFilter) ([]*model.Completion, error) {
	for field, value := range map[string]string{"startDate": filter.StartDate, "endDate": filter.EndDate} {
		if value == "" {
			continue
		}
		if _, err := streak.ParseDate(value); err != nil {
			return nil, &validation.Error{Field: field, Message: "date must be in yyyy-MM-dd format"}
		}
	}

	return s.completionRepository.Completions(userID, filter)
}
