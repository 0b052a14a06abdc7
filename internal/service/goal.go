package service

import (
	"fmt"
	"log/slog"

	"github.com/habitboard/habitboard/internal/clock"
	"github.com/habitboard/habitboard/internal/model"
	"github.com/habitboard/habitboard/internal/repository"
	"github.com/habitboard/habitboard/internal/streak"
	"github.com/habitboard/habitboard/internal/validation"
	"github.com/samber/lo"
)

type GoalService struct {
	domainRepository     repository.DomainRepository
	completionRepository repository.CompletionRepository
	goalRepository       repository.GoalRepository
	streakRepository     repository.StreakRepository
	streakService        *StreakService
	clock                clock.Clock
	historyWeeks         int
}

func NewGoalService(
	domainRepository repository.DomainRepository,
	completionRepository repository.CompletionRepository,
	goalRepository repository.GoalRepository,
	streakRepository repository.StreakRepository,
	streakService *StreakService,
	clock clock.Clock,
	historyWeeks int,
) *GoalService {
	return &GoalService{
		domainRepository:     domainRepository,
		completionRepository: completionRepository,
		goalRepository:       goalRepository,
		streakRepository:     streakRepository,
		streakService:        streakService,
		clock:                clock,
		historyWeeks:         historyWeeks,
	}
}

// Set creates or replaces the weekly goal of a domain. A zero totalDays
// means a full week. The new target applies to the domain's entire history.
func (s *GoalService) Set(userID, domainID string, targetDays, totalDays int, motivationNote string) (*model.Goal, error) {
	if totalDays == 0 {
		totalDays = model.DaysPerWeek
	}

	err := validation.ValidateGoal(targetDays, totalDays, motivationNote)
	if err != nil {
		return nil, err
	}

	_, err = s.domainRepository.ByID(userID, domainID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	err = s.goalRepository.Upsert(&model.Goal{
		DomainID:       domainID,
		TargetDays:     targetDays,
		TotalDays:      totalDays,
		MotivationNote: motivationNote,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save goal: %w", err)
	}

	goal, err := s.goalRepository.ByDomainID(domainID)
	if err != nil {
		return nil, err
	}

	s.streakService.refresh(domainID)
	return goal, nil
}

// Remove deletes the goal; the domain's streak drops to zero.
func (s *GoalService) Remove(userID, domainID string) error {
	_, err := s.domainRepository.ByID(userID, domainID)
	if err != nil {
		return err
	}

	err = s.goalRepository.Delete(domainID)
	if err != nil {
		return err
	}

	s.streakService.refresh(domainID)
	return nil
}

func (s *GoalService) Goals(userID string) ([]*model.Goal, error) {
	return s.goalRepository.Goals(userID)
}

// Overview builds the goals-and-streaks payload for every domain of a user,
// sorted for display. Cached streaks that disagree with the fresh
// computation are rewritten.
func (s *GoalService) Overview(userID string) ([]streak.Overview, error) {
	domains, err := s.domainRepository.Domains(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}

	datesByDomain, err := s.completionRepository.DatesByDomain(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}

	goals, err := s.goalRepository.Goals(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	goalByDomain := lo.KeyBy(goals, func(g *model.Goal) string { return g.DomainID })

	cached, err := s.streakRepository.Streaks(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load streaks: %w", err)
	}
	streakByDomain := lo.KeyBy(cached, func(st *model.Streak) string { return st.DomainID })

	now := s.clock.Now()
	overviews := make([]streak.Overview, 0, len(domains))

	for _, domain := range domains {
		dates, err := streak.ParseDates(datesByDomain[domain.ID])
		if err != nil {
			return nil, fmt.Errorf("domain %s: %w", domain.ID, err)
		}

		in := streak.OverviewInput{
			DomainID:     domain.ID,
			Name:         domain.Name,
			Color:        domain.Color,
			Icon:         domain.Icon,
			Dates:        dates,
			HistoryWeeks: s.historyWeeks,
		}
		if goal, ok := goalByDomain[domain.ID]; ok {
			in.Goal = engineGoal(goal)
			in.MotivationNote = goal.MotivationNote
		}

		overview, err := streak.BuildOverview(in, now)
		if err != nil {
			return nil, fmt.Errorf("domain %s: %w", domain.ID, err)
		}
		overviews = append(overviews, overview)

		s.syncStreak(streakByDomain[domain.ID], domain.ID, overview.Streak)
	}

	streak.SortOverviews(overviews)
	return overviews, nil
}

// syncStreak rewrites a cached streak that disagrees with a fresh
// computation.
func (s *GoalService) syncStreak(cached *model.Streak, domainID string, fresh streak.StreakSummary) {
	if cached != nil && cached.CurrentStreak == fresh.CurrentWeeks && cached.LongestStreak == fresh.LongestWeeks {
		return
	}
	slog.Debug("cached streak stale", "domain_id", domainID)
	s.streakService.refresh(domainID)
}
