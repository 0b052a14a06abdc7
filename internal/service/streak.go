package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/habitboard/habitboard/internal/clock"
	"github.com/habitboard/habitboard/internal/model"
	"github.com/habitboard/habitboard/internal/repository"
	"github.com/habitboard/habitboard/internal/streak"
	"golang.org/x/sync/errgroup"
)

const recalculateConcurrency = 4

type StreakService struct {
	domainRepository     repository.DomainRepository
	completionRepository repository.CompletionRepository
	goalRepository       repository.GoalRepository
	streakRepository     repository.StreakRepository
	clock                clock.Clock
	locks                keyedMutex
}

func NewStreakService(
	domainRepository repository.DomainRepository,
	completionRepository repository.CompletionRepository,
	goalRepository repository.GoalRepository,
	streakRepository repository.StreakRepository,
	clock clock.Clock,
) *StreakService {
	return &StreakService{
		domainRepository:     domainRepository,
		completionRepository: completionRepository,
		goalRepository:       goalRepository,
		streakRepository:     streakRepository,
		clock:                clock,
	}
}

// Recalculate recomputes a domain's streak from its completions and goal
// and overwrites the cached row. Calls for the same domain run one at a time.
func (s *StreakService) Recalculate(domainID string) (*model.Streak, error) {
	unlock := s.locks.Lock(domainID)
	defer unlock()

	values, err := s.completionRepository.Dates(domainID)
	if err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}

	dates, err := streak.ParseDates(values)
	if err != nil {
		return nil, err
	}

	goal, err := s.goalRepository.ByDomainID(domainID)
	if err != nil && !errors.Is(err, repository.ErrGoalNotFound) {
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}

	now := s.clock.Now()
	result, err := streak.Calculate(dates, engineGoal(goal), now)
	if err != nil {
		return nil, err
	}

	cached := &model.Streak{
		DomainID:      domainID,
		CurrentStreak: result.CurrentStreak,
		LongestStreak: result.LongestStreak,
		UpdatedAt:     now.UTC(),
	}

	err = s.streakRepository.Upsert(cached)
	if err != nil {
		return nil, fmt.Errorf("failed to save streak: %w", err)
	}

	// An update keeps the row's original id.
	saved, err := s.streakRepository.ByDomainID(domainID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload streak: %w", err)
	}

	slog.Debug("streak recalculated",
		"domain_id", domainID,
		"current", result.CurrentStreak,
		"longest", result.LongestStreak,
	)

	return saved, nil
}

// RecalculateForUser recalculates one domain after checking ownership.
func (s *StreakService) RecalculateForUser(userID, domainID string) (*model.Streak, error) {
	_, err := s.domainRepository.ByID(userID, domainID)
	if err != nil {
		return nil, err
	}
	return s.Recalculate(domainID)
}

// RecalculateAll recalculates every domain of a user, a few at a time.
// Results follow domain creation order.
func (s *StreakService) RecalculateAll(ctx context.Context, userID string) ([]*model.Streak, error) {
	domains, err := s.domainRepository.Domains(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}

	results := make([]*model.Streak, len(domains))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(recalculateConcurrency)

	for i, domain := range domains {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := s.Recalculate(domain.ID)
			if err != nil {
				return fmt.Errorf("domain %s: %w", domain.ID, err)
			}
			results[i] = result
			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return nil, err
	}

	slog.Info("streaks recalculated", "user_id", userID, "domains", len(domains))
	return results, nil
}

func (s *StreakService) Streaks(userID string) ([]*model.Streak, error) {
	return s.streakRepository.Streaks(userID)
}

// refresh recalculates after a mutation. The mutation already succeeded, so
// a failure here is only logged; the cache is rebuilt on the next overview.
func (s *StreakService) refresh(domainID string) *model.Streak {
	result, err := s.Recalculate(domainID)
	if err != nil {
		slog.Error("failed to recalculate streak", "domain_id", domainID, "error", err)
		return nil
	}
	return result
}

func engineGoal(goal *model.Goal) *streak.Goal {
	if goal == nil {
		return nil
	}
	return &streak.Goal{TargetDays: goal.TargetDays, TotalDays: goal.TotalDays}
}
