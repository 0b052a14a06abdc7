package service

import (
	"fmt"
	"time"

	"github.com/habitboard/habitboard/internal/analytics"
	"github.com/habitboard/habitboard/internal/clock"
	"github.com/habitboard/habitboard/internal/repository"
	"github.com/habitboard/habitboard/internal/streak"
)

type AnalyticsService struct {
	userRepository       repository.UserRepository
	domainRepository     repository.DomainRepository
	completionRepository repository.CompletionRepository
	clock                clock.Clock
}

func NewAnalyticsService(
	userRepository repository.UserRepository,
	domainRepository repository.DomainRepository,
	completionRepository repository.CompletionRepository,
	clock clock.Clock,
) *AnalyticsService {
	return &AnalyticsService{
		userRepository:       userRepository,
		domainRepository:     domainRepository,
		completionRepository: completionRepository,
		clock:                clock,
	}
}

// Dashboard builds the analytics payload for year/month. Zero values select
// the current month.
func (s *AnalyticsService) Dashboard(userID string, year, month int) (*analytics.Dashboard, error) {
	now := s.clock.Now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}

	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return nil, err
	}

	domains, err := s.domainRepository.Domains(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}

	datesByDomain, err := s.completionRepository.DatesByDomain(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}

	in := analytics.Input{
		Year:             year,
		Month:            time.Month(month),
		Now:              now,
		AccountCreatedAt: user.CreatedAt.In(now.Location()),
		Domains:          make([]analytics.Domain, 0, len(domains)),
	}

	for _, d := range domains {
		dates, err := streak.ParseDates(datesByDomain[d.ID])
		if err != nil {
			return nil, fmt.Errorf("domain %s: %w", d.ID, err)
		}
		in.Domains = append(in.Domains, analytics.Domain{
			ID:        d.ID,
			Name:      d.Name,
			Color:     d.Color,
			CreatedAt: d.CreatedAt.In(now.Location()),
			Dates:     dates,
		})
	}

	return analytics.Build(in)
}
