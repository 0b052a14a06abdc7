package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/habitboard/habitboard/internal/clock"
	"github.com/habitboard/habitboard/internal/model"
	"github.com/habitboard/habitboard/internal/repository"
	"github.com/habitboard/habitboard/internal/validation"
	"github.com/samber/lo"
)

// DomainTemplate is a starter domain offered to new users.
type DomainTemplate struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var domainTemplates = []DomainTemplate{
	{Name: "Career Growth", Icon: "💼", Color: "indigo"},
	{Name: "Learning", Icon: "📚", Color: "purple"},
	{Name: "Health & Fitness", Icon: "🏃", Color: "emerald"},
	{Name: "Creative Projects", Icon: "🎨", Color: "amber"},
}

// DomainUpdate is a partial update; nil fields are left unchanged.
type DomainUpdate struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

type DomainService struct {
	domainRepository repository.DomainRepository
	clock            clock.Clock
}

func NewDomainService(domainRepository repository.DomainRepository, clock clock.Clock) *DomainService {
	return &DomainService{
		domainRepository: domainRepository,
		clock:            clock,
	}
}

// Create defaults an empty color to the first palette entry.
func (s *DomainService) Create(userID, name, color, icon string) (*model.Domain, error) {
	name = validation.NormalizeDomainName(name)
	if color == "" {
		color = model.DomainColors[0]
	}

	err := validateDomain(name, color, icon)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	domain := &model.Domain{
		// v7 IDs sort by creation time, which keeps domains created in the
		// same instant in insertion order.
		ID:        uuid.Must(uuid.NewV7()).String(),
		UserID:    userID,
		Name:      name,
		Color:     color,
		Icon:      icon,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.domainRepository.Create(domain)
	if err != nil {
		return nil, fmt.Errorf("failed to create domain: %w", err)
	}

	return domain, nil
}

func (s *DomainService) ByID(userID, domainID string) (*model.Domain, error) {
	return s.domainRepository.ByID(userID, domainID)
}

// Domains lists a user's domains with completion totals and cached streaks.
func (s *DomainService) Domains(userID string) ([]*model.DomainWithStats, error) {
	return s.domainRepository.DomainsWithStats(userID)
}

func (s *DomainService) Update(userID, domainID string, update DomainUpdate) (*model.Domain, error) {
	domain, err := s.domainRepository.ByID(userID, domainID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		domain.Name = validation.NormalizeDomainName(*update.Name)
	}
	if update.Color != nil {
		domain.Color = *update.Color
	}
	if update.Icon != nil {
		domain.Icon = *update.Icon
	}

	err = validateDomain(domain.Name, domain.Color, domain.Icon)
	if err != nil {
		return nil, err
	}

	domain.UpdatedAt = s.clock.Now().UTC()
	err = s.domainRepository.Update(domain)
	if err != nil {
		return nil, err
	}

	return domain, nil
}

// Delete removes the domain and all of its completions, goal and streak.
func (s *DomainService) Delete(userID, domainID string) error {
	return s.domainRepository.Delete(userID, domainID)
}

func (s *DomainService) Templates() []DomainTemplate {
	return domainTemplates
}

// CreateFromTemplates creates one domain per template name, in the order
// given. Unknown names fail before anything is written.
func (s *DomainService) CreateFromTemplates(userID string, names []string) ([]*model.Domain, error) {
	byName := lo.KeyBy(domainTemplates, func(t DomainTemplate) string { return t.Name })

	selected := make([]DomainTemplate, 0, len(names))
	for _, name := range lo.Uniq(names) {
		tpl, ok := byName[name]
		if !ok {
			return nil, &validation.Error{Field: "templates", Message: fmt.Sprintf("unknown template %q", name)}
		}
		selected = append(selected, tpl)
	}

	domains := make([]*model.Domain, 0, len(selected))
	for _, tpl := range selected {
		domain, err := s.Create(userID, tpl.Name, tpl.Color, tpl.Icon)
		if err != nil {
			return nil, err
		}
		domains = append(domains, domain)
	}

	return domains, nil
}

func validateDomain(name, color, icon string) error {
	err := validation.ValidateDomainName(name)
	if err != nil {
		return err
	}

	err = validation.ValidateColor(color)
	if err != nil {
		return err
	}

	return validation.ValidateIcon(icon)
}
