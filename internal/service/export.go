package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/habitboard/habitboard/internal/clock"
	"github.com/habitboard/habitboard/internal/model"
	"github.com/habitboard/habitboard/internal/repository"
	"github.com/habitboard/habitboard/internal/storage"
	"github.com/habitboard/habitboard/internal/streak"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

const (
	ExportJSON = "json"
	ExportYAML = "yaml"
	ExportCSV  = "csv"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrArchiveDisabled   = errors.New("export archives are not configured")
)

// ExportDocument is a user's complete tracking history.
type ExportDocument struct {
	ExportedAt time.Time      `json:"exportedAt" yaml:"exportedAt"`
	User       ExportUser     `json:"user" yaml:"user"`
	Domains    []ExportDomain `json:"domains" yaml:"domains"`
}

type ExportUser struct {
	Email     string    `json:"email" yaml:"email"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

type ExportGoal struct {
	TargetDays     int    `json:"targetDays" yaml:"targetDays"`
	TotalDays      int    `json:"totalDays" yaml:"totalDays"`
	MotivationNote string `json:"motivationNote,omitempty" yaml:"motivationNote,omitempty"`
}

type ExportDomain struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Color       string        `json:"color" yaml:"color"`
	Icon        string        `json:"icon,omitempty" yaml:"icon,omitempty"`
	CreatedAt   time.Time     `json:"createdAt" yaml:"createdAt"`
	Goal        *ExportGoal   `json:"goal,omitempty" yaml:"goal,omitempty"`
	Streak      streak.Result `json:"streak" yaml:"streak"`
	Completions []string      `json:"completions" yaml:"completions"`
}

// Export is an encoded document ready to be served or stored.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ExportService struct {
	userRepository       repository.UserRepository
	domainRepository     repository.DomainRepository
	completionRepository repository.CompletionRepository
	goalRepository       repository.GoalRepository
	storage              storage.Storage // nil disables archives
	clock                clock.Clock
}

func NewExportService(
	userRepository repository.UserRepository,
	domainRepository repository.DomainRepository,
	completionRepository repository.CompletionRepository,
	goalRepository repository.GoalRepository,
	storage storage.Storage,
	clock clock.Clock,
) *ExportService {
	return &ExportService{
		userRepository:       userRepository,
		domainRepository:     domainRepository,
		completionRepository: completionRepository,
		goalRepository:       goalRepository,
		storage:              storage,
		clock:                clock,
	}
}

// Document collects the export data with freshly computed streaks.
func (s *ExportService) Document(userID string) (*ExportDocument, error) {
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

	goals, err := s.goalRepository.Goals(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	goalByDomain := lo.KeyBy(goals, func(g *model.Goal) string { return g.DomainID })

	now := s.clock.Now()
	doc := &ExportDocument{
		ExportedAt: now.UTC(),
		User: ExportUser{
			Email:     user.Email,
			Name:      user.Name,
			CreatedAt: user.CreatedAt.UTC(),
		},
		Domains: make([]ExportDomain, 0, len(domains)),
	}

	for _, d := range domains {
		values := datesByDomain[d.ID]
		if values == nil {
			values = []string{}
		}

		entry := ExportDomain{
			ID:          d.ID,
			Name:        d.Name,
			Color:       d.Color,
			Icon:        d.Icon,
			CreatedAt:   d.CreatedAt.UTC(),
			Completions: values,
		}

		if goal, ok := goalByDomain[d.ID]; ok {
			entry.Goal = &ExportGoal{
				TargetDays:     goal.TargetDays,
				TotalDays:      goal.TotalDays,
				MotivationNote: goal.MotivationNote,
			}

			dates, err := streak.ParseDates(values)
			if err != nil {
				return nil, fmt.Errorf("domain %s: %w", d.ID, err)
			}
			entry.Streak, err = streak.Calculate(dates, engineGoal(goal), now)
			if err != nil {
				return nil, fmt.Errorf("domain %s: %w", d.ID, err)
			}
		}

		doc.Domains = append(doc.Domains, entry)
	}

	return doc, nil
}

// Export encodes the user's history as json, yaml or csv.
func (s *ExportService) Export(userID, format string) (*Export, error) {
	if format == "" {
		format = ExportJSON
	}

	doc, err := s.Document(userID)
	if err != nil {
		return nil, err
	}

	data, contentType, err := encodeExport(doc, format)
	if err != nil {
		return nil, err
	}

	return &Export{
		Filename:    fmt.Sprintf("habitboard-%s.%s", doc.ExportedAt.Format("20060102-150405"), format),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// Archive stores an export in object storage and returns a presigned
// download URL.
func (s *ExportService) Archive(ctx context.Context, userID, format string) (string, error) {
	if s.storage == nil {
		return "", ErrArchiveDisabled
	}

	export, err := s.Export(userID, format)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("exports/%s/%s", userID, export.Filename)

	err = s.storage.Put(ctx, key, export.ContentType, bytes.NewReader(export.Data))
	if err != nil {
		return "", fmt.Errorf("failed to store export: %w", err)
	}

	url, err := s.storage.PresignedURL(ctx, key)
	if err != nil {
		return "", err
	}

	slog.Info("export archived", "user_id", userID, "key", key, "bytes", len(export.Data))
	return url, nil
}

func encodeExport(doc *ExportDocument, format string) ([]byte, string, error) {
	switch format {
	case ExportJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		return data, "application/json", err

	case ExportYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, "", err
		}
		if err := enc.Close(); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "application/yaml", nil

	case ExportCSV:
		data, err := encodeCSV(doc)
		return data, "text/csv", err

	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// encodeCSV writes one row per completion.
func encodeCSV(doc *ExportDocument) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	err := w.Write([]string{"domain_id", "domain", "date", "target_days", "total_days"})
	if err != nil {
		return nil, err
	}

	for _, d := range doc.Domains {
		target, total := "", ""
		if d.Goal != nil {
			target, total = strconv.Itoa(d.Goal.TargetDays), strconv.Itoa(d.Goal.TotalDays)
		}
		for _, date := range d.Completions {
			err := w.Write([]string{d.ID, csvCell(d.Name), date, target, total})
			if err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// csvCell keeps spreadsheets from evaluating user text as a formula.
func csvCell(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}
