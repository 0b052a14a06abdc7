package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/habitboard/habitboard/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrCompletionNotFound  = errors.New("completion not found")
	ErrDuplicateCompletion = errors.New("domain already completed on this date")
)

// CompletionFilter narrows Completions. Empty fields are ignored; dates are
// inclusive yyyy-MM-dd bounds.
type CompletionFilter struct {
	DomainID  string
	StartDate string
	EndDate   string
}

type CompletionRepository interface {
	Create(completion *model.Completion) error
	ByID(userID, completionID string) (*model.Completion, error)
	Delete(userID, completionID string) error
	Toggle(domainID, date string, now time.Time) (*model.Completion, bool, error)
	Dates(domainID string) ([]string, error)
	DatesByDomain(userID string) (map[string][]string, error)
	Completions(userID string, filter CompletionFilter) ([]*model.Completion, error)
}

type completionRepository struct {
	db *sqlx.DB
}

func NewCompletionRepository(db *sqlx.DB) CompletionRepository {
	return &completionRepository{db: db}
}

func (r *completionRepository) Create(completion *model.Completion) error {
	query := `INSERT INTO completions (id, domain_id, date, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query, completion.ID, completion.DomainID, completion.Date, completion.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateCompletion
	}
	return err
}

func (r *completionRepository) ByID(userID, completionID string) (*model.Completion, error) {
	completion := &model.Completion{}
	query := `SELECT c.* FROM completions c
	          JOIN domains d ON d.id = c.domain_id
	          WHERE c.id = $1 AND d.user_id = $2`

	err := r.db.Get(completion, query, completionID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCompletionNotFound
	}
	if err != nil {
		return nil, err
	}
	return completion, nil
}

func (r *completionRepository) Delete(userID, completionID string) error {
	query := `DELETE FROM completions
	          WHERE id = $1 AND domain_id IN (SELECT id FROM domains WHERE user_id = $2)`

	result, err := r.db.Exec(query, completionID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCompletionNotFound
	}

	return nil
}

// Toggle removes the completion for (domainID, date) if present and creates it
// otherwise, inside one transaction. It returns the created completion and
// true, or nil and false when a completion was removed.
func (r *completionRepository) Toggle(domainID, date string, now time.Time) (*model.Completion, bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	result, err := tx.Exec(`DELETE FROM completions WHERE domain_id = $1 AND date = $2`, domainID, date)
	if err != nil {
		return nil, false, fmt.Errorf("failed to remove completion: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, false, err
	}

	if rows > 0 {
		return nil, false, tx.Commit()
	}

	completion := &model.Completion{
		ID:        uuid.New().String(),
		DomainID:  domainID,
		Date:      date,
		CreatedAt: now,
	}

	_, err = tx.Exec(`INSERT INTO completions (id, domain_id, date, created_at) VALUES ($1, $2, $3, $4)`,
		completion.ID, completion.DomainID, completion.Date, completion.CreatedAt)
	if isUniqueViolation(err) {
		return nil, false, ErrDuplicateCompletion
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to add completion: %w", err)
	}

	return completion, true, tx.Commit()
}

// Dates returns the distinct completion dates of a domain, ascending.
func (r *completionRepository) Dates(domainID string) ([]string, error) {
	dates := []string{}
	query := `SELECT DISTINCT date FROM completions WHERE domain_id = $1 ORDER BY date ASC`

	err := r.db.Select(&dates, query, domainID)
	if err != nil {
		return nil, err
	}
	return dates, nil
}

// DatesByDomain returns every completion date of a user's domains keyed by
// domain ID. Domains without completions are absent.
func (r *completionRepository) DatesByDomain(userID string) (map[string][]string, error) {
	var rows []struct {
		DomainID string `db:"domain_id"`
		Date     string `db:"date"`
	}
	query := `SELECT c.domain_id, c.date FROM completions c
	          JOIN domains d ON d.id = c.domain_id
	          WHERE d.user_id = $1
	          ORDER BY c.domain_id, c.date ASC`

	err := r.db.Select(&rows, query, userID)
	if err != nil {
		return nil, err
	}

	dates := make(map[string][]string)
	for _, row := range rows {
		dates[row.DomainID] = append(dates[row.DomainID], row.Date)
	}
	return dates, nil
}

// Completions lists a user's completions, newest first.
func (r *completionRepository) Completions(userID string, filter CompletionFilter) ([]*model.Completion, error) {
	conditions := []string{"d.user_id = $1"}
	args := []any{userID}

	add := func(condition string, value string) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}
	if filter.DomainID != "" {
		add("c.domain_id = $%d", filter.DomainID)
	}
	if filter.StartDate != "" {
		add("c.date >= $%d", filter.StartDate)
	}
	if filter.EndDate != "" {
		add("c.date <= $%d", filter.EndDate)
	}

	query := `SELECT c.* FROM completions c
	          JOIN domains d ON d.id = c.domain_id
	          WHERE ` + strings.Join(conditions, " AND ") + `
	          ORDER BY c.date DESC, c.created_at DESC`

	completions := []*model.Completion{}
	err := r.db.Select(&completions, query, args...)
	if err != nil {
		return nil, err
	}
	return completions, nil
}
