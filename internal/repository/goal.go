package repository

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/habitboard/habitboard/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	ByDomainID(domainID string) (*model.Goal, error)
	Goals(userID string) ([]*model.Goal, error)
	Upsert(goal *model.Goal) error
	Delete(domainID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

// ByDomainID returns ErrGoalNotFound when the domain has no goal.
func (r *goalRepository) ByDomainID(domainID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE domain_id = $1`

	err := r.db.Get(goal, query, domainID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (r *goalRepository) Goals(userID string) ([]*model.Goal, error) {
	goals := []*model.Goal{}
	query := `SELECT g.* FROM goals g
	          JOIN domains d ON d.id = g.domain_id
	          WHERE d.user_id = $1
	          ORDER BY d.created_at ASC, d.id ASC`

	err := r.db.Select(&goals, query, userID)
	if err != nil {
		return nil, err
	}
	return goals, nil
}

// Upsert stores the goal, replacing any existing goal of the same domain.
// The stored row keeps its original ID and CreatedAt.
func (r *goalRepository) Upsert(goal *model.Goal) error {
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}

	query := `INSERT INTO goals (id, domain_id, target_days, total_days, motivation_note, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (domain_id) DO UPDATE SET
	              target_days = excluded.target_days,
	              total_days = excluded.total_days,
	              motivation_note = excluded.motivation_note,
	              updated_at = excluded.updated_at`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.DomainID,
		goal.TargetDays,
		goal.TotalDays,
		goal.MotivationNote,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) Delete(domainID string) error {
	query := `DELETE FROM goals WHERE domain_id = $1`

	result, err := r.db.Exec(query, domainID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
