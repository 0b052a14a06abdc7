package repository

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/habitboard/habitboard/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrStreakNotFound = errors.New("streak not found")
)

type StreakRepository interface {
	ByDomainID(domainID string) (*model.Streak, error)
	Streaks(userID string) ([]*model.Streak, error)
	Upsert(streak *model.Streak) error
}

type streakRepository struct {
	db *sqlx.DB
}

func NewStreakRepository(db *sqlx.DB) StreakRepository {
	return &streakRepository{db: db}
}

func (r *streakRepository) ByDomainID(domainID string) (*model.Streak, error) {
	streak := &model.Streak{}
	query := `SELECT * FROM streaks WHERE domain_id = $1`

	err := r.db.Get(streak, query, domainID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStreakNotFound
	}
	if err != nil {
		return nil, err
	}
	return streak, nil
}

func (r *streakRepository) Streaks(userID string) ([]*model.Streak, error) {
	streaks := []*model.Streak{}
	query := `SELECT s.* FROM streaks s
	          JOIN domains d ON d.id = s.domain_id
	          WHERE d.user_id = $1
	          ORDER BY d.created_at ASC, d.id ASC`

	err := r.db.Select(&streaks, query, userID)
	if err != nil {
		return nil, err
	}
	return streaks, nil
}

// Upsert overwrites the cached streak of a domain.
func (r *streakRepository) Upsert(streak *model.Streak) error {
	if streak.ID == "" {
		streak.ID = uuid.New().String()
	}

	query := `INSERT INTO streaks (id, domain_id, current_streak, longest_streak, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (domain_id) DO UPDATE SET
	              current_streak = excluded.current_streak,
	              longest_streak = excluded.longest_streak,
	              updated_at = excluded.updated_at`

	_, err := r.db.Exec(query,
		streak.ID,
		streak.DomainID,
		streak.CurrentStreak,
		streak.LongestStreak,
		streak.UpdatedAt,
	)

	return err
}
