package repository

import (
	"database/sql"
	"errors"

	"github.com/habitboard/habitboard/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrDomainNotFound = errors.New("domain not found")
)

type DomainRepository interface {
	Create(domain *model.Domain) error
	ByID(userID, domainID string) (*model.Domain, error)
	Domains(userID string) ([]*model.Domain, error)
	DomainsWithStats(userID string) ([]*model.DomainWithStats, error)
	Update(domain *model.Domain) error
	Delete(userID, domainID string) error
}

type domainRepository struct {
	db *sqlx.DB
}

func NewDomainRepository(db *sqlx.DB) DomainRepository {
	return &domainRepository{db: db}
}

func (r *domainRepository) Create(domain *model.Domain) error {
	query := `INSERT INTO domains (id, user_id, name, color, icon, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		domain.ID,
		domain.UserID,
		domain.Name,
		domain.Color,
		domain.Icon,
		domain.CreatedAt,
		domain.UpdatedAt,
	)

	return err
}

func (r *domainRepository) ByID(userID, domainID string) (*model.Domain, error) {
	domain := &model.Domain{}
	query := `SELECT * FROM domains WHERE id = $1 AND user_id = $2`

	err := r.db.Get(domain, query, domainID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDomainNotFound
	}
	if err != nil {
		return nil, err
	}
	return domain, nil
}

// Domains lists a user's domains in creation order.
func (r *domainRepository) Domains(userID string) ([]*model.Domain, error) {
	domains := []*model.Domain{}
	query := `SELECT * FROM domains WHERE user_id = $1 ORDER BY created_at ASC, id ASC`

	err := r.db.Select(&domains, query, userID)
	if err != nil {
		return nil, err
	}
	return domains, nil
}

func (r *domainRepository) DomainsWithStats(userID string) ([]*model.DomainWithStats, error) {
	domains := []*model.DomainWithStats{}
	query := `SELECT d.*,
	                 (SELECT COUNT(*) FROM completions c WHERE c.domain_id = d.id) AS total_completions,
	                 COALESCE((SELECT s.current_streak FROM streaks s WHERE s.domain_id = d.id), 0) AS current_streak
	          FROM domains d
	          WHERE d.user_id = $1
	          ORDER BY d.created_at ASC, d.id ASC`

	err := r.db.Select(&domains, query, userID)
	if err != nil {
		return nil, err
	}
	return domains, nil
}

func (r *domainRepository) Update(domain *model.Domain) error {
	query := `UPDATE domains
	          SET name = $1, color = $2, icon = $3, updated_at = $4
	          WHERE id = $5 AND user_id = $6`

	result, err := r.db.Exec(query,
		domain.Name,
		domain.Color,
		domain.Icon,
		domain.UpdatedAt,
		domain.ID,
		domain.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrDomainNotFound
	}

	return nil
}

// Delete removes the domain with its completions, goal and streak.
func (r *domainRepository) Delete(userID, domainID string) error {
	query := `DELETE FROM domains WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, domainID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrDomainNotFound
	}

	return nil
}
