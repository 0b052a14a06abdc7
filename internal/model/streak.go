package model

import (
	"time"
)

// Streak caches the last computed weekly streak for a domain.
type Streak struct {
	ID            string    `db:"id" json:"id"`
	DomainID      string    `db:"domain_id" json:"domainId"`
	CurrentStreak int       `db:"current_streak" json:"currentStreak"`
	LongestStreak int       `db:"longest_streak" json:"longestStreak"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}
