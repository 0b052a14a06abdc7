package model

import (
	"time"
)

// Domain colors accepted by the API. The first entry is the default.
var DomainColors = []string{
	"lime", "blue", "purple", "emerald", "orange",
	"red", "pink", "cyan", "amber", "indigo",
}

type Domain struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Name      string    `db:"name" json:"name"`
	Color     string    `db:"color" json:"color"`
	Icon      string    `db:"icon" json:"icon"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// DomainWithStats is a domain row joined with its completion count and
// cached current streak.
type DomainWithStats struct {
	Domain
	TotalCompletions int `db:"total_completions" json:"totalCompletions"`
	CurrentStreak    int `db:"current_streak" json:"currentStreak"`
}
