package model

import (
	"time"
)

const DaysPerWeek = 7

// Goal is a weekly target for one domain: TargetDays out of TotalDays.
type Goal struct {
	ID             string    `db:"id" json:"id"`
	DomainID       string    `db:"domain_id" json:"domainId"`
	TargetDays     int       `db:"target_days" json:"targetDays"`
	TotalDays      int       `db:"total_days" json:"totalDays"`
	MotivationNote string    `db:"motivation_note" json:"motivationNote"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}
