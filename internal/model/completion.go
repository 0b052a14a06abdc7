package model

import (
	"time"
)

type Completion struct {
	ID        string    `db:"id" json:"id"`
	DomainID  string    `db:"domain_id" json:"domainId"`
	Date      string    `db:"date" json:"date"` // yyyy-MM-dd
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
