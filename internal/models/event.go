package models

import (
	"github.com/uptrace/bun"
)

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID          int64  `bun:"id,pk,autoincrement" json:"id"`
	Title       string `bun:"title,notnull" json:"title"`
	Description string `bun:"description,notnull" json:"description"`
	Date        string `bun:"date,notnull" json:"date"`
	Location    string `bun:"location" json:"location"`
	CreatedAt   string `bun:"created_at,notnull" json:"createdAt"`
}

// EventUpdate carries the mutable fields of an event. Nil means "leave unchanged".
type EventUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Location    *string `json:"location"`
}

func (u EventUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Date == nil && u.Location == nil
}
