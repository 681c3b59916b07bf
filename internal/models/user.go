package models

import (
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	ID        int64  `bun:"id,pk,autoincrement" json:"id"`
	Email     string `bun:"email,unique,notnull" json:"email"`
	Password  string `bun:"password,notnull" json:"-"`
	Name      string `bun:"name" json:"name"`
	CreatedAt string `bun:"created_at,notnull" json:"createdAt"`
}

// UserUpdate carries the mutable fields of a user. Nil means "leave unchanged";
// fields outside this set are dropped during JSON decoding.
type UserUpdate struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// Empty reports whether the update carries no fields at all.
func (u UserUpdate) Empty() bool {
	return u.Email == nil && u.Name == nil && u.Password == nil
}
