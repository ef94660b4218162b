package domain

import (
	"time"
)

type User struct {
	ID             int
	Email          string `validate:"required,email,max=255"`
	Username       string `validate:"required,min=2,max=100"`
	HashedPassword string `validate:"required"`
	CreatedAt      time.Time
}

func (u *User) Owns(t *Todo) bool {
	return t.UserID == u.ID
}
