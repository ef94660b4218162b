package domain

import (
	"time"
)

type Todo struct {
	ID          int
	Title       string `validate:"required,min=1,max=255"`
	Description string `validate:"max=1000"`
	Completed   bool
	UserID      int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TodoPatch carries a partial update. Nil fields are left untouched.
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

func (p *TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}

func (t *Todo) Apply(patch TodoPatch) {
	if patch.Title != nil {
		t.Title = *patch.Title
	}

	if patch.Description != nil {
		t.Description = *patch.Description
	}

	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}

	t.UpdatedAt = time.Now().UTC()
}
