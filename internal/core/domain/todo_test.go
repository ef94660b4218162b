package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTodoApplyPartialPatch(t *testing.T) {
	todo := Todo{
		Title:       "Original",
		Description: "untouched",
		Completed:   false,
		UpdatedAt:   time.Now().UTC().Add(-time.Hour),
	}

	completed := true
	before := todo.UpdatedAt

	todo.Apply(TodoPatch{Completed: &completed})

	assert.True(t, todo.Completed)
	assert.Equal(t, "Original", todo.Title)
	assert.Equal(t, "untouched", todo.Description)
	assert.True(t, todo.UpdatedAt.After(before))
}

func TestTodoApplyAllFields(t *testing.T) {
	todo := Todo{Title: "Before", Description: "before"}

	title := "After"
	description := "after"
	completed := true

	todo.Apply(TodoPatch{
		Title:       &title,
		Description: &description,
		Completed:   &completed,
	})

	assert.Equal(t, "After", todo.Title)
	assert.Equal(t, "after", todo.Description)
	assert.True(t, todo.Completed)
}

func TestTodoPatchIsEmpty(t *testing.T) {
	empty := TodoPatch{}
	assert.True(t, empty.IsEmpty())

	title := "x"
	assert.False(t, (&TodoPatch{Title: &title}).IsEmpty())
}

func TestUserOwns(t *testing.T) {
	alice := User{ID: 1}
	bob := User{ID: 2}
	todo := Todo{ID: 10, UserID: 1}

	assert.True(t, alice.Owns(&todo))
	assert.False(t, bob.Owns(&todo))
}
