package service

import (
	"context"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

// DefaultListLimit applies when the caller omits limit. The limit is
// not capped internally.
const DefaultListLimit = 100

type TodoService struct {
	todos port.TodoRepository
}

func NewTodoService(todos port.TodoRepository) *TodoService {
	return &TodoService{todos: todos}
}

// Create always derives the owner from the authenticated user; a
// caller-supplied owner is never consulted.
func (ts *TodoService) Create(ctx context.Context, owner domain.User, title, description string) (domain.Todo, error) {
	todo := domain.Todo{
		Title:       title,
		Description: description,
		Completed:   false,
		UserID:      owner.ID,
	}

	return ts.todos.Create(ctx, todo)
}

func (ts *TodoService) List(ctx context.Context, owner domain.User, skip, limit int) ([]domain.Todo, error) {
	if skip < 0 {
		skip = 0
	}

	if limit <= 0 {
		limit = DefaultListLimit
	}

	return ts.todos.GetAllByOwner(ctx, owner.ID, skip, limit)
}

func (ts *TodoService) Get(ctx context.Context, owner domain.User, id int) (domain.Todo, error) {
	return ts.todos.GetByIDAndOwner(ctx, id, owner.ID)
}

func (ts *TodoService) Update(ctx context.Context, owner domain.User, id int, patch domain.TodoPatch) (domain.Todo, error) {
	todo, err := ts.todos.GetByIDAndOwner(ctx, id, owner.ID)

	if err != nil {
		return domain.Todo{}, err
	}

	todo.Apply(patch)

	return ts.todos.Update(ctx, todo)
}

func (ts *TodoService) Delete(ctx context.Context, owner domain.User, id int) error {
	return ts.todos.DeleteByIDAndOwner(ctx, id, owner.ID)
}
