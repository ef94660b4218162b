package port

import (
	"context"

	"todoapi/internal/core/domain"
)

type TodoRepository interface {
	Create(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	// GetAllByOwner pages with offset semantics: skip rows, then take
	// up to limit.
	GetAllByOwner(ctx context.Context, ownerID, skip, limit int) ([]domain.Todo, error)
	// GetByIDAndOwner matches id and owner in a single predicate so a
	// foreign-owned todo is indistinguishable from an absent one.
	GetByIDAndOwner(ctx context.Context, id, ownerID int) (domain.Todo, error)
	Update(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID int) error
}

type TodoService interface {
	Create(ctx context.Context, owner domain.User, title, description string) (domain.Todo, error)
	List(ctx context.Context, owner domain.User, skip, limit int) ([]domain.Todo, error)
	Get(ctx context.Context, owner domain.User, id int) (domain.Todo, error)
	Update(ctx context.Context, owner domain.User, id int, patch domain.TodoPatch) (domain.Todo, error)
	Delete(ctx context.Context, owner domain.User, id int) error
}
