package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.opentelemetry.io/otel/attribute"

	"todoapi/internal/adapter/database/sqlite"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	"todoapi/pkg/telemetry"
)

type TodoRepository struct {
	db *sqlite.DB
}

func NewTodoRepository(db *sqlite.DB) port.TodoRepository {
	return &TodoRepository{db: db}
}

func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	now := time.Now().UTC()

	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = now
	}

	if todo.UpdatedAt.IsZero() {
		todo.UpdatedAt = now
	}

	query := tr.db.QueryBuilder.Insert("todos").
		Columns("title", "description", "completed", "user_id", "created_at", "updated_at").
		Values(todo.Title, todo.Description, todo.Completed, todo.UserID, todo.CreatedAt, todo.UpdatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error creating todo", "error", err)
		return domain.Todo{}, err
	}

	id, err := result.LastInsertId()

	if err != nil {
		return domain.Todo{}, err
	}

	todo.ID = int(id)

	return todo, nil
}

func (tr *TodoRepository) GetAllByOwner(ctx context.Context, ownerID, skip, limit int) ([]domain.Todo, error) {
	ctx, span := telemetry.CreateChildSpan(ctx, "db.todos.GetAllByOwner", []attribute.KeyValue{
		attribute.String("db.table", "todos"),
		attribute.String("db.operation", "SELECT"),
		attribute.Int("user.id", ownerID),
		attribute.Int("todo.skip", skip),
		attribute.Int("todo.limit", limit),
	})

	defer span.End()

	query := tr.db.QueryBuilder.Select("id", "title", "description", "completed", "user_id", "created_at", "updated_at").
		From("todos").
		Where(sq.Eq{"user_id": ownerID}).
		OrderBy("id ASC").
		Offset(uint64(skip)).
		Limit(uint64(limit))

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		telemetry.AddSpanError(span, err)
		slog.Error("Error fetching todos", "error", err)

		return nil, err
	}

	defer rows.Close()

	data := []domain.Todo{}

	for rows.Next() {
		var todo domain.Todo

		err = rows.Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Completed, &todo.UserID, &todo.CreatedAt, &todo.UpdatedAt)

		if err != nil {
			return nil, err
		}

		data = append(data, todo)
	}

	span.SetAttributes(attribute.Int("db.rows_returned", len(data)))

	return data, rows.Err()
}

func (tr *TodoRepository) GetByIDAndOwner(ctx context.Context, id, ownerID int) (domain.Todo, error) {
	query := tr.db.QueryBuilder.Select("id", "title", "description", "completed", "user_id", "created_at", "updated_at").
		From("todos").
		Where(sq.Eq{"id": id, "user_id": ownerID}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	var todo domain.Todo

	row := tr.db.QueryRowContext(ctx, stmt, args...)
	err = row.Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Completed, &todo.UserID, &todo.CreatedAt, &todo.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Todo{}, domain.ErrTodoNotFound
	}

	if err != nil {
		slog.Error("Error getting todo", "error", err)
		return domain.Todo{}, err
	}

	return todo, nil
}

func (tr *TodoRepository) Update(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	query := tr.db.QueryBuilder.Update("todos").
		SetMap(map[string]interface{}{
			"title":       todo.Title,
			"description": todo.Description,
			"completed":   todo.Completed,
			"updated_at":  todo.UpdatedAt,
		}).
		Where(sq.Eq{"id": todo.ID, "user_id": todo.UserID})

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error updating todo", "error", err)
		return domain.Todo{}, err
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return domain.Todo{}, err
	}

	if affected == 0 {
		return domain.Todo{}, domain.ErrTodoNotFound
	}

	return todo, nil
}

func (tr *TodoRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID int) error {
	query := tr.db.QueryBuilder.Delete("todos").
		Where(sq.Eq{"id": id, "user_id": ownerID})

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error deleting todo", "error", err)
		return err
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrTodoNotFound
	}

	return nil
}
