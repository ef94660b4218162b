package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"todoapi/internal/adapter/database/postgres"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	"todoapi/pkg/telemetry"
)

type TodoRepository struct {
	db *postgres.DB
}

func NewTodoRepository(db *postgres.DB) port.TodoRepository {
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
		Values(todo.Title, todo.Description, todo.Completed, todo.UserID, todo.CreatedAt, todo.UpdatedAt).
		Suffix("RETURNING id")

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	err = tr.db.QueryRow(ctx, stmt, args...).Scan(&todo.ID)

	if err != nil {
		slog.Error("Error creating todo", "error", err)
		return domain.Todo{}, err
	}

	return todo, nil
}

func (tr *TodoRepository) GetAllByOwner(ctx context.Context, ownerID, skip, limit int) ([]domain.Todo, error) {
	ctx, span := telemetry.CreateChildSpan(ctx, "db.todos.GetAllByOwner", []attribute.KeyValue{
		attribute.String("db.table", "todos"),
		attribute.String("db.operation", "SELECT"),
		attribute.Int("user.id", ownerID),
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

	rows, err := tr.db.Query(ctx, stmt, args...)

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

	err = tr.db.QueryRow(ctx, stmt, args...).
		Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Completed, &todo.UserID, &todo.CreatedAt, &todo.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
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

	tag, err := tr.db.Exec(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error updating todo", "error", err)
		return domain.Todo{}, err
	}

	if tag.RowsAffected() == 0 {
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

	tag, err := tr.db.Exec(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error deleting todo", "error", err)
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}

	return nil
}
