package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"todoapi/internal/adapter/database/sqlite"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

type UserRepository struct {
	db *sqlite.DB
}

func NewUserRepository(db *sqlite.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query := ur.db.QueryBuilder.Insert("users").
		Columns("email", "username", "hashed_password", "created_at").
		Values(user.Email, user.Username, user.HashedPassword, user.CreatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	result, err := ur.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error creating user", "error", err)
		return domain.User{}, mapUniqueViolation(err)
	}

	id, err := result.LastInsertId()

	if err != nil {
		return domain.User{}, err
	}

	user.ID = int(id)

	return user, nil
}

func (ur *UserRepository) GetByID(ctx context.Context, id int) (domain.User, error) {
	return ur.getBy(ctx, sq.Eq{"id": id})
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return ur.getBy(ctx, sq.Eq{"email": email})
}

func (ur *UserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return ur.getBy(ctx, sq.Eq{"username": username})
}

func (ur *UserRepository) getBy(ctx context.Context, pred sq.Eq) (domain.User, error) {
	query := ur.db.QueryBuilder.Select("id", "email", "username", "hashed_password", "created_at").
		From("users").
		Where(pred).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var user domain.User

	row := ur.db.QueryRowContext(ctx, stmt, args...)
	err = row.Scan(&user.ID, &user.Email, &user.Username, &user.HashedPassword, &user.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}

	if err != nil {
		slog.Error("Error getting user", "error", err)
		return domain.User{}, err
	}

	return user, nil
}

// DeleteByID removes the user row; owned todos go with it through the
// ON DELETE CASCADE constraint.
func (ur *UserRepository) DeleteByID(ctx context.Context, id int) error {
	query := ur.db.QueryBuilder.Delete("users").
		Where(sq.Eq{"id": id})

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	result, err := ur.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error deleting user", "error", err)
		return err
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// mapUniqueViolation turns a sqlite UNIQUE constraint failure into the
// matching domain conflict, covering the insert race the registration
// pre-checks cannot.
func mapUniqueViolation(err error) error {
	msg := err.Error()

	switch {
	case strings.Contains(msg, "users.email"):
		return domain.ErrEmailTaken
	case strings.Contains(msg, "users.username"):
		return domain.ErrUsernameTaken
	default:
		return err
	}
}
