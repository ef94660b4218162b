package repository

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"todoapi/internal/adapter/database/postgres"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

const uniqueViolation = "23505"

type UserRepository struct {
	db *postgres.DB
}

func NewUserRepository(db *postgres.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query := ur.db.QueryBuilder.Insert("users").
		Columns("email", "username", "hashed_password", "created_at").
		Values(user.Email, user.Username, user.HashedPassword, user.CreatedAt).
		Suffix("RETURNING id")

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	err = ur.db.QueryRow(ctx, stmt, args...).Scan(&user.ID)

	if err != nil {
		slog.Error("Error creating user", "error", err)
		return domain.User{}, mapUniqueViolation(err)
	}

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

	err = ur.db.QueryRow(ctx, stmt, args...).
		Scan(&user.ID, &user.Email, &user.Username, &user.HashedPassword, &user.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}

	if err != nil {
		slog.Error("Error getting user", "error", err)
		return domain.User{}, err
	}

	return user, nil
}

func (ur *UserRepository) DeleteByID(ctx context.Context, id int) error {
	query := ur.db.QueryBuilder.Delete("users").
		Where(sq.Eq{"id": id})

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	tag, err := ur.db.Exec(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error deleting user", "error", err)
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError

	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}

	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return domain.ErrEmailTaken
	case strings.Contains(pgErr.ConstraintName, "username"):
		return domain.ErrUsernameTaken
	default:
		return err
	}
}
