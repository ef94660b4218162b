package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/port"
	"todoapi/internal/core/util"
)

// resolverCacheTTL bounds how long a resolved identity is reused.
// User records are immutable after registration, so a cached entry can
// never go stale within its window.
const resolverCacheTTL = 30 * time.Second

type AuthService struct {
	users    port.UserRepository
	tokens   port.TokenService
	resolved *cache.Cache
}

func NewAuthService(users port.UserRepository, tokens port.TokenService) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		resolved: cache.New(resolverCacheTTL, 2*resolverCacheTTL),
	}
}

// Register creates a user after checking both uniqueness constraints,
// email first. The password never leaves this method unhashed.
func (as *AuthService) Register(ctx context.Context, req *request.RegisterRequest) (*domain.User, error) {
	_, err := as.users.GetByEmail(ctx, req.Email)

	if err == nil {
		return nil, domain.ErrEmailTaken
	}

	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	_, err = as.users.GetByUsername(ctx, req.Username)

	if err == nil {
		return nil, domain.ErrUsernameTaken
	}

	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := util.HashPassword(req.Password)

	if err != nil {
		return nil, err
	}

	user := domain.User{
		Email:          req.Email,
		Username:       req.Username,
		HashedPassword: hashed,
		CreatedAt:      time.Now().UTC(),
	}

	saved, err := as.users.Create(ctx, user)

	if err != nil {
		return nil, err
	}

	return &saved, nil
}

// Login answers unknown email and wrong password with the same error
// so accounts cannot be enumerated.
func (as *AuthService) Login(ctx context.Context, req *request.LoginRequest) (string, error) {
	user, err := as.users.GetByEmail(ctx, req.Email)

	if err != nil {
		slog.Error("Auth#Login", "get_by_email", err)
		return "", domain.ErrUnauthenticated
	}

	if err := util.ComparePassword(req.Password, user.HashedPassword); err != nil {
		slog.Error("Auth#Login", "compare_password", err)
		return "", domain.ErrUnauthenticated
	}

	return as.tokens.Issue(user.Email)
}

// CurrentUser verifies the token and resolves its subject against the
// store. A bad token and a missing user signal identically.
func (as *AuthService) CurrentUser(ctx context.Context, token string) (domain.User, error) {
	subject, err := as.tokens.Verify(token)

	if err != nil {
		slog.Info("Auth#CurrentUser", "verify", err)
		return domain.User{}, domain.ErrUnauthenticated
	}

	if cached, found := as.resolved.Get(subject); found {
		return cached.(domain.User), nil
	}

	user, err := as.users.GetByEmail(ctx, subject)

	if err != nil {
		slog.Info("Auth#CurrentUser", "get_by_email", err)
		return domain.User{}, domain.ErrUnauthenticated
	}

	as.resolved.Set(subject, user, cache.DefaultExpiration)

	return user, nil
}
