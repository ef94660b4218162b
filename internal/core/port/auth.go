package port

import (
	"context"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req *request.LoginRequest) (string, error)
	// CurrentUser resolves a bearer token to its user. Every failure
	// mode surfaces as domain.ErrUnauthenticated.
	CurrentUser(ctx context.Context, token string) (domain.User, error)
}

type TokenService interface {
	Issue(subject string) (string, error)
	Verify(token string) (string, error)
}
