package service_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/port"
	"todoapi/internal/core/service"
	"todoapi/pkg/test"
	"todoapi/pkg/token"
)

type AuthServiceTestSuite struct {
	suite.Suite
	svc    *service.AuthService
	tokens *token.Service
	users  port.UserRepository
}

func (s *AuthServiceTestSuite) SetupTest() {
	db := test.InitTestDB()

	s.users = repository.NewUserRepository(db)
	s.tokens = token.NewService("test-secret", 30*time.Minute)
	s.svc = service.NewAuthService(s.users, s.tokens)
}

func TestAuthServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) register(email, username, password string) (*domain.User, error) {
	return s.svc.Register(context.Background(), &request.RegisterRequest{
		Email:    email,
		Username: username,
		Password: password,
	})
}

func (s *AuthServiceTestSuite) TestRegisterSuccess() {
	user, err := s.register("test@example.com", "tester", "password123")

	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), user)
	assert.Equal(s.T(), "test@example.com", user.Email)
	assert.Equal(s.T(), "tester", user.Username)
	assert.NotEqual(s.T(), "password123", user.HashedPassword)
	assert.NotZero(s.T(), user.ID)
}

func (s *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	_, err := s.register("test@example.com", "tester", "password123")
	assert.NoError(s.T(), err)

	_, err = s.register("test@example.com", "someone-else", "password123")

	assert.ErrorIs(s.T(), err, domain.ErrEmailTaken)
}

func (s *AuthServiceTestSuite) TestRegisterDuplicateUsername() {
	_, err := s.register("test@example.com", "tester", "password123")
	assert.NoError(s.T(), err)

	_, err = s.register("other@example.com", "tester", "password123")

	assert.ErrorIs(s.T(), err, domain.ErrUsernameTaken)
}

func (s *AuthServiceTestSuite) TestLoginSuccess() {
	_, err := s.register("test@example.com", "tester", "password123")
	assert.NoError(s.T(), err)

	accessToken, err := s.svc.Login(context.Background(), &request.LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	})

	assert.NoError(s.T(), err)
	assert.NotEmpty(s.T(), accessToken)

	subject, err := s.tokens.Verify(accessToken)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "test@example.com", subject)
}

func (s *AuthServiceTestSuite) TestLoginWrongPassword() {
	_, err := s.register("test@example.com", "tester", "password123")
	assert.NoError(s.T(), err)

	_, err = s.svc.Login(context.Background(), &request.LoginRequest{
		Email:    "test@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(s.T(), err, domain.ErrUnauthenticated)
}

func (s *AuthServiceTestSuite) TestLoginUnknownEmailSignalsLikeWrongPassword() {
	_, err := s.svc.Login(context.Background(), &request.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})

	assert.ErrorIs(s.T(), err, domain.ErrUnauthenticated)
}

func (s *AuthServiceTestSuite) TestCurrentUserSuccess() {
	registered, err := s.register("test@example.com", "tester", "password123")
	assert.NoError(s.T(), err)

	accessToken, err := s.tokens.Issue(registered.Email)
	assert.NoError(s.T(), err)

	user, err := s.svc.CurrentUser(context.Background(), accessToken)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), registered.ID, user.ID)
	assert.Equal(s.T(), registered.Email, user.Email)
}

func (s *AuthServiceTestSuite) TestCurrentUserBadToken() {
	_, err := s.svc.CurrentUser(context.Background(), "not-a-token")

	assert.ErrorIs(s.T(), err, domain.ErrUnauthenticated)
}

func (s *AuthServiceTestSuite) TestCurrentUserExpiredToken() {
	registered, err := s.register("test@example.com", "tester", "password123")
	assert.NoError(s.T(), err)

	expired := token.NewService("test-secret", 0)

	accessToken, err := expired.Issue(registered.Email)
	assert.NoError(s.T(), err)

	_, err = s.svc.CurrentUser(context.Background(), accessToken)

	assert.ErrorIs(s.T(), err, domain.ErrUnauthenticated)
}

func (s *AuthServiceTestSuite) TestCurrentUserMissingSubjectSignalsLikeBadToken() {
	// a valid token whose subject no longer resolves must look exactly
	// like a bad token
	accessToken, err := s.tokens.Issue("ghost@example.com")
	assert.NoError(s.T(), err)

	_, err = s.svc.CurrentUser(context.Background(), accessToken)

	Expect(err).To(MatchError(domain.ErrUnauthenticated))
}
