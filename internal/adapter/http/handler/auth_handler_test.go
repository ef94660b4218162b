package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/adapter/http/handler"
	"todoapi/internal/core/model/response"
	"todoapi/internal/core/service"
	"todoapi/pkg/api"
	"todoapi/pkg/telemetry"
	"todoapi/pkg/test"
	"todoapi/pkg/token"
)

type AuthHandlerSuite struct {
	suite.Suite
	Router *gin.Engine
}

func (s *AuthHandlerSuite) SetupTest() {
	db := test.InitTestDB()

	users := repository.NewUserRepository(db)
	todos := repository.NewTodoRepository(db)

	tokens := token.NewService("test-secret", 30*time.Minute)
	authSvc := service.NewAuthService(users, tokens)
	todoSvc := service.NewTodoService(todos)

	metrics := telemetry.NewAppMetrics(prometheus.NewRegistry())

	s.Router = api.SetupRouterForTests(api.Handlers{
		Auth: handler.NewAuthHandler(authSvc, metrics),
		Todo: handler.NewTodoHandler(todoSvc, metrics),
	}, authSvc)
}

func TestAuthHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) request(method, path, body, bearer string) *httptest.ResponseRecorder {
	var reader io.Reader

	if body != "" {
		reader = strings.NewReader(body)
	}

	req, _ := http.NewRequest(method, path, reader)

	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	return rr
}

func (s *AuthHandlerSuite) TestRegisterSuccess() {
	rr := s.request("POST", "/api/auth/register",
		`{"email": "eu@test.com", "username": "eu", "password": "12345678"}`, "")

	Expect(rr.Code).To(Equal(http.StatusCreated))

	body, _ := io.ReadAll(rr.Body)

	data := gin.H{}
	json.Unmarshal(body, &data)

	profile := data["data"].(map[string]any)

	Expect(profile["email"]).To(Equal("eu@test.com"))
	Expect(profile["username"]).To(Equal("eu"))

	// the hash never leaves the server
	Expect(string(body)).ToNot(ContainSubstring("hashed_password"))
	Expect(string(body)).ToNot(ContainSubstring("12345678"))
}

func (s *AuthHandlerSuite) TestRegisterDuplicateEmailConflict() {
	first := s.request("POST", "/api/auth/register",
		`{"email": "eu@test.com", "username": "eu", "password": "12345678"}`, "")
	Expect(first.Code).To(Equal(http.StatusCreated))

	second := s.request("POST", "/api/auth/register",
		`{"email": "eu@test.com", "username": "other", "password": "12345678"}`, "")

	Expect(second.Code).To(Equal(http.StatusConflict))

	body, _ := io.ReadAll(second.Body)
	data := response.ErrorResponse{}
	json.Unmarshal(body, &data)

	Expect(data.Error.Code).To(Equal("CONFLICT"))
}

func (s *AuthHandlerSuite) TestRegisterDuplicateUsernameConflict() {
	first := s.request("POST", "/api/auth/register",
		`{"email": "eu@test.com", "username": "eu", "password": "12345678"}`, "")
	Expect(first.Code).To(Equal(http.StatusCreated))

	second := s.request("POST", "/api/auth/register",
		`{"email": "other@test.com", "username": "eu", "password": "12345678"}`, "")

	Expect(second.Code).To(Equal(http.StatusConflict))
}

func (s *AuthHandlerSuite) TestRegisterValidationError() {
	rr := s.request("POST", "/api/auth/register",
		`{"email": "invalid-email", "username": "eu", "password": "123"}`, "")

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	body, _ := io.ReadAll(rr.Body)
	data := response.ErrorResponse{}
	json.Unmarshal(body, &data)

	Expect(data.Error.Code).To(Equal("VALIDATION_ERROR"))
	Expect(len(data.Error.Errors)).To(BeNumerically(">", 0))
}

func (s *AuthHandlerSuite) TestLoginSuccess() {
	s.request("POST", "/api/auth/register",
		`{"email": "eu@test.com", "username": "eu", "password": "12345678"}`, "")

	rr := s.request("POST", "/api/auth/login",
		`{"email": "eu@test.com", "password": "12345678"}`, "")

	Expect(rr.Code).To(Equal(http.StatusOK))

	body, _ := io.ReadAll(rr.Body)
	data := response.TokenResponse{}
	json.Unmarshal(body, &data)

	Expect(data.AccessToken).ToNot(BeEmpty())
	Expect(data.TokenType).To(Equal("bearer"))
}

func (s *AuthHandlerSuite) TestLoginFailuresAreIndistinguishable() {
	s.request("POST", "/api/auth/register",
		`{"email": "eu@test.com", "username": "eu", "password": "12345678"}`, "")

	wrongPassword := s.request("POST", "/api/auth/login",
		`{"email": "eu@test.com", "password": "wrong-password"}`, "")
	unknownEmail := s.request("POST", "/api/auth/login",
		`{"email": "nobody@test.com", "password": "12345678"}`, "")

	Expect(wrongPassword.Code).To(Equal(http.StatusUnauthorized))
	Expect(unknownEmail.Code).To(Equal(http.StatusUnauthorized))

	// identical external shape for both failure modes
	wrongBody, _ := io.ReadAll(wrongPassword.Body)
	unknownBody, _ := io.ReadAll(unknownEmail.Body)
	Expect(string(wrongBody)).To(Equal(string(unknownBody)))
}

func (s *AuthHandlerSuite) TestMe() {
	s.request("POST", "/api/auth/register",
		`{"email": "eu@test.com", "username": "eu", "password": "12345678"}`, "")

	login := s.request("POST", "/api/auth/login",
		`{"email": "eu@test.com", "password": "12345678"}`, "")

	tokenData := response.TokenResponse{}
	body, _ := io.ReadAll(login.Body)
	json.Unmarshal(body, &tokenData)

	rr := s.request("GET", "/api/auth/me", "", tokenData.AccessToken)

	Expect(rr.Code).To(Equal(http.StatusOK))

	meBody, _ := io.ReadAll(rr.Body)
	profile := response.UserResponse{}
	json.Unmarshal(meBody, &profile)

	Expect(profile.Email).To(Equal("eu@test.com"))
	Expect(profile.Username).To(Equal("eu"))
}

func (s *AuthHandlerSuite) TestMeWithoutTokenChallengesBearer() {
	rr := s.request("GET", "/api/auth/me", "", "")

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
	Expect(rr.Header().Get("WWW-Authenticate")).To(Equal("Bearer"))
}

func (s *AuthHandlerSuite) TestMeWithGarbageToken() {
	rr := s.request("GET", "/api/auth/me", "", "not-a-token")

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
	Expect(rr.Header().Get("WWW-Authenticate")).To(Equal("Bearer"))
}
