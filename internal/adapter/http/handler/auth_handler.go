package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"todoapi/internal/adapter/http/helper"
	"todoapi/internal/adapter/http/middleware"
	"todoapi/internal/adapter/http/validation"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/model/response"
	"todoapi/internal/core/port"
	"todoapi/internal/core/util"
	"todoapi/pkg/telemetry"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc     port.AuthService
	metrics *telemetry.AppMetrics
}

func NewAuthHandler(svc port.AuthService, metrics *telemetry.AppMetrics) *AuthHandler {
	return &AuthHandler{
		svc:     svc,
		metrics: metrics,
	}
}

func (a *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.BindParams[request.RegisterRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	user, err := a.svc.Register(ctx, &params)

	if err != nil {
		a.metrics.RecordAuthOperation("register", "error")

		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			helper.SendConflictError(c, "email", err.Error())
		case errors.Is(err, domain.ErrUsernameTaken):
			helper.SendConflictError(c, "username", err.Error())
		default:
			slog.Error("Auth#Register", "error", err)
			helper.SendInternalError(c, "Error registering user")
		}

		return
	}

	a.metrics.RecordAuthOperation("register", "success")

	helper.SendSuccess(c, http.StatusCreated, response.NewUserResponse(user))
}

func (a *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.BindParams[request.LoginRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	accessToken, err := a.svc.Login(ctx, &params)

	if err != nil {
		a.metrics.RecordAuthOperation("login", "error")
		helper.SendUnauthorizedError(c, "Invalid email or password")
		return
	}

	a.metrics.RecordAuthOperation("login", "success")

	c.JSON(http.StatusOK, response.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

func (a *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)

	if !ok {
		helper.SendUnauthorizedError(c, "could not validate credentials")
		return
	}

	c.JSON(http.StatusOK, response.NewUserResponse(&user))
}
