package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"todoapi/internal/adapter/http/helper"
	"todoapi/internal/adapter/http/middleware"
	"todoapi/internal/adapter/http/validation"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/model/response"
	"todoapi/internal/core/port"
	"todoapi/pkg/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type TodoHandler struct {
	svc     port.TodoService
	metrics *telemetry.AppMetrics
}

func NewTodoHandler(svc port.TodoService, metrics *telemetry.AppMetrics) *TodoHandler {
	return &TodoHandler{
		svc:     svc,
		metrics: metrics,
	}
}

func (t *TodoHandler) List(c *gin.Context) {
	ctx, span := telemetry.CreateChildSpan(c.Request.Context(), "handler.todo.List", []attribute.KeyValue{
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	user, ok := middleware.CurrentUser(c)

	if !ok {
		helper.SendUnauthorizedError(c, "could not validate credentials")
		return
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	span.SetAttributes(
		attribute.Int("user.id", user.ID),
		attribute.Int("todo.skip", skip),
		attribute.Int("todo.limit", limit),
	)

	todos, err := t.svc.List(ctx, user, skip, limit)

	if err != nil {
		telemetry.AddSpanError(span, err)
		slog.Error("Error listing todos", "error", err)
		t.metrics.RecordTodoOperation("list", "error")

		helper.SendInternalError(c, "Error getting todos")
		return
	}

	t.metrics.RecordTodoOperation("list", "success")

	data := make([]response.TodoResponse, 0, len(todos))

	for i := range todos {
		data = append(data, response.NewTodoResponse(&todos[i]))
	}

	c.JSON(http.StatusOK, data)
}

func (t *TodoHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := middleware.CurrentUser(c)

	if !ok {
		helper.SendUnauthorizedError(c, "could not validate credentials")
		return
	}

	var params request.TodoCreateRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	todo, err := t.svc.Create(ctx, user, params.Title, params.Description)

	if err != nil {
		slog.Error("Error creating todo", "error", err)
		t.metrics.RecordTodoOperation("create", "error")

		helper.SendInternalError(c, "Error creating todo")
		return
	}

	t.metrics.RecordTodoOperation("create", "success")

	c.JSON(http.StatusCreated, response.NewTodoResponse(&todo))
}

func (t *TodoHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := middleware.CurrentUser(c)

	if !ok {
		helper.SendUnauthorizedError(c, "could not validate credentials")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))

	if err != nil {
		helper.SendBadRequestError(c, "id", "Invalid todo id")
		return
	}

	todo, err := t.svc.Get(ctx, user, id)

	if err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			helper.SendNotFoundError(c, "Todo not found")
			return
		}

		slog.Error("Error getting todo", "error", err)
		helper.SendInternalError(c, "Error getting todo")
		return
	}

	c.JSON(http.StatusOK, response.NewTodoResponse(&todo))
}

func (t *TodoHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := middleware.CurrentUser(c)

	if !ok {
		helper.SendUnauthorizedError(c, "could not validate credentials")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))

	if err != nil {
		helper.SendBadRequestError(c, "id", "Invalid todo id")
		return
	}

	var params request.TodoUpdateRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	// omitempty skips pointer-to-empty-string, so an explicit blank
	// title has to be rejected here
	if params.Title != nil && *params.Title == "" {
		helper.SendError(c, http.StatusBadRequest, "VALIDATION_ERROR", []response.ValidationError{
			{Field: "title", Message: "title must not be empty"},
		})
		return
	}

	patch := domain.TodoPatch{
		Title:       params.Title,
		Description: params.Description,
		Completed:   params.Completed,
	}

	todo, err := t.svc.Update(ctx, user, id, patch)

	if err != nil {
		t.metrics.RecordTodoOperation("update", "error")

		if errors.Is(err, domain.ErrTodoNotFound) {
			helper.SendNotFoundError(c, "Todo not found")
			return
		}

		slog.Error("Error updating todo", "error", err)
		helper.SendInternalError(c, "Error updating todo")
		return
	}

	t.metrics.RecordTodoOperation("update", "success")

	c.JSON(http.StatusOK, response.NewTodoResponse(&todo))
}

func (t *TodoHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := middleware.CurrentUser(c)

	if !ok {
		helper.SendUnauthorizedError(c, "could not validate credentials")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))

	if err != nil {
		helper.SendBadRequestError(c, "id", "Invalid todo id")
		return
	}

	if err := t.svc.Delete(ctx, user, id); err != nil {
		t.metrics.RecordTodoOperation("delete", "error")

		if errors.Is(err, domain.ErrTodoNotFound) {
			helper.SendNotFoundError(c, "Todo not found")
			return
		}

		slog.Error("Error deleting todo", "error", err)
		helper.SendInternalError(c, "Error deleting todo")
		return
	}

	t.metrics.RecordTodoOperation("delete", "success")

	c.Status(http.StatusNoContent)
}
