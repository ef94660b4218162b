package helper

import (
	"net/http"

	"todoapi/internal/adapter/http/validation"
	"todoapi/internal/core/model/response"

	"github.com/gin-gonic/gin"
)

func SendSuccess(c *gin.Context, statusCode int, data any, message ...string) {
	resp := response.SuccessResponse{
		Data: data,
	}

	if len(message) > 0 && message[0] != "" {
		resp.Message = message[0]
	}

	c.JSON(statusCode, resp)
}

func SendError(c *gin.Context, statusCode int, code string, errors []response.ValidationError, details ...any) {
	errorResponse := response.ErrorResponse{
		Error: response.ResponseError{
			Code:   code,
			Errors: errors,
		},
	}

	if len(details) > 0 {
		errorResponse.Error.Details = details[0]
	}

	c.JSON(statusCode, errorResponse)
}

func SendValidationError(c *gin.Context, err error) {
	validationErrors := validation.FormatValidationErrors(err)
	SendError(c, http.StatusBadRequest, "VALIDATION_ERROR", validationErrors)
}

func SendBadRequestError(c *gin.Context, field string, message string) {
	SendError(c, http.StatusBadRequest, "BAD_REQUEST", fieldErrors(field, message))
}

// SendUnauthorizedError advertises the bearer scheme as required for
// 401 responses on protected routes.
func SendUnauthorizedError(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", fieldErrors("auth", message))
}

func SendConflictError(c *gin.Context, field string, message string) {
	SendError(c, http.StatusConflict, "CONFLICT", fieldErrors(field, message))
}

func SendNotFoundError(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, "NOT_FOUND", fieldErrors("resource", message))
}

func SendInternalError(c *gin.Context, message string, details ...any) {
	SendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", fieldErrors("server", message), details...)
}

func fieldErrors(field, message string) []response.ValidationError {
	return []response.ValidationError{
		{
			Field:   field,
			Message: message,
		},
	}
}
