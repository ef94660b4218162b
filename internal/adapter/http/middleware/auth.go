package middleware

import (
	"strings"

	"todoapi/internal/adapter/http/helper"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"

	"github.com/gin-gonic/gin"
)

// CurrentUserKey is where the resolved identity lives in the gin
// context for the rest of the request.
const CurrentUserKey = "x-current-user"

// BearerAuth resolves the Authorization header to a user once per
// request. Every failure mode is the same 401.
func BearerAuth(auth port.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			helper.SendUnauthorizedError(c, "could not validate credentials")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")

		user, err := auth.CurrentUser(c.Request.Context(), token)

		if err != nil {
			helper.SendUnauthorizedError(c, "could not validate credentials")
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUser reads the identity stored by BearerAuth.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	value, exists := c.Get(CurrentUserKey)

	if !exists {
		return domain.User{}, false
	}

	user, ok := value.(domain.User)

	return user, ok
}
