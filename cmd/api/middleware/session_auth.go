package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-api/cmd/api/auth"
	"portfolio-api/cmd/api/dto"
	"portfolio-api/internal/logger"
)

// Context keys set for authenticated admin requests.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
)

// SessionAuth rejects requests that do not carry a valid, unexpired session
// before any storage call is made. The response deliberately carries no
// detail beyond "unauthorized".
func SessionAuth(cookies *auth.CookieManager, sessions auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := cookies.SessionIDFromRequest(c)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		sess, err := sessions.Get(c.Request.Context(), sid)
		if err != nil {
			logger.Log.Errorf("session lookup failed: %v", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.ErrorResponseDTO{Error: "service unavailable"})
			return
		}
		if sess == nil {
			abortUnauthorized(c)
			return
		}

		c.Set(CtxUserID, sess.UserID)
		c.Set(CtxUsername, sess.Username)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponseDTO{Error: "unauthorized"})
}
