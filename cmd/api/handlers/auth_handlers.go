package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-api/cmd/api/auth"
	"portfolio-api/cmd/api/dto"
	"portfolio-api/cmd/api/middleware"
	"portfolio-api/internal/logger"
	"portfolio-api/storage"
)

// LoginHandler godoc
// @Summary      Admin login
// @Description  Checks the credential pair and issues a session cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.IdentityDTO
// @Failure      401   {object}  dto.ErrorResponseDTO
// @Router       /auth/login [post]
func LoginHandler(store storage.Storage, sessions auth.SessionStore, cookies *auth.CookieManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "username and password are required"})
			return
		}

		user, err := store.GetUserByUsername(c.Request.Context(), req.Username)
		if err != nil {
			writeStorageError(c, err)
			return
		}
		if user == nil || !auth.CheckPassword(user.Password, req.Password) {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponseDTO{Error: "invalid credentials"})
			return
		}

		sess, err := sessions.Create(c.Request.Context(), user.ID.Hex(), user.Username)
		if err != nil {
			logger.Log.Errorf("session create failed: %v", err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "internal error"})
			return
		}
		cookies.SetSessionCookie(c, sess.ID)

		c.JSON(http.StatusOK, dto.IdentityDTO{ID: user.ID.Hex(), Username: user.Username})
	}
}

// LogoutHandler godoc
// @Summary      Admin logout
// @Description  Destroys the current session and clears the cookie. Always
// @Description  succeeds, even without a valid session.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Router       /auth/logout [post]
func LogoutHandler(sessions auth.SessionStore, cookies *auth.CookieManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sid, err := cookies.SessionIDFromRequest(c); err == nil {
			if err := sessions.Delete(c.Request.Context(), sid); err != nil {
				logger.Log.Warnf("session delete failed: %v", err)
			}
		}
		cookies.ClearSessionCookie(c)
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "logged out"})
	}
}

// MeHandler godoc
// @Summary      Current identity
// @Description  Returns the identity attached to the session cookie.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.IdentityDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /auth/me [get]
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.IdentityDTO{
			ID:       c.GetString(middleware.CtxUserID),
			Username: c.GetString(middleware.CtxUsername),
		})
	}
}
