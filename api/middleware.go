package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chxlky/trello-gchat-notify/internal/auth"
	"github.com/chxlky/trello-gchat-notify/internal/models"
)

const userKey = "user"

// Authenticate resolves the bearer token to a user. The account is reloaded
// on every request so role and access changes apply immediately.
func Authenticate(tokens *auth.TokenIssuer, users UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			abort(c, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			abort(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		user, err := users.FindUser(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				abort(c, http.StatusUnauthorized, "Invalid token")
				return
			}
			zap.L().Error("Failed to load user for token", zap.String("userID", claims.UserID), zap.Error(err))
			abort(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentUser(c).IsAdmin() {
			abort(c, http.StatusForbidden, "Access denied. Admin privileges required.")
			return
		}
		c.Next()
	}
}

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Cross-Origin-Resource-Policy", "same-origin")
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}
