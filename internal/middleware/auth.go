package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"appsuite-be/internal/jwt"
	"appsuite-be/internal/models"
)

// SessionCookie carries the session token for browser clients.
const SessionCookie = "session"

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextClaims   = "claims"
)

// TokenAuthenticator validates a session token, including revocation.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*jwt.UserClaims, error)
}

// tokenFromRequest prefers the Authorization header over the cookie.
func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

func setIdentity(c *gin.Context, claims *jwt.UserClaims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUsername, claims.Username)
	c.Set(ContextClaims, claims)
}

// AuthMiddleware rejects requests without a valid, unrevoked session token.
func AuthMiddleware(auth TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), token)
		if errors.Is(err, jwt.ErrInvalidToken) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid or expired session"})
			return
		}
		if err != nil {
			c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth sets the identity when a valid token is present and never rejects.
func OptionalAuth(auth TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFromRequest(c); token != "" {
			if claims, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// UserID returns the authenticated user's id, if any.
func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(ContextUserID)
	return id, id != ""
}

func Claims(c *gin.Context) *jwt.UserClaims {
	if v, ok := c.Get(ContextClaims); ok {
		if claims, ok := v.(*jwt.UserClaims); ok {
			return claims
		}
	}
	return nil
}
