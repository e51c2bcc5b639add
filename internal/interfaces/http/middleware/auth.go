package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"veab-goa.backend/internal/domain/entities"
	"veab-goa.backend/pkg/jwt"
	"veab-goa.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// SessionHeader carries a server side session id
	SessionHeader = "X-Session-ID"
	// AccessTokenCookie is set by the login endpoint
	AccessTokenCookie = "token"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"
)

// SessionTokens looks up the access token stored in a session.
type SessionTokens interface {
	SessionAccessToken(ctx context.Context, sessionID string) (string, error)
}

// AuthMiddleware accepts a session id header, a bearer token or the access
// token cookie, in that order. sessions may be nil.
func AuthMiddleware(jwtService *jwt.JWTService, sessions SessionTokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""

		if sessionID := c.GetHeader(SessionHeader); sessionID != "" && sessions != nil {
			if token, err := sessions.SessionAccessToken(c.Request.Context(), sessionID); err == nil {
				tokenString = token
			}
		}
		if tokenString == "" {
			authHeader := c.GetHeader(AuthorizationHeader)
			if authHeader != "" && !strings.HasPrefix(authHeader, BearerPrefix) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Invalid authorization format. Use: Bearer <token>",
				})
				return
			}
			tokenString = strings.TrimPrefix(authHeader, BearerPrefix)
		}
		if tokenString == "" {
			if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			logger.Warn(c.Request.Context(), "Auth failed: no credentials", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			return
		}

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			logger.Warn(c.Request.Context(), "Auth failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrExpiredToken) {
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)
		ctx := context.WithValue(c.Request.Context(), logger.AdminKey, claims.Email)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetUserEmail gets the user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	s, ok := email.(string)
	return s, ok
}

// GetUserRole gets the user role from context
func GetUserRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	s, ok := role.(string)
	return s, ok
}

// RequireRole creates a middleware that requires a specific role
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := GetUserRole(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "User role not found",
			})
			return
		}

		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Insufficient permissions",
		})
	}
}

// RequireAdmin creates a middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(entities.AdminRole)
}
