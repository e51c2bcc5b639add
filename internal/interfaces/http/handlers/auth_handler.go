package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"veab-goa.backend/internal/domain/entities"
	domainerrors "veab-goa.backend/internal/domain/errors"
	"veab-goa.backend/internal/interfaces/http/middleware"
	"veab-goa.backend/internal/interfaces/http/response"
	"veab-goa.backend/internal/usecases"
	"veab-goa.backend/pkg/logger"
)

const (
	refreshTokenCookie = "refresh_token"
	sessionIDCookie    = "session_id"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase   *usecases.AuthUsecase
	refreshMaxAge int
	secureCookies bool
}

// NewAuthHandler creates a new auth handler. Refresh and session cookies
// live for refreshTTL.
func NewAuthHandler(authUsecase *usecases.AuthUsecase, refreshTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authUsecase:   authUsecase,
		refreshMaxAge: int(refreshTTL.Seconds()),
		secureCookies: secureCookies,
	}
}

// Login handles admin login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	authResponse, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidCredentials) {
			response.Error(c, domainerrors.Unauthorized("Invalid email or password"))
			return
		}
		response.Error(c, err)
		return
	}

	h.setTokenCookies(c, authResponse.AccessToken, authResponse.RefreshToken, authResponse.ExpiresIn)
	if authResponse.SessionID != "" {
		c.SetCookie(sessionIDCookie, authResponse.SessionID, h.refreshMaxAge, "/", "", h.secureCookies, true)
	}

	response.Success(c, http.StatusOK, authResponse)
}

// RefreshToken handles token refresh
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var refreshToken string

	if c.Request.ContentLength > 0 {
		var input struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&input); err == nil {
			refreshToken = input.RefreshToken
		} else {
			logger.Debug(c.Request.Context(), "Refresh body not usable", zap.Error(err))
		}
	}

	if refreshToken == "" {
		if cookie, err := c.Cookie(refreshTokenCookie); err == nil {
			refreshToken = cookie
		}
	}

	if refreshToken == "" {
		response.Error(c, domainerrors.BadRequest("Refresh token is required"))
		return
	}

	tokenPair, err := h.authUsecase.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		logger.Warn(c.Request.Context(), "Refresh rejected", zap.Error(err))
		response.Error(c, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Invalid or expired refresh token", err))
		return
	}

	h.setTokenCookies(c, tokenPair.AccessToken, tokenPair.RefreshToken, tokenPair.ExpiresIn)

	response.Success(c, http.StatusOK, tokenPair)
}

// Logout drops the session and clears auth cookies
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetHeader(middleware.SessionHeader)
	if sessionID == "" {
		sessionID, _ = c.Cookie(sessionIDCookie)
	}

	if err := h.authUsecase.Logout(c.Request.Context(), sessionID); err != nil {
		logger.Warn(c.Request.Context(), "Failed to drop admin session", zap.Error(err))
	}

	for _, name := range []string{middleware.AccessTokenCookie, refreshTokenCookie, sessionIDCookie} {
		c.SetCookie(name, "", -1, "/", "", h.secureCookies, true)
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// GetMe returns the authenticated admin
// GET /api/v1/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok || email == "" {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	me := h.authUsecase.Me()
	if me.Email != email {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": me})
}

func (h *AuthHandler) setTokenCookies(c *gin.Context, access, refresh string, accessSeconds int64) {
	c.SetCookie(middleware.AccessTokenCookie, access, int(accessSeconds), "/", "", h.secureCookies, true)
	c.SetCookie(refreshTokenCookie, refresh, h.refreshMaxAge, "/", "", h.secureCookies, true)
}
