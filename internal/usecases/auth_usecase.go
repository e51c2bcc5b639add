package usecases

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"veab-goa.backend/internal/domain/entities"
	domainerrors "veab-goa.backend/internal/domain/errors"
	"veab-goa.backend/pkg/crypto"
	"veab-goa.backend/pkg/jwt"
	"veab-goa.backend/pkg/logger"
	"veab-goa.backend/pkg/redis"
)

// SessionStore keeps server side admin sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// AuthUsecase handles authentication of the configured site administrator.
type AuthUsecase struct {
	admin      entities.AdminUser
	jwtService *jwt.JWTService
	sessions   SessionStore
	sessionTTL time.Duration
}

// NewAuthUsecase creates a new auth usecase. sessions may be nil, in which
// case logins only hand out bearer tokens.
func NewAuthUsecase(
	admin entities.AdminUser,
	jwtService *jwt.JWTService,
	sessions SessionStore,
	sessionTTL time.Duration,
) *AuthUsecase {
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))
	if admin.Role == "" {
		admin.Role = entities.AdminRole
	}
	return &AuthUsecase{
		admin:      admin,
		jwtService: jwtService,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// Login authenticates the admin and returns tokens
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	if u.admin.Email == "" || u.admin.PasswordHash == "" {
		logger.Warn(ctx, "Admin login attempted without configured credentials")
		return nil, domainerrors.ErrInvalidCredentials
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email != u.admin.Email || !crypto.CheckPassword(input.Password, u.admin.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(u.admin.Email, u.admin.Role)
	if err != nil {
		return nil, err
	}

	resp := &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
		User:         u.Me(),
	}

	if input.UseSession && u.sessions != nil {
		sessionID, err := crypto.GenerateSessionID()
		if err != nil {
			return nil, err
		}
		err = u.sessions.CreateSession(ctx, sessionID, &redis.SessionData{
			Email:        u.admin.Email,
			AccessToken:  tokenPair.AccessToken,
			RefreshToken: tokenPair.RefreshToken,
		}, u.sessionTTL)
		if err != nil {
			logger.Error(ctx, "Failed to create admin session", zap.Error(err))
			return nil, err
		}
		resp.SessionID = sessionID
	}

	logger.Info(ctx, "Admin logged in", zap.Bool("session", resp.SessionID != ""))
	return resp, nil
}

// RefreshToken generates new tokens from a refresh token
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if u.admin.Email == "" || claims.Email != u.admin.Email {
		return nil, domainerrors.ErrUnauthorized
	}
	return u.jwtService.GenerateTokenPair(u.admin.Email, u.admin.Role)
}

// Logout drops the server side session, if any.
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" || u.sessions == nil {
		return nil
	}
	return u.sessions.DeleteSession(ctx, sessionID)
}

// SessionAccessToken returns the access token held by a session.
func (u *AuthUsecase) SessionAccessToken(ctx context.Context, sessionID string) (string, error) {
	if u.sessions == nil {
		return "", domainerrors.ErrUnauthorized
	}
	data, err := u.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return "", domainerrors.ErrUnauthorized
	}
	return data.AccessToken, nil
}

// Me returns the public view of the configured admin.
func (u *AuthUsecase) Me() *entities.AdminUser {
	return &entities.AdminUser{
		Email: u.admin.Email,
		Name:  u.admin.Name,
		Role:  u.admin.Role,
	}
}
