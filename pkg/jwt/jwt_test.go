package jwt

import (
	"errors"
	"testing"
	"time"

	gjwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService("secret", time.Minute, 2*time.Minute)

	pair, err := svc.GenerateTokenPair("admin@example.org", "ADMIN")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(60), pair.ExpiresIn)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.org", claims.Email)
	assert.Equal(t, "admin@example.org", claims.Subject)
	assert.Equal(t, "ADMIN", claims.Role)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	refresh, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refresh.TokenType)
}

func TestJWTService_ValidateInvalidToken(t *testing.T) {
	svc := NewJWTService("secret", time.Minute, 2*time.Minute)

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewJWTService("other-secret", time.Minute, time.Minute)
	pair, err := other.GenerateTokenPair("a@example.org", "ADMIN")
	require.NoError(t, err)
	_, err = svc.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateRefreshToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateExpiredToken(t *testing.T) {
	svc := NewJWTService("secret", -time.Second, -time.Second)

	pair, err := svc.GenerateTokenPair("expired@example.org", "ADMIN")
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_RejectsForeignIssuerAndAlgorithm(t *testing.T) {
	svc := NewJWTService("secret", time.Minute, time.Minute)

	foreign := gjwt.NewWithClaims(gjwt.SigningMethodHS256, &Claims{
		Email:     "x@example.org",
		TokenType: TokenTypeAccess,
		RegisteredClaims: gjwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: gjwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	signed, err := foreign.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := gjwt.NewWithClaims(gjwt.SigningMethodNone, &Claims{RegisteredClaims: gjwt.RegisteredClaims{Issuer: issuer}})
	unsigned, err := none.SignedString(gjwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_SignFailure(t *testing.T) {
	orig := signJWTToken
	t.Cleanup(func() { signJWTToken = orig })

	calls := 0
	signJWTToken = func(token *gjwt.Token, secret []byte) (string, error) {
		calls++
		if calls == 2 {
			return "", errors.New("sign failed")
		}
		return orig(token, secret)
	}
	svc := NewJWTService("secret", time.Minute, time.Minute)
	_, err := svc.GenerateTokenPair("a@example.org", "ADMIN")
	assert.Error(t, err)

	signJWTToken = func(*gjwt.Token, []byte) (string, error) { return "", errors.New("sign failed") }
	_, err = svc.GenerateTokenPair("a@example.org", "ADMIN")
	assert.Error(t, err)
}
