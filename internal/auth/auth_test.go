package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chxlky/trello-gchat-notify/internal/models"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)

	assert.NoError(t, CheckPassword(hash, "admin123"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, CheckPassword("not-a-hash", "admin123"), ErrInvalidCredentials)
}

func TestTokenIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	user := &models.User{ID: "u1", Name: "Ayu", Email: "ayu@test.dev", Role: models.RoleAdmin}

	token, err := issuer.Issue(user)
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "ayu@test.dev", claims.Email)
}

func TestTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := issuer.Issue(&models.User{ID: "u1"})
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret", time.Hour).Issue(&models.User{ID: "u1"})
	require.NoError(t, err)

	_, err = NewTokenIssuer("other", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{UserID: "u1", RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	_, err := NewTokenIssuer("secret", time.Hour).Parse(strings.Repeat("x", 20))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
