package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedIDToken(t *testing.T, name, email string) string {
	t.Helper()
	claims := IDTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1234567890",
			Issuer:    "https://accounts.example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email:         email,
		EmailVerified: true,
		Name:          name,
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestParseIDToken(t *testing.T) {
	raw := signedIDToken(t, "Ann Lee", "ann@example.com")

	claims, err := ParseIDToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", claims.Name)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.True(t, claims.EmailVerified)
	assert.Equal(t, "1234567890", claims.Subject)
}

func TestParseIDToken_Garbage(t *testing.T) {
	_, err := ParseIDToken("not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidIDToken)
}
