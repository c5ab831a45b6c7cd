package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBearerTokenClaims(t *testing.T) {
	tok, err := NewBearerToken("secret", 42, "owner", 24)
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Token)
	assert.Len(t, tok.JTI, 32)
	assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), tok.Exp, time.Minute)

	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "owner", claims["role"])
	assert.Equal(t, tok.JTI, claims["jti"])
	assert.Equal(t, float64(tok.Exp.Unix()), claims["exp"])
}

func TestNewBearerTokenRejectsWrongSecret(t *testing.T) {
	tok, err := NewBearerToken("secret", 1, "user", 1)
	require.NoError(t, err)

	_, err = jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	})
	assert.Error(t, err)
}

func TestNewBearerTokenUniqueJTI(t *testing.T) {
	a, err := NewBearerToken("secret", 1, "user", 1)
	require.NoError(t, err)
	b, err := NewBearerToken("secret", 1, "user", 1)
	require.NoError(t, err)
	assert.NotEqual(t, a.JTI, b.JTI)
}
