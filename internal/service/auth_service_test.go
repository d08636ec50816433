package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-fridge-tracker/internal/model"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	svc := NewAuthService("secret")
	exp := time.Now().Add(time.Hour).Unix()

	actor, err := svc.ValidateToken(signToken(t, "secret", jwt.MapClaims{"email": "alice@home", "admin": true, "exp": exp}))
	require.NoError(t, err)
	assert.Equal(t, model.Actor{Email: "alice@home", Admin: true}, actor)

	actor, err = svc.ValidateToken(signToken(t, "secret", jwt.MapClaims{"email": "bob@home", "exp": exp}))
	require.NoError(t, err)
	assert.False(t, actor.Admin)

	tests := map[string]string{
		"wrong secret": signToken(t, "other", jwt.MapClaims{"email": "a", "exp": exp}),
		"no email":     signToken(t, "secret", jwt.MapClaims{"exp": exp}),
		"expired":      signToken(t, "secret", jwt.MapClaims{"email": "a", "exp": time.Now().Add(-time.Hour).Unix()}),
		"no expiry":    signToken(t, "secret", jwt.MapClaims{"email": "a"}),
		"garbage":      "not-a-token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			require.ErrorIs(t, err, model.ErrUnauthorized)
		})
	}
}
