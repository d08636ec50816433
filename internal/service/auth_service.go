package service

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"go-fridge-tracker/internal/model"
	"go-fridge-tracker/pkg/apierror"
)

// AuthService verifies bearer tokens issued by the household's identity
// provider and turns them into actors. Tokens are HMAC signed; the email claim
// names the actor and the admin claim grants item type management.
type AuthService struct {
	jwtSecret []byte
}

func NewAuthService(secret string) *AuthService {
	return &AuthService{jwtSecret: []byte(secret)}
}

func (s *AuthService) ValidateToken(tokenString string) (model.Actor, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apierror.New("UNAUTHORIZED", "invalid token signing method", "", http.StatusUnauthorized)
		}
		return s.jwtSecret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return model.Actor{}, apierror.Wrap(model.ErrUnauthorized, "UNAUTHORIZED", "invalid token", "", http.StatusUnauthorized)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return model.Actor{}, apierror.Wrap(model.ErrUnauthorized, "UNAUTHORIZED", "invalid token claims", "", http.StatusUnauthorized)
	}

	email, _ := claims["email"].(string)
	email = strings.TrimSpace(email)
	if email == "" {
		return model.Actor{}, apierror.Wrap(model.ErrUnauthorized, "UNAUTHORIZED", "token carries no email", "", http.StatusUnauthorized)
	}

	admin, _ := claims["admin"].(bool)
	return model.Actor{Email: email, Admin: admin}, nil
}
