package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-fridge-tracker/internal/model"
)

type tokenValidator interface {
	ValidateToken(tokenString string) (model.Actor, error)
}

type contextKey string

const actorContextKey contextKey = "actor"

// ActorMiddleware resolves the acting household member from the bearer token.
type ActorMiddleware struct {
	validator tokenValidator
}

func NewActorMiddleware(validator tokenValidator) *ActorMiddleware {
	return &ActorMiddleware{validator: validator}
}

func (m *ActorMiddleware) RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid authorization header")
			return
		}

		actor, err := m.validator.ValidateToken(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// RequireAdmin must run after RequireActor.
func (m *ActorMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
		if !actor.Admin {
			writeJSONError(w, http.StatusForbidden, "FORBIDDEN", "admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// bearerToken reads the Authorization header, falling back to the token query
// parameter for browser websocket clients that cannot set headers.
func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	if header != "" {
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}

func WithActor(ctx context.Context, actor model.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

func ActorFromContext(ctx context.Context) (model.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(model.Actor)
	return actor, ok
}
