package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/kmwenda/stocktrack-backend/internal/modules/access"
)

type contextKey struct{}

var actorKey contextKey

// ActorFromContext returns the authenticated actor stored by Middleware.
func ActorFromContext(ctx context.Context) (access.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(access.Actor)
	return actor, ok
}

// WithActor returns a context carrying the actor, as Middleware stores it.
func WithActor(ctx context.Context, actor access.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// Middleware authenticates the Bearer token on each request and stores the
// resolved actor in the request context. Requests without a valid token are
// rejected with 401.
func Middleware(service Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			u, err := service.Authenticate(r.Context(), strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				http.Error(w, "unauthenticated", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), u.Actor())))
		})
	}
}
