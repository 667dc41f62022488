package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	app_errors "merlin/backend/internal/errors"
	"merlin/backend/internal/interfaces"
	"merlin/backend/internal/model"
)

type contextKey string

const userContextKey contextKey = "user"

// RequireAuth resolves the Bearer token from the Authorization header into
// a user and stores it in the request context. Requests without a valid
// token are rejected with 401.
func RequireAuth(users interfaces.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				respondWithError(w, fmt.Errorf("%w: authentication token is missing", app_errors.ErrUnauthorized))
				return
			}

			user, err := users.Authenticate(r.Context(), token)
			if err != nil {
				respondWithError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return header[len("Bearer "):]
	}
	return ""
}

// userFromContext returns the authenticated user placed there by
// RequireAuth. The bool is false on routes that skipped the middleware.
func userFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userContextKey).(*model.User)
	return user, ok
}
