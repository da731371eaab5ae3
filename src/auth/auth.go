package auth

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth"

	"assethub/src/models"
	"assethub/src/repositories"
	"assethub/src/utils"
)

type userContextKey string

const currentUserKey = userContextKey("currentUser")

// TokenAuth builds the JWT verifier handlers share.
func TokenAuth(secret string) *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte(secret), nil)
}

// Authenticator resolves the bearer token to a user row and stores it in the
// request context. It runs after jwtauth.Verifier.
func Authenticator(users repositories.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				utils.WriteError(w, utils.Forbidden("auth token not detected"))
				return
			}

			username, _ := claims["username"].(string)
			if username == "" {
				utils.WriteError(w, utils.Forbidden("token carries no username"))
				return
			}

			user, err := users.FindByUsername(r.Context(), username)
			if err != nil {
				utils.WriteError(w, err)
				return
			}
			if user == nil || user.Disabled {
				utils.WriteError(w, utils.Forbidden("unknown or disabled user"))
				return
			}

			ctx := WithCurrentUser(r.Context(), *user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithCurrentUser stows the authenticated user in the context.
func WithCurrentUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// CurrentUser returns the authenticated user placed in the context by the
// Authenticator.
func CurrentUser(ctx context.Context) (models.User, error) {
	user, ok := ctx.Value(currentUserKey).(models.User)
	if !ok {
		return models.User{}, utils.Forbidden("no authenticated user")
	}
	return user, nil
}

// RequireAdmin guards admin-only routes.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := CurrentUser(r.Context())
		if err != nil {
			utils.WriteError(w, err)
			return
		}
		if !user.IsAdmin() {
			utils.WriteError(w, utils.Forbidden("admin role required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
