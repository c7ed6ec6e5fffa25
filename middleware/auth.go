package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"projecthub/apierr"
	"projecthub/credentials"
	"projecthub/logging"
	"projecthub/models"
	"projecthub/policy"
	"projecthub/respond"
)

type contextKey string

const UserContextKey contextKey = "user"

// UserLookup resolves a token subject to a user.
type UserLookup interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	parts := strings.Fields(authHeader)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// Authenticate resolves the bearer token to a user and stores it in the
// request context. Requests without a valid token get 401.
func Authenticate(creds *credentials.Service, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				respond.Error(w, r, apierr.Unauthorized("Not authenticated", nil))
				return
			}

			subject, err := creds.Resolve(tokenString)
			if err != nil {
				respond.Error(w, r, err)
				return
			}

			user, err := users.UserByEmail(r.Context(), subject)
			if err != nil {
				if errors.Is(err, apierr.ErrNotFound) {
					err = apierr.Unauthorized("Could not validate credentials", err)
				}
				respond.Error(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			entry := logging.FromContext(ctx).WithField("user_id", user.ID)
			ctx = logging.WithEntry(ctx, entry)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Require rejects callers whose role may not perform op at all.
func Require(op policy.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUserFromContext(r.Context())
			if user == nil {
				respond.Error(w, r, apierr.Unauthorized("Not authenticated", nil))
				return
			}
			if err := policy.Require(policy.SubjectOf(user), op); err != nil {
				respond.Error(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
