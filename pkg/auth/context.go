package auth

import (
	"context"
	"errors"
)

type contextKey string

const userContextKey contextKey = "auth.user"

// UserContext is the authenticated user attached to a request
type UserContext struct {
	UserID string
	Email  string
	Roles  []string
}

// SetUserInContext attaches the user to the request context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext retrieves the authenticated user from the context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, errors.New("no authenticated user in context")
	}
	return user, nil
}
