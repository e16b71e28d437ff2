// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// User is the ambient identity attached to every mutating call.
// It is carried in context, never persisted as its own entity.
type User struct {
	Email     string
	Name      string
	Positions []string
	IsAdmin   bool
}

// Anonymous is the identity used when no user information is present.
var Anonymous = User{Email: "anonymous", Name: "Anonymous"}

// userKey is the context key for the user identity.
type userKey struct{}

// WithUser returns a context with the user identity embedded.
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the user from context, or Anonymous if not set.
func UserFromContext(ctx context.Context) User {
	if v := ctx.Value(userKey{}); v != nil {
		return v.(User)
	}
	return Anonymous
}

// Actor returns a short attribution string for audit entries.
func Actor(ctx context.Context) string {
	return UserFromContext(ctx).Email
}
