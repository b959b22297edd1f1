package common

import (
	"context"
)

// UserContext holds the authenticated caller, populated from a validated bearer token.
// When absent (nil), the request is unauthenticated and path user ids are trusted.
type UserContext struct {
	UserID string
	Role   string
}

// Roles carried in the bearer token "role" claim
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type contextKey int

const userContextKey contextKey = iota

// WithUserContext stores a UserContext in the request context.
func WithUserContext(ctx context.Context, uc *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, uc)
}

// UserContextFromContext retrieves the UserContext from context, or nil if absent.
func UserContextFromContext(ctx context.Context) *UserContext {
	uc, _ := ctx.Value(userContextKey).(*UserContext)
	return uc
}

// ResolveUserID returns the UserID from context, or fallback when no user context is present.
func ResolveUserID(ctx context.Context, fallback string) string {
	if uc := UserContextFromContext(ctx); uc != nil && uc.UserID != "" {
		return uc.UserID
	}
	return fallback
}

// CanActAs reports whether the caller in ctx may read or change userID's data.
// Unauthenticated requests are trusted; admins may act on any user.
func CanActAs(ctx context.Context, userID string) bool {
	uc := UserContextFromContext(ctx)
	if uc == nil {
		return true
	}
	return uc.UserID == userID || uc.Role == RoleAdmin
}
