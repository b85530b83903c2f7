package ctxutil

import (
	"context"

	"github.com/heartmarshall/agpb-backend/internal/domain"
)

type ctxKey string

const (
	userIDKey        ctxKey = "user_id"
	requestIDKey     ctxKey = "request_id"
	authorizationKey ctxKey = "authorization"
)

// WithUserID stores the local user ID in the context.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx extracts the local user ID from the context.
// Returns 0 and false if the value is missing, zero, or of the wrong type.
func UserIDFromCtx(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

// WithAuthorization stores the per-request remote credentials in the context.
func WithAuthorization(ctx context.Context, authz domain.Authorization) context.Context {
	return context.WithValue(ctx, authorizationKey, authz)
}

// AuthorizationFromCtx extracts the remote credentials from the context.
// Returns false when absent or incomplete.
func AuthorizationFromCtx(ctx context.Context) (domain.Authorization, bool) {
	authz, ok := ctx.Value(authorizationKey).(domain.Authorization)
	if !ok || !authz.Valid() {
		return domain.Authorization{}, false
	}
	return authz, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
