package middleware

import "context"

type contextKey string

const (
	ctxCartToken  contextKey = "cart_token"
	ctxAdminID    contextKey = "admin_id"
	ctxAdminEmail contextKey = "admin_email"
	ctxAccessID   contextKey = "access_id"
)

func CartTokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxCartToken).(string); ok {
		return v
	}
	return ""
}

func AdminIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAdminID).(string); ok {
		return v
	}
	return ""
}

func AdminEmailFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAdminEmail).(string); ok {
		return v
	}
	return ""
}

// AccessIDFromContext returns the jti backing the admin's session.
func AccessIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAccessID).(string); ok {
		return v
	}
	return ""
}

// WithCartToken injects the cart token into the context.
func WithCartToken(ctx context.Context, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCartToken, token)
}

// WithAdminID injects the admin identifier into the context for downstream handlers.
func WithAdminID(ctx context.Context, adminID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAdminID, adminID)
}
