package auth

import (
	"context"
)

// Context keys for authentication data
type contextKey string

const (
	// ContextKeyOperator is the context key for the authenticated operator
	ContextKeyOperator contextKey = "operator"
)

// WithOperator adds the operator subject to the context
func WithOperator(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, ContextKeyOperator, subject)
}

// OperatorFromContext retrieves the operator subject from the context
func OperatorFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(ContextKeyOperator).(string)
	return subject, ok
}
