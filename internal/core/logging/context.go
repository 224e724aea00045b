package logging

import "context"

type contextKey string

const (
	documentKey  contextKey = "doc"
	operationKey contextKey = "op"
)

// WithDocument adds the path of the document being worked on to the context.
func WithDocument(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, documentKey, path)
}

// WithOperation adds the name of the running edit operation to the context.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey, op)
}

// GetDocument retrieves the document path from the context.
// Returns empty string if not present.
func GetDocument(ctx context.Context) string {
	if p, ok := ctx.Value(documentKey).(string); ok {
		return p
	}
	return ""
}

// GetOperation retrieves the operation name from the context.
// Returns empty string if not present.
func GetOperation(ctx context.Context) string {
	if op, ok := ctx.Value(operationKey).(string); ok {
		return op
	}
	return ""
}
