package crawler

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ContextKey string

const (
	ContextIDKey ContextKey = "context_id"
	KeywordKey   ContextKey = "keyword"
)

// GetContextLogger creates a logger with context information
func GetContextLogger(ctx context.Context, baseLogger *zap.Logger) *zap.Logger {
	logger := baseLogger
	if logger == nil {
		logger = zap.NewNop()
	}

	if contextID, ok := ctx.Value(ContextIDKey).(string); ok && contextID != "" {
		logger = logger.With(zap.String("context_id", contextID))
	}

	if keyword, ok := ctx.Value(KeywordKey).(string); ok && keyword != "" {
		logger = logger.With(zap.String("keyword", keyword))
	}

	return logger
}

// WithContextID adds a context ID to the context
func WithContextID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ContextIDKey, id)
}

// WithKeyword tags the context with the keyword being searched
func WithKeyword(ctx context.Context, keyword string) context.Context {
	return context.WithValue(ctx, KeywordKey, keyword)
}

// GenerateContextID generates a unique context ID with a prefix
func GenerateContextID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// GetContextID retrieves the context ID from context
func GetContextID(ctx context.Context) string {
	if contextID, ok := ctx.Value(ContextIDKey).(string); ok {
		return contextID
	}
	return ""
}
