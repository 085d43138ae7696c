package service

import (
	"context"
	"log/slog"

	"github.com/msomdec/notekeeper/internal/result"
)

// fault logs an unexpected error once and converts it into a failed result.
func fault[T any](ctx context.Context, op string, err error) result.Result[T] {
	slog.ErrorContext(ctx, "operation failed", "op", op, "error", err)
	return result.FailErr[T](err)
}
