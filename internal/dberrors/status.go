package dberrors

import (
	"context"
	"errors"
	"net/http"
)

// RetryAfterSeconds is advertised to clients when a Deadlock is reported.
const RetryAfterSeconds = "1"

// HTTPStatus maps a classified storage failure onto the status returned to clients.
// Errors that are not a *PersistenceError map to 500.
func HTTPStatus(err error) int {
	var perr *PersistenceError
	if !errors.As(err, &perr) {
		return http.StatusInternalServerError
	}

	switch perr.Kind {
	case DuplicateKey:
		return http.StatusConflict
	case ConstraintViolation:
		if perr.Code == CodeForeignKeyParent {
			return http.StatusConflict
		}
		return http.StatusBadRequest
	case Deadlock:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RetryOnce runs op and, when it fails with a retryable error, runs it exactly one more
// time. The second result is returned as is.
func RetryOnce[T any](ctx context.Context, op func(context.Context) (T, error)) (T, error) {
	result, err := op(ctx)
	if err == nil || !IsRetryable(err) || ctx.Err() != nil {
		return result, err
	}
	return op(ctx)
}

// RetryOnDeadlock is RetryOnce for writes that are not idempotent, such as inserts. Only
// a Deadlock is retried: the engine rolled the statement back. A lost connection may have
// come after the row was written, so it is returned as is.
func RetryOnDeadlock[T any](ctx context.Context, op func(context.Context) (T, error)) (T, error) {
	result, err := op(ctx)
	if err == nil || KindOf(err) != Deadlock || ctx.Err() != nil {
		return result, err
	}
	return op(ctx)
}
