package mongo

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	apperrors "notarynow/pkg/errors"
)

// StoreError classifies a storage failure. Deadline expiry and driver
// timeouts surface as TIMEOUT and broken transport as SERVICE_UNAVAILABLE,
// both retryable; anything else stays INTERNAL_ERROR.
func StoreError(message string, err error) *apperrors.AppError {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err):
		return &apperrors.AppError{
			Code:       apperrors.CodeTimeout,
			Message:    message,
			HTTPStatus: http.StatusGatewayTimeout,
			Err:        err,
		}
	case mongo.IsNetworkError(err):
		return &apperrors.AppError{
			Code:       apperrors.CodeUnavailable,
			Message:    message,
			HTTPStatus: http.StatusServiceUnavailable,
			Err:        err,
		}
	default:
		return apperrors.Internal(message, err)
	}
}
