package mongo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	apperrors "notarynow/pkg/errors"
)

func TestStoreErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
		retryable  bool
	}{
		{
			name:       "deadline exceeded",
			err:        context.DeadlineExceeded,
			wantCode:   apperrors.CodeTimeout,
			wantStatus: http.StatusGatewayTimeout,
			retryable:  true,
		},
		{
			name:       "wrapped deadline",
			err:        fmt.Errorf("find appointments: %w", context.DeadlineExceeded),
			wantCode:   apperrors.CodeTimeout,
			wantStatus: http.StatusGatewayTimeout,
			retryable:  true,
		},
		{
			name:       "plain failure",
			err:        errors.New("document too large"),
			wantCode:   apperrors.CodeInternal,
			wantStatus: http.StatusInternalServerError,
			retryable:  false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			appErr := StoreError("store call failed", tc.err)
			if appErr.Code != tc.wantCode {
				t.Errorf("expected code %s, got %s", tc.wantCode, appErr.Code)
			}
			if appErr.HTTPStatus != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, appErr.HTTPStatus)
			}
			if apperrors.Retryable(appErr) != tc.retryable {
				t.Errorf("expected retryable=%v for %s", tc.retryable, appErr.Code)
			}
			if !errors.Is(appErr.Err, tc.err) {
				t.Error("expected the cause to be preserved")
			}
		})
	}
}
