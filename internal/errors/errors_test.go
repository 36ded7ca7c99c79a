package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	t.Run("formats without cause", func(t *testing.T) {
		err := New(ErrCodeNotFound, "Session not found")
		assert.Equal(t, "NOT_FOUND: Session not found", err.Error())
	})

	t.Run("formats with cause", func(t *testing.T) {
		cause := stderrors.New("connection refused")
		err := Wrap(ErrCodeDatabase, "Database error", cause)
		assert.Contains(t, err.Error(), "DATABASE_ERROR")
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("unwraps to the cause", func(t *testing.T) {
		cause := stderrors.New("root cause")
		err := Wrap(ErrCodeInternal, "wrapper", cause)
		assert.Equal(t, cause, stderrors.Unwrap(err))
		assert.True(t, stderrors.Is(err, cause))
	})

	t.Run("WithDetails attaches payload", func(t *testing.T) {
		err := ValidationError("bad input").WithDetails(map[string]string{"field": "Body"})
		assert.NotNil(t, err.Details)
	})
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code ErrorCode
	}{
		{name: "Unauthorized", err: Unauthorized("no"), code: ErrCodeUnauthorized},
		{name: "InvalidSignature", err: InvalidSignature(), code: ErrCodeInvalidSignature},
		{name: "NotFound", err: NotFound("Session"), code: ErrCodeNotFound},
		{name: "MissingRequired", err: MissingRequired("From"), code: ErrCodeMissingRequired},
		{name: "RateLimitExceeded", err: RateLimitExceeded(), code: ErrCodeRateLimitExceeded},
		{name: "ProviderTimeout", err: ProviderTimeout("serper", stderrors.New("deadline")), code: ErrCodeProviderTimeout},
		{name: "ProviderFailed", err: ProviderFailed("openai", stderrors.New("500")), code: ErrCodeProviderFailed},
		{name: "ProviderExhausted", err: ProviderExhausted("synthesis"), code: ErrCodeProviderExhausted},
		{name: "SendFailed", err: SendFailed(stderrors.New("twilio 500")), code: ErrCodeSendFailed},
		{name: "Persistence", err: Persistence(stderrors.New("redis down")), code: ErrCodePersistence},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, tc.err.Code)
			assert.NotEmpty(t, tc.err.Message)
		})
	}
}

func TestErrorInspection(t *testing.T) {
	t.Run("IsAppError detects wrapped app errors", func(t *testing.T) {
		err := fmt.Errorf("handling turn: %w", SendFailed(stderrors.New("boom")))
		assert.True(t, IsAppError(err))
		assert.False(t, IsAppError(stderrors.New("plain")))
	})

	t.Run("AsAppError extracts the app error", func(t *testing.T) {
		inner := ProviderExhausted("evidence")
		appErr, ok := AsAppError(fmt.Errorf("wrapped: %w", inner))
		require.True(t, ok)
		assert.Equal(t, ErrCodeProviderExhausted, appErr.Code)
	})

	t.Run("GetCode falls back to internal", func(t *testing.T) {
		assert.Equal(t, ErrCodeSendFailed, GetCode(SendFailed(nil)))
		assert.Equal(t, ErrCodeInternal, GetCode(stderrors.New("plain")))
	})
}
