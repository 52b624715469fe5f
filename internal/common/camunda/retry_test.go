package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"garment-workers/internal/common/errors"
	"garment-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
)

var fastRetry = &RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, logger.NewTestLogger(t), "postgres ping", func(context.Context) error {
		calls++
		if calls < 3 {
			return stderrors.New("connection refused")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_GivesUp(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, logger.NewNoOpLogger(), "redis ping", func(context.Context) error {
		calls++
		return stderrors.New("connection refused")
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 4 attempts")
	assert.Equal(t, 4, calls)
}

func TestRetry_PermanentStops(t *testing.T) {
	cause := stderrors.New("permission denied")
	calls := 0
	err := Retry(context.Background(), fastRetry, logger.NewNoOpLogger(), "zeebe topology", func(context.Context) error {
		calls++
		return Permanent(cause)
	})

	assert.Equal(t, cause, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := &RetryConfig{MaxRetries: 5, BaseDelay: time.Hour}

	err := Retry(ctx, cfg, logger.NewNoOpLogger(), "zeebe topology", func(context.Context) error {
		cancel()
		return stderrors.New("unavailable")
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryableZeebeError(t *testing.T) {
	assert.True(t, isRetryableZeebeError(stderrors.New("rpc error: code = Unavailable desc = connection refused")))
	assert.True(t, isRetryableZeebeError(stderrors.New("context deadline exceeded")))
	assert.False(t, isRetryableZeebeError(stderrors.New("rpc error: code = PermissionDenied")))
}

func TestMapZeebeError(t *testing.T) {
	err := mapZeebeError(stderrors.New("context deadline exceeded"), "connect localhost:26500")
	assert.Equal(t, "TIMEOUT_ERROR", string(errors.AsStandardError(err).Code))

	err = mapZeebeError(stderrors.New("connection refused"), "connect localhost:26500")
	assert.True(t, errors.HasCode(err, errors.ErrCodeBrokerUnavailable))
}
