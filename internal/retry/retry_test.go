package retry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/goran-ethernal/CoinFeed/internal/common"
	"github.com/goran-ethernal/CoinFeed/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockNetError implements net.Error for testing
type mockNetError struct {
	msg     string
	timeout bool
}

func (e *mockNetError) Error() string   { return e.msg }
func (e *mockNetError) Timeout() bool   { return e.timeout }
func (e *mockNetError) Temporary() bool { return false }

func fastPolicy(attempts int) Policy {
	return Policy{
		MaxAttempts:    attempts,
		InitialBackoff: 5 * time.Millisecond,
		MaxBackoff:     20 * time.Millisecond,
		Multiplier:     2.0,
	}
}

func TestTransient(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{name: "nil error", err: nil, retryable: false},
		{name: "network timeout error", err: &mockNetError{msg: "network timeout", timeout: true}, retryable: true},
		{name: "connection refused", err: syscall.ECONNREFUSED, retryable: true},
		{name: "connection reset", err: syscall.ECONNRESET, retryable: true},
		{name: "broken pipe", err: syscall.EPIPE, retryable: true},
		{name: "timeout string", err: errors.New("operation timeout"), retryable: true},
		{name: "context deadline exceeded", err: context.DeadlineExceeded, retryable: true},
		{name: "rate limit 429", err: errors.New("HTTP 429"), retryable: true},
		{name: "rate limit text", err: errors.New("Rate limit reached"), retryable: true},
		{name: "bad gateway", err: errors.New("502 Bad Gateway"), retryable: true},
		{name: "service unavailable", err: errors.New("service unavailable"), retryable: true},
		{name: "wrapped connection refused", err: fmt.Errorf("connection failed: %w", syscall.ECONNREFUSED), retryable: true},
		{name: "net.OpError", err: &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, retryable: true},
		{name: "invalid params", err: errors.New("invalid argument 0: hex string without 0x prefix"), retryable: false},
		{name: "execution reverted", err: errors.New("execution reverted"), retryable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, Transient(tt.err))
		})
	}
}

func TestAlways(t *testing.T) {
	require.False(t, Always(nil))
	require.True(t, Always(errors.New("anything")))
	require.True(t, Always(context.DeadlineExceeded))
	require.False(t, Always(context.Canceled))
	require.False(t, Always(fmt.Errorf("wrapped: %w", context.Canceled)))
}

func TestBackoff(t *testing.T) {
	p := Policy{
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     30 * time.Second,
		Multiplier:     2.0,
		Jitter:         DefaultJitter,
	}

	tests := []struct {
		name        string
		attempt     int
		minExpected time.Duration
		maxExpected time.Duration
	}{
		{name: "attempt 1 - no backoff", attempt: 1, minExpected: 0, maxExpected: 0},
		{name: "attempt 2 - initial backoff with jitter", attempt: 2, minExpected: 750 * time.Millisecond, maxExpected: 1250 * time.Millisecond},
		{name: "attempt 3 - exponential backoff", attempt: 3, minExpected: 1500 * time.Millisecond, maxExpected: 2500 * time.Millisecond},
		{name: "attempt 5", attempt: 5, minExpected: 6 * time.Second, maxExpected: 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Run multiple times to account for jitter randomness
			for range 10 {
				backoff := Backoff(tt.attempt, p)
				assert.GreaterOrEqual(t, backoff, tt.minExpected)
				assert.LessOrEqual(t, backoff, tt.maxExpected)
			}
		})
	}
}

func TestBackoff_NoJitterDoubles(t *testing.T) {
	p := Policy{InitialBackoff: 100 * time.Millisecond, MaxBackoff: time.Second, Multiplier: 2}

	require.Equal(t, time.Duration(0), Backoff(1, p))
	require.Equal(t, 100*time.Millisecond, Backoff(2, p))
	require.Equal(t, 200*time.Millisecond, Backoff(3, p))
	require.Equal(t, 400*time.Millisecond, Backoff(4, p))
	require.Equal(t, 800*time.Millisecond, Backoff(5, p))
	require.Equal(t, time.Second, Backoff(6, p), "capped at max backoff")
}

func TestFromConfig(t *testing.T) {
	require.Equal(t, Policy{MaxAttempts: 1}, FromConfig(nil, DefaultJitter))

	cfg := &config.RetryConfig{
		MaxAttempts:       4,
		InitialBackoff:    common.NewDuration(time.Second),
		MaxBackoff:        common.NewDuration(8 * time.Second),
		BackoffMultiplier: 3,
	}
	p := FromConfig(cfg, 0)
	require.Equal(t, 4, p.MaxAttempts)
	require.Equal(t, time.Second, p.InitialBackoff)
	require.Equal(t, 8*time.Second, p.MaxBackoff)
	require.Equal(t, 3.0, p.Multiplier)
	require.Zero(t, p.Jitter)
}

func TestDo_Success(t *testing.T) {
	callCount := 0
	err := Do(context.Background(), fastPolicy(3), "test_operation", Transient, func(int) error {
		callCount++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, callCount, "should succeed on first attempt")
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	var attempts []int
	err := Do(context.Background(), fastPolicy(5), "test_operation", Transient, func(attempt int) error {
		attempts = append(attempts, attempt)
		if attempt < 3 {
			return &mockNetError{msg: "temporary error", timeout: true}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, attempts)
}

func TestDo_NonRetryableError(t *testing.T) {
	callCount := 0
	expectedErr := errors.New("invalid parameter")
	err := Do(context.Background(), fastPolicy(5), "test_operation", Transient, func(int) error {
		callCount++
		return expectedErr
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-retryable error")
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 1, callCount, "should not retry non-retryable error")
}

func TestDo_ExhaustedRetries(t *testing.T) {
	callCount := 0
	expectedErr := &mockNetError{msg: "persistent error", timeout: true}
	err := Do(context.Background(), fastPolicy(3), "test_operation", Transient, func(int) error {
		callCount++
		return expectedErr
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 3 attempts failed")
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 3, callCount)
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	callCount := 0
	err := Do(ctx, fastPolicy(5), "test_operation", Always, func(int) error {
		callCount++
		if callCount == 2 {
			cancel()
		}
		return errors.New("temporary error")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context cancelled")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, callCount, "should stop retrying after context cancelled")
}

func TestDo_ContextDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	p := Policy{MaxAttempts: 10, InitialBackoff: 100 * time.Millisecond, MaxBackoff: time.Second, Multiplier: 2}

	callCount := 0
	err := Do(ctx, p, "test_operation", Always, func(int) error {
		callCount++
		return errors.New("temporary error")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context")
	assert.Less(t, callCount, 10, "should stop before max attempts due to deadline")
}

func TestDo_SingleAttemptReturnsRawError(t *testing.T) {
	expectedErr := errors.New("some error")
	err := Do(context.Background(), FromConfig(nil, 0), "test_operation", Always, func(int) error {
		return expectedErr
	})
	require.Equal(t, expectedErr, err)
}

func TestDo_NilClassifierDefaultsToTransient(t *testing.T) {
	callCount := 0
	err := Do(context.Background(), fastPolicy(3), "test_operation", nil, func(int) error {
		callCount++
		return errors.New("execution reverted")
	})
	require.Error(t, err)
	require.Equal(t, 1, callCount)
}

func TestDo_BackoffTiming(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timing test in short mode")
	}

	p := Policy{MaxAttempts: 3, InitialBackoff: 40 * time.Millisecond, MaxBackoff: time.Second, Multiplier: 2}

	start := time.Now()
	err := Do(context.Background(), p, "test_operation", Always, func(int) error {
		return errors.New("temporary error")
	})
	elapsed := time.Since(start)

	require.Error(t, err)
	// 40ms before attempt 2 and 80ms before attempt 3
	assert.GreaterOrEqual(t, elapsed, 120*time.Millisecond)
}
