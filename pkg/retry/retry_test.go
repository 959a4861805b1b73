package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:   attempts,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2,
	}
}

func TestDo_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(5), func() error {
		calls++
		if calls < 3 {
			return errors.New("not ready")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(2), func() error {
		calls++
		return errors.New("down")
	})

	require.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.Contains(t, err.Error(), "max retry attempts (2) exceeded")
}

func TestDo_PermanentStopsImmediately(t *testing.T) {
	cause := errors.New("bad credentials")
	calls := 0
	err := Do(context.Background(), fastConfig(5), func() error {
		calls++
		return Permanent(cause)
	})

	require.ErrorIs(t, err, cause)
	assert.Equal(t, 1, calls)
}

func TestDoWithLog_PrefixesAndLogs(t *testing.T) {
	var attempts []int
	err := DoWithLog(context.Background(), fastConfig(3), "graphql", func() error {
		return errors.New("refused")
	}, func(attempt int, err error, next time.Duration) {
		attempts = append(attempts, attempt)
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "graphql: ")
	assert.Equal(t, []int{1, 2}, attempts)
}

func TestDo_RespectsTotalTimeout(t *testing.T) {
	cfg := UntilTimeout(30 * time.Millisecond)
	cfg.InitialDelay = 5 * time.Millisecond

	start := time.Now()
	err := Do(context.Background(), cfg, func() error { return errors.New("never") })

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestPermanent_Nil(t *testing.T) {
	assert.NoError(t, Permanent(nil))
}
