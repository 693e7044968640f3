package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBackend = errors.New("backend failure")

func failingOp(ctx context.Context) error { return errBackend }

func succeedingOp(ctx context.Context) error { return nil }

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := New(&Config{
		FailureThreshold:      3,
		SuccessThreshold:      1,
		Timeout:               time.Minute,
		MaxConcurrentRequests: 1,
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(ctx, failingOp), errBackend)
	}

	assert.Equal(t, StateOpen, cb.GetState())

	err := cb.Execute(ctx, succeedingOp)
	assert.ErrorIs(t, err, ErrCircuitOpen)

	stats := cb.GetStats()
	assert.Equal(t, int64(3), stats.TotalFailures)
	assert.Equal(t, int64(1), stats.TotalRejections)
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := New(&Config{
		FailureThreshold:      1,
		SuccessThreshold:      2,
		Timeout:               10 * time.Millisecond,
		MaxConcurrentRequests: 1,
	})

	ctx := context.Background()
	require.Error(t, cb.Execute(ctx, failingOp))
	require.Equal(t, StateOpen, cb.GetState())

	time.Sleep(20 * time.Millisecond)

	// First success transitions open -> half-open, second closes
	require.NoError(t, cb.Execute(ctx, succeedingOp))
	assert.Equal(t, StateHalfOpen, cb.GetState())
	require.NoError(t, cb.Execute(ctx, succeedingOp))
	assert.Equal(t, StateClosed, cb.GetState())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := New(&Config{
		FailureThreshold:      1,
		SuccessThreshold:      2,
		Timeout:               10 * time.Millisecond,
		MaxConcurrentRequests: 1,
	})

	ctx := context.Background()
	require.Error(t, cb.Execute(ctx, failingOp))
	time.Sleep(20 * time.Millisecond)

	require.Error(t, cb.Execute(ctx, failingOp))
	assert.Equal(t, StateOpen, cb.GetState())
}

func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	var transitions []string
	cb := New(&Config{
		FailureThreshold:      1,
		SuccessThreshold:      1,
		Timeout:               time.Minute,
		MaxConcurrentRequests: 1,
		OnStateChange: func(from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_ = cb.Execute(context.Background(), failingOp)
	assert.Equal(t, []string{"closed->open"}, transitions)
}

func TestCircuitBreaker_Reset(t *testing.T) {
	cb := New(&Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Minute, MaxConcurrentRequests: 1})

	_ = cb.Execute(context.Background(), failingOp)
	require.Equal(t, StateOpen, cb.GetState())

	cb.Reset()
	assert.Equal(t, StateClosed, cb.GetState())
	assert.NoError(t, cb.Execute(context.Background(), succeedingOp))
}
