package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLimiter_Defaults(t *testing.T) {
	l := NewLimiter(0, 0)

	assert.Equal(t, DefaultMaxConcurrent, l.Status().MaxConcurrent)
	assert.Equal(t, DefaultMaxWait, l.maxWait)
}

func TestLimiter_AcquireRelease(t *testing.T) {
	l := NewLimiter(2, time.Second)
	ctx := context.Background()

	require.NoError(t, l.Acquire(ctx))
	require.NoError(t, l.Acquire(ctx))
	assert.Equal(t, LimiterStatus{Active: 2, Available: 0, MaxConcurrent: 2}, l.Status())

	l.Release()
	assert.Equal(t, 1, l.ActiveCount())
	assert.Equal(t, 1, l.Status().Available)

	l.Release()
	assert.Equal(t, 0, l.ActiveCount())
}

func TestLimiter_TimesOutWhenFull(t *testing.T) {
	l := NewLimiter(1, 20*time.Millisecond)
	require.NoError(t, l.Acquire(context.Background()))
	defer l.Release()

	err := l.Acquire(context.Background())

	assert.True(t, errors.Is(err, ErrTooManyComparisons))
}

func TestLimiter_RespectsCallerCancellation(t *testing.T) {
	l := NewLimiter(1, time.Minute)
	require.NoError(t, l.Acquire(context.Background()))
	defer l.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Acquire(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLimiter_WaitsForSlot(t *testing.T) {
	l := NewLimiter(1, time.Second)
	require.NoError(t, l.Acquire(context.Background()))

	var wg sync.WaitGroup
	wg.Add(1)
	var acquireErr error
	go func() {
		defer wg.Done()
		acquireErr = l.Acquire(context.Background())
	}()

	time.Sleep(20 * time.Millisecond)
	l.Release()
	wg.Wait()

	require.NoError(t, acquireErr)
	assert.Equal(t, 1, l.ActiveCount())
	l.Release()
}

func TestLimiter_WaitForDrain(t *testing.T) {
	l := NewLimiter(1, time.Second)
	require.NoError(t, l.WaitForDrain(context.Background()))

	require.NoError(t, l.Acquire(context.Background()))
	go func() {
		time.Sleep(30 * time.Millisecond)
		l.Release()
	}()
	assert.NoError(t, l.WaitForDrain(context.Background()))

	require.NoError(t, l.Acquire(context.Background()))
	defer l.Release()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, l.WaitForDrain(ctx), context.DeadlineExceeded)
}
