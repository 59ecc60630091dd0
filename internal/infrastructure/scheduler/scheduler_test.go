package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fastConfig() Config {
	return Config{TaskTimeout: time.Second, RetryAttempts: 2, RetryDelay: time.Millisecond}
}

func TestRegister_Validation(t *testing.T) {
	s := New(fastConfig(), nil)
	noop := func(context.Context) error { return nil }

	assert.ErrorIs(t, s.Register(Task{Interval: time.Second, Run: noop}), ErrInvalidTask)
	assert.ErrorIs(t, s.Register(Task{Name: "a", Run: noop}), ErrInvalidTask)
	assert.ErrorIs(t, s.Register(Task{Name: "a", Interval: time.Second}), ErrInvalidTask)

	require.NoError(t, s.Register(Task{Name: "a", Interval: time.Second, Run: noop}))
	assert.ErrorIs(t, s.Register(Task{Name: "a", Interval: time.Second, Run: noop}), ErrDuplicateTask)

	require.NoError(t, s.Start(context.Background()))
	assert.ErrorIs(t, s.Register(Task{Name: "b", Interval: time.Second, Run: noop}), ErrSchedulerRunning)
	require.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_RunsTasksPeriodically(t *testing.T) {
	s := New(fastConfig(), nil)
	var runs atomic.Int32
	require.NoError(t, s.Register(Task{
		Name:     "count",
		Interval: 5 * time.Millisecond,
		Run: func(context.Context) error {
			runs.Add(1)
			return nil
		},
	}))

	require.NoError(t, s.Start(context.Background()))
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))

	after := runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, runs.Load(), "no runs after Stop")
}

func TestScheduler_RetriesFailedRuns(t *testing.T) {
	s := New(fastConfig(), nil)
	var calls atomic.Int32
	task := Task{
		Name:     "flaky",
		Interval: time.Hour,
		Run: func(context.Context) error {
			if calls.Add(1) < 3 {
				return errors.New("boom")
			}
			return nil
		},
	}

	s.runWithRetry(context.Background(), task)
	assert.Equal(t, int32(3), calls.Load())
}

func TestScheduler_GivesUpAfterRetryAttempts(t *testing.T) {
	s := New(fastConfig(), nil)
	var calls atomic.Int32
	task := Task{
		Name:     "broken",
		Interval: time.Hour,
		Run: func(context.Context) error {
			calls.Add(1)
			return errors.New("boom")
		},
	}

	s.runWithRetry(context.Background(), task)
	assert.Equal(t, int32(3), calls.Load(), "one run plus two retries")
}

func TestScheduler_RecoversPanics(t *testing.T) {
	s := New(Config{TaskTimeout: time.Second}, nil)
	err := s.runOnce(context.Background(), Task{
		Name: "panics",
		Run:  func(context.Context) error { panic("kaboom") },
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestScheduler_TaskTimeout(t *testing.T) {
	s := New(Config{TaskTimeout: 10 * time.Millisecond}, nil)
	err := s.runOnce(context.Background(), Task{
		Name: "slow",
		Run: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	s := New(fastConfig(), nil)
	require.NoError(t, s.Stop(context.Background()))
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
}
