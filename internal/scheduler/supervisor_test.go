package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewSupervisor_Constructs(t *testing.T) {
	s := NewSupervisor()
	require.NotNil(t, s)
	require.Nil(t, s.sched)
}

func TestSupervisor_Shutdown_NotStarted_ReturnsNil(t *testing.T) {
	s := NewSupervisor()
	require.NoError(t, s.Shutdown())
	require.Nil(t, s.sched)
}

func TestSupervisor_StartOnce_NotStarted(t *testing.T) {
	s := NewSupervisor()
	started, err := s.StartOnce("job", time.Second, func(context.Context) {})
	require.ErrorIs(t, err, ErrNotStarted)
	require.False(t, started)
}

func TestSupervisor_StartOnce_RunsTaskImmediatelyAndRepeatedly(t *testing.T) {
	s := NewSupervisor()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Start(ctx))
	defer func() { _ = s.Shutdown() }()

	var runs atomic.Int32
	started, err := s.StartOnce("counter", 50*time.Millisecond, func(context.Context) {
		runs.Add(1)
	})
	require.NoError(t, err)
	require.True(t, started)
	require.True(t, s.running("counter"))

	require.Eventually(t, func() bool { return runs.Load() >= 3 }, 3*time.Second, 10*time.Millisecond)
}

func TestSupervisor_StartOnce_SecondRegistrationIsNoop(t *testing.T) {
	s := NewSupervisor()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Start(ctx))
	defer func() { _ = s.Shutdown() }()

	var first, second atomic.Int32
	started, err := s.StartOnce("worker", time.Hour, func(context.Context) { first.Add(1) })
	require.NoError(t, err)
	require.True(t, started)

	started, err = s.StartOnce("worker", time.Hour, func(context.Context) { second.Add(1) })
	require.NoError(t, err)
	require.False(t, started)

	require.Eventually(t, func() bool { return first.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, int32(0), second.Load())
}

func TestSupervisor_StartOnce_ConcurrentCallersStartOneTask(t *testing.T) {
	s := NewSupervisor()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Start(ctx))
	defer func() { _ = s.Shutdown() }()

	var startedCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.StartOnce("deposits", time.Hour, func(context.Context) {})
			require.NoError(t, err)
			if ok {
				startedCount.Add(1)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int32(1), startedCount.Load())
}

func TestSupervisor_PanickingTaskKeepsRunning(t *testing.T) {
	s := NewSupervisor()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Start(ctx))
	defer func() { _ = s.Shutdown() }()

	var runs atomic.Int32
	_, err := s.StartOnce("flaky", 30*time.Millisecond, func(context.Context) {
		runs.Add(1)
		panic("boom")
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 3*time.Second, 10*time.Millisecond)
}

func TestSupervisor_Start_And_ContextCancel_ShutsDown(t *testing.T) {
	s := NewSupervisor()
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	_, err := s.StartOnce("job", time.Hour, func(context.Context) {})
	require.NoError(t, err)

	cancel()

	require.Eventually(t, func() bool {
		return !s.running("job")
	}, 2*time.Second, 10*time.Millisecond, "expected supervisor to be shutdown after ctx cancel")
}

func TestSupervisor_Shutdown_AfterStart_Idempotent(t *testing.T) {
	s := NewSupervisor()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Shutdown())
	require.NoError(t, s.Shutdown())
}
