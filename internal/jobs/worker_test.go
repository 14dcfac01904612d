package jobs

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fintrackhq/fintrack-api/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Setup("test")
	os.Exit(m.Run())
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestWorker_ProcessesQueuedJobs(t *testing.T) {
	w := NewWorker(2)
	defer w.Shutdown()

	var count int32
	for i := 0; i < 5; i++ {
		w.Enqueue(func(ctx context.Context) error {
			atomic.AddInt32(&count, 1)
			return nil
		})
	}

	waitFor(t, func() bool { return atomic.LoadInt32(&count) == 5 })
}

func TestWorker_TracksFailures(t *testing.T) {
	w := NewWorker(1)
	defer w.Shutdown()

	w.Enqueue(func(ctx context.Context) error {
		return errors.New("boom")
	})

	waitFor(t, func() bool { return w.GetStats().FailedJobs == 1 })
	stats := w.GetStats()
	assert.Equal(t, int64(1), stats.FinishedJobs)
}

func TestWorker_EnqueueAsyncRecoversPanic(t *testing.T) {
	w := NewWorker(1)
	defer w.Shutdown()

	w.EnqueueAsync(func(ctx context.Context) error {
		panic("boom")
	})

	waitFor(t, func() bool { return w.GetStats().FailedJobs == 1 })
}

func TestWorker_ScheduleEveryImmediateRunsAtStartup(t *testing.T) {
	w := NewWorker(1)
	defer w.Shutdown()

	var count int32
	w.ScheduleEveryImmediate(time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&count, 1)
		return nil
	})

	waitFor(t, func() bool { return atomic.LoadInt32(&count) == 1 })
}

func TestWorker_ShutdownWaitsForQueue(t *testing.T) {
	w := NewWorker(1)

	var done int32
	w.Enqueue(func(ctx context.Context) error {
		time.Sleep(50 * time.Millisecond)
		atomic.StoreInt32(&done, 1)
		return nil
	})

	// Give the worker a moment to pick the job up before cancelling
	time.Sleep(10 * time.Millisecond)
	w.Shutdown()

	assert.Equal(t, int32(1), atomic.LoadInt32(&done))
}
