package scheduler

import (
	"context"
	"cryptodesk/internal/platform/metrics"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

var ErrNotStarted = errors.New("supervisor is not started")

// Supervisor owns the process background tasks. A task is registered at most
// once per name and keeps running until Shutdown.
type Supervisor struct {
	mu    sync.Mutex
	sched gocron.Scheduler
	jobs  map[string]gocron.Job
}

func (s *Supervisor) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched != nil {
		return nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.sched = scheduler
	s.jobs = make(map[string]gocron.Job)
	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Supervisor shutdown error: %v", sdErr)
		}
	}()
	return nil
}

// StartOnce registers task under name unless a task with that name already runs.
// It reports whether this call started it. The first run happens immediately,
// then every interval; runs never overlap.
func (s *Supervisor) StartOnce(name string, every time.Duration, task func(ctx context.Context)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return false, ErrNotStarted
	}
	if _, ok := s.jobs[name]; ok {
		return false, nil
	}

	job, err := s.sched.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func(jobCtx context.Context) {
			runRecovered(jobCtx, name, task)
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return false, fmt.Errorf("failed to schedule task '%s': %w", name, err)
	}
	s.jobs[name] = job
	logrus.Infof("✅ Background task '%s' started, every %s", name, every)
	return true, nil
}

func (s *Supervisor) running(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.jobs[name]
	return ok
}

func (s *Supervisor) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	s.jobs = nil
	return err
}

// runRecovered keeps a panicking task from taking the process down; the next run is still scheduled.
func runRecovered(ctx context.Context, name string, task func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			metrics.TasksPanicked.WithLabelValues(name).Inc()
			logrus.WithFields(logrus.Fields{"task": name, "panic": r}).Errorf("Background task panicked\n%s", debug.Stack())
		}
	}()
	task(ctx)
}

func NewSupervisor() *Supervisor {
	return &Supervisor{}
}
