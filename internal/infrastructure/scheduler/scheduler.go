// Package scheduler runs the periodic housekeeping tasks of the server process,
// such as sweeping idle rate limiter buckets and pruning expired token revocations.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is a named function run every Interval
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Config holds scheduler configuration
type Config struct {
	// TaskTimeout bounds a single run of a task
	TaskTimeout time.Duration
	// RetryAttempts is how many times a failed run is retried before waiting for the next tick
	RetryAttempts int
	RetryDelay    time.Duration
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() Config {
	return Config{
		TaskTimeout:   30 * time.Second,
		RetryAttempts: 2,
		RetryDelay:    5 * time.Second,
	}
}

// Scheduler runs registered tasks on their own tickers
type Scheduler struct {
	config Config
	logger *zap.Logger
	tasks  []Task

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// New creates a scheduler. A nil logger is replaced with a no-op logger.
func New(config Config, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{config: config, logger: logger}
}

// Register adds a task. Tasks must be registered before Start.
func (s *Scheduler) Register(task Task) error {
	if task.Name == "" || task.Interval <= 0 || task.Run == nil {
		return fmt.Errorf("%w: %q", ErrInvalidTask, task.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return ErrSchedulerRunning
	}
	for _, t := range s.tasks {
		if t.Name == task.Name {
			return fmt.Errorf("%w: %q", ErrDuplicateTask, task.Name)
		}
	}
	s.tasks = append(s.tasks, task)
	return nil
}

// Start launches one goroutine per task
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return nil
	}
	s.isRunning = true

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for _, task := range s.tasks {
		s.wg.Add(1)
		go s.loop(ctx, task)
	}

	s.logger.Info("Scheduler started", zap.Int("tasks", len(s.tasks)))
	return nil
}

// Stop cancels every task and waits for running ones to return
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	cancel := s.cancel
	s.mu.Unlock()

	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *Scheduler) loop(ctx context.Context, task Task) {
	defer s.wg.Done()

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runWithRetry(ctx, task)
		}
	}
}

// runWithRetry runs the task, retrying failures up to RetryAttempts times
func (s *Scheduler) runWithRetry(ctx context.Context, task Task) {
	for attempt := 0; ; attempt++ {
		err := s.runOnce(ctx, task)
		if err == nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
		if attempt >= s.config.RetryAttempts {
			s.logger.Error("Scheduled task failed",
				zap.String("task", task.Name),
				zap.Int("attempts", attempt+1),
				zap.Error(err),
			)
			return
		}
		s.logger.Warn("Scheduled task failed, retrying",
			zap.String("task", task.Name),
			zap.Int("attempt", attempt+1),
			zap.Duration("retry_delay", s.config.RetryDelay),
			zap.Error(err),
		)

		timer := time.NewTimer(s.config.RetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// runOnce runs the task under the task timeout, turning a panic into an error
func (s *Scheduler) runOnce(ctx context.Context, task Task) (err error) {
	if s.config.TaskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.TaskTimeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in task %s: %v", task.Name, r)
		}
	}()

	start := time.Now()
	err = task.Run(ctx)
	s.logger.Debug("Scheduled task ran",
		zap.String("task", task.Name),
		zap.Duration("elapsed", time.Since(start)),
		zap.Bool("ok", err == nil),
	)
	return err
}
