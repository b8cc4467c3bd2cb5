package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// TaskRunnerConfig sizes the worker pool and the stuck-task sweep.
type TaskRunnerConfig struct {
	// WorkerCount is the number of goroutines draining the queue.
	WorkerCount int

	// QueueSize bounds the in-memory queue. Submit fails once it is full.
	QueueSize int

	// StuckTaskAge is how long a task may sit in processing before the
	// sweep assumes its worker died and resets it.
	StuckTaskAge time.Duration

	// StuckTaskCheckInterval is the sweep period. Zero means 5 minutes.
	StuckTaskCheckInterval time.Duration
}

// DefaultTaskRunnerConfig suits a single API instance with light
// notification traffic.
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount:            2,
		QueueSize:              100,
		StuckTaskAge:           30 * time.Minute,
		StuckTaskCheckInterval: 5 * time.Minute,
	}
}

// TaskRunner executes tasks on a fixed worker pool. Every task is written
// to the store before it enters the queue, so tasks survive a restart and
// Recover can requeue whatever the previous process left behind.
type TaskRunner struct {
	store   TaskStore
	queue   chan Task
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	config  TaskRunnerConfig
	logger  *slog.Logger
	onError func(task Task, err error)
}

func NewTaskRunner(store TaskStore, config TaskRunnerConfig, logger *slog.Logger) *TaskRunner {
	if config.StuckTaskCheckInterval == 0 {
		config.StuckTaskCheckInterval = 5 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &TaskRunner{
		store:  store,
		queue:  make(chan Task, config.QueueSize),
		ctx:    ctx,
		cancel: cancel,
		config: config,
		logger: logger,
		onError: func(task Task, err error) {
			logger.Error("task execution failed",
				"task_id", task.ID(),
				"task_type", task.Type(),
				"error", err)
		},
	}
}

// SetErrorHandler replaces the default failure callback. Call it before
// Start; the runner does not synchronize access.
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.onError = handler
}

// Submit persists the task and hands it to the worker pool. Persisting
// first means a crash between the two steps only delays the task until
// the next Recover, it never loses it.
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	if err := r.store.SaveTask(ctx, task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	if !r.enqueue(task) {
		return fmt.Errorf("task queue is full, try again later")
	}
	return nil
}

// Start requeues leftover tasks, then launches the workers and the
// stuck-task sweep.
func (r *TaskRunner) Start() error {
	if err := r.Recover(); err != nil {
		return fmt.Errorf("failed to recover tasks: %w", err)
	}

	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}

	r.wg.Add(1)
	go r.sweepStuckTasks()

	return nil
}

// Stop shuts the pool down and waits for in-flight tasks to finish.
func (r *TaskRunner) Stop() {
	r.cancel()
	r.wg.Wait()
	close(r.queue)
}

// Recover requeues tasks a previous process never finished: pending tasks
// that never reached a worker, and processing tasks whose worker died
// mid-flight.
func (r *TaskRunner) Recover() error {
	ctx := context.Background()

	pending, err := r.store.GetPendingTasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pending tasks: %w", err)
	}

	interrupted, err := r.store.GetProcessingTasks(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to get processing tasks: %w", err)
	}

	r.logger.Info("recovering unfinished tasks",
		"pending_count", len(pending),
		"processing_count", len(interrupted))

	for _, t := range pending {
		if !r.enqueue(t) {
			r.logger.Error("queue full during recovery, task stays pending",
				"task_id", t.ID(),
				"task_type", t.Type())
		}
	}

	for _, t := range interrupted {
		if err := r.store.UpdateTaskStatus(ctx, t.ID(), TaskStatusPending, "Reset after recovery"); err != nil {
			r.logger.Error("failed to reset interrupted task",
				"task_id", t.ID(),
				"task_type", t.Type(),
				"error", err)
			continue
		}
		if !r.enqueue(t) {
			r.logger.Error("queue full during recovery, task stays pending",
				"task_id", t.ID(),
				"task_type", t.Type())
		}
	}

	return nil
}

// enqueue offers the task to the pool without blocking. A false return
// leaves the task pending in the store for the next recovery pass.
func (r *TaskRunner) enqueue(t Task) bool {
	select {
	case r.queue <- t:
		return true
	default:
		return false
	}
}

func (r *TaskRunner) worker(id int) {
	defer r.wg.Done()

	logger := r.logger.With("worker_id", id)
	logger.Debug("worker started")

	for {
		select {
		case <-r.ctx.Done():
			logger.Debug("worker stopping")
			return
		case t, ok := <-r.queue:
			if !ok {
				logger.Debug("queue closed, worker stopping")
				return
			}
			r.run(t, logger)
		}
	}
}

// run executes one task and records the outcome. Execution uses a fresh
// context so an HTTP request that has already returned cannot cancel the
// notification it triggered.
func (r *TaskRunner) run(t Task, logger *slog.Logger) {
	ctx := context.Background()
	logger = logger.With(
		"task_id", t.ID(),
		"task_type", t.Type(),
	)

	if err := r.store.UpdateTaskStatus(ctx, t.ID(), TaskStatusProcessing, ""); err != nil {
		logger.Error("failed to mark task processing", "error", err)
		return
	}

	logger.Info("processing task")

	if err := t.Execute(ctx); err != nil {
		logger.Error("task execution failed", "error", err)
		if updateErr := r.store.UpdateTaskStatus(ctx, t.ID(), TaskStatusFailed, err.Error()); updateErr != nil {
			logger.Error("failed to mark task failed", "error", updateErr)
		}
		r.onError(t, err)
		return
	}

	logger.Info("task completed")
	if err := r.store.UpdateTaskStatus(ctx, t.ID(), TaskStatusCompleted, ""); err != nil {
		logger.Error("failed to mark task completed", "error", err)
	}
}

// sweepStuckTasks periodically resets tasks that have sat in processing
// longer than StuckTaskAge and puts them back on the queue.
func (r *TaskRunner) sweepStuckTasks() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.config.StuckTaskCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.sweepOnce()
		}
	}
}

func (r *TaskRunner) sweepOnce() {
	ctx := context.Background()

	stuck, err := r.store.GetProcessingTasks(ctx, r.config.StuckTaskAge)
	if err != nil {
		r.logger.Error("stuck task sweep failed", "error", err)
		return
	}
	if len(stuck) == 0 {
		return
	}

	r.logger.Info("resetting stuck tasks", "count", len(stuck))

	for _, t := range stuck {
		if err := r.store.UpdateTaskStatus(ctx, t.ID(), TaskStatusPending,
			"Reset after being stuck in processing state"); err != nil {
			r.logger.Error("failed to reset stuck task",
				"task_id", t.ID(),
				"task_type", t.Type(),
				"error", err)
			continue
		}
		if r.enqueue(t) {
			r.logger.Info("requeued stuck task",
				"task_id", t.ID(),
				"task_type", t.Type())
		} else {
			r.logger.Error("queue full, stuck task stays pending",
				"task_id", t.ID(),
				"task_type", t.Type())
		}
	}
}
