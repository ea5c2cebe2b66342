// Package monitor runs one polling task per in-flight package and turns the
// first terminal status reported by the tower into exactly one cleanup call.
package monitor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/core/domain/model/tower"
	"dropoff/internal/core/ports"
	"dropoff/internal/metrics"
)

const (
	DefaultInterval = 3 * time.Second
	DefaultDeadline = 30 * time.Minute
)

// ErrStaleCycle is returned by an OutcomeHandler when the package was reset or
// relaunched after the task started. The supervisor drops such outcomes quietly.
var ErrStaleCycle = errors.New("delivery cycle is no longer current")

type StatusPoller interface {
	PollStatus(ctx context.Context, endpoint tower.ControlEndpoint) (ports.RemoteStatus, error)
}

// OutcomeHandler receives the terminal outcome of a task. Each method is
// called at most once per task.
type OutcomeHandler interface {
	Delivered(ctx context.Context, packageID string, cycle kernel.CycleID) error
	Failed(ctx context.Context, packageID string, cycle kernel.CycleID) error
	Unreachable(ctx context.Context, packageID string, cycle kernel.CycleID) error
}

// StatusRecorder keeps the last status a task observed, terminal or not.
type StatusRecorder interface {
	RecordRemoteStatus(packageID string, cycle kernel.CycleID, status string) bool
}

type Config struct {
	Interval time.Duration
	// Deadline bounds how long a package may stay in Processing. Zero disables it.
	Deadline time.Duration
}

type Task struct {
	PackageID string
	Cycle     kernel.CycleID
	Endpoint  tower.ControlEndpoint
}

type running struct {
	task   Task
	cancel context.CancelFunc
}

type Supervisor struct {
	poller   StatusPoller
	handler  OutcomeHandler
	recorder StatusRecorder
	metrics  metrics.Sink
	logger   *slog.Logger
	cfg      Config

	mu     sync.Mutex
	tasks  map[string]*running
	closed bool
	wg     sync.WaitGroup
}

// NewSupervisor accepts a nil recorder; polled statuses then only reach the
// metrics sink.
func NewSupervisor(
	poller StatusPoller,
	handler OutcomeHandler,
	recorder StatusRecorder,
	sink metrics.Sink,
	logger *slog.Logger,
	cfg Config,
) (*Supervisor, error) {
	if poller == nil {
		return nil, errors.New("status poller is required")
	}
	if handler == nil {
		return nil, errors.New("outcome handler is required")
	}
	if sink == nil {
		sink = metrics.NewNoopSink()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Deadline < 0 {
		cfg.Deadline = 0
	}

	return &Supervisor{
		poller:   poller,
		handler:  handler,
		recorder: recorder,
		metrics:  sink,
		logger:   logger.With("component", "delivery-monitor"),
		cfg:      cfg,
		tasks:    make(map[string]*running),
	}, nil
}

// Start launches a task for the package, cancelling any task already running
// for it. Tasks started after StopAll are ignored.
func (s *Supervisor) Start(task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.logger.Warn("supervisor is stopped, task ignored", "package_id", task.PackageID)
		return
	}
	if prev, ok := s.tasks[task.PackageID]; ok {
		prev.cancel()
		s.logger.Info("replacing monitor", "package_id", task.PackageID, "previous_cycle", prev.task.Cycle.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &running{task: task, cancel: cancel}
	s.tasks[task.PackageID] = r

	s.wg.Add(1)
	s.metrics.MonitorsActiveIncr()
	go s.run(ctx, r)
}

// Stop cancels the package's task. It does not wait for the goroutine to
// exit, so it is safe to call while holding the package lock.
func (s *Supervisor) Stop(packageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.tasks[packageID]; ok {
		r.cancel()
		delete(s.tasks, packageID)
	}
}

// StopAll cancels every task and waits until all of them have exited.
func (s *Supervisor) StopAll() {
	s.mu.Lock()
	s.closed = true
	for id, r := range s.tasks {
		r.cancel()
		delete(s.tasks, id)
	}
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("all monitors stopped")
}

// IsActive reports whether a task is running for the package.
func (s *Supervisor) IsActive(packageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[packageID]
	return ok
}

func (s *Supervisor) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (s *Supervisor) run(ctx context.Context, r *running) {
	defer s.wg.Done()
	defer s.metrics.MonitorsActiveDecr()
	defer s.forget(r)
	defer r.cancel()

	task := r.task
	logger := s.logger.With("package_id", task.PackageID, "cycle", task.Cycle.String())
	logger.Info("monitor started", "endpoint", task.Endpoint.String(), "interval", s.cfg.Interval)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	var deadline <-chan time.Time
	if s.cfg.Deadline > 0 {
		timer := time.NewTimer(s.cfg.Deadline)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("monitor cancelled")
			s.metrics.DeliveryOutcome(metrics.OutcomeCancelled)
			return
		case <-deadline:
			logger.Warn("delivery deadline passed", "deadline", s.cfg.Deadline)
			s.finish(ctx, logger, metrics.OutcomeUnreachable, task, s.handler.Unreachable)
			return
		case <-ticker.C:
			if s.poll(ctx, logger, task) {
				return
			}
		}
	}
}

// poll reports whether the task reached a terminal outcome.
func (s *Supervisor) poll(ctx context.Context, logger *slog.Logger, task Task) bool {
	status, err := s.poller.PollStatus(ctx, task.Endpoint)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		class := metrics.ClassifyError(err)
		s.metrics.PollFailed(class)
		logger.Warn("status poll failed", "class", class, "error", err)
		return false
	}
	s.metrics.PollCompleted(status.String())
	if s.recorder != nil {
		s.recorder.RecordRemoteStatus(task.PackageID, task.Cycle, status.String())
	}

	switch status {
	case ports.RemoteDelivered:
		s.finish(ctx, logger, metrics.OutcomeDelivered, task, s.handler.Delivered)
		return true
	case ports.RemoteFailed:
		s.finish(ctx, logger, metrics.OutcomeFailed, task, s.handler.Failed)
		return true
	default:
		logger.Debug("delivery in progress", "status", status.String())
		return false
	}
}

func (s *Supervisor) finish(
	ctx context.Context,
	logger *slog.Logger,
	outcome string,
	task Task,
	handle func(context.Context, string, kernel.CycleID) error,
) {
	err := handle(ctx, task.PackageID, task.Cycle)
	switch {
	case err == nil:
		s.metrics.DeliveryOutcome(outcome)
		logger.Info("delivery finished", "outcome", outcome)
	case errors.Is(err, ErrStaleCycle):
		logger.Info("outcome dropped, package was reset or relaunched", "outcome", outcome)
	default:
		s.metrics.DeliveryOutcome(outcome)
		s.metrics.CompensationFailed(outcome)
		logger.Error("delivery cleanup failed", "outcome", outcome, "error", err)
	}
}

func (s *Supervisor) forget(r *running) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.tasks[r.task.PackageID]; ok && cur == r {
		delete(s.tasks, r.task.PackageID)
	}
}
