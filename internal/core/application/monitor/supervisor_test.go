package monitor_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"dropoff/internal/core/application/monitor"
	"dropoff/internal/core/application/tracking"
	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/core/domain/model/tower"
	"dropoff/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// scriptedPoller replays statuses in order and then repeats the last one.
type scriptedPoller struct {
	mu     sync.Mutex
	script []pollResult
	calls  atomic.Int32
}

type pollResult struct {
	status ports.RemoteStatus
	err    error
}

func (p *scriptedPoller) PollStatus(_ context.Context, _ tower.ControlEndpoint) (ports.RemoteStatus, error) {
	n := int(p.calls.Add(1)) - 1
	p.mu.Lock()
	defer p.mu.Unlock()
	if n >= len(p.script) {
		n = len(p.script) - 1
	}
	r := p.script[n]
	return r.status, r.err
}

type outcomeHandlerMock struct {
	mock.Mock
}

func (m *outcomeHandlerMock) Delivered(ctx context.Context, packageID string, cycle kernel.CycleID) error {
	args := m.Called(ctx, packageID, cycle)
	return args.Error(0)
}

func (m *outcomeHandlerMock) Failed(ctx context.Context, packageID string, cycle kernel.CycleID) error {
	args := m.Called(ctx, packageID, cycle)
	return args.Error(0)
}

func (m *outcomeHandlerMock) Unreachable(ctx context.Context, packageID string, cycle kernel.CycleID) error {
	args := m.Called(ctx, packageID, cycle)
	return args.Error(0)
}

func newTask(t *testing.T, packageID string) monitor.Task {
	t.Helper()
	endpoint, err := tower.NewControlEndpoint("ddt.example.net")
	require.NoError(t, err)
	return monitor.Task{PackageID: packageID, Cycle: kernel.NewCycleID(), Endpoint: endpoint}
}

func newSupervisor(t *testing.T, poller monitor.StatusPoller, handler monitor.OutcomeHandler, deadline time.Duration) *monitor.Supervisor {
	t.Helper()
	s, err := monitor.NewSupervisor(poller, handler, nil, nil, nil, monitor.Config{
		Interval: 5 * time.Millisecond,
		Deadline: deadline,
	})
	require.NoError(t, err)
	t.Cleanup(s.StopAll)
	return s
}

func TestNewSupervisor_RequiresCollaborators(t *testing.T) {
	_, err := monitor.NewSupervisor(nil, &outcomeHandlerMock{}, nil, nil, nil, monitor.Config{})
	assert.Error(t, err)

	_, err = monitor.NewSupervisor(&scriptedPoller{}, nil, nil, nil, nil, monitor.Config{})
	assert.Error(t, err)
}

func TestSupervisor_DeliveredRunsCleanupOnce(t *testing.T) {
	poller := &scriptedPoller{script: []pollResult{
		{status: ports.RemoteProcessing},
		{status: ports.RemoteUnknown},
		{status: ports.RemoteDelivered},
	}}
	handler := &outcomeHandlerMock{}
	task := newTask(t, "P1")
	handler.On("Delivered", mock.Anything, "P1", task.Cycle).Return(nil).Once()

	s := newSupervisor(t, poller, handler, 0)
	s.Start(task)

	assert.Eventually(t, func() bool { return !s.IsActive("P1") }, time.Second, 5*time.Millisecond)

	polls := poller.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, polls, poller.calls.Load(), "task must stop polling after a terminal status")
	handler.AssertExpectations(t)
	handler.AssertNotCalled(t, "Failed", mock.Anything, mock.Anything, mock.Anything)
}

func TestSupervisor_RecordsLastObservedStatus(t *testing.T) {
	poller := &scriptedPoller{script: []pollResult{
		{status: ports.RemoteUnknown},
		{status: ports.RemoteProcessing},
	}}
	store := tracking.NewStore()
	slot, err := kernel.NewRackSlotFromColumn("T1", "rack_01")
	require.NoError(t, err)
	task := newTask(t, "P1")
	task.Cycle = store.Begin("P1", slot, task.Endpoint)

	s, err := monitor.NewSupervisor(poller, &outcomeHandlerMock{}, store, nil, nil, monitor.Config{
		Interval: 5 * time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(s.StopAll)
	s.Start(task)

	assert.Eventually(t, func() bool {
		e, _ := store.Snapshot("P1")
		return e.RemoteStatus == ports.RemoteProcessing.String()
	}, time.Second, 5*time.Millisecond)
	e, _ := store.Snapshot("P1")
	assert.Equal(t, tracking.StatusProcessing, e.Status)
	assert.False(t, e.PolledAt.IsZero())
}

func TestSupervisor_FailedRunsFailureCleanup(t *testing.T) {
	poller := &scriptedPoller{script: []pollResult{{status: ports.RemoteFailed}}}
	handler := &outcomeHandlerMock{}
	task := newTask(t, "P1")
	handler.On("Failed", mock.Anything, "P1", task.Cycle).Return(nil).Once()

	s := newSupervisor(t, poller, handler, 0)
	s.Start(task)

	assert.Eventually(t, func() bool { return !s.IsActive("P1") }, time.Second, 5*time.Millisecond)
	handler.AssertExpectations(t)
	handler.AssertNotCalled(t, "Delivered", mock.Anything, mock.Anything, mock.Anything)
}

func TestSupervisor_TransportErrorsKeepPolling(t *testing.T) {
	transport := fmt.Errorf("%w: %w", ports.ErrRemoteTransport, context.DeadlineExceeded)
	poller := &scriptedPoller{script: []pollResult{
		{err: transport},
		{err: transport},
		{err: transport},
		{status: ports.RemoteDelivered},
	}}
	handler := &outcomeHandlerMock{}
	task := newTask(t, "P1")
	handler.On("Delivered", mock.Anything, "P1", task.Cycle).Return(nil).Once()

	s := newSupervisor(t, poller, handler, 0)
	s.Start(task)

	assert.Eventually(t, func() bool { return !s.IsActive("P1") }, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, poller.calls.Load(), int32(4))
	handler.AssertExpectations(t)
}

func TestSupervisor_DeadlineMarksUnreachable(t *testing.T) {
	poller := &scriptedPoller{script: []pollResult{{err: ports.ErrRemoteTransport}}}
	handler := &outcomeHandlerMock{}
	task := newTask(t, "P1")
	handler.On("Unreachable", mock.Anything, "P1", task.Cycle).Return(nil).Once()

	s := newSupervisor(t, poller, handler, 40*time.Millisecond)
	s.Start(task)

	assert.Eventually(t, func() bool { return !s.IsActive("P1") }, time.Second, 5*time.Millisecond)
	handler.AssertExpectations(t)
}

func TestSupervisor_StaleCycleIsDroppedQuietly(t *testing.T) {
	poller := &scriptedPoller{script: []pollResult{{status: ports.RemoteDelivered}}}
	handler := &outcomeHandlerMock{}
	task := newTask(t, "P1")
	handler.On("Delivered", mock.Anything, "P1", task.Cycle).Return(monitor.ErrStaleCycle).Once()

	s := newSupervisor(t, poller, handler, 0)
	s.Start(task)

	assert.Eventually(t, func() bool { return !s.IsActive("P1") }, time.Second, 5*time.Millisecond)
	handler.AssertExpectations(t)
}

func TestSupervisor_CleanupErrorStillEndsTask(t *testing.T) {
	poller := &scriptedPoller{script: []pollResult{{status: ports.RemoteDelivered}}}
	handler := &outcomeHandlerMock{}
	task := newTask(t, "P1")
	handler.On("Delivered", mock.Anything, "P1", task.Cycle).Return(errors.New("db down")).Once()

	s := newSupervisor(t, poller, handler, 0)
	s.Start(task)

	assert.Eventually(t, func() bool { return !s.IsActive("P1") }, time.Second, 5*time.Millisecond)
	handler.AssertExpectations(t)
}

func TestSupervisor_StopCancelsTask(t *testing.T) {
	poller := &scriptedPoller{script: []pollResult{{status: ports.RemoteProcessing}}}
	handler := &outcomeHandlerMock{}

	s := newSupervisor(t, poller, handler, 0)
	s.Start(newTask(t, "P1"))
	require.True(t, s.IsActive("P1"))

	s.Stop("P1")

	assert.False(t, s.IsActive("P1"))
	handler.AssertNotCalled(t, "Delivered", mock.Anything, mock.Anything, mock.Anything)
}

func TestSupervisor_StartReplacesExistingTask(t *testing.T) {
	poller := &scriptedPoller{script: []pollResult{{status: ports.RemoteProcessing}}}
	handler := &outcomeHandlerMock{}

	s := newSupervisor(t, poller, handler, 0)
	s.Start(newTask(t, "P1"))
	s.Start(newTask(t, "P1"))
	s.Start(newTask(t, "P2"))

	assert.Eventually(t, func() bool { return s.Active() == 2 }, time.Second, 5*time.Millisecond)
}

func TestSupervisor_StopAllWaitsAndRejectsNewTasks(t *testing.T) {
	poller := &scriptedPoller{script: []pollResult{{status: ports.RemoteProcessing}}}
	handler := &outcomeHandlerMock{}

	s := newSupervisor(t, poller, handler, 0)
	for i := range 5 {
		s.Start(newTask(t, fmt.Sprintf("P%d", i)))
	}

	s.StopAll()
	assert.Equal(t, 0, s.Active())

	s.Start(newTask(t, "late"))
	assert.False(t, s.IsActive("late"))
}
