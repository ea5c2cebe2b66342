package commands_test

import (
	"errors"
	"testing"

	"dropoff/internal/core/application/monitor"
	"dropoff/internal/core/application/tracking"
	"dropoff/internal/core/application/usecases/commands"
	"dropoff/internal/core/domain/model/parcel"
	"dropoff/internal/core/domain/model/tower"
	"dropoff/internal/core/ports"
	"dropoff/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type launchFixture struct {
	factory    *MockUoWFactory
	uow        *MockUoW
	controller *MockTowerController
	monitor    *MockDeliveryMonitor
	analytics  *MockAnalytics
	store      *tracking.Store
	handler    commands.LaunchPackageCommandHandler
}

func newLaunchFixture(t *testing.T) *launchFixture {
	t.Helper()
	f := &launchFixture{
		factory:    new(MockUoWFactory),
		uow:        newMockUoW(),
		controller: new(MockTowerController),
		monitor:    new(MockDeliveryMonitor),
		analytics:  new(MockAnalytics),
		store:      tracking.NewStore(),
	}
	f.handler = commands.NewLaunchPackageCommandHandler(
		f.factory, f.controller, f.monitor, f.store, f.analytics, nil, nil,
	)
	return f
}

func (f *launchFixture) assertExpectations(t *testing.T) {
	f.factory.AssertExpectations(t)
	f.uow.assertExpectations(t)
	f.controller.AssertExpectations(t)
	f.monitor.AssertExpectations(t)
	f.analytics.AssertExpectations(t)
}

func newTestLaunchCommand(t *testing.T) commands.LaunchPackageCommand {
	t.Helper()
	cmd, err := commands.NewLaunchPackageCommand(testPackageID, testTower, testColumn, ptr(1.0), ptr(2.0))
	require.NoError(t, err)
	return cmd
}

func TestLaunchPackageCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newLaunchFixture(t)
	cmd := newTestLaunchCommand(t)
	p := readyParcel(t)
	slot := testSlot(t)
	endpoint := testControlEndpoint(t)

	f.factory.On("Create").Return(f.uow).Once()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.towers.On("FindByCoordinates", ctx, testLocation(t)).Return(testTowerAggregate(t), nil).Once(),
		f.uow.parcels.On("Get", ctx, testPackageID).Return(p, nil).Once(),
		f.uow.ledger.On("ReleaseHeldBy", ctx, slot, testPackageID).Return(false, nil).Once(),
		f.uow.ledger.On("Reserve", ctx, slot, testPackageID).Return(true, nil).Once(),
		f.uow.parcels.On("Update", ctx, p).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
		f.controller.On("Launch", ctx, endpoint, ports.LaunchRequest{
			PackageID:  testPackageID,
			TowerName:  testTower,
			RackColumn: testColumn,
		}).Return(nil).Run(func(mock.Arguments) {
			pending, ok := f.store.Snapshot(testPackageID)
			assert.True(t, ok, "the pending rack is tracked while the tower is called")
			assert.Equal(t, tracking.DefaultStatus, pending.Status)
			if assert.NotNil(t, pending.Rack) {
				assert.True(t, pending.Rack.IsEqual(slot))
			}
		}).Once(),
		f.monitor.On("Start", mock.MatchedBy(func(task monitor.Task) bool {
			return task.PackageID == testPackageID && task.Endpoint == endpoint
		})).Once(),
		f.analytics.On("Record", mock.Anything, testTower, ports.OutcomeLaunched, mock.Anything).Return(nil).Once(),
	)

	result, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, testPackageID, result.PackageID)
	assert.Equal(t, endpoint, result.ControlKey)
	assert.True(t, result.SelectedRack.IsEqual(slot))
	assert.Equal(t, parcel.Processing, p.Phase())

	entry, ok := f.store.Snapshot(testPackageID)
	require.True(t, ok)
	assert.Equal(t, tracking.StatusProcessing, entry.Status)
	assert.False(t, entry.CredentialReady)
	require.NotNil(t, entry.Cycle)
	assert.True(t, f.store.IsCurrent(testPackageID, *entry.Cycle))
	f.assertExpectations(t)
}

func TestLaunchPackageCommandHandler_Handle_ValidationError(t *testing.T) {
	f := newLaunchFixture(t)

	_, err := f.handler.Handle(t.Context(), commands.LaunchPackageCommand{})

	require.ErrorIs(t, err, commands.ErrLaunchPackageCommandIsNotConstructed)
	f.factory.AssertNotCalled(t, "Create")
}

func TestLaunchPackageCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	f := newLaunchFixture(t)

	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

	_, err := f.handler.Handle(ctx, newTestLaunchCommand(t))

	require.EqualError(t, err, "begin error")
	f.controller.AssertNotCalled(t, "Launch", mock.Anything, mock.Anything, mock.Anything)
}

func TestLaunchPackageCommandHandler_Handle_EndpointNotFound(t *testing.T) {
	ctx := t.Context()
	f := newLaunchFixture(t)

	f.factory.On("Create").Return(f.uow).Once()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.towers.On("FindByCoordinates", ctx, testLocation(t)).
			Return(nil, errs.NewObjectNotFoundError("tower", "(1, 2)")).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err := f.handler.Handle(ctx, newTestLaunchCommand(t))

	require.ErrorIs(t, err, commands.ErrControlEndpointNotFound)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	_, tracked := f.store.Snapshot(testPackageID)
	assert.False(t, tracked, "an unresolved endpoint leaves no trace")
	f.uow.ledger.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestLaunchPackageCommandHandler_Handle_TowerMismatch(t *testing.T) {
	ctx := t.Context()
	f := newLaunchFixture(t)
	other, err := tower.NewTower("T2", testLocation(t), testEndpoint, 4)
	require.NoError(t, err)

	f.factory.On("Create").Return(f.uow).Once()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.towers.On("FindByCoordinates", ctx, testLocation(t)).Return(other, nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err = f.handler.Handle(ctx, newTestLaunchCommand(t))

	require.ErrorIs(t, err, commands.ErrTowerMismatch)
	f.assertExpectations(t)
}

func TestLaunchPackageCommandHandler_Handle_RackOccupied(t *testing.T) {
	ctx := t.Context()
	f := newLaunchFixture(t)
	p := readyParcel(t)
	slot := testSlot(t)
	earlier := f.store.Begin(testPackageID, slot, testControlEndpoint(t))

	f.factory.On("Create").Return(f.uow).Once()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.towers.On("FindByCoordinates", ctx, testLocation(t)).Return(testTowerAggregate(t), nil).Once(),
		f.uow.parcels.On("Get", ctx, testPackageID).Return(p, nil).Once(),
		f.uow.ledger.On("ReleaseHeldBy", ctx, slot, testPackageID).Return(false, nil).Once(),
		f.uow.ledger.On("Reserve", ctx, slot, testPackageID).Return(false, nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err := f.handler.Handle(ctx, newTestLaunchCommand(t))

	require.ErrorIs(t, err, commands.ErrRackIsOccupied)
	require.ErrorIs(t, err, tower.ErrRackIsOccupied)
	assert.Equal(t, parcel.Ready, p.Phase())
	f.uow.parcels.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.controller.AssertNotCalled(t, "Launch", mock.Anything, mock.Anything, mock.Anything)
	assert.True(t, f.store.IsCurrent(testPackageID, earlier), "a rejected launch keeps the earlier cycle")
	f.assertExpectations(t)
}

func TestLaunchPackageCommandHandler_Handle_DeliveryInProgress(t *testing.T) {
	ctx := t.Context()
	f := newLaunchFixture(t)

	f.factory.On("Create").Return(f.uow).Once()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.towers.On("FindByCoordinates", ctx, testLocation(t)).Return(testTowerAggregate(t), nil).Once(),
		f.uow.parcels.On("Get", ctx, testPackageID).Return(processingParcel(t), nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err := f.handler.Handle(ctx, newTestLaunchCommand(t))

	require.ErrorIs(t, err, commands.ErrDeliveryInProgress)
	f.assertExpectations(t)
}

func TestLaunchPackageCommandHandler_Handle_RemoteFailureIsCompensated(t *testing.T) {
	ctx := t.Context()
	f := newLaunchFixture(t)
	compensation := newMockUoW()
	p := readyParcel(t)
	slot := testSlot(t)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.factory.On("Create").Return(compensation).Once(),
	)
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.towers.On("FindByCoordinates", ctx, testLocation(t)).Return(testTowerAggregate(t), nil).Once(),
		f.uow.parcels.On("Get", ctx, testPackageID).Return(p, nil).Once(),
		f.uow.ledger.On("ReleaseHeldBy", ctx, slot, testPackageID).Return(false, nil).Once(),
		f.uow.ledger.On("Reserve", ctx, slot, testPackageID).Return(true, nil).Once(),
		f.uow.parcels.On("Update", ctx, p).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
		f.controller.On("Launch", ctx, mock.Anything, mock.Anything).
			Return(errors.New("tower said 503")).Once(),
		compensation.On("Begin", mock.Anything).Return(nil).Once(),
		compensation.ledger.On("ReleaseHeldBy", mock.Anything, slot, testPackageID).Return(true, nil).Once(),
		compensation.parcels.On("Get", mock.Anything, testPackageID).Return(p, nil).Once(),
		compensation.parcels.On("Update", mock.Anything, p).Return(nil).Once(),
		compensation.On("Commit", mock.Anything).Return(nil).Once(),
		compensation.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	_, err := f.handler.Handle(ctx, newTestLaunchCommand(t))

	require.ErrorIs(t, err, commands.ErrRemoteLaunchFailed)
	assert.Contains(t, err.Error(), "tower said 503")
	assert.Equal(t, parcel.Ready, p.Phase())
	assert.Nil(t, p.Rack())
	_, tracked := f.store.Snapshot(testPackageID)
	assert.False(t, tracked)
	f.monitor.AssertNotCalled(t, "Start", mock.Anything)
	f.analytics.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
	compensation.assertExpectations(t)
}

func TestLaunchPackageCommandHandler_Handle_CompensationFailureIsReported(t *testing.T) {
	ctx := t.Context()
	f := newLaunchFixture(t)
	compensation := newMockUoW()
	p := readyParcel(t)
	slot := testSlot(t)

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.factory.On("Create").Return(compensation).Once(),
	)
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.towers.On("FindByCoordinates", ctx, testLocation(t)).Return(testTowerAggregate(t), nil).Once()
	f.uow.parcels.On("Get", ctx, testPackageID).Return(p, nil).Once()
	f.uow.ledger.On("ReleaseHeldBy", ctx, slot, testPackageID).Return(false, nil).Once()
	f.uow.ledger.On("Reserve", ctx, slot, testPackageID).Return(true, nil).Once()
	f.uow.parcels.On("Update", ctx, p).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.controller.On("Launch", ctx, mock.Anything, mock.Anything).Return(ports.ErrRemoteTransport).Once()
	compensation.On("Begin", mock.Anything).Return(nil).Once()
	compensation.ledger.On("ReleaseHeldBy", mock.Anything, slot, testPackageID).
		Return(false, errors.New("db gone")).Once()
	compensation.On("Rollback", mock.Anything).Return(nil).Once()

	_, err := f.handler.Handle(ctx, newTestLaunchCommand(t))

	require.ErrorIs(t, err, commands.ErrRemoteLaunchFailed)
	require.ErrorIs(t, err, ports.ErrRemoteTransport)
	assert.Contains(t, err.Error(), "db gone")
	_, tracked := f.store.Snapshot(testPackageID)
	assert.False(t, tracked)
	compensation.assertExpectations(t)
}

func TestLaunchPackageCommandHandler_Handle_RelaunchMovesHeldRack(t *testing.T) {
	ctx := t.Context()
	f := newLaunchFixture(t)
	p := processingParcel(t)
	require.NoError(t, p.MarkUnreachable())
	held := *p.Rack()

	cmd, err := commands.NewLaunchPackageCommand(testPackageID, testTower, "rack_02", ptr(1.0), ptr(2.0))
	require.NoError(t, err)
	requested := cmd.Rack()

	f.factory.On("Create").Return(f.uow).Once()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.towers.On("FindByCoordinates", ctx, testLocation(t)).Return(testTowerAggregate(t), nil).Once(),
		f.uow.parcels.On("Get", ctx, testPackageID).Return(p, nil).Once(),
		f.uow.ledger.On("ReleaseHeldBy", ctx, held, testPackageID).Return(true, nil).Once(),
		f.uow.ledger.On("ReleaseHeldBy", ctx, requested, testPackageID).Return(false, nil).Once(),
		f.uow.ledger.On("Reserve", ctx, requested, testPackageID).Return(true, nil).Once(),
		f.uow.parcels.On("Update", ctx, p).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
		f.controller.On("Launch", ctx, mock.Anything, mock.Anything).Return(nil).Once(),
		f.monitor.On("Start", mock.Anything).Once(),
		f.analytics.On("Record", mock.Anything, testTower, ports.OutcomeLaunched, mock.Anything).Return(nil).Once(),
	)

	result, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "rack_02", result.SelectedRack.Column())
	assert.Equal(t, parcel.Processing, p.Phase())
	f.assertExpectations(t)
}

func TestLaunchPackageCommandHandler_Handle_AnalyticsFailureIsIgnored(t *testing.T) {
	ctx := t.Context()
	f := newLaunchFixture(t)
	p := readyParcel(t)

	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.towers.On("FindByCoordinates", ctx, mock.Anything).Return(testTowerAggregate(t), nil).Once()
	f.uow.parcels.On("Get", ctx, testPackageID).Return(p, nil).Once()
	f.uow.ledger.On("ReleaseHeldBy", ctx, mock.Anything, testPackageID).Return(false, nil).Once()
	f.uow.ledger.On("Reserve", ctx, mock.Anything, testPackageID).Return(true, nil).Once()
	f.uow.parcels.On("Update", ctx, p).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.controller.On("Launch", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	f.monitor.On("Start", mock.Anything).Once()
	f.analytics.On("Record", mock.Anything, testTower, ports.OutcomeLaunched, mock.Anything).
		Return(errors.New("redis down")).Once()

	_, err := f.handler.Handle(ctx, newTestLaunchCommand(t))

	require.NoError(t, err)
	f.assertExpectations(t)
}
