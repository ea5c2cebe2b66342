package commands_test

import (
	"context"
	"time"

	"dropoff/internal/core/application/monitor"
	"dropoff/internal/core/application/usecases/commands"
	"dropoff/internal/core/domain/model/customer"
	"dropoff/internal/core/domain/model/drone"
	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/core/domain/model/parcel"
	"dropoff/internal/core/domain/model/tower"
	"dropoff/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockTowerRepository struct{ mock.Mock }

func (m *MockTowerRepository) Add(ctx context.Context, t *tower.Tower) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTowerRepository) Get(ctx context.Context, name string) (*tower.Tower, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tower.Tower), args.Error(1)
}

func (m *MockTowerRepository) FindByCoordinates(ctx context.Context, location kernel.Coordinates) (*tower.Tower, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tower.Tower), args.Error(1)
}

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id string) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetAwaitingCredential(ctx context.Context, limit int) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByPackage(ctx context.Context, packageID string) (*customer.Customer, error) {
	args := m.Called(ctx, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByCode(ctx context.Context, code customer.PickupCode) (*customer.Customer, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

type MockDroneRepository struct{ mock.Mock }

func (m *MockDroneRepository) Add(ctx context.Context, d *drone.Drone) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDroneRepository) Update(ctx context.Context, d *drone.Drone) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDroneRepository) Get(ctx context.Context, id string) (*drone.Drone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*drone.Drone), args.Error(1)
}

func (m *MockDroneRepository) GetCarrying(ctx context.Context, packageID string) ([]*drone.Drone, error) {
	args := m.Called(ctx, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*drone.Drone), args.Error(1)
}

type MockRackLedger struct{ mock.Mock }

func (m *MockRackLedger) Reserve(ctx context.Context, slot kernel.RackSlot, packageID string) (bool, error) {
	args := m.Called(ctx, slot, packageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRackLedger) Release(ctx context.Context, slot kernel.RackSlot) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}

func (m *MockRackLedger) ReleaseHeldBy(ctx context.Context, slot kernel.RackSlot, packageID string) (bool, error) {
	args := m.Called(ctx, slot, packageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRackLedger) Affirm(ctx context.Context, slot kernel.RackSlot, packageID string) error {
	args := m.Called(ctx, slot, packageID)
	return args.Error(0)
}

func (m *MockRackLedger) AvailableSlots(ctx context.Context, towerName string) ([]kernel.RackSlot, error) {
	args := m.Called(ctx, towerName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.RackSlot), args.Error(1)
}

// MockUoW hands out the same repository mocks on every call, so expectations
// can be set on the repositories without ordering the accessor calls.
type MockUoW struct {
	mock.Mock

	towers    *MockTowerRepository
	parcels   *MockParcelRepository
	customers *MockCustomerRepository
	drones    *MockDroneRepository
	ledger    *MockRackLedger
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		towers:    new(MockTowerRepository),
		parcels:   new(MockParcelRepository),
		customers: new(MockCustomerRepository),
		drones:    new(MockDroneRepository),
		ledger:    new(MockRackLedger),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) TowerRepository() ports.TowerRepository       { return m.towers }
func (m *MockUoW) ParcelRepository() ports.ParcelRepository     { return m.parcels }
func (m *MockUoW) CustomerRepository() ports.CustomerRepository { return m.customers }
func (m *MockUoW) DroneRepository() ports.DroneRepository       { return m.drones }
func (m *MockUoW) RackLedger() ports.RackLedger                 { return m.ledger }

func (m *MockUoW) assertExpectations(t mock.TestingT) {
	m.AssertExpectations(t)
	m.towers.AssertExpectations(t)
	m.parcels.AssertExpectations(t)
	m.customers.AssertExpectations(t)
	m.drones.AssertExpectations(t)
	m.ledger.AssertExpectations(t)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockDroneUoWFactory struct{ mock.Mock }

func (m *MockDroneUoWFactory) Create() commands.DroneUoW {
	args := m.Called()
	return args.Get(0).(commands.DroneUoW)
}

type MockTowerController struct{ mock.Mock }

func (m *MockTowerController) Launch(ctx context.Context, endpoint tower.ControlEndpoint, request ports.LaunchRequest) error {
	args := m.Called(ctx, endpoint, request)
	return args.Error(0)
}

func (m *MockTowerController) PollStatus(ctx context.Context, endpoint tower.ControlEndpoint) (ports.RemoteStatus, error) {
	args := m.Called(ctx, endpoint)
	return args.Get(0).(ports.RemoteStatus), args.Error(1)
}

func (m *MockTowerController) Reset(ctx context.Context, endpoint tower.ControlEndpoint) {
	m.Called(ctx, endpoint)
}

func (m *MockTowerController) OpenDoor(ctx context.Context, endpoint tower.ControlEndpoint, rackColumn string) error {
	args := m.Called(ctx, endpoint, rackColumn)
	return args.Error(0)
}

type MockDeliveryMonitor struct{ mock.Mock }

func (m *MockDeliveryMonitor) Start(task monitor.Task) {
	m.Called(task)
}

func (m *MockDeliveryMonitor) Stop(packageID string) {
	m.Called(packageID)
}

type MockAnalytics struct{ mock.Mock }

func (m *MockAnalytics) Record(ctx context.Context, towerName, outcome string, at time.Time) error {
	args := m.Called(ctx, towerName, outcome, at)
	return args.Error(0)
}
