package commands_test

import (
	"testing"

	"dropoff/internal/core/domain/model/customer"
	"dropoff/internal/core/domain/model/drone"
	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/core/domain/model/parcel"
	"dropoff/internal/core/domain/model/tower"
	"dropoff/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

const (
	testPackageID = "P1"
	testTower     = "T1"
	testColumn    = "rack_01"
	testEndpoint  = "ddt-t1.example.net"
)

func testLocation(t *testing.T) kernel.Coordinates {
	t.Helper()
	c, err := kernel.NewCoordinates(1.0, 2.0)
	require.NoError(t, err)
	return c
}

func testSlot(t *testing.T) kernel.RackSlot {
	t.Helper()
	slot, err := kernel.NewRackSlotFromColumn(testTower, testColumn)
	require.NoError(t, err)
	return slot
}

func testTowerAggregate(t *testing.T) *tower.Tower {
	t.Helper()
	tw, err := tower.NewTower(testTower, testLocation(t), testEndpoint, 4)
	require.NoError(t, err)
	return tw
}

func testControlEndpoint(t *testing.T) tower.ControlEndpoint {
	t.Helper()
	e, err := tower.NewControlEndpoint(testEndpoint)
	require.NoError(t, err)
	return e
}

func readyParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	p, err := parcel.NewParcel(testPackageID, nil, nil)
	require.NoError(t, err)
	return p
}

func processingParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	p := readyParcel(t)
	require.NoError(t, p.StartDelivery(testSlot(t), testLocation(t)))
	return p
}

func deliveredParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	p := processingParcel(t)
	require.NoError(t, p.MarkDelivered())
	return p
}

func testCustomer(t *testing.T) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer("C1", "Ada", "ada@example.com", testPackageID, "books")
	require.NoError(t, err)
	return c
}

func carryingDrone(t *testing.T) *drone.Drone {
	t.Helper()
	d, err := drone.NewDrone("D1")
	require.NoError(t, err)
	require.NoError(t, d.Load(2, testPackageID))
	return d
}

func servicesGenerator() services.CredentialGenerator {
	return services.NewCredentialGenerator()
}
