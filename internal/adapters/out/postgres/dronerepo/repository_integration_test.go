package dronerepo_test

import (
	"context"
	"testing"

	"dropoff/internal/adapters/out/postgres/dronerepo"
	"dropoff/internal/adapters/out/postgres/pgtest"
	"dropoff/internal/core/domain/model/drone"
	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id string, aggregate any) {
	m.Called(id, aggregate)
}

type DroneRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *dronerepo.GormDroneRepository
	tracker    *MockAggregateTracker
}

func TestDroneRepositoryIntegrationSuite(t *testing.T) {
	suite.Run(t, new(DroneRepositoryIntegrationTestSuite))
}

func (suite *DroneRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&dronerepo.DroneDTO{}))
}

func (suite *DroneRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db, "drones"))

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = dronerepo.NewGormDroneRepository(suite.db, suite.tracker)
}

func (suite *DroneRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DroneRepositoryIntegrationTestSuite) TestUpdate_CoordinatesAndGrippers() {
	ctx := suite.T().Context()
	d, err := drone.NewDrone("D1")
	suite.Require().NoError(err)
	suite.Require().NoError(d.Load(2, "P1"))
	suite.Require().NoError(suite.repository.Add(ctx, d))

	source, err := kernel.NewCoordinates(12.9, 77.5)
	suite.Require().NoError(err)
	suite.Require().NoError(d.SetSource(&source))
	suite.Require().NoError(suite.repository.Update(ctx, d))

	got, err := suite.repository.Get(ctx, "D1")
	suite.Require().NoError(err)
	suite.Require().NotNil(got.Source())
	suite.True(got.Source().IsEqual(source))
	suite.Nil(got.Destination())
	suite.True(got.IsCarrying("P1"))
	suite.Nil(got.Grippers()[0])
	suite.Equal("P1", *got.Grippers()[1])
}

func (suite *DroneRepositoryIntegrationTestSuite) TestGetCarrying_MatchesAnyGripper() {
	ctx := suite.T().Context()
	for i, id := range []string{"D1", "D2", "D3"} {
		d, err := drone.NewDrone(id)
		suite.Require().NoError(err)
		if id != "D3" {
			suite.Require().NoError(d.Load(i+1, "P1"))
		}
		suite.Require().NoError(suite.repository.Add(ctx, d))
	}

	got, err := suite.repository.GetCarrying(ctx, "P1")

	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal("D1", got[0].ID())
	suite.Equal("D2", got[1].ID())

	none, err := suite.repository.GetCarrying(ctx, "P2")
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *DroneRepositoryIntegrationTestSuite) TestMissing() {
	ctx := suite.T().Context()
	d, err := drone.NewDrone("ghost")
	suite.Require().NoError(err)

	_, err = suite.repository.Get(ctx, "ghost")
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	err = suite.repository.Update(ctx, d)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}
