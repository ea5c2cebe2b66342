package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "dropoff/internal/adapters/in/http"
	"dropoff/internal/core/application/usecases/commands"
	"dropoff/internal/core/application/usecases/queries"
	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/core/domain/model/parcel"
	"dropoff/internal/core/domain/model/tower"
	"dropoff/internal/core/ports"
	"dropoff/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type mockLaunch struct{ mock.Mock }

func (m *mockLaunch) Handle(ctx context.Context, cmd commands.LaunchPackageCommand) (commands.LaunchResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.LaunchResult), args.Error(1)
}

type mockReset struct{ mock.Mock }

func (m *mockReset) Handle(ctx context.Context, cmd commands.ResetPackageCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type mockPickup struct{ mock.Mock }

func (m *mockPickup) Handle(ctx context.Context, cmd commands.PickupPackageCommand) (bool, error) {
	args := m.Called(ctx, cmd)
	return args.Bool(0), args.Error(1)
}

type mockDroneCoordinates struct{ mock.Mock }

func (m *mockDroneCoordinates) Handle(ctx context.Context, cmd commands.UpdateDroneCoordinatesCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type mockOpenRackDoor struct{ mock.Mock }

func (m *mockOpenRackDoor) Handle(ctx context.Context, cmd commands.OpenRackDoorCommand) (commands.OpenRackDoorResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.OpenRackDoorResult), args.Error(1)
}

type mockPackageStatus struct{ mock.Mock }

func (m *mockPackageStatus) Handle(
	ctx context.Context,
	query queries.GetPackageStatusQuery,
) (queries.GetPackageStatusQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetPackageStatusQueryResponse), args.Error(1)
}

type mockCredential struct{ mock.Mock }

func (m *mockCredential) Handle(
	ctx context.Context,
	query queries.GetCredentialQuery,
) (queries.GetCredentialQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetCredentialQueryResponse), args.Error(1)
}

type mockControlKey struct{ mock.Mock }

func (m *mockControlKey) Handle(
	ctx context.Context,
	query queries.GetControlKeyQuery,
) (queries.GetControlKeyQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetControlKeyQueryResponse), args.Error(1)
}

type mockTowerRacks struct{ mock.Mock }

func (m *mockTowerRacks) Handle(
	ctx context.Context,
	query queries.GetTowerRacksQuery,
) ([]queries.GetTowerRacksQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.GetTowerRacksQueryResponse), args.Error(1)
}

type mockPackages struct{ mock.Mock }

func (m *mockPackages) Handle(
	ctx context.Context,
	query queries.ListPackagesQuery,
) ([]queries.ListPackagesQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.ListPackagesQueryResponse), args.Error(1)
}

type mockDeliveryDrones struct{ mock.Mock }

func (m *mockDeliveryDrones) Handle(
	ctx context.Context,
	query queries.ListDeliveryDronesQuery,
) ([]queries.DroneQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.DroneQueryResponse), args.Error(1)
}

type mockDrone struct{ mock.Mock }

func (m *mockDrone) Handle(ctx context.Context, query queries.GetDroneQuery) (queries.DroneQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.DroneQueryResponse), args.Error(1)
}

type mockDroneDestination struct{ mock.Mock }

func (m *mockDroneDestination) Handle(
	ctx context.Context,
	query queries.GetDroneDestinationQuery,
) (queries.GetDroneDestinationQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetDroneDestinationQueryResponse), args.Error(1)
}

type ServerTestSuite struct {
	suite.Suite

	launch           *mockLaunch
	reset            *mockReset
	pickup           *mockPickup
	droneCoordinates *mockDroneCoordinates
	openRackDoor     *mockOpenRackDoor
	packageStatus    *mockPackageStatus
	credential       *mockCredential
	controlKey       *mockControlKey
	towerRacks       *mockTowerRacks
	packages         *mockPackages
	deliveryDrones   *mockDeliveryDrones
	drone            *mockDrone
	droneDestination *mockDroneDestination

	router *echo.Echo
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (suite *ServerTestSuite) SetupTest() {
	suite.launch = new(mockLaunch)
	suite.reset = new(mockReset)
	suite.pickup = new(mockPickup)
	suite.droneCoordinates = new(mockDroneCoordinates)
	suite.openRackDoor = new(mockOpenRackDoor)
	suite.packageStatus = new(mockPackageStatus)
	suite.credential = new(mockCredential)
	suite.controlKey = new(mockControlKey)
	suite.towerRacks = new(mockTowerRacks)
	suite.packages = new(mockPackages)
	suite.deliveryDrones = new(mockDeliveryDrones)
	suite.drone = new(mockDrone)
	suite.droneDestination = new(mockDroneDestination)

	server := httpadapter.NewServer(httpadapter.Handlers{
		Launch:           suite.launch,
		Reset:            suite.reset,
		Pickup:           suite.pickup,
		DroneCoordinates: suite.droneCoordinates,
		OpenRackDoor:     suite.openRackDoor,
		PackageStatus:    suite.packageStatus,
		Credential:       suite.credential,
		ControlKey:       suite.controlKey,
		TowerRacks:       suite.towerRacks,
		Packages:         suite.packages,
		DeliveryDrones:   suite.deliveryDrones,
		Drone:            suite.drone,
		DroneDestination: suite.droneDestination,
	}, nil)

	router, err := httpadapter.NewRouter(server, httpadapter.RouterConfig{Gatherer: prometheus.NewRegistry()})
	suite.Require().NoError(err)
	suite.router = router
}

func (suite *ServerTestSuite) TearDownTest() {
	suite.launch.AssertExpectations(suite.T())
	suite.reset.AssertExpectations(suite.T())
	suite.pickup.AssertExpectations(suite.T())
	suite.openRackDoor.AssertExpectations(suite.T())
	suite.packageStatus.AssertExpectations(suite.T())
	suite.credential.AssertExpectations(suite.T())
	suite.towerRacks.AssertExpectations(suite.T())
	suite.packages.AssertExpectations(suite.T())
	suite.deliveryDrones.AssertExpectations(suite.T())
	suite.drone.AssertExpectations(suite.T())
	suite.droneDestination.AssertExpectations(suite.T())
}

func (suite *ServerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	return rec
}

func (suite *ServerTestSuite) decode(rec *httptest.ResponseRecorder, v any) {
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

const launchBody = `{"package_id":"P1","ddt_name":"T1","rack_column":"rack_01","latitude":1.0,"longitude":2.0}`

func (suite *ServerTestSuite) TestLaunchPackage_Success() {
	endpoint, err := tower.NewControlEndpoint("ddt-t1.local:8000")
	suite.Require().NoError(err)
	slot, err := kernel.NewRackSlot("T1", 1)
	suite.Require().NoError(err)

	suite.launch.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.LaunchPackageCommand) bool {
		return cmd.PackageID() == "P1" && cmd.Rack().Column() == "rack_01" && cmd.Location().Longitude() == 2.0
	})).Return(commands.LaunchResult{PackageID: "P1", ControlKey: endpoint, SelectedRack: slot}, nil).Once()

	rec := suite.do(http.MethodPost, "/api/launch-package", launchBody)

	suite.Equal(http.StatusOK, rec.Code)
	var body httpadapter.LaunchResponse
	suite.decode(rec, &body)
	suite.Equal("success", body.Status)
	suite.Equal("P1", body.PackageID)
	suite.Equal("https://ddt-t1.local:8000", body.ControlKey)
	suite.Equal("rack_01", body.SelectedRack)
}

func (suite *ServerTestSuite) TestLaunchPackage_RejectedByDocument() {
	rec := suite.do(http.MethodPost, "/api/launch-package", `{"package_id":"P1","ddt_name":"T1","rack_column":"rack_01"}`)

	suite.Equal(http.StatusBadRequest, rec.Code)
	var body httpadapter.Error
	suite.decode(rec, &body)
	suite.Equal(http.StatusBadRequest, body.Code)
	suite.NotEmpty(body.Message)
	suite.launch.AssertNotCalled(suite.T(), "Handle", mock.Anything, mock.Anything)
}

func (suite *ServerTestSuite) TestLaunchPackage_ErrorMapping() {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"occupied", commands.ErrRackIsOccupied, http.StatusConflict},
		{"in progress", commands.ErrDeliveryInProgress, http.StatusConflict},
		{"phase", errs.NewValueIsInvalidErrorWithCause("phase", fmt.Errorf("%w: Delivered -> Processing", parcel.ErrPhaseTransitionIsNotAllowed)), http.StatusConflict},
		{"invalid value", errs.NewValueIsInvalidError("rack_column"), http.StatusBadRequest},
		{"mismatch", commands.ErrTowerMismatch, http.StatusBadRequest},
		{"no endpoint", commands.ErrControlEndpointNotFound, http.StatusNotFound},
		{"remote rejected", fmt.Errorf("%w: HTTP 503", commands.ErrRemoteLaunchFailed), http.StatusBadGateway},
		{"transport", fmt.Errorf("%w: connection refused", ports.ErrRemoteTransport), http.StatusBadGateway},
		{"unexpected", errors.New("connection reset by peer"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.launch.On("Handle", mock.Anything, mock.Anything).
				Return(commands.LaunchResult{}, tt.err).Once()

			rec := suite.do(http.MethodPost, "/api/launch-package", launchBody)

			suite.Equal(tt.code, rec.Code)
			var body httpadapter.Error
			suite.decode(rec, &body)
			suite.Equal(tt.code, body.Code)
			if tt.code == http.StatusInternalServerError {
				suite.Equal(http.StatusText(http.StatusInternalServerError), body.Message)
			}
		})
	}
}

func (suite *ServerTestSuite) TestGetPackageStatus() {
	rack, remote := "rack_02", "Delivered"
	suite.packageStatus.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetPackageStatusQuery) bool {
		return q.PackageID() == "P1"
	})).Return(queries.GetPackageStatusQueryResponse{
		PackageID: "P1", Status: "Delivered", EmailSent: true, SelectedRack: &rack, RemoteStatus: &remote,
	}, nil).Once()

	rec := suite.do(http.MethodGet, "/api/package-status/P1", "")

	suite.Equal(http.StatusOK, rec.Code)
	suite.JSONEq(`{"package_id":"P1","status":"Delivered","email_sent":true,"selected_rack":"rack_02","remote_status":"Delivered"}`, rec.Body.String())
}

func (suite *ServerTestSuite) TestGetOtpData_NotIssued() {
	suite.credential.On("Handle", mock.Anything, mock.Anything).
		Return(queries.GetCredentialQueryResponse{}, queries.ErrCredentialNotIssued).Once()

	rec := suite.do(http.MethodGet, "/api/get-otp-data/P1", "")

	suite.Equal(http.StatusNotFound, rec.Code)
	suite.JSONEq(`{"code":404,"message":"pickup code not generated yet"}`, rec.Body.String())
}

func (suite *ServerTestSuite) TestGetOtpData_Success() {
	rack := "rack_01"
	suite.credential.On("Handle", mock.Anything, mock.Anything).
		Return(queries.GetCredentialQueryResponse{PackageID: "P1", MailID: "ada@example.com", OTP: 123456, Rack: &rack}, nil).
		Once()

	rec := suite.do(http.MethodGet, "/api/get-otp-data/P1", "")

	suite.Equal(http.StatusOK, rec.Code)
	var body httpadapter.Credential
	suite.decode(rec, &body)
	suite.Equal(123456, body.OTP)
	suite.Equal("ada@example.com", body.MailID)
	suite.Equal(&rack, body.Rack)
}

func (suite *ServerTestSuite) TestResetPackage_WithoutBody() {
	suite.reset.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ResetPackageCommand) bool {
		return cmd.PackageID() == "P1"
	})).Return(nil).Once()

	rec := suite.do(http.MethodPost, "/api/reset-package/P1", "")

	suite.Equal(http.StatusOK, rec.Code)
	var body httpadapter.Confirmation
	suite.decode(rec, &body)
	suite.Equal("Package P1 reset successfully", body.Message)
}

func (suite *ServerTestSuite) TestResetPackage_InvalidControlKey() {
	rec := suite.do(http.MethodPost, "/api/reset-package/P1", `{"control_key":"http://"}`)

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.reset.AssertNotCalled(suite.T(), "Handle", mock.Anything, mock.Anything)
}

func (suite *ServerTestSuite) TestPickupPackage() {
	suite.Run("released", func() {
		suite.pickup.On("Handle", mock.Anything, mock.Anything).Return(true, nil).Once()

		rec := suite.do(http.MethodPost, "/api/pickup-package/P1", `{"ddt_name":"T1","rack_column":"rack_01"}`)

		suite.Equal(http.StatusOK, rec.Code)
		suite.Contains(rec.Body.String(), "rack cleared")
	})

	suite.Run("mismatched rack is a no-op", func() {
		suite.pickup.On("Handle", mock.Anything, mock.Anything).Return(false, nil).Once()

		rec := suite.do(http.MethodPost, "/api/pickup-package/P1", `{"ddt_name":"T1","rack_column":"rack_03"}`)

		suite.Equal(http.StatusOK, rec.Code)
		suite.Contains(rec.Body.String(), "nothing to clear")
	})
}

func (suite *ServerTestSuite) TestGetControlKey() {
	location, err := kernel.NewCoordinates(12.5, 77.5)
	suite.Require().NoError(err)
	suite.controlKey.On("Handle", mock.Anything, mock.Anything).
		Return(queries.GetControlKeyQueryResponse{TowerName: "T1", ControlKey: "https://ddt-t1.local", Location: location}, nil).
		Once()

	rec := suite.do(http.MethodPost, "/api/get-control-key", `{"latitude":12.5,"longitude":77.5}`)

	suite.Equal(http.StatusOK, rec.Code)
	suite.JSONEq(
		`{"status":"success","ddt_name":"T1","control_key":"https://ddt-t1.local","latitude":12.5,"longitude":77.5}`,
		rec.Body.String(),
	)
}

func (suite *ServerTestSuite) TestGetTowers() {
	location, err := kernel.NewCoordinates(1, 2)
	suite.Require().NoError(err)
	suite.towerRacks.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetTowerRacksQuery) bool {
		return q.Location() != nil && q.Location().Latitude() == 1
	})).Return([]queries.GetTowerRacksQueryResponse{{
		Name:           "T1",
		Location:       location,
		TotalRacks:     3,
		AvailableRacks: []queries.AvailableRack{{Number: 3, Name: "Rack 03", Column: "rack_03"}},
	}}, nil).Once()

	rec := suite.do(http.MethodGet, "/api/ddts?lat=1&lng=2", "")

	suite.Equal(http.StatusOK, rec.Code)
	var body []httpadapter.Tower
	suite.decode(rec, &body)
	suite.Require().Len(body, 1)
	suite.Equal(1, body[0].AvailableCount)
	suite.Equal("rack_03", body[0].AvailableRacks[0].RackColumn)
}

func (suite *ServerTestSuite) TestGetTowers_BadParameters() {
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/ddts?lat=north&lng=2", "").Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/ddts?lat=1", "").Code)
}

func (suite *ServerTestSuite) TestListPackages() {
	rack := "rack_02"
	updated := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	suite.packages.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListPackagesQuery) bool {
		return q.Phase() != nil && *q.Phase() == parcel.Delivered
	})).Return([]queries.ListPackagesQueryResponse{{
		PackageID:        "P1",
		Status:           "Delivered",
		Rack:             &rack,
		CredentialIssued: true,
		UpdatedAt:        updated,
	}}, nil).Once()

	rec := suite.do(http.MethodGet, "/api/packages?status=Delivered", "")

	suite.Equal(http.StatusOK, rec.Code)
	var body []httpadapter.PackageSummary
	suite.decode(rec, &body)
	suite.Require().Len(body, 1)
	suite.Equal("P1", body[0].PackageID)
	suite.Equal("rack_02", *body[0].RackColumn)
	suite.Equal("2026-03-01T10:00:00Z", body[0].UpdatedAt)
	suite.Nil(body[0].DestinationLatitude)
}

func (suite *ServerTestSuite) TestListPackages_UnknownStatus() {
	rec := suite.do(http.MethodGet, "/api/packages?status=Lost", "")

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.packages.AssertNotCalled(suite.T(), "Handle", mock.Anything, mock.Anything)
}

func (suite *ServerTestSuite) TestListDeliveryDrones() {
	src, err := kernel.NewCoordinates(1, 2)
	suite.Require().NoError(err)
	gripped := "P1"
	suite.deliveryDrones.On("Handle", mock.Anything, mock.Anything).Return([]queries.DroneQueryResponse{
		{ID: "D1", Source: &src, Grippers: [3]*string{nil, &gripped, nil}},
	}, nil).Once()

	rec := suite.do(http.MethodGet, "/api/delivery-drones", "")

	suite.Equal(http.StatusOK, rec.Code)
	suite.JSONEq(`[{"drone_id":"D1","source_lat":1,"source_lng":2,"destination_lat":null,
		"destination_lng":null,"gripper_1":null,"gripper_2":"P1","gripper_3":null}]`, rec.Body.String())
}

func (suite *ServerTestSuite) TestGetDrone() {
	suite.Run("found", func() {
		suite.drone.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetDroneQuery) bool {
			return q.DroneID() == "D1"
		})).Return(queries.DroneQueryResponse{ID: "D1"}, nil).Once()

		rec := suite.do(http.MethodGet, "/api/drone/D1", "")

		suite.Equal(http.StatusOK, rec.Code)
		var body httpadapter.Drone
		suite.decode(rec, &body)
		suite.Equal("D1", body.DroneID)
	})

	suite.Run("unknown", func() {
		suite.drone.On("Handle", mock.Anything, mock.Anything).
			Return(queries.DroneQueryResponse{}, errs.NewObjectNotFoundError("drone", "D9")).Once()

		suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/api/drone/D9", "").Code)
	})
}

func (suite *ServerTestSuite) TestGetDroneDestination() {
	location, err := kernel.NewCoordinates(1, 2)
	suite.Require().NoError(err)
	suite.droneDestination.On("Handle", mock.Anything, mock.Anything).Return(queries.GetDroneDestinationQueryResponse{
		DroneID:     "D1",
		PackageID:   "P1",
		Destination: &location,
		Towers: []queries.GetTowerRacksQueryResponse{{
			Name:           "T1",
			Location:       location,
			TotalRacks:     2,
			AvailableRacks: []queries.AvailableRack{{Number: 1, Name: "Rack 01", Column: "rack_01"}},
		}},
	}, nil).Once()

	rec := suite.do(http.MethodGet, "/api/drone-destination/D1", "")

	suite.Equal(http.StatusOK, rec.Code)
	var body httpadapter.DroneDestination
	suite.decode(rec, &body)
	suite.Equal("P1", body.PackageID)
	suite.InDelta(1.0, *body.DestinationLat, 1e-9)
	suite.Require().Len(body.Ddts, 1)
	suite.Equal(1, body.Ddts[0].AvailableCount)
}

func (suite *ServerTestSuite) TestGetDroneDestination_NoParcel() {
	suite.droneDestination.On("Handle", mock.Anything, mock.Anything).
		Return(queries.GetDroneDestinationQueryResponse{}, errs.NewObjectNotFoundError("destination for drone", "D2")).Once()

	rec := suite.do(http.MethodGet, "/api/drone-destination/D2", "")

	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *ServerTestSuite) TestUpdateDroneCoordinates() {
	suite.droneCoordinates.On("Handle", mock.Anything, mock.Anything).Return(nil).Once()

	rec := suite.do(http.MethodPost, "/api/drone-coordinates/D1", `{"source_lat":1.5,"source_lng":2.5}`)
	suite.Equal(http.StatusOK, rec.Code)

	rec = suite.do(http.MethodPost, "/api/drone-coordinates/D1", `{}`)
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.droneCoordinates.AssertNumberOfCalls(suite.T(), "Handle", 1)
}

func (suite *ServerTestSuite) TestValidateOtp() {
	slot, err := kernel.NewRackSlot("T1", 2)
	suite.Require().NoError(err)

	suite.Run("door opened", func() {
		suite.openRackDoor.On("Handle", mock.Anything, mock.Anything).
			Return(commands.OpenRackDoorResult{PackageID: "P1", Rack: &slot, DoorOpened: true}, nil).Once()

		rec := suite.do(http.MethodPost, "/api/validate-otp", `{"otp":"123456"}`)

		suite.Equal(http.StatusOK, rec.Code)
		var body httpadapter.ValidateOtpResponse
		suite.decode(rec, &body)
		suite.True(body.Success)
		suite.True(body.DoorOpened)
		suite.Require().NotNil(body.Rack)
		suite.Equal("rack_02", *body.Rack)
	})

	suite.Run("unknown code", func() {
		suite.openRackDoor.On("Handle", mock.Anything, mock.Anything).
			Return(commands.OpenRackDoorResult{}, commands.ErrPickupCodeIsInvalid).Once()

		rec := suite.do(http.MethodPost, "/api/validate-otp", `{"otp":"654321"}`)

		suite.Equal(http.StatusUnauthorized, rec.Code)
	})

	suite.Run("malformed code", func() {
		rec := suite.do(http.MethodPost, "/api/validate-otp", `{"otp":"12ab"}`)

		suite.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (suite *ServerTestSuite) TestAmbientRoutes() {
	rec := suite.do(http.MethodGet, "/health", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("Healthy", rec.Body.String())

	rec = suite.do(http.MethodGet, "/metrics", "")
	suite.Equal(http.StatusOK, rec.Code)

	rec = suite.do(http.MethodGet, "/swagger/doc.json", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "/api/launch-package")

	rec = suite.do(http.MethodGet, "/api/unknown", "")
	suite.Equal(http.StatusNotFound, rec.Code)
	var body httpadapter.Error
	suite.decode(rec, &body)
	suite.Equal(http.StatusNotFound, body.Code)
}
