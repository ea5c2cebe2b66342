package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"dropoff/internal/core/application/usecases/commands"
	"dropoff/internal/core/application/usecases/queries"
	"dropoff/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type (
	LaunchPackageHandler interface {
		Handle(ctx context.Context, cmd commands.LaunchPackageCommand) (commands.LaunchResult, error)
	}
	ResetPackageHandler interface {
		Handle(ctx context.Context, cmd commands.ResetPackageCommand) error
	}
	PickupPackageHandler interface {
		Handle(ctx context.Context, cmd commands.PickupPackageCommand) (bool, error)
	}
	UpdateDroneCoordinatesHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateDroneCoordinatesCommand) error
	}
	OpenRackDoorHandler interface {
		Handle(ctx context.Context, cmd commands.OpenRackDoorCommand) (commands.OpenRackDoorResult, error)
	}
	GetPackageStatusHandler interface {
		Handle(ctx context.Context, query queries.GetPackageStatusQuery) (queries.GetPackageStatusQueryResponse, error)
	}
	GetCredentialHandler interface {
		Handle(ctx context.Context, query queries.GetCredentialQuery) (queries.GetCredentialQueryResponse, error)
	}
	GetControlKeyHandler interface {
		Handle(ctx context.Context, query queries.GetControlKeyQuery) (queries.GetControlKeyQueryResponse, error)
	}
	GetTowerRacksHandler interface {
		Handle(ctx context.Context, query queries.GetTowerRacksQuery) ([]queries.GetTowerRacksQueryResponse, error)
	}
	ListPackagesHandler interface {
		Handle(ctx context.Context, query queries.ListPackagesQuery) ([]queries.ListPackagesQueryResponse, error)
	}
	ListDeliveryDronesHandler interface {
		Handle(ctx context.Context, query queries.ListDeliveryDronesQuery) ([]queries.DroneQueryResponse, error)
	}
	GetDroneHandler interface {
		Handle(ctx context.Context, query queries.GetDroneQuery) (queries.DroneQueryResponse, error)
	}
	GetDroneDestinationHandler interface {
		Handle(ctx context.Context, query queries.GetDroneDestinationQuery) (queries.GetDroneDestinationQueryResponse, error)
	}
)

// Handlers groups the use cases the HTTP surface dispatches to.
type Handlers struct {
	// Command handlers
	Launch           LaunchPackageHandler
	Reset            ResetPackageHandler
	Pickup           PickupPackageHandler
	DroneCoordinates UpdateDroneCoordinatesHandler
	OpenRackDoor     OpenRackDoorHandler

	// Query handlers
	PackageStatus GetPackageStatusHandler
	Credential    GetCredentialHandler
	ControlKey    GetControlKeyHandler
	TowerRacks    GetTowerRacksHandler

	Packages         ListPackagesHandler
	DeliveryDrones   ListDeliveryDronesHandler
	Drone            GetDroneHandler
	DroneDestination GetDroneDestinationHandler
}

// Server implements ServerInterface. It translates HTTP bodies into commands
// and queries and their results back into JSON.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{h: handlers, logger: logger.With("component", "http")}
}

// LaunchPackage handles POST /api/launch-package.
func (s *Server) LaunchPackage(ctx echo.Context) error {
	var body LaunchRequest
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewLaunchPackageCommand(
		body.PackageID, body.DdtName, body.RackColumn, body.Latitude, body.Longitude,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.Launch.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, LaunchResponse{
		Status:       "success",
		Message:      fmt.Sprintf("Package %s launched successfully", result.PackageID),
		PackageID:    result.PackageID,
		ControlKey:   result.ControlKey.String(),
		SelectedRack: result.SelectedRack.Column(),
	})
}

// GetPackageStatus handles GET /api/package-status/:package_id.
func (s *Server) GetPackageStatus(ctx echo.Context, packageID string) error {
	query, err := queries.NewGetPackageStatusQuery(packageID)
	if err != nil {
		return s.fail(ctx, err)
	}

	status, err := s.h.PackageStatus.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PackageStatus{
		PackageID:    status.PackageID,
		Status:       status.Status,
		EmailSent:    status.EmailSent,
		SelectedRack: status.SelectedRack,
		RemoteStatus: status.RemoteStatus,
	})
}

// GetOtpData handles GET /api/get-otp-data/:package_id.
func (s *Server) GetOtpData(ctx echo.Context, packageID string) error {
	query, err := queries.NewGetCredentialQuery(packageID)
	if err != nil {
		return s.fail(ctx, err)
	}

	credential, err := s.h.Credential.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Credential{
		Status:    "success",
		PackageID: credential.PackageID,
		MailID:    credential.MailID,
		OTP:       credential.OTP,
		Rack:      credential.Rack,
	})
}

// ResetPackage handles POST /api/reset-package/:package_id. The body is optional.
func (s *Server) ResetPackage(ctx echo.Context, packageID string) error {
	var body ResetRequest
	if ctx.Request().ContentLength != 0 {
		if err := ctx.Bind(&body); err != nil {
			return s.badRequest(ctx, "Invalid request body")
		}
	}

	cmd, err := commands.NewResetPackageCommand(packageID, body.ControlKey)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.h.Reset.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Confirmation{
		Status:  "success",
		Message: fmt.Sprintf("Package %s reset successfully", cmd.PackageID()),
	})
}

// PickupPackage handles POST /api/pickup-package/:package_id. A rack that does
// not hold the package is left alone and still answers 200.
func (s *Server) PickupPackage(ctx echo.Context, packageID string) error {
	var body PickupRequest
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewPickupPackageCommand(packageID, body.DdtName, body.RackColumn)
	if err != nil {
		return s.fail(ctx, err)
	}

	released, err := s.h.Pickup.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	message := fmt.Sprintf("Package %s picked up successfully, rack cleared", cmd.PackageID())
	if !released {
		message = fmt.Sprintf("Package %s is not in %s, nothing to clear", cmd.PackageID(), cmd.Rack())
	}
	return ctx.JSON(http.StatusOK, Confirmation{Status: "success", Message: message})
}

// GetControlKey handles POST /api/get-control-key.
func (s *Server) GetControlKey(ctx echo.Context) error {
	var body Location
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	query, err := queries.NewGetControlKeyQuery(body.Latitude, body.Longitude)
	if err != nil {
		return s.fail(ctx, err)
	}

	key, err := s.h.ControlKey.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ControlKey{
		Status:     "success",
		DdtName:    key.TowerName,
		ControlKey: key.ControlKey,
		Latitude:   key.Location.Latitude(),
		Longitude:  key.Location.Longitude(),
	})
}

// GetTowers handles GET /api/ddts. Without coordinates every tower is listed.
func (s *Server) GetTowers(ctx echo.Context, params GetTowersParams) error {
	query, err := queries.NewGetTowerRacksQuery(params.Lat, params.Lng)
	if err != nil {
		return s.fail(ctx, err)
	}

	towers, err := s.h.TowerRacks.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, towersBody(towers))
}

func towersBody(towers []queries.GetTowerRacksQueryResponse) []Tower {
	response := make([]Tower, len(towers))
	for i, t := range towers {
		racks := make([]Rack, len(t.AvailableRacks))
		for j, r := range t.AvailableRacks {
			racks[j] = Rack{RackNumber: r.Number, RackName: r.Name, RackColumn: r.Column}
		}

		response[i] = Tower{
			Name:           t.Name,
			Latitude:       t.Location.Latitude(),
			Longitude:      t.Location.Longitude(),
			TotalRacks:     t.TotalRacks,
			AvailableRacks: racks,
			AvailableCount: t.AvailableCount(),
		}
	}
	return response
}

// ListPackages handles GET /api/packages.
func (s *Server) ListPackages(ctx echo.Context, params ListPackagesParams) error {
	query, err := queries.NewListPackagesQuery(params.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	packages, err := s.h.Packages.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]PackageSummary, len(packages))
	for i, p := range packages {
		response[i] = PackageSummary{
			PackageID:        p.PackageID,
			Status:           p.Status,
			DroneID:          p.DroneID,
			DdtName:          p.Tower,
			RackColumn:       p.Rack,
			CredentialIssued: p.CredentialIssued,
			UpdatedAt:        p.UpdatedAt.UTC().Format(time.RFC3339),
		}
		response[i].DestinationLatitude, response[i].DestinationLongitude = splitCoordinates(p.Destination)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListDeliveryDrones handles GET /api/delivery-drones.
func (s *Server) ListDeliveryDrones(ctx echo.Context) error {
	drones, err := s.h.DeliveryDrones.Handle(ctx.Request().Context(), queries.NewListDeliveryDronesQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]Drone, len(drones))
	for i, d := range drones {
		response[i] = droneBody(d)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetDrone handles GET /api/drone/:drone_id.
func (s *Server) GetDrone(ctx echo.Context, droneID string) error {
	query, err := queries.NewGetDroneQuery(droneID)
	if err != nil {
		return s.fail(ctx, err)
	}

	d, err := s.h.Drone.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, droneBody(d))
}

// GetDroneDestination handles GET /api/drone-destination/:drone_id.
func (s *Server) GetDroneDestination(ctx echo.Context, droneID string) error {
	query, err := queries.NewGetDroneDestinationQuery(droneID)
	if err != nil {
		return s.fail(ctx, err)
	}

	dest, err := s.h.DroneDestination.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := DroneDestination{
		DroneID:   dest.DroneID,
		PackageID: dest.PackageID,
		Ddts:      towersBody(dest.Towers),
	}
	response.DestinationLat, response.DestinationLng = splitCoordinates(dest.Destination)
	return ctx.JSON(http.StatusOK, response)
}

func droneBody(d queries.DroneQueryResponse) Drone {
	body := Drone{
		DroneID:  d.ID,
		Gripper1: d.Grippers[0],
		Gripper2: d.Grippers[1],
		Gripper3: d.Grippers[2],
	}
	body.SourceLat, body.SourceLng = splitCoordinates(d.Source)
	body.DestinationLat, body.DestinationLng = splitCoordinates(d.Destination)
	return body
}

func splitCoordinates(c *kernel.Coordinates) (*float64, *float64) {
	if c == nil {
		return nil, nil
	}
	lat, lng := c.Latitude(), c.Longitude()
	return &lat, &lng
}

// UpdateDroneCoordinates handles POST /api/drone-coordinates/:drone_id.
func (s *Server) UpdateDroneCoordinates(ctx echo.Context, droneID string) error {
	var body DroneCoordinatesRequest
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateDroneCoordinatesCommand(
		droneID,
		commands.CoordinatesInput{Latitude: body.SourceLat, Longitude: body.SourceLng},
		commands.CoordinatesInput{Latitude: body.DestinationLat, Longitude: body.DestinationLng},
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.h.DroneCoordinates.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Confirmation{
		Status:  "success",
		Message: fmt.Sprintf("Coordinates of drone %s updated", droneID),
	})
}

// ValidateOtp handles POST /api/validate-otp and opens the rack door on success.
func (s *Server) ValidateOtp(ctx echo.Context) error {
	var body ValidateOtpRequest
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewOpenRackDoorCommand(body.OTP)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.OpenRackDoor.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := ValidateOtpResponse{
		Success:    true,
		DoorOpened: result.DoorOpened,
		PackageID:  result.PackageID,
	}
	switch {
	case result.Rack == nil:
		response.Message = "Pickup code accepted but no rack is assigned. Please contact support."
	case result.DoorOpened:
		response.Message = "Pickup code accepted. Door is opening!"
	default:
		response.Message = "Pickup code accepted but the door did not open. Please contact support."
	}
	if result.Rack != nil {
		column := result.Rack.Column()
		response.Rack = &column
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

// fail writes the error body for err; unexpected failures are logged and
// answered with a generic message.
func (s *Server) fail(ctx echo.Context, err error) error {
	code := StatusCode(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		message = http.StatusText(code)
	}
	return ctx.JSON(code, Error{Code: code, Message: message})
}
