package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface lists the operations of api/openapi.yaml with their
// parameters already bound.
type ServerInterface interface {
	// (POST /api/launch-package)
	LaunchPackage(ctx echo.Context) error
	// (GET /api/package-status/{package_id})
	GetPackageStatus(ctx echo.Context, packageID string) error
	// (GET /api/get-otp-data/{package_id})
	GetOtpData(ctx echo.Context, packageID string) error
	// (POST /api/reset-package/{package_id})
	ResetPackage(ctx echo.Context, packageID string) error
	// (POST /api/pickup-package/{package_id})
	PickupPackage(ctx echo.Context, packageID string) error
	// (POST /api/get-control-key)
	GetControlKey(ctx echo.Context) error
	// (GET /api/ddts)
	GetTowers(ctx echo.Context, params GetTowersParams) error
	// (POST /api/drone-coordinates/{drone_id})
	UpdateDroneCoordinates(ctx echo.Context, droneID string) error
	// (POST /api/validate-otp)
	ValidateOtp(ctx echo.Context) error
	// (GET /api/packages)
	ListPackages(ctx echo.Context, params ListPackagesParams) error
	// (GET /api/delivery-drones)
	ListDeliveryDrones(ctx echo.Context) error
	// (GET /api/drone/{drone_id})
	GetDrone(ctx echo.Context, droneID string) error
	// (GET /api/drone-destination/{drone_id})
	GetDroneDestination(ctx echo.Context, droneID string) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) LaunchPackage(ctx echo.Context) error {
	return w.Handler.LaunchPackage(ctx)
}

func (w *ServerInterfaceWrapper) GetPackageStatus(ctx echo.Context) error {
	packageID, err := bindPathParameter(ctx, "package_id")
	if err != nil {
		return err
	}
	return w.Handler.GetPackageStatus(ctx, packageID)
}

func (w *ServerInterfaceWrapper) GetOtpData(ctx echo.Context) error {
	packageID, err := bindPathParameter(ctx, "package_id")
	if err != nil {
		return err
	}
	return w.Handler.GetOtpData(ctx, packageID)
}

func (w *ServerInterfaceWrapper) ResetPackage(ctx echo.Context) error {
	packageID, err := bindPathParameter(ctx, "package_id")
	if err != nil {
		return err
	}
	return w.Handler.ResetPackage(ctx, packageID)
}

func (w *ServerInterfaceWrapper) PickupPackage(ctx echo.Context) error {
	packageID, err := bindPathParameter(ctx, "package_id")
	if err != nil {
		return err
	}
	return w.Handler.PickupPackage(ctx, packageID)
}

func (w *ServerInterfaceWrapper) GetControlKey(ctx echo.Context) error {
	return w.Handler.GetControlKey(ctx)
}

func (w *ServerInterfaceWrapper) GetTowers(ctx echo.Context) error {
	var params GetTowersParams

	if err := runtime.BindQueryParameter("form", true, false, "lat", ctx.QueryParams(), &params.Lat); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter lat: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "lng", ctx.QueryParams(), &params.Lng); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter lng: %s", err))
	}

	return w.Handler.GetTowers(ctx, params)
}

func (w *ServerInterfaceWrapper) UpdateDroneCoordinates(ctx echo.Context) error {
	droneID, err := bindPathParameter(ctx, "drone_id")
	if err != nil {
		return err
	}
	return w.Handler.UpdateDroneCoordinates(ctx, droneID)
}

func (w *ServerInterfaceWrapper) ValidateOtp(ctx echo.Context) error {
	return w.Handler.ValidateOtp(ctx)
}

func (w *ServerInterfaceWrapper) ListPackages(ctx echo.Context) error {
	var params ListPackagesParams

	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	return w.Handler.ListPackages(ctx, params)
}

func (w *ServerInterfaceWrapper) ListDeliveryDrones(ctx echo.Context) error {
	return w.Handler.ListDeliveryDrones(ctx)
}

func (w *ServerInterfaceWrapper) GetDrone(ctx echo.Context) error {
	droneID, err := bindPathParameter(ctx, "drone_id")
	if err != nil {
		return err
	}
	return w.Handler.GetDrone(ctx, droneID)
}

func (w *ServerInterfaceWrapper) GetDroneDestination(ctx echo.Context) error {
	droneID, err := bindPathParameter(ctx, "drone_id")
	if err != nil {
		return err
	}
	return w.Handler.GetDroneDestination(ctx, droneID)
}

// RegisterHandlers adds every route of api/openapi.yaml to the router.
func RegisterHandlers(router *echo.Echo, si ServerInterface) {
	w := ServerInterfaceWrapper{Handler: si}

	router.POST("/api/launch-package", w.LaunchPackage)
	router.GET("/api/package-status/:package_id", w.GetPackageStatus)
	router.GET("/api/get-otp-data/:package_id", w.GetOtpData)
	router.POST("/api/reset-package/:package_id", w.ResetPackage)
	router.POST("/api/pickup-package/:package_id", w.PickupPackage)
	router.POST("/api/get-control-key", w.GetControlKey)
	router.GET("/api/ddts", w.GetTowers)
	router.POST("/api/drone-coordinates/:drone_id", w.UpdateDroneCoordinates)
	router.POST("/api/validate-otp", w.ValidateOtp)
	router.GET("/api/packages", w.ListPackages)
	router.GET("/api/delivery-drones", w.ListDeliveryDrones)
	router.GET("/api/drone/:drone_id", w.GetDrone)
	router.GET("/api/drone-destination/:drone_id", w.GetDroneDestination)
}

func bindPathParameter(ctx echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return value, nil
}
