package http

import (
	"errors"
	"net/http"

	"dropoff/internal/adapters/out/postgres/pgerr"
	"dropoff/internal/core/application/usecases/commands"
	"dropoff/internal/core/application/usecases/queries"
	"dropoff/internal/core/domain/model/parcel"
	"dropoff/internal/core/domain/model/tower"
	"dropoff/internal/core/ports"
	"dropoff/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var (
	badRequestErrors = []error{
		errs.ErrValueIsRequired,
		errs.ErrValueIsInvalid,
		errs.ErrValueIsOutOfRange,
		commands.ErrTowerMismatch,
		commands.ErrNoCoordinatesGiven,
		commands.ErrLaunchPackageCommandIsNotConstructed,
		commands.ErrResetPackageCommandIsNotConstructed,
		commands.ErrPickupPackageCommandIsNotConstructed,
		commands.ErrOpenRackDoorCommandIsNotConstructed,
		commands.ErrUpdateDroneCoordinatesCommandIsNotConstructed,
		queries.ErrGetPackageStatusQueryIsNotConstructed,
		queries.ErrGetCredentialQueryIsNotConstructed,
		queries.ErrGetControlKeyQueryIsNotConstructed,
		queries.ErrGetTowerRacksQueryIsNotConstructed,
	}
	notFoundErrors = []error{
		errs.ErrObjectNotFound,
		commands.ErrControlEndpointNotFound,
		commands.ErrCustomerNotFound,
		queries.ErrCredentialNotIssued,
	}
	conflictErrors = []error{
		tower.ErrRackIsOccupied,
		commands.ErrDeliveryInProgress,
		parcel.ErrPhaseTransitionIsNotAllowed,
		errs.ErrVersionIsInvalid,
		pgerr.ErrDuplicate,
	}
	badGatewayErrors = []error{
		commands.ErrRemoteLaunchFailed,
		ports.ErrRemoteTransport,
	}
)

// StatusCode maps a use case error onto the HTTP status it is answered with.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	// Conflicts are checked first: phase violations also carry ErrValueIsInvalid.
	case isAny(err, conflictErrors):
		return http.StatusConflict
	case errors.Is(err, commands.ErrPickupCodeIsInvalid):
		return http.StatusUnauthorized
	case isAny(err, notFoundErrors):
		return http.StatusNotFound
	case isAny(err, badRequestErrors):
		return http.StatusBadRequest
	case isAny(err, badGatewayErrors):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// errorHandler renders echo's own errors (unknown route, wrong method, binding)
// in the same {code, message} shape as the handlers do.
func errorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		} else {
			e.Logger.Error(err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, Error{Code: code, Message: message})
		}
		if err != nil {
			e.Logger.Error(err)
		}
	}
}
