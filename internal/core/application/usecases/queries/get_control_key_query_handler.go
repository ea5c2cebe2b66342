package queries

import (
	"context"
	"database/sql"
	"errors"

	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/core/domain/model/tower"
	"dropoff/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetControlKeyQueryHandler struct {
	db *gorm.DB
}

func NewGetControlKeyQueryHandler(db *gorm.DB) GetControlKeyQueryHandler {
	return GetControlKeyQueryHandler{db: db}
}

// Handle matches the coordinates within kernel.CoordinatesTolerance and
// normalises the stored key into a full URL.
func (h GetControlKeyQueryHandler) Handle(
	ctx context.Context,
	query GetControlKeyQuery,
) (GetControlKeyQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetControlKeyQueryResponse{}, err
	}

	location := query.Location()

	var name, controlKey string
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			name,
			control_key
		FROM towers
		WHERE abs(latitude - ?) < ? AND abs(longitude - ?) < ?
		ORDER BY name
		LIMIT 1
	`,
		location.Latitude(), kernel.CoordinatesTolerance,
		location.Longitude(), kernel.CoordinatesTolerance,
	).Row()
	if err := row.Scan(&name, &controlKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetControlKeyQueryResponse{}, errs.NewObjectNotFoundError("control key", location.String())
		}
		return GetControlKeyQueryResponse{}, err
	}

	endpoint, err := tower.NewControlEndpoint(controlKey)
	if err != nil {
		return GetControlKeyQueryResponse{}, errs.NewObjectNotFoundErrorWithCause("control key", location.String(), err)
	}

	return GetControlKeyQueryResponse{
		TowerName:  name,
		ControlKey: endpoint.String(),
		Location:   location,
	}, nil
}
