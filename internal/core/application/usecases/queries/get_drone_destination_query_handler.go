package queries

import (
	"context"
	"database/sql"
	"errors"

	"dropoff/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetDroneDestinationQueryHandler struct {
	db     *gorm.DB
	towers GetTowerRacksQueryHandler
}

func NewGetDroneDestinationQueryHandler(db *gorm.DB) GetDroneDestinationQueryHandler {
	return GetDroneDestinationQueryHandler{db: db, towers: NewGetTowerRacksQueryHandler(db)}
}

// Handle returns an ObjectNotFoundError when no parcel is assigned to the
// drone. With several assigned parcels the lowest package id wins.
func (h GetDroneDestinationQueryHandler) Handle(
	ctx context.Context,
	query GetDroneDestinationQuery,
) (GetDroneDestinationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDroneDestinationQueryResponse{}, err
	}

	var (
		packageID string
		lat, lng  sql.NullFloat64
	)
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			destination_latitude,
			destination_longitude
		FROM parcels
		WHERE drone_id = ?
		ORDER BY id
		LIMIT 1
	`, query.DroneID()).Row()
	if err := row.Scan(&packageID, &lat, &lng); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetDroneDestinationQueryResponse{}, errs.NewObjectNotFoundError("destination for drone", query.DroneID())
		}
		return GetDroneDestinationQueryResponse{}, err
	}

	destination, err := nullCoordinates(lat, lng)
	if err != nil {
		return GetDroneDestinationQueryResponse{}, err
	}

	response := GetDroneDestinationQueryResponse{
		DroneID:     query.DroneID(),
		PackageID:   packageID,
		Destination: destination,
		Towers:      make([]GetTowerRacksQueryResponse, 0),
	}
	if destination == nil {
		return response, nil
	}

	lt, lg := destination.Latitude(), destination.Longitude()
	towersQuery, err := NewGetTowerRacksQuery(&lt, &lg)
	if err != nil {
		return GetDroneDestinationQueryResponse{}, err
	}
	response.Towers, err = h.towers.Handle(ctx, towersQuery)
	if err != nil {
		return GetDroneDestinationQueryResponse{}, err
	}
	return response, nil
}
