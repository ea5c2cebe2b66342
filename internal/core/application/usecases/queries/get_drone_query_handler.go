package queries

import (
	"context"
	"database/sql"
	"errors"

	"dropoff/internal/pkg/errs"

	"gorm.io/gorm"
)

const droneColumns = `
		SELECT
			d.id,
			d.source_latitude,
			d.source_longitude,
			d.destination_latitude,
			d.destination_longitude,
			d.gripper_1,
			d.gripper_2,
			d.gripper_3
		FROM drones d`

type GetDroneQueryHandler struct {
	db *gorm.DB
}

func NewGetDroneQueryHandler(db *gorm.DB) GetDroneQueryHandler {
	return GetDroneQueryHandler{db: db}
}

// Handle returns an ObjectNotFoundError for an unknown drone.
func (h GetDroneQueryHandler) Handle(ctx context.Context, query GetDroneQuery) (DroneQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return DroneQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(droneColumns+`
		WHERE d.id = ?
	`, query.DroneID()).Row()
	resp, err := scanDrone(row)
	if errors.Is(err, sql.ErrNoRows) {
		return DroneQueryResponse{}, errs.NewObjectNotFoundError("drone", query.DroneID())
	}
	return resp, err
}

type ListDeliveryDronesQueryHandler struct {
	db *gorm.DB
}

func NewListDeliveryDronesQueryHandler(db *gorm.DB) ListDeliveryDronesQueryHandler {
	return ListDeliveryDronesQueryHandler{db: db}
}

// Handle returns each assigned drone once, ordered by id.
func (h ListDeliveryDronesQueryHandler) Handle(
	ctx context.Context,
	query ListDeliveryDronesQuery,
) ([]DroneQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(droneColumns + `
		WHERE d.id IN (
			SELECT DISTINCT drone_id
			FROM parcels
			WHERE drone_id IS NOT NULL
		)
		ORDER BY d.id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drones := make([]DroneQueryResponse, 0)
	for rows.Next() {
		resp, scanErr := scanDrone(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		drones = append(drones, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drones, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDrone(s scanner) (DroneQueryResponse, error) {
	var (
		resp           DroneQueryResponse
		srcLat, srcLng sql.NullFloat64
		dstLat, dstLng sql.NullFloat64
		g1, g2, g3     sql.NullString
	)
	if err := s.Scan(&resp.ID, &srcLat, &srcLng, &dstLat, &dstLng, &g1, &g2, &g3); err != nil {
		return DroneQueryResponse{}, err
	}

	var err error
	if resp.Source, err = nullCoordinates(srcLat, srcLng); err != nil {
		return DroneQueryResponse{}, err
	}
	if resp.Destination, err = nullCoordinates(dstLat, dstLng); err != nil {
		return DroneQueryResponse{}, err
	}
	for i, g := range []sql.NullString{g1, g2, g3} {
		if g.Valid {
			packageID := g.String
			resp.Grippers[i] = &packageID
		}
	}
	return resp, nil
}
