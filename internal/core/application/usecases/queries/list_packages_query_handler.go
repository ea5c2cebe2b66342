package queries

import (
	"context"
	"database/sql"
	"time"

	"dropoff/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type ListPackagesQueryHandler struct {
	db *gorm.DB
}

func NewListPackagesQueryHandler(db *gorm.DB) ListPackagesQueryHandler {
	return ListPackagesQueryHandler{db: db}
}

// Handle returns the most recently updated parcels first.
func (h ListPackagesQueryHandler) Handle(
	ctx context.Context,
	query ListPackagesQuery,
) ([]ListPackagesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText := `
		SELECT
			id,
			phase,
			drone_id,
			rack_tower,
			rack_index,
			destination_latitude,
			destination_longitude,
			credential_issued,
			updated_at
		FROM parcels`
	args := make([]any, 0, 1)
	if phase := query.Phase(); phase != nil {
		sqlText += `
		WHERE phase = ?`
		args = append(args, phase.String())
	}
	sqlText += `
		ORDER BY updated_at DESC, id`

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packages := make([]ListPackagesQueryResponse, 0)
	for rows.Next() {
		var (
			resp      ListPackagesQueryResponse
			droneID   sql.NullString
			rackTower sql.NullString
			rackIndex sql.NullInt64
			lat, lng  sql.NullFloat64
			updatedAt time.Time
		)
		if err = rows.Scan(
			&resp.PackageID, &resp.Status, &droneID, &rackTower, &rackIndex,
			&lat, &lng, &resp.CredentialIssued, &updatedAt,
		); err != nil {
			return nil, err
		}

		if droneID.Valid {
			resp.DroneID = &droneID.String
		}
		if rackTower.Valid {
			resp.Tower = &rackTower.String
		}
		if rackIndex.Valid {
			column := kernel.RackColumn(int(rackIndex.Int64))
			resp.Rack = &column
		}
		resp.Destination, err = nullCoordinates(lat, lng)
		if err != nil {
			return nil, err
		}
		resp.UpdatedAt = updatedAt
		packages = append(packages, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return packages, nil
}

func nullCoordinates(lat, lng sql.NullFloat64) (*kernel.Coordinates, error) {
	if !lat.Valid || !lng.Valid {
		return nil, nil
	}
	c, err := kernel.NewCoordinates(lat.Float64, lng.Float64)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
