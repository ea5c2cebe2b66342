package dronerepo

import (
	"dropoff/internal/core/domain/model/drone"
	"dropoff/internal/core/domain/model/kernel"
)

// DroneDTO flattens the three grippers into columns, as the fleet tables of
// the tower sites do.
type DroneDTO struct {
	ID                   string   `gorm:"type:varchar(64);primaryKey"`
	SourceLatitude       *float64 `gorm:"type:double precision"`
	SourceLongitude      *float64 `gorm:"type:double precision"`
	DestinationLatitude  *float64 `gorm:"type:double precision"`
	DestinationLongitude *float64 `gorm:"type:double precision"`
	Gripper1             *string  `gorm:"column:gripper_1;type:varchar(64);index"`
	Gripper2             *string  `gorm:"column:gripper_2;type:varchar(64);index"`
	Gripper3             *string  `gorm:"column:gripper_3;type:varchar(64);index"`
}

func (DroneDTO) TableName() string {
	return "drones"
}

func fromDomain(d *drone.Drone) DroneDTO {
	grippers := d.Grippers()
	dto := DroneDTO{
		ID:       d.ID(),
		Gripper1: grippers[0],
		Gripper2: grippers[1],
		Gripper3: grippers[2],
	}
	dto.SourceLatitude, dto.SourceLongitude = splitCoordinates(d.Source())
	dto.DestinationLatitude, dto.DestinationLongitude = splitCoordinates(d.Destination())
	return dto
}

func toDomain(dto DroneDTO) (*drone.Drone, error) {
	source, err := joinCoordinates(dto.SourceLatitude, dto.SourceLongitude)
	if err != nil {
		return nil, err
	}
	destination, err := joinCoordinates(dto.DestinationLatitude, dto.DestinationLongitude)
	if err != nil {
		return nil, err
	}

	return drone.RestoreDrone(dto.ID, source, destination, [drone.GripperCount]*string{
		dto.Gripper1,
		dto.Gripper2,
		dto.Gripper3,
	})
}

func splitCoordinates(c *kernel.Coordinates) (*float64, *float64) {
	if c == nil {
		return nil, nil
	}
	lat, lng := c.Latitude(), c.Longitude()
	return &lat, &lng
}

func joinCoordinates(lat, lng *float64) (*kernel.Coordinates, error) {
	if lat == nil || lng == nil {
		return nil, nil
	}
	c, err := kernel.NewCoordinates(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
