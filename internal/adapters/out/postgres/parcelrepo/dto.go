package parcelrepo

import (
	"time"

	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/core/domain/model/parcel"
)

// ParcelDTO stores the rack as (tower, index) so the rack ledger and the
// customers table can be joined on the same columns.
type ParcelDTO struct {
	ID                   string   `gorm:"type:varchar(64);primaryKey"`
	Phase                string   `gorm:"type:varchar(16);not null;index:idx_parcels_phase_credential"`
	DroneID              *string  `gorm:"type:varchar(64)"`
	RackTower            *string  `gorm:"type:varchar(64)"`
	RackIndex            *int     `gorm:"type:int"`
	DestinationLatitude  *float64 `gorm:"type:double precision"`
	DestinationLongitude *float64 `gorm:"type:double precision"`
	CredentialIssued     bool     `gorm:"not null;default:false;index:idx_parcels_phase_credential"`
	UpdatedAt            time.Time
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	dto := ParcelDTO{
		ID:               p.ID(),
		Phase:            p.Phase().String(),
		DroneID:          p.DroneID(),
		CredentialIssued: p.CredentialIssued(),
	}

	if rack := p.Rack(); rack != nil {
		towerName, index := rack.Tower(), rack.Index()
		dto.RackTower = &towerName
		dto.RackIndex = &index
	}

	if dest := p.Destination(); dest != nil {
		lat, lng := dest.Latitude(), dest.Longitude()
		dto.DestinationLatitude = &lat
		dto.DestinationLongitude = &lng
	}

	return dto
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	phase, err := parcel.ParsePhase(dto.Phase)
	if err != nil {
		return nil, err
	}

	var rack *kernel.RackSlot
	if dto.RackTower != nil && dto.RackIndex != nil {
		slot, slotErr := kernel.NewRackSlot(*dto.RackTower, *dto.RackIndex)
		if slotErr != nil {
			return nil, slotErr
		}
		rack = &slot
	}

	var destination *kernel.Coordinates
	if dto.DestinationLatitude != nil && dto.DestinationLongitude != nil {
		c, locErr := kernel.NewCoordinates(*dto.DestinationLatitude, *dto.DestinationLongitude)
		if locErr != nil {
			return nil, locErr
		}
		destination = &c
	}

	return parcel.RestoreParcel(dto.ID, phase, dto.DroneID, rack, destination, dto.CredentialIssued)
}
