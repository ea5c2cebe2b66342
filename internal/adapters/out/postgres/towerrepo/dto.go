// Package towerrepo maps tower aggregates onto the towers and tower_racks
// tables. Rack occupancy is read here but only written by the rack ledger.
package towerrepo

import (
	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/core/domain/model/tower"
)

type TowerDTO struct {
	Name       string    `gorm:"type:varchar(64);primaryKey"`
	Latitude   float64   `gorm:"type:double precision;not null;index:idx_towers_location"`
	Longitude  float64   `gorm:"type:double precision;not null;index:idx_towers_location"`
	ControlKey string    `gorm:"type:varchar(512);not null"`
	TotalRacks int       `gorm:"type:int;not null"`
	Racks      []RackDTO `gorm:"foreignKey:TowerName;references:Name;constraint:OnDelete:CASCADE"`
}

func (TowerDTO) TableName() string {
	return "towers"
}

// RackDTO is one row per physical rack. A NULL package_id means the rack is empty.
type RackDTO struct {
	TowerName string  `gorm:"type:varchar(64);primaryKey"`
	RackIndex int     `gorm:"type:int;primaryKey;autoIncrement:false"`
	PackageID *string `gorm:"type:varchar(64);index"`
}

func (RackDTO) TableName() string {
	return "tower_racks"
}

func fromDomain(t *tower.Tower) TowerDTO {
	racks := make([]RackDTO, 0, t.TotalRacks())
	for _, r := range t.Racks() {
		racks = append(racks, RackDTO{
			TowerName: t.Name(),
			RackIndex: r.Index(),
			PackageID: r.Occupant(),
		})
	}

	return TowerDTO{
		Name:       t.Name(),
		Latitude:   t.Location().Latitude(),
		Longitude:  t.Location().Longitude(),
		ControlKey: t.Endpoint().String(),
		TotalRacks: t.TotalRacks(),
		Racks:      racks,
	}
}

func toDomain(dto TowerDTO) (*tower.Tower, error) {
	location, err := kernel.NewCoordinates(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	racks := make([]*tower.Rack, 0, len(dto.Racks))
	for _, r := range dto.Racks {
		rack, rackErr := tower.RestoreRack(r.RackIndex, r.PackageID)
		if rackErr != nil {
			return nil, rackErr
		}
		racks = append(racks, rack)
	}

	return tower.RestoreTower(dto.Name, location, dto.ControlKey, racks)
}
