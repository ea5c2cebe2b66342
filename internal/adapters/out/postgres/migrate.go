package postgres

import (
	"dropoff/internal/adapters/out/postgres/customerrepo"
	"dropoff/internal/adapters/out/postgres/dronerepo"
	"dropoff/internal/adapters/out/postgres/parcelrepo"
	"dropoff/internal/adapters/out/postgres/towerrepo"

	"gorm.io/gorm"
)

// Tables lists every table owned by the service, in truncation-safe order.
var Tables = []string{"customers", "parcels", "drones", "tower_racks", "towers"}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&towerrepo.TowerDTO{},
		&towerrepo.RackDTO{},
		&parcelrepo.ParcelDTO{},
		&customerrepo.CustomerDTO{},
		&dronerepo.DroneDTO{},
	)
}
