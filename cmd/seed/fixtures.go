package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"dropoff/internal/adapters/out/postgres/pgerr"
	"dropoff/internal/core/application/usecases/commands"
	"dropoff/internal/core/domain/model/customer"
	"dropoff/internal/core/domain/model/drone"
	"dropoff/internal/core/domain/model/kernel"
	"dropoff/internal/core/domain/model/parcel"
	"dropoff/internal/core/domain/model/tower"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

type point struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

func (p *point) coordinates() (*kernel.Coordinates, error) {
	if p == nil {
		return nil, nil
	}
	c, err := kernel.NewCoordinates(p.Latitude, p.Longitude)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

type towerFixture struct {
	Name       string  `yaml:"name"`
	Latitude   float64 `yaml:"latitude"`
	Longitude  float64 `yaml:"longitude"`
	ControlKey string  `yaml:"control_key"`
	TotalRacks int     `yaml:"total_racks"`
}

type parcelFixture struct {
	ID          string  `yaml:"id"`
	DroneID     *string `yaml:"drone_id"`
	Destination *point  `yaml:"destination"`
}

type customerFixture struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	MailID      string `yaml:"mail_id"`
	PackageID   string `yaml:"package_id"`
	ItemDetails string `yaml:"item_details"`
}

type droneFixture struct {
	ID          string   `yaml:"id"`
	Source      *point   `yaml:"source"`
	Destination *point   `yaml:"destination"`
	Grippers    []string `yaml:"grippers"`
}

// Fixtures is the seed file layout.
type Fixtures struct {
	Towers    []towerFixture    `yaml:"towers"`
	Parcels   []parcelFixture   `yaml:"parcels"`
	Customers []customerFixture `yaml:"customers"`
	Drones    []droneFixture    `yaml:"drones"`
}

func ParseFixtures(r io.Reader) (Fixtures, error) {
	var f Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Fixtures{}, fmt.Errorf("parse fixtures: %w", err)
	}
	return f, nil
}

// Aggregates are the fixtures converted into domain objects.
type Aggregates struct {
	Towers    []*tower.Tower
	Parcels   []*parcel.Parcel
	Customers []*customer.Customer
	Drones    []*drone.Drone
}

// Build validates every fixture through the domain constructors and reports
// all invalid entries at once.
func (f Fixtures) Build() (Aggregates, error) {
	var (
		out  Aggregates
		errs []error
	)

	for _, t := range f.Towers {
		location, err := kernel.NewCoordinates(t.Latitude, t.Longitude)
		if err != nil {
			errs = append(errs, fmt.Errorf("tower %q: %w", t.Name, err))
			continue
		}
		agg, err := tower.NewTower(t.Name, location, t.ControlKey, t.TotalRacks)
		if err != nil {
			errs = append(errs, fmt.Errorf("tower %q: %w", t.Name, err))
			continue
		}
		out.Towers = append(out.Towers, agg)
	}

	for _, p := range f.Parcels {
		destination, err := p.Destination.coordinates()
		if err == nil {
			var agg *parcel.Parcel
			if agg, err = parcel.NewParcel(p.ID, p.DroneID, destination); err == nil {
				out.Parcels = append(out.Parcels, agg)
			}
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("parcel %q: %w", p.ID, err))
		}
	}

	for _, c := range f.Customers {
		agg, err := customer.NewCustomer(c.ID, c.Name, c.MailID, c.PackageID, c.ItemDetails)
		if err != nil {
			errs = append(errs, fmt.Errorf("customer %q: %w", c.ID, err))
			continue
		}
		out.Customers = append(out.Customers, agg)
	}

	for _, d := range f.Drones {
		agg, err := d.build()
		if err != nil {
			errs = append(errs, fmt.Errorf("drone %q: %w", d.ID, err))
			continue
		}
		out.Drones = append(out.Drones, agg)
	}

	return out, errors.Join(errs...)
}

func (d droneFixture) build() (*drone.Drone, error) {
	if len(d.Grippers) > drone.GripperCount {
		return nil, fmt.Errorf("%d grippers listed, a drone has %d", len(d.Grippers), drone.GripperCount)
	}

	agg, err := drone.NewDrone(d.ID)
	if err != nil {
		return nil, err
	}

	source, err := d.Source.coordinates()
	if err != nil {
		return nil, err
	}
	destination, err := d.Destination.coordinates()
	if err != nil {
		return nil, err
	}
	if source != nil {
		if err = agg.SetSource(source); err != nil {
			return nil, err
		}
	}
	if destination != nil {
		if err = agg.SetDestination(destination); err != nil {
			return nil, err
		}
	}

	for i, packageID := range d.Grippers {
		if packageID == "" {
			continue
		}
		if err = agg.Load(i+1, packageID); err != nil {
			return nil, err
		}
	}
	return agg, nil
}

type SeedReport struct {
	Added   int
	Skipped int
}

// Seed adds every aggregate outside a transaction, so one duplicate does not
// undo the rest. Records that already exist are skipped.
func Seed(ctx context.Context, uow commands.UoW, aggs Aggregates, logger *slog.Logger) (SeedReport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var report SeedReport

	add := func(kind, id string, err error) error {
		switch {
		case err == nil:
			report.Added++
			return nil
		case errors.Is(err, pgerr.ErrDuplicate):
			report.Skipped++
			logger.Info("already present, skipped", "kind", kind, "id", id)
			return nil
		default:
			return fmt.Errorf("add %s %q: %w", kind, id, err)
		}
	}

	for _, t := range aggs.Towers {
		if err := add("tower", t.Name(), uow.TowerRepository().Add(ctx, t)); err != nil {
			return report, err
		}
	}
	for _, p := range aggs.Parcels {
		if err := add("parcel", p.ID(), uow.ParcelRepository().Add(ctx, p)); err != nil {
			return report, err
		}
	}
	for _, c := range aggs.Customers {
		if err := add("customer", c.ID(), uow.CustomerRepository().Add(ctx, c)); err != nil {
			return report, err
		}
	}
	for _, d := range aggs.Drones {
		if err := add("drone", d.ID(), uow.DroneRepository().Add(ctx, d)); err != nil {
			return report, err
		}
	}

	return report, nil
}
