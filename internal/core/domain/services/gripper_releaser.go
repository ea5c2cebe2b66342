package services

import (
	"dropoff/internal/core/domain/model/drone"
)

// GripperReleaser clears every gripper that still holds a delivered or failed
// package.
type GripperReleaser struct{}

func NewGripperReleaser() GripperReleaser {
	return GripperReleaser{}
}

// Release returns the drones that changed and must be persisted.
func (GripperReleaser) Release(drones []*drone.Drone, packageID string) []*drone.Drone {
	changed := make([]*drone.Drone, 0, len(drones))
	for _, d := range drones {
		if d == nil {
			continue
		}
		if d.ReleasePackage(packageID) > 0 {
			changed = append(changed, d)
		}
	}
	return changed
}
