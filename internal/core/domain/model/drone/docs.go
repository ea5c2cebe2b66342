// Package drone models the delivery drones that carry packages to towers.
// A drone has three grippers, each holding at most one package, plus the
// source and destination coordinates of its current flight.
package drone
