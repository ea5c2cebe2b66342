// Package kernel holds the value objects shared by every aggregate of the
// dropoff domain: geographic coordinates, rack slot references and delivery
// cycle identifiers.
//
// All types are immutable and must be built through their constructors; the
// zero value of each fails Validate.
package kernel
