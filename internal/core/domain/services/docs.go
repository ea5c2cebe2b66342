// Package services provides domain services for work that spans several
// aggregates of the dropoff domain.
//
// The package includes:
//   - CredentialGenerator: issues one-time pickup codes to customers
//   - GripperReleaser: frees the drone grippers that still reference a package
package services
