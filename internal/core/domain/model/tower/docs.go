// Package tower models drone delivery towers (DDTs): the physical structures
// that receive packages from drones and hold them in lockable racks until the
// customer collects them.
//
// The package includes:
//   - Tower: the aggregate root carrying the tower's position, its remote
//     control endpoint and its racks
//   - Rack: an entity for one compartment, holding at most one package
//   - ControlEndpoint: the normalised base URL of the tower's controller
//
// Key business rules:
//   - a tower has at least one rack; racks are numbered 1..total
//   - a rack holds at most one package at a time and is available iff empty
//   - occupying a rack already held by the same package is a no-op, so
//     confirmations can be replayed safely
package tower
