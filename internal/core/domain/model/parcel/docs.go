// Package parcel models a package travelling from a drone into a tower rack
// and on to the customer. The type is named Parcel because package is a Go
// keyword.
//
// Lifecycle:
//
//	Ready ──> Processing ──┬──> Delivered ──> PickedUp
//	  ^           │        ├──> Failed
//	  │           │        └──> Unreachable
//	  └───────────┘ (launch aborted, or reset from any phase)
//
// Failed and Unreachable parcels may be launched again.
package parcel
