// Package customer models the recipient of a package and the one-time pickup
// credential that opens the recipient's rack.
package customer
