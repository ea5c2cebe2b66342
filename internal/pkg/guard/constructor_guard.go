// Package guard detects zero-value commands, queries and value objects that
// bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types that must only be built through a constructor.
// The zero value reports "not constructed".
//
// Example:
//
//	type LaunchPackageCommand struct {
//	    packageID string
//	    guard     guard.ConstructorGuard
//	}
//
//	func (c LaunchPackageCommand) Validate() error {
//	    return c.guard.Validate(ErrLaunchPackageCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the enclosing value as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guard is the zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
