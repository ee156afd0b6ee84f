// Package guard provides the ConstructorGuard used by value objects, aggregates and
// commands to detect instances that bypassed their constructors.
//
// A zero-value struct embeds a zero-value guard, so Validate reports it as not
// constructed. Constructors set the guard with NewConstructorGuard.
//
// Example:
//
//	type Volume struct {
//	    litres float64
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewVolume(litres float64) Volume {
//	    return Volume{litres: litres, guard: guard.NewConstructorGuard()}
//	}
//
//	func (v Volume) Validate() error {
//	    return v.guard.Validate(ErrVolumeIsNotConstructed)
//	}
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as created through its constructor.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
