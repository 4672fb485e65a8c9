// Package guard provides ConstructorGuard, a marker embedded in value objects, commands and
// queries so that zero values created by struct literals can be told apart from values built
// through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing struct was produced by its constructor.
//
// Example:
//
//	var ErrFinalizeBatchCommandIsNotConstructed = errors.New("FinalizeBatchCommand must be created via NewFinalizeBatchCommand")
//
//	type FinalizeBatchCommand struct {
//	    batchID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c FinalizeBatchCommand) Validate() error {
//	    return c.guard.Validate(ErrFinalizeBatchCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil) if the guard
// is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
