// Package fault carries the typed failures the production engine reports.
// Every error crossing a service boundary is one of these kinds plus a
// human-readable reason; callers branch on the kind, never on the text.
package fault

import (
	"errors"
	"fmt"
)

type Kind string

const (
	NotFound            Kind = "not_found"
	Transition          Kind = "invalid_transition"
	ResourceUnavailable Kind = "resource_unavailable"
	CapacityExceeded    Kind = "capacity_exceeded"
	InsufficientStock   Kind = "insufficient_stock"
	InsufficientFunds   Kind = "insufficient_funds"
	IngredientMismatch  Kind = "ingredient_mismatch"
	UnknownCrop         Kind = "unknown_crop"
	UnsupportedFactory  Kind = "unsupported_factory_type"
	Validation          Kind = "invalid_argument"
	Internal            Kind = "internal"
)

type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Reason) }

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind of err, or Internal for anything untyped.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Internal
}

// Is lets errors.Is match two fault errors by kind alone.
func (e *Error) Is(target error) bool {
	var fe *Error
	if errors.As(target, &fe) {
		return e.Kind == fe.Kind
	}
	return false
}
