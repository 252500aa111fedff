package domain

import "errors"

var (
	// ErrInvalidInstance is returned when an instance cannot be routed
	// (too few nodes, bad anchors, non-positive capacity or budget).
	ErrInvalidInstance = errors.New("invalid instance")

	// ErrUnknownVariant is returned for a variant name that is not recognized.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrRouteInvariant marks broken route bookkeeping: an anchor edge that
	// should exist is missing, or a path is not simple. It is never expected
	// during normal operation.
	ErrRouteInvariant = errors.New("route invariant violated")

	// ErrRouteNotFound is returned when removing a route the solution does not hold.
	ErrRouteNotFound = errors.New("route not found in solution")
)
