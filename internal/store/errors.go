package store

import "errors"

var (
	// ErrInvalidDriverID is returned when a driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidCargoID is returned when a cargo ID is empty.
	ErrInvalidCargoID = errors.New("invalid cargo id")

	// ErrInvalidIndex is returned when a reorder index is outside the active list.
	ErrInvalidIndex = errors.New("reorder index out of range")

	// ErrReorderInProgress is returned when another reorder batch holds the driver's lock.
	ErrReorderInProgress = errors.New("reorder already in progress for driver")
)
