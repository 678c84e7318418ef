package store

import "errors"

// Sentinel errors returned by closet operations so handlers can map them to
// distinct HTTP statuses.
var (
	// ErrNameRequired means the item name was empty after trimming.
	ErrNameRequired = errors.New("name required")

	// ErrInvalidWearCount means a negative wear count was supplied.
	ErrInvalidWearCount = errors.New("times worn cannot be negative")

	// ErrNotFound means no item with the given ID exists.
	ErrNotFound = errors.New("clothing item not found")

	// ErrForbidden means the item exists but belongs to another user.
	ErrForbidden = errors.New("clothing item belongs to another user")
)
