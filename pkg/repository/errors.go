package repository

import "errors"

// Sentinel errors returned by repository implementations for conditions the
// HTTP layer must distinguish. Plain lookups report absence as (nil, nil);
// these are for mutations whose target vanished or whose precondition no
// longer holds.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
