package types

import "errors"

// Dataset access errors. Both are propagated to the caller; an out-of-range
// index points at a defect in the presentation layer, not at user input.
var (
	ErrIndexOutOfRange  = errors.New("row index out of range")
	ErrInvalidFieldPath = errors.New("invalid field path")
)

// Edit and load errors.
var (
	ErrNotEditing        = errors.New("row is not in edit mode")
	ErrStaleLoad         = errors.New("load superseded by a newer request")
	ErrUnknownNavigation = errors.New("unknown page navigation")
)

// Dataset source errors.
var (
	ErrUnknownSource   = errors.New("unknown dataset source")
	ErrSourceRequired  = errors.New("source parameter must not be empty")
	ErrMalformedRecord = errors.New("malformed dataset record")
)
