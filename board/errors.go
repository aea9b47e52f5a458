package board

import "errors"

// Every failure mode of a board operation wraps one of these sentinels, so
// callers can branch with errors.Is without parsing messages. A failed
// operation never leaves partial state behind.
var (
	ErrOutOfBounds           = errors.New("coordinate out of bounds")
	ErrOverlap               = errors.New("regions overlap")
	ErrDisconnected          = errors.New("region group is not connected")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrInsufficientCapacity  = errors.New("insufficient animal capacity")
	ErrMalformedRequest      = errors.New("malformed request")
)
