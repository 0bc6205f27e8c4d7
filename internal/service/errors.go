package service

import "errors"

// Stable failure kinds surfaced to the façade. Handlers map these to HTTP
// statuses with errors.Is; messages wrapped around them are safe to show.
var (
	ErrNotFound        = errors.New("not found")              // 404
	ErrInvalidArgument = errors.New("invalid argument")       // 400
	ErrInvalidState    = errors.New("invalid state")          // 400
	ErrAlreadyExists   = errors.New("already exists")         // 400
	ErrConflict        = errors.New("conflict")               // 409, caller may retry
	ErrUnavailable     = errors.New("dependency unavailable") // 503
)
