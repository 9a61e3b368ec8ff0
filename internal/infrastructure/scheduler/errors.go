package scheduler

import "errors"

var (
	// ErrRunAlreadyInProgress is returned when a generation run is already executing
	ErrRunAlreadyInProgress = errors.New("generation run already in progress")
)
