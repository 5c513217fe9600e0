package scheduler

import "errors"

var (
	// ErrInvalidConfig is returned when the retention configuration is invalid
	ErrInvalidConfig = errors.New("scheduler: invalid retention configuration")

	// ErrPurgeInProgress is returned when a purge is requested while one is running
	ErrPurgeInProgress = errors.New("scheduler: journal purge already in progress")
)
