package domain

import "errors"

var (
	// ErrJobNotFound is returned when a job id does not resolve to a job
	ErrJobNotFound = errors.New("job not found")

	// ErrApplicationNotFound is returned when an application id does not resolve
	ErrApplicationNotFound = errors.New("application not found")

	// ErrOwnJob is returned when a user applies to a job they created
	ErrOwnJob = errors.New("cannot apply to your own job")

	// ErrDeadlinePassed is returned when the job deadline is before today
	ErrDeadlinePassed = errors.New("deadline has expired")

	// ErrAlreadyApplied is returned when a (job, email) application already exists
	ErrAlreadyApplied = errors.New("already applied to this job")
)
