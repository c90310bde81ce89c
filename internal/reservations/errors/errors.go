package errors

import "errors"

var (
	ErrNotFound = errors.New("reservation not found")

	ErrClassroomNotFound = errors.New("classroom not found")

	ErrInvalidID = errors.New("invalid reservation ID format")

	ErrConflict = errors.New("reservation time conflicts with an existing reservation")

	ErrLocked = errors.New("classroom is locked by another reservation in progress")

	ErrStoreUnavailable = errors.New("reservation store unavailable")

	ErrInvalidTimeRange = errors.New("end time must be after start time")
)
