package availability

import "errors"

// Booking rejections are expected outcomes, returned as values and mapped to
// specific HTTP statuses by the API layer. They are never generic 500s.
var (
	// ErrPastTime is returned when the requested time is earlier than now.
	ErrPastTime = errors.New("cannot book an appointment in the past")

	// ErrOutOfHours is returned when the requested time falls outside the
	// clinic's working hours.
	ErrOutOfHours = errors.New("time is outside clinic working hours")

	// ErrBreakTime is returned when the requested time falls inside the
	// configured break window.
	ErrBreakTime = errors.New("time falls within the clinic break window")

	// ErrConflict is returned when the doctor already has an active
	// appointment within one slot duration of the requested time.
	ErrConflict = errors.New("doctor is not available at this time")
)
