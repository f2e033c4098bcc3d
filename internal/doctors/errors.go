package doctors

import "errors"

var (
	// ErrInvalidName is returned when the name is missing.
	ErrInvalidName = errors.New("name is required")

	// ErrDoctorNotFound is returned when a doctor is not found.
	ErrDoctorNotFound = errors.New("doctor not found")
)
