package appointments

import "errors"

var (
	// ErrAppointmentNotFound is returned when an appointment id is unknown.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrDoctorNotFound is returned when the referenced doctor does not exist.
	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrPatientNotFound is returned when the referenced patient does not exist.
	ErrPatientNotFound = errors.New("patient not found")

	// ErrInvalidStatus is returned for a status outside the known set.
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrMissingDoctor is returned when the booking names no doctor.
	ErrMissingDoctor = errors.New("doctorId is required")

	// ErrMissingPatient is returned when the booking names no patient.
	ErrMissingPatient = errors.New("patientId is required")

	// ErrMissingTime is returned when the booking carries no timestamp.
	ErrMissingTime = errors.New("date is required")

	// ErrInvalidTime is returned when the booking timestamp cannot be parsed.
	ErrInvalidTime = errors.New("invalid appointment time")
)
