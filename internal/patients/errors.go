package patients

import "errors"

var (
	// ErrInvalidName is returned when the name is missing.
	ErrInvalidName = errors.New("name is required")

	// ErrInvalidEmail is returned when the email is missing on signup.
	ErrInvalidEmail = errors.New("email is required")

	// ErrPatientNotFound is returned when a patient is not found.
	ErrPatientNotFound = errors.New("patient not found")

	// ErrInvalidCredentials is returned for any login failure: unknown email,
	// wrong password, or an account with no stored credential.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
