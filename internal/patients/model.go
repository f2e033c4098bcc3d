package patients

import "strings"

// Patient represents a registered patient. PasswordHash never leaves the
// process boundary; JSON encoding skips it.
type Patient struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Age          int    `json:"age,omitempty"`
	Phone        string `json:"phone,omitempty"`
	History      string `json:"history,omitempty"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// CreatePatientRequest is the request body for registering a patient.
// Password arrives in plaintext and is hashed before storage.
type CreatePatientRequest struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Phone    string `json:"phone"`
	History  string `json:"history"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks required fields.
func (r *CreatePatientRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrInvalidEmail
	}
	return nil
}

// UpdatePatientRequest is the request body for updating a patient profile.
// Credentials are not updated through this path.
type UpdatePatientRequest struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Phone   string `json:"phone"`
	History string `json:"history"`
	Email   string `json:"email"`
}

// Validate checks required fields.
func (r *UpdatePatientRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	return nil
}

// LoginRequest is the request body for patient login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
