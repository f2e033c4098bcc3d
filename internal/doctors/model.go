package doctors

import "strings"

// Doctor represents a practitioner patients book appointments with.
type Doctor struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Specialty  string `json:"specialty,omitempty"`
	Experience int    `json:"experience,omitempty"`
	Image      string `json:"image,omitempty"`
}

// UpsertDoctorRequest is the request body for creating or updating a doctor.
type UpsertDoctorRequest struct {
	Name       string `json:"name"`
	Specialty  string `json:"specialty"`
	Experience int    `json:"experience"`
	Image      string `json:"image"`
}

// Validate checks required fields.
func (r *UpsertDoctorRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	return nil
}
