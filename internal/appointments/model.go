package appointments

import (
	"encoding/json"
	"io"
	"strings"
	"time"
)

// Appointment statuses. Status updates are permissive: any known status may
// replace any other, there is no transition graph.
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment is a scheduled visit for a patient with a doctor.
type Appointment struct {
	ID          string    `json:"id"`
	DoctorID    string    `json:"doctorId"`
	PatientID   string    `json:"patientId"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Reason      string    `json:"reason,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Cancelled reports whether the appointment no longer blocks its time.
func (a *Appointment) Cancelled() bool {
	return a.Status == StatusCancelled
}

// CreateAppointmentRequest is the request body for booking an appointment.
type CreateAppointmentRequest struct {
	DoctorID    string    `json:"doctorId"`
	PatientID   string    `json:"patientId"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Reason      string    `json:"reason"`
}

// Zone-less layouts accepted for the booking timestamp. The admin UI posts
// datetime-local values with no offset; API clients send RFC 3339.
var wallClockLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// bookingWire mirrors the POST /appointments body. The timestamp may arrive
// under "date" (the UI's field name) or "scheduledAt".
type bookingWire struct {
	DoctorID    string `json:"doctorId"`
	PatientID   string `json:"patientId"`
	Date        string `json:"date"`
	ScheduledAt string `json:"scheduledAt"`
	Reason      string `json:"reason"`
}

// DecodeBookingRequest reads a booking body. Zone-less timestamps are
// interpreted in loc (the clinic zone); nil loc means local time.
func DecodeBookingRequest(body io.Reader, loc *time.Location) (*CreateAppointmentRequest, error) {
	var wire bookingWire
	if err := json.NewDecoder(body).Decode(&wire); err != nil {
		return nil, err
	}

	req := &CreateAppointmentRequest{
		DoctorID:  wire.DoctorID,
		PatientID: wire.PatientID,
		Reason:    wire.Reason,
	}

	raw := strings.TrimSpace(wire.Date)
	if raw == "" {
		raw = strings.TrimSpace(wire.ScheduledAt)
	}
	if raw == "" {
		// Validate reports the missing timestamp.
		return req, nil
	}

	at, err := ParseScheduledAt(raw, loc)
	if err != nil {
		return nil, err
	}
	req.ScheduledAt = at
	return req, nil
}

// ParseScheduledAt parses a booking timestamp, RFC 3339 first, then the
// zone-less wall-clock layouts in loc.
func ParseScheduledAt(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if at, err := time.Parse(time.RFC3339, raw); err == nil {
		return at, nil
	}
	for _, layout := range wallClockLayouts {
		if at, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return at, nil
		}
	}
	return time.Time{}, ErrInvalidTime
}

// Validate checks required fields on the booking request.
func (r *CreateAppointmentRequest) Validate() error {
	if strings.TrimSpace(r.DoctorID) == "" {
		return ErrMissingDoctor
	}
	if strings.TrimSpace(r.PatientID) == "" {
		return ErrMissingPatient
	}
	if r.ScheduledAt.IsZero() {
		return ErrMissingTime
	}
	return nil
}
