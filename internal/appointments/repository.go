package appointments

import (
	"context"
	"sort"
	"sync"

	"github.com/clinicware/clinic-platform/internal/availability"
)

// Repository defines the interface for appointment storage.
type Repository interface {
	Create(ctx context.Context, appt *Appointment) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	List(ctx context.Context) ([]*Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]*Appointment, error)
	UpdateStatus(ctx context.Context, id string, status string) (*Appointment, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository is an in-memory implementation of Repository.
type InMemoryRepository struct {
	mu    sync.RWMutex
	appts map[string]*Appointment
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		appts: make(map[string]*Appointment),
	}
}

// Create stores a new appointment. Mirroring the partial unique index on
// (doctor_id, scheduled_at), a second live row at the identical time for one
// doctor is rejected; cancelled rows do not block.
func (r *InMemoryRepository) Create(ctx context.Context, appt *Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.appts {
		if existing.DoctorID == appt.DoctorID && !existing.Cancelled() &&
			existing.ScheduledAt.Equal(appt.ScheduledAt) {
			return availability.ErrConflict
		}
	}

	clone := *appt
	r.appts[appt.ID] = &clone
	return nil
}

// GetByID retrieves an appointment by id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appt, ok := r.appts[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	clone := *appt
	return &clone, nil
}

// List returns every appointment ordered by scheduled time.
func (r *InMemoryRepository) List(ctx context.Context) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Appointment, 0, len(r.appts))
	for _, appt := range r.appts {
		clone := *appt
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	return out, nil
}

// ListByDoctor returns the doctor's appointments ordered by scheduled time.
func (r *InMemoryRepository) ListByDoctor(ctx context.Context, doctorID string) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Appointment
	for _, appt := range r.appts {
		if appt.DoctorID != doctorID {
			continue
		}
		clone := *appt
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	return out, nil
}

// UpdateStatus overwrites the appointment's status.
func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id string, status string) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.appts[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	appt.Status = status
	clone := *appt
	return &clone, nil
}

// Delete removes an appointment.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appts[id]; !ok {
		return ErrAppointmentNotFound
	}
	delete(r.appts, id)
	return nil
}
