package appointments

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/clinicware/clinic-platform/internal/availability"
	"github.com/clinicware/clinic-platform/internal/observability/metrics"
	"github.com/clinicware/clinic-platform/internal/settings"
	"github.com/clinicware/clinic-platform/pkg/logging"
)

var ledgerTracer = otel.Tracer("clinic.internal.appointments")

// SettingsSource yields the clinic settings bookings are validated against.
// settings.Store satisfies it.
type SettingsSource interface {
	Get(ctx context.Context) (*settings.ClinicSettings, error)
}

// Directory answers whether an entity id exists. Doctor and patient
// repositories satisfy it.
type Directory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Ledger admits bookings. Admission for a doctor is serialized with a keyed
// mutex held across read-validate-insert, so two requests for overlapping
// times cannot both pass validation.
type Ledger struct {
	repo     Repository
	cfg      SettingsSource
	doctors  Directory
	patients Directory
	metrics  *metrics.SchedulingMetrics
	logger   *logging.Logger
	now      func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLedger constructs an appointment ledger.
func NewLedger(repo Repository, cfg SettingsSource, doctors, patients Directory, m *metrics.SchedulingMetrics, logger *logging.Logger) *Ledger {
	if repo == nil {
		panic("appointments: repository required")
	}
	if cfg == nil {
		panic("appointments: settings source required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Ledger{
		repo:     repo,
		cfg:      cfg,
		doctors:  doctors,
		patients: patients,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (l *Ledger) doctorLock(doctorID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[doctorID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[doctorID] = lock
	}
	return lock
}

// Create validates and persists a booking. Scheduling rejections come back
// as the availability sentinels; unknown doctor/patient ids as the NotFound
// sentinels. On success the appointment is stored with status Pending.
func (l *Ledger) Create(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error) {
	ctx, span := ledgerTracer.Start(ctx, "appointments.create")
	defer span.End()

	if err := req.Validate(); err != nil {
		l.metrics.ObserveBooking("invalid")
		return nil, err
	}
	span.SetAttributes(
		attribute.String("clinic.doctor_id", req.DoctorID),
		attribute.String("clinic.patient_id", req.PatientID),
	)

	lock := l.doctorLock(req.DoctorID)
	lock.Lock()
	defer lock.Unlock()

	if err := l.checkExists(ctx, l.doctors, req.DoctorID, ErrDoctorNotFound); err != nil {
		l.metrics.ObserveBooking(outcomeFor(err))
		return nil, err
	}
	if err := l.checkExists(ctx, l.patients, req.PatientID, ErrPatientNotFound); err != nil {
		l.metrics.ObserveBooking(outcomeFor(err))
		return nil, err
	}

	cfg, err := l.cfg.Get(ctx)
	if err != nil {
		span.RecordError(err)
		l.metrics.ObserveBooking("error")
		return nil, fmt.Errorf("appointments: load settings: %w", err)
	}

	existing, err := l.activeForDoctor(ctx, req.DoctorID)
	if err != nil {
		span.RecordError(err)
		l.metrics.ObserveBooking("error")
		return nil, err
	}

	booking := availability.BookingRequest{DoctorID: req.DoctorID, At: req.ScheduledAt}
	if err := availability.ValidateBooking(booking, cfg, existing, l.now()); err != nil {
		l.metrics.ObserveBooking(outcomeFor(err))
		return nil, err
	}

	appt := &Appointment{
		ID:          uuid.New().String(),
		DoctorID:    req.DoctorID,
		PatientID:   req.PatientID,
		ScheduledAt: req.ScheduledAt,
		Reason:      req.Reason,
		Status:      StatusPending,
		CreatedAt:   l.now().UTC(),
	}
	if err := l.repo.Create(ctx, appt); err != nil {
		span.RecordError(err)
		l.metrics.ObserveBooking(outcomeFor(err))
		return nil, err
	}

	l.metrics.ObserveBooking("created")
	l.logger.Info("appointment booked",
		"appointment_id", appt.ID,
		"doctor_id", appt.DoctorID,
		"patient_id", appt.PatientID,
		"scheduled_at", appt.ScheduledAt,
	)
	return appt, nil
}

// Slots lists the candidate start times for a doctor on a given day.
func (l *Ledger) Slots(ctx context.Context, doctorID string, day time.Time) ([]availability.Slot, error) {
	if err := l.checkExists(ctx, l.doctors, doctorID, ErrDoctorNotFound); err != nil {
		return nil, err
	}

	cfg, err := l.cfg.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("appointments: load settings: %w", err)
	}
	existing, err := l.activeForDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	slots, err := availability.ListSlots(doctorID, day, cfg, existing, l.now())
	if err != nil {
		return nil, err
	}
	l.metrics.ObserveSlotListing()
	return slots, nil
}

// List returns every appointment.
func (l *Ledger) List(ctx context.Context) ([]*Appointment, error) {
	return l.repo.List(ctx)
}

// UpdateStatus overwrites the appointment's status. Any known status may
// replace any other.
func (l *Ledger) UpdateStatus(ctx context.Context, id string, status string) (*Appointment, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	return l.repo.UpdateStatus(ctx, id, status)
}

// Delete removes a single appointment.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	return l.repo.Delete(ctx, id)
}

func (l *Ledger) checkExists(ctx context.Context, dir Directory, id string, notFound error) error {
	if dir == nil {
		return nil
	}
	ok, err := dir.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("appointments: existence check: %w", err)
	}
	if !ok {
		return notFound
	}
	return nil
}

func (l *Ledger) activeForDoctor(ctx context.Context, doctorID string) ([]availability.Appointment, error) {
	appts, err := l.repo.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	out := make([]availability.Appointment, 0, len(appts))
	for _, appt := range appts {
		out = append(out, availability.Appointment{
			DoctorID:  appt.DoctorID,
			At:        appt.ScheduledAt,
			Cancelled: appt.Cancelled(),
		})
	}
	return out, nil
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, availability.ErrPastTime):
		return "past"
	case errors.Is(err, availability.ErrOutOfHours):
		return "out_of_hours"
	case errors.Is(err, availability.ErrBreakTime):
		return "break"
	case errors.Is(err, availability.ErrConflict):
		return "conflict"
	case errors.Is(err, ErrDoctorNotFound), errors.Is(err, ErrPatientNotFound):
		return "not_found"
	default:
		return "error"
	}
}
