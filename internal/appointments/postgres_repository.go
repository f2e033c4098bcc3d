package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/clinicware/clinic-platform/internal/availability"
)

// PgxPool is the subset of pgxpool.Pool the repository needs. pgxmock
// satisfies it in tests.
type PgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores appointments in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("appointments: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

const uniqueViolation = "23505"

// Create inserts a new row. A unique violation on (doctor_id, scheduled_at)
// surfaces as availability.ErrConflict so concurrent double-bookings that
// slip past validation are still rejected.
func (r *PostgresRepository) Create(ctx context.Context, appt *Appointment) error {
	query := `
		INSERT INTO appointments (id, doctor_id, patient_id, scheduled_at, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := r.pool.Exec(ctx, query,
		appt.ID,
		appt.DoctorID,
		appt.PatientID,
		appt.ScheduledAt,
		appt.Reason,
		appt.Status,
		appt.CreatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return availability.ErrConflict
		}
		return fmt.Errorf("appointments: insert: %w", err)
	}
	return nil
}

// GetByID fetches a single appointment.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	query := `
		SELECT id, doctor_id, patient_id, scheduled_at, reason, status, created_at
		FROM appointments
		WHERE id = $1
	`
	appt, err := scanAppointment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("appointments: select: %w", err)
	}
	return appt, nil
}

// List returns every appointment ordered by scheduled time.
func (r *PostgresRepository) List(ctx context.Context) ([]*Appointment, error) {
	query := `
		SELECT id, doctor_id, patient_id, scheduled_at, reason, status, created_at
		FROM appointments
		ORDER BY scheduled_at
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("appointments: list: %w", err)
	}
	defer rows.Close()
	return collectAppointments(rows)
}

// ListByDoctor returns the doctor's appointments ordered by scheduled time.
func (r *PostgresRepository) ListByDoctor(ctx context.Context, doctorID string) ([]*Appointment, error) {
	query := `
		SELECT id, doctor_id, patient_id, scheduled_at, reason, status, created_at
		FROM appointments
		WHERE doctor_id = $1
		ORDER BY scheduled_at
	`
	rows, err := r.pool.Query(ctx, query, doctorID)
	if err != nil {
		return nil, fmt.Errorf("appointments: list by doctor: %w", err)
	}
	defer rows.Close()
	return collectAppointments(rows)
}

// UpdateStatus overwrites the status and returns the updated row.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status string) (*Appointment, error) {
	query := `
		UPDATE appointments
		SET status = $2
		WHERE id = $1
		RETURNING id, doctor_id, patient_id, scheduled_at, reason, status, created_at
	`
	appt, err := scanAppointment(r.pool.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("appointments: update status: %w", err)
	}
	return appt, nil
}

// Delete removes an appointment.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("appointments: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var appt Appointment
	if err := row.Scan(
		&appt.ID,
		&appt.DoctorID,
		&appt.PatientID,
		&appt.ScheduledAt,
		&appt.Reason,
		&appt.Status,
		&appt.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &appt, nil
}

func collectAppointments(rows pgx.Rows) ([]*Appointment, error) {
	var out []*Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("appointments: scan: %w", err)
		}
		out = append(out, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointments: rows: %w", err)
	}
	return out, nil
}
