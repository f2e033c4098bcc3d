package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"

	"github.com/clinicware/clinic-platform/internal/availability"
)

func testAppointment() *Appointment {
	return &Appointment{
		ID:          uuid.New().String(),
		DoctorID:    uuid.New().String(),
		PatientID:   uuid.New().String(),
		ScheduledAt: time.Date(2026, time.September, 8, 10, 0, 0, 0, time.UTC),
		Reason:      "checkup",
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestPostgresCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	appt := testAppointment()

	mock.ExpectExec("INSERT INTO appointments").
		WithArgs(appt.ID, appt.DoctorID, appt.PatientID, appt.ScheduledAt, appt.Reason, appt.Status, appt.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Create(context.Background(), appt); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostgresCreateUniqueViolationIsConflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	appt := testAppointment()

	mock.ExpectExec("INSERT INTO appointments").
		WithArgs(appt.ID, appt.DoctorID, appt.PatientID, appt.ScheduledAt, appt.Reason, appt.Status, appt.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "appointments_doctor_id_scheduled_at_key"})

	if err := repo.Create(context.Background(), appt); !errors.Is(err, availability.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestPostgresGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM appointments").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestPostgresListByDoctor(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	appt := testAppointment()

	rows := pgxmock.NewRows([]string{"id", "doctor_id", "patient_id", "scheduled_at", "reason", "status", "created_at"}).
		AddRow(appt.ID, appt.DoctorID, appt.PatientID, appt.ScheduledAt, appt.Reason, appt.Status, appt.CreatedAt)
	mock.ExpectQuery("SELECT (.+) FROM appointments").
		WithArgs(appt.DoctorID).
		WillReturnRows(rows)

	got, err := repo.ListByDoctor(context.Background(), appt.DoctorID)
	if err != nil {
		t.Fatalf("list by doctor: %v", err)
	}
	if len(got) != 1 || got[0].ID != appt.ID {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestPostgresUpdateStatusNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	mock.ExpectQuery("UPDATE appointments").
		WithArgs("missing", StatusCompleted).
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.UpdateStatus(context.Background(), "missing", StatusCompleted); !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestPostgresDelete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	mock.ExpectExec("DELETE FROM appointments").
		WithArgs("appt-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	if err := repo.Delete(context.Background(), "appt-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	mock.ExpectExec("DELETE FROM appointments").
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}
