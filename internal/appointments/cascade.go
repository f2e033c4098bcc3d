package appointments

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/clinicware/clinic-platform/internal/observability/metrics"
	"github.com/clinicware/clinic-platform/pkg/logging"
)

type db interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Cascader removes a doctor or patient together with every appointment that
// references them. Both deletions happen in one transaction so a failure on
// either side leaves the schedule untouched.
type Cascader struct {
	db      db
	metrics *metrics.SchedulingMetrics
	logger  *logging.Logger
}

func NewCascader(db db, m *metrics.SchedulingMetrics, logger *logging.Logger) *Cascader {
	if logger == nil {
		logger = logging.Default()
	}
	return &Cascader{db: db, metrics: m, logger: logger}
}

// CascadeResult reports what a cascade removed.
type CascadeResult struct {
	Appointments int64 `json:"appointmentsDeleted"`
}

// DeleteDoctor removes the doctor row and all referencing appointments.
// An unknown doctor id rolls back and returns ErrDoctorNotFound.
func (c *Cascader) DeleteDoctor(ctx context.Context, doctorID string) (CascadeResult, error) {
	res, err := c.cascade(ctx, doctorID, "doctor_id", "doctors", ErrDoctorNotFound)
	if err != nil {
		c.metrics.ObserveCascade("doctor", "error")
		return CascadeResult{}, err
	}
	c.metrics.ObserveCascade("doctor", "ok")
	c.logger.Info("doctor deleted", "doctor_id", doctorID, "appointments_deleted", res.Appointments)
	return res, nil
}

// DeletePatient removes the patient row and all referencing appointments.
// An unknown patient id rolls back and returns ErrPatientNotFound.
func (c *Cascader) DeletePatient(ctx context.Context, patientID string) (CascadeResult, error) {
	res, err := c.cascade(ctx, patientID, "patient_id", "patients", ErrPatientNotFound)
	if err != nil {
		c.metrics.ObserveCascade("patient", "error")
		return CascadeResult{}, err
	}
	c.metrics.ObserveCascade("patient", "ok")
	c.logger.Info("patient deleted", "patient_id", patientID, "appointments_deleted", res.Appointments)
	return res, nil
}

func (c *Cascader) cascade(ctx context.Context, id, fkColumn, parentTable string, notFound error) (CascadeResult, error) {
	if c == nil || c.db == nil {
		return CascadeResult{}, fmt.Errorf("appointments: database not configured")
	}
	if strings.TrimSpace(id) == "" {
		return CascadeResult{}, notFound
	}

	tx, err := c.db.Begin(ctx)
	if err != nil {
		return CascadeResult{}, fmt.Errorf("appointments: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var res CascadeResult
	res.Appointments, err = execRowsAffected(ctx, tx, fmt.Sprintf(`
		DELETE FROM appointments WHERE %s = $1
	`, fkColumn), id)
	if err != nil {
		return CascadeResult{}, fmt.Errorf("appointments: delete referencing appointments: %w", err)
	}

	parents, err := execRowsAffected(ctx, tx, fmt.Sprintf(`
		DELETE FROM %s WHERE id = $1
	`, parentTable), id)
	if err != nil {
		return CascadeResult{}, fmt.Errorf("appointments: delete %s row: %w", parentTable, err)
	}
	if parents == 0 {
		return CascadeResult{}, notFound
	}

	if err := tx.Commit(ctx); err != nil {
		return CascadeResult{}, fmt.Errorf("appointments: commit tx: %w", err)
	}
	return res, nil
}

func execRowsAffected(ctx context.Context, tx pgx.Tx, query string, args ...any) (int64, error) {
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
