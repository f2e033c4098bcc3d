package patients

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of pgxpool.Pool the repository needs.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores patients in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("patients: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create inserts a new row with the already-hashed credential.
func (r *PostgresRepository) Create(ctx context.Context, req *CreatePatientRequest, passwordHash string) (*Patient, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	query := `
		INSERT INTO patients (id, name, age, phone, history, email, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := r.pool.Exec(ctx, query, id, req.Name, req.Age, req.Phone, req.History, req.Email, passwordHash); err != nil {
		return nil, fmt.Errorf("patients: insert: %w", err)
	}
	return &Patient{
		ID:           id,
		Name:         req.Name,
		Age:          req.Age,
		Phone:        req.Phone,
		History:      req.History,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}, nil
}

// GetByID fetches a patient.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Patient, error) {
	return r.getBy(ctx, `id = $1`, id)
}

// GetByEmail fetches a patient by email, case-insensitively.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Patient, error) {
	return r.getBy(ctx, `lower(email) = lower($1)`, email)
}

func (r *PostgresRepository) getBy(ctx context.Context, where string, arg any) (*Patient, error) {
	query := fmt.Sprintf(`
		SELECT id, name, age, phone, history, email, password_hash
		FROM patients
		WHERE %s
	`, where)
	var p Patient
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&p.ID,
		&p.Name,
		&p.Age,
		&p.Phone,
		&p.History,
		&p.Email,
		&p.PasswordHash,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("patients: select: %w", err)
	}
	return &p, nil
}

// List returns every patient ordered by name.
func (r *PostgresRepository) List(ctx context.Context) ([]*Patient, error) {
	query := `
		SELECT id, name, age, phone, history, email, password_hash
		FROM patients
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("patients: list: %w", err)
	}
	defer rows.Close()

	var out []*Patient
	for rows.Next() {
		var p Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.Phone, &p.History, &p.Email, &p.PasswordHash); err != nil {
			return nil, fmt.Errorf("patients: scan: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("patients: rows: %w", err)
	}
	return out, nil
}

// Update overwrites the patient's profile fields, leaving the credential as is.
func (r *PostgresRepository) Update(ctx context.Context, id string, req *UpdatePatientRequest) (*Patient, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		UPDATE patients
		SET name = $2, age = $3, phone = $4, history = $5,
		    email = COALESCE(NULLIF($6, ''), email)
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, req.Name, req.Age, req.Phone, req.History, req.Email)
	if err != nil {
		return nil, fmt.Errorf("patients: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrPatientNotFound
	}
	return r.GetByID(ctx, id)
}

// Exists reports whether a patient id is known.
func (r *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM patients WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("patients: exists: %w", err)
	}
	return exists, nil
}
