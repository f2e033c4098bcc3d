package doctors

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

// PostgresRepository stores doctors in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("doctors: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *UpsertDoctorRequest) (*Doctor, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	query := `
		INSERT INTO doctors (id, name, specialty, experience, image)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.pool.Exec(ctx, query, id, req.Name, req.Specialty, req.Experience, req.Image); err != nil {
		return nil, fmt.Errorf("doctors: insert: %w", err)
	}
	return &Doctor{
		ID:         id,
		Name:       req.Name,
		Specialty:  req.Specialty,
		Experience: req.Experience,
		Image:      req.Image,
	}, nil
}

// GetByID fetches a doctor.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Doctor, error) {
	query := `
		SELECT id, name, specialty, experience, image
		FROM doctors
		WHERE id = $1
	`
	var doc Doctor
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.Name,
		&doc.Specialty,
		&doc.Experience,
		&doc.Image,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("doctors: select: %w", err)
	}
	return &doc, nil
}

// List returns every doctor ordered by name.
func (r *PostgresRepository) List(ctx context.Context) ([]*Doctor, error) {
	query := `
		SELECT id, name, specialty, experience, image
		FROM doctors
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("doctors: list: %w", err)
	}
	defer rows.Close()

	var out []*Doctor
	for rows.Next() {
		var doc Doctor
		if err := rows.Scan(&doc.ID, &doc.Name, &doc.Specialty, &doc.Experience, &doc.Image); err != nil {
			return nil, fmt.Errorf("doctors: scan: %w", err)
		}
		out = append(out, &doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("doctors: rows: %w", err)
	}
	return out, nil
}

// Update overwrites the doctor's profile fields.
func (r *PostgresRepository) Update(ctx context.Context, id string, req *UpsertDoctorRequest) (*Doctor, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		UPDATE doctors
		SET name = $2, specialty = $3, experience = $4, image = $5
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, req.Name, req.Specialty, req.Experience, req.Image)
	if err != nil {
		return nil, fmt.Errorf("doctors: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrDoctorNotFound
	}
	return &Doctor{
		ID:         id,
		Name:       req.Name,
		Specialty:  req.Specialty,
		Experience: req.Experience,
		Image:      req.Image,
	}, nil
}

// Exists reports whether a doctor id is known.
func (r *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM doctors WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("doctors: exists: %w", err)
	}
	return exists, nil
}
