package patients

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Repository defines the interface for patient storage.
type Repository interface {
	Create(ctx context.Context, req *CreatePatientRequest, passwordHash string) (*Patient, error)
	GetByID(ctx context.Context, id string) (*Patient, error)
	GetByEmail(ctx context.Context, email string) (*Patient, error)
	List(ctx context.Context) ([]*Patient, error)
	Update(ctx context.Context, id string, req *UpdatePatientRequest) (*Patient, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// InMemoryRepository is an in-memory implementation of Repository.
type InMemoryRepository struct {
	mu       sync.RWMutex
	patients map[string]*Patient
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		patients: make(map[string]*Patient),
	}
}

// Create stores a new patient with the already-hashed credential.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreatePatientRequest, passwordHash string) (*Patient, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := &Patient{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Age:          req.Age,
		Phone:        req.Phone,
		History:      req.History,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}

	r.mu.Lock()
	r.patients[p.ID] = p
	r.mu.Unlock()

	clone := *p
	return &clone, nil
}

// GetByID retrieves a patient by id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patients[id]
	if !ok {
		return nil, ErrPatientNotFound
	}
	clone := *p
	return &clone, nil
}

// GetByEmail retrieves a patient by email, case-insensitively.
func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.patients {
		if strings.EqualFold(p.Email, email) {
			clone := *p
			return &clone, nil
		}
	}
	return nil, ErrPatientNotFound
}

// List returns every patient ordered by name.
func (r *InMemoryRepository) List(ctx context.Context) ([]*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Patient, 0, len(r.patients))
	for _, p := range r.patients {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Update overwrites the patient's profile fields, leaving the credential as is.
func (r *InMemoryRepository) Update(ctx context.Context, id string, req *UpdatePatientRequest) (*Patient, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.patients[id]
	if !ok {
		return nil, ErrPatientNotFound
	}
	p.Name = req.Name
	p.Age = req.Age
	p.Phone = req.Phone
	p.History = req.History
	if req.Email != "" {
		p.Email = req.Email
	}

	clone := *p
	return &clone, nil
}

// Exists reports whether a patient id is known.
func (r *InMemoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.patients[id]
	return ok, nil
}

// Delete removes the patient row without touching appointments. Used by the
// in-memory wiring where no transactional cascade is available.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.patients[id]; !ok {
		return ErrPatientNotFound
	}
	delete(r.patients, id)
	return nil
}
