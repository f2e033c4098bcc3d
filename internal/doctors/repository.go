package doctors

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Repository defines the interface for doctor storage. Delete removes only
// the doctor row; callers that need referential integrity go through the
// appointment cascader instead.
type Repository interface {
	Create(ctx context.Context, req *UpsertDoctorRequest) (*Doctor, error)
	GetByID(ctx context.Context, id string) (*Doctor, error)
	List(ctx context.Context) ([]*Doctor, error)
	Update(ctx context.Context, id string, req *UpsertDoctorRequest) (*Doctor, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// InMemoryRepository is an in-memory implementation of Repository.
type InMemoryRepository struct {
	mu      sync.RWMutex
	doctors map[string]*Doctor
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		doctors: make(map[string]*Doctor),
	}
}

// Create stores a new doctor.
func (r *InMemoryRepository) Create(ctx context.Context, req *UpsertDoctorRequest) (*Doctor, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	doc := &Doctor{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Specialty:  req.Specialty,
		Experience: req.Experience,
		Image:      req.Image,
	}

	r.mu.Lock()
	r.doctors[doc.ID] = doc
	r.mu.Unlock()

	clone := *doc
	return &clone, nil
}

// GetByID retrieves a doctor by id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.doctors[id]
	if !ok {
		return nil, ErrDoctorNotFound
	}
	clone := *doc
	return &clone, nil
}

// List returns every doctor ordered by name.
func (r *InMemoryRepository) List(ctx context.Context) ([]*Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Doctor, 0, len(r.doctors))
	for _, doc := range r.doctors {
		clone := *doc
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Update overwrites the doctor's profile fields.
func (r *InMemoryRepository) Update(ctx context.Context, id string, req *UpsertDoctorRequest) (*Doctor, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.doctors[id]
	if !ok {
		return nil, ErrDoctorNotFound
	}
	doc.Name = req.Name
	doc.Specialty = req.Specialty
	doc.Experience = req.Experience
	doc.Image = req.Image

	clone := *doc
	return &clone, nil
}

// Exists reports whether a doctor id is known.
func (r *InMemoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.doctors[id]
	return ok, nil
}

// Delete removes the doctor row without touching appointments. Used by the
// in-memory wiring where no transactional cascade is available.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.doctors[id]; !ok {
		return ErrDoctorNotFound
	}
	delete(r.doctors, id)
	return nil
}
