package doctors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clinicware/clinic-platform/internal/appointments"
	"github.com/clinicware/clinic-platform/pkg/logging"
)

// Deleter removes a doctor together with every referencing appointment.
// appointments.Cascader satisfies it.
type Deleter interface {
	DeleteDoctor(ctx context.Context, doctorID string) (appointments.CascadeResult, error)
}

// Handler handles HTTP requests for doctors.
type Handler struct {
	repo    Repository
	deleter Deleter
	logger  *logging.Logger
}

// NewHandler creates a new doctors handler.
func NewHandler(repo Repository, deleter Deleter, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, deleter: deleter, logger: logger}
}

// List handles GET /doctors.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list doctors", "error", err)
		http.Error(w, "failed to list doctors", http.StatusInternalServerError)
		return
	}
	if docs == nil {
		docs = []*Doctor{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// Create handles POST /doctors.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req UpsertDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	doc, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.renderError(w, err, "failed to create doctor")
		return
	}

	h.logger.Info("doctor created", "doctor_id", doc.ID, "name", doc.Name)
	writeJSON(w, http.StatusCreated, doc)
}

// Update handles PUT /doctors/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpsertDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	doc, err := h.repo.Update(r.Context(), id, &req)
	if err != nil {
		h.renderError(w, err, "failed to update doctor")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Delete handles DELETE /doctors/{id}. Referencing appointments go with the
// doctor in one transaction.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	res, err := h.deleter.DeleteDoctor(r.Context(), id)
	if err != nil {
		if errors.Is(err, appointments.ErrDoctorNotFound) || errors.Is(err, ErrDoctorNotFound) {
			writeError(w, http.StatusNotFound, ErrDoctorNotFound.Error())
			return
		}
		h.logger.Error("failed to delete doctor", "error", err, "doctor_id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete doctor")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) renderError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrDoctorNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidName):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(fallback, "error", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
