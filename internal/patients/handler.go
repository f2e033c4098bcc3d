package patients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clinicware/clinic-platform/internal/appointments"
	"github.com/clinicware/clinic-platform/internal/credentials"
	"github.com/clinicware/clinic-platform/pkg/logging"
)

// Deleter removes a patient together with every referencing appointment.
// appointments.Cascader satisfies it.
type Deleter interface {
	DeletePatient(ctx context.Context, patientID string) (appointments.CascadeResult, error)
}

// Handler handles HTTP requests for patients.
type Handler struct {
	repo    Repository
	creds   *credentials.Service
	auth    *Authenticator
	deleter Deleter
	logger  *logging.Logger
}

// NewHandler creates a new patients handler.
func NewHandler(repo Repository, creds *credentials.Service, auth *Authenticator, deleter Deleter, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, creds: creds, auth: auth, deleter: deleter, logger: logger}
}

// List handles GET /patients.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	pats, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list patients", "error", err)
		http.Error(w, "failed to list patients", http.StatusInternalServerError)
		return
	}
	if pats == nil {
		pats = []*Patient{}
	}
	writeJSON(w, http.StatusOK, pats)
}

// Create handles POST /patients. The plaintext password is hashed before it
// reaches storage.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		h.renderError(w, err, "failed to create patient")
		return
	}

	var hash string
	if req.Password != "" {
		var err error
		hash, err = h.creds.Hash(r.Context(), req.Password)
		if err != nil {
			h.logger.Error("failed to hash patient password", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to create patient")
			return
		}
	}

	p, err := h.repo.Create(r.Context(), &req, hash)
	if err != nil {
		h.renderError(w, err, "failed to create patient")
		return
	}

	h.logger.Info("patient created", "patient_id", p.ID)
	writeJSON(w, http.StatusCreated, p)
}

// Update handles PUT /patients/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.repo.Update(r.Context(), id, &req)
	if err != nil {
		h.renderError(w, err, "failed to update patient")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /patients/{id}. Referencing appointments go with the
// patient in one transaction.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	res, err := h.deleter.DeletePatient(r.Context(), id)
	if err != nil {
		if errors.Is(err, appointments.ErrPatientNotFound) || errors.Is(err, ErrPatientNotFound) {
			writeError(w, http.StatusNotFound, ErrPatientNotFound.Error())
			return
		}
		h.logger.Error("failed to delete patient", "error", err, "patient_id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete patient")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// LoginResponse is the response for a successful patient login.
type LoginResponse struct {
	Success bool     `json:"success"`
	User    *Patient `json:"user"`
}

// Login handles POST /login/patient.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.auth.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.logger.Error("patient login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{Success: true, User: p})
}

func (h *Handler) renderError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrPatientNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrInvalidEmail):
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
