package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clinicware/clinic-platform/internal/availability"
	"github.com/clinicware/clinic-platform/pkg/logging"
)

// Handler handles HTTP requests for appointments.
type Handler struct {
	ledger *Ledger
	loc    *time.Location
	logger *logging.Logger
}

// NewHandler creates a new appointments handler. Zone-less timestamps in
// booking bodies and the slots date param are interpreted in loc.
func NewHandler(ledger *Ledger, loc *time.Location, logger *logging.Logger) *Handler {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{ledger: ledger, loc: loc, logger: logger}
}

// List handles GET /appointments.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	appts, err := h.ledger.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list appointments", "error", err)
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}
	if appts == nil {
		appts = []*Appointment{}
	}
	writeJSON(w, http.StatusOK, appts)
}

// Create handles POST /appointments.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := DecodeBookingRequest(r.Body, h.loc)
	if err != nil {
		if errors.Is(err, ErrInvalidTime) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.ledger.Create(r.Context(), req)
	if err != nil {
		h.renderError(w, err, "failed to create appointment")
		return
	}
	writeJSON(w, http.StatusCreated, appt)
}

// UpdateStatus handles PUT /appointments/{id}/status.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.ledger.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		h.renderError(w, err, "failed to update appointment status")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"id":     appt.ID,
		"status": appt.Status,
	})
}

// Delete handles DELETE /appointments/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.ledger.Delete(r.Context(), id); err != nil {
		h.renderError(w, err, "failed to delete appointment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SlotsResponse is the response for a day slot listing.
type SlotsResponse struct {
	DoctorID string              `json:"doctorId"`
	Date     string              `json:"date"`
	Slots    []availability.Slot `json:"slots"`
}

// Slots handles GET /appointments/slots?doctorId=...&date=YYYY-MM-DD.
func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	doctorID := r.URL.Query().Get("doctorId")
	if doctorID == "" {
		http.Error(w, "doctorId is required", http.StatusBadRequest)
		return
	}

	dateStr := r.URL.Query().Get("date")
	day, err := time.ParseInLocation("2006-01-02", dateStr, h.loc)
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	slots, err := h.ledger.Slots(r.Context(), doctorID, day)
	if err != nil {
		h.renderError(w, err, "failed to list slots")
		return
	}
	writeJSON(w, http.StatusOK, SlotsResponse{
		DoctorID: doctorID,
		Date:     dateStr,
		Slots:    slots,
	})
}

// renderError maps domain errors to HTTP statuses. Storage failures stay
// opaque: the client sees the fallback message, the detail goes to the log.
func (h *Handler) renderError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, availability.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, availability.ErrPastTime),
		errors.Is(err, availability.ErrOutOfHours),
		errors.Is(err, availability.ErrBreakTime):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrAppointmentNotFound),
		errors.Is(err, ErrDoctorNotFound),
		errors.Is(err, ErrPatientNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrMissingDoctor),
		errors.Is(err, ErrMissingPatient),
		errors.Is(err, ErrMissingTime),
		errors.Is(err, ErrInvalidTime):
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
