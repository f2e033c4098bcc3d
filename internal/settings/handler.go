package settings

import (
	"encoding/json"
	"net/http"

	"github.com/clinicware/clinic-platform/pkg/logging"
)

// Handler provides HTTP endpoints for clinic settings management.
type Handler struct {
	store  *Store
	logger *logging.Logger
}

// NewHandler creates a new settings HTTP handler.
func NewHandler(store *Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// Get returns the clinic settings with the admin hash stripped.
// GET /settings
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.store.Get(r.Context())
	if err != nil {
		h.logger.Error("failed to get settings", "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(cfg.Sanitized()); err != nil {
		h.logger.Error("failed to encode settings", "error", err)
	}
}

// UpdateRequest is the request body for updating settings. Pointer fields
// distinguish "absent" from "set to empty" so break windows can be cleared.
type UpdateRequest struct {
	Name              *string `json:"name,omitempty"`
	WorkingHoursStart *string `json:"workingHoursStart,omitempty"`
	WorkingHoursEnd   *string `json:"workingHoursEnd,omitempty"`
	BreakStart        *string `json:"breakStart,omitempty"`
	BreakEnd          *string `json:"breakEnd,omitempty"`
	SlotMinutes       *int    `json:"slotDurationMinutes,omitempty"`
}

// Update merges the partial request into the stored record.
// PUT /settings
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid JSON body"}`, http.StatusBadRequest)
		return
	}

	cfg, err := h.store.Get(r.Context())
	if err != nil {
		h.logger.Error("failed to get settings", "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	if req.Name != nil {
		cfg.Name = *req.Name
	}
	if req.WorkingHoursStart != nil {
		cfg.WorkingHoursStart = *req.WorkingHoursStart
	}
	if req.WorkingHoursEnd != nil {
		cfg.WorkingHoursEnd = *req.WorkingHoursEnd
	}
	if req.BreakStart != nil {
		cfg.BreakStart = *req.BreakStart
	}
	if req.BreakEnd != nil {
		cfg.BreakEnd = *req.BreakEnd
	}
	if req.SlotMinutes != nil {
		cfg.SlotMinutes = *req.SlotMinutes
	}

	if err := h.store.Set(r.Context(), cfg); err != nil {
		h.logger.Error("failed to save settings", "error", err)
		http.Error(w, `{"error": "failed to save settings"}`, http.StatusInternalServerError)
		return
	}

	h.logger.Info("clinic settings updated", "name", cfg.Name)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(cfg.Sanitized()); err != nil {
		h.logger.Error("failed to encode settings", "error", err)
	}
}
