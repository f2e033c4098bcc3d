package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/clinicware/clinic-platform/internal/credentials"
	"github.com/clinicware/clinic-platform/internal/http/middleware"
	"github.com/clinicware/clinic-platform/internal/observability/metrics"
	"github.com/clinicware/clinic-platform/internal/settings"
	"github.com/clinicware/clinic-platform/pkg/logging"
)

// SettingsStore is the slice of the settings store the admin handler needs.
type SettingsStore interface {
	Get(ctx context.Context) (*settings.ClinicSettings, error)
	Set(ctx context.Context, cfg *settings.ClinicSettings) error
}

// Handler handles administrator authentication and password rotation.
type Handler struct {
	store   SettingsStore
	creds   *credentials.Service
	issuer  *SessionIssuer
	metrics *metrics.SchedulingMetrics
	logger  *logging.Logger
	now     func() time.Time
}

// NewHandler creates a new admin handler.
func NewHandler(store SettingsStore, creds *credentials.Service, issuer *SessionIssuer, m *metrics.SchedulingMetrics, logger *logging.Logger) *Handler {
	if store == nil {
		panic("admin: settings store required")
	}
	if creds == nil {
		panic("admin: credential service required")
	}
	if issuer == nil {
		panic("admin: session issuer required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		store:   store,
		creds:   creds,
		issuer:  issuer,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// VerifyResponse is the response for a successful admin verification.
type VerifyResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// Verify handles POST /admin/verify.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cfg, err := h.store.Get(r.Context())
	if err != nil {
		h.logger.Error("failed to load settings for admin verify", "error", err)
		writeError(w, http.StatusInternalServerError, "verification failed")
		return
	}
	if cfg.AdminPasswordHash == "" {
		writeFailure(w)
		return
	}

	start := h.now()
	ok, err := h.creds.Verify(r.Context(), req.Password, cfg.AdminPasswordHash)
	h.metrics.ObserveVerifyLatency(time.Since(start).Seconds())
	if err != nil {
		h.logger.Error("admin credential verification failed", "error", err)
		writeError(w, http.StatusInternalServerError, "verification failed")
		return
	}
	if !ok {
		writeFailure(w)
		return
	}

	token, err := h.issuer.Issue(h.now())
	if err != nil {
		h.logger.Error("failed to issue admin session token", "error", err)
		writeError(w, http.StatusInternalServerError, "verification failed")
		return
	}

	h.logger.Info("admin verified")
	writeJSON(w, http.StatusOK, VerifyResponse{Success: true, Token: token})
}

// UpdatePassword handles PUT /admin/password. The new password is hashed
// before it reaches the settings store.
func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.NewPassword) == "" {
		writeError(w, http.StatusBadRequest, "newPassword is required")
		return
	}

	hash, err := h.creds.Hash(r.Context(), req.NewPassword)
	if err != nil {
		h.logger.Error("failed to hash admin password", "error", err)
		writeError(w, http.StatusInternalServerError, "password update failed")
		return
	}

	cfg, err := h.store.Get(r.Context())
	if err != nil {
		h.logger.Error("failed to load settings for password update", "error", err)
		writeError(w, http.StatusInternalServerError, "password update failed")
		return
	}
	cfg.AdminPasswordHash = hash
	if err := h.store.Set(r.Context(), cfg); err != nil {
		h.logger.Error("failed to store admin password", "error", err)
		writeError(w, http.StatusInternalServerError, "password update failed")
		return
	}

	if claims, ok := middleware.AdminClaimsFromContext(r.Context()); ok {
		h.logger.Info("admin password updated", "subject", claims.Subject)
	} else {
		h.logger.Info("admin password updated")
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeFailure(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, map[string]any{
		"success": false,
		"error":   "Invalid password",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
