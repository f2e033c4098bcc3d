package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/clinicware/clinic-platform/internal/admin"
	"github.com/clinicware/clinic-platform/internal/appointments"
	"github.com/clinicware/clinic-platform/internal/doctors"
	httpmiddleware "github.com/clinicware/clinic-platform/internal/http/middleware"
	"github.com/clinicware/clinic-platform/internal/patients"
	"github.com/clinicware/clinic-platform/internal/settings"
	"github.com/clinicware/clinic-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	AppointmentsHandler *appointments.Handler
	DoctorsHandler      *doctors.Handler
	PatientsHandler     *patients.Handler
	SettingsHandler     *settings.Handler
	AdminHandler        *admin.Handler
	AdminAuthSecret     string
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	adminOnly := httpmiddleware.AdminJWT(cfg.AdminAuthSecret)

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}

		public.Route("/appointments", func(r chi.Router) {
			r.Get("/", cfg.AppointmentsHandler.List)
			r.Post("/", cfg.AppointmentsHandler.Create)
			r.Get("/slots", cfg.AppointmentsHandler.Slots)
			r.With(adminOnly).Put("/{id}/status", cfg.AppointmentsHandler.UpdateStatus)
			r.With(adminOnly).Delete("/{id}", cfg.AppointmentsHandler.Delete)
		})

		public.Route("/doctors", func(r chi.Router) {
			r.Get("/", cfg.DoctorsHandler.List)
			r.With(adminOnly).Post("/", cfg.DoctorsHandler.Create)
			r.With(adminOnly).Put("/{id}", cfg.DoctorsHandler.Update)
			r.With(adminOnly).Delete("/{id}", cfg.DoctorsHandler.Delete)
		})

		public.Route("/patients", func(r chi.Router) {
			r.Get("/", cfg.PatientsHandler.List)
			r.With(adminOnly).Post("/", cfg.PatientsHandler.Create)
			r.With(adminOnly).Put("/{id}", cfg.PatientsHandler.Update)
			r.With(adminOnly).Delete("/{id}", cfg.PatientsHandler.Delete)
		})

		public.Post("/login/patient", cfg.PatientsHandler.Login)
		public.Post("/admin/verify", cfg.AdminHandler.Verify)
		public.Get("/settings", cfg.SettingsHandler.Get)
	})

	// Admin-only endpoints
	r.Group(func(protected chi.Router) {
		protected.Use(adminOnly)
		protected.Put("/admin/password", cfg.AdminHandler.UpdatePassword)
		protected.Put("/settings", cfg.SettingsHandler.Update)
	})

	return r
}
