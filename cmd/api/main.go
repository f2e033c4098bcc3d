package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/clinicware/clinic-platform/internal/admin"
	"github.com/clinicware/clinic-platform/internal/api/router"
	"github.com/clinicware/clinic-platform/internal/appointments"
	appconfig "github.com/clinicware/clinic-platform/internal/config"
	"github.com/clinicware/clinic-platform/internal/credentials"
	"github.com/clinicware/clinic-platform/internal/doctors"
	"github.com/clinicware/clinic-platform/internal/observability/metrics"
	"github.com/clinicware/clinic-platform/internal/patients"
	"github.com/clinicware/clinic-platform/internal/settings"
	"github.com/clinicware/clinic-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinic-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Clinic settings live in Redis.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect to redis", "error", err, "addr", cfg.RedisAddr)
		os.Exit(1)
	}
	settingsStore := settings.NewStore(redisClient)

	// Entity storage requires Postgres; the transactional cascade on
	// doctor/patient removal has no in-memory equivalent.
	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create pgx pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}

	// Credential hashing is deliberately expensive; bound its concurrency.
	creds := credentials.NewService(cfg.HashWorkers)

	// Seed the settings record, hashing the bootstrap admin password. Seed
	// is a no-op once a record exists.
	seedHash, err := creds.Hash(ctx, cfg.AdminDefaultPassword)
	if err != nil {
		logger.Error("failed to hash bootstrap admin password", "error", err)
		os.Exit(1)
	}
	created, err := settingsStore.Seed(ctx, seedHash)
	if err != nil {
		logger.Error("failed to seed clinic settings", "error", err)
		os.Exit(1)
	}
	if created {
		logger.Info("seeded default clinic settings")
	}

	clinicTZ, err := time.LoadLocation(cfg.ClinicTimezone)
	if err != nil {
		logger.Warn("invalid CLINIC_TZ, falling back to local time", "tz", cfg.ClinicTimezone, "error", err)
		clinicTZ = time.Local
	}

	schedulingMetrics := metrics.NewSchedulingMetrics(nil)

	// Repositories and services
	apptRepo := appointments.NewPostgresRepository(pool)
	docRepo := doctors.NewPostgresRepository(pool)
	patRepo := patients.NewPostgresRepository(pool)
	cascader := appointments.NewCascader(pool, schedulingMetrics, logger)
	ledger := appointments.NewLedger(apptRepo, settingsStore, docRepo, patRepo, schedulingMetrics, logger)
	patientAuth := patients.NewAuthenticator(patRepo, creds, schedulingMetrics, logger)
	sessionIssuer := admin.NewSessionIssuer(cfg.AdminJWTSecret, cfg.AdminTokenTTL)

	// Setup router
	routerCfg := &router.Config{
		Logger:              logger,
		AppointmentsHandler: appointments.NewHandler(ledger, clinicTZ, logger),
		DoctorsHandler:      doctors.NewHandler(docRepo, cascader, logger),
		PatientsHandler:     patients.NewHandler(patRepo, creds, patientAuth, cascader, logger),
		SettingsHandler:     settings.NewHandler(settingsStore, logger),
		AdminHandler:        admin.NewHandler(settingsStore, creds, sessionIssuer, schedulingMetrics, logger),
		AdminAuthSecret:     cfg.AdminJWTSecret,
		MetricsHandler:      promhttp.Handler(),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
