package patients

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clinicware/clinic-platform/internal/credentials"
	"github.com/clinicware/clinic-platform/internal/observability/metrics"
	"github.com/clinicware/clinic-platform/pkg/logging"
)

// Authenticator checks patient logins against stored credentials.
type Authenticator struct {
	repo    Repository
	creds   *credentials.Service
	metrics *metrics.SchedulingMetrics
	logger  *logging.Logger
}

// NewAuthenticator constructs a patient authenticator.
func NewAuthenticator(repo Repository, creds *credentials.Service, m *metrics.SchedulingMetrics, logger *logging.Logger) *Authenticator {
	if repo == nil {
		panic("patients: repository required")
	}
	if creds == nil {
		panic("patients: credential service required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Authenticator{repo: repo, creds: creds, metrics: m, logger: logger}
}

// Login verifies the email/password pair and returns the patient on success.
// Every failure mode collapses into ErrInvalidCredentials so the response
// does not reveal whether the email is registered.
func (a *Authenticator) Login(ctx context.Context, req LoginRequest) (*Patient, error) {
	p, err := a.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("patients: login lookup: %w", err)
	}
	if p.PasswordHash == "" {
		// Account predates credential storage; it cannot log in until a
		// password is set.
		return nil, ErrInvalidCredentials
	}

	start := time.Now()
	ok, err := a.creds.Verify(ctx, req.Password, p.PasswordHash)
	a.metrics.ObserveVerifyLatency(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("patients: verify credential: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	a.logger.Info("patient logged in", "patient_id", p.ID)
	return p, nil
}
