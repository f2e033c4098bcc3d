package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clinicware/clinic-platform/internal/credentials"
	"github.com/clinicware/clinic-platform/internal/settings"
)

type memStore struct {
	cfg *settings.ClinicSettings
}

func (s *memStore) Get(ctx context.Context) (*settings.ClinicSettings, error) {
	clone := *s.cfg
	return &clone, nil
}

func (s *memStore) Set(ctx context.Context, cfg *settings.ClinicSettings) error {
	clone := *cfg
	s.cfg = &clone
	return nil
}

func newTestHandler(t *testing.T, adminPassword string) (*Handler, *memStore) {
	t.Helper()
	creds := credentials.NewService(2)

	store := &memStore{cfg: settings.Default()}
	if adminPassword != "" {
		hash, err := creds.Hash(context.Background(), adminPassword)
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		store.cfg.AdminPasswordHash = hash
	}

	issuer := NewSessionIssuer("test-secret", time.Hour)
	return NewHandler(store, creds, issuer, nil, nil), store
}

func verify(t *testing.T, h *Handler, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"password": password})
	w := httptest.NewRecorder()
	h.Verify(w, httptest.NewRequest(http.MethodPost, "/admin/verify", bytes.NewReader(body)))
	return w
}

func TestVerifyAdminPassword(t *testing.T) {
	h, _ := newTestHandler(t, "admin123")

	w := verify(t, h, "admin123")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var resp VerifyResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || resp.Token == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	// The minted token must parse with the issuer's secret.
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(resp.Token, &claims, func(token *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.Subject != "admin" {
		t.Errorf("subject = %q, want admin", claims.Subject)
	}

	if w := verify(t, h, "wrong"); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestVerifyWithoutStoredHash(t *testing.T) {
	h, _ := newTestHandler(t, "")

	if w := verify(t, h, "anything"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestVerifyLegacyPlaintextAdminPassword(t *testing.T) {
	h, store := newTestHandler(t, "")
	store.cfg.AdminPasswordHash = "admin123"

	if w := verify(t, h, "admin123"); w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if w := verify(t, h, "admin1234"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestUpdatePassword(t *testing.T) {
	h, store := newTestHandler(t, "admin123")

	body, _ := json.Marshal(map[string]string{"newPassword": "s3cure-pass"})
	w := httptest.NewRecorder()
	h.UpdatePassword(w, httptest.NewRequest(http.MethodPut, "/admin/password", bytes.NewReader(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	if !strings.HasPrefix(store.cfg.AdminPasswordHash, "scrypt:") {
		t.Errorf("stored hash %q lacks scrypt marker", store.cfg.AdminPasswordHash)
	}

	// Old password no longer verifies, new one does.
	if w := verify(t, h, "admin123"); w.Code != http.StatusUnauthorized {
		t.Errorf("old password should be rejected, got %d", w.Code)
	}
	if w := verify(t, h, "s3cure-pass"); w.Code != http.StatusOK {
		t.Errorf("new password should verify, got %d", w.Code)
	}
}

func TestUpdatePasswordRequiresValue(t *testing.T) {
	h, _ := newTestHandler(t, "admin123")

	body, _ := json.Marshal(map[string]string{"newPassword": "  "})
	w := httptest.NewRecorder()
	h.UpdatePassword(w, httptest.NewRequest(http.MethodPut, "/admin/password", bytes.NewReader(body)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}
